package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	AllowedOrigins     []string
	WordsAPIURL        string
	WordsAPITimeout    time.Duration
	WordLength         int
	ClientURL          string
	Debug              bool
	NotifyOpponentLeft bool
	RoomGracePeriod    time.Duration
	SweepInterval      time.Duration
	RejoinSecret       string
	RejoinTTL          time.Duration
	RateLimitPerMinute int
}

func MustLoadConfig() *Config {
	godotenv.Load()
	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		panic(err)
	}
	return cfg
}

func loadConfig(getenv func(string) string) (*Config, error) {
	env := envReader{getenv: getenv}
	cfg := &Config{
		Port:               env.string("PORT", "4000"),
		AllowedOrigins:     env.list("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		WordsAPIURL:        env.string("WORDS_API_URL", ""),
		WordsAPITimeout:    env.duration("WORDS_API_TIMEOUT", 10*time.Second),
		WordLength:         env.int("WORD_LENGTH", 6),
		ClientURL:          strings.TrimRight(env.string("CLIENT_URL", "http://localhost:3000"), "/"),
		Debug:              env.bool("DEBUG", false),
		NotifyOpponentLeft: env.bool("NOTIFY_OPPONENT_LEFT", true),
		RoomGracePeriod:    env.duration("ROOM_GRACE_PERIOD", 2*time.Minute),
		SweepInterval:      env.duration("SWEEP_INTERVAL", 30*time.Second),
		RejoinSecret:       env.string("REJOIN_SECRET", ""),
		RejoinTTL:          env.duration("REJOIN_TTL", time.Hour),
		RateLimitPerMinute: env.int("RATE_LIMIT_PER_MINUTE", 60),
	}
	if env.err != nil {
		return nil, env.err
	}
	if cfg.WordsAPIURL == "" {
		return nil, fmt.Errorf("WORDS_API_URL is not provided")
	}
	if cfg.RejoinSecret == "" {
		return nil, fmt.Errorf("REJOIN_SECRET is not provided")
	}
	return cfg, nil
}

// envReader keeps the first parse error so every variable can be read in
// one pass.
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) string(key, fallback string) string {
	if v := strings.TrimSpace(e.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (e *envReader) list(key string, fallback []string) []string {
	v := e.getenv(key)
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (e *envReader) bool(key string, fallback bool) bool {
	v := e.string(key, "")
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, err)
		return fallback
	}
	return parsed
}

func (e *envReader) int(key string, fallback int) int {
	v := e.string(key, "")
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, err)
		return fallback
	}
	return parsed
}

func (e *envReader) duration(key string, fallback time.Duration) time.Duration {
	v := e.string(key, "")
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, err)
		return fallback
	}
	return parsed
}

func (e *envReader) fail(key string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}
