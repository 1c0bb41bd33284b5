package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

// SetupLogger writes human readable logs to stderr. Debug lines, including
// every coordinator decision, are only shown when debug is set.
func SetupLogger(debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

type ConnIPLogger struct {
	zerolog zerolog.Logger
}

func GetConnIPLogger(base zerolog.Logger, ip string, connID string) ConnIPLogger {
	return ConnIPLogger{base.With().Str("ip", ip).Str("conn-id", connID).Logger()}
}

func (l ConnIPLogger) Connected() {
	l.zerolog.Info().Msg("Connected")
}

func (l ConnIPLogger) Disconnected(reason string) {
	l.zerolog.Info().Str("reason", reason).Msg("Disconnected")
}

func (l ConnIPLogger) SkippedMessage(err error) {
	l.zerolog.Warn().Err(err).Msg("Skipping message")
}

func (l ConnIPLogger) Rejoining(roomCode string) {
	l.zerolog.Info().Str("room-code", roomCode).Msg("Rejoining room")
}

func (l ConnIPLogger) RejoinRejected(err error) {
	l.zerolog.Warn().Err(err).Msg("Rejected rejoin key")
}

func (l ConnIPLogger) DispatchFailed(event string, err error) {
	l.zerolog.Error().Err(err).Str("event", event).Msg("Could not dispatch event")
}

func LogStartedServer(port string) {
	log.Info().Msgf("Starting server on port %v", port)
}

func LogStoppedServer() {
	log.Info().Msg("Server stopped")
}

func LogErrorWhileUpgradingHTTP(err error) {
	log.Error().Err(err).Msg("Error while upgrading HTTP")
}
