package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"anagram-duel/game"
	"anagram-duel/socket"
	"anagram-duel/words"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := MustLoadConfig()
	SetupLogger(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := socket.NewHub()
	rejoin := NewRejoinJWT(cfg.RejoinSecret, cfg.RejoinTTL)
	opts := game.DefaultOptions()
	opts.WordLength = cfg.WordLength
	opts.NotifyOpponentLeft = cfg.NotifyOpponentLeft
	opts.GracePeriod = cfg.RoomGracePeriod
	opts.Keys = rejoin
	coordinator := game.NewCoordinator(hub, words.NewClient(cfg.WordsAPIURL, cfg.WordsAPITimeout), nil, opts)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: NewHTTPServer(cfg, hub, coordinator, rejoin),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return coordinator.Run(ctx)
	})
	g.Go(func() error {
		return coordinator.Sweep(ctx, cfg.SweepInterval)
	})
	g.Go(func() error {
		LogStartedServer(cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Server failed")
	}
	LogStoppedServer()
}
