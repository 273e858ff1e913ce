package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-login-broker/internal/config"
	"github.com/jrsteele09/go-login-broker/provider"
	"github.com/jrsteele09/go-login-broker/server"
	"github.com/jrsteele09/go-login-broker/server/sessionstore"
	"github.com/jrsteele09/go-login-broker/server/statestore"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("broker exited")
	}
	log.Info().Msg("broker stopped")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		// Bad configuration means we never start accepting traffic
		return fmt.Errorf("configuration: %w", err)
	}

	displayAppname(cfg.AppName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	exchanger, err := provider.NewGoogle(ctx, provider.GoogleOptions{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.CallbackURL(server.RouteAuthCallback),
	})
	if err != nil {
		return fmt.Errorf("google provider: %w", err)
	}

	srv, err := server.New(cfg, server.Deps{
		Sessions:      newSessionStore(cfg),
		PendingLogins: statestore.NewInMemoryRepo(),
		Exchanger:     exchanger,
	})
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	httpServer := &http.Server{Addr: cfg.Addr(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

// newSessionStore selects the session backend: Redis when configured, an
// in-process map otherwise.
func newSessionStore(cfg config.Config) sessionstore.Store {
	if cfg.RedisAddr == "" {
		log.Info().Msg("using in-memory session store")
		return sessionstore.NewInMemoryStore()
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("using redis session store")
	return sessionstore.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
}

func listenAndServe(httpServer *http.Server) {
	log.Info().Str("addr", httpServer.Addr).Msg("broker listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
