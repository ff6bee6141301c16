package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ericfisherdev/shipadmin/internal/config"
	"github.com/ericfisherdev/shipadmin/internal/devbackend"
	"github.com/ericfisherdev/shipadmin/internal/fixture"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file (default $SHIPADMIN_CONFIG)")
	seedPath := flag.String("seed", "", "seed file in data.json layout (default $SHIPADMIN_STUB_SEED)")
	flag.Parse()

	// 1. Load configuration.
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))

	if *seedPath == "" {
		*seedPath = cfg.Stub.SeedPath
	}

	secret := cfg.Stub.JWTSecret
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			return err
		}
		slog.Warn("SHIPADMIN_STUB_JWT_SECRET not set, tokens will not survive a restart")
	}

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Create the in-memory backend.
	srv, err := devbackend.NewServer(devbackend.Config{
		JWTSecret:       secret,
		AccessTokenTTL:  cfg.Stub.AccessTokenTTL,
		RefreshTokenTTL: cfg.Stub.RefreshTokenTTL,
	}, slog.Default())
	if err != nil {
		return err
	}

	// 4. Seed from the fixture file when given.
	if *seedPath != "" {
		f, err := fixture.Load(*seedPath)
		if err != nil {
			return err
		}
		if err := srv.Seed(f); err != nil {
			return err
		}
	}

	httpSrv := &http.Server{
		Addr:              cfg.Stub.ListenAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.Stub.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	// 5. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 6. Graceful shutdown with 10s timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
