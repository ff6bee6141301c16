package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/shipadmin/internal/adapter/driven/backend"
	"github.com/ericfisherdev/shipadmin/internal/adapter/driven/memory"
	"github.com/ericfisherdev/shipadmin/internal/adapter/driven/redisstore"
	sqliteadapter "github.com/ericfisherdev/shipadmin/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/shipadmin/internal/adapter/driving/cli"
	"github.com/ericfisherdev/shipadmin/internal/application"
	"github.com/ericfisherdev/shipadmin/internal/config"
	"github.com/ericfisherdev/shipadmin/internal/domain/port/driven"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 1. Global flags precede the command.
	global := flag.NewFlagSet("shipadmin", flag.ContinueOnError)
	configPath := global.String("config", "", "path to YAML config file (default $SHIPADMIN_CONFIG)")
	if err := global.Parse(args); err != nil {
		return cli.ExitUsage
	}

	// 2. Load configuration.
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return cli.ExitFailure
	}

	// 3. Logs go to stderr so command output on stdout stays clean.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	// 4. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Open the credential store.
	creds, closeStore := openCredentialStore(ctx, cfg, logger)
	defer closeStore()

	// 6. Wire the backend client and services.
	client, err := backend.NewClient(cfg.BaseURL, creds, cfg.HTTPTimeout, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return cli.ExitFailure
	}
	sessions := application.NewSessionService(client, creds, logger)
	ships := application.NewShipService(client, logger)

	// 7. Run the command.
	app := cli.NewApp(sessions, ships, os.Stdin, os.Stdout, os.Stderr, logger)
	return app.Run(ctx, global.Args())
}

// openCredentialStore builds the configured store. A store that cannot be
// opened is replaced by an in-process one: commands still run, but the
// session does not outlive the process.
func openCredentialStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (driven.CredentialStore, func()) {
	noop := func() {}
	scope := cfg.Credentials.Scope

	switch cfg.Credentials.Backend {
	case config.BackendSQLite:
		key, err := sqliteadapter.DeriveKey(cfg.Credentials.Secret)
		if err != nil {
			logger.Warn("credential sealing key unavailable, using in-memory store", "error", err)
			return memory.NewCredentialStore(), noop
		}

		db, err := sqliteadapter.NewDB(ctx, cfg.Credentials.DBPath)
		if err != nil {
			logger.Warn("credential database unavailable, using in-memory store", "path", cfg.Credentials.DBPath, "error", err)
			return memory.NewCredentialStore(), noop
		}
		if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
			logger.Warn("credential database migration failed, using in-memory store", "error", err)
			_ = db.Close()
			return memory.NewCredentialStore(), noop
		}
		logger.Debug("credential store opened", "backend", "sqlite", "path", db.Path(), "scope", scope, "sealed", key != nil)

		return sqliteadapter.NewCredentialRepo(db, scope, key), func() {
			if err := db.Close(); err != nil {
				logger.Error("error closing database", "error", err)
			}
		}

	case config.BackendRedis:
		client, err := redisstore.NewClient(ctx, cfg.Credentials.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, using in-memory store", "error", err)
			return memory.NewCredentialStore(), noop
		}
		logger.Debug("credential store opened", "backend", "redis", "scope", scope)

		return redisstore.NewCredentialStore(client, scope), func() {
			if err := client.Close(); err != nil {
				logger.Error("error closing redis client", "error", err)
			}
		}

	default:
		return memory.NewCredentialStore(), noop
	}
}
