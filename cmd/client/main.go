package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/vocab/internal/client/api"
	"github.com/iudanet/vocab/internal/client/auth"
	"github.com/iudanet/vocab/internal/client/cli"
	"github.com/iudanet/vocab/internal/client/iocli"
	"github.com/iudanet/vocab/internal/client/storage"
	"github.com/iudanet/vocab/internal/client/storage/boltdb"
	"github.com/iudanet/vocab/internal/client/storage/memory"
	"github.com/iudanet/vocab/internal/client/words"
	"github.com/iudanet/vocab/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, args, err := config.LoadClient(".env", os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	// Show version and exit if requested
	if cfg.ShowVersion {
		printVersion()
		return 0
	}

	stdio := iocli.NewStdio()

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Получаем команду
	if len(args) == 0 {
		cli.New(stdio, nil, nil).PrintUsage()
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeStore()

	notifier := auth.NewSessionNotifier()

	// Создаем API клиент
	apiClient := api.NewClient(cfg.APIURL, store,
		api.WithLogger(logger),
		api.WithTimeout(cfg.Timeout),
		api.WithSessionExpired(notifier.Notify),
		api.WithReissueCoalescing(cfg.CoalesceReissue),
	)

	app := cli.New(stdio,
		auth.NewService(apiClient, store, logger),
		words.NewService(apiClient),
	)
	notifier.Subscribe(app.SessionExpired)

	if err := app.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openStore открывает хранилище токенов согласно настройкам
func openStore(ctx context.Context, cfg *config.Client) (storage.CredentialStore, func(), error) {
	var (
		store     storage.CredentialStore
		closeFunc = func() {}
	)

	if cfg.Ephemeral {
		store = memory.New()
	} else {
		boltStorage, err := boltdb.New(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		store = boltStorage
		closeFunc = func() {
			if err := boltStorage.Close(); err != nil {
				slog.Error("failed to close database", slog.Any("error", err))
			}
		}
	}

	if cfg.StoreSecret == "" {
		return store, closeFunc, nil
	}

	sealed, err := auth.NewSealedStore(store, cfg.StoreSecret)
	if err != nil {
		closeFunc()
		return nil, nil, err
	}
	return sealed, closeFunc, nil
}

func printVersion() {
	fmt.Printf("Vocab Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
