package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/vocab/internal/config"
	"github.com/iudanet/vocab/internal/server"
	"github.com/iudanet/vocab/internal/server/jwt"
	"github.com/iudanet/vocab/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const (
	tokenCleanupInterval = time.Hour
	shutdownTimeout      = 10 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadServer(".env", os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	// Show version and exit if requested
	if cfg.ShowVersion {
		printVersion()
		return 0
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", slog.String("path", cfg.DBPath), slog.Any("error", err))
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close database", slog.Any("error", err))
		}
	}()

	if cfg.DemoPassword != "" {
		if _, err := server.SeedUser(ctx, store, logger, cfg.DemoUser, cfg.DemoPassword); err != nil {
			logger.Error("failed to seed demo user", slog.Any("error", err))
			return 1
		}
	}

	router := server.NewRouter(store, server.Options{
		Logger:         logger,
		Tokens:         jwt.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Version:        Version,
		LoginRateLimit: cfg.LoginRateLimit,
		LoginWindow:    time.Minute,
	})
	defer router.Close()

	go server.RunTokenCleanup(ctx, store, tokenCleanupInterval, logger)

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		logger.Error("failed to listen", slog.String("addr", cfg.Addr), slog.Any("error", err))
		return 1
	}

	logger.Info("Vocab Server starting", slog.String("addr", ln.Addr().String()), slog.String("version", Version))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-serveErrCh:
		if err != nil {
			logger.Error("http server failed", slog.Any("error", err))
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown incomplete", slog.Any("error", err))
	} else {
		logger.Info("server stopped")
	}

	return exitCode
}

func printVersion() {
	fmt.Printf("Vocab Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
