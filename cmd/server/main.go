package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-relay/api"
	"chat-relay/auth"
	"chat-relay/internal"
	"chat-relay/observability"
	"chat-relay/relay"
	"chat-relay/repositories"
	"chat-relay/services"

	env "github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
)

// Exit codes to provide meaningful status to the operating system or
// service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting, so every defer (like the database close)
// executes before the process exits.
func run() (int, error) {
	// 1. Configuration & logger
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	logger := internal.NewLogger(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Credential store (BadgerDB, in-memory: all state is volatile
	// and lost on process exit, by design).
	options := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(options)
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Core components
	authority := auth.NewAuthority(config.JWTSecret, config.AuthTokenDuration, config.ExtendedTokenDuration)
	authService := services.NewAuthService(repositories.NewUserRepository(db), authority)
	registry := services.NewRoomRegistry(logger)
	hub := relay.NewHub(registry, logger)

	go hub.Run(ctx)

	monitor := observability.NewMonitor(logger, config.MonitorInterval,
		registry.RoomCount, hub.ConnectionCount)
	go monitor.Run(ctx)

	// 4. HTTP surface
	handler := api.NewHandler(authService, registry, logger)
	router := api.NewRouter(handler, hub, config.FrontendOrigin, logger)

	server := &http.Server{
		Addr:    config.Addr(),
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", config.Addr())
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return exitRuntime, err
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return exitRuntime, fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return exitOK, nil
}
