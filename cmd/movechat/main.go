package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atlasmove/movechat/internal/api"
	"github.com/atlasmove/movechat/internal/auth"
	"github.com/atlasmove/movechat/internal/config"
	"github.com/atlasmove/movechat/internal/service"
	"github.com/atlasmove/movechat/internal/ui"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	// Setup structured logging. The TUI owns the terminal, so logs go to a
	// file when configured and are dropped otherwise.
	logWriter := io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
		logWriter = f
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.New(cfg.APIBaseURL, config.RequestTimeout)

	// Log in and populate the process-wide identity
	store := auth.NewStore()
	authService := auth.NewService(client, store)
	identity, err := authService.Login(ctx, cfg.Email, cfg.Password)
	if err != nil {
		slog.Error("login failed", "error", err)
		fmt.Fprintln(os.Stderr, "login failed:", err)
		os.Exit(1)
	}
	defer authService.Logout()

	// Best-effort geolocation, acquired once per process
	probe := service.NewLocationProbe(cfg.GeolocationURL)
	if cfg.GeolocationEnabled {
		probe.Start(ctx)
	}

	registry, err := service.NewRegistry(identity.UserID, client, probe)
	if err != nil {
		slog.Error("create registry", "error", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	app := ui.New(registry, identity)
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		slog.Error("ui error", "error", err)
		os.Exit(1)
	}
}
