package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"markestedt/polishclip/config"
	"markestedt/polishclip/postprocess"
	"markestedt/polishclip/rephrase"
	"markestedt/polishclip/storage"
	"markestedt/polishclip/systray"
	"markestedt/polishclip/web"
)

func main() {
	// Setup logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// A .env next to the binary is convenient for OPENAI_API_KEY; absence is
	// not an error
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	configPath, _ := config.ConfigPath()
	slog.Info("Configuration loaded", "path", configPath)

	// Fails fast on an unknown provider name or a missing API key
	provider, err := rephrase.NewProvider(cfg.Provider)
	if err != nil {
		slog.Error("Failed to create provider", "error", err)
		os.Exit(1)
	}

	pipeline := postprocess.Cleanup()

	// Usage metrics are best-effort: the tool still works without them
	var db *storage.DB
	if dir, err := config.ConfigDir(); err == nil {
		db, err = storage.Open(dir)
		if err != nil {
			slog.Warn("Metrics storage unavailable", "error", err)
			db = nil
		}
	}
	if db != nil {
		defer db.Close()
	}

	// One-shot mode: a positional argument is polished once and printed
	if len(os.Args) > 1 {
		text := strings.Join(os.Args[1:], " ")
		fmt.Println(polishText(context.Background(), provider, pipeline, cfg, db, text))
		return
	}

	var srv *web.Server
	if cfg.Web.Enabled {
		srv = web.NewServer(db, cfg, cfg.Web.Port)
		go func() {
			if err := srv.Start(); err != nil {
				slog.Error("Web server stopped", "error", err)
			}
		}()
	}

	tray := systray.NewManager(cfg.Web.Port, nil)

	agent := NewAgent(cfg, provider, db, srv, tray)

	// Setup signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := agent.Run(ctx); err != nil {
			slog.Error("Agent error", "error", err)
		}
		cancel()
		tray.Stop()
	}()

	// The tray owns the main goroutine until quit
	tray.Run()
	cancel()

	slog.Info("PolishClip stopped")
}
