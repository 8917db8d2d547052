package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrewpaige1/preptrack/auth"
	"github.com/andrewpaige1/preptrack/config"
	"github.com/andrewpaige1/preptrack/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	// "preptrack token <subject> [nickname]" prints a development token and exits.
	if len(os.Args) > 2 && os.Args[1] == "token" {
		nickname := ""
		if len(os.Args) > 3 {
			nickname = os.Args[3]
		}
		token, err := auth.CreateToken(cfg, os.Args[2], nickname)
		if err != nil {
			slog.Error("failed to create token", "error", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	db, err := config.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := config.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	jwtValidator, err := auth.NewValidator(cfg)
	if err != nil {
		slog.Error("failed to set up token validator", "error", err)
		os.Exit(1)
	}
	if cfg.IsDevelopment() {
		slog.Warn("using HS256 development tokens", "issuer", cfg.JWTIssuer)
	}

	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           router.New(db, jwtValidator, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("Listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("server closed")
}
