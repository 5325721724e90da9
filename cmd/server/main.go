package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/brunobiangulo/lightningroute"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (JSON or YAML)")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	flag.Parse()

	// Structured JSON logging.
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(log)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Error("loading .env", "error", err)
		os.Exit(1)
	}

	cfg := lightningroute.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = lightningroute.LoadConfig(*configPath); err != nil {
			log.Error("loading config", "error", err)
			os.Exit(1)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		log.Error("reading environment", "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	engine, err := lightningroute.New(cfg, lightningroute.WithLogger(log))
	if err != nil {
		log.Error("creating engine", "error", err)
		os.Exit(1)
	}

	h := newHandler(engine, cfg, log)

	// Middleware chain: recovery -> cors -> request id -> logging -> auth -> mux
	var handler http.Handler = h.routes()
	handler = authMiddleware(cfg.APIKey, handler)
	handler = logMiddleware(log, handler)
	handler = requestIDMiddleware(handler)
	handler = corsMiddleware(cfg.CORSOrigins, handler)
	handler = recoveryMiddleware(log, handler)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.RequestTimeout() + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("server starting", "addr", cfg.Addr, "provider", cfg.Chat.Provider, "model", cfg.Chat.Model)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", "error", err)
	}

	log.Info("server stopped")
}
