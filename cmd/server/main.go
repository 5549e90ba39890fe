package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vladkorolev/hoopshot/internal/config"
	"github.com/vladkorolev/hoopshot/internal/game"
	"github.com/vladkorolev/hoopshot/internal/middleware"
	"github.com/vladkorolev/hoopshot/internal/sim"
	"github.com/vladkorolev/hoopshot/internal/ws"
)

// securityHeaders wraps a handler with common security response headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// sessionManager wires accepted connections to game session runners.
type sessionManager struct {
	hub    *ws.Hub
	tuning sim.Tuning
	log    *zap.Logger
}

func (m *sessionManager) StartSession(conn *ws.Conn) {
	runner := game.NewRunner(conn, m.tuning, m.log)
	runner.Start(context.Background())
	go func() {
		<-runner.Done()
		m.hub.SessionEnded()
	}()
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	limiter := middleware.NewIPRateLimiter(
		cfg.Limits.MaxConnsPerIP, cfg.Limits.MsgRate, cfg.Limits.MsgWindow)
	defer limiter.Close()

	manager := &sessionManager{tuning: cfg.Sim, log: logger}
	hub := ws.NewHub(manager, limiter, cfg.Server.AllowedOrigins, cfg.Limits.MaxSessions, logger)
	manager.hub = hub

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(hub.Stats())
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           securityHeaders(mux),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("hoopshot server starting", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}
