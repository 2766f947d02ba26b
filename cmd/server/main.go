package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gogpu/gg"
	"github.com/gorilla/mux"

	"github.com/sketchpad/sketchpad/internal/api"
	"github.com/sketchpad/sketchpad/internal/auth"
	"github.com/sketchpad/sketchpad/internal/config"
	"github.com/sketchpad/sketchpad/internal/db"
	"github.com/sketchpad/sketchpad/internal/editor"
	mw "github.com/sketchpad/sketchpad/internal/middleware"
	"github.com/sketchpad/sketchpad/internal/session"
	"github.com/sketchpad/sketchpad/internal/sketch"
	"github.com/sketchpad/sketchpad/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var kv store.Store
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool); err != nil {
			slog.Error("migrate database", "error", err)
			os.Exit(1)
		}
		kv = store.NewPostgres(pool)
		slog.Info("using postgres sketch store")
	} else {
		kv = store.NewMemory(cfg.StoreQuotaBytes)
		slog.Info("using in-memory sketch store", "quotaBytes", cfg.StoreQuotaBytes)
	}

	library := sketch.NewLibrary(kv)

	authService := auth.NewService(cfg.AccessKeyHash, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)
	if !authService.Enabled() {
		slog.Warn("ACCESS_KEY_HASH not set, authentication disabled")
	}

	apiHandler := api.NewHandler(library, cfg.PreviewWidth, cfg.PreviewHeight)

	hub := session.NewHub()
	go hub.Run()

	origins := mw.SplitOrigins(cfg.AllowedOrigins)
	wsHandler := session.NewHandler(hub, editor.Options{
		Library:      library,
		HistoryLimit: cfg.HistoryLimit,
		Logger:       logger,
	}, originPatterns(origins))

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(origins))

	// Preflight requests never reach the method-bound routes below.
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Auth routes (public)
	r.HandleFunc("/auth/token", authHandler.Token).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok","sessions":%d}`, hub.Count())
	}).Methods("GET")

	// Protected API routes
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(authService.AuthMiddleware)
	apiHandler.Routes(apiRouter)

	// WebSocket endpoint
	r.Handle("/ws/editor", authService.AuthMiddleware(wsHandler))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// originPatterns converts allowed origins into the host patterns the
// websocket handshake checks against.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			return []string{"*"}
		}
		o = strings.TrimPrefix(o, "http://")
		o = strings.TrimPrefix(o, "https://")
		out = append(out, o)
	}
	return out
}
