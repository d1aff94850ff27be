package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"cvsearch/internal/api"
	"cvsearch/internal/app"
	"cvsearch/internal/config"
	"cvsearch/internal/logger"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	l, err := logger.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, l)
	if err != nil {
		l.Fatal("build app", zap.Error(err))
	}
	defer a.Close()

	h := api.NewServer(api.Deps{
		Store:          a.Collection,
		Searcher:       a.Searcher,
		Batch:          a.Batch,
		Log:            l,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	})
	srv := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	l.Info("cvsearch api listening",
		zap.String("addr", cfg.APIAddr),
		zap.String("collection", cfg.CollectionDir),
		zap.Bool("search_log", cfg.PostgresURL != ""),
		zap.Bool("temporal", cfg.TemporalAddress != ""),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Fatal("serve", zap.Error(err))
	}
}
