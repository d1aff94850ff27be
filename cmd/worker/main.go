package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	"cvsearch/internal/activities"
	"cvsearch/internal/config"
	"cvsearch/internal/extract"
	"cvsearch/internal/logger"
	"cvsearch/internal/ocr"
	"cvsearch/internal/workflows"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	l, err := logger.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()

	addr := cfg.TemporalAddress
	if addr == "" {
		addr = client.DefaultHostPort
	}
	c, err := client.Dial(client.Options{HostPort: addr})
	if err != nil {
		l.Fatal("dial temporal", zap.String("addr", addr), zap.Error(err))
	}
	defer c.Close()

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	workflows.Register(w)
	ex := extract.New(ocr.NewDefault(cfg.TesseractCmd, cfg.OCRLanguage))
	activities.Register(w, activities.New(ex, l))

	l.Info("cvsearch worker listening", zap.String("addr", addr), zap.String("queue", cfg.TemporalTaskQueue))
	if err := w.Run(worker.InterruptCh()); err != nil {
		l.Fatal("worker stopped", zap.Error(err))
	}
}
