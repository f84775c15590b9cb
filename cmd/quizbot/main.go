package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/IT-Nick/quiz-bot/internal/app"
	"github.com/IT-Nick/quiz-bot/internal/infra/config"
	"github.com/IT-Nick/quiz-bot/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось создать логгер: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Fatal("failed to init app", "error", err)
	}

	log.Info("app starting", "mode", cfg.Mode)
	if err := application.ListenAndServe(ctx); err != nil {
		log.Error("app stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("app stopped")
}
