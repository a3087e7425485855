// @title Almacenes API
// @version 1.0
// @description Сервис разбора петиций, подбора по каталогу и корзины отгрузки.

// @host localhost:8000
// @BasePath /
// @schemes http

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"almacenes/internal/config"
	"almacenes/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", "error", err)
		os.Exit(1)
	}

	server.InitLogger(cfg.LogLevel)

	srv := server.NewServer(cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Сервер завершился с ошибкой", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		slog.Info("Получен сигнал остановки", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Ошибка остановки сервера", "error", err)
			os.Exit(1)
		}
	}
}
