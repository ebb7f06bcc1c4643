package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sir_venger/step_drop/internal/app/resthttp"
	"github.com/sir_venger/step_drop/internal/config"
)

// main инициализирует REST HTTP-сервис и обеспечивает корректное завершение по сигналу.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Недоступный для записи каталог загрузок означает ошибку старта.
	handler, _, err := resthttp.NewServer(cfg)
	if err != nil {
		log.Fatalf("service=rest msg=%q upload_dir=%s err=%v", "startup_failed", cfg.UploadDir, err)
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("REST shutdown error: %v", err)
		}
	}()

	log.Printf("REST listening on %s (UPLOAD_DIR=%s)", cfg.ListenAddr, cfg.UploadDir)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("REST final shutdown error: %v", err)
	}
}
