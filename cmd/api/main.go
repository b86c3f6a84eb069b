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

	"go.uber.org/zap"

	"github.com/hamed0406/statuscheck/internal/config"
	"github.com/hamed0406/statuscheck/internal/httpapi"
	"github.com/hamed0406/statuscheck/internal/logging"
	"github.com/hamed0406/statuscheck/internal/probe"
	"github.com/hamed0406/statuscheck/internal/repo"
	"github.com/hamed0406/statuscheck/internal/repo/file"
	"github.com/hamed0406/statuscheck/internal/repo/memory"
	"github.com/hamed0406/statuscheck/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	audit, closeAudit, err := logging.NewAuditLogger(cfg.Log.File)
	if err != nil {
		log.Fatal(err)
	}
	defer closeAudit()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// memory first so reads are served without touching disk once a run exists
	mem := memory.New()
	disk := file.New(cfg.Output.File, cfg.Schema())
	if rs, err := disk.Latest(ctx); err == nil {
		_ = mem.Save(ctx, rs)
	} else if !errors.Is(err, repo.ErrNoResults) {
		logger.Warn("seed_latest_error", zap.Error(err))
	}

	runner := scheduler.NewRunner(logger, probe.NewHTTPChecker(cfg.CheckTimeout(), audit), cfg.Concurrency)
	api := httpapi.NewServer(logger, repo.Multi{mem, disk}, runner, cfg.Endpoints(), cfg.Schema())

	srv := &http.Server{
		Addr:         cfg.API.Addr,
		Handler:      api.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api_listen", zap.String("addr", cfg.API.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("api_shutdown_error", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil {
			logger.Fatal("api_listen_error", zap.Error(err))
		}
	}
}
