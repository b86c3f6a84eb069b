package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/hamed0406/statuscheck/internal/config"
	"github.com/hamed0406/statuscheck/internal/logging"
	"github.com/hamed0406/statuscheck/internal/probe"
	"github.com/hamed0406/statuscheck/internal/repo/file"
	"github.com/hamed0406/statuscheck/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	if err := run(context.Background(), cfg, logger, os.Stdout); err != nil {
		logger.Error("run_failed", zap.Error(err))
		_ = logger.Sync()
		fmt.Fprintln(os.Stderr, "statuscheck:", err)
		os.Exit(1)
	}
	_ = logger.Sync()
}

// run checks every configured target once, writes the result document and
// reports where it went.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, stdout io.Writer) error {
	audit, closeAudit, err := logging.NewAuditLogger(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("open check log: %w", err)
	}
	defer func() { _ = closeAudit() }()

	checker := probe.NewHTTPChecker(cfg.CheckTimeout(), audit)
	runner := scheduler.NewRunner(logger, checker, cfg.Concurrency)
	targets := cfg.Endpoints()

	rs := runner.Run(ctx, targets)
	if err := rs.Matches(targets); err != nil {
		return err
	}

	if err := file.New(cfg.Output.File, cfg.Schema()).Save(ctx, rs); err != nil {
		return err
	}

	_, err = fmt.Fprintln(stdout, "Website status results saved to "+cfg.Output.File)
	return err
}
