package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hamed0406/statuscheck/internal/domain"
	"github.com/hamed0406/statuscheck/internal/probe"
)

// DefaultConcurrency is the number of checks allowed in flight at once.
const DefaultConcurrency = 5

// Runner fans a Checker out over a target list with bounded concurrency.
type Runner struct {
	Logger      *zap.Logger
	Checker     probe.Checker
	Concurrency int
}

func NewRunner(logger *zap.Logger, checker probe.Checker, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Logger:      logger,
		Checker:     checker,
		Concurrency: concurrency,
	}
}

// Run checks every target exactly once and blocks until all checks are
// done. The result at index i always belongs to targets[i]. A failed check
// never stops the others.
func (r *Runner) Run(ctx context.Context, targets []domain.Endpoint) domain.ResultSet {
	results := make(domain.ResultSet, len(targets))
	if len(targets) == 0 {
		return results
	}

	start := time.Now()
	var g errgroup.Group
	g.SetLimit(r.Concurrency)

	for i, tgt := range targets {
		g.Go(func() error {
			results[i] = r.Checker.Check(ctx, tgt)
			r.Logger.Debug("check_done",
				zap.Int("index", i),
				zap.String("url", string(tgt)),
				zap.Stringer("outcome", results[i].Outcome),
			)
			return nil
		})
	}
	_ = g.Wait()

	up := 0
	for _, res := range results {
		if res.Outcome == domain.Success {
			up++
		}
	}
	r.Logger.Info("run_complete",
		zap.Int("targets", len(targets)),
		zap.Int("reachable", up),
		zap.Int("failed", len(targets)-up),
		zap.Int("concurrency", r.Concurrency),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results
}
