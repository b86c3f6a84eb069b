package probe

import (
	"context"

	"github.com/hamed0406/statuscheck/internal/domain"
)

// Checker performs a single check for a given endpoint. Implementations
// must be safe for concurrent use and never return a partial result.
type Checker interface {
	Check(ctx context.Context, target domain.Endpoint) domain.CheckResult
}

// CheckerFunc adapts a plain function to Checker.
type CheckerFunc func(ctx context.Context, target domain.Endpoint) domain.CheckResult

func (f CheckerFunc) Check(ctx context.Context, target domain.Endpoint) domain.CheckResult {
	return f(ctx, target)
}
