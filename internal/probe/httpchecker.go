package probe

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/statuscheck/internal/domain"
)

// DefaultTimeout bounds a single GET, including reading headers.
const DefaultTimeout = 5 * time.Second

type HTTPChecker struct {
	Client *http.Client
	Audit  *zap.Logger
}

// NewHTTPChecker returns a checker that logs one audit line per check.
// A nil audit logger disables auditing.
func NewHTTPChecker(timeout time.Duration, audit *zap.Logger) *HTTPChecker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if audit == nil {
		audit = zap.NewNop()
	}
	return &HTTPChecker{
		Client: &http.Client{Timeout: timeout},
		Audit:  audit,
	}
}

func (h *HTTPChecker) Check(ctx context.Context, target domain.Endpoint) domain.CheckResult {
	url := string(target)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return h.fail(target, err)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return h.fail(target, err)
	}
	// drain so the connection can be reused; the body itself is irrelevant
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()

	h.Audit.Info(url + " - " + strconv.Itoa(resp.StatusCode))
	return domain.Succeeded(target, resp.StatusCode, time.Now().UTC())
}

func (h *HTTPChecker) fail(target domain.Endpoint, err error) domain.CheckResult {
	h.Audit.Error("Failed to reach " + string(target))
	return domain.Failed(target, err.Error(), time.Now().UTC())
}
