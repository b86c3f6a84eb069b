package repo

import (
	"context"
	"errors"

	"github.com/hamed0406/statuscheck/internal/domain"
)

// ErrNoResults is returned by Latest before any run has been saved.
var ErrNoResults = errors.New("no results saved yet")

// ResultStore keeps the most recent result set. Save replaces whatever was
// stored before.
type ResultStore interface {
	Save(ctx context.Context, rs domain.ResultSet) error
	Latest(ctx context.Context) (domain.ResultSet, error)
}
