package repo

import (
	"context"
	"errors"

	"go.uber.org/multierr"

	"github.com/hamed0406/statuscheck/internal/domain"
)

// Multi fans Save out to every store and serves Latest from the first store
// that has results.
type Multi []ResultStore

func (m Multi) Save(ctx context.Context, rs domain.ResultSet) error {
	var err error
	for _, s := range m {
		if s == nil {
			continue
		}
		err = multierr.Append(err, s.Save(ctx, rs))
	}
	return err
}

func (m Multi) Latest(ctx context.Context) (domain.ResultSet, error) {
	var err error
	for _, s := range m {
		if s == nil {
			continue
		}
		rs, lerr := s.Latest(ctx)
		if lerr == nil {
			return rs, nil
		}
		if !errors.Is(lerr, ErrNoResults) {
			err = multierr.Append(err, lerr)
		}
	}
	if err != nil {
		return nil, err
	}
	return nil, ErrNoResults
}
