// Package file persists result sets as an indented JSON document on disk.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/hamed0406/statuscheck/internal/domain"
	"github.com/hamed0406/statuscheck/internal/repo"
)

var _ repo.ResultStore = (*Store)(nil)

const indent = "    "

type Store struct {
	Path   string
	Schema domain.Schema
}

func New(path string, schema domain.Schema) *Store {
	if schema == "" {
		schema = domain.SchemaLegacy
	}
	return &Store{Path: path, Schema: schema}
}

// Save replaces the document at s.Path. The new content is written to a
// temporary file in the same directory and renamed into place, so readers
// see either the old or the new document.
func (s *Store) Save(ctx context.Context, rs domain.ResultSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := encode(rs.Document(s.Schema))
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(b)
	err = multierr.Combine(err, tmp.Sync(), tmp.Close())
	if err == nil {
		err = os.Chmod(tmpName, 0o644)
	}
	if err == nil {
		err = os.Rename(tmpName, s.Path)
	}
	if err != nil {
		if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			err = multierr.Append(err, rmErr)
		}
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	return nil
}

// encode indents by four spaces and leaves &, < and > unescaped. There is no
// trailing newline.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Latest reads back the last saved document. Either schema is accepted.
func (s *Store) Latest(ctx context.Context) (domain.ResultSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, repo.ErrNoResults
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	var rs domain.ResultSet
	if err := json.Unmarshal(b, &rs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	if rs == nil {
		rs = domain.ResultSet{}
	}
	return rs, nil
}
