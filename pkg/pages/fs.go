package pages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/bitsbytes/blog/pkg/vdom"
)

// FSSource serves fragments from a file system, typically
// os.DirFS(cfg.Pages.Dir).
type FSSource struct {
	fsys fs.FS
}

// NewFSSource creates a Source backed by fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// Lookup implements Source.
func (s *FSSource) Lookup(ctx context.Context, urlPath string) (*vdom.VNode, error) {
	keys, ok := Keys(urlPath)
	if !ok {
		return nil, ErrNotFound
	}

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := s.read(key)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		return vdom.Raw(string(data)), nil
	}

	return nil, ErrNotFound
}

func (s *FSSource) read(key string) ([]byte, error) {
	f, err := s.fsys.Open(key)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fs.ErrNotExist
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxPageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxPageBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}
