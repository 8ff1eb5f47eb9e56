package sources

import (
	"context"
	"io"
	"os"

	"github.com/agentstation/shelfmap/pkg/errors"
)

// FileSource reads a dataset export from disk.
type FileSource struct {
	name string
	path string
}

// NewFile creates a file source.
func NewFile(name, path string) *FileSource {
	return &FileSource{name: name, path: path}
}

// Name implements Source.
func (s *FileSource) Name() string { return s.name }

// URI implements Source.
func (s *FileSource) URI() string { return s.path }

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Join(errors.NewNotFoundError("file", s.path), err)
		}
		return nil, errors.WrapIO("open", s.path, err)
	}
	return f, nil
}
