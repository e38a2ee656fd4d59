package domain

import (
	"context"
	"io"
)

// FileStore stores uploaded files (college ID documents) and returns an
// opaque URL reference.
type FileStore interface {
	Upload(ctx context.Context, filename string, r io.Reader) (url string, err error)
}
