// Package storage provides the local-disk FileStore used for college-ID
// uploads. The returned reference is an opaque URL path; swapping in an
// object-store implementation only has to honor that contract.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"festregistration/internal/domain"
)

type localFileStore struct {
	dir     string
	baseURL string
}

// NewLocalFileStore returns a FileStore writing into dir. Uploaded files are
// served under baseURL (e.g. "/uploads").
func NewLocalFileStore(dir, baseURL string) (domain.FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localFileStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Upload stores the file under a random name, keeping only the original
// extension, and returns its URL path.
func (s *localFileStore) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return s.baseURL + "/" + name, nil
}
