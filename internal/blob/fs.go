// Package blob implements evidence blob storage on the local filesystem.
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid/v5"
)

// FS stores blobs under a root directory, one subdirectory per complaint.
type FS struct{ root string }

// NewFS constructs a filesystem store rooted at dir, creating it if needed.
func NewFS(dir string) (*FS, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FS{root: dir}, nil
}

// Save writes the blob under a random name that keeps the original extension.
func (f *FS) Save(ctx context.Context, complaintID uuid.UUID, fileName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	dir := filepath.Join(f.root, complaintID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return "", 0, err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s%s", id, filepath.Ext(fileName)))

	dst, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	n, err := io.Copy(dst, r)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, err
	}
	return path, n, nil
}

// Delete removes a stored blob. A missing file is not an error.
func (f *FS) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
