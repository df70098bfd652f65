package storageclient

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskAdapter writes images under a local directory and serves them from
// baseURL + "/uploads/". It is meant for development.
type DiskAdapter struct {
	root    string
	baseURL string
}

func NewDiskAdapter(root, baseURL string) (*DiskAdapter, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskAdapter{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (a *DiskAdapter) Root() string { return a.root }

func (a *DiskAdapter) Put(ctx context.Context, object, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean := filepath.Clean("/" + object)
	if clean == "/" {
		return "", fmt.Errorf("invalid object name %q", object)
	}
	path := filepath.Join(a.root, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return a.baseURL + "/uploads" + filepath.ToSlash(clean), nil
}
