package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/raf-aleaqarih/raf24-api/internal/config"
)

// localStorage is the development fallback used when no object storage
// credentials are configured. Files land under cfg.UploadDir and are served
// by the API under /uploads/.
type localStorage struct {
	cfg *config.Config
}

// NewLocalStorage creates the filesystem-backed storage adapter.
func NewLocalStorage(cfg *config.Config) (IObjectStorage, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", cfg.UploadDir, err)
	}
	return &localStorage{cfg: cfg}, nil
}

func (l *localStorage) Upload(ctx context.Context, category, filename, contentType string, body io.Reader, size int64) (string, string, error) {
	key := objectKey(category, filename)
	dst := filepath.Join(l.cfg.UploadDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create directory for %s: %w", key, err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file for %s: %w", key, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return "", "", fmt.Errorf("failed to write file for %s: %w", key, err)
	}

	return l.publicURL(key), key, nil
}

func (l *localStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(l.cfg.UploadDir, filepath.FromSlash(key)))
	if err != nil {
		return nil, fmt.Errorf("failed to open local object %s: %w", key, err)
	}
	return f, nil
}

func (l *localStorage) UploadVariant(ctx context.Context, key string, width int, contentType string, body io.Reader, size int64) error {
	vk := VariantKey(key, width)
	dst := filepath.Join(l.cfg.UploadDir, filepath.FromSlash(vk))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", vk, err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create file for %s: %w", vk, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return fmt.Errorf("failed to write file for %s: %w", vk, err)
	}
	return nil
}

func (l *localStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(l.cfg.UploadDir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete local object %s: %w", key, err)
	}
	return nil
}

func (l *localStorage) VariantURL(key string, width int) string {
	return l.publicURL(VariantKey(key, width))
}

func (l *localStorage) publicURL(key string) string {
	base := l.cfg.ImageBaseURL
	if base == "" {
		base = "/uploads"
	}
	return strings.TrimSuffix(base, "/") + "/" + key
}
