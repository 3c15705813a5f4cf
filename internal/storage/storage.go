package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/raf-aleaqarih/raf24-api/internal/config"
)

// IObjectStorage is the object storage adapter used for gallery and
// apartment images. Upload returns the public URL and the object key.
type IObjectStorage interface {
	Upload(ctx context.Context, category, filename, contentType string, body io.Reader, size int64) (url string, key string, err error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// UploadVariant stores a resized rendition of an existing object under
	// its width-derived key.
	UploadVariant(ctx context.Context, key string, width int, contentType string, body io.Reader, size int64) error
	// VariantURL returns the URL of a width-constrained variant of an
	// uploaded image, generated by the background worker.
	VariantURL(key string, width int) string
}

// NewStorage returns the S3 adapter when credentials are configured and the
// local filesystem fallback otherwise.
func NewStorage(cfg *config.Config) (IObjectStorage, error) {
	if cfg.AwsAccessKeyID == "" {
		return NewLocalStorage(cfg)
	}
	return NewS3Storage(cfg)
}

// objectKey builds a collision-free key for an uploaded file, keeping only
// the original extension.
func objectKey(category, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if category == "" {
		category = "misc"
	}
	return fmt.Sprintf("raf24/%s/%s%s", category, uuid.NewString(), ext)
}

// VariantKey derives the key of a resized variant from the original key:
// "raf24/a/b.jpg" -> "raf24/a/b_w480.jpg".
func VariantKey(key string, width int) string {
	ext := path.Ext(key)
	return fmt.Sprintf("%s_w%d%s", strings.TrimSuffix(key, ext), width, ext)
}
