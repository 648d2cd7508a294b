package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
)

// ImageStorage uploads images to a hosting provider and deletes them by the
// public URL it returned.
type ImageStorage interface {
	// UploadImage uploads image from reader and returns its public URL.
	// folder is a logical folder in storage (e.g. "events").
	UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	DeleteImage(ctx context.Context, fileURL string) error
}

// ErrForeignURL is returned by DeleteImage for a URL the storage did not
// issue. Such images belong to someone else and are left alone.
var ErrForeignURL = errors.New("url was not issued by this storage")

type Config struct {
	Provider string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2Bucket          string
	R2PublicURL       string
}

// New builds the provider named by cfg.Provider.
func New(ctx context.Context, cfg Config) (ImageStorage, error) {
	switch cfg.Provider {
	case "", "cloudinary":
		return NewCloudinaryStorage(cfg)
	case "r2":
		return NewR2Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

func isImage(fileName string) bool {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".gif", ".webp":
		return true
	}
	return false
}

func contentType(fileName string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); t != "" {
		return t
	}
	return "application/octet-stream"
}
