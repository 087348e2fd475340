package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type localUploader struct {
	dir string
}

// NewLocalUploader writes archives below dir, used when no bucket is configured
func NewLocalUploader(dir string) (Uploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive dir %s: %w", dir, err)
	}
	return &localUploader{dir: dir}, nil
}

func (u *localUploader) path(key string) (string, error) {
	p := filepath.Join(u.dir, filepath.FromSlash(key))
	rel, err := filepath.Rel(u.dir, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid archive key %q", key)
	}
	return p, nil
}

func (u *localUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	p, err := u.path(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, err
	}

	f, err := os.Create(p)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive file (key: %s): %w", key, err)
	}
	defer f.Close()

	hash := md5.New()
	if _, err := io.Copy(io.MultiWriter(f, hash), reader); err != nil {
		return nil, fmt.Errorf("failed to write archive file (key: %s): %w", key, err)
	}

	return &UploadResult{
		Key:      key,
		Location: u.GetPublicURL(key),
		ETag:     hex.EncodeToString(hash.Sum(nil)),
	}, f.Close()
}

func (u *localUploader) Delete(ctx context.Context, key string) error {
	p, err := u.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (u *localUploader) GetPublicURL(key string) string {
	p, err := u.path(key)
	if err != nil {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return "file://" + filepath.ToSlash(abs)
}
