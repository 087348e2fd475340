package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUploader(t *testing.T) {
	dir := t.TempDir()
	uploader, err := NewLocalUploader(dir)
	require.NoError(t, err)

	ctx := context.Background()
	res, err := uploader.Upload(ctx, "tournaments/abc.json", "application/json", strings.NewReader(`{"id":"abc"}`))
	require.NoError(t, err)

	assert.Equal(t, "tournaments/abc.json", res.Key)
	assert.NotEmpty(t, res.ETag)
	assert.True(t, strings.HasPrefix(res.Location, "file://"))

	data, err := os.ReadFile(filepath.Join(dir, "tournaments", "abc.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"id":"abc"}`, string(data))

	require.NoError(t, uploader.Delete(ctx, "tournaments/abc.json"))
	_, err = os.Stat(filepath.Join(dir, "tournaments", "abc.json"))
	assert.True(t, os.IsNotExist(err))

	// Deleting twice is fine
	assert.NoError(t, uploader.Delete(ctx, "tournaments/abc.json"))
}

func TestLocalUploader_RejectsEscapingKeys(t *testing.T) {
	uploader, err := NewLocalUploader(t.TempDir())
	require.NoError(t, err)

	_, err = uploader.Upload(context.Background(), "../outside.json", "application/json", strings.NewReader("{}"))
	assert.Error(t, err)
}

func TestR2Config(t *testing.T) {
	cfg := R2Config{AccountID: "acc", AccessKeyID: "key", SecretAccessKey: "secret", BucketName: "bucket"}
	assert.False(t, cfg.Complete())

	_, err := NewR2Uploader(context.Background(), cfg)
	assert.Error(t, err)

	cfg.PublicBaseURL = "https://cdn.example.com/archive"
	assert.True(t, cfg.Complete())
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/archive/tournaments/a.json", joinURL("https://cdn.example.com/archive/", "/tournaments/a.json"))
	assert.Equal(t, "https://cdn.example.com/tournaments/a.json", joinURL("https://cdn.example.com", "tournaments/a.json"))
	assert.Empty(t, joinURL("", "a.json"))
}
