package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/appsurify/testbrain/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3Uploader(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		uploader, err := storage.NewS3Uploader(context.Background(), "eu-west-3", "bucket")
		require.NoError(t, err)
		assert.NotNil(t, uploader)
	})

	t.Run("no bucket", func(t *testing.T) {
		t.Parallel()

		_, err := storage.NewS3Uploader(context.Background(), "eu-west-3", "")
		require.Error(t, err)
		assert.ErrorContains(t, err, "bucket name is required for S3 upload")
	})

	t.Run("no region", func(t *testing.T) {
		t.Parallel()

		_, err := storage.NewS3Uploader(context.Background(), "", "bucket")
		require.NoError(t, err)
	})
}

func TestUploadFileS3(t *testing.T) {
	t.Parallel()

	uploader, err := storage.NewS3Uploader(context.Background(), "eu-west-3", "bucket")
	require.NoError(t, err)

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		missingFile := filepath.Join(t.TempDir(), "does-not-exist")
		err := uploader.UploadFile(context.Background(), missingFile, "target/path")
		require.Error(t, err)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()

		existingFile := filepath.Join(t.TempDir(), "report.json")
		require.NoError(t, os.WriteFile(existingFile, []byte(`{"total": 0}`), 0o644))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := uploader.UploadFile(ctx, existingFile, "target/path")
		require.Error(t, err)
		assert.ErrorContains(t, err, "can't send S3 PUT request")
	})
}

func TestPresignedURL(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	uploader, err := storage.NewS3Uploader(context.Background(), "eu-west-3", "bucket")
	require.NoError(t, err)

	url, err := uploader.PresignedURL(context.Background(), "reports/abc/report.json")
	require.NoError(t, err)
	assert.Contains(t, url, "reports/abc/report.json")
	assert.Contains(t, url, "X-Amz-Expires=3600")
}
