package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/appsurify/testbrain/pkg/mock"
	"github.com/appsurify/testbrain/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix   string
		expected string
	}{
		{prefix: "", expected: "alpha-bravo/report.json"},
		{prefix: "reports", expected: "reports/alpha-bravo/report.json"},
		{prefix: "/ci/reports/", expected: "ci/reports/alpha-bravo/report.json"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, storage.ObjectKey(test.prefix, "alpha-bravo", "/tmp/out/report.json"))
	}
}

func TestPublish(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"total": 1}`), 0o644))

	uploader := mock.NewUploader()
	url, err := storage.Publish(context.Background(), uploader, file, "reports/key/report.json")
	require.NoError(t, err)

	assert.Equal(t, "https://bucket.example.com/reports/key/report.json?X-Amz-Signature=mock", url)
	require.Len(t, uploader.Uploads, 1)
	assert.Equal(t, "reports/key/report.json", uploader.Uploads[0].TargetPath)
	assert.Equal(t, `{"total": 1}`, string(uploader.Uploads[0].Content))
}

func TestPublish_errors(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(file, []byte(`{}`), 0o644))

	failing := mock.NewUploader()
	failing.UploadError = errors.New("access denied")
	_, err := storage.Publish(context.Background(), failing, file, "key")
	require.ErrorContains(t, err, "access denied")
	assert.ErrorContains(t, err, "can't upload report")

	unsigned := mock.NewUploader()
	unsigned.PresignedError = errors.New("no credentials")
	_, err = storage.Publish(context.Background(), unsigned, file, "key")
	require.ErrorContains(t, err, "no credentials")
	assert.Len(t, unsigned.Uploads, 1)
}
