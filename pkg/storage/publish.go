package storage

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/appsurify/testbrain/internal/logger"
	"github.com/appsurify/testbrain/pkg/types"
)

var contentTypes = map[string]string{
	".json": "application/json",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".xml":  "application/xml",
}

// ObjectKey builds the object key of a report: <prefix>/<fingerprint>/<file name>.
// Reports with the same content land on the same key.
func ObjectKey(prefix, fingerprint, filePath string) string {
	return path.Join(strings.Trim(prefix, "/"), fingerprint, filepath.Base(filePath))
}

// Publish uploads a report file and returns a presigned URL to download it.
func Publish(ctx context.Context, uploader types.FileUploader, filePath, targetPath string) (string, error) {
	logger.Infof("Uploading %s to %s", filePath, targetPath)
	if err := uploader.UploadFile(ctx, filePath, targetPath); err != nil {
		return "", fmt.Errorf("can't upload report %s: %w", filePath, err)
	}

	url, err := uploader.PresignedURL(ctx, targetPath)
	if err != nil {
		return "", err
	}
	logger.Debugf("Report %s is available at %s", targetPath, url)

	return url, nil
}

// contentType prefers the file extension, then sniffs the content.
func contentType(filePath string, content []byte) string {
	if byExtension, ok := contentTypes[strings.ToLower(filepath.Ext(filePath))]; ok {
		return byExtension
	}
	return http.DetectContentType(content)
}
