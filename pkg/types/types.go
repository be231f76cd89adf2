package types

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Status is the normalized outcome of a single test.
type Status string

const (
	// StatusPassed is a test that ran and succeeded.
	StatusPassed Status = "passed"
	// StatusFailure is a test whose assertions failed.
	StatusFailure Status = "failure"
	// StatusError is a test that could not complete because of an unexpected error.
	StatusError Status = "error"
	// StatusSkipped is a test that was not executed.
	StatusSkipped Status = "skipped"
	// StatusUnknown is used when a producer outcome has no counterpart in this vocabulary.
	StatusUnknown Status = "unknown"
)

// Format is a test report dialect.
type Format string

const (
	// FormatJUnit is the JUnit XML dialect.
	FormatJUnit Format = "junit"
	// FormatTRX is the MSTest / Visual Studio TRX dialect.
	FormatTRX Format = "trx"
	// FormatAllure is an Allure generated report directory.
	FormatAllure Format = "allure"
	// FormatTestbrain is the canonical dialect-neutral report.
	FormatTestbrain Format = "testbrain"
)

// ParseFormat validates a user supplied report format.
func ParseFormat(value string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(value)))
	switch format {
	case FormatJUnit, FormatTRX, FormatAllure, FormatTestbrain:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", value)
	}
}

// Source is the input of a report parser: either in-memory text or a file path, never both.
type Source struct {
	Text []byte
	Path string
}

// Ambiguous reports whether both the text and the path were given.
func (s Source) Ambiguous() bool {
	return len(s.Text) > 0 && s.Path != ""
}

// Read returns the report bytes.
func (s Source) Read() ([]byte, error) {
	if s.Path == "" {
		return s.Text, nil
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("can't read report %s: %w", s.Path, err)
	}
	return data, nil
}

// FileUploader uploads produced reports to a remote storage.
type FileUploader interface {
	UploadFile(ctx context.Context, filePath, targetPath string) error
	PresignedURL(ctx context.Context, targetPath string) (string, error)
}
