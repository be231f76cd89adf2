// Package storage publishes produced reports to an S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/appsurify/testbrain/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const presignedURLExpiration = 1 * time.Hour

// S3Uploader implements the types.FileUploader interface to upload files to any S3-compatible bucket.
type S3Uploader struct {
	s3     *s3.Client
	bucket string
}

// NewS3Uploader loads the default AWS configuration (environment, shared config files, instance role).
// An empty region keeps the region of that configuration.
func NewS3Uploader(ctx context.Context, region, bucket string) (*S3Uploader, error) {
	if bucket == "" {
		return nil, errors.New("bucket name is required for S3 upload")
	}

	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("can't load AWS configuration: %w", err)
	}

	return &S3Uploader{
		s3:     s3.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

func (u *S3Uploader) UploadFile(ctx context.Context, filePath, targetPath string) error {
	file, err := os.Open(filePath) //nolint:gosec
	if err != nil {
		return fmt.Errorf("can't open file %s: %w", filePath, err)
	}

	defer func() {
		err := file.Close()
		if err != nil {
			logger.Errorf("can't close file %s: %v", filePath, err)
		}
	}()

	buffer, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("can't read file %s: %w", filePath, err)
	}
	size := int64(len(buffer))

	query := &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(targetPath),
		ACL:           s3types.ObjectCannedACLPrivate,
		Body:          bytes.NewReader(buffer),
		ContentLength: &size,
		ContentType:   aws.String(contentType(filePath, buffer)),
	}

	_, err = u.s3.PutObject(ctx, query)
	if err != nil {
		return fmt.Errorf("can't send S3 PUT request: %w", err)
	}

	return nil
}

// PresignedURL generates a presigned URL for accessing an object in any S3 bucket.
// The URL is valid for a limited time and allows temporary access to the specified object.
func (u *S3Uploader) PresignedURL(ctx context.Context, targetPath string) (string, error) {
	presignClient := s3.NewPresignClient(u.s3)
	presignParams := &s3.GetObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(targetPath),
	}

	presignedURL, err := presignClient.PresignGetObject(ctx, presignParams,
		func(o *s3.PresignOptions) {
			o.Expires = presignedURLExpiration
		})
	if err != nil {
		return "", fmt.Errorf("can't generate presigned URL: %w", err)
	}

	return presignedURL.URL, nil
}
