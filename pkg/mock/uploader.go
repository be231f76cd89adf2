package mock

import (
	"context"
	"os"
	"sync"
)

type Upload struct {
	FilePath   string
	TargetPath string
	Content    []byte
}

// Uploader records uploaded files instead of sending them.
type Uploader struct {
	Uploads        []Upload
	UploadError    error
	PresignedError error
	Lock           sync.Locker
}

func NewUploader() *Uploader {
	return &Uploader{
		Lock: new(sync.Mutex),
	}
}

func (u *Uploader) UploadFile(_ context.Context, filePath, targetPath string) error {
	u.Lock.Lock()
	defer u.Lock.Unlock()

	if u.UploadError != nil {
		return u.UploadError
	}

	content, err := os.ReadFile(filePath) //nolint:gosec
	if err != nil {
		return err
	}

	u.Uploads = append(u.Uploads, Upload{
		FilePath:   filePath,
		TargetPath: targetPath,
		Content:    content,
	})

	return nil
}

func (u *Uploader) PresignedURL(_ context.Context, targetPath string) (string, error) {
	if u.PresignedError != nil {
		return "", u.PresignedError
	}
	return "https://bucket.example.com/" + targetPath + "?X-Amz-Signature=mock", nil
}
