package dto

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

// UploadFile is a file received from a multipart form.
type UploadFile struct {
	Reader   io.Reader
	FileName string
	Size     int64

	closer io.Closer
}

func (f *UploadFile) Close() error {
	if f == nil || f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

// MaxImageSize bounds every image upload.
const MaxImageSize = 10 << 20

// OpenUpload opens fh, rejecting files above maxSize bytes.
func OpenUpload(fh *multipart.FileHeader, maxSize int64) (*UploadFile, error) {
	if fh == nil {
		return nil, nil
	}
	if maxSize > 0 && fh.Size > maxSize {
		return nil, fmt.Errorf("file %s is larger than %d MB: %w", fh.Filename, maxSize>>20, apperror.ErrInvalidInput)
	}
	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v: %w", fh.Filename, err, apperror.ErrBadRequest)
	}
	return &UploadFile{Reader: file, FileName: fh.Filename, Size: fh.Size, closer: file}, nil
}
