package binder

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
)

// DefaultMaxMemory is the multipart memory budget.
const DefaultMaxMemory = 10 << 20

// FileUpload is a fully read multipart file.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}

// GetFile reads the multipart file in field. Files larger than maxSize are
// rejected with ErrFileTooLarge.
func GetFile(r *http.Request, field string, maxSize int64) (*FileUpload, error) {
	if mediaType(r) != "multipart/form-data" {
		return nil, fmt.Errorf("%w: expected multipart/form-data", ErrInvalidFile)
	}
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
		}
	}

	f, hdr, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, ErrMissingFile
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	defer f.Close()

	if maxSize > 0 && hdr.Size > maxSize {
		return nil, ErrFileTooLarge
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	ct := hdr.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		ct = mt
	} else {
		ct = mime.TypeByExtension(filepath.Ext(hdr.Filename))
	}

	return &FileUpload{
		Filename:    filepath.Base(hdr.Filename),
		ContentType: ct,
		Size:        hdr.Size,
		Content:     data,
	}, nil
}
