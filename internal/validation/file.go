package validation

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

var ErrEmptyFile = errors.New("file is empty")

// ImageConstraints lists the accepted image formats: detected content type
// mapped to the extensions allowed for it.
var ImageConstraints = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/webp": {".webp"},
	"image/gif":  {".gif"},
}

// ValidateImage checks size, sniffed content type and extension of an upload
// and returns the detected content type. The file offset is rewound.
func ValidateImage(header *multipart.FileHeader, file multipart.File, maxBytes int64) (string, error) {
	if header.Size == 0 {
		return "", ErrEmptyFile
	}
	if header.Size > maxBytes {
		return "", fmt.Errorf("file too large: maximum size is %d MB", maxBytes/(1<<20))
	}

	// http.DetectContentType looks at no more than 512 bytes
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return "", fmt.Errorf("failed to reset file pointer: %w", err)
	}

	detectedType := http.DetectContentType(buffer[:n])
	extensions, ok := ImageConstraints[detectedType]
	if !ok {
		return "", fmt.Errorf("invalid file type (detected: %s)", detectedType)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	for _, allowed := range extensions {
		if ext == allowed {
			return detectedType, nil
		}
	}

	return "", fmt.Errorf("invalid file extension: %s", ext)
}
