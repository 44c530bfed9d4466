package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/snapnest/snapnest/internal/apperr"
	"github.com/snapnest/snapnest/internal/service"
)

// multipartOverhead leaves room for the text fields next to the image.
const multipartOverhead = 1 << 20

// parseMultipart parses a multipart form capped at the upload limit.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	err := r.ParseMultipartForm(maxBytes + multipartOverhead)
	if err == nil {
		return nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperr.Validation(fmt.Sprintf("File too large: maximum size is %d MB", maxBytes/(1<<20)))
	}
	return apperr.Wrap(apperr.KindValidation, "Invalid form data", err)
}

// formImage returns the uploaded file under field, or nil when none was sent.
// The caller closes the file.
func formImage(r *http.Request, field string) (*service.Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Invalid image upload", err)
	}
	return &service.Upload{File: file, Header: header}, nil
}

func closeUpload(up *service.Upload) {
	if up != nil {
		_ = up.File.Close()
	}
}
