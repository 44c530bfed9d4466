package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/snapnest/snapnest/internal/apperr"
	"github.com/snapnest/snapnest/internal/model"
	"github.com/snapnest/snapnest/internal/storage"
	"github.com/snapnest/snapnest/internal/validation"
)

const (
	FolderPins    = "pins"
	FolderAvatars = "avatars"
)

// Upload is an image received in a multipart form.
type Upload struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// ImageService hosts pin and profile images on the configured storage.
type ImageService struct {
	storage  storage.Storage
	maxBytes int64
}

func NewImageService(storage storage.Storage, maxBytes int64) *ImageService {
	return &ImageService{
		storage:  storage,
		maxBytes: maxBytes,
	}
}

// Upload validates the image and stores it under folder with a fresh name.
func (s *ImageService) Upload(ctx context.Context, folder string, up *Upload) (model.Image, error) {
	contentType, err := validation.ValidateImage(up.Header, up.File, s.maxBytes)
	if errors.Is(err, validation.ErrEmptyFile) {
		return model.Image{}, apperr.Validation("Image file is empty")
	}
	if err != nil {
		return model.Image{}, apperr.Validation(capitalize(err.Error()))
	}

	ext := strings.ToLower(path.Ext(up.Header.Filename))
	key := path.Join(folder, uuid.New().String()+ext)

	err = s.storage.Save(ctx, key, up.File, contentType)
	if err != nil {
		return model.Image{}, apperr.External("Failed to upload image", err)
	}

	slog.Debug("image uploaded", "key", key, "size", up.Header.Size)
	return model.Image{URL: s.storage.URL(key), StorageID: key}, nil
}

// Delete removes a hosted image. Images without a storage id (the default
// avatar) are left alone.
func (s *ImageService) Delete(ctx context.Context, img model.Image) error {
	if img.StorageID == "" {
		return nil
	}
	err := s.storage.Delete(ctx, img.StorageID)
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", img.StorageID, err)
	}
	return nil
}

// DeleteQuietly removes images and only logs failures.
func (s *ImageService) DeleteQuietly(ctx context.Context, imgs ...model.Image) {
	for _, img := range imgs {
		err := s.Delete(ctx, img)
		if err != nil {
			slog.Warn("failed to delete image from storage", "error", err, "storage_id", img.StorageID)
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
