package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/snapnest/snapnest/internal/apperr"
	"github.com/snapnest/snapnest/internal/db"
	"github.com/snapnest/snapnest/internal/model"
	"github.com/snapnest/snapnest/internal/repository"
)

type CreatePinInput struct {
	Title       string
	Description string
	Category    string
	Image       *Upload
}

type PinService struct {
	db                 *sqlx.DB
	pinRepository      repository.PinRepository
	commentRepository  repository.CommentRepository
	savedPinRepository repository.SavedPinRepository
	imageService       *ImageService
}

func NewPinService(database *sqlx.DB, imageService *ImageService) *PinService {
	return &PinService{
		db:                 database,
		pinRepository:      repository.NewPinRepository(database),
		commentRepository:  repository.NewCommentRepository(database),
		savedPinRepository: repository.NewSavedPinRepository(database),
		imageService:       imageService,
	}
}

// Create uploads the image and stores the pin. The upload is removed again
// when the row cannot be written.
func (s *PinService) Create(ctx context.Context, userID string, in CreatePinInput) (*model.Pin, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	category := strings.TrimSpace(in.Category)
	if title == "" || description == "" || category == "" || in.Image == nil {
		return nil, apperr.Validation("All fields including image are required")
	}

	img, err := s.imageService.Upload(ctx, FolderPins, in.Image)
	if err != nil {
		return nil, err
	}

	pin := &model.Pin{
		ID:             uuid.New().String(),
		Title:          title,
		Description:    description,
		Category:       category,
		ImageURL:       img.URL,
		ImageStorageID: img.StorageID,
		CreatedBy:      userID,
	}

	err = s.pinRepository.Create(ctx, pin)
	if err != nil {
		s.imageService.DeleteQuietly(ctx, img)
		return nil, fmt.Errorf("failed to create pin: %w", err)
	}

	slog.Info("pin created", "pin_id", pin.ID, "user_id", userID)
	return pin, nil
}

// All returns every pin, newest first.
func (s *PinService) All(ctx context.Context) ([]model.PinWithAuthor, error) {
	pins, err := s.pinRepository.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pins: %w", err)
	}
	return pins, nil
}

// Single returns a pin with its author and commenters.
func (s *PinService) Single(ctx context.Context, id string) (*model.PinDetail, error) {
	return s.detail(ctx, s.db, id)
}

func (s *PinService) detail(ctx context.Context, q repository.Querier, id string) (*model.PinDetail, error) {
	pin, err := repository.NewPinRepository(q).WithAuthor(ctx, id)
	if errors.Is(err, repository.ErrPinNotFound) {
		return nil, apperr.NotFound("Pin not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pin: %w", err)
	}

	comments, err := repository.NewCommentRepository(q).ByPin(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return &model.PinDetail{PinWithAuthor: *pin, Comments: comments}, nil
}

func (s *PinService) UserPins(ctx context.Context, userID string) ([]model.Pin, error) {
	pins, err := s.pinRepository.ByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user pins: %w", err)
	}
	return pins, nil
}

func (s *PinService) AddComment(ctx context.Context, userID, pinID, text string) (*model.PinDetail, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("Comment cannot be empty.")
	}

	_, err := s.pinRepository.ByID(ctx, pinID)
	if errors.Is(err, repository.ErrPinNotFound) {
		return nil, apperr.NotFound("Pin not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pin: %w", err)
	}

	comment := &model.Comment{
		ID:     uuid.New().String(),
		PinID:  pinID,
		UserID: userID,
		Text:   text,
	}
	err = s.commentRepository.Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	slog.Info("comment added", "comment_id", comment.ID, "pin_id", pinID, "user_id", userID)
	return s.detail(ctx, s.db, pinID)
}

// DeleteComment removes a comment. Only its author or the owner of the pin
// it was left on may delete it.
func (s *PinService) DeleteComment(ctx context.Context, userID, commentID string) (*model.PinDetail, error) {
	var detail *model.PinDetail

	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		comments := repository.NewCommentRepository(tx)

		comment, err := comments.ByID(ctx, commentID)
		if errors.Is(err, repository.ErrCommentNotFound) {
			return apperr.NotFound("Comment not found in any pin")
		}
		if err != nil {
			return fmt.Errorf("failed to get comment: %w", err)
		}

		pin, err := repository.NewPinRepository(tx).ByID(ctx, comment.PinID)
		if err != nil {
			return fmt.Errorf("failed to get pin: %w", err)
		}

		if comment.UserID != userID && pin.CreatedBy != userID {
			return apperr.Forbidden("Unauthorized to delete this comment")
		}

		err = comments.Delete(ctx, commentID)
		if err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}

		detail, err = s.detail(ctx, tx, pin.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("comment deleted", "comment_id", commentID, "user_id", userID)
	return detail, nil
}

// DeletePin removes an owned pin. The hosted image goes first, then the row
// with its comments and bookmarks.
func (s *PinService) DeletePin(ctx context.Context, userID, pinID string) error {
	pin, err := s.pinRepository.ByID(ctx, pinID)
	if errors.Is(err, repository.ErrPinNotFound) {
		return apperr.NotFound("Pin not found")
	}
	if err != nil {
		return fmt.Errorf("failed to get pin: %w", err)
	}

	if pin.CreatedBy != userID {
		return apperr.Forbidden("Unauthorized to delete this pin")
	}

	err = s.imageService.Delete(ctx, pin.Image())
	if err != nil {
		return apperr.External("Failed to delete pin image", err)
	}

	err = db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		err := repository.NewCommentRepository(tx).DeleteByPin(ctx, pinID)
		if err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		err = repository.NewSavedPinRepository(tx).DeleteByPin(ctx, pinID)
		if err != nil {
			return fmt.Errorf("failed to delete bookmarks: %w", err)
		}
		err = repository.NewPinRepository(tx).Delete(ctx, pinID)
		if err != nil {
			return fmt.Errorf("failed to delete pin: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("pin deleted", "pin_id", pinID, "user_id", userID)
	return nil
}

// ToggleSave bookmarks the pin or removes the bookmark. It reports the new
// state and the caller's saved pin ids.
func (s *PinService) ToggleSave(ctx context.Context, userID, pinID string) (bool, []string, error) {
	if _, err := uuid.Parse(pinID); err != nil {
		return false, nil, apperr.Validation("Invalid pin ID")
	}

	var (
		saved bool
		ids   []string
	)
	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		_, err := repository.NewPinRepository(tx).ByID(ctx, pinID)
		if errors.Is(err, repository.ErrPinNotFound) {
			return apperr.NotFound("Pin not found")
		}
		if err != nil {
			return fmt.Errorf("failed to get pin: %w", err)
		}

		bookmarks := repository.NewSavedPinRepository(tx)
		removed, err := bookmarks.Unsave(ctx, userID, pinID)
		if err != nil {
			return fmt.Errorf("failed to unsave pin: %w", err)
		}
		if !removed {
			err = bookmarks.Save(ctx, userID, pinID)
			if err != nil {
				return fmt.Errorf("failed to save pin: %w", err)
			}
			saved = true
		}

		ids, err = bookmarks.PinIDs(ctx, userID)
		return err
	})
	if err != nil {
		return false, nil, err
	}

	slog.Debug("save toggled", "pin_id", pinID, "user_id", userID, "saved", saved)
	return saved, ids, nil
}

// Unsave removes an existing bookmark; the pin must currently be saved.
func (s *PinService) Unsave(ctx context.Context, userID, pinID string) ([]string, error) {
	if _, err := uuid.Parse(pinID); err != nil {
		return nil, apperr.Validation("Invalid pin ID")
	}

	removed, err := s.savedPinRepository.Unsave(ctx, userID, pinID)
	if err != nil {
		return nil, fmt.Errorf("failed to unsave pin: %w", err)
	}
	if !removed {
		return nil, apperr.Validation("Pin is not saved by the user")
	}

	ids, err := s.savedPinRepository.PinIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get saved pins: %w", err)
	}
	return ids, nil
}

// Saved returns the caller's bookmarks, most recently saved first.
func (s *PinService) Saved(ctx context.Context, userID string) ([]model.SavedPin, error) {
	pins, err := s.savedPinRepository.ByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get saved pins: %w", err)
	}
	return pins, nil
}

// Search matches pins by title, description or category, ignoring case.
func (s *PinService) Search(ctx context.Context, query string) ([]model.PinWithAuthor, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Validation("Search query is missing.")
	}

	pins, err := s.pinRepository.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search pins: %w", err)
	}
	return pins, nil
}
