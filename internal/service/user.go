package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/snapnest/snapnest/internal/apperr"
	"github.com/snapnest/snapnest/internal/db"
	"github.com/snapnest/snapnest/internal/model"
	"github.com/snapnest/snapnest/internal/repository"
	"github.com/snapnest/snapnest/internal/validation"
)

const (
	ConnectionFollowers = "followers"
	ConnectionFollowing = "following"

	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Profile is a user with the id sets hanging off it.
type Profile struct {
	User  *model.User
	Graph model.Graph
}

// ConnectionPage is one page of a follower or following list. Total counts
// every edge, not just the page.
type ConnectionPage struct {
	Data  []model.UserSummary
	Page  int
	Limit int
	Skip  int
	Total int
}

type EditProfileInput struct {
	Name  string
	Bio   string
	Image *Upload
}

type UserService struct {
	db                 *sqlx.DB
	userRepository     repository.UserRepository
	followRepository   repository.FollowRepository
	pinRepository      repository.PinRepository
	savedPinRepository repository.SavedPinRepository
	imageService       *ImageService
	mailer             Mailer
}

func NewUserService(database *sqlx.DB, imageService *ImageService, mailer Mailer) *UserService {
	return &UserService{
		db:                 database,
		userRepository:     repository.NewUserRepository(database),
		followRepository:   repository.NewFollowRepository(database),
		pinRepository:      repository.NewPinRepository(database),
		savedPinRepository: repository.NewSavedPinRepository(database),
		imageService:       imageService,
		mailer:             mailer,
	}
}

func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	return s.userRepository.ByID(ctx, id)
}

// Profile loads a user with followers, following and saved pin ids.
func (s *UserService) Profile(ctx context.Context, id string) (*Profile, error) {
	user, err := s.userRepository.ByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	graph, err := s.graph(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, Graph: graph}, nil
}

func (s *UserService) graph(ctx context.Context, userID string) (model.Graph, error) {
	followers, err := s.followRepository.FollowerIDs(ctx, userID)
	if err != nil {
		return model.Graph{}, fmt.Errorf("failed to get followers: %w", err)
	}
	following, err := s.followRepository.FollowingIDs(ctx, userID)
	if err != nil {
		return model.Graph{}, fmt.Errorf("failed to get following: %w", err)
	}
	saved, err := s.savedPinRepository.PinIDs(ctx, userID)
	if err != nil {
		return model.Graph{}, fmt.Errorf("failed to get saved pins: %w", err)
	}

	return model.Graph{Followers: followers, Following: following, SavedPins: saved}, nil
}

// FollowToggle follows targetID, or unfollows it when the edge exists.
// It reports whether the caller follows the target afterwards.
func (s *UserService) FollowToggle(ctx context.Context, userID, targetID string) (bool, error) {
	if userID == targetID {
		return false, apperr.Validation("You can't follow yourself.")
	}

	var followed bool
	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		_, err := repository.NewUserRepository(tx).ByID(ctx, targetID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperr.NotFound("User not found.")
		}
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}

		follows := repository.NewFollowRepository(tx)
		removed, err := follows.Delete(ctx, userID, targetID)
		if err != nil {
			return fmt.Errorf("failed to unfollow: %w", err)
		}
		if removed {
			return nil
		}

		err = follows.Create(ctx, userID, targetID)
		if err != nil {
			return fmt.Errorf("failed to follow: %w", err)
		}
		followed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	slog.Info("follow toggled", "user_id", userID, "target_id", targetID, "followed", followed)
	return followed, nil
}

// ListConnections pages through a user's followers or following.
// Non-positive page or limit fall back to the defaults; limit is capped at MaxLimit.
func (s *UserService) ListConnections(ctx context.Context, userID, kind string, page, limit int) (*ConnectionPage, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperr.Validation("Invalid user ID")
	}
	if kind != ConnectionFollowers && kind != ConnectionFollowing {
		return nil, apperr.Validation("Invalid type. Use 'followers' or 'following'.")
	}

	_, err := s.userRepository.ByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)
	if page-1 > math.MaxInt/limit {
		return nil, apperr.Validation("Invalid page")
	}
	skip := (page - 1) * limit

	var (
		data  []model.UserSummary
		total int
	)
	if kind == ConnectionFollowers {
		data, err = s.followRepository.Followers(ctx, userID, limit, skip)
		if err == nil {
			total, err = s.followRepository.CountFollowers(ctx, userID)
		}
	} else {
		data, err = s.followRepository.Following(ctx, userID, limit, skip)
		if err == nil {
			total, err = s.followRepository.CountFollowing(ctx, userID)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}

	return &ConnectionPage{
		Data:  data,
		Page:  page,
		Limit: limit,
		Skip:  skip,
		Total: total,
	}, nil
}

// EditProfile overwrites name and bio and optionally replaces the profile
// image. The previous hosted image is removed once the row points at the new one.
func (s *UserService) EditProfile(ctx context.Context, userID string, in EditProfileInput) (*model.User, error) {
	err := validation.ValidateName(in.Name)
	if err != nil {
		return nil, apperr.Validation(capitalize(err.Error()))
	}

	user, err := s.userRepository.ByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	previous := user.ProfileImage()
	var uploaded *model.Image
	if in.Image != nil {
		img, err := s.imageService.Upload(ctx, FolderAvatars, in.Image)
		if err != nil {
			return nil, err
		}
		uploaded = &img
		user.ProfileImageURL = img.URL
		user.ProfileImageStorageID = img.StorageID
	}

	user.Name = strings.TrimSpace(in.Name)
	user.Bio = strings.TrimSpace(in.Bio)

	err = s.userRepository.Update(ctx, user)
	if err != nil {
		if uploaded != nil {
			s.imageService.DeleteQuietly(ctx, *uploaded)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if uploaded != nil {
		s.imageService.DeleteQuietly(ctx, previous)
	}

	slog.Info("profile updated", "user_id", user.ID, "image_replaced", uploaded != nil)
	return user, nil
}

// Feed lists pins by users the caller follows, newest first.
func (s *UserService) Feed(ctx context.Context, userID string) ([]model.PinWithAuthor, error) {
	pins, err := s.pinRepository.Feed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}
	return pins, nil
}

// DeleteAccount removes the user and everything hanging off it in one
// transaction. Hosted images and the farewell email follow the commit and
// never fail the request.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	var (
		user   *model.User
		images []model.Image
	)

	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		users := repository.NewUserRepository(tx)
		pins := repository.NewPinRepository(tx)

		user, err = users.ByID(ctx, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperr.NotFound("User not found")
		}
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}

		owned, err := pins.ByCreator(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list pins: %w", err)
		}
		for i := range owned {
			images = append(images, owned[i].Image())
		}

		err = repository.NewFollowRepository(tx).DeleteAllForUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to delete follows: %w", err)
		}
		err = repository.NewSavedPinRepository(tx).DeleteByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to delete saved pins: %w", err)
		}
		err = repository.NewCommentRepository(tx).DeleteByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		err = pins.DeleteByCreator(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to delete pins: %w", err)
		}
		err = repository.NewTokenRepository(tx).DeleteByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to delete tokens: %w", err)
		}
		err = users.Delete(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	images = append(images, user.ProfileImage())
	s.imageService.DeleteQuietly(ctx, images...)

	err = s.mailer.SendAccountDeletedEmail(ctx, user.Email, user.Name)
	if err != nil {
		slog.Warn("failed to send account deleted email", "error", err, "user_id", userID)
	}

	slog.Info("account deleted", "user_id", userID, "pins", len(images)-1)
	return nil
}
