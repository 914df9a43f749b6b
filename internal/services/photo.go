package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gramline-backend/internal/models"
	"gramline-backend/internal/repository"
)

const maxCommentLength = 500

// ErrInvalidComment is returned for an empty or over-length comment.
var ErrInvalidComment = errors.New("comment must be non-empty and at most 500 characters")

// PhotoService handles photo reads, likes and comments
type PhotoService struct {
	photoRepo repository.PhotoRepository
	userRepo  repository.UserRepository
	images    ImageResolver
}

// NewPhotoService creates a new photo service. images may be nil.
func NewPhotoService(photoRepo repository.PhotoRepository, userRepo repository.UserRepository, images ImageResolver) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		userRepo:  userRepo,
		images:    images,
	}
}

// PhotoByID retrieves a single photo
func (s *PhotoService) PhotoByID(ctx context.Context, photoID string) (*models.Photo, error) {
	return s.photoRepo.GetByID(ctx, photoID)
}

// PhotosByUsername returns a profile's photos, newest first
func (s *PhotoService) PhotosByUsername(ctx context.Context, username string) ([]*models.Photo, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	photos, err := s.photoRepo.GetByOwnerID(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get photos: %w", err)
	}

	if s.images != nil {
		for _, photo := range photos {
			if photo.ImageKey == "" {
				continue
			}
			url, err := s.images.ViewURL(ctx, photo.ImageKey)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve image url: %w", err)
			}
			photo.ImageURL = url
		}
	}

	return photos, nil
}

// ToggleLike adds the viewer to the photo's like set, or removes them if
// hasLiked is true. Both directions are idempotent.
func (s *PhotoService) ToggleLike(ctx context.Context, photoID, viewerID string, hasLiked bool) error {
	if hasLiked {
		return s.photoRepo.RemoveLike(ctx, photoID, viewerID)
	}
	return s.photoRepo.AddLike(ctx, photoID, viewerID)
}

// AddComment validates and appends a comment to the photo
func (s *PhotoService) AddComment(ctx context.Context, photoID, displayName, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxCommentLength {
		return nil, ErrInvalidComment
	}

	comment := models.Comment{
		DisplayName: displayName,
		Text:        text,
		PostedAt:    time.Now(),
	}

	if err := s.photoRepo.AppendComment(ctx, photoID, comment); err != nil {
		return nil, err
	}

	return &comment, nil
}
