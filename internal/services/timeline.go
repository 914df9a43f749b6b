package services

import (
	"context"
	"fmt"
	"sort"

	"gramline-backend/internal/models"
	"gramline-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// TimelineCache caches a viewer's composed timeline for a short TTL.
type TimelineCache interface {
	Get(ctx context.Context, userID string) ([]models.TimelinePhoto, bool, error)
	Set(ctx context.Context, userID string, photos []models.TimelinePhoto) error
	Invalidate(ctx context.Context, userID string) error
}

// ImageResolver turns a stored image key into a URL a client can fetch.
type ImageResolver interface {
	ViewURL(ctx context.Context, key string) (string, error)
}

// TimelineService composes the home timeline: photos from followed
// accounts, annotated for the viewer and sorted newest first.
type TimelineService struct {
	photoRepo repository.PhotoRepository
	userRepo  repository.UserRepository
	cache     TimelineCache
	images    ImageResolver
}

// NewTimelineService creates a new timeline service. cache and images
// may be nil.
func NewTimelineService(photoRepo repository.PhotoRepository, userRepo repository.UserRepository, cache TimelineCache, images ImageResolver) *TimelineService {
	return &TimelineService{
		photoRepo: photoRepo,
		userRepo:  userRepo,
		cache:     cache,
		images:    images,
	}
}

// Timeline returns the viewer's composed timeline. A viewer following
// nobody gets an empty timeline without a photo query being issued.
func (s *TimelineService) Timeline(ctx context.Context, viewer *models.User) ([]models.TimelinePhoto, error) {
	if len(viewer.Following) == 0 {
		return []models.TimelinePhoto{}, nil
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, viewer.UserID)
		if err != nil {
			log.Warn().Err(err).Str("user_id", viewer.UserID).Msg("Timeline cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	timeline, err := s.PhotosForFollowing(ctx, viewer.UserID, viewer.Following)
	if err != nil {
		return nil, err
	}

	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].CreatedAt.After(timeline[j].CreatedAt)
	})

	if s.cache != nil {
		if err := s.cache.Set(ctx, viewer.UserID, timeline); err != nil {
			log.Warn().Err(err).Str("user_id", viewer.UserID).Msg("Timeline cache write failed")
		}
	}

	return timeline, nil
}

// PhotosForFollowing fetches every photo owned by an account in
// following and annotates each with the owner's username and whether the
// viewer has liked it. The owner is resolved per photo.
func (s *TimelineService) PhotosForFollowing(ctx context.Context, viewerID string, following []string) ([]models.TimelinePhoto, error) {
	photos, err := s.photoRepo.GetByOwnerIDs(ctx, following)
	if err != nil {
		return nil, fmt.Errorf("failed to get followed photos: %w", err)
	}

	timeline := make([]models.TimelinePhoto, 0, len(photos))
	for _, photo := range photos {
		owner, err := s.userRepo.GetByUserID(ctx, photo.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve photo owner: %w", err)
		}

		liked := false
		for _, id := range photo.Likes {
			if id == viewerID {
				liked = true
				break
			}
		}

		if s.images != nil && photo.ImageKey != "" {
			url, err := s.images.ViewURL(ctx, photo.ImageKey)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve image url: %w", err)
			}
			photo.ImageURL = url
		}

		timeline = append(timeline, models.TimelinePhoto{
			Photo:          *photo,
			Username:       owner.Username,
			ViewerHasLiked: liked,
		})
	}

	return timeline, nil
}
