package services

import (
	"context"
	"fmt"

	"gramline-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// FollowService maintains the follow graph. The relationship is stored
// redundantly: the follower's following set and the target's followers
// set each hold the other side's user id.
type FollowService struct {
	userRepo repository.UserRepository
	cache    TimelineCache
}

// NewFollowService creates a new follow service. cache may be nil.
func NewFollowService(userRepo repository.UserRepository, cache TimelineCache) *FollowService {
	return &FollowService{
		userRepo: userRepo,
		cache:    cache,
	}
}

// IsFollowing reports whether the viewer currently follows the target
func (s *FollowService) IsFollowing(ctx context.Context, viewerUsername, targetUserID string) (bool, error) {
	return s.userRepo.IsFollowing(ctx, viewerUsername, targetUserID)
}

// UpdateFollowing adds or removes targetUserID from the viewer row's
// following set, depending on the current state.
func (s *FollowService) UpdateFollowing(ctx context.Context, viewerDocID, targetUserID string, isFollowing bool) error {
	if isFollowing {
		return s.userRepo.RemoveFollowing(ctx, viewerDocID, targetUserID)
	}
	return s.userRepo.AddFollowing(ctx, viewerDocID, targetUserID)
}

// UpdateFollowers adds or removes viewerUserID from the target row's
// followers set, depending on the current state.
func (s *FollowService) UpdateFollowers(ctx context.Context, targetDocID, viewerUserID string, isFollowing bool) error {
	if isFollowing {
		return s.userRepo.RemoveFollower(ctx, targetDocID, viewerUserID)
	}
	return s.userRepo.AddFollower(ctx, targetDocID, viewerUserID)
}

// ToggleFollow follows the target if isFollowing is false and unfollows
// otherwise. The two sides are independent writes with no transaction: a
// failure after the first write leaves the graph asymmetric.
func (s *FollowService) ToggleFollow(ctx context.Context, isFollowing bool, viewerDocID, targetDocID, targetUserID, viewerUserID string) error {
	if err := s.UpdateFollowing(ctx, viewerDocID, targetUserID, isFollowing); err != nil {
		return fmt.Errorf("failed to update following: %w", err)
	}
	if err := s.UpdateFollowers(ctx, targetDocID, viewerUserID, isFollowing); err != nil {
		return fmt.Errorf("failed to update followers: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, viewerUserID); err != nil {
			log.Warn().Err(err).Str("user_id", viewerUserID).Msg("Failed to invalidate timeline cache")
		}
	}

	return nil
}
