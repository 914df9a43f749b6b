package services

import (
	"context"

	"gramline-backend/internal/models"
)

type userRepoStub struct {
	createFn          func(context.Context, *models.User) error
	getByUserIDFn     func(context.Context, string) (*models.User, error)
	getByUsernameFn   func(context.Context, string) (*models.User, error)
	getByEmailFn      func(context.Context, string) (*models.User, error)
	usernameExistsFn  func(context.Context, string) (bool, error)
	listProfilesFn    func(context.Context, int) ([]*models.User, error)
	isFollowingFn     func(context.Context, string, string) (bool, error)
	addFollowingFn    func(context.Context, string, string) error
	removeFollowingFn func(context.Context, string, string) error
	addFollowerFn     func(context.Context, string, string) error
	removeFollowerFn  func(context.Context, string, string) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.usernameExistsFn(ctx, username)
}
func (s *userRepoStub) ListProfiles(ctx context.Context, limit int) ([]*models.User, error) {
	return s.listProfilesFn(ctx, limit)
}
func (s *userRepoStub) IsFollowing(ctx context.Context, username, targetUserID string) (bool, error) {
	return s.isFollowingFn(ctx, username, targetUserID)
}
func (s *userRepoStub) AddFollowing(ctx context.Context, docID, targetUserID string) error {
	return s.addFollowingFn(ctx, docID, targetUserID)
}
func (s *userRepoStub) RemoveFollowing(ctx context.Context, docID, targetUserID string) error {
	return s.removeFollowingFn(ctx, docID, targetUserID)
}
func (s *userRepoStub) AddFollower(ctx context.Context, docID, followerUserID string) error {
	return s.addFollowerFn(ctx, docID, followerUserID)
}
func (s *userRepoStub) RemoveFollower(ctx context.Context, docID, followerUserID string) error {
	return s.removeFollowerFn(ctx, docID, followerUserID)
}

type photoRepoStub struct {
	getByIDFn       func(context.Context, string) (*models.Photo, error)
	getByOwnerIDsFn func(context.Context, []string) ([]*models.Photo, error)
	getByOwnerIDFn  func(context.Context, string) ([]*models.Photo, error)
	addLikeFn       func(context.Context, string, string) error
	removeLikeFn    func(context.Context, string, string) error
	appendCommentFn func(context.Context, string, models.Comment) error
}

func (s *photoRepoStub) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	return s.getByIDFn(ctx, id)
}
func (s *photoRepoStub) GetByOwnerIDs(ctx context.Context, ownerIDs []string) ([]*models.Photo, error) {
	return s.getByOwnerIDsFn(ctx, ownerIDs)
}
func (s *photoRepoStub) GetByOwnerID(ctx context.Context, ownerID string) ([]*models.Photo, error) {
	return s.getByOwnerIDFn(ctx, ownerID)
}
func (s *photoRepoStub) AddLike(ctx context.Context, photoID, userID string) error {
	return s.addLikeFn(ctx, photoID, userID)
}
func (s *photoRepoStub) RemoveLike(ctx context.Context, photoID, userID string) error {
	return s.removeLikeFn(ctx, photoID, userID)
}
func (s *photoRepoStub) AppendComment(ctx context.Context, photoID string, comment models.Comment) error {
	return s.appendCommentFn(ctx, photoID, comment)
}

type cacheStub struct {
	getFn        func(context.Context, string) ([]models.TimelinePhoto, bool, error)
	setFn        func(context.Context, string, []models.TimelinePhoto) error
	invalidateFn func(context.Context, string) error
}

func (s *cacheStub) Get(ctx context.Context, userID string) ([]models.TimelinePhoto, bool, error) {
	return s.getFn(ctx, userID)
}
func (s *cacheStub) Set(ctx context.Context, userID string, photos []models.TimelinePhoto) error {
	return s.setFn(ctx, userID, photos)
}
func (s *cacheStub) Invalidate(ctx context.Context, userID string) error {
	return s.invalidateFn(ctx, userID)
}
