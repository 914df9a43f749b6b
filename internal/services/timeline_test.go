package services

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"gramline-backend/internal/models"
)

func timelineFixture() (*photoRepoStub, *userRepoStub) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	photos := []*models.Photo{
		{ID: "p1", UserID: "author-b", Likes: []string{"viewer-uid"}, CreatedAt: base.Add(1 * time.Hour)},
		{ID: "p2", UserID: "author-b", Likes: []string{"someone-else"}, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "p3", UserID: "author-c", Likes: []string{}, CreatedAt: base.Add(2 * time.Hour)},
	}

	photoRepo := &photoRepoStub{
		getByOwnerIDsFn: func(_ context.Context, ownerIDs []string) ([]*models.Photo, error) {
			var matched []*models.Photo
			for _, photo := range photos {
				for _, id := range ownerIDs {
					if photo.UserID == id {
						matched = append(matched, photo)
					}
				}
			}
			// Shuffle so tests cannot rely on store ordering.
			rand.Shuffle(len(matched), func(i, j int) {
				matched[i], matched[j] = matched[j], matched[i]
			})
			return matched, nil
		},
	}
	userRepo := &userRepoStub{
		getByUserIDFn: func(_ context.Context, userID string) (*models.User, error) {
			names := map[string]string{"author-b": "bob", "author-c": "carol"}
			return &models.User{UserID: userID, Username: names[userID]}, nil
		},
	}
	return photoRepo, userRepo
}

func TestTimelineEmptyFollowingSkipsPhotoQuery(t *testing.T) {
	queried := false
	photoRepo := &photoRepoStub{
		getByOwnerIDsFn: func(context.Context, []string) ([]*models.Photo, error) {
			queried = true
			return nil, nil
		},
	}
	svc := NewTimelineService(photoRepo, &userRepoStub{}, nil, nil)

	timeline, err := svc.Timeline(context.Background(), &models.User{UserID: "viewer-uid", Following: []string{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if timeline == nil || len(timeline) != 0 {
		t.Fatalf("expected empty timeline, got %v", timeline)
	}
	if queried {
		t.Error("photo query must not be issued for an empty following set")
	}
}

func TestTimelineSortedDescendingByCreation(t *testing.T) {
	photoRepo, userRepo := timelineFixture()
	svc := NewTimelineService(photoRepo, userRepo, nil, nil)
	viewer := &models.User{UserID: "viewer-uid", Following: []string{"author-b", "author-c"}}

	timeline, err := svc.Timeline(context.Background(), viewer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(timeline) != 3 {
		t.Fatalf("expected 3 photos, got %d", len(timeline))
	}
	for i := 1; i < len(timeline); i++ {
		if !timeline[i-1].CreatedAt.After(timeline[i].CreatedAt) {
			t.Errorf("timeline not strictly descending at index %d", i)
		}
	}
}

func TestTimelineAnnotatesUsernameAndLikeFlag(t *testing.T) {
	photoRepo, userRepo := timelineFixture()
	svc := NewTimelineService(photoRepo, userRepo, nil, nil)
	viewer := &models.User{UserID: "viewer-uid", Following: []string{"author-b", "author-c"}}

	timeline, err := svc.Timeline(context.Background(), viewer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byID := map[string]models.TimelinePhoto{}
	for _, photo := range timeline {
		byID[photo.ID] = photo
	}

	if photo := byID["p1"]; !photo.ViewerHasLiked || photo.Username != "bob" {
		t.Errorf("p1 annotation wrong: liked=%v username=%q", photo.ViewerHasLiked, photo.Username)
	}
	if photo := byID["p2"]; photo.ViewerHasLiked {
		t.Error("p2 must not be flagged as liked by the viewer")
	}
	if photo := byID["p3"]; photo.Username != "carol" {
		t.Errorf("p3 username = %q, want carol", photo.Username)
	}
}

// Viewer A follows only B; B owns two photos with t1 < t2. The timeline
// must come back as [photo@t2, photo@t1], both attributed to B.
func TestTimelineEndToEndScenario(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(2 * time.Hour)

	photoRepo := &photoRepoStub{
		getByOwnerIDsFn: func(_ context.Context, ownerIDs []string) ([]*models.Photo, error) {
			if len(ownerIDs) != 1 || ownerIDs[0] != "user-b" {
				t.Fatalf("queried owners %v, want [user-b]", ownerIDs)
			}
			return []*models.Photo{
				{ID: "older", UserID: "user-b", CreatedAt: t1},
				{ID: "newer", UserID: "user-b", CreatedAt: t2},
			}, nil
		},
	}
	userRepo := &userRepoStub{
		getByUserIDFn: func(_ context.Context, userID string) (*models.User, error) {
			return &models.User{UserID: userID, Username: "bob"}, nil
		},
	}
	svc := NewTimelineService(photoRepo, userRepo, nil, nil)

	timeline, err := svc.Timeline(context.Background(), &models.User{UserID: "user-a", Following: []string{"user-b"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(timeline) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(timeline))
	}
	if timeline[0].ID != "newer" || timeline[1].ID != "older" {
		t.Errorf("order = [%s, %s], want [newer, older]", timeline[0].ID, timeline[1].ID)
	}
	for _, photo := range timeline {
		if photo.Username != "bob" {
			t.Errorf("photo %s attributed to %q, want bob", photo.ID, photo.Username)
		}
	}
}

func TestTimelineServedFromCache(t *testing.T) {
	queried := false
	photoRepo := &photoRepoStub{
		getByOwnerIDsFn: func(context.Context, []string) ([]*models.Photo, error) {
			queried = true
			return nil, nil
		},
	}
	cached := []models.TimelinePhoto{{Username: "bob"}}
	cache := &cacheStub{
		getFn: func(context.Context, string) ([]models.TimelinePhoto, bool, error) {
			return cached, true, nil
		},
	}
	svc := NewTimelineService(photoRepo, &userRepoStub{}, cache, nil)

	timeline, err := svc.Timeline(context.Background(), &models.User{UserID: "viewer-uid", Following: []string{"author-b"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if queried {
		t.Error("cache hit must not reach the photo store")
	}
	if len(timeline) != 1 || timeline[0].Username != "bob" {
		t.Errorf("unexpected cached timeline: %v", timeline)
	}
}

func TestTimelineCacheMissPopulatesCache(t *testing.T) {
	photoRepo, userRepo := timelineFixture()
	var stored []models.TimelinePhoto
	cache := &cacheStub{
		getFn: func(context.Context, string) ([]models.TimelinePhoto, bool, error) {
			return nil, false, nil
		},
		setFn: func(_ context.Context, _ string, photos []models.TimelinePhoto) error {
			stored = photos
			return nil
		},
	}
	svc := NewTimelineService(photoRepo, userRepo, cache, nil)

	timeline, err := svc.Timeline(context.Background(), &models.User{UserID: "viewer-uid", Following: []string{"author-b", "author-c"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != len(timeline) {
		t.Errorf("cached %d photos, want %d", len(stored), len(timeline))
	}
}
