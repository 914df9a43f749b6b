package services

import (
	"context"
	"errors"
	"testing"
)

// graphStub keeps the two follow arrays in memory so toggles can be
// observed end to end. Rows are addressed by doc id, sets hold user ids.
type graphStub struct {
	userRepoStub
	following map[string][]string
	followers map[string][]string
}

func newGraphStub() *graphStub {
	g := &graphStub{
		following: map[string][]string{},
		followers: map[string][]string{},
	}
	g.addFollowingFn = func(_ context.Context, docID, id string) error {
		g.following[docID] = addToSet(g.following[docID], id)
		return nil
	}
	g.removeFollowingFn = func(_ context.Context, docID, id string) error {
		g.following[docID] = removeFromSet(g.following[docID], id)
		return nil
	}
	g.addFollowerFn = func(_ context.Context, docID, id string) error {
		g.followers[docID] = addToSet(g.followers[docID], id)
		return nil
	}
	g.removeFollowerFn = func(_ context.Context, docID, id string) error {
		g.followers[docID] = removeFromSet(g.followers[docID], id)
		return nil
	}
	return g
}

func addToSet(set []string, id string) []string {
	for _, existing := range set {
		if existing == id {
			return set
		}
	}
	return append(set, id)
}

func removeFromSet(set []string, id string) []string {
	out := set[:0]
	for _, existing := range set {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func TestToggleFollowAddsBothSides(t *testing.T) {
	graph := newGraphStub()
	svc := NewFollowService(graph, nil)

	err := svc.ToggleFollow(context.Background(), false, "viewer-doc", "target-doc", "target-uid", "viewer-uid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := graph.following["viewer-doc"]; len(got) != 1 || got[0] != "target-uid" {
		t.Errorf("viewer following = %v, want [target-uid]", got)
	}
	if got := graph.followers["target-doc"]; len(got) != 1 || got[0] != "viewer-uid" {
		t.Errorf("target followers = %v, want [viewer-uid]", got)
	}
}

func TestToggleFollowTwiceRestoresOriginalState(t *testing.T) {
	graph := newGraphStub()
	svc := NewFollowService(graph, nil)
	ctx := context.Background()

	if err := svc.ToggleFollow(ctx, false, "viewer-doc", "target-doc", "target-uid", "viewer-uid"); err != nil {
		t.Fatal(err)
	}
	if err := svc.ToggleFollow(ctx, true, "viewer-doc", "target-doc", "target-uid", "viewer-uid"); err != nil {
		t.Fatal(err)
	}

	if got := graph.following["viewer-doc"]; len(got) != 0 {
		t.Errorf("viewer following = %v, want empty", got)
	}
	if got := graph.followers["target-doc"]; len(got) != 0 {
		t.Errorf("target followers = %v, want empty", got)
	}
}

// The two sides of a toggle are independent writes. When the second one
// fails the first is not rolled back, so the graph ends up asymmetric.
func TestToggleFollowPartialFailureLeavesAsymmetry(t *testing.T) {
	graph := newGraphStub()
	failure := errors.New("backend unavailable")
	graph.addFollowerFn = func(context.Context, string, string) error {
		return failure
	}
	svc := NewFollowService(graph, nil)

	err := svc.ToggleFollow(context.Background(), false, "viewer-doc", "target-doc", "target-uid", "viewer-uid")
	if !errors.Is(err, failure) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}

	if got := graph.following["viewer-doc"]; len(got) != 1 {
		t.Errorf("first write should have landed, following = %v", got)
	}
	if got := graph.followers["target-doc"]; len(got) != 0 {
		t.Errorf("second write failed, followers should be untouched, got %v", got)
	}
}

func TestToggleFollowInvalidatesViewerTimeline(t *testing.T) {
	graph := newGraphStub()
	var invalidated string
	cache := &cacheStub{
		invalidateFn: func(_ context.Context, userID string) error {
			invalidated = userID
			return nil
		},
	}
	svc := NewFollowService(graph, cache)

	if err := svc.ToggleFollow(context.Background(), false, "viewer-doc", "target-doc", "target-uid", "viewer-uid"); err != nil {
		t.Fatal(err)
	}
	if invalidated != "viewer-uid" {
		t.Errorf("invalidated %q, want viewer-uid", invalidated)
	}
}

func TestIsFollowingPassesThrough(t *testing.T) {
	repo := &userRepoStub{
		isFollowingFn: func(_ context.Context, username, targetUserID string) (bool, error) {
			return username == "karl" && targetUserID == "target-uid", nil
		},
	}
	svc := NewFollowService(repo, nil)

	following, err := svc.IsFollowing(context.Background(), "karl", "target-uid")
	if err != nil {
		t.Fatal(err)
	}
	if !following {
		t.Error("expected follow status true")
	}
}
