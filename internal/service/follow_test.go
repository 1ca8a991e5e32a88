package service

import (
	"context"
	"errors"
	"testing"

	"github.com/voluntree/backend/internal/constants"
	apperrors "github.com/voluntree/backend/internal/errors"
	"github.com/voluntree/backend/internal/model"
)

type followFixture struct {
	svc     *FollowService
	users   *fakeUserStore
	follows *fakeFollowStore
	cache   *fakeCache
}

func newFollowFixture(t *testing.T, usernames ...string) *followFixture {
	t.Helper()

	users := newFakeUserStore()
	for _, username := range usernames {
		err := users.Create(context.Background(), &model.User{
			Username: username,
			Email:    username + "@example.com",
			Fullname: username,
			Password: "password123",
			Avatar:   "https://cdn.test/" + username + ".png",
		})
		if err != nil {
			t.Fatalf("failed to seed user %s: %v", username, err)
		}
	}

	follows := newFakeFollowStore(users)
	cache := newFakeCache()
	return &followFixture{
		svc:     NewFollowService(users, follows, cache),
		users:   users,
		follows: follows,
		cache:   cache,
	}
}

func defaultPagination() constants.PaginationParams {
	return constants.PaginationParams{Page: 1, Limit: 10, Offset: 0}
}

func TestFollowAndUnfollowRoundTrip(t *testing.T) {
	f := newFollowFixture(t, "alice", "bob")

	if err := f.svc.Follow(context.Background(), 1, "bob"); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	exists, _ := f.follows.Exists(context.Background(), 1, 2)
	if !exists {
		t.Fatal("expected follow edge to exist")
	}

	// The edge is directed: bob does not follow alice
	reverse, _ := f.follows.Exists(context.Background(), 2, 1)
	if reverse {
		t.Error("follow must not create the reverse edge")
	}

	if err := f.svc.Unfollow(context.Background(), 1, "bob"); err != nil {
		t.Fatalf("unfollow failed: %v", err)
	}
	exists, _ = f.follows.Exists(context.Background(), 1, 2)
	if exists {
		t.Error("expected follow edge to be removed")
	}

	// A further unfollow has nothing to remove
	err := f.svc.Unfollow(context.Background(), 1, "bob")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found on repeated unfollow, got %v", err)
	}
}

func TestFollowRejectsSelf(t *testing.T) {
	f := newFollowFixture(t, "alice")

	err := f.svc.Follow(context.Background(), 1, "alice")
	if !errors.Is(err, apperrors.ErrInvalidOperation) {
		t.Errorf("expected invalid operation for self-follow, got %v", err)
	}

	err = f.svc.Unfollow(context.Background(), 1, "alice")
	if !errors.Is(err, apperrors.ErrInvalidOperation) {
		t.Errorf("expected invalid operation for self-unfollow, got %v", err)
	}
}

func TestFollowRejectsDuplicates(t *testing.T) {
	f := newFollowFixture(t, "alice", "bob")

	if err := f.svc.Follow(context.Background(), 1, "bob"); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	err := f.svc.Follow(context.Background(), 1, "bob")
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("expected conflict for duplicate follow, got %v", err)
	}
}

func TestFollowUnknownTarget(t *testing.T) {
	f := newFollowFixture(t, "alice")

	err := f.svc.Follow(context.Background(), 1, "nobody")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found for unknown target, got %v", err)
	}
}

func TestUnfollowWithoutEdge(t *testing.T) {
	f := newFollowFixture(t, "alice", "bob")

	err := f.svc.Unfollow(context.Background(), 1, "bob")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found when no edge exists, got %v", err)
	}
}

func TestUnfollowDetectsSurvivingEdge(t *testing.T) {
	f := newFollowFixture(t, "alice", "bob")

	if err := f.svc.Follow(context.Background(), 1, "bob"); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	f.follows.keepOnDelete = true
	err := f.svc.Unfollow(context.Background(), 1, "bob")
	if !errors.Is(err, apperrors.ErrInternal) {
		t.Errorf("expected internal error when the edge survives deletion, got %v", err)
	}
}

func TestFollowInvalidatesBothProfiles(t *testing.T) {
	f := newFollowFixture(t, "alice", "bob")

	if err := f.svc.Follow(context.Background(), 1, "bob"); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	wantKeys := map[string]bool{
		constants.CacheKeyProfile + "alice": false,
		constants.CacheKeyProfile + "bob":   false,
	}
	for _, key := range f.cache.deleted {
		if _, ok := wantKeys[key]; ok {
			wantKeys[key] = true
		}
	}
	for key, seen := range wantKeys {
		if !seen {
			t.Errorf("expected cache key %s to be invalidated", key)
		}
	}
}

func TestListFollowers(t *testing.T) {
	f := newFollowFixture(t, "alice", "bob", "carol")

	// bob and carol follow alice
	if err := f.svc.Follow(context.Background(), 2, "alice"); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if err := f.svc.Follow(context.Background(), 3, "alice"); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	resp, err := f.svc.ListFollowers(context.Background(), "alice", defaultPagination())
	if err != nil {
		t.Fatalf("list followers failed: %v", err)
	}
	if len(resp.Entries) != 2 {
		t.Fatalf("expected 2 followers, got %d", len(resp.Entries))
	}

	// Newest edge first
	if resp.Entries[0].Counterpart.Username != "carol" {
		t.Errorf("expected carol first, got %s", resp.Entries[0].Counterpart.Username)
	}

	// Listing is public knowledge about who follows whom, nothing more
	for _, entry := range resp.Entries {
		if entry.Counterpart.ID == 0 || entry.Counterpart.Username == "" {
			t.Errorf("incomplete counterpart in entry: %+v", entry)
		}
	}
}

func TestListFollowingsAndThirdParty(t *testing.T) {
	f := newFollowFixture(t, "alice", "bob", "carol")

	if err := f.svc.Follow(context.Background(), 1, "bob"); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	resp, err := f.svc.ListFollowings(context.Background(), "alice", defaultPagination())
	if err != nil {
		t.Fatalf("list followings failed: %v", err)
	}
	if len(resp.Entries) != 1 || resp.Entries[0].Counterpart.Username != "bob" {
		t.Errorf("unexpected followings: %+v", resp.Entries)
	}

	// carol is uninvolved
	resp, err = f.svc.ListFollowings(context.Background(), "carol", defaultPagination())
	if err != nil {
		t.Fatalf("list followings failed: %v", err)
	}
	if len(resp.Entries) != 0 {
		t.Errorf("expected no followings for carol, got %d", len(resp.Entries))
	}

	// Unknown user yields not found
	if _, err := f.svc.ListFollowers(context.Background(), "nobody", defaultPagination()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found for unknown user, got %v", err)
	}
}

func TestListFollowersPagination(t *testing.T) {
	usernames := []string{"target", "u1", "u2", "u3"}
	f := newFollowFixture(t, usernames...)

	for id := uint(2); id <= 4; id++ {
		if err := f.svc.Follow(context.Background(), id, "target"); err != nil {
			t.Fatalf("follow failed: %v", err)
		}
	}

	params := constants.PaginationParams{Page: 1, Limit: 2, Offset: 0}
	first, err := f.svc.ListFollowers(context.Background(), "target", params)
	if err != nil {
		t.Fatalf("list followers failed: %v", err)
	}
	if len(first.Entries) != 2 {
		t.Fatalf("expected 2 entries on first page, got %d", len(first.Entries))
	}

	params = constants.PaginationParams{Page: 2, Limit: 2, Offset: 2}
	second, err := f.svc.ListFollowers(context.Background(), "target", params)
	if err != nil {
		t.Fatalf("list followers failed: %v", err)
	}
	if len(second.Entries) != 1 {
		t.Fatalf("expected 1 entry on second page, got %d", len(second.Entries))
	}

	seen := map[uint]bool{}
	for _, entry := range append(first.Entries, second.Entries...) {
		if seen[entry.Counterpart.ID] {
			t.Errorf("counterpart %d appeared on both pages", entry.Counterpart.ID)
		}
		seen[entry.Counterpart.ID] = true
	}
}
