package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	apperrors "github.com/voluntree/backend/internal/errors"
	"github.com/voluntree/backend/internal/model"
	"github.com/voluntree/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore is an in-memory UserStore. It hashes passwords on create
// and update, matching what the database-backed store does.
type fakeUserStore struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint]*model.User{}, nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperrors.ErrConflict
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)

	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserStore) GetByUsernameOrEmail(_ context.Context, username, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username == username || user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID uint, newPassword string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return nil
}

func (f *fakeUserStore) UpdateRefreshSlot(_ context.Context, userID uint, fingerprint *string, issuedAt *time.Time) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.RefreshTokenHash = fingerprint
	user.RefreshTokenIssuedAt = issuedAt
	return nil
}

func (f *fakeUserStore) UpdateDetails(_ context.Context, userID uint, fields map[string]interface{}) (*model.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if fullname, ok := fields["fullname"].(string); ok {
		user.Fullname = fullname
	}
	if bio, ok := fields["bio"].(string); ok {
		user.Bio = bio
	}
	if location, ok := fields["location"].(string); ok {
		user.Location = location
	}
	if interests, ok := fields["interests"].([]byte); ok {
		user.Interests = interests
	}
	if coords, ok := fields["location_coordinates"].([]byte); ok {
		user.LocationCoordinates = coords
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) UpdateImage(_ context.Context, userID uint, column, url string) (*model.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	switch column {
	case "avatar":
		user.Avatar = url
	case "cover_image":
		user.CoverImage = url
	default:
		return nil, fmt.Errorf("unknown image column %q", column)
	}
	clone := *user
	return &clone, nil
}

// fakeFollowStore keeps edges in memory and enforces the pair uniqueness
// the real store gets from its composite index.
type fakeFollowStore struct {
	edges  map[[2]uint]*model.Follow
	users  *fakeUserStore
	nextID uint

	// keepOnDelete makes Delete report success without removing the edge,
	// simulating a store that lies about deletions.
	keepOnDelete bool
}

func newFakeFollowStore(users *fakeUserStore) *fakeFollowStore {
	return &fakeFollowStore{edges: map[[2]uint]*model.Follow{}, users: users, nextID: 1}
}

func (f *fakeFollowStore) Create(_ context.Context, edge *model.Follow) error {
	key := [2]uint{edge.FollowerID, edge.FollowingID}
	if _, exists := f.edges[key]; exists {
		return apperrors.ErrConflict
	}
	edge.ID = f.nextID
	f.nextID++
	edge.CreatedAt = time.Now()
	clone := *edge
	f.edges[key] = &clone
	return nil
}

func (f *fakeFollowStore) Exists(_ context.Context, followerID, followingID uint) (bool, error) {
	_, ok := f.edges[[2]uint{followerID, followingID}]
	return ok, nil
}

func (f *fakeFollowStore) Delete(_ context.Context, followerID, followingID uint) error {
	key := [2]uint{followerID, followingID}
	if _, ok := f.edges[key]; !ok {
		return apperrors.ErrNotFound
	}
	if !f.keepOnDelete {
		delete(f.edges, key)
	}
	return nil
}

func (f *fakeFollowStore) CountFollowers(_ context.Context, userID uint) (int64, error) {
	var count int64
	for key := range f.edges {
		if key[1] == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeFollowStore) CountFollowings(_ context.Context, userID uint) (int64, error) {
	var count int64
	for key := range f.edges {
		if key[0] == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeFollowStore) ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]model.Follow, error) {
	var edges []model.Follow
	for key, edge := range f.edges {
		if key[1] != userID {
			continue
		}
		clone := *edge
		if f.users != nil {
			clone.Follower, _ = f.users.GetByID(ctx, key[0])
		}
		edges = append(edges, clone)
	}
	return paginateEdges(edges, limit, offset), nil
}

func (f *fakeFollowStore) ListFollowings(ctx context.Context, userID uint, limit, offset int) ([]model.Follow, error) {
	var edges []model.Follow
	for key, edge := range f.edges {
		if key[0] != userID {
			continue
		}
		clone := *edge
		if f.users != nil {
			clone.Following, _ = f.users.GetByID(ctx, key[1])
		}
		edges = append(edges, clone)
	}
	return paginateEdges(edges, limit, offset), nil
}

func paginateEdges(edges []model.Follow, limit, offset int) []model.Follow {
	// Newest first, ties broken by descending id like the real ordering
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].CreatedAt.Equal(edges[j].CreatedAt) {
			return edges[i].ID > edges[j].ID
		}
		return edges[i].CreatedAt.After(edges[j].CreatedAt)
	})
	if offset >= len(edges) {
		return nil
	}
	edges = edges[offset:]
	if limit > 0 && limit < len(edges) {
		edges = edges[:limit]
	}
	return edges
}

// fakeProfileStore aggregates from the user and follow fakes.
type fakeProfileStore struct {
	users   *fakeUserStore
	follows *fakeFollowStore

	aggregateCalls int
}

func (f *fakeProfileStore) Aggregate(ctx context.Context, username string) (*repository.ProfileAggregate, error) {
	f.aggregateCalls++

	user, err := f.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, _ := f.follows.CountFollowers(ctx, user.ID)
	followings, _ := f.follows.CountFollowings(ctx, user.ID)

	return &repository.ProfileAggregate{
		User:           user,
		FollowersCount: followers,
		FollowingCount: followings,
	}, nil
}

// fakeCache is an in-memory ProfileCache tracking deletions.
type fakeCache struct {
	entries map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	data, ok := f.entries[key]
	if !ok {
		return fmt.Errorf("cache: key not found")
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = data
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.entries, key)
		f.deleted = append(f.deleted, key)
	}
	return nil
}

// fakeBlobStore records uploads and removals without touching disk.
type fakeBlobStore struct {
	uploads  []string
	removals []string
	failNext bool
}

func (f *fakeBlobStore) Upload(_ context.Context, localPath string) (string, error) {
	if f.failNext {
		f.failNext = false
		return "", fmt.Errorf("upstream storage unavailable")
	}
	f.uploads = append(f.uploads, localPath)
	return "https://cdn.test/" + filepath.Base(localPath), nil
}

func (f *fakeBlobStore) Remove(localPath string) error {
	if localPath != "" {
		f.removals = append(f.removals, localPath)
	}
	return nil
}
