package service

import (
	"context"
	"time"

	"github.com/voluntree/backend/internal/model"
	"github.com/voluntree/backend/internal/repository"
)

// UserStore is the persistence surface the auth and user services need.
// *repository.UserRepository satisfies it; tests supply in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, userID uint, newPassword string) error
	UpdateRefreshSlot(ctx context.Context, userID uint, fingerprint *string, issuedAt *time.Time) error
	UpdateDetails(ctx context.Context, userID uint, fields map[string]interface{}) (*model.User, error)
	UpdateImage(ctx context.Context, userID uint, column, url string) (*model.User, error)
}

// FollowStore is the persistence surface of the social graph.
type FollowStore interface {
	Create(ctx context.Context, edge *model.Follow) error
	Exists(ctx context.Context, followerID, followingID uint) (bool, error)
	Delete(ctx context.Context, followerID, followingID uint) error
	CountFollowers(ctx context.Context, userID uint) (int64, error)
	CountFollowings(ctx context.Context, userID uint) (int64, error)
	ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]model.Follow, error)
	ListFollowings(ctx context.Context, userID uint, limit, offset int) ([]model.Follow, error)
}

// ProfileStore loads the profile aggregate in one call.
type ProfileStore interface {
	Aggregate(ctx context.Context, username string) (*repository.ProfileAggregate, error)
}

// ProfileCache is the subset of the cache client the profile and follow
// services use. *redis.Client satisfies it.
type ProfileCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
