package repository

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/voluntree/backend/internal/errors"
	"github.com/voluntree/backend/internal/model"
	ctxutil "github.com/voluntree/backend/pkg/context"
	"github.com/voluntree/backend/pkg/logger"
	"gorm.io/gorm"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Create inserts a follow edge. The composite unique index on
// (follower_id, following_id) is the authoritative duplicate guard; a
// concurrent duplicate insert comes back as a conflict.
func (r *FollowRepository) Create(ctx context.Context, edge *model.Follow) error {
	ctx = ctxutil.Tag(ctx, "follow_repository", "Create")
	start := time.Now()

	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.WrapError(apperrors.ErrConflict, err)
		}
		logger.ErrorWithContext(ctx, "failed to create follow edge").
			Uint("follower_id", edge.FollowerID).
			Uint("following_id", edge.FollowingID).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "follow edge created").
		Uint("follower_id", edge.FollowerID).
		Uint("following_id", edge.FollowingID).
		Duration(time.Since(start)).
		Log()

	return nil
}

// Exists reports whether a follow edge is present.
func (r *FollowRepository) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	ctx = ctxutil.Tag(ctx, "follow_repository", "Exists")

	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "failed to check follow edge").
			Uint("follower_id", followerID).
			Uint("following_id", followingID).
			Err(err).
			Log()
		return false, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return count > 0, nil
}

// Delete removes a follow edge by its endpoints.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followingID uint) error {
	ctx = ctxutil.Tag(ctx, "follow_repository", "Delete")

	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{})
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "failed to delete follow edge").
			Uint("follower_id", followerID).
			Uint("following_id", followingID).
			Err(result.Error).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// CountFollowers counts edges pointing at the user.
func (r *FollowRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	ctx = ctxutil.Tag(ctx, "follow_repository", "CountFollowers")

	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return count, nil
}

// CountFollowings counts edges originating from the user.
func (r *FollowRepository) CountFollowings(ctx context.Context, userID uint) (int64, error) {
	ctx = ctxutil.Tag(ctx, "follow_repository", "CountFollowings")

	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return count, nil
}

// ListFollowers returns the edges pointing at the user, newest first, with
// the follower side preloaded.
func (r *FollowRepository) ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]model.Follow, error) {
	ctx = ctxutil.Tag(ctx, "follow_repository", "ListFollowers")

	var edges []model.Follow
	err := r.db.WithContext(ctx).
		Preload("Follower").
		Where("following_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&edges).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "failed to list followers").
			Uint("user_id", userID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return edges, nil
}

// ListFollowings returns the edges originating from the user, newest first,
// with the followed side preloaded.
func (r *FollowRepository) ListFollowings(ctx context.Context, userID uint, limit, offset int) ([]model.Follow, error) {
	ctx = ctxutil.Tag(ctx, "follow_repository", "ListFollowings")

	var edges []model.Follow
	err := r.db.WithContext(ctx).
		Preload("Following").
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&edges).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "failed to list followings").
			Uint("user_id", userID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return edges, nil
}
