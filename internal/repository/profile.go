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

// ProfileAggregate bundles everything a profile page needs, fetched in one
// repository call.
type ProfileAggregate struct {
	User           *model.User
	FollowersCount int64
	FollowingCount int64
	Projects       []model.Project
	Posts          []model.Post
	JoinedProjects []model.Project
}

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Aggregate loads a user by username together with follower counts, owned
// projects, recent posts and joined projects. Returns ErrNotFound when the
// username does not exist.
func (r *ProfileRepository) Aggregate(ctx context.Context, username string) (*ProfileAggregate, error) {
	ctx = ctxutil.Tag(ctx, "profile_repository", "Aggregate")
	start := time.Now()

	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		logger.ErrorWithContext(ctx, "failed to load profile user").
			String("username", username).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	agg := &ProfileAggregate{User: &user}

	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("following_id = ?", user.ID).
		Count(&agg.FollowersCount).Error
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	err = r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", user.ID).
		Count(&agg.FollowingCount).Error
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	err = r.db.WithContext(ctx).
		Where("owner_id = ?", user.ID).
		Order("created_at DESC").
		Find(&agg.Projects).Error
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	err = r.db.WithContext(ctx).
		Where("author_id = ?", user.ID).
		Order("created_at DESC").
		Find(&agg.Posts).Error
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	err = r.db.WithContext(ctx).
		Joins("JOIN memberships ON memberships.project_id = projects.id").
		Where("memberships.user_id = ? AND memberships.role <> ?", user.ID, model.MembershipRoleOwner).
		Order("memberships.created_at DESC").
		Find(&agg.JoinedProjects).Error
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.DebugWithContext(ctx, "profile aggregated").
		String("username", username).
		Int64("followers", agg.FollowersCount).
		Int64("followings", agg.FollowingCount).
		Duration(time.Since(start)).
		Log()

	return agg, nil
}
