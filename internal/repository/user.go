package repository

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/voluntree/backend/internal/errors"
	"github.com/voluntree/backend/internal/model"
	ctxutil "github.com/voluntree/backend/pkg/context"
	"github.com/voluntree/backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Duplicate username or email surfaces as a
// conflict through gorm's translated duplicate key error.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.Tag(ctx, "user_repository", "Create")
	start := time.Now()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.WrapError(apperrors.ErrConflict, err)
		}
		logger.ErrorWithContext(ctx, "failed to create user").
			String("username", user.Username).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "user created").
		Uint("user_id", user.ID).
		String("username", user.Username).
		Duration(time.Since(start)).
		Log()

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = ctxutil.Tag(ctx, "user_repository", "GetByID")

	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		logger.ErrorWithContext(ctx, "failed to query user by id").
			Uint("user_id", id).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	ctx = ctxutil.Tag(ctx, "user_repository", "GetByUsername")

	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		logger.ErrorWithContext(ctx, "failed to query user by username").
			String("username", username).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = ctxutil.Tag(ctx, "user_repository", "GetByEmail")

	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		logger.ErrorWithContext(ctx, "failed to query user by email").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &user, nil
}

// GetByUsernameOrEmail finds a user matching either identifier. Used by the
// registration uniqueness pre-check.
func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	ctx = ctxutil.Tag(ctx, "user_repository", "GetByUsernameOrEmail")

	var user model.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		logger.ErrorWithContext(ctx, "failed to query user by username or email").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &user, nil
}

// UpdatePassword hashes and persists a new password. Hashing happens here
// because gorm update paths bypass the BeforeCreate hook.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint, newPassword string) error {
	ctx = ctxutil.Tag(ctx, "user_repository", "UpdatePassword")

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("password", string(hashed))
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "failed to update password").
			Uint("user_id", userID).
			Err(result.Error).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	logger.InfoWithContext(ctx, "password updated").
		Uint("user_id", userID).
		Log()

	return nil
}

// UpdateRefreshSlot replaces the single refresh token slot as a whole.
// Passing nil for both values clears the slot.
func (r *UserRepository) UpdateRefreshSlot(ctx context.Context, userID uint, fingerprint *string, issuedAt *time.Time) error {
	ctx = ctxutil.Tag(ctx, "user_repository", "UpdateRefreshSlot")

	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"refresh_token_hash":      fingerprint,
			"refresh_token_issued_at": issuedAt,
		})
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "failed to update refresh token slot").
			Uint("user_id", userID).
			Err(result.Error).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// UpdateDetails applies a partial column update to mutable profile fields.
func (r *UserRepository) UpdateDetails(ctx context.Context, userID uint, fields map[string]interface{}) (*model.User, error) {
	ctx = ctxutil.Tag(ctx, "user_repository", "UpdateDetails")

	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Updates(fields)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "failed to update user details").
			Uint("user_id", userID).
			Err(result.Error).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.GetByID(ctx, userID)
}

// UpdateImage overwrites a single image column (avatar or cover_image).
func (r *UserRepository) UpdateImage(ctx context.Context, userID uint, column, url string) (*model.User, error) {
	ctx = ctxutil.Tag(ctx, "user_repository", "UpdateImage")

	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update(column, url)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "failed to update user image").
			Uint("user_id", userID).
			String("column", column).
			Err(result.Error).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.GetByID(ctx, userID)
}
