package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/voluntree/backend/internal/constants"
	"github.com/voluntree/backend/internal/dto"
	apperrors "github.com/voluntree/backend/internal/errors"
	ctxutil "github.com/voluntree/backend/pkg/context"
	"github.com/voluntree/backend/pkg/logger"
	"github.com/voluntree/backend/pkg/storage"
	"github.com/voluntree/backend/pkg/validation"
)

// ImageKind selects which image column an upload replaces.
type ImageKind string

const (
	ImageKindAvatar ImageKind = "avatar"
	ImageKindCover  ImageKind = "cover_image"
)

// UserService covers profile maintenance outside the auth lifecycle:
// detail updates, image replacement and current-user lookup.
type UserService struct {
	users UserStore
	blobs storage.BlobStore
	cache ProfileCache
}

func NewUserService(users UserStore, blobs storage.BlobStore, cache ProfileCache) *UserService {
	return &UserService{users: users, blobs: blobs, cache: cache}
}

// GetCurrentUser returns the sanitized authenticated user.
func (s *UserService) GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	ctx = ctxutil.Tag(ctx, "user_service", "GetCurrentUser")

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// UpdateDetails patches the mutable profile fields. At least one field
// must be supplied.
func (s *UserService) UpdateDetails(ctx context.Context, userID uint, req *dto.UpdateDetailsRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.Tag(ctx, "user_service", "UpdateDetails")

	if req.IsEmpty() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "At least one field is required")
	}

	fields := map[string]interface{}{}
	if req.Fullname != "" {
		fields["fullname"] = req.Fullname
	}
	if req.Bio != "" {
		if len(req.Bio) > constants.BioMaxLength {
			return nil, apperrors.WithMessage(apperrors.ErrValidation,
				fmt.Sprintf("Bio must be at most %d characters", constants.BioMaxLength))
		}
		fields["bio"] = req.Bio
	}
	if req.Location != "" {
		fields["location"] = req.Location
	}
	if req.Interests != "" {
		interests, err := validation.ParseInterests(req.Interests)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, err.Error())
		}
		data, err := json.Marshal(interests)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		fields["interests"] = data
	}
	if req.LocationCoordinates != "" {
		coords, err := validation.ParseCoordinates(req.LocationCoordinates)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, err.Error())
		}
		data, err := json.Marshal(coords)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		fields["location_coordinates"] = data
	}

	user, err := s.users.UpdateDetails(ctx, userID, fields)
	if err != nil {
		return nil, err
	}

	s.invalidateProfile(ctx, user.Username)

	logger.InfoWithContext(ctx, "user details updated").
		Uint("user_id", userID).
		Int("fields", len(fields)).
		Log()

	return dto.NewUserResponse(user), nil
}

// UpdateImage uploads a staged image file and installs its URL on the
// selected image column. The staged file is removed on every exit path.
func (s *UserService) UpdateImage(ctx context.Context, userID uint, kind ImageKind, localPath string) (*dto.UserResponse, error) {
	ctx = ctxutil.Tag(ctx, "user_service", "UpdateImage")

	defer func() { _ = s.blobs.Remove(localPath) }()

	if localPath == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Image file is required")
	}

	url, err := s.blobs.Upload(ctx, localPath)
	if err != nil {
		logger.ErrorWithContext(ctx, "image upload failed").
			Uint("user_id", userID).
			String("kind", string(kind)).
			Err(err).
			Log()
		return nil, apperrors.WithMessage(apperrors.ErrInternal, "Failed to upload image")
	}

	user, err := s.users.UpdateImage(ctx, userID, string(kind), url)
	if err != nil {
		return nil, err
	}

	s.invalidateProfile(ctx, user.Username)

	logger.InfoWithContext(ctx, "user image updated").
		Uint("user_id", userID).
		String("kind", string(kind)).
		Log()

	return dto.NewUserResponse(user), nil
}

func (s *UserService) invalidateProfile(ctx context.Context, username string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, constants.CacheKeyProfile+username); err != nil {
		logger.WarnWithContext(ctx, "profile cache invalidation failed").
			String("username", username).
			Err(err).
			Log()
	}
}
