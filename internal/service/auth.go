package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/voluntree/backend/internal/dto"
	apperrors "github.com/voluntree/backend/internal/errors"
	"github.com/voluntree/backend/internal/model"
	ctxutil "github.com/voluntree/backend/pkg/context"
	"github.com/voluntree/backend/pkg/logger"
	"github.com/voluntree/backend/pkg/storage"
	"github.com/voluntree/backend/pkg/validation"
	"gorm.io/datatypes"
)

// AuthService owns registration and the session lifecycle: login, logout,
// refresh and password changes. Each user has a single refresh token slot;
// issuing a new refresh token overwrites the slot, which revokes the
// previous session.
type AuthService struct {
	users                  UserStore
	tokens                 *TokenService
	blobs                  storage.BlobStore
	revokeOnPasswordChange bool
}

func NewAuthService(users UserStore, tokens *TokenService, blobs storage.BlobStore, revokeOnPasswordChange bool) *AuthService {
	return &AuthService{
		users:                  users,
		tokens:                 tokens,
		blobs:                  blobs,
		revokeOnPasswordChange: revokeOnPasswordChange,
	}
}

// Register creates an account from the multipart registration form. The
// avatar is mandatory; the cover image is optional. Staged upload files are
// removed on every exit path, success or failure.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, avatarPath, coverPath string) (*dto.UserResponse, error) {
	ctx = ctxutil.Tag(ctx, "auth_service", "Register")

	// Staged files never outlive the request
	defer func() {
		_ = s.blobs.Remove(avatarPath)
		_ = s.blobs.Remove(coverPath)
	}()

	if avatarPath == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Avatar image is required")
	}

	interests, err := validation.ParseInterests(req.Interests)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, err.Error())
	}
	coords, err := validation.ParseCoordinates(req.LocationCoordinates)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, err.Error())
	}

	// Friendlier message than the constraint violation; the unique indexes
	// remain the authoritative guard against races.
	if _, err := s.users.GetByUsernameOrEmail(ctx, req.Username, req.Email); err == nil {
		return nil, apperrors.WithMessage(apperrors.ErrConflict, "User with this email or username already exists")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	avatarURL, err := s.blobs.Upload(ctx, avatarPath)
	if err != nil {
		logger.ErrorWithContext(ctx, "avatar upload failed").Err(err).Log()
		return nil, apperrors.WithMessage(apperrors.ErrInternal, "Failed to upload avatar image")
	}

	var coverURL string
	if coverPath != "" {
		coverURL, err = s.blobs.Upload(ctx, coverPath)
		if err != nil {
			logger.ErrorWithContext(ctx, "cover image upload failed").Err(err).Log()
			return nil, apperrors.WithMessage(apperrors.ErrInternal, "Failed to upload cover image")
		}
	}

	user := &model.User{
		Username:   req.Username,
		Email:      req.Email,
		Fullname:   req.Fullname,
		Password:   req.Password,
		Avatar:     avatarURL,
		CoverImage: coverURL,
		Bio:        req.Bio,
		Location:   req.Location,
	}
	if len(interests) > 0 {
		data, err := json.Marshal(interests)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		user.Interests = datatypes.JSON(data)
	}
	if coords != nil {
		data, err := json.Marshal(coords)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		user.LocationCoordinates = datatypes.JSON(data)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.WithMessage(apperrors.ErrConflict, "User with this email or username already exists")
		}
		return nil, err
	}

	logger.InfoWithContext(ctx, "user registered").
		Uint("user_id", user.ID).
		String("username", user.Username).
		Log()

	return dto.NewUserResponse(user), nil
}

// Login authenticates by username or email and opens a new session. The
// fresh refresh token's fingerprint overwrites the slot, so any previously
// issued refresh token stops working.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	ctx = ctxutil.Tag(ctx, "auth_service", "Login")

	var user *model.User
	var err error
	if validation.IsEmail(req.Identifier) {
		user, err = s.users.GetByEmail(ctx, req.Identifier)
	} else {
		user, err = s.users.GetByUsername(ctx, req.Identifier)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "User does not exist")
		}
		return nil, err
	}

	if !user.ComparePassword(req.Password) {
		logger.WarnWithContext(ctx, "login rejected, bad password").
			Uint("user_id", user.ID).
			Log()
		return nil, apperrors.WithMessage(apperrors.ErrInvalidCredential, "Invalid user credentials")
	}

	resp, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "user logged in").
		Uint("user_id", user.ID).
		String("username", user.Username).
		Log()

	return resp, nil
}

// Logout clears the refresh token slot. Clearing an already empty slot is
// not an error, so repeated logouts succeed.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	ctx = ctxutil.Tag(ctx, "auth_service", "Logout")

	if err := s.users.UpdateRefreshSlot(ctx, userID, nil, nil); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}

	logger.InfoWithContext(ctx, "user logged out").
		Uint("user_id", userID).
		Log()

	return nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The presented
// token must match the stored slot exactly; rotation overwrites the slot so
// each refresh token is single-use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	ctx = ctxutil.Tag(ctx, "auth_service", "Refresh")

	if refreshToken == "" {
		return nil, apperrors.WithMessage(apperrors.ErrUnauthorized, "Unauthorized request")
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidCredential, "Invalid refresh token")
		}
		return nil, err
	}

	if !user.HasActiveSession() ||
		!FingerprintEqual(Fingerprint(refreshToken), *user.RefreshTokenHash) {
		logger.WarnWithContext(ctx, "refresh rejected, token does not match active session").
			Uint("user_id", user.ID).
			Log()
		return nil, apperrors.WithMessage(apperrors.ErrInvalidCredential, "Refresh token is expired or used")
	}

	resp, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "session refreshed").
		Uint("user_id", user.ID).
		Log()

	return resp, nil
}

// ChangePassword verifies the old password and installs the new one. When
// session revocation on password change is enabled, the refresh slot is
// cleared so outstanding sessions die with the old password.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error {
	ctx = ctxutil.Tag(ctx, "auth_service", "ChangePassword")

	if req.OldPassword == req.NewPassword {
		return apperrors.WithMessage(apperrors.ErrValidation, "New password must be different from the old password")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.ComparePassword(req.OldPassword) {
		logger.WarnWithContext(ctx, "password change rejected, bad old password").
			Uint("user_id", userID).
			Log()
		return apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid old password")
	}

	if err := s.users.UpdatePassword(ctx, userID, req.NewPassword); err != nil {
		return err
	}

	if s.revokeOnPasswordChange {
		if err := s.users.UpdateRefreshSlot(ctx, userID, nil, nil); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}

	logger.InfoWithContext(ctx, "password changed").
		Uint("user_id", userID).
		Bool("sessions_revoked", s.revokeOnPasswordChange).
		Log()

	return nil
}

// openSession issues an access/refresh pair and persists the refresh
// fingerprint. If persisting fails the pair is discarded, never handed out.
func (s *AuthService) openSession(ctx context.Context, user *model.User) (*dto.AuthResponse, error) {
	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}

	fingerprint := Fingerprint(refreshToken)
	issuedAt := time.Now()
	if err := s.users.UpdateRefreshSlot(ctx, user.ID, &fingerprint, &issuedAt); err != nil {
		logger.ErrorWithContext(ctx, "failed to persist refresh token slot").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WithMessage(apperrors.ErrInternal, "Failed to establish session")
	}

	return &dto.AuthResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
