package handler

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voluntree/backend/config"
	"github.com/voluntree/backend/internal/constants"
	"github.com/voluntree/backend/internal/dto"
	apperrors "github.com/voluntree/backend/internal/errors"
	"github.com/voluntree/backend/internal/middleware"
	"github.com/voluntree/backend/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
	cfg  *config.Config
}

func NewAuthHandler(auth *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{auth: auth, cfg: cfg}
}

// Register handles POST /users/register. The body is a multipart form with
// an avatar file (required) and an optional cover image.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	avatarPath, err := h.stageUpload(c, constants.FormFieldAvatar)
	if err != nil {
		respondError(c, apperrors.WithMessage(apperrors.ErrInternal, "Failed to store uploaded avatar"))
		return
	}
	coverPath, err := h.stageUpload(c, constants.FormFieldCoverImage)
	if err != nil {
		respondError(c, apperrors.WithMessage(apperrors.ErrInternal, "Failed to store uploaded cover image"))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), &req, avatarPath, coverPath)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, user, constants.MsgRegistered)
}

// Login handles POST /users/login. On success the token pair is returned
// in the body and mirrored as httpOnly cookies.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	setAuthCookies(c, h.cfg, resp.AccessToken, resp.RefreshToken)
	respond(c, http.StatusOK, resp, constants.MsgLoggedIn)
}

// Logout handles POST /users/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.AuthenticatedUserID(c)

	if err := h.auth.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	clearAuthCookies(c, h.cfg)
	respond(c, http.StatusOK, nil, constants.MsgLoggedOut)
}

// RefreshToken handles POST /users/refresh-token. The refresh token comes
// from the cookie, the Authorization bearer header, or the request body,
// in that order.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken, _ := c.Cookie(constants.CookieRefreshToken)
	if refreshToken == "" {
		header := c.GetHeader(constants.HeaderAuthorization)
		if strings.HasPrefix(header, constants.BearerPrefix) {
			refreshToken = strings.TrimPrefix(header, constants.BearerPrefix)
		}
	}
	if refreshToken == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			refreshToken = body.RefreshToken
		}
	}

	resp, err := h.auth.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	setAuthCookies(c, h.cfg, resp.AccessToken, resp.RefreshToken)
	respond(c, http.StatusOK, resp, constants.MsgTokenRefreshed)
}

// ChangePassword handles POST /users/change-password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userID := middleware.AuthenticatedUserID(c)
	if err := h.auth.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, nil, constants.MsgPasswordChanged)
}

// stageUpload saves a multipart file part to the local upload directory and
// returns its path. A missing part yields an empty path, not an error.
func (h *AuthHandler) stageUpload(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	return stageFile(c, file, h.cfg.App.UploadDir)
}

func stageFile(c *gin.Context, file *multipart.FileHeader, uploadDir string) (string, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(uploadDir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}
