package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voluntree/backend/config"
	"github.com/voluntree/backend/internal/constants"
	"github.com/voluntree/backend/internal/dto"
	apperrors "github.com/voluntree/backend/internal/errors"
	"github.com/voluntree/backend/internal/middleware"
	"github.com/voluntree/backend/internal/service"
)

type UserHandler struct {
	users *service.UserService
	cfg   *config.Config
}

func NewUserHandler(users *service.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{users: users, cfg: cfg}
}

// CurrentUser handles GET /users/current-user.
func (h *UserHandler) CurrentUser(c *gin.Context) {
	userID := middleware.AuthenticatedUserID(c)

	user, err := h.users.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, user, constants.MsgCurrentUser)
}

// UpdateDetails handles PATCH /users/update-details.
func (h *UserHandler) UpdateDetails(c *gin.Context) {
	var req dto.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userID := middleware.AuthenticatedUserID(c)
	user, err := h.users.UpdateDetails(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, user, constants.MsgDetailsUpdated)
}

// UpdateAvatar handles PATCH /users/update-avatar.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, constants.FormFieldAvatar, service.ImageKindAvatar, constants.MsgAvatarUpdated)
}

// UpdateCoverImage handles PATCH /users/update-cover-image.
func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, constants.FormFieldCoverImage, service.ImageKindCover, constants.MsgCoverUpdated)
}

func (h *UserHandler) updateImage(c *gin.Context, field string, kind service.ImageKind, successMessage string) {
	file, err := c.FormFile(field)
	if err != nil {
		respondError(c, apperrors.WithMessage(apperrors.ErrValidation, "Image file is required"))
		return
	}

	localPath, err := stageFile(c, file, h.cfg.App.UploadDir)
	if err != nil {
		respondError(c, apperrors.WithMessage(apperrors.ErrInternal, "Failed to store uploaded image"))
		return
	}

	userID := middleware.AuthenticatedUserID(c)
	user, err := h.users.UpdateImage(c.Request.Context(), userID, kind, localPath)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, user, successMessage)
}
