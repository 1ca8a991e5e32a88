package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voluntree/backend/internal/constants"
	"github.com/voluntree/backend/internal/middleware"
	"github.com/voluntree/backend/internal/service"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Profile handles GET /users/profile/:username. The route requires auth,
// so isFollowing always reflects the authenticated viewer.
func (h *ProfileHandler) Profile(c *gin.Context) {
	viewerID := middleware.AuthenticatedUserID(c)

	profile, err := h.profiles.GetProfile(c.Request.Context(), viewerID, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, profile, constants.MsgProfileFetched)
}
