package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voluntree/backend/internal/constants"
	"github.com/voluntree/backend/internal/middleware"
	"github.com/voluntree/backend/internal/service"
)

type FollowHandler struct {
	follows *service.FollowService
}

func NewFollowHandler(follows *service.FollowService) *FollowHandler {
	return &FollowHandler{follows: follows}
}

// Follow handles POST /users/follow/:username.
func (h *FollowHandler) Follow(c *gin.Context) {
	userID := middleware.AuthenticatedUserID(c)

	if err := h.follows.Follow(c.Request.Context(), userID, c.Param("username")); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, nil, constants.MsgFollowed)
}

// Unfollow handles DELETE /users/unfollow/:username.
func (h *FollowHandler) Unfollow(c *gin.Context) {
	userID := middleware.AuthenticatedUserID(c)

	if err := h.follows.Unfollow(c.Request.Context(), userID, c.Param("username")); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, nil, constants.MsgUnfollowed)
}

// Followers handles GET /users/followers/:username.
func (h *FollowHandler) Followers(c *gin.Context) {
	params := constants.ParsePaginationParams(c)

	resp, err := h.follows.ListFollowers(c.Request.Context(), c.Param("username"), params)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, resp, constants.MsgFollowers)
}

// Followings handles GET /users/followings/:username.
func (h *FollowHandler) Followings(c *gin.Context) {
	params := constants.ParsePaginationParams(c)

	resp, err := h.follows.ListFollowings(c.Request.Context(), c.Param("username"), params)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, resp, constants.MsgFollowings)
}
