package router

import (
	"github.com/gin-gonic/gin"
	"github.com/voluntree/backend/internal/middleware"
)

// registerUserRoutes mounts the /users surface: auth lifecycle, profile
// maintenance and the social graph.
func (r *Router) registerUserRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	requireAuth := middleware.RequireAuth(r.tokens, r.users)

	// Public auth lifecycle
	users.POST("/register", r.auth.Register)
	users.POST("/login", r.auth.Login)
	users.POST("/refresh-token", r.auth.RefreshToken)

	// Authenticated auth lifecycle
	users.POST("/logout", requireAuth, r.auth.Logout)
	users.POST("/change-password", requireAuth, r.auth.ChangePassword)

	// Profile maintenance
	users.GET("/current-user", requireAuth, r.user.CurrentUser)
	users.PATCH("/update-details", requireAuth, r.user.UpdateDetails)
	users.PATCH("/update-avatar", requireAuth, r.user.UpdateAvatar)
	users.PATCH("/update-cover-image", requireAuth, r.user.UpdateCoverImage)

	// Profiles and the social graph
	users.GET("/profile/:username", requireAuth, r.profile.Profile)
	users.POST("/follow/:username", requireAuth, r.follow.Follow)
	users.DELETE("/unfollow/:username", requireAuth, r.follow.Unfollow)
	users.GET("/followers/:username", r.follow.Followers)
	users.GET("/followings/:username", r.follow.Followings)
}
