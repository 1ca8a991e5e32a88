package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/voluntree/backend/internal/constants"
	apperrors "github.com/voluntree/backend/internal/errors"
	"github.com/voluntree/backend/internal/service"
	ctxutil "github.com/voluntree/backend/pkg/context"
	"github.com/voluntree/backend/pkg/logger"
)

// Gin context keys for the authenticated principal
const (
	GinKeyUserID   = "auth_user_id"
	GinKeyUsername = "auth_username"
)

// RequireAuth verifies the access token and loads the account behind it.
// The token is read from the accessToken cookie first, then from the
// Authorization bearer header. Accounts deleted after issuance are rejected.
func RequireAuth(tokens *service.TokenService, users service.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractAccessToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "Unauthorized request")
			return
		}

		claims, err := tokens.VerifyAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, apperrors.GetErrorMessage(err))
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			logger.WarnWithContext(c.Request.Context(), "access token references missing user").
				Uint("user_id", claims.UserID).
				Log()
			abortUnauthorized(c, "Invalid access token")
			return
		}

		c.Set(GinKeyUserID, user.ID)
		c.Set(GinKeyUsername, user.Username)

		ctx := ctxutil.WithUserID(c.Request.Context(), user.ID)
		ctx = ctxutil.WithUsername(ctx, user.Username)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AuthenticatedUserID returns the principal set by RequireAuth. The zero
// value means no authenticated user.
func AuthenticatedUserID(c *gin.Context) uint {
	if id, ok := c.Get(GinKeyUserID); ok {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

func extractAccessToken(c *gin.Context) string {
	if cookie, err := c.Cookie(constants.CookieAccessToken); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader(constants.HeaderAuthorization)
	if strings.HasPrefix(header, constants.BearerPrefix) {
		return strings.TrimPrefix(header, constants.BearerPrefix)
	}

	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		constants.BuildErrorResponse(http.StatusUnauthorized, message, nil))
}
