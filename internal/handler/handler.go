package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voluntree/backend/config"
	"github.com/voluntree/backend/internal/constants"
	apperrors "github.com/voluntree/backend/internal/errors"
	"github.com/voluntree/backend/pkg/validation"
)

// respond writes the standard success envelope.
func respond(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, constants.BuildResponse(statusCode, data, message))
}

// respondError maps a domain error onto the standard error envelope.
func respondError(c *gin.Context, err error) {
	status := apperrors.ToHTTPStatus(err)
	c.JSON(status, constants.BuildErrorResponse(status, apperrors.GetErrorMessage(err), nil))
}

// respondBindingError reports a request binding failure as a 400.
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(
		http.StatusBadRequest,
		validation.FormatBindingError(err),
		nil,
	))
}

// setAuthCookies installs the token pair as httpOnly cookies. The Secure
// flag follows the environment so local development over plain HTTP works.
func setAuthCookies(c *gin.Context, cfg *config.Config, accessToken, refreshToken string) {
	secure := cfg.IsProduction()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.CookieAccessToken, accessToken,
		int(cfg.JWT.AccessExpiry.Seconds()), "/", "", secure, true)
	c.SetCookie(constants.CookieRefreshToken, refreshToken,
		int(cfg.JWT.RefreshExpiry.Seconds()), "/", "", secure, true)
}

// clearAuthCookies expires both auth cookies.
func clearAuthCookies(c *gin.Context, cfg *config.Config) {
	secure := cfg.IsProduction()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.CookieAccessToken, "", -1, "/", "", secure, true)
	c.SetCookie(constants.CookieRefreshToken, "", -1, "/", "", secure, true)
}
