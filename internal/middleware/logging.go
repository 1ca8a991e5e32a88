package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voluntree/backend/internal/constants"
	"github.com/voluntree/backend/pkg/logger"
)

// Logging writes one structured line per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.LogRequest(
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Milliseconds(),
			c.ClientIP(),
			c.GetHeader(constants.HeaderUserAgent),
		)
	}
}

// Recovery converts panics into a clean 500 envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.LogPanic(recovered)
				c.AbortWithStatusJSON(500, constants.BuildErrorResponse(500, constants.MsgInternalError, nil))
			}
		}()
		c.Next()
	}
}
