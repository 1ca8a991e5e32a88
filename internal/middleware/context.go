package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voluntree/backend/internal/constants"
	ctxutil "github.com/voluntree/backend/pkg/context"
)

// RequestContext seeds every request with an id and tracking metadata, so
// downstream log lines correlate. An inbound X-Request-ID is honored.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := ctxutil.WithRequestInfo(
			c.Request.Context(),
			requestID,
			c.ClientIP(),
			c.GetHeader(constants.HeaderUserAgent),
		)
		c.Request = c.Request.WithContext(ctx)

		c.Header(constants.HeaderXRequestID, requestID)
		c.Next()
	}
}
