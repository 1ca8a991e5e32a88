package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voluntree/backend/internal/constants"
	"github.com/voluntree/backend/pkg/redis"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewHealthHandler(db *gorm.DB, cache *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health handles GET /health, reporting dependency status.
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{
		"database": "ok",
		"cache":    "ok",
	}

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		checks["database"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	if !h.cache.IsEnabled() {
		checks["cache"] = "disabled"
	} else if err := h.cache.Ping(c.Request.Context()); err != nil {
		checks["cache"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	message := "Service healthy"
	if status != http.StatusOK {
		message = "Service degraded"
	}
	c.JSON(status, constants.BuildResponse(status, checks, message))
}
