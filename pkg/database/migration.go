package database

import (
	"fmt"

	"github.com/voluntree/backend/internal/model"
	"github.com/voluntree/backend/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate runs schema auto-migration for all platform models.
func Migrate(db *gorm.DB) error {
	models := []interface{}{
		&model.User{},
		&model.Follow{},
		&model.Project{},
		&model.Post{},
		&model.Membership{},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("auto-migration failed for %T: %w", m, err)
		}
	}

	// Supporting indexes for the follower listings (newest-first scans per side)
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_follows_follower_created ON follows (follower_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_follows_following_created ON follows (following_id, created_at DESC)",
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("index creation failed: %w", err)
		}
	}

	logger.GetLogger().Info("database migration completed",
		zap.Int("models", len(models)),
	)

	return nil
}
