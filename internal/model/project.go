package model

import (
	"time"

	"gorm.io/datatypes"
)

// Project statuses
const (
	ProjectStatusOpen      = "open"
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// Project is a volunteer initiative owned by a user.
type Project struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerID     uint   `gorm:"not null;index" json:"owner_id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:64;index" json:"category"`
	Status      string `gorm:"size:32;default:open;index" json:"status"`

	Location            string         `gorm:"size:255" json:"location"`
	LocationCoordinates datatypes.JSON `gorm:"type:jsonb" json:"locationCoordinates"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}
