package model

import "time"

// Membership roles
const (
	MembershipRoleOwner     = "owner"
	MembershipRoleVolunteer = "volunteer"
)

// Membership links a user to a project they joined. A user joins a
// project at most once.
type Membership struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID    uint   `gorm:"not null;uniqueIndex:idx_memberships_pair" json:"user_id"`
	ProjectID uint   `gorm:"not null;uniqueIndex:idx_memberships_pair" json:"project_id"`
	Role      string `gorm:"size:32;default:volunteer" json:"role"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (Membership) TableName() string {
	return "memberships"
}
