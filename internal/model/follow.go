package model

import "time"

// Follow is a directed edge in the social graph: follower -> following.
// The composite unique index is the authoritative duplicate guard; the
// service-level pre-check only exists for a friendlier error message.
type Follow struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	FollowerID  uint `gorm:"not null;uniqueIndex:idx_follows_pair" json:"follower_id"`
	FollowingID uint `gorm:"not null;uniqueIndex:idx_follows_pair" json:"following_id"`

	Follower  *User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following *User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}

func (Follow) TableName() string {
	return "follows"
}
