package model

import "time"

// Post is a user-authored update, optionally attached to a project.
type Post struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AuthorID  uint   `gorm:"not null;index" json:"author_id"`
	ProjectID *uint  `gorm:"index" json:"project_id,omitempty"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Image     string `gorm:"size:512" json:"image,omitempty"`

	Author  *User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}
