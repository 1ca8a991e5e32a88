package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is a platform account. The refresh token slot holds at most one
// active session fingerprint; overwriting it invalidates the previous one.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username string `gorm:"size:39;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Fullname string `gorm:"size:255;not null" json:"fullname"`
	Password string `gorm:"size:255;not null" json:"-"`

	Avatar     string `gorm:"size:512;not null" json:"avatar"`
	CoverImage string `gorm:"size:512" json:"coverImage"`
	Bio        string `gorm:"size:200" json:"bio"`

	Interests           datatypes.JSON `gorm:"type:jsonb" json:"interests"`
	Location            string         `gorm:"size:255" json:"location"`
	LocationCoordinates datatypes.JSON `gorm:"type:jsonb" json:"locationCoordinates"`

	TrustScore  int  `gorm:"default:0" json:"trustScore"`
	ImpactScore int  `gorm:"default:0" json:"impactScore"`
	IsVerified  bool `gorm:"default:false" json:"isVerified"`

	RefreshTokenHash     *string    `gorm:"size:64" json:"-"`
	RefreshTokenIssuedAt *time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate hashes the password before the row is written. Password
// updates after creation go through the repository, which hashes explicitly.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Password == "" {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)

	return nil
}

// ComparePassword checks a plaintext candidate against the stored hash.
func (u *User) ComparePassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate)) == nil
}

// HasActiveSession reports whether a refresh token is currently registered.
func (u *User) HasActiveSession() bool {
	return u.RefreshTokenHash != nil && *u.RefreshTokenHash != ""
}
