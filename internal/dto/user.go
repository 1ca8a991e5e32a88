package dto

import (
	"encoding/json"
	"time"

	"github.com/voluntree/backend/internal/model"
)

// UserResponse is the sanitized public shape of a user. Credentials and
// the refresh token slot never leave the service layer.
type UserResponse struct {
	ID                  uint        `json:"id"`
	Username            string      `json:"username"`
	Email               string      `json:"email"`
	Fullname            string      `json:"fullname"`
	Avatar              string      `json:"avatar"`
	CoverImage          string      `json:"coverImage,omitempty"`
	Bio                 string      `json:"bio,omitempty"`
	Interests           []string    `json:"interests,omitempty"`
	Location            string      `json:"location,omitempty"`
	LocationCoordinates interface{} `json:"locationCoordinates,omitempty"`
	TrustScore          int         `json:"trustScore"`
	ImpactScore         int         `json:"impactScore"`
	IsVerified          bool        `json:"isVerified"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

// NewUserResponse maps a model.User to its sanitized response shape.
func NewUserResponse(user *model.User) *UserResponse {
	if user == nil {
		return nil
	}

	resp := &UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Fullname:    user.Fullname,
		Avatar:      user.Avatar,
		CoverImage:  user.CoverImage,
		Bio:         user.Bio,
		Location:    user.Location,
		TrustScore:  user.TrustScore,
		ImpactScore: user.ImpactScore,
		IsVerified:  user.IsVerified,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}

	if len(user.Interests) > 0 {
		var interests []string
		if err := json.Unmarshal(user.Interests, &interests); err == nil {
			resp.Interests = interests
		}
	}
	if len(user.LocationCoordinates) > 0 {
		var coords interface{}
		if err := json.Unmarshal(user.LocationCoordinates, &coords); err == nil {
			resp.LocationCoordinates = coords
		}
	}

	return resp
}

// UpdateDetailsRequest patches mutable profile fields. At least one field
// must be present; the service enforces that.
type UpdateDetailsRequest struct {
	Fullname            string `json:"fullname"`
	Bio                 string `json:"bio" binding:"max=200"`
	Interests           string `json:"interests"`
	Location            string `json:"location"`
	LocationCoordinates string `json:"locationCoordinates"`
}

// IsEmpty reports whether no field was supplied.
func (r *UpdateDetailsRequest) IsEmpty() bool {
	return r.Fullname == "" && r.Bio == "" && r.Interests == "" &&
		r.Location == "" && r.LocationCoordinates == ""
}
