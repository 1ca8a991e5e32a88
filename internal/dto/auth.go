package dto

// RegisterRequest carries the multipart form fields of the registration
// endpoint. Image files ride alongside as multipart file parts.
type RegisterRequest struct {
	Username            string `form:"username" binding:"required,username"`
	Email               string `form:"email" binding:"required,email"`
	Fullname            string `form:"fullname" binding:"required"`
	Password            string `form:"password" binding:"required,min=6"`
	Bio                 string `form:"bio" binding:"max=200"`
	Interests           string `form:"interests"`
	Location            string `form:"location"`
	LocationCoordinates string `form:"locationCoordinates"`
}

// LoginRequest accepts a single identifier that may be a username or an
// email address; the service classifies it.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// ChangePasswordRequest rotates the account password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// AuthResponse is returned by login and refresh: the sanitized user plus
// a fresh token pair. The same tokens are also set as httpOnly cookies.
type AuthResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
}
