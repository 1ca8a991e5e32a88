package constants

// HTTP Header Names
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderUserAgent     = "User-Agent"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXRealIP       = "X-Real-IP"
)

// HTTP Content Types
const (
	ContentTypeJSON      = "application/json"
	ContentTypeForm      = "application/x-www-form-urlencoded"
	ContentTypeMultipart = "multipart/form-data"
)

// Auth Cookie Names
const (
	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
)

// Bearer token prefix in the Authorization header
const BearerPrefix = "Bearer "

// Multipart form field names for image uploads
const (
	FormFieldAvatar     = "avatar"
	FormFieldCoverImage = "coverImage"
)

// Common HTTP Error Messages
const (
	MsgUnauthorized  = "Unauthorized access"
	MsgNotFound      = "Resource not found"
	MsgBadRequest    = "Invalid request"
	MsgInternalError = "Internal server error"
	MsgConflict      = "Resource already exists"
)

// HTTP Success Messages
const (
	MsgRegistered      = "User registered successfully"
	MsgLoggedIn        = "User logged in successfully"
	MsgLoggedOut       = "User logged out successfully"
	MsgTokenRefreshed  = "Access token refreshed successfully"
	MsgPasswordChanged = "Password changed successfully"
	MsgDetailsUpdated  = "User details updated successfully"
	MsgAvatarUpdated   = "Avatar updated successfully"
	MsgCoverUpdated    = "Cover image updated successfully"
	MsgProfileFetched  = "User profile fetched successfully"
	MsgCurrentUser     = "Current user fetched successfully"
	MsgFollowed        = "User followed successfully"
	MsgUnfollowed      = "User unfollowed successfully"
	MsgFollowers       = "Followers fetched successfully"
	MsgFollowings      = "Followings fetched successfully"
)
