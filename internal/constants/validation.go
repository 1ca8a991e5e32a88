package constants

// Credential validation bounds
const (
	UsernameMinLength = 3
	UsernameMaxLength = 39
	PasswordMinLength = 6
	BioMaxLength      = 200
)

// ValidInterests is the fixed set of interest tags a user or project may carry.
var ValidInterests = []string{"environment", "education", "health", "community", "technology", "other"}

// Geo coordinate bounds, [longitude, latitude]
const (
	LongitudeMin = -180.0
	LongitudeMax = 180.0
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
)
