package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/voluntree/backend/internal/constants"
)

var (
	// emailRegex classifies login identifiers; full email validity is
	// enforced by the binding layer on registration.
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	usernameCharsRegex = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// IsEmail reports whether an identifier looks like an email address.
func IsEmail(identifier string) bool {
	return emailRegex.MatchString(identifier)
}

// ValidateUsername enforces the platform's handle rules: lowercase letters,
// digits and hyphens, 3-39 characters, no leading, trailing, or consecutive
// hyphens.
func ValidateUsername(username string) error {
	if len(username) < constants.UsernameMinLength || len(username) > constants.UsernameMaxLength {
		return fmt.Errorf("username must be between %d and %d characters",
			constants.UsernameMinLength, constants.UsernameMaxLength)
	}
	if !usernameCharsRegex.MatchString(username) {
		return fmt.Errorf("username may only contain lowercase letters, digits and hyphens")
	}
	if strings.HasPrefix(username, "-") || strings.HasSuffix(username, "-") {
		return fmt.Errorf("username may not start or end with a hyphen")
	}
	if strings.Contains(username, "--") {
		return fmt.Errorf("username may not contain consecutive hyphens")
	}
	return nil
}

// UsernameValidator adapts ValidateUsername to gin's binding engine, so
// struct tags can use `binding:"username"`.
func UsernameValidator(fl validator.FieldLevel) bool {
	return ValidateUsername(fl.Field().String()) == nil
}

// ParseInterests splits a comma-separated interest list, normalizes each
// entry, and checks it against the supported categories.
func ParseInterests(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	interests := make([]string, 0, len(parts))
	for _, part := range parts {
		interest := strings.ToLower(strings.TrimSpace(part))
		if interest == "" {
			continue
		}
		if !isValidInterest(interest) {
			return nil, fmt.Errorf("unsupported interest %q, must be one of: %s",
				interest, strings.Join(constants.ValidInterests, ", "))
		}
		interests = append(interests, interest)
	}

	return interests, nil
}

func isValidInterest(interest string) bool {
	for _, valid := range constants.ValidInterests {
		if interest == valid {
			return true
		}
	}
	return false
}

// Coordinates is a GeoJSON-style longitude/latitude pair.
type Coordinates struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// ParseCoordinates parses a "longitude,latitude" string and range-checks
// both components.
func ParseCoordinates(raw string) (*Coordinates, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("coordinates must be in \"longitude,latitude\" format")
	}

	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude: %s", parts[0])
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude: %s", parts[1])
	}

	if lng < constants.LongitudeMin || lng > constants.LongitudeMax {
		return nil, fmt.Errorf("longitude must be between %v and %v", constants.LongitudeMin, constants.LongitudeMax)
	}
	if lat < constants.LatitudeMin || lat > constants.LatitudeMax {
		return nil, fmt.Errorf("latitude must be between %v and %v", constants.LatitudeMin, constants.LatitudeMax)
	}

	return &Coordinates{
		Type:        "Point",
		Coordinates: []float64{lng, lat},
	}, nil
}
