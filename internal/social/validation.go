package social

import (
	"regexp"
	"strings"
	"unicode"
)

// ============================================================================
// Format Validation
// ============================================================================

// ValidationResult is a closed Success/Error sum. Use a type switch
// over ValidationOK and ValidationError to handle both variants.
type ValidationResult interface {
	validationResult()
}

// ValidationOK is the success variant.
type ValidationOK struct{}

// ValidationError is the failure variant with a human-readable reason.
type ValidationError struct {
	Message string
}

func (ValidationOK) validationResult()    {}
func (ValidationError) validationResult() {}

// Valid reports whether the result is the success variant.
func Valid(r ValidationResult) bool {
	_, ok := r.(ValidationOK)
	return ok
}

func invalid(message string) ValidationResult {
	return ValidationError{Message: message}
}

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9._]+$`)
	emailRe    = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phoneRe    = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	nameRe     = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	urlRe      = regexp.MustCompile(`^https?://.*`)
)

// ValidateUsername checks the handle format only; uniqueness is a
// repository concern (IsUsernameAvailable).
func ValidateUsername(username string) ValidationResult {
	switch {
	case strings.TrimSpace(username) == "":
		return invalid("Username cannot be empty")
	case len(username) < 3:
		return invalid("Username must be at least 3 characters")
	case len(username) > 30:
		return invalid("Username must be at most 30 characters")
	case !usernameRe.MatchString(username):
		return invalid("Username can only contain letters, numbers, dots and underscores")
	case strings.HasPrefix(username, ".") || strings.HasPrefix(username, "_"):
		return invalid("Username cannot start with dot or underscore")
	case strings.HasSuffix(username, ".") || strings.HasSuffix(username, "_"):
		return invalid("Username cannot end with dot or underscore")
	case strings.Contains(username, "..") || strings.Contains(username, "__"):
		return invalid("Username cannot have consecutive dots or underscores")
	}
	return ValidationOK{}
}

// ValidateEmail checks the email format only.
func ValidateEmail(email string) ValidationResult {
	switch {
	case strings.TrimSpace(email) == "":
		return invalid("Email cannot be empty")
	case !strings.Contains(email, "@"):
		return invalid("Email must contain @")
	case !emailRe.MatchString(email):
		return invalid("Invalid email format")
	}
	return ValidationOK{}
}

// ValidatePhone accepts E.164-style numbers; empty is allowed.
func ValidatePhone(phone string) ValidationResult {
	if strings.TrimSpace(phone) == "" {
		return ValidationOK{}
	}
	if !phoneRe.MatchString(phone) {
		return invalid("Invalid phone number format")
	}
	return ValidationOK{}
}

// ValidateName checks the display name format.
func ValidateName(name string) ValidationResult {
	switch {
	case strings.TrimSpace(name) == "":
		return invalid("Name cannot be empty")
	case len(name) < 2:
		return invalid("Name must be at least 2 characters")
	case len(name) > 50:
		return invalid("Name must be at most 50 characters")
	case !nameRe.MatchString(name):
		return invalid("Name can only contain letters, spaces, hyphens and apostrophes")
	}
	return ValidationOK{}
}

// ValidateBio caps the bio length.
func ValidateBio(bio string) ValidationResult {
	if len(bio) > 500 {
		return invalid("Bio must be at most 500 characters")
	}
	return ValidationOK{}
}

// ValidatePassword enforces length and character-class requirements.
func ValidatePassword(password string) ValidationResult {
	switch {
	case len(password) < 8:
		return invalid("Password must be at least 8 characters")
	case len(password) > 128:
		return invalid("Password must be at most 128 characters")
	case !containsRune(password, unicode.IsUpper):
		return invalid("Password must contain at least one uppercase letter")
	case !containsRune(password, unicode.IsLower):
		return invalid("Password must contain at least one lowercase letter")
	case !containsRune(password, unicode.IsDigit):
		return invalid("Password must contain at least one digit")
	case !containsRune(password, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }):
		return invalid("Password must contain at least one special character")
	}
	return ValidationOK{}
}

// ValidatePasswordMatch checks the confirmation field.
func ValidatePasswordMatch(password, confirm string) ValidationResult {
	if password != confirm {
		return invalid("Passwords do not match")
	}
	return ValidationOK{}
}

// ValidateURL accepts http(s) URLs; empty is allowed.
func ValidateURL(url string) ValidationResult {
	if strings.TrimSpace(url) == "" {
		return ValidationOK{}
	}
	if !urlRe.MatchString(url) {
		return invalid("Invalid URL format")
	}
	return ValidationOK{}
}

// ValidateGender accepts the known gender tags; empty is allowed.
func ValidateGender(gender string) ValidationResult {
	switch gender {
	case "", "male", "female", "other", "prefer_not_to_say":
		return ValidationOK{}
	}
	return invalid("Invalid gender value")
}

func containsRune(s string, match func(rune) bool) bool {
	for _, r := range s {
		if match(r) {
			return true
		}
	}
	return false
}
