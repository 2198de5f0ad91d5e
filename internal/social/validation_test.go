package social

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"simple", "alice", true},
		{"with dots and digits", "alice.v2", true},
		{"with underscore", "alice_w", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"too short", "ab", false},
		{"too long", strings.Repeat("a", 31), false},
		{"illegal character", "alice!", false},
		{"leading dot", ".alice", false},
		{"trailing underscore", "alice_", false},
		{"consecutive dots", "ali..ce", false},
		{"consecutive underscores", "ali__ce", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid(ValidateUsername(tt.username)); got != tt.valid {
				t.Errorf("ValidateUsername(%q) valid=%v, expected %v", tt.username, got, tt.valid)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"alice@example.com", true},
		{"a.b+tag@sub.example.co", true},
		{"", false},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"@example.com", false},
	}

	for _, tt := range tests {
		if got := Valid(ValidateEmail(tt.email)); got != tt.valid {
			t.Errorf("ValidateEmail(%q) valid=%v, expected %v", tt.email, got, tt.valid)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"", true},
		{"+8801712345678", true},
		{"1712345678", true},
		{"+0123", false},
		{"phone", false},
	}

	for _, tt := range tests {
		if got := Valid(ValidatePhone(tt.phone)); got != tt.valid {
			t.Errorf("ValidatePhone(%q) valid=%v, expected %v", tt.phone, got, tt.valid)
		}
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"Alice", true},
		{"Mary-Jane O'Neil", true},
		{"", false},
		{"A", false},
		{strings.Repeat("a", 51), false},
		{"Alice42", false},
	}

	for _, tt := range tests {
		if got := Valid(ValidateName(tt.name)); got != tt.valid {
			t.Errorf("ValidateName(%q) valid=%v, expected %v", tt.name, got, tt.valid)
		}
	}
}

func TestValidateBio(t *testing.T) {
	if !Valid(ValidateBio("")) || !Valid(ValidateBio("hello")) {
		t.Error("Expected short bios to be valid")
	}
	if Valid(ValidateBio(strings.Repeat("a", 501))) {
		t.Error("Expected an over-length bio to be invalid")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"strong", "Str0ng!pass", true},
		{"too short", "S0r!t", false},
		{"no uppercase", "weak0!pass", false},
		{"no lowercase", "WEAK0!PASS", false},
		{"no digit", "Weakest!pass", false},
		{"no special", "Weak0pass", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid(ValidatePassword(tt.password)); got != tt.valid {
				t.Errorf("ValidatePassword(%q) valid=%v, expected %v", tt.password, got, tt.valid)
			}
		})
	}
}

func TestValidatePasswordMatch(t *testing.T) {
	if !Valid(ValidatePasswordMatch("secret", "secret")) {
		t.Error("Expected matching passwords to be valid")
	}
	if Valid(ValidatePasswordMatch("secret", "other")) {
		t.Error("Expected mismatched passwords to be invalid")
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{"", true},
		{"https://example.com/a", true},
		{"http://example.com", true},
		{"ftp://example.com", false},
		{"example.com", false},
	}

	for _, tt := range tests {
		if got := Valid(ValidateURL(tt.url)); got != tt.valid {
			t.Errorf("ValidateURL(%q) valid=%v, expected %v", tt.url, got, tt.valid)
		}
	}
}

func TestValidateGender(t *testing.T) {
	for _, gender := range []string{"", "male", "female", "other", "prefer_not_to_say"} {
		if !Valid(ValidateGender(gender)) {
			t.Errorf("Expected %q to be valid", gender)
		}
	}
	if Valid(ValidateGender("unknown")) {
		t.Error("Expected an unknown tag to be invalid")
	}
}

func TestValidationErrorCarriesMessage(t *testing.T) {
	result := ValidateUsername("")
	verr, ok := result.(ValidationError)
	if !ok {
		t.Fatalf("Expected a ValidationError, got %T", result)
	}
	if verr.Message == "" {
		t.Error("Expected a human-readable message")
	}
}
