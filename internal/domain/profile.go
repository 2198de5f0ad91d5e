package domain

import "time"

// Profile is the public, denormalized face of a user. It is stored
// twice: embedded in the user document and as its own document in the
// profiles collection for query/sort/filter access.
type Profile struct {
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
	Bio      string    `json:"bio,omitempty"`
	Avatar   string    `json:"avatar,omitempty"`
	Cover    string    `json:"cover,omitempty"`

	Verified bool `json:"verified"`
	Banned   bool `json:"banned"`

	Created time.Time  `json:"created"`
	Updated time.Time  `json:"updated"`
	Online  *time.Time `json:"online,omitempty"`
	Seen    *time.Time `json:"seen,omitempty"`

	Birthday *DateOfBirth `json:"birthday,omitempty"`
	Gender   string       `json:"gender,omitempty"`

	// Denormalized counters, kept consistent with the relationship
	// lists on the user document. Never negative.
	Followers int `json:"followers"`
	Following int `json:"following"`
	Posts     int `json:"posts"`
}

// DateOfBirth is a calendar date without a timezone.
type DateOfBirth struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Age returns the age in whole years at the given instant.
func (d DateOfBirth) Age(now time.Time) int {
	age := now.Year() - d.Year
	if int(now.Month()) < d.Month || (int(now.Month()) == d.Month && now.Day() < d.Day) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
