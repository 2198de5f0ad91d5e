package domain

// User is the full account record: identity, owned profile, and the
// three relationship lists. The id doubles as the profile handle.
// Each list is ordered and duplicate-free, and an id in Blocked never
// also appears in Following or Followers of the same record.
type User struct {
	ID        string   `json:"id"`
	Profile   Profile  `json:"profile"`
	Following []string `json:"following"`
	Followers []string `json:"followers"`
	Blocked   []string `json:"blocked"`
}
