package domain

// SortBy selects the ordering field for profile searches.
type SortBy string

const (
	SortByRelevant  SortBy = "relevant"
	SortByName      SortBy = "name"
	SortByFollowers SortBy = "followers"
	SortByCreated   SortBy = "created"
	SortByUpdated   SortBy = "updated"
)

// Order is a sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// SearchFilter describes a profile search: an optional free-text
// prefix query on the handle, optional equality and follower-count
// range predicates, and the requested ordering. Nil pointer fields
// mean "no constraint".
type SearchFilter struct {
	Query        string  `json:"query,omitempty"`
	Verified     *bool   `json:"verified,omitempty"`
	Banned       *bool   `json:"banned,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	MinFollowers *int    `json:"min_followers,omitempty"`
	MaxFollowers *int    `json:"max_followers,omitempty"`
	SortBy       SortBy  `json:"sort_by,omitempty"`
	Order        Order   `json:"order,omitempty"`
}
