package store

import "fmt"

// ErrNotFound reports that a document id has no record in its
// collection.
type ErrNotFound struct {
	Collection string
	ID         string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("document not found: %s/%s", e.Collection, e.ID)
}
