package timeline

import "github.com/google/uuid"

// IDFunc produces unique identifiers for new tracks and items.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string { return uuid.NewString() }
