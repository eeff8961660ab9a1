package types

import (
	"errors"
	"time"
)

// Vote operation errors.
var (
	ErrFeatureNotFound = errors.New("feature not found")
	ErrDuplicateVote   = errors.New("user has already voted for this feature")
)

// Vote represents a single user's endorsement of one feature. The pair
// (FeatureID, UserID) is unique across all votes; the storage layer
// enforces this with a uniqueness constraint.
type Vote struct {
	ID        int64     `json:"id"`
	FeatureID int64     `json:"feature_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
