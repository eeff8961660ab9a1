package types

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Validation limits for feature fields.
const (
	TitleMaxLen       = 200
	DescriptionMaxLen = 1000
)

// Feature validation errors.
var (
	ErrTitleEmpty         = errors.New("title must not be empty")
	ErrTitleTooLong       = errors.New("title exceeds maximum length")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
)

// Feature represents a proposed product feature, the votable unit.
type Feature struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FeatureWithCount pairs a feature with its current vote count, as
// produced by the ranking query.
type FeatureWithCount struct {
	Feature
	VoteCount int `json:"vote_count"`
}

// Validate normalizes and checks the feature's fields. Title and
// description are trimmed of surrounding whitespace; limits apply to the
// trimmed values and count characters, not bytes. Returns a sentinel
// error on the first violation.
func (f *Feature) Validate() error {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)

	if f.Title == "" {
		return ErrTitleEmpty
	}
	if utf8.RuneCountInString(f.Title) > TitleMaxLen {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(f.Description) > DescriptionMaxLen {
		return ErrDescriptionTooLong
	}
	return nil
}
