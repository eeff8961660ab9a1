package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureValidate(t *testing.T) {
	tests := []struct {
		name    string
		feature Feature
		wantErr error
	}{
		{
			name:    "valid feature",
			feature: Feature{Title: "Dark Mode", Description: "Add a dark theme"},
			wantErr: nil,
		},
		{
			name:    "empty title",
			feature: Feature{Title: ""},
			wantErr: ErrTitleEmpty,
		},
		{
			name:    "whitespace-only title",
			feature: Feature{Title: "   \t  "},
			wantErr: ErrTitleEmpty,
		},
		{
			name:    "title at limit is valid",
			feature: Feature{Title: strings.Repeat("a", TitleMaxLen)},
			wantErr: nil,
		},
		{
			name:    "title over limit",
			feature: Feature{Title: strings.Repeat("a", TitleMaxLen+1)},
			wantErr: ErrTitleTooLong,
		},
		{
			name:    "description at limit is valid",
			feature: Feature{Title: "t", Description: strings.Repeat("d", DescriptionMaxLen)},
			wantErr: nil,
		},
		{
			name:    "description over limit",
			feature: Feature{Title: "t", Description: strings.Repeat("d", DescriptionMaxLen+1)},
			wantErr: ErrDescriptionTooLong,
		},
		{
			name:    "empty description is valid",
			feature: Feature{Title: "t"},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.feature.Validate()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFeatureValidateTrims(t *testing.T) {
	f := Feature{Title: "  Offline Sync  ", Description: " sync while offline "}
	assert.NoError(t, f.Validate())
	assert.Equal(t, "Offline Sync", f.Title)
	assert.Equal(t, "sync while offline", f.Description)
}

func TestFeatureValidateCountsCharacters(t *testing.T) {
	// Multi-byte runes: the limits count characters, not bytes. A title
	// of 150 two-byte characters is 300 bytes but well within the limit.
	f := Feature{Title: strings.Repeat("é", 150)}
	assert.NoError(t, f.Validate())

	f = Feature{
		Title:       strings.Repeat("é", TitleMaxLen),
		Description: strings.Repeat("ü", DescriptionMaxLen),
	}
	assert.NoError(t, f.Validate())

	f = Feature{Title: strings.Repeat("é", TitleMaxLen+1)}
	assert.ErrorIs(t, f.Validate(), ErrTitleTooLong)

	f = Feature{Title: "t", Description: strings.Repeat("ü", DescriptionMaxLen+1)}
	assert.ErrorIs(t, f.Validate(), ErrDescriptionTooLong)
}

func TestFeatureValidateLimitAppliesAfterTrim(t *testing.T) {
	// Padding pushes the raw length over the limit, but the trimmed
	// title is exactly at it.
	f := Feature{Title: "  " + strings.Repeat("a", TitleMaxLen) + "  "}
	assert.NoError(t, f.Validate())
}
