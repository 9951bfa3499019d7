package validation_test

import (
	"testing"
	"time"

	domainerrors "github.com/bookhaven/bookhaven-server/internal/errors"
	"github.com/bookhaven/bookhaven-server/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookRequest struct {
	Title         string `json:"title" validate:"required,max=200"`
	Author        string `json:"author" validate:"required,max=200"`
	Description   string `json:"description" validate:"omitempty,max=2000"`
	Genre         string `json:"genre" validate:"required"`
	PublishedYear *int   `json:"published_year" validate:"omitempty,published_year"`
	CoverImage    string `json:"cover_image" validate:"omitempty,url"`
	Rating        int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

func intPtr(v int) *int { return &v }

func TestValidator_ValidRequest(t *testing.T) {
	v := validation.New()

	err := v.Validate(bookRequest{
		Title:         "The Stars My Destination",
		Author:        "Alfred Bester",
		Genre:         "Science Fiction",
		PublishedYear: intPtr(1956),
		CoverImage:    "https://covers.example.com/stars.jpg",
		Rating:        5,
	})
	assert.NoError(t, err)
}

func TestValidator_FieldErrorsUseJSONNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(bookRequest{Author: "Someone", Genre: "Fiction"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	fields, ok := domainErr.Details.(map[string]string)
	require.True(t, ok, "details should be a field -> message map")
	assert.Contains(t, fields, "title")
	assert.Equal(t, "is required", fields["title"])
}

func TestValidator_PublishedYearBounds(t *testing.T) {
	v := validation.New()
	nextYear := time.Now().Year() + 1

	tests := []struct {
		name string
		year int
		ok   bool
	}{
		{"too early", 999, false},
		{"earliest", 1000, true},
		{"next year allowed", nextYear, true},
		{"beyond next year", nextYear + 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(bookRequest{
				Title:         "T",
				Author:        "A",
				Genre:         "Fiction",
				PublishedYear: intPtr(tt.year),
			})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				var domainErr *domainerrors.Error
				require.True(t, domainerrors.As(err, &domainErr))
				fields := domainErr.Details.(map[string]string)
				assert.Contains(t, fields, "published_year")
			}
		})
	}
}

func TestValidator_RatingBounds(t *testing.T) {
	v := validation.New()

	err := v.Validate(bookRequest{Title: "T", Author: "A", Genre: "Fiction", Rating: 6})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))
	fields := domainErr.Details.(map[string]string)
	assert.Contains(t, fields, "rating")
}

func TestValidator_MalformedCoverURL(t *testing.T) {
	v := validation.New()

	err := v.Validate(bookRequest{Title: "T", Author: "A", Genre: "Fiction", CoverImage: "not a url"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))
	fields := domainErr.Details.(map[string]string)
	assert.Equal(t, "must be a valid URL", fields["cover_image"])
}
