package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/bookhaven-server/internal/domain"
	"github.com/bookhaven/bookhaven-server/internal/errors"
)

func TestPlanDefaults(t *testing.T) {
	p := NewPlanner()

	spec, err := p.Plan(Input{})
	require.NoError(t, err)

	assert.Equal(t, All, spec.Genre)
	assert.Equal(t, YearAll, spec.YearFilter)
	assert.Equal(t, SortNewest, spec.SortKey)
	assert.Equal(t, 0, spec.MinRating)
	assert.Equal(t, 1, spec.Page)
	assert.Equal(t, PageSize, spec.PageSize)
	assert.False(t, spec.FiltersGenre())
	assert.Equal(t, 0, spec.Offset())
}

func TestPlanValidInput(t *testing.T) {
	p := NewPlanner()

	spec, err := p.Plan(Input{
		SearchTerm: "tolkien",
		Genre:      "Fantasy",
		YearFilter: "classic",
		MinRating:  4,
		SortKey:    "year-asc",
		Page:       3,
	})
	require.NoError(t, err)

	assert.Equal(t, "tolkien", spec.SearchTerm)
	assert.True(t, spec.FiltersGenre())
	assert.Equal(t, domain.GenreFantasy, spec.GenreValue())
	assert.Equal(t, YearClassic, spec.YearFilter)
	assert.Equal(t, 4, spec.MinRating)
	assert.Equal(t, SortYearAsc, spec.SortKey)
	assert.Equal(t, 18, spec.Offset())
}

func TestPlanRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"negative page", Input{Page: -1}},
		{"min rating 1", Input{MinRating: 1}},
		{"min rating 5", Input{MinRating: 5}},
		{"min rating 6", Input{MinRating: 6}},
		{"unknown genre", Input{Genre: "Horror"}},
		{"unknown year filter", Input{YearFilter: "ancient"}},
		{"unknown sort key", Input{SortKey: "rating-desc"}},
	}

	p := NewPlanner()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Plan(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidFilter)
		})
	}
}

func TestPlanSequenceIsMonotonic(t *testing.T) {
	p := NewPlanner()

	var last uint64
	for range 5 {
		spec, err := p.Plan(Input{})
		require.NoError(t, err)
		assert.Greater(t, spec.Seq, last)
		last = spec.Seq
	}
}

func TestYearFilterMatchesYear(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	year := func(y int) *domain.Book { return &domain.Book{PublishedYear: &y} }
	noYear := &domain.Book{}

	assert.True(t, YearAll.MatchesYear(noYear, now))
	assert.True(t, YearAll.MatchesYear(year(1850), now))

	assert.True(t, YearRecent.MatchesYear(year(2021), now))
	assert.False(t, YearRecent.MatchesYear(year(2020), now))
	assert.False(t, YearRecent.MatchesYear(noYear, now))

	assert.True(t, YearClassic.MatchesYear(year(1999), now))
	assert.False(t, YearClassic.MatchesYear(year(2000), now))
	assert.False(t, YearClassic.MatchesYear(noYear, now))
}
