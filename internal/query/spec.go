// Package query builds canonical, validated catalog query specs from raw
// browse input.
package query

import "github.com/bookhaven/bookhaven-server/internal/domain"

// PageSize is the fixed number of catalog items per page.
const PageSize = 9

// All disables the genre or year filter.
const All = "all"

// SortKey identifies a catalog ordering.
type SortKey string

// Supported orderings.
const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortTitleAsc  SortKey = "title-asc"
	SortTitleDesc SortKey = "title-desc"
	SortYearDesc  SortKey = "year-desc"
	SortYearAsc   SortKey = "year-asc"
)

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortNewest, SortOldest, SortTitleAsc, SortTitleDesc, SortYearDesc, SortYearAsc:
		return true
	}
	return false
}

// YearFilter selects a published-year range.
type YearFilter string

// Year ranges: recent is within the last five years, classic is before 2000.
const (
	YearAll     YearFilter = All
	YearRecent  YearFilter = "recent"
	YearClassic YearFilter = "classic"
)

// Valid reports whether f is a known year filter.
func (f YearFilter) Valid() bool {
	switch f {
	case YearAll, YearRecent, YearClassic:
		return true
	}
	return false
}

// Spec is a canonical, validated description of one catalog query.
// Values are immutable once planned; Seq orders the query against every
// other query issued by the same planner so stale responses can be dropped.
type Spec struct {
	SearchTerm string
	Genre      string // All or a domain.Genre value
	YearFilter YearFilter
	MinRating  int // 0 means no rating filter
	SortKey    SortKey
	Page       int
	PageSize   int
	Seq        uint64
}

// FiltersGenre reports whether the spec narrows by genre.
func (s Spec) FiltersGenre() bool {
	return s.Genre != All
}

// GenreValue returns the genre filter as a domain value.
// Only meaningful when FiltersGenre is true.
func (s Spec) GenreValue() domain.Genre {
	return domain.Genre(s.Genre)
}

// Offset returns the index of the first item on the page.
func (s Spec) Offset() int {
	return (s.Page - 1) * s.PageSize
}
