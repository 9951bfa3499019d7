package query

import (
	"sync/atomic"
	"time"

	"github.com/bookhaven/bookhaven-server/internal/domain"
	"github.com/bookhaven/bookhaven-server/internal/errors"
)

// RecentYears is how far back the "recent" year filter reaches.
const RecentYears = 5

// ClassicBefore is the exclusive upper bound of the "classic" year filter.
const ClassicBefore = 2000

// allowedMinRatings are the selectable rating-filter thresholds.
// Zero disables the filter.
var allowedMinRatings = map[int]bool{0: true, 2: true, 3: true, 4: true}

// Input is raw, untrusted browse input as it arrives from a client.
// Empty strings mean "default": no search term, no genre filter, all years,
// newest first. Page 0 likewise means "absent" and defaults to 1; any other
// page below 1 is rejected.
type Input struct {
	SearchTerm string
	Genre      string
	YearFilter string
	MinRating  int
	SortKey    string
	Page       int
}

// Planner turns Input into validated Specs and stamps each with a
// monotonically increasing sequence token. Safe for concurrent use.
type Planner struct {
	seq atomic.Uint64
}

// NewPlanner creates a planner. Sequence tokens start at 1.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan validates and canonicalizes in, returning an InvalidFilter error if
// any field is outside its enumeration. No store or network access.
func (p *Planner) Plan(in Input) (Spec, error) {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.Page < 1 {
		return Spec{}, errors.InvalidFilterf("page must be at least 1, got %d", in.Page)
	}

	if !allowedMinRatings[in.MinRating] {
		return Spec{}, errors.InvalidFilterf("minimum rating must be 0, 2, 3 or 4, got %d", in.MinRating)
	}

	genre := in.Genre
	if genre == "" {
		genre = All
	}
	if genre != All && !domain.Genre(genre).Valid() {
		return Spec{}, errors.InvalidFilterf("unknown genre %q", in.Genre)
	}

	yearFilter := YearFilter(in.YearFilter)
	if yearFilter == "" {
		yearFilter = YearAll
	}
	if !yearFilter.Valid() {
		return Spec{}, errors.InvalidFilterf("unknown year filter %q", in.YearFilter)
	}

	sortKey := SortKey(in.SortKey)
	if sortKey == "" {
		sortKey = SortNewest
	}
	if !sortKey.Valid() {
		return Spec{}, errors.InvalidFilterf("unknown sort key %q", in.SortKey)
	}

	return Spec{
		SearchTerm: in.SearchTerm,
		Genre:      genre,
		YearFilter: yearFilter,
		MinRating:  in.MinRating,
		SortKey:    sortKey,
		Page:       in.Page,
		PageSize:   PageSize,
		Seq:        p.seq.Add(1),
	}, nil
}

// MatchesYear reports whether a book's published year passes the filter.
// Books without a year only pass the unfiltered case.
func (f YearFilter) MatchesYear(b *domain.Book, now time.Time) bool {
	switch f {
	case YearRecent:
		return b.HasYear() && b.Year() >= now.Year()-RecentYears
	case YearClassic:
		return b.HasYear() && b.Year() < ClassicBefore
	default:
		return true
	}
}
