// Package catalog serves paginated, filtered, sorted views of the book
// collection.
package catalog

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/bookhaven/bookhaven-server/internal/domain"
	"github.com/bookhaven/bookhaven-server/internal/errors"
	"github.com/bookhaven/bookhaven-server/internal/query"
	"github.com/bookhaven/bookhaven-server/internal/store"
)

// Page is one page of catalog results.
//
// TotalCount is the size of the filtered set before the rating filter is
// applied. When a minimum-rating filter trims items off the current page,
// TotalCount and the page boundaries intentionally do not shrink with it:
// the rating filter acts on the page, not the set.
type Page struct {
	Items      []domain.Book
	TotalCount int
}

// Service answers catalog queries. Stateless; safe for concurrent use.
type Service struct {
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a catalog service.
func NewService(st *store.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// ListBooks executes a planned catalog query: filter, count, sort, slice,
// then apply the rating filter to the page items. Store failures surface as
// a single STORE error; nothing is retried here.
func (s *Service) ListBooks(ctx context.Context, spec query.Spec) (*Page, error) {
	books, err := s.store.AllBooks(ctx)
	if err != nil {
		return nil, errors.Store(err)
	}

	filtered := books[:0:0]
	now := s.now()
	for _, b := range books {
		if !matchesSearch(&b, spec.SearchTerm) {
			continue
		}
		if spec.FiltersGenre() && b.Genre != spec.GenreValue() {
			continue
		}
		if !spec.YearFilter.MatchesYear(&b, now) {
			continue
		}
		filtered = append(filtered, b)
	}

	total := len(filtered)
	sortBooks(filtered, spec.SortKey)

	start := min(spec.Offset(), total)
	end := min(start+spec.PageSize, total)
	items := filtered[start:end]

	if spec.MinRating > 0 {
		items, err = s.applyRatingFilter(ctx, items, spec.MinRating)
		if err != nil {
			return nil, err
		}
	}

	return &Page{Items: items, TotalCount: total}, nil
}

// GetRatingAggregates computes rating aggregates for the given books.
// Books with no reviews are absent from the result.
func (s *Service) GetRatingAggregates(ctx context.Context, bookIDs []string) (map[string]domain.RatingAggregate, error) {
	var reviews []domain.Review
	for _, id := range bookIDs {
		rs, err := s.store.ReviewsForBook(ctx, id)
		if err != nil {
			return nil, errors.Store(err)
		}
		reviews = append(reviews, rs...)
	}
	return domain.AggregateRatings(reviews), nil
}

// applyRatingFilter keeps only page items whose average rating meets the
// threshold. Unreviewed books never pass.
func (s *Service) applyRatingFilter(ctx context.Context, items []domain.Book, minRating int) ([]domain.Book, error) {
	ids := make([]string, len(items))
	for i, b := range items {
		ids[i] = b.ID
	}
	aggs, err := s.GetRatingAggregates(ctx, ids)
	if err != nil {
		return nil, err
	}

	kept := items[:0:0]
	for _, b := range items {
		if agg, ok := aggs[b.ID]; ok && agg.Average >= float64(minRating) {
			kept = append(kept, b)
		}
	}
	return kept, nil
}

// matchesSearch reports whether the term appears in the title or author,
// case-insensitively. An empty term matches everything.
func matchesSearch(b *domain.Book, term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(b.Title), t) ||
		strings.Contains(strings.ToLower(b.Author), t)
}

// sortBooks orders books in place per the sort key. Stable, so equal keys
// keep their store order. Books without a published year sort after all
// books with one in both year directions.
func sortBooks(books []domain.Book, key query.SortKey) {
	switch key {
	case query.SortOldest:
		slices.SortStableFunc(books, func(a, b domain.Book) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case query.SortTitleAsc:
		slices.SortStableFunc(books, func(a, b domain.Book) int {
			return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	case query.SortTitleDesc:
		slices.SortStableFunc(books, func(a, b domain.Book) int {
			return cmp.Compare(strings.ToLower(b.Title), strings.ToLower(a.Title))
		})
	case query.SortYearDesc:
		slices.SortStableFunc(books, func(a, b domain.Book) int {
			return compareYears(a, b, true)
		})
	case query.SortYearAsc:
		slices.SortStableFunc(books, func(a, b domain.Book) int {
			return compareYears(a, b, false)
		})
	default: // newest
		slices.SortStableFunc(books, func(a, b domain.Book) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}

func compareYears(a, b domain.Book, desc bool) int {
	switch {
	case !a.HasYear() && !b.HasYear():
		return 0
	case !a.HasYear():
		return 1 // yearless last, both directions
	case !b.HasYear():
		return -1
	case desc:
		return cmp.Compare(b.Year(), a.Year())
	default:
		return cmp.Compare(a.Year(), b.Year())
	}
}
