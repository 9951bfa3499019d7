package catalog

import (
	"context"
	"sync"

	"github.com/bookhaven/bookhaven-server/internal/debounce"
	"github.com/bookhaven/bookhaven-server/internal/domain"
	"github.com/bookhaven/bookhaven-server/internal/query"
)

// View is one applied snapshot of a browse session: the query it answers,
// the page of results, and their rating aggregates. Err is set instead of
// Page when planning or fetching failed; the session never retries on its
// own, the caller re-triggers by changing input again.
type View struct {
	Spec    query.Spec
	Page    *Page
	Ratings map[string]domain.RatingAggregate
	Err     error
}

// BrowseSession drives one client's catalog browsing: it plans queries from
// input changes, debounces keystroke-driven ones, fetches pages, and applies
// results in order. Sessions share no mutable state with each other.
type BrowseSession struct {
	ctx     context.Context
	planner *query.Planner
	sched   *debounce.Scheduler
	svc     *Service
	apply   func(View)

	mu    sync.Mutex
	input query.Input
}

// NewBrowseSession creates a session. Every applied result (or error) is
// delivered through apply; stale results are dropped, not delivered.
func NewBrowseSession(ctx context.Context, svc *Service, apply func(View)) *BrowseSession {
	return &BrowseSession{
		ctx:     ctx,
		planner: query.NewPlanner(),
		sched:   debounce.NewScheduler(debounce.DefaultQuiet),
		svc:     svc,
		apply:   apply,
	}
}

// SetSearchTerm updates the search term and resets to page one. Fetching
// waits out the quiet period while the term is non-empty; clearing the term
// fetches immediately.
func (s *BrowseSession) SetSearchTerm(term string) {
	s.mu.Lock()
	s.input.SearchTerm = term
	s.input.Page = 1
	in := s.input
	s.mu.Unlock()
	s.trigger(in, term != "")
}

// SetGenre updates the genre filter and resets to page one.
func (s *BrowseSession) SetGenre(genre string) {
	s.setFilter(func(in *query.Input) { in.Genre = genre })
}

// SetYearFilter updates the year filter and resets to page one.
func (s *BrowseSession) SetYearFilter(filter string) {
	s.setFilter(func(in *query.Input) { in.YearFilter = filter })
}

// SetMinRating updates the rating threshold and resets to page one.
func (s *BrowseSession) SetMinRating(minRating int) {
	s.setFilter(func(in *query.Input) { in.MinRating = minRating })
}

// SetSortKey updates the ordering and resets to page one.
func (s *BrowseSession) SetSortKey(key string) {
	s.setFilter(func(in *query.Input) { in.SortKey = key })
}

// SetPage navigates to a page without touching the filters.
func (s *BrowseSession) SetPage(page int) {
	s.mu.Lock()
	s.input.Page = page
	in := s.input
	s.mu.Unlock()
	s.trigger(in, false)
}

// Refresh re-runs the current query immediately, e.g. after a review write.
func (s *BrowseSession) Refresh() {
	s.mu.Lock()
	in := s.input
	s.mu.Unlock()
	s.trigger(in, false)
}

// Close cancels any pending fetch.
func (s *BrowseSession) Close() {
	s.sched.Stop()
}

func (s *BrowseSession) setFilter(mutate func(*query.Input)) {
	s.mu.Lock()
	mutate(&s.input)
	s.input.Page = 1
	in := s.input
	s.mu.Unlock()
	s.trigger(in, false)
}

// trigger plans the query and schedules its execution. Plan failures apply
// right away: invalid input supersedes whatever was in flight.
func (s *BrowseSession) trigger(in query.Input, delayed bool) {
	spec, err := s.planner.Plan(in)
	if err != nil {
		s.sched.Stop()
		s.apply(View{Err: err})
		return
	}

	s.sched.Schedule(delayed, func() {
		s.execute(spec)
	})
}

// execute fetches the page and its aggregates, then applies the result
// unless a newer query already landed.
func (s *BrowseSession) execute(spec query.Spec) {
	page, err := s.svc.ListBooks(s.ctx, spec)
	if err != nil {
		if s.sched.TryApply(spec.Seq) {
			s.apply(View{Spec: spec, Err: err})
		}
		return
	}

	ids := make([]string, len(page.Items))
	for i, b := range page.Items {
		ids[i] = b.ID
	}
	ratings, err := s.svc.GetRatingAggregates(s.ctx, ids)
	if err != nil {
		if s.sched.TryApply(spec.Seq) {
			s.apply(View{Spec: spec, Err: err})
		}
		return
	}

	if s.sched.TryApply(spec.Seq) {
		s.apply(View{Spec: spec, Page: page, Ratings: ratings})
	}
}
