package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookhaven/bookhaven-server/internal/domain"
	"github.com/bookhaven/bookhaven-server/internal/query"
)

func (s *Server) registerCatalogRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "Browse the catalog",
		Description: "Returns one page of books matching the given filters, with rating aggregates.",
		Tags:        []string{"Catalog"},
	}, s.handleListBooks)

	huma.Register(api, huma.Operation{
		OperationID: "getRatings",
		Method:      http.MethodGet,
		Path:        "/api/v1/ratings",
		Summary:     "Rating aggregates for a set of books",
		Tags:        []string{"Catalog"},
	}, s.handleGetRatings)
}

// ListBooksInput holds catalog query parameters. All are optional; bad
// values fail with INVALID_FILTER rather than being silently corrected.
type ListBooksInput struct {
	Search    string `query:"search" doc:"Substring match against title or author, case-insensitive"`
	Genre     string `query:"genre" doc:"Genre filter, or 'all'"`
	Year      string `query:"year" doc:"Year filter: all, recent, or classic"`
	MinRating int    `query:"min_rating" doc:"Minimum average rating: 0, 2, 3 or 4"`
	Sort      string `query:"sort" doc:"Sort key: newest, oldest, title-asc, title-desc, year-desc, year-asc"`
	Page      int    `query:"page" doc:"Page number, starting at 1"`
}

// ListBooksResponse is one catalog page.
type ListBooksResponse struct {
	Items      []domain.Book                     `json:"items"`
	TotalCount int                               `json:"total_count" doc:"Size of the filtered set before the rating filter"`
	Ratings    map[string]domain.RatingAggregate `json:"ratings" doc:"Aggregates for the books on this page, keyed by book ID"`
}

// ListBooksOutput wraps the catalog page for huma.
type ListBooksOutput struct {
	Body ListBooksResponse
}

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	spec, err := s.planner.Plan(query.Input{
		SearchTerm: input.Search,
		Genre:      input.Genre,
		YearFilter: input.Year,
		MinRating:  input.MinRating,
		SortKey:    input.Sort,
		Page:       input.Page,
	})
	if err != nil {
		return nil, err
	}

	page, err := s.catalogService.ListBooks(ctx, spec)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(page.Items))
	for i, b := range page.Items {
		ids[i] = b.ID
	}
	ratings, err := s.catalogService.GetRatingAggregates(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := page.Items
	if items == nil {
		items = []domain.Book{}
	}
	return &ListBooksOutput{
		Body: ListBooksResponse{
			Items:      items,
			TotalCount: page.TotalCount,
			Ratings:    ratings,
		},
	}, nil
}

// GetRatingsInput names the books to aggregate.
type GetRatingsInput struct {
	IDs []string `query:"ids" doc:"Book IDs to fetch aggregates for"`
}

// GetRatingsOutput wraps the aggregates map for huma.
type GetRatingsOutput struct {
	Body map[string]domain.RatingAggregate
}

func (s *Server) handleGetRatings(ctx context.Context, input *GetRatingsInput) (*GetRatingsOutput, error) {
	ratings, err := s.catalogService.GetRatingAggregates(ctx, input.IDs)
	if err != nil {
		return nil, err
	}
	return &GetRatingsOutput{Body: ratings}, nil
}
