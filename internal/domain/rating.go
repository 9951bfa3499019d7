package domain

// RatingAggregate is the derived {average, count} rating summary for a book.
// It is never persisted: it must always equal a pure function of the current
// review set, so no cached copy is authoritative.
type RatingAggregate struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// AggregateRatings reduces reviews into per-book rating aggregates.
// Single pass: O(len(reviews)), independent of the number of books.
// Books with no reviews are absent from the map; callers treat absence
// as {average: 0, count: 0}.
func AggregateRatings(reviews []Review) map[string]RatingAggregate {
	aggs := make(map[string]RatingAggregate)
	for _, r := range reviews {
		agg := aggs[r.BookID]
		agg.Average += float64(r.Rating) // running sum until the final pass
		agg.Count++
		aggs[r.BookID] = agg
	}
	for bookID, agg := range aggs {
		agg.Average /= float64(agg.Count)
		aggs[bookID] = agg
	}
	return aggs
}
