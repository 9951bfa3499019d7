package domain

import (
	"time"

	"github.com/bookhaven/bookhaven-server/internal/errors"
)

// Rating bounds. A review's rating is always an integer in [MinRating, MaxRating].
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a single user's rating and optional text for a book.
// At most one review exists per (BookID, UserID) pair at any time.
type Review struct {
	ID         string    `json:"id"`
	BookID     string    `json:"book_id"`
	UserID     string    `json:"user_id"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text,omitempty"`
	CreatedAt  time.Time `json:"created_at"` // set on first creation, never on edit
}

// IsAuthoredBy reports whether userID wrote the review.
func (r *Review) IsAuthoredBy(userID string) bool {
	return userID != "" && r.UserID == userID
}

// ValidRating reports whether rating is a storable value.
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// ReviewState is the review form state for one (user, book) pair.
type ReviewState string

// Review form states.
const (
	NoReview      ReviewState = "no_review"
	ReviewSaved   ReviewState = "saved"
	ReviewEditing ReviewState = "editing"
)

// ReviewStateMachine tracks the edit lifecycle of one user's review of one book.
// The zero value is not usable; start from NewReviewStateMachine.
type ReviewStateMachine struct {
	state ReviewState
}

// NewReviewStateMachine starts in NoReview, or ReviewSaved when a review
// already exists for the pair.
func NewReviewStateMachine(hasReview bool) *ReviewStateMachine {
	if hasReview {
		return &ReviewStateMachine{state: ReviewSaved}
	}
	return &ReviewStateMachine{state: NoReview}
}

// State returns the current state.
func (m *ReviewStateMachine) State() ReviewState {
	return m.state
}

// Submit records a save from NoReview or ReviewEditing.
// A zero rating is rejected from every state and leaves the state unchanged.
func (m *ReviewStateMachine) Submit(rating int) error {
	if rating == 0 {
		return errors.Validation("please select a rating")
	}
	if !ValidRating(rating) {
		return errors.ValidationWithDetails("validation failed", map[string]string{
			"rating": "must be between 1 and 5",
		})
	}
	switch m.state {
	case NoReview, ReviewEditing:
		m.state = ReviewSaved
		return nil
	default:
		return errors.Conflict("review already saved; begin editing first")
	}
}

// BeginEdit moves a saved review into editing. No data changes.
func (m *ReviewStateMachine) BeginEdit() error {
	if m.state != ReviewSaved {
		return errors.Conflict("no saved review to edit")
	}
	m.state = ReviewEditing
	return nil
}

// Cancel discards unsaved edits and returns to ReviewSaved.
func (m *ReviewStateMachine) Cancel() error {
	if m.state != ReviewEditing {
		return errors.Conflict("not editing")
	}
	m.state = ReviewSaved
	return nil
}

// Delete removes the saved review, returning to NoReview.
func (m *ReviewStateMachine) Delete() error {
	if m.state != ReviewSaved {
		return errors.Conflict("no saved review to delete")
	}
	m.state = NoReview
	return nil
}
