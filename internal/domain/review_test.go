package domain

import (
	"testing"

	"github.com/bookhaven/bookhaven-server/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewStateMachine_FullLifecycle(t *testing.T) {
	m := NewReviewStateMachine(false)
	assert.Equal(t, NoReview, m.State())

	require.NoError(t, m.Submit(4))
	assert.Equal(t, ReviewSaved, m.State())

	require.NoError(t, m.BeginEdit())
	assert.Equal(t, ReviewEditing, m.State())

	require.NoError(t, m.Submit(5))
	assert.Equal(t, ReviewSaved, m.State())

	require.NoError(t, m.BeginEdit())
	require.NoError(t, m.Cancel())
	assert.Equal(t, ReviewSaved, m.State())

	require.NoError(t, m.Delete())
	assert.Equal(t, NoReview, m.State())
}

func TestReviewStateMachine_ZeroRatingRejectedEverywhere(t *testing.T) {
	m := NewReviewStateMachine(false)

	err := m.Submit(0)
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.Equal(t, NoReview, m.State(), "state unchanged after invalid submit")

	require.NoError(t, m.Submit(3))
	require.NoError(t, m.BeginEdit())

	err = m.Submit(0)
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.Equal(t, ReviewEditing, m.State(), "state unchanged after invalid submit")
}

func TestReviewStateMachine_InvalidTransitions(t *testing.T) {
	m := NewReviewStateMachine(false)

	assert.Error(t, m.BeginEdit(), "cannot edit before a review exists")
	assert.Error(t, m.Cancel(), "cannot cancel outside editing")
	assert.Error(t, m.Delete(), "cannot delete before a review exists")

	require.NoError(t, m.Submit(2))
	assert.Error(t, m.Submit(3), "saved reviews require beginEdit before re-submit")
	assert.Error(t, m.Cancel())
}

func TestReviewStateMachine_StartsSavedWhenReviewExists(t *testing.T) {
	m := NewReviewStateMachine(true)
	assert.Equal(t, ReviewSaved, m.State())
	require.NoError(t, m.BeginEdit())
}

func TestValidRating(t *testing.T) {
	for rating, want := range map[int]bool{0: false, 1: true, 3: true, 5: true, 6: false, -1: false} {
		assert.Equal(t, want, ValidRating(rating), "rating %d", rating)
	}
}

func TestBookOwnership(t *testing.T) {
	b := Book{ID: "bk-1", OwnerID: "usr-1"}

	assert.True(t, b.IsOwnedBy("usr-1"))
	assert.False(t, b.IsOwnedBy("usr-2"))
	assert.False(t, b.IsOwnedBy(""), "anonymous never owns anything")
}
