package service

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookhaven/bookhaven-server/internal/auth"
	"github.com/bookhaven/bookhaven-server/internal/store"
	"github.com/bookhaven/bookhaven-server/internal/validation"
)

// testEnv bundles the collaborators every service test needs.
type testEnv struct {
	store   *store.Store
	books   *BookService
	reviews *ReviewService
	auth    *AuthService
	profile *ProfileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.New(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	v := validation.New()

	tokens, err := auth.NewTokenService(strings.Repeat("ab", 32), time.Hour)
	require.NoError(t, err)

	return &testEnv{
		store:   st,
		books:   NewBookService(st, v, logger),
		reviews: NewReviewService(st, v, logger),
		auth:    NewAuthService(st, tokens, v, logger),
		profile: NewProfileService(st, v, logger),
	}
}

func validBookInput() BookInput {
	year := 2010
	return BookInput{
		Title:         "The Name of the Wind",
		Author:        "Patrick Rothfuss",
		Description:   "A fantasy novel.",
		Genre:         "Fantasy",
		PublishedYear: &year,
	}
}
