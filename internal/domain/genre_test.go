package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenreValid(t *testing.T) {
	for _, g := range Genres() {
		assert.True(t, g.Valid(), "genre %q", g)
	}

	assert.False(t, Genre("Poetry").Valid())
	assert.False(t, Genre("").Valid())
	assert.False(t, Genre("fiction").Valid(), "enumeration is case-sensitive")
}
