package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	prev := g.New()
	for i := 0; i < 100; i++ {
		next := g.New()
		assert.Len(t, next, 26)
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestTimeRoundTrip(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	fixed := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	got, err := Time(g.New())
	require.NoError(t, err)
	assert.Equal(t, fixed, got)
}

func TestTimeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Time("not-a-ulid")
	assert.Error(t, err)
}
