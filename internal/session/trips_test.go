package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndRemove(t *testing.T) {
	s := NewTripStore()

	s.Save("uid-1", 10)
	s.Save("uid-1", 20)
	s.Save("uid-2", 10)

	assert.True(t, s.Saved("uid-1", 10))
	assert.False(t, s.Saved("uid-1", 30))
	assert.ElementsMatch(t, []int64{10, 20}, s.List("uid-1"))
	assert.ElementsMatch(t, []int64{10}, s.List("uid-2"))

	s.Remove("uid-1", 10)
	assert.False(t, s.Saved("uid-1", 10))
	assert.ElementsMatch(t, []int64{20}, s.List("uid-1"))

	// Other users are untouched.
	assert.True(t, s.Saved("uid-2", 10))
}

func TestObserversFireOnChange(t *testing.T) {
	s := NewTripStore()

	var calls [][]int64
	unsubscribe := s.Subscribe("uid-1", func(saved map[int64]struct{}) {
		ids := make([]int64, 0, len(saved))
		for id := range saved {
			ids = append(ids, id)
		}
		calls = append(calls, ids)
	})

	s.Save("uid-1", 10)
	require.Len(t, calls, 1)
	assert.ElementsMatch(t, []int64{10}, calls[0])

	// Duplicate save changes nothing and stays silent.
	s.Save("uid-1", 10)
	assert.Len(t, calls, 1)

	// Another user's change does not cross over.
	s.Save("uid-2", 99)
	assert.Len(t, calls, 1)

	s.Remove("uid-1", 10)
	require.Len(t, calls, 2)
	assert.Empty(t, calls[1])

	unsubscribe()
	s.Save("uid-1", 30)
	assert.Len(t, calls, 2)
}

func TestObserverMayReadStore(t *testing.T) {
	s := NewTripStore()

	var sawSaved bool
	s.Subscribe("uid-1", func(map[int64]struct{}) {
		sawSaved = s.Saved("uid-1", 5)
	})

	s.Save("uid-1", 5)
	assert.True(t, sawSaved)
}
