package inmemory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Roster_AllSortedByID(t *testing.T) {
	t.Parallel()

	r := NewRoster(3)
	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, "Barista 1", all[0].Name)
	assert.Equal(t, int64(3), all[2].ID)
	assert.Equal(t, 3, r.Size())
}

func Test_Roster_Idle(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	r := NewRoster(3)

	second, err := r.Get(2)
	require.NoError(t, err)
	busyUntil := now.Add(4 * time.Minute)
	second.BusyUntil = &busyUntil

	idle := r.Idle(now)
	require.Len(t, idle, 2)
	assert.Equal(t, int64(1), idle[0].ID)
	assert.Equal(t, int64(3), idle[1].ID)

	// busyUntil in the past means idle again
	idle = r.Idle(now.Add(5 * time.Minute))
	assert.Len(t, idle, 3)
}

func Test_Roster_GetUnknown(t *testing.T) {
	t.Parallel()

	r := NewRoster(1)
	_, err := r.Get(42)
	assert.Error(t, err)
}
