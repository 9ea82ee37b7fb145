package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)
	return m
}

func TestCreateAndGet(t *testing.T) {
	m := newTestManager(t)

	created, err := m.Create("u1", "Ada")
	require.NoError(t, err)
	assert.Equal(t, false, created.Preferences["reminder_enabled"])

	got, err := m.Get("u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "20:00", got.Preferences["reminder_time"])
}

func TestGetAbsentReturnsNil(t *testing.T) {
	m := newTestManager(t)

	got, err := m.Get("nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPreferences(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Create("u1", "Ada")
	require.NoError(t, err)

	require.NoError(t, m.SetPreference("u1", "show_tips", false))
	assert.Equal(t, false, m.GetPreference("u1", "show_tips", true))

	// Missing key falls back to the default.
	assert.Equal(t, "x", m.GetPreference("u1", "missing", "x"))
	// Missing profile falls back too.
	assert.Equal(t, 7, m.GetPreference("nobody", "anything", 7))
}

func TestIncrementStreak(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Create("u1", "Ada")
	require.NoError(t, err)

	n, err := m.IncrementStreak("u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = m.IncrementStreak("u1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Persisted through the JSON round-trip.
	got, _ := m.Get("u1")
	assert.Equal(t, float64(2), got.Preferences["check_in_streak"])
}

func TestDelete(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Create("u1", "Ada")
	require.NoError(t, err)

	require.NoError(t, m.Delete("u1"))
	got, err := m.Get("u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is fine.
	require.NoError(t, m.Delete("u1"))
}
