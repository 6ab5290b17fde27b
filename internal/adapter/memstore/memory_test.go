package memstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aide/internal/domain"
)

func TestMemoryStore_RecordFamilies(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.CreateTask(domain.Task{Name: "write_report"}))
	assert.ErrorIs(t, s.CreateTask(domain.Task{Name: "write_report"}), domain.ErrExists)
	assert.ErrorIs(t, s.PutTask(domain.Task{Name: "missing"}), domain.ErrNotFound)

	require.NoError(t, s.CreateNote(domain.Note{Name: "commands"}))
	base := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.AddEntry(domain.NoteEntry{ID: "1", Note: "commands", Input: "Docker PS", CreatedAt: base}))
	assert.ErrorIs(t, s.AddEntry(domain.NoteEntry{Note: "nope"}), domain.ErrNotFound)

	all, err := s.AllEntries()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	created, err := s.PutSetting(domain.Setting{Key: "debug_mode", Value: "on"})
	require.NoError(t, err)
	assert.True(t, created)
	created, err = s.PutSetting(domain.Setting{Key: "debug_mode", Value: "off"})
	require.NoError(t, err)
	assert.False(t, created)

	names, err := s.ListNames(domain.KindNote)
	require.NoError(t, err)
	assert.Equal(t, []string{"commands"}, names)
	_, err = s.ListNames(domain.EntityKind(7))
	assert.ErrorIs(t, err, domain.ErrInvalid)

	require.NoError(t, s.DeleteNote("commands"))
	all, err = s.AllEntries()
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, s.Clear())
	for _, kind := range domain.AllKinds {
		names, err := s.ListNames(kind)
		require.NoError(t, err)
		assert.Empty(t, names)
	}
}
