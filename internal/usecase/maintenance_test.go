package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aide/internal/domain"
)

func TestMaintenanceUseCase_Clear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, err := f.tasks.Create(ctx, "write_report")
	require.NoError(t, err)
	f.seedSettings(t, "debug_mode")

	require.NoError(t, f.maint.Clear())

	stats, err := f.maint.Stats()
	require.NoError(t, err)
	docs := map[domain.EntityKind]int{}
	for _, s := range stats {
		docs[s.Kind] = s.Documents
	}
	assert.Equal(t, map[domain.EntityKind]int{
		domain.KindTask:    0,
		domain.KindNote:    1,
		domain.KindSetting: 0,
	}, docs)

	_, err = f.store.GetNote(DefaultNote)
	assert.NoError(t, err)
}

func TestMaintenanceUseCase_RebuildAndSuggest(t *testing.T) {
	f := newFixture(t)
	f.seedSettings(t, "database_url", "api_endpoint", "debug_mode")

	var progressed []domain.EntityKind
	stats, err := f.maint.Rebuild(domain.AllKinds, func(done, total int, kind domain.EntityKind) {
		assert.Equal(t, len(domain.AllKinds), total)
		progressed = append(progressed, kind)
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AllKinds, progressed)
	require.Len(t, stats, 3)
	assert.Equal(t, 3, stats[2].Documents)

	got, err := f.maint.Suggest(domain.KindSetting, "debug", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "debug_mode", got[0].Name)
	assert.InDelta(t, 0.5621320343559643, got[0].Score, 1e-9)
}
