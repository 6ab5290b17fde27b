package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aide/internal/domain"
)

func TestSettingUseCase_SetGetDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	key, created, err := f.settings.Set(ctx, "database_url", "postgres://a")
	require.NoError(t, err)
	assert.Equal(t, "database_url", key)
	assert.True(t, created)

	key, created, err = f.settings.Set(ctx, "DATABASE_URL", "postgres://b")
	require.NoError(t, err)
	assert.Equal(t, "database_url", key)
	assert.False(t, created)

	s, err := f.settings.Get(ctx, "database_url")
	require.NoError(t, err)
	assert.Equal(t, "postgres://b", s.Value)

	_, err = f.settings.Delete(ctx, "database_url")
	require.NoError(t, err)
	_, err = f.settings.Get(ctx, "database_url")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = f.settings.Set(ctx, " ", "x")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestSettingUseCase_SetTypo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedSettings(t, "database_url", "api_endpoint", "debug_mode")

	f.prompter.answers = []bool{true}
	key, created, err := f.settings.Set(ctx, "databse_url", "postgres://c")
	require.NoError(t, err)
	assert.Equal(t, "database_url", key)
	assert.False(t, created)

	f.prompter.answers = []bool{false}
	key, created, err = f.settings.Set(ctx, "databse_url", "postgres://d")
	require.NoError(t, err)
	assert.Equal(t, "databse_url", key)
	assert.True(t, created)

	// The new key is exact from now on.
	s, err := f.settings.Get(ctx, "databse_url")
	require.NoError(t, err)
	assert.Equal(t, "postgres://d", s.Value)
	assert.Len(t, f.prompter.prompts, 2)

	settings, err := f.settings.List()
	require.NoError(t, err)
	require.Len(t, settings, 4)
	assert.Equal(t, "api_endpoint", settings[0].Key)
}
