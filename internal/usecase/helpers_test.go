package usecase

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"aide/internal/adapter/memstore"
	"aide/internal/domain"
)

// scriptedPrompter answers Confirm calls from a queue; an empty queue answers no.
type scriptedPrompter struct {
	answers []bool
	prompts []string
	err     error
}

func (p *scriptedPrompter) Confirm(_ context.Context, prompt string) (bool, error) {
	p.prompts = append(p.prompts, prompt)
	if p.err != nil {
		return false, p.err
	}
	if len(p.answers) == 0 {
		return false, nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

type fixture struct {
	dir      string
	store    *memstore.MemoryStore
	catalog  *Catalog
	prompter *scriptedPrompter
	names    *NameResolver
	tasks    *TaskUseCase
	notes    *NoteUseCase
	settings *SettingUseCase
	maint    *MaintenanceUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		dir:      t.TempDir(),
		store:    memstore.NewMemoryStore(),
		prompter: &scriptedPrompter{},
	}
	f.catalog = NewCatalog(f.store, CatalogOptions{CacheSize: 16, CacheTTL: time.Minute}, nil)
	f.names = NewNameResolver(f.catalog, f.prompter, nil)
	f.tasks = NewTaskUseCase(f.store, f.catalog, f.names, filepath.Join(f.dir, "tasks"), 3, nil)
	f.tasks.now = func() time.Time { return fixedNow }
	f.notes = NewNoteUseCase(f.store, f.catalog, f.names, filepath.Join(f.dir, "notes"), []string{"skip/**"}, nil)
	f.notes.now = func() time.Time { return fixedNow }
	f.settings = NewSettingUseCase(f.store, f.catalog, f.names, nil)
	f.maint = NewMaintenanceUseCase(f.store, f.catalog, f.notes, nil)
	return f
}

func (f *fixture) seedSettings(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, err := f.store.PutSetting(domain.Setting{Key: k, Value: "v"})
		require.NoError(t, err)
	}
}
