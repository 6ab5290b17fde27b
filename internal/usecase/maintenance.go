package usecase

import (
	"go.uber.org/zap"

	"aide/internal/domain"
	"aide/internal/port"
)

// MaintenanceUseCase covers store-wide operations and index inspection.
type MaintenanceUseCase struct {
	store   port.RecordStore
	catalog *Catalog
	notes   *NoteUseCase
	logger  *zap.Logger
}

func NewMaintenanceUseCase(store port.RecordStore, catalog *Catalog, notes *NoteUseCase, logger *zap.Logger) *MaintenanceUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaintenanceUseCase{
		store:   store,
		catalog: catalog,
		notes:   notes,
		logger:  logger,
	}
}

// Clear deletes every record, forgets the indices and re-seeds the default
// note.
func (u *MaintenanceUseCase) Clear() error {
	if err := u.store.Clear(); err != nil {
		return err
	}
	u.catalog.Reset()
	u.logger.Info("cleared all records")
	return u.notes.EnsureDefault()
}

// Rebuild recomputes the cached vectors of each kind. progress, if set, is
// called after each kind.
func (u *MaintenanceUseCase) Rebuild(kinds []domain.EntityKind, progress func(done, total int, kind domain.EntityKind)) ([]domain.IndexStats, error) {
	stats := make([]domain.IndexStats, 0, len(kinds))
	for i, kind := range kinds {
		s, err := u.catalog.Rebuild(kind)
		if err != nil {
			return stats, err
		}
		stats = append(stats, s)
		if progress != nil {
			progress(i+1, len(kinds), kind)
		}
	}
	return stats, nil
}

// Stats reports the index size of every kind.
func (u *MaintenanceUseCase) Stats() ([]domain.IndexStats, error) {
	stats := make([]domain.IndexStats, 0, len(domain.AllKinds))
	for _, kind := range domain.AllKinds {
		s, err := u.catalog.Stats(kind)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, nil
}

// Suggest ranks the names of kind against raw without prompting.
func (u *MaintenanceUseCase) Suggest(kind domain.EntityKind, raw string, limit int) ([]domain.Candidate, error) {
	return u.catalog.Suggest(kind, raw, limit)
}
