package memstore

import (
	"fmt"
	"sort"
	"sync"

	"aide/internal/domain"
	"aide/internal/port"
)

var _ port.RecordStore = (*MemoryStore)(nil)

// MemoryStore is a map-backed RecordStore for tests and throwaway sessions.
type MemoryStore struct {
	mu       sync.RWMutex
	tasks    map[string]domain.Task
	notes    map[string]domain.Note
	entries  map[string][]domain.NoteEntry
	settings map[string]domain.Setting
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	s.reset()
	return s
}

func (s *MemoryStore) reset() {
	s.tasks = make(map[string]domain.Task)
	s.notes = make(map[string]domain.Note)
	s.entries = make(map[string][]domain.NoteEntry)
	s.settings = make(map[string]domain.Setting)
}

func notFound(kind, name string) error {
	return fmt.Errorf("%s %q: %w", kind, name, domain.ErrNotFound)
}

func (s *MemoryStore) CreateTask(task domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.Name]; ok {
		return fmt.Errorf("task %q: %w", task.Name, domain.ErrExists)
	}
	s.tasks[task.Name] = task
	return nil
}

func (s *MemoryStore) PutTask(task domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.Name]; !ok {
		return notFound("task", task.Name)
	}
	s.tasks[task.Name] = task
	return nil
}

func (s *MemoryStore) GetTask(name string) (domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[name]
	if !ok {
		return domain.Task{}, notFound("task", name)
	}
	return task, nil
}

func (s *MemoryStore) ListTasks() ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks := make([]domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *MemoryStore) DeleteTask(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[name]; !ok {
		return notFound("task", name)
	}
	delete(s.tasks, name)
	return nil
}

func (s *MemoryStore) CreateNote(note domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[note.Name]; ok {
		return fmt.Errorf("note %q: %w", note.Name, domain.ErrExists)
	}
	s.notes[note.Name] = note
	return nil
}

func (s *MemoryStore) GetNote(name string) (domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note, ok := s.notes[name]
	if !ok {
		return domain.Note{}, notFound("note", name)
	}
	return note, nil
}

func (s *MemoryStore) ListNotes() ([]domain.NoteSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notes := make([]domain.NoteSummary, 0, len(s.notes))
	for name, note := range s.notes {
		notes = append(notes, domain.NoteSummary{Note: note, Entries: len(s.entries[name])})
	}
	return notes, nil
}

func (s *MemoryStore) DeleteNote(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[name]; !ok {
		return notFound("note", name)
	}
	delete(s.notes, name)
	delete(s.entries, name)
	return nil
}

func (s *MemoryStore) AddEntry(entry domain.NoteEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[entry.Note]; !ok {
		return notFound("note", entry.Note)
	}
	s.entries[entry.Note] = append(s.entries[entry.Note], entry)
	return nil
}

func (s *MemoryStore) ListEntries(note string) ([]domain.NoteEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.notes[note]; !ok {
		return nil, notFound("note", note)
	}
	return append([]domain.NoteEntry(nil), s.entries[note]...), nil
}

func (s *MemoryStore) AllEntries() ([]domain.NoteEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var all []domain.NoteEntry
	for _, name := range names {
		all = append(all, s.entries[name]...)
	}
	return all, nil
}

func (s *MemoryStore) PutSetting(setting domain.Setting) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := s.settings[setting.Key]
	s.settings[setting.Key] = setting
	return !existed, nil
}

func (s *MemoryStore) GetSetting(key string) (domain.Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	setting, ok := s.settings[key]
	if !ok {
		return domain.Setting{}, notFound("config key", key)
	}
	return setting, nil
}

func (s *MemoryStore) ListSettings() ([]domain.Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settings := make([]domain.Setting, 0, len(s.settings))
	for _, setting := range s.settings {
		settings = append(settings, setting)
	}
	return settings, nil
}

func (s *MemoryStore) DeleteSetting(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.settings[key]; !ok {
		return notFound("config key", key)
	}
	delete(s.settings, key)
	return nil
}

func (s *MemoryStore) ListNames(kind domain.EntityKind) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	switch kind {
	case domain.KindTask:
		for name := range s.tasks {
			names = append(names, name)
		}
	case domain.KindNote:
		for name := range s.notes {
			names = append(names, name)
		}
	case domain.KindSetting:
		for key := range s.settings {
			names = append(names, key)
		}
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalid, kind)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
