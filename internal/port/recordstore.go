package port

import "aide/internal/domain"

// NameSource lists the identifiers currently stored for an entity kind.
type NameSource interface {
	ListNames(kind domain.EntityKind) ([]string, error)
}

type TaskStore interface {
	CreateTask(task domain.Task) error

	PutTask(task domain.Task) error

	GetTask(name string) (domain.Task, error)

	ListTasks() ([]domain.Task, error)

	DeleteTask(name string) error
}

type NoteStore interface {
	CreateNote(note domain.Note) error

	GetNote(name string) (domain.Note, error)

	ListNotes() ([]domain.NoteSummary, error)

	DeleteNote(name string) error

	AddEntry(entry domain.NoteEntry) error

	ListEntries(note string) ([]domain.NoteEntry, error)

	// AllEntries returns every entry of every note, by note name then insertion.
	AllEntries() ([]domain.NoteEntry, error)
}

type SettingStore interface {
	// PutSetting creates or overwrites a setting and reports whether the key is new.
	PutSetting(setting domain.Setting) (created bool, err error)

	GetSetting(key string) (domain.Setting, error)

	ListSettings() ([]domain.Setting, error)

	DeleteSetting(key string) error
}

// RecordStore is the backing store of every entity kind.
type RecordStore interface {
	NameSource
	TaskStore
	NoteStore
	SettingStore

	Clear() error

	Close() error
}
