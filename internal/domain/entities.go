package domain

import (
	"fmt"
	"time"
)

// EntityKind identifies one of the independently indexed record families.
type EntityKind int

const (
	KindTask EntityKind = iota
	KindNote
	KindSetting
)

// AllKinds lists every entity kind in display order.
var AllKinds = []EntityKind{KindTask, KindNote, KindSetting}

func (k EntityKind) String() string {
	switch k {
	case KindTask:
		return "task"
	case KindNote:
		return "note"
	case KindSetting:
		return "config"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseEntityKind maps a user supplied kind name to an EntityKind.
func ParseEntityKind(s string) (EntityKind, error) {
	switch s {
	case "task", "tasks":
		return KindTask, nil
	case "note", "notes", "aide", "aides":
		return KindNote, nil
	case "config", "setting", "settings":
		return KindSetting, nil
	}
	return 0, fmt.Errorf("%w: unknown entity kind %q", ErrInvalid, s)
}

type TaskStatus string

const (
	StatusCreated    TaskStatus = "created"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// ParseTaskStatus validates a status string.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case StatusCreated, StatusInProgress, StatusCompleted:
		return TaskStatus(s), nil
	}
	return "", fmt.Errorf("%w: status must be one of created, in_progress, completed", ErrInvalid)
}

const (
	MinPriority = 1
	MaxPriority = 5
)

type Task struct {
	Name      string     `json:"name"`
	Priority  int        `json:"priority"`
	Status    TaskStatus `json:"status"`
	LogPath   string     `json:"log_path"`
	CreatedAt time.Time  `json:"created_at"`
}

type NoteType string

const (
	NoteText NoteType = "text"
	NoteFile NoteType = "file"
)

// ParseNoteType validates a note type string.
func ParseNoteType(s string) (NoteType, error) {
	switch NoteType(s) {
	case NoteText, NoteFile:
		return NoteType(s), nil
	}
	return "", fmt.Errorf("%w: note type must be 'text' or 'file'", ErrInvalid)
}

type Note struct {
	Name      string    `json:"name"`
	Type      NoteType  `json:"type"`
	Path      string    `json:"path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteEntry is one piece of data added to a note.
type NoteEntry struct {
	ID        string    `json:"id"`
	Note      string    `json:"note"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteSummary pairs a note with the number of entries it holds.
type NoteSummary struct {
	Note    Note
	Entries int
}

type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Candidate is one scored fuzzy-match result. It is never persisted.
type Candidate struct {
	Name        string  `json:"name"`
	TFIDFScore  float64 `json:"tfidf_score"`
	StringScore float64 `json:"string_score"`
	Score       float64 `json:"score"`
}

type IndexStats struct {
	Kind          EntityKind
	Documents     int
	Terms         int
	Generation    uint64
	CachedQueries int
}
