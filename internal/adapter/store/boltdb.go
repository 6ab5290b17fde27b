package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"aide/internal/domain"
	"aide/internal/port"
)

var _ port.RecordStore = (*BoltStore)(nil)

var (
	bucketTasks    = []byte("tasks")
	bucketNotes    = []byte("notes")
	bucketEntries  = []byte("entries")
	bucketSettings = []byte("settings")
	bucketMeta     = []byte("meta")

	dataBuckets = [][]byte{bucketTasks, bucketNotes, bucketEntries, bucketSettings}
)

// BoltStore keeps every record family in its own bucket as JSON values keyed
// by name. Note entries live in one nested bucket per note.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the database at path. timeout bounds the
// wait for the file lock held by another aide process.
func NewBoltStore(path string, timeout time.Duration) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: timeout})
	if err != nil {
		return nil, wrap(OpOpen, fmt.Errorf("failed to open bolt db: %w", err))
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range append(dataBuckets, bucketMeta) {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, wrap(OpOpen, err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func notFound(kind, name string) error {
	return fmt.Errorf("%s %q: %w", kind, name, domain.ErrNotFound)
}

func exists(kind, name string) error {
	return fmt.Errorf("%s %q: %w", kind, name, domain.ErrExists)
}

func putJSON(b *bbolt.Bucket, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put([]byte(key), data)
}

// Tasks

func (s *BoltStore) CreateTask(task domain.Task) error {
	return wrap(OpCreateTask, s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTasks)
		if b.Get([]byte(task.Name)) != nil {
			return exists("task", task.Name)
		}
		return putJSON(b, task.Name, task)
	}))
}

func (s *BoltStore) PutTask(task domain.Task) error {
	return wrap(OpPutTask, s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTasks)
		if b.Get([]byte(task.Name)) == nil {
			return notFound("task", task.Name)
		}
		return putJSON(b, task.Name, task)
	}))
}

func (s *BoltStore) GetTask(name string) (domain.Task, error) {
	var task domain.Task
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTasks).Get([]byte(name))
		if data == nil {
			return notFound("task", name)
		}
		return json.Unmarshal(data, &task)
	})
	return task, wrap(OpGetTask, err)
}

func (s *BoltStore) ListTasks() ([]domain.Task, error) {
	var tasks []domain.Task
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTasks).ForEach(func(k, v []byte) error {
			var task domain.Task
			if err := json.Unmarshal(v, &task); err != nil {
				return err
			}
			tasks = append(tasks, task)
			return nil
		})
	})
	return tasks, wrap(OpListTasks, err)
}

func (s *BoltStore) DeleteTask(name string) error {
	return wrap(OpDeleteTask, s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTasks)
		if b.Get([]byte(name)) == nil {
			return notFound("task", name)
		}
		return b.Delete([]byte(name))
	}))
}

// Notes

func (s *BoltStore) CreateNote(note domain.Note) error {
	return wrap(OpCreateNote, s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b.Get([]byte(note.Name)) != nil {
			return exists("note", note.Name)
		}
		return putJSON(b, note.Name, note)
	}))
}

func (s *BoltStore) GetNote(name string) (domain.Note, error) {
	var note domain.Note
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketNotes).Get([]byte(name))
		if data == nil {
			return notFound("note", name)
		}
		return json.Unmarshal(data, &note)
	})
	return note, wrap(OpGetNote, err)
}

func (s *BoltStore) ListNotes() ([]domain.NoteSummary, error) {
	var notes []domain.NoteSummary
	err := s.db.View(func(tx *bbolt.Tx) error {
		entries := tx.Bucket(bucketEntries)
		return tx.Bucket(bucketNotes).ForEach(func(k, v []byte) error {
			var note domain.Note
			if err := json.Unmarshal(v, &note); err != nil {
				return err
			}
			count := 0
			if nb := entries.Bucket(k); nb != nil {
				if err := nb.ForEach(func(_, _ []byte) error {
					count++
					return nil
				}); err != nil {
					return err
				}
			}
			notes = append(notes, domain.NoteSummary{Note: note, Entries: count})
			return nil
		})
	})
	return notes, wrap(OpListNotes, err)
}

func (s *BoltStore) DeleteNote(name string) error {
	return wrap(OpDeleteNote, s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b.Get([]byte(name)) == nil {
			return notFound("note", name)
		}
		if err := b.Delete([]byte(name)); err != nil {
			return err
		}
		entries := tx.Bucket(bucketEntries)
		if entries.Bucket([]byte(name)) != nil {
			return entries.DeleteBucket([]byte(name))
		}
		return nil
	}))
}

// entryKey orders entries chronologically inside a note bucket.
func entryKey(e domain.NoteEntry) string {
	return fmt.Sprintf("%020d-%s", e.CreatedAt.UnixNano(), e.ID)
}

func (s *BoltStore) AddEntry(entry domain.NoteEntry) error {
	return wrap(OpAddEntry, s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketNotes).Get([]byte(entry.Note)) == nil {
			return notFound("note", entry.Note)
		}
		nb, err := tx.Bucket(bucketEntries).CreateBucketIfNotExists([]byte(entry.Note))
		if err != nil {
			return err
		}
		return putJSON(nb, entryKey(entry), entry)
	}))
}

func (s *BoltStore) ListEntries(note string) ([]domain.NoteEntry, error) {
	var entries []domain.NoteEntry
	err := s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketNotes).Get([]byte(note)) == nil {
			return notFound("note", note)
		}
		nb := tx.Bucket(bucketEntries).Bucket([]byte(note))
		if nb == nil {
			return nil
		}
		return nb.ForEach(func(k, v []byte) error {
			var e domain.NoteEntry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			entries = append(entries, e)
			return nil
		})
	})
	return entries, wrap(OpListEntries, err)
}

// AllEntries returns the entries of every note, ordered by note name then
// insertion time.
func (s *BoltStore) AllEntries() ([]domain.NoteEntry, error) {
	var all []domain.NoteEntry
	err := s.db.View(func(tx *bbolt.Tx) error {
		entries := tx.Bucket(bucketEntries)
		return entries.ForEach(func(k, v []byte) error {
			nb := entries.Bucket(k)
			if nb == nil {
				return nil
			}
			return nb.ForEach(func(_, v []byte) error {
				var e domain.NoteEntry
				if err := json.Unmarshal(v, &e); err != nil {
					return err
				}
				all = append(all, e)
				return nil
			})
		})
	})
	return all, wrap(OpAllEntries, err)
}

// Settings

func (s *BoltStore) PutSetting(setting domain.Setting) (bool, error) {
	created := false
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSettings)
		created = b.Get([]byte(setting.Key)) == nil
		return putJSON(b, setting.Key, setting)
	})
	return created, wrap(OpPutSetting, err)
}

func (s *BoltStore) GetSetting(key string) (domain.Setting, error) {
	var setting domain.Setting
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSettings).Get([]byte(key))
		if data == nil {
			return notFound("config key", key)
		}
		return json.Unmarshal(data, &setting)
	})
	return setting, wrap(OpGetSetting, err)
}

func (s *BoltStore) ListSettings() ([]domain.Setting, error) {
	var settings []domain.Setting
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSettings).ForEach(func(k, v []byte) error {
			var setting domain.Setting
			if err := json.Unmarshal(v, &setting); err != nil {
				return err
			}
			settings = append(settings, setting)
			return nil
		})
	})
	return settings, wrap(OpListSettings, err)
}

func (s *BoltStore) DeleteSetting(key string) error {
	return wrap(OpDeleteSetting, s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSettings)
		if b.Get([]byte(key)) == nil {
			return notFound("config key", key)
		}
		return b.Delete([]byte(key))
	}))
}

// ListNames returns the stored identifiers of kind, sorted.
func (s *BoltStore) ListNames(kind domain.EntityKind) ([]string, error) {
	var bucket []byte
	switch kind {
	case domain.KindTask:
		bucket = bucketTasks
	case domain.KindNote:
		bucket = bucketNotes
	case domain.KindSetting:
		bucket = bucketSettings
	default:
		return nil, wrap(OpListNames, fmt.Errorf("%w: %s", domain.ErrInvalid, kind))
	}

	var names []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	sort.Strings(names)
	return names, wrap(OpListNames, err)
}

// Clear removes every task, note, entry and setting. Schema metadata is kept.
func (s *BoltStore) Clear() error {
	return wrap(OpClear, s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range dataBuckets {
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return err
				}
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	}))
}
