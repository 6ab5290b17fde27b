package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"aide/internal/adapter/fs"
	"aide/internal/domain"
	"aide/internal/port"
)

// DefaultNote is the file note every store starts with.
const DefaultNote = "task_log"

// ProgressFunc reports import progress after each file.
type ProgressFunc func(processed, total int, currentFile string)

// NoteUseCase manages notes, their entries and the files behind file notes.
type NoteUseCase struct {
	store    port.NoteStore
	catalog  *Catalog
	names    *NameResolver
	fileDir  string
	excludes []string
	now      func() time.Time
	newID    func() string
	logger   *zap.Logger
}

func NewNoteUseCase(
	store port.NoteStore,
	catalog *Catalog,
	names *NameResolver,
	fileDir string,
	excludes []string,
	logger *zap.Logger,
) *NoteUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteUseCase{
		store:    store,
		catalog:  catalog,
		names:    names,
		fileDir:  fileDir,
		excludes: excludes,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
		logger:   logger,
	}
}

// Create stores a new note. File notes are backed by NAME.md in the note
// file directory.
func (u *NoteUseCase) Create(name string, typ domain.NoteType) (domain.Note, error) {
	if err := validateName(domain.KindNote, name); err != nil {
		return domain.Note{}, err
	}
	if _, err := domain.ParseNoteType(string(typ)); err != nil {
		return domain.Note{}, err
	}

	note := domain.Note{Name: name, Type: typ, CreatedAt: u.now().UTC()}
	if typ == domain.NoteFile {
		note.Path = filepath.Join(u.fileDir, name+".md")
	}
	if err := u.store.CreateNote(note); err != nil {
		return domain.Note{}, err
	}
	if note.Path != "" {
		if err := touch(note.Path); err != nil {
			if derr := u.store.DeleteNote(note.Name); derr != nil {
				u.logger.Error("failed to roll back note", zap.String("name", note.Name), zap.Error(derr))
			}
			return domain.Note{}, fmt.Errorf("failed to create note file: %w", err)
		}
	}
	u.catalog.Insert(domain.KindNote, note.Name)
	u.logger.Info("created note", zap.String("name", note.Name), zap.String("type", string(typ)))
	return note, nil
}

// EnsureDefault creates the task_log file note when it is missing.
func (u *NoteUseCase) EnsureDefault() error {
	_, err := u.store.GetNote(DefaultNote)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	_, err = u.Create(DefaultNote, domain.NoteFile)
	return err
}

// AddData records one entry in the note raw names. Exactly one of data and
// path must be given; with path the file's content is recorded and path is
// kept as the entry output. File notes also get the content appended.
func (u *NoteUseCase) AddData(ctx context.Context, raw, data, path string) (domain.NoteEntry, error) {
	if (data == "") == (path == "") {
		return domain.NoteEntry{}, fmt.Errorf("%w: provide either data or a file path, not both", domain.ErrInvalid)
	}

	note, err := u.Get(ctx, raw)
	if err != nil {
		return domain.NoteEntry{}, err
	}

	input, output := data, ""
	if path != "" {
		content, err := fs.ReadFile(path)
		if err != nil {
			return domain.NoteEntry{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		input, output = content, path
	}
	return u.addEntry(note, input, output)
}

func (u *NoteUseCase) addEntry(note domain.Note, input, output string) (domain.NoteEntry, error) {
	entry := domain.NoteEntry{
		ID:        u.newID(),
		Note:      note.Name,
		Input:     input,
		Output:    output,
		CreatedAt: u.now().UTC(),
	}

	if note.Type == domain.NoteFile {
		if err := appendLine(note.Path, input); err != nil {
			return domain.NoteEntry{}, fmt.Errorf("failed to append to note file: %w", err)
		}
	}
	if err := u.store.AddEntry(entry); err != nil {
		return domain.NoteEntry{}, err
	}
	return entry, nil
}

// ImportResult summarizes a file import.
type ImportResult struct {
	Note    string
	Entries int
	Errors  []string
}

// Import records every file under root matching one of patterns as an entry
// of the note raw names. Unreadable files are reported and skipped.
func (u *NoteUseCase) Import(ctx context.Context, raw, root string, patterns []string, progress ProgressFunc) (*ImportResult, error) {
	note, err := u.Get(ctx, raw)
	if err != nil {
		return nil, err
	}

	walker, err := fs.NewWalker(patterns, u.excludes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalid, err)
	}
	files, err := walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	result := &ImportResult{Note: note.Name}
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		content, err := fs.ReadFile(file.Path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file.RelPath, err))
		} else if _, err := u.addEntry(note, content, file.RelPath); err != nil {
			return result, err
		} else {
			result.Entries++
		}

		if progress != nil {
			progress(i+1, len(files), file.RelPath)
		}
	}

	u.logger.Info("imported files",
		zap.String("note", note.Name),
		zap.Int("entries", result.Entries),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

// Get resolves raw and returns the stored note.
func (u *NoteUseCase) Get(ctx context.Context, raw string) (domain.Note, error) {
	name, err := u.names.Resolve(ctx, domain.KindNote, raw)
	if err != nil {
		return domain.Note{}, err
	}
	return u.store.GetNote(name)
}

// Show returns the note and its entries, oldest first.
func (u *NoteUseCase) Show(ctx context.Context, raw string) (domain.Note, []domain.NoteEntry, error) {
	note, err := u.Get(ctx, raw)
	if err != nil {
		return domain.Note{}, nil, err
	}
	entries, err := u.store.ListEntries(note.Name)
	if err != nil {
		return domain.Note{}, nil, err
	}
	return note, entries, nil
}

// Path returns the backing file of a file note.
func (u *NoteUseCase) Path(ctx context.Context, raw string) (string, error) {
	note, err := u.Get(ctx, raw)
	if err != nil {
		return "", err
	}
	if note.Type != domain.NoteFile {
		return "", fmt.Errorf("%w: note '%s' is a text note and has no file", domain.ErrInvalid, note.Name)
	}
	return note.Path, nil
}

// List returns every note with its entry count, by name.
func (u *NoteUseCase) List() ([]domain.NoteSummary, error) {
	notes, err := u.store.ListNotes()
	if err != nil {
		return nil, err
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Note.Name < notes[j].Note.Name })
	return notes, nil
}

// Search returns the entries whose input and output contain the characters
// of text in order, ignoring case, best match first.
func (u *NoteUseCase) Search(text string) ([]domain.NoteEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: search text must not be empty", domain.ErrInvalid)
	}
	entries, err := u.store.AllEntries()
	if err != nil {
		return nil, err
	}

	matches := fuzzy.FindFrom(text, entryTexts(entries))
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})

	hits := make([]domain.NoteEntry, len(matches))
	for i, m := range matches {
		hits[i] = entries[m.Index]
	}
	u.logger.Debug("searched entries", zap.String("text", text),
		zap.Int("candidates", len(entries)), zap.Int("hits", len(hits)))
	return hits, nil
}

// entryTexts exposes entries to fuzzy matching as "input output".
type entryTexts []domain.NoteEntry

func (e entryTexts) String(i int) string {
	if e[i].Output == "" {
		return e[i].Input
	}
	return e[i].Input + " " + e[i].Output
}

func (e entryTexts) Len() int { return len(e) }

// Delete removes the note, its entries and the backing file of a file note.
func (u *NoteUseCase) Delete(ctx context.Context, raw string) (domain.Note, error) {
	note, err := u.Get(ctx, raw)
	if err != nil {
		return domain.Note{}, err
	}
	if err := u.store.DeleteNote(note.Name); err != nil {
		return domain.Note{}, err
	}
	u.catalog.Remove(domain.KindNote, note.Name)

	if note.Path != "" {
		if err := os.Remove(note.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			u.logger.Warn("failed to remove note file", zap.String("path", note.Path), zap.Error(err))
		}
	}
	return note, nil
}

func touch(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

func appendLine(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err = f.WriteString(text)
	return err
}
