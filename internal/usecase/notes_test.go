package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aide/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNoteUseCase_CreateAndAddText(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	note, err := f.notes.Create("commands", domain.NoteText)
	require.NoError(t, err)
	assert.Empty(t, note.Path)

	_, err = f.notes.Create("commands", domain.NoteText)
	assert.ErrorIs(t, err, domain.ErrExists)
	_, err = f.notes.Create("other", "video")
	assert.ErrorIs(t, err, domain.ErrInvalid)

	entry, err := f.notes.AddData(ctx, "commands", "git log --oneline", "")
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "commands", entry.Note)
	assert.Equal(t, fixedNow, entry.CreatedAt)

	_, err = f.notes.AddData(ctx, "commands", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalid)
	_, err = f.notes.AddData(ctx, "commands", "x", "/tmp/x")
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = f.notes.Path(ctx, "commands")
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, entries, err := f.notes.Show(ctx, "commands")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "git log --oneline", entries[0].Input)
}

func TestNoteUseCase_FileNote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	note, err := f.notes.Create("snippets", domain.NoteFile)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.dir, "notes", "snippets.md"), note.Path)
	assert.FileExists(t, note.Path)

	src := filepath.Join(f.dir, "in.txt")
	writeFile(t, src, "from a file")

	_, err = f.notes.AddData(ctx, "snippets", "inline", "")
	require.NoError(t, err)
	entry, err := f.notes.AddData(ctx, "snippets", "", src)
	require.NoError(t, err)
	assert.Equal(t, "from a file", entry.Input)
	assert.Equal(t, src, entry.Output)

	data, err := os.ReadFile(note.Path)
	require.NoError(t, err)
	assert.Equal(t, "inline\nfrom a file\n", string(data))

	path, err := f.notes.Path(ctx, "Snippets")
	require.NoError(t, err)
	assert.Equal(t, note.Path, path)

	_, err = f.notes.Delete(ctx, "snippets")
	require.NoError(t, err)
	assert.NoFileExists(t, note.Path)
}

func TestNoteUseCase_Import(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.notes.Create("docs", domain.NoteText)
	require.NoError(t, err)

	root := filepath.Join(f.dir, "src")
	writeFile(t, filepath.Join(root, "a.txt"), "alpha")
	writeFile(t, filepath.Join(root, "b.md"), "beta")
	writeFile(t, filepath.Join(root, "skip", "c.txt"), "gamma")

	var seen []string
	result, err := f.notes.Import(ctx, "docs", root, []string{"**/*.txt"}, func(processed, total int, current string) {
		seen = append(seen, current)
		assert.Equal(t, 1, total)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Entries)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{"a.txt"}, seen)

	hits, err := f.notes.Search("ALPHA")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "a.txt", hits[0].Output)

	_, err = f.notes.Import(ctx, "docs", root, []string{"[a-"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestNoteUseCase_SearchAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"commands", "api_docs"} {
		_, err := f.notes.Create(name, domain.NoteText)
		require.NoError(t, err)
	}
	_, err := f.notes.AddData(ctx, "commands", "docker ps", "")
	require.NoError(t, err)
	_, err = f.notes.AddData(ctx, "commands", "docker images", "")
	require.NoError(t, err)

	hits, err := f.notes.Search("Docker")
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	_, err = f.notes.Search("  ")
	assert.ErrorIs(t, err, domain.ErrInvalid)

	notes, err := f.notes.List()
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "api_docs", notes[0].Note.Name)
	assert.Equal(t, 2, notes[1].Entries)
}

func TestNoteUseCase_EnsureDefault(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.notes.EnsureDefault())
	require.NoError(t, f.notes.EnsureDefault())

	note, err := f.store.GetNote(DefaultNote)
	require.NoError(t, err)
	assert.Equal(t, domain.NoteFile, note.Type)

	notes, err := f.notes.List()
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestNoteUseCase_CreateExistingLeavesNoFile(t *testing.T) {
	f := newFixture(t)
	_, err := f.notes.Create("commands", domain.NoteText)
	require.NoError(t, err)

	_, err = f.notes.Create("commands", domain.NoteFile)
	assert.ErrorIs(t, err, domain.ErrExists)
	assert.NoFileExists(t, filepath.Join(f.dir, "notes", "commands.md"))

	note, err := f.store.GetNote("commands")
	require.NoError(t, err)
	assert.Equal(t, domain.NoteText, note.Type)
}

func TestNoteUseCase_SearchFuzzy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.notes.Create("commands", domain.NoteText)
	require.NoError(t, err)
	for _, data := range []string{
		"deploy checklist for kubernetes rollout",
		"git log --oneline",
		"docker ps",
	} {
		_, err := f.notes.AddData(ctx, "commands", data, "")
		require.NoError(t, err)
	}

	tests := []struct {
		text string
		want []string
	}{
		{"gitlog", []string{"git log --oneline"}},
		{"git lg", []string{"git log --oneline"}},
		{"GIT LOG", []string{"git log --oneline"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			hits, err := f.notes.Search(tt.text)
			require.NoError(t, err)
			var got []string
			for _, h := range hits {
				got = append(got, h.Input)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	hits, err := f.notes.Search("docker")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "docker ps", hits[0].Input, "contiguous match ranks first")
}
