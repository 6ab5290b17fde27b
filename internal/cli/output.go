package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"aide/internal/domain"
	"aide/internal/usecase"
)

var (
	colorAccent  = lipgloss.Color("#20B9B4")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#6C7A80")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleName    = lipgloss.NewStyle().Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleSuccess = lipgloss.NewStyle().SetString("✓").Foreground(colorAccent)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
)

func printOK(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", styleSuccess.String(), fmt.Sprintf(format, args...))
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, styleError.Render("Error:"), err.Error())

	var rerr *usecase.ResolveError
	if errors.As(err, &rerr) && !rerr.Declined {
		fmt.Fprintln(w, styleMuted.Render(fmt.Sprintf("Run 'aide %s list' to see what exists.", listCommandFor(rerr.Kind))))
	}
}

func listCommandFor(kind domain.EntityKind) string {
	if kind == domain.KindSetting {
		return "config"
	}
	return kind.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func statusLabel(s domain.TaskStatus) string {
	switch s {
	case domain.StatusCompleted:
		return styleMuted.Render(string(s))
	case domain.StatusInProgress:
		return styleWarning.Render(string(s))
	}
	return string(s)
}

func printTasks(w io.Writer, tasks []domain.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("%-3s %-30s %-12s %s", "P", "TASK", "STATUS", "CREATED")))
	for _, t := range tasks {
		fmt.Fprintf(w, "%-3d %-30s %-12s %s\n", t.Priority, t.Name, statusLabel(t.Status), formatTime(t.CreatedAt))
	}
}

func printNotes(w io.Writer, notes []domain.NoteSummary) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes.")
		return
	}
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("%-30s %-5s %7s  %s", "NOTE", "TYPE", "ENTRIES", "CREATED")))
	for _, n := range notes {
		fmt.Fprintf(w, "%-30s %-5s %7d  %s\n", n.Note.Name, n.Note.Type, n.Entries, formatTime(n.Note.CreatedAt))
	}
}

func printEntries(w io.Writer, entries []domain.NoteEntry, withNote bool) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries.")
		return
	}
	for _, e := range entries {
		header := formatTime(e.CreatedAt)
		if withNote {
			header = e.Note + "  " + header
		}
		if e.Output != "" {
			header += "  " + e.Output
		}
		fmt.Fprintln(w, styleMuted.Render("--- "+header))
		fmt.Fprintln(w, truncate(e.Input, 500))
	}
}

func printSettings(w io.Writer, settings []domain.Setting) {
	if len(settings) == 0 {
		fmt.Fprintln(w, "No config keys.")
		return
	}
	for _, s := range settings {
		fmt.Fprintf(w, "%s = %s\n", styleName.Render(s.Key), s.Value)
	}
}

func printCandidates(w io.Writer, candidates []domain.Candidate) {
	if len(candidates) == 0 {
		fmt.Fprintln(w, "Nothing indexed.")
		return
	}
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("%-30s %7s %7s %7s", "NAME", "SCORE", "TFIDF", "STRING")))
	for _, c := range candidates {
		line := fmt.Sprintf("%-30s %7.4f %7.4f %7.4f", c.Name, c.Score, c.TFIDFScore, c.StringScore)
		if c.Score < usecase.AcceptanceThreshold {
			line = styleMuted.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}

func printStats(w io.Writer, stats []domain.IndexStats) {
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("%-8s %9s %7s %7s", "KIND", "DOCUMENTS", "TERMS", "CACHED")))
	for _, s := range stats {
		fmt.Fprintf(w, "%-8s %9d %7d %7d\n", s.Kind, s.Documents, s.Terms, s.CachedQueries)
	}
}

// truncate shortens s to limit runes and marks the cut with "...".
func truncate(s string, limit int) string {
	s = strings.TrimRight(s, "\n")
	n := 0
	for i := range s {
		if n == limit {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
