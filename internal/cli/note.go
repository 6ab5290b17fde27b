package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"aide/internal/domain"
)

var (
	noteType       string
	noteAddPath    string
	noteImportRoot string
)

var noteCmd = &cobra.Command{
	Use:     "note",
	Aliases: []string{"notes", "aide", "n"},
	Short:   "Manage notes and their entries",
}

var noteCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a text or file note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := domain.ParseNoteType(noteType)
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *app) error {
			note, err := a.notes.Create(args[0], typ)
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Created %s note %s", note.Type, styleName.Render(note.Name))
			if note.Path != "" {
				fmt.Fprintln(cmd.OutOrStdout(), styleMuted.Render("file: "+note.Path))
			}
			return nil
		})
	},
}

var noteAddCmd = &cobra.Command{
	Use:   "add NAME [DATA]",
	Short: "Add data, or the content of a file with --path, to a note",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data := ""
		if len(args) == 2 {
			data = args[1]
		}
		return withApp(cmd, func(a *app) error {
			entry, err := a.notes.AddData(cmd.Context(), args[0], data, noteAddPath)
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Added entry to %s", styleName.Render(entry.Note))
			return nil
		})
	},
}

var noteImportCmd = &cobra.Command{
	Use:   "import NAME PATTERN...",
	Short: "Add every file matching the glob patterns as entries of a note",
	Long: `Walk --root (default: current directory) and add each file matching one of
the doublestar patterns as an entry. notes.excludes from the config is applied.

Examples:
  aide note import docs "**/*.md"
  aide note import snippets "*.sh" "scripts/**/*.py" --root ~/src/tools`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := noteImportRoot
		if root == "" {
			var err error
			if root, err = os.Getwd(); err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		return withApp(cmd, func(a *app) error {
			var bar *progressbar.ProgressBar
			var barMu sync.Mutex
			progress := func(processed, total int, currentFile string) {
				barMu.Lock()
				defer barMu.Unlock()
				if bar == nil {
					bar = newProgressBar(total, "Importing")
				}
				bar.Describe(fmt.Sprintf("[cyan]Importing[reset] %s", currentFile))
				_ = bar.Set(processed)
			}

			result, err := a.notes.Import(cmd.Context(), args[0], root, args[1:], progress)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printOK(out, "Imported %d files into %s", result.Entries, styleName.Render(result.Note))
			if len(result.Errors) > 0 {
				fmt.Fprintln(out, styleWarning.Render("Warnings:"))
				for _, e := range result.Errors {
					fmt.Fprintf(out, "  - %s\n", e)
				}
			}
			return nil
		})
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print the entries of a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			note, entries, err := a.notes.Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styleTitle.Render(fmt.Sprintf("%s (%s, %d entries)", note.Name, note.Type, len(entries))))
			printEntries(out, entries, false)
			return nil
		})
	},
}

var noteListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			notes, err := a.notes.List()
			if err != nil {
				return err
			}
			printNotes(cmd.OutOrStdout(), notes)
			return nil
		})
	},
}

var notePathCmd = &cobra.Command{
	Use:   "path NAME",
	Short: "Print the file behind a file note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			path, err := a.notes.Path(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		})
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:     "delete NAME",
	Aliases: []string{"rm"},
	Short:   "Delete a note, its entries and its file",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			note, err := a.notes.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Deleted note %s", styleName.Render(note.Name))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteCreateCmd, noteAddCmd, noteImportCmd, noteShowCmd, noteListCmd, notePathCmd, noteDeleteCmd)

	noteCreateCmd.Flags().StringVarP(&noteType, "type", "t", string(domain.NoteText), "note type: text or file")
	noteAddCmd.Flags().StringVarP(&noteAddPath, "path", "p", "", "read the entry from this file")
	noteImportCmd.Flags().StringVar(&noteImportRoot, "root", "", "directory to walk (default is current directory)")
}
