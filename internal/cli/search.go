package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search TEXT...",
	Short: "Fuzzy-search note entries, best match first",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		return withApp(cmd, func(a *app) error {
			entries, err := a.notes.Search(text)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No results found.")
				return nil
			}
			fmt.Fprintf(out, "Found %d entries for: %s\n\n", len(entries), text)
			printEntries(out, entries, true)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
