package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"aide/internal/domain"
)

var suggestLimit int

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Inspect and maintain the name matching indices",
	Long: `Names are indexed in memory for every command. New names are added
incrementally, which leaves the weights of older names slightly stale;
'aide index rebuild' recomputes them all.`,
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild [KIND]",
	Short: "Recompute every cached name vector (all kinds by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds := domain.AllKinds
		if len(args) == 1 {
			kind, err := domain.ParseEntityKind(args[0])
			if err != nil {
				return err
			}
			kinds = []domain.EntityKind{kind}
		}

		return withApp(cmd, func(a *app) error {
			start := time.Now()
			bar := newProgressBar(len(kinds), "Rebuilding")
			stats, err := a.maint.Rebuild(kinds, func(done, total int, kind domain.EntityKind) {
				bar.Describe(fmt.Sprintf("[cyan]Rebuilding[reset] %s", kind))
				_ = bar.Set(done)
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printStats(out, stats)
			fmt.Fprintf(out, "\nRebuilt in %s\n", formatDuration(time.Since(start)))
			return nil
		})
	},
}

var indexStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show documents and terms per kind",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			stats, err := a.maint.Stats()
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), stats)
			return nil
		})
	},
}

var indexSuggestCmd = &cobra.Command{
	Use:   "suggest KIND TEXT",
	Short: "Rank stored names against TEXT and show the score components",
	Example: `  aide index suggest config databse_url
  aide index suggest task api -n 10`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := domain.ParseEntityKind(args[0])
		if err != nil {
			return err
		}
		limit := suggestLimit
		if !cmd.Flags().Changed("limit") {
			limit = GetConfig().Match.MaxSuggestions
		}

		return withApp(cmd, func(a *app) error {
			candidates, err := a.maint.Suggest(kind, strings.Join(args[1:], " "), limit)
			if err != nil {
				return err
			}
			printCandidates(cmd.OutOrStdout(), candidates)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexRebuildCmd, indexStatsCmd, indexSuggestCmd)
	indexSuggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 5, "maximum candidates to show (0 for all)")
}

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", description)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
