package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every task, note and config key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			if !clearForce {
				ok, err := a.prompter.Confirm(cmd.Context(), "Delete all tasks, notes and config keys?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}
			if err := a.maint.Clear(); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Cleared all records")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "do not ask for confirmation")
}
