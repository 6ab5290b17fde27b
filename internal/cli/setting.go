package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settingCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg"},
	Short:   "Manage config key/value pairs",
}

var settingSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Create or overwrite a config key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			key, created, err := a.settings.Set(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			verb := "Updated"
			if created {
				verb = "Set"
			}
			printOK(cmd.OutOrStdout(), "%s %s", verb, styleName.Render(key))
			return nil
		})
	},
}

var settingGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print the value of a config key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			s, err := a.settings.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.Value)
			return nil
		})
	},
}

var settingListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List config keys",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			settings, err := a.settings.List()
			if err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), settings)
			return nil
		})
	},
}

var settingDeleteCmd = &cobra.Command{
	Use:     "delete KEY",
	Aliases: []string{"rm"},
	Short:   "Delete a config key",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			s, err := a.settings.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Deleted %s", styleName.Render(s.Key))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(settingCmd)
	settingCmd.AddCommand(settingSetCmd, settingGetCmd, settingListCmd, settingDeleteCmd)
}
