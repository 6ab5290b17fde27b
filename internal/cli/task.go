package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"aide/internal/domain"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks", "t"},
	Short:   "Manage tasks",
}

var taskCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a task, or open an existing one with a similar name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			task, created, err := a.tasks.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if created {
				printOK(out, "Created task %s (priority %d)", styleName.Render(task.Name), task.Priority)
				fmt.Fprintln(out, styleMuted.Render("log: "+task.LogPath))
				return nil
			}
			printOK(out, "Task %s already exists [%s, priority %d]", styleName.Render(task.Name), task.Status, task.Priority)
			return nil
		})
	},
}

var taskStatusCmd = &cobra.Command{
	Use:   "status NAME created|in_progress|completed",
	Short: "Set the status of a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := domain.ParseTaskStatus(args[1])
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *app) error {
			task, err := a.tasks.SetStatus(cmd.Context(), args[0], status)
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "%s is now %s", styleName.Render(task.Name), task.Status)
			return nil
		})
	},
}

var taskPriorityCmd = &cobra.Command{
	Use:   "priority NAME 1-5",
	Short: "Set the priority of a task (1 is highest)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		priority, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: priority must be a number", domain.ErrInvalid)
		}
		return withApp(cmd, func(a *app) error {
			task, err := a.tasks.SetPriority(cmd.Context(), args[0], priority)
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "%s now has priority %d", styleName.Render(task.Name), task.Priority)
			return nil
		})
	},
}

var taskLogCmd = &cobra.Command{
	Use:   "log NAME TEXT...",
	Short: "Append a timestamped line to a task's log file",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			task, err := a.tasks.AppendLog(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Logged to %s", styleName.Render(task.Name))
			return nil
		})
	},
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks by priority",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			tasks, err := a.tasks.List()
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), tasks)
			return nil
		})
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete NAME",
	Aliases: []string{"rm"},
	Short:   "Delete a task and its log file",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			task, err := a.tasks.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Deleted task %s", styleName.Render(task.Name))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskCreateCmd, taskStatusCmd, taskPriorityCmd, taskLogCmd, taskListCmd, taskDeleteCmd)
}
