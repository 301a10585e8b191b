package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/loadboard/internal/cli/formatter"
	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/alexanderramin/loadboard/internal/repository"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskDoneCmd(app),
		newTaskCancelCmd(app),
		newTaskEstimateCmd(app),
	)
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		d           taskDraft
		priority    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if priority != "" {
				p, ok := domain.ParsePriority(strings.ToLower(priority))
				if !ok {
					return fmt.Errorf("invalid priority %q (1-5 or critical|high|normal|low|none)", priority)
				}
				d.Priority = p
			}

			if d.Title == "" {
				if !app.interactive() {
					return fmt.Errorf("--title is required")
				}
				assignees, err := app.Assignees.List(ctx)
				if err != nil {
					return err
				}
				if err := taskAddForm(&d, assignees).Run(); err != nil {
					return err
				}
			}

			t, err := d.task(app.now())
			if err != nil {
				return err
			}
			t.Description = description
			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d %s\n", t.ID, t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&d.Title, "title", "", "Task title")
	cmd.Flags().StringVarP(&d.Assignee, "assignee", "a", "", "Assignee key")
	cmd.Flags().StringVar(&d.Hours, "hours", "", "Estimated hours")
	cmd.Flags().StringVar(&d.Due, "due", "", "Due date (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority 1-5 or critical|high|normal|low|none")
	cmd.Flags().StringVar(&d.Client, "client", "", "Client name")
	cmd.Flags().StringVar(&description, "description", "", "Longer description")
	return cmd
}

// task converts the draft into a domain task.
func (d taskDraft) task(now time.Time) (*domain.Task, error) {
	t := &domain.Task{
		Title:       d.Title,
		AssigneeKey: strings.TrimSpace(d.Assignee),
		Client:      strings.TrimSpace(d.Client),
		Priority:    d.Priority,
		Status:      domain.TaskTodo,
	}
	if strings.TrimSpace(d.Hours) != "" {
		h, err := parseHours(d.Hours)
		if err != nil {
			return nil, err
		}
		t.EstimatedHours = h
	}
	if strings.TrimSpace(d.Due) != "" {
		due, err := parseDay(d.Due, now)
		if err != nil {
			return nil, fmt.Errorf("--due: %w", err)
		}
		t.DueDate = &due
	}
	return t, nil
}

func newTaskListCmd(app *App) *cobra.Command {
	var (
		assignee string
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.List(context.Background(), repository.TaskFilter{
				AssigneeKey:     assignee,
				IncludeInactive: all,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "Only tasks for this assignee")
	cmd.Flags().BoolVar(&all, "all", false, "Include completed and canceled tasks")
	return cmd
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.GetByID(context.Background(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTask(t, app.now()))
			return nil
		},
	}
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Complete(context.Background(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Task #%d completed\n", formatter.StyleGreen.Render("✔"), id)
			return nil
		},
	}
}

func newTaskCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Cancel(context.Background(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task #%d canceled\n", id)
			return nil
		},
	}
}

func newTaskEstimateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "estimate ID HOURS",
		Short: "Set a task's estimated hours",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			hours, err := parseHours(args[1])
			if err != nil {
				return err
			}
			if err := app.Tasks.Reestimate(context.Background(), id, hours); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task #%d estimated at %s\n", id, formatter.FormatHours(hours))
			return nil
		},
	}
}
