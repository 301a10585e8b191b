package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/loadboard/internal/cli/formatter"
	"github.com/alexanderramin/loadboard/internal/domain"
)

func newAssigneeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assignee",
		Aliases: []string{"person"},
		Short:   "Manage assignees and their daily capacity",
	}

	cmd.AddCommand(
		newAssigneeAddCmd(app),
		newAssigneeListCmd(app),
		newAssigneeCapacityCmd(app),
	)
	return cmd
}

func newAssigneeAddCmd(app *App) *cobra.Command {
	var (
		key   string
		hours float64
		role  string
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an assignee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := &domain.Assignee{
				Key:                key,
				Name:               args[0],
				Role:               domain.AssigneeRole(strings.ToLower(role)),
				DailyCapacityHours: hours,
			}
			if err := app.Assignees.Create(context.Background(), a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s), %s/day\n", a.Name, a.Key, formatter.FormatHours(a.DailyCapacityHours))
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Assignee key (default derived from the name)")
	cmd.Flags().Float64Var(&hours, "hours", domain.DefaultDailyCapacityHours, "Daily capacity in hours")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleMember), "member | client")
	return cmd
}

func newAssigneeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List assignees",
		RunE: func(cmd *cobra.Command, args []string) error {
			as, err := app.Assignees.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAssigneeList(as))
			return nil
		},
	}
}

func newAssigneeCapacityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "capacity KEY HOURS|default",
		Short: "Set an assignee's daily capacity",
		Long: `Set the hours per day an assignee can take on. "default" restores the
default of 8 hours. Zero is accepted and scheduled as half an hour.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var hours *float64
			if !strings.EqualFold(args[1], "default") {
				h, err := parseHours(args[1])
				if err != nil {
					return err
				}
				hours = &h
			}
			if err := app.Assignees.SetCapacity(context.Background(), args[0], hours); err != nil {
				return err
			}

			shown := formatter.FormatHours(domain.DefaultDailyCapacityHours) + " (default)"
			if hours != nil {
				shown = formatter.FormatHours(*hours)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now has %s/day\n", args[0], shown)
			return nil
		},
	}
}
