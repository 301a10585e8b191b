package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/loadboard/internal/cli/formatter"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import assignees and tasks from a JSON file",
		Long: `Import assignees and tasks in one transaction. Assignees already stored
are left unchanged; every task assignee must exist after the import.

  {
    "assignees": [{"key": "ana", "name": "Ana", "daily_hours": 6}],
    "tasks": [{"title": "Mix", "assignee": "ana", "estimated_hours": 10,
               "due_date": "2026-03-03", "priority": "high"}]
  }`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Importing...")
			}
			result, err := app.Import.Import(context.Background(), args[0])
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Imported %d assignees and %d tasks\n",
				formatter.StyleGreen.Render("✔"), result.AssigneeCount, len(result.TaskIDs))
			if len(result.ExistingAssignees) > 0 {
				fmt.Fprintln(out, formatter.Dim("Already present: "+strings.Join(result.ExistingAssignees, ", ")))
			}
			return nil
		},
	}
}
