package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/loadboard/internal/board"
	"github.com/alexanderramin/loadboard/internal/cli/formatter"
	"github.com/alexanderramin/loadboard/internal/domain"
)

func newPlanCmd(app *App) *cobra.Command {
	var (
		window  windowFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "plan ASSIGNEE",
		Short: "Show an assignee's workload board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := window.scheduleRequest(args[0], app.now())
			if err != nil {
				return err
			}
			resp, err := app.Workload.Compute(context.Background(), req)
			if err != nil {
				return err
			}

			today := domain.DateOf(resp.GeneratedAt)
			b := board.Build(resp.Schedule, today)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(b)
			}
			fmt.Fprint(out, formatter.FormatBoard(b, resp.Assignee.Name, today))
			return nil
		},
	}

	window.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the board as JSON")
	return cmd
}
