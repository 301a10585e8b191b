package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/loadboard/internal/app"
	"github.com/alexanderramin/loadboard/internal/board"
	"github.com/alexanderramin/loadboard/internal/cli/formatter"
	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/alexanderramin/loadboard/internal/service"
)

func newMoveCmd(app *App) *cobra.Command {
	var (
		window windowFlags
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "move ASSIGNEE TASK-ID YYYY-MM-DD|backlog",
		Short: "Move a task to a day or back to the backlog",
		Long: `Move a task on an assignee's board. The new due date is saved, then the
whole board is recomputed and shown. "backlog" clears the due date.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			taskID, err := parseTaskID(args[1])
			if err != nil {
				return err
			}
			target, err := parseMoveTarget(args[2], now)
			if err != nil {
				return err
			}

			gestures := service.NewGestures(app.Reschedule, args[0])
			if err := window.apply(now, &gestures.Start, &gestures.Days); err != nil {
				return err
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Saving move...")
			}
			resp, err := drop(context.Background(), gestures, taskID, target)
			stop()

			out := cmd.OutOrStdout()
			if err != nil {
				if resp != nil && errors.Is(err, service.ErrPersistence) {
					fmt.Fprintln(out, formatter.FormatDropResult(taskID, target, false, resp.OperationID))
					if resp.Schedule != nil && !quiet {
						fmt.Fprintln(out, formatter.Dim("Board as last saved:"))
						printSchedule(out, resp.Schedule)
					}
				}
				return err
			}

			fmt.Fprintln(out, formatter.FormatDropResult(taskID, resp.NewDueDate, resp.Applied, resp.OperationID))
			if !quiet && resp.Schedule != nil {
				fmt.Fprintln(out)
				printSchedule(out, resp.Schedule)
			}
			return nil
		},
	}

	window.register(cmd)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the board after moving")
	return cmd
}

// drop sends taskID to target, or to the backlog when target is nil.
func drop(ctx context.Context, g *service.Gestures, taskID int64, target *time.Time) (*app.RescheduleResponse, error) {
	if target == nil {
		return g.OnDropOnBacklog(ctx, taskID)
	}
	return g.OnDropOnDay(ctx, taskID, *target)
}

func printSchedule(out io.Writer, resp *app.ScheduleResponse) {
	today := domain.DateOf(resp.GeneratedAt)
	fmt.Fprint(out, formatter.FormatBoard(board.Build(resp.Schedule, today), resp.Assignee.Name, today))
}
