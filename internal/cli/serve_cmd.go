package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/loadboard/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve boards and drops over HTTP",
		Long: `Start the HTTP API:

  GET  /healthz
  GET  /metrics
  GET  /api/v1/assignees/{key}/schedule?start=YYYY-MM-DD&days=N
  POST /api/v1/assignees/{key}/tasks/{id}/drop   {"day": "YYYY-MM-DD" | null}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(app.Workload, app.Reschedule, app.Logger)
			return srv.ListenAndServe(ctx, app.Config.HTTPAddr)
		},
	}

	cmd.Flags().String("addr", ":8080", "HTTP listen address")
	bindFlag(app.viper, "http_addr", cmd.Flags(), "addr")
	return cmd
}
