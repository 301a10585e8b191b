package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/loadboard/internal/service"
)

func newBoardCmd(app *App) *cobra.Command {
	var window windowFlags

	cmd := &cobra.Command{
		Use:   "board ASSIGNEE",
		Short: "Open the interactive board and move tasks with the keyboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("board needs an interactive terminal; use plan and move instead")
			}
			req, err := window.scheduleRequest(args[0], app.now())
			if err != nil {
				return err
			}

			gestures := service.NewGestures(app.Reschedule, args[0])
			gestures.Start, gestures.Days = req.Start, req.Days

			p := tea.NewProgram(newBoardModel(app.Workload, gestures, req),
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(*boardModel); ok && m.err != nil && !m.loaded {
				return m.err
			}
			return nil
		},
	}

	window.register(cmd)
	return cmd
}
