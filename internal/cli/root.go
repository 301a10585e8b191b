package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alexanderramin/loadboard/internal/config"
	"github.com/alexanderramin/loadboard/internal/service"
)

// skipWiring marks commands that run without a database.
const skipWiring = "loadboard/skip-wiring"

// App holds references to all service interfaces used by CLI commands.
// Tests fill the services directly; the binary leaves them nil and sets
// Wire, which runs once flags and config are parsed.
type App struct {
	Tasks      service.TaskService
	Assignees  service.AssigneeService
	Workload   service.WorkloadService
	Reschedule service.RescheduleService
	Import     service.ImportService

	Config config.Config
	Logger *slog.Logger

	// Wire opens the store and fills the services from cfg. The returned
	// func releases what Wire opened.
	Wire func(app *App, cfg config.Config) (func() error, error)

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// Now overrides the clock used for "today".
	Now func() time.Time

	viper   *viper.Viper
	cfgFile string
	closer  func() error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "loadboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.viper == nil {
		app.viper = viper.New()
		config.SetDefaults(app.viper)
	}

	root := &cobra.Command{
		Use:   "loadboard",
		Short: "Per-person workload boards for a small studio",
		Long: `loadboard spreads each person's open tasks over the coming days, filling
each day up to their daily capacity, and lets you move tasks between days
or back to the backlog.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return app.Close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&app.cfgFile, "config", "", "config file (default ./loadboard.yaml or ~/.loadboard/loadboard.yaml)")
	pf.String("db", "", "SQLite database path")
	pf.String("log-level", "", "log level: debug | info | warn | error")
	pf.Bool("log-use-cases", false, "log one line per schedule and reschedule")
	bindFlag(app.viper, "db_path", pf, "db")
	bindFlag(app.viper, "log_level", pf, "log-level")
	bindFlag(app.viper, "log_use_cases", pf, "log-use-cases")

	root.AddCommand(
		newPlanCmd(app),
		newMoveCmd(app),
		newBoardCmd(app),
		newTaskCmd(app),
		newAssigneeCmd(app),
		newImportCmd(app),
		newServeCmd(app),
		newInitCmd(app),
		newVersionCmd(),
	)
	return root
}

func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if err := config.ReadFile(a.viper, a.cfgFile); err != nil {
		return err
	}
	cfg := config.Load(a.viper)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.Config = cfg
	if a.Logger == nil {
		a.Logger = config.NewLogger(os.Stderr, cfg.LogLevel)
	}

	if cmd.Annotations[skipWiring] == "true" || a.Wire == nil || a.Workload != nil {
		return nil
	}
	closer, err := a.Wire(a, cfg)
	if err != nil {
		return err
	}
	a.closer = closer
	return nil
}

// Close releases whatever Wire opened. It is safe to call more than once.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer()
	a.closer = nil
	return err
}

func bindFlag(v *viper.Viper, viperKey string, fs *pflag.FlagSet, flagName string) {
	if err := v.BindPFlag(viperKey, fs.Lookup(flagName)); err != nil {
		panic(fmt.Sprintf("bindFlag %q → %q: %v", flagName, viperKey, err))
	}
}

// UseCaseObservers returns the use-case observers the config asks for.
func (a *App) UseCaseObservers() []service.UseCaseObserver {
	if !a.Config.LogUseCases {
		return nil
	}
	if a.Logger != nil {
		return []service.UseCaseObserver{service.NewSlogUseCaseObserver(a.Logger)}
	}
	return []service.UseCaseObserver{service.NewLogUseCaseObserver(os.Stderr)}
}
