package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/loadboard/internal/cli"
	"github.com/alexanderramin/loadboard/internal/config"
	"github.com/alexanderramin/loadboard/internal/db"
	"github.com/alexanderramin/loadboard/internal/repository"
	"github.com/alexanderramin/loadboard/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{
		Wire: wire,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}
	defer app.Close()

	return cli.NewRootCmd(app).Execute()
}

// wire opens the database and builds the services for one command run.
func wire(app *cli.App, cfg config.Config) (func() error, error) {
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	taskRepo := repository.NewSQLiteTaskRepo(database)
	assigneeRepo := repository.NewSQLiteAssigneeRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	observers := app.UseCaseObservers()
	workload := service.NewWorkloadService(taskRepo, assigneeRepo, service.WorkloadOptions{
		HorizonDays:    cfg.HorizonDays,
		MaxDayAdvances: cfg.MaxDayAdvances,
	}, observers...)

	app.Tasks = service.NewTaskService(taskRepo, uow)
	app.Assignees = service.NewAssigneeService(assigneeRepo)
	app.Import = service.NewImportService(uow)
	app.Workload = workload
	// One reschedule service per process so its per-assignee lock covers
	// every caller.
	app.Reschedule = service.NewRescheduleService(taskRepo, workload, observers...)

	return database.Close, nil
}
