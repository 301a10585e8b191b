package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/loadboard/internal/board"
	"github.com/alexanderramin/loadboard/internal/config"
	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/alexanderramin/loadboard/internal/repository"
	"github.com/alexanderramin/loadboard/internal/service"
	"github.com/alexanderramin/loadboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monday is 2026-03-02.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return monday.Add(9 * time.Hour) }

// testEnv is an App wired to an in-memory DB plus direct repo access for
// assertions.
type testEnv struct {
	app       *App
	tasks     repository.TaskRepo
	assignees repository.AssigneeRepo
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	assigneeRepo := repository.NewSQLiteAssigneeRepo(database)
	workload := service.NewWorkloadService(taskRepo, assigneeRepo, service.WorkloadOptions{Now: fixedNow})

	return &testEnv{
		app: &App{
			Tasks:      service.NewTaskService(taskRepo, testutil.NewTestUoW(database)),
			Assignees:  service.NewAssigneeService(assigneeRepo),
			Workload:   workload,
			Reschedule: service.NewRescheduleService(taskRepo, workload),
			Import:     service.NewImportService(testutil.NewTestUoW(database)),
			Now:        fixedNow,
		},
		tasks:     taskRepo,
		assignees: assigneeRepo,
	}
}

func (e *testEnv) seedAssignee(t *testing.T, name string, opts ...testutil.AssigneeOption) *domain.Assignee {
	t.Helper()
	a := testutil.NewTestAssignee(name, opts...)
	require.NoError(t, e.assignees.Create(context.Background(), a))
	return a
}

func (e *testEnv) seedTask(t *testing.T, key, title string, opts ...testutil.TaskOption) *domain.Task {
	t.Helper()
	task := testutil.NewTestTask(key, title, opts...)
	require.NoError(t, e.tasks.Create(context.Background(), task))
	return task
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// executeCmd runs a cobra command and captures stdout/stderr with styling
// stripped.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansiPattern.ReplaceAllString(buf.String(), ""), err
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	env := testApp(t)

	output, err := executeCmd(t, env.app)
	require.NoError(t, err)
	assert.Contains(t, output, "loadboard")
	assert.Contains(t, output, "plan")
	assert.Contains(t, output, "move")
}

// --- plan ---

func TestPlanCmd(t *testing.T) {
	env := testApp(t)
	env.seedAssignee(t, "Ana")
	env.seedTask(t, "ana", "Mix", testutil.WithDueDate(monday.AddDate(0, 0, 1)), testutil.WithEstimate(10))
	env.seedTask(t, "ana", "Someday", testutil.WithEstimate(2))

	out, err := executeCmd(t, env.app, "plan", "ana", "--days", "5")
	require.NoError(t, err)

	assert.Contains(t, out, "Mix 8h (Part 1)")
	assert.Contains(t, out, "Mix 2h (Part 2)")
	assert.Contains(t, out, "Someday")
	assert.Contains(t, out, "no due date")
}

func TestPlanCmd_JSON(t *testing.T) {
	env := testApp(t)
	env.seedAssignee(t, "Ana", testutil.WithCapacity(6))
	env.seedTask(t, "ana", "Edit", testutil.WithDueDate(monday), testutil.WithEstimate(3))

	out, err := executeCmd(t, env.app, "plan", "ana", "--start", "2026-03-02", "--days", "3", "--json")
	require.NoError(t, err)

	var b board.Board
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	require.Len(t, b.Columns, 3)
	assert.Equal(t, 6.0, b.Columns[0].CapacityHours)
	require.Len(t, b.Columns[0].Cards, 1)
	assert.Equal(t, 3.0, b.Columns[0].Cards[0].Hours)
}

func TestPlanCmd_Errors(t *testing.T) {
	env := testApp(t)
	env.seedAssignee(t, "Ana")

	_, err := executeCmd(t, env.app, "plan", "ghost")
	assert.ErrorIs(t, err, service.ErrAssigneeNotFound)

	_, err = executeCmd(t, env.app, "plan", "ana", "--start", "next week")
	assert.Error(t, err)

	_, err = executeCmd(t, env.app, "plan")
	assert.Error(t, err, "assignee argument is required")
}

// --- move ---

func TestMoveCmd_ToDay(t *testing.T) {
	env := testApp(t)
	env.seedAssignee(t, "Ana")
	task := env.seedTask(t, "ana", "Edit", testutil.WithEstimate(3))

	out, err := executeCmd(t, env.app, "move", "ana", "#1", "2026-03-04")
	require.NoError(t, err)
	assert.Contains(t, out, "moved to 2026-03-04")
	assert.Contains(t, out, "Edit 3h")

	stored, err := env.tasks.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DueDate)
	assert.Equal(t, "2026-03-04", domain.FormatDate(*stored.DueDate))
}

func TestMoveCmd_ToBacklog(t *testing.T) {
	env := testApp(t)
	env.seedAssignee(t, "Ana")
	task := env.seedTask(t, "ana", "Edit", testutil.WithDueDate(monday))

	out, err := executeCmd(t, env.app, "move", "ana", "1", "backlog", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "moved to backlog")
	assert.NotContains(t, out, "WORKLOAD", "--quiet skips the board")

	stored, err := env.tasks.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.DueDate)
}

func TestMoveCmd_Tomorrow(t *testing.T) {
	env := testApp(t)
	env.seedAssignee(t, "Ana")
	task := env.seedTask(t, "ana", "Edit")

	_, err := executeCmd(t, env.app, "move", "ana", "1", "tomorrow", "-q")
	require.NoError(t, err)

	stored, err := env.tasks.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DueDate)
	assert.Equal(t, "2026-03-03", domain.FormatDate(*stored.DueDate))
}

func TestMoveCmd_Errors(t *testing.T) {
	env := testApp(t)
	env.seedAssignee(t, "Ana")

	_, err := executeCmd(t, env.app, "move", "ana", "abc", "backlog")
	assert.ErrorContains(t, err, "invalid task id")

	_, err = executeCmd(t, env.app, "move", "ana", "1", "someday")
	assert.Error(t, err)

	_, err = executeCmd(t, env.app, "move", "ana", "42", "backlog")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// --- board ---

func TestBoardCmd_RequiresTerminal(t *testing.T) {
	env := testApp(t)
	env.seedAssignee(t, "Ana")

	_, err := executeCmd(t, env.app, "board", "ana")
	assert.ErrorContains(t, err, "interactive terminal")
}

// --- task ---

func TestTaskCmd_AddListDone(t *testing.T) {
	env := testApp(t)
	env.seedAssignee(t, "Ana")

	out, err := executeCmd(t, env.app, "task", "add", "--title", "Mix", "-a", "ANA",
		"--hours", "2.5h", "--due", "2026-03-05", "-p", "high", "--client", "Acme")
	require.NoError(t, err)
	assert.Contains(t, out, "Created task #1 Mix")

	stored, err := env.tasks.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "ana", stored.AssigneeKey)
	assert.Equal(t, 2.5, stored.EstimatedHours)
	assert.Equal(t, domain.PriorityHigh, stored.Priority)
	assert.Equal(t, "Acme", stored.Client)
	require.NotNil(t, stored.DueDate)
	assert.Equal(t, "2026-03-05", domain.FormatDate(*stored.DueDate))

	out, err = executeCmd(t, env.app, "task", "list", "-a", "ana")
	require.NoError(t, err)
	assert.Contains(t, out, "Mix")

	_, err = executeCmd(t, env.app, "task", "done", "1")
	require.NoError(t, err)

	out, err = executeCmd(t, env.app, "task", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks.")

	out, err = executeCmd(t, env.app, "task", "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Done")
}

func TestTaskCmd_AddRequiresTitleWhenNotInteractive(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "task", "add", "--hours", "2")
	assert.ErrorContains(t, err, "--title is required")
}

func TestTaskCmd_AddValidation(t *testing.T) {
	env := testApp(t)
	env.seedAssignee(t, "Ana")

	_, err := executeCmd(t, env.app, "task", "add", "--title", "X", "-p", "urgent")
	assert.ErrorContains(t, err, "invalid priority")

	_, err = executeCmd(t, env.app, "task", "add", "--title", "X", "--hours", "lots")
	assert.ErrorContains(t, err, "invalid hours")

	_, err = executeCmd(t, env.app, "task", "add", "--title", "X", "-a", "ghost")
	assert.ErrorIs(t, err, service.ErrAssigneeNotFound)
}

func TestTaskCmd_EstimateCancelShow(t *testing.T) {
	env := testApp(t)
	env.seedAssignee(t, "Ana")
	task := env.seedTask(t, "ana", "Edit")

	_, err := executeCmd(t, env.app, "task", "estimate", "1", "6")
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "task", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "6h")

	_, err = executeCmd(t, env.app, "task", "cancel", "1")
	require.NoError(t, err)

	stored, err := env.tasks.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCanceled, stored.Status)

	_, err = executeCmd(t, env.app, "task", "estimate", "1", "--", "-2")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

// --- assignee ---

func TestAssigneeCmd_AddListCapacity(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "assignee", "add", "Ana Lopez", "--hours", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "(ana-lopez), 6h/day")

	_, err = executeCmd(t, env.app, "assignee", "capacity", "ana-lopez", "0")
	require.NoError(t, err)

	out, err = executeCmd(t, env.app, "assignee", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ana-lopez")
	assert.Contains(t, out, "uses 0.5h")

	out, err = executeCmd(t, env.app, "assignee", "capacity", "ana-lopez", "default")
	require.NoError(t, err)
	assert.Contains(t, out, "8h (default)")

	a, err := env.assignees.GetByKey(context.Background(), "ana-lopez")
	require.NoError(t, err)
	assert.Equal(t, 8.0, a.DailyCapacityHours)
}

func TestAssigneeCmd_RejectsBadRole(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "assignee", "add", "Bo", "--role", "boss")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

// --- import ---

func TestImportCmd(t *testing.T) {
	env := testApp(t)
	env.seedAssignee(t, "Bo")
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "assignees": [{"key": "ana", "name": "Ana", "daily_hours": 6}, {"key": "bo", "name": "Bo"}],
  "tasks": [
    {"title": "Mix", "assignee": "ana", "estimated_hours": 10, "due_date": "2026-03-03"},
    {"title": "Master", "assignee": "bo", "estimated_hours": 2}
  ]
}`), 0o644))

	out, err := executeCmd(t, env.app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 assignees and 2 tasks")
	assert.Contains(t, out, "Already present: bo")

	out, err = executeCmd(t, env.app, "plan", "ana", "--days", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Mix 6h (Part 1)")
}

func TestImportCmd_InvalidFile(t *testing.T) {
	env := testApp(t)
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tasks": [{"title": ""}]}`), 0o644))

	_, err := executeCmd(t, env.app, "import", path)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	assert.ErrorContains(t, err, "tasks[0].title is required")
}

// --- init / version ---

func TestInitCmd_WritesConfigOnce(t *testing.T) {
	env := testApp(t)
	path := filepath.Join(t.TempDir(), "loadboard.yaml")

	out, err := executeCmd(t, env.app, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "config written to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_day_advances")

	_, err = executeCmd(t, env.app, "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = executeCmd(t, env.app, "init", "--config", path, "--force")
	require.NoError(t, err)
}

func TestVersionCmd(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "loadboard dev")
}

// --- wiring ---

func TestSetup_WiresFromConfig(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "board.db")
	var wiredWith string
	closed := false
	app := &App{
		Now: fixedNow,
		Wire: func(a *App, cfg config.Config) (func() error, error) {
			wiredWith = cfg.DBPath
			env := testApp(t)
			a.Tasks, a.Assignees, a.Workload, a.Reschedule, a.Import =
				env.app.Tasks, env.app.Assignees, env.app.Workload, env.app.Reschedule, env.app.Import
			return func() error { closed = true; return nil }, nil
		},
	}

	_, err := executeCmd(t, app, "--db", dbPath, "task", "list")
	require.NoError(t, err)
	assert.Equal(t, dbPath, wiredWith)
	assert.True(t, closed)
}

func TestSetup_InitSkipsWiring(t *testing.T) {
	app := &App{
		Wire: func(*App, config.Config) (func() error, error) {
			t.Fatal("init must not open the database")
			return nil, nil
		},
	}
	_, err := executeCmd(t, app, "init", "--config", filepath.Join(t.TempDir(), "c.yaml"))
	require.NoError(t, err)
}
