package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/alexanderramin/loadboard/internal/importer"
	"github.com/alexanderramin/loadboard/internal/repository"
	"github.com/alexanderramin/loadboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImportJSON(t *testing.T, schema *importer.ImportSchema) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.json")
	data, err := json.MarshalIndent(schema, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func ptrStr(s string) *string     { return &s }
func ptrFloat(f float64) *float64 { return &f }

func TestImportService_AssigneesAndTasks(t *testing.T) {
	tasks, assignees, uow := setupRepos(t)
	ctx := context.Background()
	seedAssignee(t, assignees, "Bo", testutil.WithCapacity(4))

	path := writeImportJSON(t, &importer.ImportSchema{
		Assignees: []importer.AssigneeImport{
			{Key: "ana", Name: "Ana", DailyHours: ptrFloat(6)},
			{Key: "bo", Name: "Bo Renamed", DailyHours: ptrFloat(8)},
		},
		Tasks: []importer.TaskImport{
			{Title: "Mix", Assignee: "ana", EstimatedHours: ptrFloat(10), DueDate: ptrStr("2026-03-03"), Priority: "high"},
			{Title: "Master", Assignee: "bo", EstimatedHours: ptrFloat(2)},
			{Title: "Unassigned idea"},
		},
	})

	result, err := NewImportService(uow).Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.AssigneeCount)
	assert.Equal(t, []string{"bo"}, result.ExistingAssignees)
	require.Len(t, result.TaskIDs, 3)

	bo, err := assignees.GetByKey(ctx, "bo")
	require.NoError(t, err)
	assert.Equal(t, 4.0, bo.DailyCapacityHours, "existing assignees are left alone")

	mix, err := tasks.GetByID(ctx, result.TaskIDs[0])
	require.NoError(t, err)
	assert.Equal(t, "ana", mix.AssigneeKey)
	assert.Equal(t, domain.PriorityHigh, mix.Priority)
	require.NotNil(t, mix.DueDate)
	assert.Equal(t, "2026-03-03", domain.FormatDate(*mix.DueDate))

	active, err := tasks.ListActiveByAssignee(ctx, "ana")
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestImportService_ValidationErrorsListed(t *testing.T) {
	_, _, uow := setupRepos(t)

	_, err := NewImportService(uow).ImportSchema(context.Background(), &importer.ImportSchema{
		Tasks: []importer.TaskImport{{Title: ""}, {Title: "x", Priority: "urgent"}},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "tasks[1].priority")
}

func TestImportService_UnknownAssigneeRollsBack(t *testing.T) {
	tasks, assignees, uow := setupRepos(t)
	ctx := context.Background()

	_, err := NewImportService(uow).ImportSchema(ctx, &importer.ImportSchema{
		Assignees: []importer.AssigneeImport{{Key: "ana", Name: "Ana"}},
		Tasks: []importer.TaskImport{
			{Title: "fine", Assignee: "ana"},
			{Title: "orphan", Assignee: "ghost"},
		},
	})
	require.ErrorIs(t, err, ErrAssigneeNotFound)
	assert.Contains(t, err.Error(), "tasks[1]")

	_, err = assignees.GetByKey(ctx, "ana")
	assert.ErrorIs(t, err, repository.ErrNotFound, "assignee insert rolled back")
	all, err := tasks.List(ctx, repository.TaskFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImportService_InsertFailureRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	tasks := repository.NewSQLiteTaskRepo(database)
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: errors.New("injected")}

	_, err := NewImportService(uow).ImportSchema(context.Background(), &importer.ImportSchema{
		Tasks: []importer.TaskImport{{Title: "one"}, {Title: "two"}},
	})
	require.ErrorContains(t, err, "injected")

	all, err := tasks.List(context.Background(), repository.TaskFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImportService_MissingFile(t *testing.T) {
	_, _, uow := setupRepos(t)

	_, err := NewImportService(uow).Import(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
