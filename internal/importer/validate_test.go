package importer

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string     { return &s }
func ptrFloat(f float64) *float64 { return &f }

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Tasks: []TaskImport{
			{Title: "Mix episode 4"},
		},
	}
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	errs := ValidateImportSchema(validMinimalSchema())
	assert.Empty(t, errs)
}

func TestValidateImportSchema_ValidFull(t *testing.T) {
	schema := &ImportSchema{
		Assignees: []AssigneeImport{
			{Key: "ana", Name: "Ana", DailyHours: ptrFloat(6)},
			{Key: "acme", Name: "Acme", Role: "Client"},
		},
		Tasks: []TaskImport{
			{Title: "Mix", Assignee: "ana", EstimatedHours: ptrFloat(10), DueDate: ptrStr("2026-03-03"), Priority: "high"},
			{Title: "Master", Assignee: "bo", Priority: "2", Status: "in_progress"},
			{Title: "Someday", DueDate: ptrStr("")},
		},
	}
	assert.Empty(t, ValidateImportSchema(schema))
}

func TestValidateImportSchema_NoTasks(t *testing.T) {
	errs := ValidateImportSchema(&ImportSchema{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "at least one task")
}

func TestValidateImportSchema_AssigneeErrors(t *testing.T) {
	schema := validMinimalSchema()
	schema.Assignees = []AssigneeImport{
		{Key: "", Name: "Nobody"},
		{Key: "ana", Name: ""},
		{Key: "ANA", Name: "Ana again"},
		{Key: "bo", Name: "Bo", Role: "boss"},
		{Key: "cy", Name: "Cy", DailyHours: ptrFloat(30)},
	}

	errs := ValidateImportSchema(schema)
	msgs := errorStrings(errs)
	assert.Len(t, errs, 5)
	assert.Contains(t, msgs, "assignees[0].key is required")
	assert.Contains(t, msgs, "assignees[1].name is required")
	assert.Contains(t, msgs, `assignees[2].key: duplicate key "ANA"`)
	assert.Contains(t, msgs, `assignees[3].role: invalid value "boss" (member | client)`)
	assert.Contains(t, msgs, "assignees[4].daily_hours must be between 0 and 24")
}

func TestValidateImportSchema_TaskErrors(t *testing.T) {
	schema := &ImportSchema{
		Tasks: []TaskImport{
			{Title: " "},
			{Title: "a", EstimatedHours: ptrFloat(-1)},
			{Title: "b", EstimatedHours: ptrFloat(math.Inf(1))},
			{Title: "c", DueDate: ptrStr("03/04/2026")},
			{Title: "d", Priority: "urgent"},
			{Title: "e", Status: "archived"},
		},
	}

	errs := ValidateImportSchema(schema)
	assert.Len(t, errs, 6, "every problem is reported, not just the first")
	msgs := errorStrings(errs)
	assert.Contains(t, msgs, "tasks[0].title is required")
	assert.Contains(t, msgs, `tasks[3].due_date: invalid date format "03/04/2026" (expected YYYY-MM-DD)`)
	assert.Contains(t, msgs, `tasks[5].status: invalid value "archived"`)
}

func TestLoadImportSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "import.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "assignees": [{"key": "ana", "name": "Ana", "daily_hours": 6}],
  "tasks": [{"title": "Mix", "assignee": "ana", "estimated_hours": 4, "due_date": "2026-03-03"}]
}`), 0o644))

	schema, err := LoadImportSchema(path)
	require.NoError(t, err)
	require.Len(t, schema.Assignees, 1)
	assert.Equal(t, 6.0, *schema.Assignees[0].DailyHours)
	require.Len(t, schema.Tasks, 1)
	assert.Equal(t, "2026-03-03", *schema.Tasks[0].DueDate)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"tasks": [`), 0o644))
	_, err = LoadImportSchema(bad)
	assert.ErrorContains(t, err, "parsing import file")

	_, err = LoadImportSchema(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func errorStrings(errs []error) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}
