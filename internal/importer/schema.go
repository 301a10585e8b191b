package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for a bulk import.
type ImportSchema struct {
	Assignees []AssigneeImport `json:"assignees,omitempty"`
	Tasks     []TaskImport     `json:"tasks"`
}

// AssigneeImport defines one assignee in the import file.
type AssigneeImport struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Role       string   `json:"role,omitempty"`
	DailyHours *float64 `json:"daily_hours,omitempty"`
}

// TaskImport defines one task in the import file. Priority accepts a number
// or a name, as the CLI does.
type TaskImport struct {
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Assignee       string   `json:"assignee,omitempty"`
	Client         string   `json:"client,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	DueDate        *string  `json:"due_date,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	Status         string   `json:"status,omitempty"`
}

// LoadImportSchema reads and parses an import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
