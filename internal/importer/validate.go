package importer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/loadboard/internal/domain"
)

var validRoles = map[string]bool{string(domain.RoleMember): true, string(domain.RoleClient): true}

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
//
// Task assignees that are not declared in the file are not reported here;
// they may already exist in the store.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	keys := make(map[string]bool)
	errs = append(errs, validateAssignees(schema.Assignees, keys)...)
	errs = append(errs, validateTasks(schema.Tasks)...)

	return errs
}

func validateAssignees(as []AssigneeImport, keys map[string]bool) []error {
	var errs []error

	for i, a := range as {
		prefix := fmt.Sprintf("assignees[%d]", i)
		key := strings.ToLower(strings.TrimSpace(a.Key))

		if key == "" {
			errs = append(errs, fmt.Errorf("%s.key is required", prefix))
		} else if keys[key] {
			errs = append(errs, fmt.Errorf("%s.key: duplicate key %q", prefix, a.Key))
		}
		keys[key] = true

		if strings.TrimSpace(a.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if a.Role != "" && !validRoles[strings.ToLower(a.Role)] {
			errs = append(errs, fmt.Errorf("%s.role: invalid value %q (member | client)", prefix, a.Role))
		}
		if a.DailyHours != nil {
			h := *a.DailyHours
			if math.IsNaN(h) || h < 0 || h > 24 {
				errs = append(errs, fmt.Errorf("%s.daily_hours must be between 0 and 24", prefix))
			}
		}
	}

	return errs
}

func validateTasks(tasks []TaskImport) []error {
	var errs []error

	if len(tasks) == 0 {
		errs = append(errs, fmt.Errorf("tasks: at least one task is required"))
	}

	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		if strings.TrimSpace(t.Title) == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if t.EstimatedHours != nil {
			h := *t.EstimatedHours
			if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
				errs = append(errs, fmt.Errorf("%s.estimated_hours must be a non-negative number", prefix))
			}
		}
		if t.DueDate != nil && *t.DueDate != "" {
			if _, err := time.Parse(domain.DateLayout, *t.DueDate); err != nil {
				errs = append(errs, fmt.Errorf("%s.due_date: invalid date format %q (expected YYYY-MM-DD)", prefix, *t.DueDate))
			}
		}
		if t.Priority != "" {
			if _, ok := domain.ParsePriority(strings.ToLower(t.Priority)); !ok {
				errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", prefix, t.Priority))
			}
		}
		if t.Status != "" && !domain.ValidTaskStatuses[t.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, t.Status))
		}
	}

	return errs
}
