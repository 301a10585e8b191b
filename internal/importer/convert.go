package importer

import (
	"strings"
	"time"

	"github.com/alexanderramin/loadboard/internal/domain"
)

// Batch is a converted import, ready for persistence.
type Batch struct {
	Assignees []*domain.Assignee
	Tasks     []*domain.Task
}

// Convert transforms a validated ImportSchema into domain objects.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) *Batch {
	b := &Batch{
		Assignees: make([]*domain.Assignee, 0, len(schema.Assignees)),
		Tasks:     make([]*domain.Task, 0, len(schema.Tasks)),
	}

	for _, a := range schema.Assignees {
		role := domain.RoleMember
		if a.Role != "" {
			role = domain.AssigneeRole(strings.ToLower(a.Role))
		}
		hours := domain.DefaultDailyCapacityHours
		if a.DailyHours != nil {
			hours = *a.DailyHours
		}
		b.Assignees = append(b.Assignees, &domain.Assignee{
			Key:                strings.ToLower(strings.TrimSpace(a.Key)),
			Name:               strings.TrimSpace(a.Name),
			Role:               role,
			DailyCapacityHours: hours,
		})
	}

	for _, t := range schema.Tasks {
		priority := domain.PriorityNormal
		if t.Priority != "" {
			priority, _ = domain.ParsePriority(strings.ToLower(t.Priority))
		}
		status := domain.TaskTodo
		if t.Status != "" {
			status = domain.TaskStatus(t.Status)
		}
		var hours float64
		if t.EstimatedHours != nil {
			hours = *t.EstimatedHours
		}

		b.Tasks = append(b.Tasks, &domain.Task{
			Title:          strings.TrimSpace(t.Title),
			Description:    t.Description,
			Client:         strings.TrimSpace(t.Client),
			AssigneeKey:    strings.ToLower(strings.TrimSpace(t.Assignee)),
			EstimatedHours: hours,
			DueDate:        parseOptionalDate(t.DueDate),
			Priority:       priority,
			Status:         status,
		})
	}

	return b
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := domain.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &t
}
