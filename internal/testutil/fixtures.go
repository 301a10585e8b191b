package testutil

import (
	"strings"
	"time"

	"github.com/alexanderramin/loadboard/internal/domain"
)

// Task options
type TaskOption func(*domain.Task)

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		d = domain.DateOf(d)
		t.DueDate = &d
	}
}

func WithEstimate(hours float64) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedHours = hours
	}
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithClient(c string) TaskOption {
	return func(t *domain.Task) {
		t.Client = c
	}
}

// NewTestTask builds an unsaved 4h normal-priority task for assigneeKey.
// ID stays zero so the store assigns one.
func NewTestTask(assigneeKey, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.Task{
		Title:          title,
		AssigneeKey:    assigneeKey,
		EstimatedHours: 4,
		Priority:       domain.PriorityNormal,
		Status:         domain.TaskTodo,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Assignee options
type AssigneeOption func(*domain.Assignee)

func WithCapacity(hours float64) AssigneeOption {
	return func(a *domain.Assignee) {
		a.DailyCapacityHours = hours
	}
}

func WithRole(r domain.AssigneeRole) AssigneeOption {
	return func(a *domain.Assignee) {
		a.Role = r
	}
}

// NewTestAssignee builds a member keyed by the lowercased name.
func NewTestAssignee(name string, opts ...AssigneeOption) *domain.Assignee {
	a := &domain.Assignee{
		Key:                strings.ToLower(name),
		Name:               name,
		Role:               domain.RoleMember,
		DailyCapacityHours: domain.DefaultDailyCapacityHours,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
