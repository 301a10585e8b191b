package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type Task struct {
	ID          int64
	Title       string
	Description string
	Client      string
	AssigneeKey string

	EstimatedHours float64
	DueDate        *time.Time
	// InvalidDueDate holds the stored due date verbatim when it could not
	// be parsed. DueDate is nil in that case.
	InvalidDueDate string

	Priority Priority
	Status   TaskStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the task still counts toward a workload.
func (t *Task) IsActive() bool {
	return t.Status != TaskCompleted && t.Status != TaskCanceled
}

// AssignedTo reports whether the task belongs to the given assignee key.
// Keys are compared case-insensitively.
func (t *Task) AssignedTo(key string) bool {
	return key != "" && strings.EqualFold(t.AssigneeKey, key)
}

// HasUsableEstimate reports whether EstimatedHours is a finite, positive number.
func (t *Task) HasUsableEstimate() bool {
	return !math.IsNaN(t.EstimatedHours) && !math.IsInf(t.EstimatedHours, 0) && t.EstimatedHours > 0
}

// Complete marks the task completed.
func (t *Task) Complete(now time.Time) error {
	if t.Status == TaskCanceled {
		return fmt.Errorf("cannot complete task %d: it is canceled", t.ID)
	}
	t.Status = TaskCompleted
	t.UpdatedAt = now
	return nil
}

// Cancel marks the task canceled.
func (t *Task) Cancel(now time.Time) error {
	if t.Status == TaskCompleted {
		return fmt.Errorf("cannot cancel task %d: it is completed", t.ID)
	}
	t.Status = TaskCanceled
	t.UpdatedAt = now
	return nil
}

// Reestimate replaces the estimated hours. Negative or non-finite values are rejected.
func (t *Task) Reestimate(hours float64, now time.Time) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 {
		return fmt.Errorf("estimated hours must be a non-negative number, got %v", hours)
	}
	t.EstimatedHours = hours
	t.UpdatedAt = now
	return nil
}
