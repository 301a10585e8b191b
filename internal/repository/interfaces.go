package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/loadboard/internal/domain"
)

// TaskFilter narrows TaskRepo.List. Zero value lists every active task.
type TaskFilter struct {
	AssigneeKey     string
	IncludeInactive bool
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context, f TaskFilter) ([]domain.Task, error)
	// ListActiveByAssignee returns the assignee's tasks that are neither
	// completed nor canceled, ordered by ID.
	ListActiveByAssignee(ctx context.Context, assigneeKey string) ([]domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	// SetDueDate sets or, when due is nil, clears a task's due date.
	SetDueDate(ctx context.Context, id int64, due *time.Time) error
}

type AssigneeRepo interface {
	Create(ctx context.Context, a *domain.Assignee) error
	// GetByKey matches keys case-insensitively. A NULL capacity reads as
	// domain.DefaultDailyCapacityHours.
	GetByKey(ctx context.Context, key string) (*domain.Assignee, error)
	List(ctx context.Context) ([]*domain.Assignee, error)
	// SetCapacity stores a daily capacity; nil resets it to the default.
	SetCapacity(ctx context.Context, key string, hours *float64) error
}
