package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/loadboard/internal/db"
	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/alexanderramin/loadboard/internal/repository"
)

type taskService struct {
	tasks repository.TaskRepo
	uow   db.UnitOfWork
}

func NewTaskService(tasks repository.TaskRepo, uow db.UnitOfWork) TaskService {
	return &taskService{tasks: tasks, uow: uow}
}

// Create validates t and inserts it. A non-empty AssigneeKey must name an
// existing assignee; the check and the insert share one transaction.
func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if math.IsNaN(t.EstimatedHours) || math.IsInf(t.EstimatedHours, 0) || t.EstimatedHours < 0 {
		return fmt.Errorf("%w: estimated hours must be a non-negative number", ErrInvalidInput)
	}
	if t.Priority == 0 {
		t.Priority = domain.PriorityNormal
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: priority must be 1..5", ErrInvalidInput)
	}
	if t.Status == "" {
		t.Status = domain.TaskTodo
	}
	if !domain.ValidTaskStatuses[string(t.Status)] {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, t.Status)
	}
	if t.DueDate != nil {
		d := domain.DateOf(*t.DueDate)
		t.DueDate = &d
	}
	now := time.Now().UTC().Truncate(time.Second)
	t.CreatedAt = now
	t.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if t.AssigneeKey != "" {
			a, err := repository.NewSQLiteAssigneeRepo(tx).GetByKey(ctx, t.AssigneeKey)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("%q: %w", t.AssigneeKey, ErrAssigneeNotFound)
				}
				return err
			}
			t.AssigneeKey = a.Key
		}
		return repository.NewSQLiteTaskRepo(tx).Create(ctx, t)
	})
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context, f repository.TaskFilter) ([]domain.Task, error) {
	return s.tasks.List(ctx, f)
}

func (s *taskService) Complete(ctx context.Context, id int64) error {
	return s.mutate(ctx, id, func(t *domain.Task, now time.Time) error {
		return t.Complete(now)
	})
}

func (s *taskService) Cancel(ctx context.Context, id int64) error {
	return s.mutate(ctx, id, func(t *domain.Task, now time.Time) error {
		return t.Cancel(now)
	})
}

func (s *taskService) Reestimate(ctx context.Context, id int64, hours float64) error {
	return s.mutate(ctx, id, func(t *domain.Task, now time.Time) error {
		if err := t.Reestimate(hours, now); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil
	})
}

// mutate reads, changes and writes one task inside a transaction.
func (s *taskService) mutate(ctx context.Context, id int64, fn func(*domain.Task, time.Time) error) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		t, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(t, time.Now().UTC().Truncate(time.Second)); err != nil {
			return err
		}
		return txTasks.Update(ctx, t)
	})
}
