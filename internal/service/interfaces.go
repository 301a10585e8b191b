package service

import (
	"context"

	"github.com/alexanderramin/loadboard/internal/app"
	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/alexanderramin/loadboard/internal/importer"
	"github.com/alexanderramin/loadboard/internal/repository"
)

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context, f repository.TaskFilter) ([]domain.Task, error)
	Complete(ctx context.Context, id int64) error
	Cancel(ctx context.Context, id int64) error
	Reestimate(ctx context.Context, id int64, hours float64) error
}

type AssigneeService interface {
	Create(ctx context.Context, a *domain.Assignee) error
	GetByKey(ctx context.Context, key string) (*domain.Assignee, error)
	List(ctx context.Context) ([]*domain.Assignee, error)
	SetCapacity(ctx context.Context, key string, hours *float64) error
}

// ImportResult holds the outcome of a bulk import.
type ImportResult struct {
	AssigneeCount int
	// ExistingAssignees lists keys that were already stored and left as is.
	ExistingAssignees []string
	TaskIDs           []int64
}

type ImportService interface {
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

type WorkloadService interface {
	Compute(ctx context.Context, req app.ScheduleRequest) (*app.ScheduleResponse, error)
}

type RescheduleService interface {
	Reschedule(ctx context.Context, req app.RescheduleRequest) (*app.RescheduleResponse, error)
}

var (
	_ app.ComputeScheduleUseCase = WorkloadService(nil)
	_ app.RescheduleUseCase      = RescheduleService(nil)
)
