package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/loadboard/internal/app"
	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/alexanderramin/loadboard/internal/repository"
	"github.com/alexanderramin/loadboard/internal/telemetry"
	"github.com/google/uuid"
)

type rescheduleService struct {
	tasks    repository.TaskRepo
	workload WorkloadService
	locks    *assigneeLocks
	observer UseCaseObserver
}

// NewRescheduleService builds the only writer of task due dates on a
// workload board. One instance must be shared by every caller so the
// per-assignee lock covers them all.
func NewRescheduleService(
	tasks repository.TaskRepo,
	workload WorkloadService,
	observers ...UseCaseObserver,
) RescheduleService {
	return &rescheduleService{
		tasks:    tasks,
		workload: workload,
		locks:    newAssigneeLocks(),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Reschedule persists the new due date, then reloads and recomputes the
// assignee's schedule, all under the assignee's lock. A second call for the
// same assignee fails with ErrRescheduleInFlight until the first returns.
// A task that belongs to someone else is treated as not found.
//
// When the store fails, the error wraps ErrPersistence and the response still
// carries the schedule from a reload, if that reload worked.
func (s *rescheduleService) Reschedule(ctx context.Context, req app.RescheduleRequest) (resp *app.RescheduleResponse, err error) {
	startedAt := time.Now().UTC()
	opID := uuid.NewString()
	outcome := telemetry.OutcomeApplied
	fields := map[string]any{
		"operation_id": opID,
		"assignee":     req.AssigneeKey,
		"task_id":      req.TaskID,
		"to_backlog":   req.NewDueDate == nil,
	}
	defer func() {
		telemetry.Reschedules.WithLabelValues(outcome).Inc()
		fields["outcome"] = outcome
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "reschedule",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	release, ok := s.locks.tryAcquire(req.AssigneeKey)
	if !ok {
		outcome = telemetry.OutcomeInFlight
		return nil, fmt.Errorf("assignee %q: %w", req.AssigneeKey, ErrRescheduleInFlight)
	}
	defer release()
	telemetry.ReschedulesInFlight.Inc()
	defer telemetry.ReschedulesInFlight.Dec()

	var due *time.Time
	if req.NewDueDate != nil {
		d := domain.DateOf(*req.NewDueDate)
		due = &d
		fields["due_date"] = domain.FormatDate(d)
	}

	resp = &app.RescheduleResponse{
		OperationID: opID,
		TaskID:      req.TaskID,
		NewDueDate:  due,
	}

	persistErr := s.ownedBy(ctx, req.TaskID, req.AssigneeKey)
	if persistErr == nil {
		persistErr = s.tasks.SetDueDate(ctx, req.TaskID, due)
	}

	sched, reloadErr := s.workload.Compute(ctx, app.ScheduleRequest{
		AssigneeKey: req.AssigneeKey,
		Start:       req.Start,
		Days:        req.Days,
	})
	if reloadErr == nil {
		resp.Schedule = sched
	}

	if persistErr != nil {
		outcome = telemetry.OutcomeFailed
		if errors.Is(persistErr, repository.ErrNotFound) {
			outcome = telemetry.OutcomeNotFound
		}
		return resp, fmt.Errorf("%w: %w", ErrPersistence, persistErr)
	}
	resp.Applied = true

	if reloadErr != nil {
		return resp, fmt.Errorf("reloading schedule: %w", reloadErr)
	}
	return resp, nil
}

// ownedBy reports ErrNotFound when the task is not on the assignee's board,
// so a drop never writes outside the lock it holds.
func (s *rescheduleService) ownedBy(ctx context.Context, taskID int64, assigneeKey string) error {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if !t.AssignedTo(assigneeKey) {
		return fmt.Errorf("task %d is not assigned to %q: %w", taskID, assigneeKey, repository.ErrNotFound)
	}
	return nil
}
