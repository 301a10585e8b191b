package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/loadboard/internal/app"
	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/alexanderramin/loadboard/internal/repository"
	"github.com/alexanderramin/loadboard/internal/scheduler"
	"github.com/alexanderramin/loadboard/internal/telemetry"
)

// WorkloadOptions tunes schedule computation. Zero values take the
// scheduler defaults.
type WorkloadOptions struct {
	HorizonDays    int
	MaxDayAdvances int
	// Now overrides the clock used for "today".
	Now func() time.Time
}

type workloadService struct {
	tasks     repository.TaskRepo
	assignees repository.AssigneeRepo
	opts      WorkloadOptions
	observer  UseCaseObserver
}

func NewWorkloadService(
	tasks repository.TaskRepo,
	assignees repository.AssigneeRepo,
	opts WorkloadOptions,
	observers ...UseCaseObserver,
) WorkloadService {
	if opts.HorizonDays <= 0 {
		opts.HorizonDays = scheduler.DefaultHorizonDays
	}
	if opts.MaxDayAdvances <= 0 {
		opts.MaxDayAdvances = scheduler.DefaultMaxDayAdvances
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &workloadService{
		tasks:     tasks,
		assignees: assignees,
		opts:      opts,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *workloadService) Compute(ctx context.Context, req app.ScheduleRequest) (resp *app.ScheduleResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"assignee": req.AssigneeKey}
	defer func() {
		duration := time.Since(startedAt)
		telemetry.ScheduleDurationSeconds.Observe(duration.Seconds())
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "compute_schedule",
			StartedAt: startedAt,
			Duration:  duration,
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	assignee, err := s.loadAssignee(ctx, req.AssigneeKey)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListActiveByAssignee(ctx, assignee.Key)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	// "today" is the calendar date on the local clock.
	now := s.opts.Now()
	start := domain.DateOf(now)
	if req.Start != nil {
		start = *req.Start
	}
	days := req.Days
	if days <= 0 {
		days = s.opts.HorizonDays
	}

	sched := scheduler.ComputeSchedule(tasks, *assignee, start, days,
		scheduler.WithMaxDayAdvances(s.opts.MaxDayAdvances))

	telemetry.SchedulesComputed.Inc()
	telemetry.PlacementFailures.Add(float64(len(sched.Failures)))
	for _, e := range sched.Backlog {
		telemetry.BacklogTasks.WithLabelValues(string(e.Reason)).Inc()
	}

	fields["tasks"] = len(tasks)
	fields["backlog"] = len(sched.Backlog)
	fields["failures"] = len(sched.Failures)

	return &app.ScheduleResponse{
		GeneratedAt: now.UTC(),
		Assignee:    *assignee,
		Schedule:    sched,
	}, nil
}

func (s *workloadService) loadAssignee(ctx context.Context, key string) (*domain.Assignee, error) {
	a, err := s.assignees.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%q: %w", key, ErrAssigneeNotFound)
		}
		return nil, fmt.Errorf("loading assignee: %w", err)
	}
	if !a.Plannable() {
		return nil, fmt.Errorf("%q: %w", key, ErrAssigneeNotPlannable)
	}
	return a, nil
}
