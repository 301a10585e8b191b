package scheduler

import (
	"time"

	"github.com/alexanderramin/loadboard/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type taskOpt func(*domain.Task)

func due(t time.Time) taskOpt {
	return func(task *domain.Task) { task.DueDate = &t }
}

func hours(h float64) taskOpt {
	return func(task *domain.Task) { task.EstimatedHours = h }
}

func prio(p domain.Priority) taskOpt {
	return func(task *domain.Task) { task.Priority = p }
}

func newTask(id int64, title string, opts ...taskOpt) domain.Task {
	t := domain.Task{
		ID:          id,
		Title:       title,
		AssigneeKey: "ana",
		Priority:    domain.PriorityNormal,
		Status:      domain.TaskTodo,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func ana(capacity float64) domain.Assignee {
	return domain.Assignee{Key: "ana", Name: "Ana", Role: domain.RoleMember, DailyCapacityHours: capacity}
}
