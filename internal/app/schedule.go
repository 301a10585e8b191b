package app

import (
	"time"

	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/alexanderramin/loadboard/internal/scheduler"
)

type ScheduleRequest struct {
	AssigneeKey string
	// Start is the first window day; nil means today.
	Start *time.Time
	// Days is the window length; zero uses the configured horizon.
	Days int
}

func NewScheduleRequest(assigneeKey string) ScheduleRequest {
	return ScheduleRequest{AssigneeKey: assigneeKey}
}

type ScheduleResponse struct {
	GeneratedAt time.Time
	Assignee    domain.Assignee
	Schedule    scheduler.Schedule
}
