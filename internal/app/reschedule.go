package app

import (
	"time"
)

// RescheduleRequest moves one task on an assignee's board. A nil NewDueDate
// sends the task to the backlog.
type RescheduleRequest struct {
	AssigneeKey string
	TaskID      int64
	NewDueDate  *time.Time

	// Window of the schedule returned after the move.
	Start *time.Time
	Days  int
}

func NewDropOnDay(assigneeKey string, taskID int64, day time.Time) RescheduleRequest {
	return RescheduleRequest{AssigneeKey: assigneeKey, TaskID: taskID, NewDueDate: &day}
}

func NewDropOnBacklog(assigneeKey string, taskID int64) RescheduleRequest {
	return RescheduleRequest{AssigneeKey: assigneeKey, TaskID: taskID}
}

type RescheduleResponse struct {
	OperationID string
	TaskID      int64
	NewDueDate  *time.Time
	// Applied is false when the store rejected the change. Schedule then
	// holds whatever a reload after the failure produced.
	Applied  bool
	Schedule *ScheduleResponse
}
