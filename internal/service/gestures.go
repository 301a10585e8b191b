package service

import (
	"context"
	"time"

	"github.com/alexanderramin/loadboard/internal/app"
)

// Gestures translates drag-and-drop on one assignee's board into reschedules.
type Gestures struct {
	AssigneeKey string
	// Start and Days describe the window the board is showing.
	Start *time.Time
	Days  int

	reschedule RescheduleService
}

func NewGestures(reschedule RescheduleService, assigneeKey string) *Gestures {
	return &Gestures{AssigneeKey: assigneeKey, reschedule: reschedule}
}

// OnDropOnDay makes day the task's new due date.
func (g *Gestures) OnDropOnDay(ctx context.Context, taskID int64, day time.Time) (*app.RescheduleResponse, error) {
	req := app.NewDropOnDay(g.AssigneeKey, taskID, day)
	req.Start, req.Days = g.Start, g.Days
	return g.reschedule.Reschedule(ctx, req)
}

// OnDropOnBacklog clears the task's due date.
func (g *Gestures) OnDropOnBacklog(ctx context.Context, taskID int64) (*app.RescheduleResponse, error) {
	req := app.NewDropOnBacklog(g.AssigneeKey, taskID)
	req.Start, req.Days = g.Start, g.Days
	return g.reschedule.Reschedule(ctx, req)
}
