// Package board turns a computed schedule into the view model every
// renderer shares: terminal table, interactive board and JSON API.
package board

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/alexanderramin/loadboard/internal/scheduler"
)

// OverCapacityEpsilon is the tolerance of the over-capacity diagnostic.
const OverCapacityEpsilon = 1e-6

type Card struct {
	TaskID        int64   `json:"task_id"`
	Title         string  `json:"title"`
	Hours         float64 `json:"hours"`
	Priority      int     `json:"priority"`
	PriorityLabel string  `json:"priority_label"`
	SplitIndex    int     `json:"split_index"`
	IsSplit       bool    `json:"is_split"`
	PartLabel     string  `json:"part_label,omitempty"`
}

type Column struct {
	Date          string  `json:"date"`
	Label         string  `json:"label"`
	IsToday       bool    `json:"is_today"`
	IsWeekend     bool    `json:"is_weekend"`
	UsedHours     float64 `json:"used_hours"`
	CapacityHours float64 `json:"capacity_hours"`
	// IsOverCapacity should never be true; it flags a scheduling bug.
	IsOverCapacity bool   `json:"is_over_capacity"`
	Cards          []Card `json:"cards"`
}

type BacklogCard struct {
	TaskID           int64   `json:"task_id"`
	Title            string  `json:"title"`
	Client           string  `json:"client,omitempty"`
	EstimatedHours   float64 `json:"estimated_hours"`
	MissingEstimate  bool    `json:"missing_estimate"`
	Priority         int     `json:"priority"`
	PriorityLabel    string  `json:"priority_label"`
	DueDate          string  `json:"due_date,omitempty"`
	Reason           string  `json:"reason"`
	Diagnostic       string  `json:"diagnostic,omitempty"`
	UnscheduledHours float64 `json:"unscheduled_hours,omitempty"`
}

type Failure struct {
	TaskID           int64   `json:"task_id"`
	Title            string  `json:"title"`
	EstimatedHours   float64 `json:"estimated_hours"`
	PlacedHours      float64 `json:"placed_hours"`
	UnscheduledHours float64 `json:"unscheduled_hours"`
}

type Summary struct {
	TaskCount           int     `json:"task_count"`
	TotalEstimatedHours float64 `json:"total_estimated_hours"`
	CapacityHours       float64 `json:"capacity_hours"`
	ScheduledHours      float64 `json:"scheduled_hours"`
	BacklogCount        int     `json:"backlog_count"`
	FailureCount        int     `json:"failure_count"`
}

type Board struct {
	AssigneeKey string        `json:"assignee"`
	WindowStart string        `json:"window_start"`
	Days        int           `json:"days"`
	Columns     []Column      `json:"columns"`
	Backlog     []BacklogCard `json:"backlog"`
	Failures    []Failure     `json:"failures"`
	Summary     Summary       `json:"summary"`
}

// Build maps s to a Board. Only the visible window becomes columns; hours
// that spilled past it are still counted in the failures and summary that
// the scheduler produced.
func Build(s scheduler.Schedule, today time.Time) Board {
	todayKey := domain.FormatDate(today)

	b := Board{
		AssigneeKey: s.AssigneeKey,
		WindowStart: domain.FormatDate(s.WindowStart),
		Days:        s.WindowLength,
		Columns:     make([]Column, 0, s.WindowLength),
		Backlog:     make([]BacklogCard, 0, len(s.Backlog)),
		Failures:    make([]Failure, 0, len(s.Failures)),
		Summary: Summary{
			TaskCount:           s.Summary.TaskCount,
			TotalEstimatedHours: s.Summary.TotalEstimatedHours,
			CapacityHours:       s.Summary.CapacityHours,
			ScheduledHours:      s.Summary.ScheduledHours,
			BacklogCount:        s.Summary.BacklogCount,
			FailureCount:        s.Summary.FailureCount,
		},
	}

	for _, d := range s.Visible() {
		key := domain.FormatDate(d.Day)
		col := Column{
			Date:           key,
			Label:          DayLabel(d.Day),
			IsToday:        key == todayKey,
			IsWeekend:      d.IsWeekend,
			UsedHours:      d.UsedHours,
			CapacityHours:  d.CapacityHours,
			IsOverCapacity: d.UsedHours > d.CapacityHours+OverCapacityEpsilon,
			Cards:          make([]Card, 0, len(d.Segments)),
		}
		for _, seg := range d.Segments {
			col.Cards = append(col.Cards, cardFor(seg))
		}
		b.Columns = append(b.Columns, col)
	}

	for _, e := range s.Backlog {
		b.Backlog = append(b.Backlog, backlogCardFor(e))
	}

	for _, f := range s.Failures {
		b.Failures = append(b.Failures, Failure{
			TaskID:           f.TaskID,
			Title:            f.Title,
			EstimatedHours:   f.EstimatedHours,
			PlacedHours:      f.PlacedHours,
			UnscheduledHours: f.UnscheduledHours,
		})
	}
	return b
}

// ColumnIndex returns the index of the column for date, or -1.
func (b Board) ColumnIndex(date string) int {
	for i, c := range b.Columns {
		if c.Date == date {
			return i
		}
	}
	return -1
}

// DayLabel renders a day header such as "Mon 2".
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Weekday().String()[:3], t.Day())
}

// PartLabel names the piece of a split task.
func PartLabel(splitIndex int) string {
	return fmt.Sprintf("Part %d", splitIndex)
}

func cardFor(seg scheduler.Segment) Card {
	c := Card{
		TaskID:        seg.TaskID,
		Title:         seg.Title,
		Hours:         seg.AllocatedHours,
		Priority:      int(seg.Priority),
		PriorityLabel: seg.Priority.String(),
		SplitIndex:    seg.SplitIndex,
		IsSplit:       seg.IsSplitTask,
	}
	if seg.IsSplitTask {
		c.PartLabel = PartLabel(seg.SplitIndex)
	}
	return c
}

func backlogCardFor(e scheduler.BacklogEntry) BacklogCard {
	t := e.Task
	c := BacklogCard{
		TaskID:           t.ID,
		Title:            t.Title,
		Client:           t.Client,
		EstimatedHours:   t.EstimatedHours,
		MissingEstimate:  !t.HasUsableEstimate(),
		Priority:         int(t.Priority),
		PriorityLabel:    t.Priority.String(),
		Reason:           string(e.Reason),
		Diagnostic:       e.Diagnostic,
		UnscheduledHours: e.UnscheduledHours,
	}
	if math.IsNaN(c.EstimatedHours) || math.IsInf(c.EstimatedHours, 0) {
		// Not representable in JSON; the diagnostic keeps the raw value.
		c.EstimatedHours = 0
	}
	switch {
	case t.DueDate != nil:
		c.DueDate = domain.FormatDate(*t.DueDate)
	case t.InvalidDueDate != "":
		c.DueDate = t.InvalidDueDate
	}
	return c
}
