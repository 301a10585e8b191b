package scheduler

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/loadboard/internal/domain"
)

// BacklogReason explains why a task has no day assignment.
type BacklogReason string

const (
	ReasonNoDueDate          BacklogReason = "no_due_date"
	ReasonDueBeforeWindow    BacklogReason = "due_before_window"
	ReasonNoEstimate         BacklogReason = "no_estimate"
	ReasonMalformedEstimate  BacklogReason = "malformed_estimate"
	ReasonMalformedDueDate   BacklogReason = "malformed_due_date"
	ReasonPlacementExhausted BacklogReason = "placement_exhausted"
)

// BacklogEntry is a task left out of day-by-day placement.
type BacklogEntry struct {
	Task       domain.Task
	Reason     BacklogReason
	Diagnostic string
	// UnscheduledHours is set for ReasonPlacementExhausted only.
	UnscheduledHours float64
}

// Classification splits a person's tasks into placeable and backlog sets.
type Classification struct {
	Schedulable []domain.Task
	Backlog     []BacklogEntry
}

// Classify partitions tasks against the window's first day. Schedulable
// tasks come back with their due date truncated to a calendar date and in
// placement order; backlog entries in display order.
func Classify(tasks []domain.Task, windowStart time.Time) Classification {
	start := domain.DateOf(windowStart)

	var c Classification
	for _, t := range tasks {
		if entry, ok := backlogEntryFor(t, start); ok {
			c.Backlog = append(c.Backlog, entry)
			continue
		}
		due := domain.DateOf(*t.DueDate)
		t.DueDate = &due
		c.Schedulable = append(c.Schedulable, t)
	}

	SortSchedulable(c.Schedulable)
	SortBacklog(c.Backlog)
	return c
}

func backlogEntryFor(t domain.Task, windowStart time.Time) (BacklogEntry, bool) {
	switch {
	case t.InvalidDueDate != "":
		return BacklogEntry{
			Task:       t,
			Reason:     ReasonMalformedDueDate,
			Diagnostic: fmt.Sprintf("due date %q is not a valid YYYY-MM-DD date", t.InvalidDueDate),
		}, true
	case math.IsNaN(t.EstimatedHours) || math.IsInf(t.EstimatedHours, 0) || t.EstimatedHours < 0:
		return BacklogEntry{
			Task:       t,
			Reason:     ReasonMalformedEstimate,
			Diagnostic: fmt.Sprintf("estimated hours %v is not a non-negative number", t.EstimatedHours),
		}, true
	case t.DueDate == nil:
		return BacklogEntry{Task: t, Reason: ReasonNoDueDate}, true
	case domain.DateOf(*t.DueDate).Before(windowStart):
		return BacklogEntry{Task: t, Reason: ReasonDueBeforeWindow}, true
	case t.EstimatedHours == 0:
		return BacklogEntry{Task: t, Reason: ReasonNoEstimate}, true
	}
	return BacklogEntry{}, false
}

// SortSchedulable orders tasks for placement:
// 1. Due date: earliest first
// 2. Priority: 1 (critical) first
// 3. ID: descending, so newer tasks win ties
func SortSchedulable(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		if !a.DueDate.Equal(*b.DueDate) {
			return a.DueDate.Before(*b.DueDate)
		}
		if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
			return ra < rb
		}
		return a.ID > b.ID
	})
}

// SortBacklog orders backlog entries by priority, then title, then ID.
func SortBacklog(entries []BacklogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Task, entries[j].Task

		if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
			return ra < rb
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})
}
