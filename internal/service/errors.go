package service

import "errors"

var (
	// ErrRescheduleInFlight rejects a drop while another reschedule for the
	// same assignee has not finished.
	ErrRescheduleInFlight = errors.New("a reschedule for this assignee is already in flight")
	// ErrPersistence wraps failures of the store during a reschedule.
	ErrPersistence = errors.New("persisting reschedule")

	ErrAssigneeNotFound     = errors.New("assignee not found")
	ErrAssigneeNotPlannable = errors.New("assignee has no workload board")
	ErrInvalidInput         = errors.New("invalid input")
)
