package domain

import "math"

const (
	// DefaultDailyCapacityHours applies when an assignee has no capacity set.
	DefaultDailyCapacityHours = 8.0
	// MinDailyCapacityHours is the floor a zero or negative capacity is raised to.
	MinDailyCapacityHours = 0.5
)

type Assignee struct {
	Key                string
	Name               string
	Role               AssigneeRole
	DailyCapacityHours float64
}

// Plannable reports whether the assignee gets a workload board.
func (a *Assignee) Plannable() bool {
	return a.Role != RoleClient
}

// EffectiveCapacity returns the daily capacity clamped to MinDailyCapacityHours.
func (a *Assignee) EffectiveCapacity() float64 {
	return ClampCapacity(a.DailyCapacityHours)
}

// ClampCapacity raises zero, negative or NaN capacities to MinDailyCapacityHours.
// An infinite capacity falls back to DefaultDailyCapacityHours.
func ClampCapacity(hours float64) float64 {
	switch {
	case math.IsNaN(hours) || hours <= 0:
		return MinDailyCapacityHours
	case math.IsInf(hours, 1):
		return DefaultDailyCapacityHours
	}
	return hours
}
