package domain

type Priority int

const (
	PriorityCritical Priority = 1
	PriorityHigh     Priority = 2
	PriorityNormal   Priority = 3
	PriorityLow      Priority = 4
	PriorityNone     Priority = 5
)

// Valid reports whether p is in the 1..5 range.
func (p Priority) Valid() bool {
	return p >= PriorityCritical && p <= PriorityNone
}

// Rank returns the sort rank for p. Out-of-range values rank as PriorityNone.
func (p Priority) Rank() int {
	if !p.Valid() {
		return int(PriorityNone)
	}
	return int(p)
}

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	case PriorityLow:
		return "low"
	case PriorityNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParsePriority accepts either a number ("1".."5") or a name ("critical").
func ParsePriority(s string) (Priority, bool) {
	switch s {
	case "1", "critical":
		return PriorityCritical, true
	case "2", "high":
		return PriorityHigh, true
	case "3", "normal":
		return PriorityNormal, true
	case "4", "low":
		return PriorityLow, true
	case "5", "none":
		return PriorityNone, true
	}
	return 0, false
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCanceled   TaskStatus = "canceled"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[string]bool{
	"pending": true, "todo": true, "in_progress": true,
	"completed": true, "canceled": true,
}

type AssigneeRole string

const (
	RoleMember AssigneeRole = "member"
	RoleClient AssigneeRole = "client"
)
