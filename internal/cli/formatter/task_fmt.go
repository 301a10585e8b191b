package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/loadboard/internal/domain"
)

// FormatTaskList renders tasks as a table.
func FormatTaskList(tasks []domain.Task, today time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks.") + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		est := FormatHours(t.EstimatedHours)
		if !t.HasUsableEstimate() {
			est = StyleYellow.Render(est)
		}
		rows = append(rows, []string{
			fmt.Sprintf("#%d", t.ID),
			PriorityBadge(t.Priority),
			Truncate(t.Title, 40),
			t.AssigneeKey,
			est,
			DueDateStyled(t.DueDate, t.InvalidDueDate, today),
			TaskStatusPill(t.Status),
		})
	}
	return RenderTable([]string{"ID", "PRI", "TITLE", "ASSIGNEE", "EST", "DUE", "STATUS"}, rows, AlignRight(4))
}

// FormatTask renders one task's details in a box.
func FormatTask(t *domain.Task, today time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(t.Title), Dim(fmt.Sprintf("#%d", t.ID))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("STATUS  "), TaskStatusPill(t.Status)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("ASSIGNEE"), t.AssigneeKey))
	b.WriteString(fmt.Sprintf("  %s  %s %s\n", Dim("PRIORITY"), PriorityBadge(t.Priority), Dim(t.Priority.String())))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("ESTIMATE"), FormatHours(t.EstimatedHours)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("DUE     "), DueDateStyled(t.DueDate, t.InvalidDueDate, today)))
	if t.Client != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("CLIENT  "), t.Client))
	}
	if t.Description != "" {
		b.WriteString("\n" + t.Description)
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n")) + "\n"
}

// FormatAssigneeList renders assignees with their daily capacity.
func FormatAssigneeList(as []*domain.Assignee) string {
	if len(as) == 0 {
		return Dim("No assignees.") + "\n"
	}
	rows := make([][]string, 0, len(as))
	for _, a := range as {
		capacity := FormatHours(a.DailyCapacityHours)
		if a.EffectiveCapacity() != a.DailyCapacityHours {
			capacity += Dim(fmt.Sprintf(" (uses %s)", FormatHours(a.EffectiveCapacity())))
		}
		role := StyleGreen.Render(string(a.Role))
		if !a.Plannable() {
			role = Dim(string(a.Role))
		}
		rows = append(rows, []string{a.Key, a.Name, role, capacity})
	}
	return RenderTable([]string{"KEY", "NAME", "ROLE", "HOURS/DAY"}, rows)
}
