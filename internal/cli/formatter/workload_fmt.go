package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/loadboard/internal/board"
	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/alexanderramin/loadboard/internal/scheduler"
)

const loadBarWidth = 10

// FormatBoard renders an assignee's board as a day table followed by the
// backlog and any placement failures.
func FormatBoard(b board.Board, assigneeName string, today time.Time) string {
	var sb strings.Builder

	title := assigneeName
	if title == "" {
		title = b.AssigneeKey
	}
	sb.WriteString(Header("Workload · " + title))
	sb.WriteString("\n")
	sb.WriteString(formatSummary(b.Summary))
	sb.WriteString("\n\n")

	rows := make([][]string, 0, len(b.Columns))
	for _, c := range b.Columns {
		rows = append(rows, []string{
			dayCell(c),
			RenderLoadBar(c.UsedHours, c.CapacityHours, loadBarWidth, c.IsOverCapacity),
			cardsCell(c.Cards),
		})
	}
	sb.WriteString(RenderTable([]string{"DAY", "LOAD", "TASKS"}, rows))

	if len(b.Backlog) > 0 {
		sb.WriteString("\n")
		sb.WriteString(FormatBacklog(b.Backlog, today))
	}
	if len(b.Failures) > 0 {
		sb.WriteString("\n")
		sb.WriteString(formatFailures(b.Failures))
	}
	return sb.String()
}

// FormatBacklog renders unscheduled tasks with the reason each is there.
func FormatBacklog(cards []board.BacklogCard, today time.Time) string {
	var sb strings.Builder
	sb.WriteString(Header(fmt.Sprintf("Backlog (%d)", len(cards))))
	sb.WriteString("\n")

	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		est := FormatHours(c.EstimatedHours)
		if c.MissingEstimate {
			est = StyleYellow.Render("no estimate")
		}
		due := Dim("--")
		if c.DueDate != "" {
			if d, err := domain.ParseDate(c.DueDate); err == nil {
				due = DueDateStyled(&d, "", today)
			} else {
				due = DueDateStyled(nil, c.DueDate, today)
			}
		}
		reason := reasonLabel(c.Reason)
		if c.UnscheduledHours > 0 {
			reason += Dim(fmt.Sprintf(" (%s left)", FormatHours(c.UnscheduledHours)))
		}
		rows = append(rows, []string{
			fmt.Sprintf("#%d", c.TaskID),
			PriorityBadge(domain.Priority(c.Priority)),
			Truncate(c.Title, 40),
			est,
			due,
			reason,
		})
	}
	sb.WriteString(RenderTable([]string{"ID", "PRI", "TITLE", "EST", "DUE", "WHY"}, rows, AlignRight(3)))
	return sb.String()
}

// FormatDropResult summarizes a move for the plain CLI.
func FormatDropResult(taskID int64, newDue *time.Time, applied bool, opID string) string {
	target := "backlog"
	if newDue != nil {
		target = domain.FormatDate(*newDue)
	}
	if !applied {
		return StyleRed.Render(fmt.Sprintf("✖ Task #%d was not moved to %s", taskID, target)) +
			Dim(" (op "+shortOp(opID)+")")
	}
	return StyleGreen.Render(fmt.Sprintf("✔ Task #%d moved to %s", taskID, target)) +
		Dim(" (op "+shortOp(opID)+")")
}

func formatSummary(s board.Summary) string {
	parts := []string{
		fmt.Sprintf("%d tasks", s.TaskCount),
		fmt.Sprintf("%s estimated", FormatHours(s.TotalEstimatedHours)),
		fmt.Sprintf("%s scheduled", FormatHours(s.ScheduledHours)),
		fmt.Sprintf("%s/day", FormatHours(s.CapacityHours)),
	}
	line := Dim(strings.Join(parts, " · "))
	if s.BacklogCount > 0 {
		line += Dim(" · ") + StyleYellow.Render(fmt.Sprintf("%d in backlog", s.BacklogCount))
	}
	if s.FailureCount > 0 {
		line += Dim(" · ") + StyleRed.Render(fmt.Sprintf("%d could not be placed", s.FailureCount))
	}
	return line
}

func formatFailures(fs []board.Failure) string {
	var sb strings.Builder
	sb.WriteString(StyleRed.Render("Could not place every hour:"))
	sb.WriteString("\n")
	for _, f := range fs {
		sb.WriteString(fmt.Sprintf("  #%d %s: %s of %s placed, %s left\n",
			f.TaskID, f.Title, FormatHours(f.PlacedHours), FormatHours(f.EstimatedHours), FormatHours(f.UnscheduledHours)))
	}
	return sb.String()
}

func dayCell(c board.Column) string {
	label := c.Label
	switch {
	case c.IsToday:
		return StyleHeader.Render(label + " •")
	case c.IsWeekend:
		return Dim(label)
	}
	return StyleFg.Render(label)
}

func cardsCell(cards []board.Card) string {
	if len(cards) == 0 {
		return Dim("·")
	}
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		parts = append(parts, CardLabel(c))
	}
	return strings.Join(parts, Dim(", "))
}

// CardLabel renders one card as "#12 Title 4h" with the split part when the
// task spans days.
func CardLabel(c board.Card) string {
	label := fmt.Sprintf("%s %s %s",
		PriorityColor(domain.Priority(c.Priority)).Render(fmt.Sprintf("#%d", c.TaskID)),
		Truncate(c.Title, 24),
		FormatHours(c.Hours))
	if c.PartLabel != "" {
		label += Dim(" (" + c.PartLabel + ")")
	}
	return label
}

func reasonLabel(reason string) string {
	switch scheduler.BacklogReason(reason) {
	case scheduler.ReasonNoDueDate:
		return Dim("no due date")
	case scheduler.ReasonDueBeforeWindow:
		return StyleYellow.Render("overdue")
	case scheduler.ReasonNoEstimate:
		return StyleYellow.Render("needs estimate")
	case scheduler.ReasonMalformedEstimate:
		return StyleRed.Render("bad estimate")
	case scheduler.ReasonMalformedDueDate:
		return StyleRed.Render("bad due date")
	case scheduler.ReasonPlacementExhausted:
		return StyleRed.Render("no room")
	}
	return Dim(reason)
}

func shortOp(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
