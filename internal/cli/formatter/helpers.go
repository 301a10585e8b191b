package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeDay describes day relative to today in calendar days.
func RelativeDay(day, today time.Time) string {
	days := int(math.Round(domain.DateOf(day).Sub(domain.DateOf(today)).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DueDateStyled renders a due date with urgency coloring relative to today.
func DueDateStyled(due *time.Time, invalid string, today time.Time) string {
	if due == nil {
		if invalid != "" {
			return StyleRed.Render("invalid: " + invalid)
		}
		return Dim("--")
	}
	text := fmt.Sprintf("%s (%s)", domain.FormatDate(*due), RelativeDay(*due, today))
	days := int(math.Round(domain.DateOf(*due).Sub(domain.DateOf(today)).Hours() / 24))
	switch {
	case days <= 1:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	}
	return StyleFg.Render(text)
}

// TaskStatusPill returns a colored status indicator for a task.
func TaskStatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskPending:
		return StyleDim.Render("○ Pending")
	case domain.TaskTodo:
		return StyleBlue.Render("○ Todo")
	case domain.TaskInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.TaskCompleted:
		return StyleDim.Render("✔ Done")
	case domain.TaskCanceled:
		return StyleDim.Render("✖ Canceled")
	default:
		return StyleDim.Render(string(status))
	}
}

// FormatHours renders hours compactly: "4h", "2.5h", "0.25h".
// Non-finite values render as "?".
func FormatHours(h float64) string {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return "?"
	}
	return strconv.FormatFloat(math.Round(h*100)/100, 'f', -1, 64) + "h"
}

// Truncate shortens s to at most width visible cells, adding an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
