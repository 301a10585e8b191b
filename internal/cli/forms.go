package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/loadboard/internal/cli/formatter"
	"github.com/alexanderramin/loadboard/internal/domain"
)

// loadboardHuhTheme returns a huh theme using the Gruvbox palette.
func loadboardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// taskDraft holds the string fields of the task add form.
type taskDraft struct {
	Title    string
	Assignee string
	Hours    string
	Due      string
	Priority domain.Priority
	Client   string
}

// taskAddForm asks for whatever the flags left out. assignees are offered
// as options; an empty list falls back to a free text input.
func taskAddForm(d *taskDraft, assignees []*domain.Assignee) *huh.Form {
	var who huh.Field
	if len(assignees) > 0 {
		opts := make([]huh.Option[string], 0, len(assignees)+1)
		opts = append(opts, huh.NewOption("(unassigned)", ""))
		for _, a := range assignees {
			if a.Plannable() {
				opts = append(opts, huh.NewOption(a.Name+" ("+a.Key+")", a.Key))
			}
		}
		who = huh.NewSelect[string]().Title("Assignee").Options(opts...).Value(&d.Assignee)
	} else {
		who = huh.NewInput().Title("Assignee key").Value(&d.Assignee)
	}

	if d.Priority == 0 {
		d.Priority = domain.PriorityNormal
	}
	priorities := make([]huh.Option[domain.Priority], 0, 5)
	for p := domain.PriorityCritical; p <= domain.PriorityNone; p++ {
		priorities = append(priorities, huh.NewOption(p.String(), p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&d.Title).Validate(validateRequired),
			who,
			huh.NewInput().Title("Estimated hours").Placeholder("4").Value(&d.Hours).Validate(validateOptionalHours),
			huh.NewInput().Title("Due date (YYYY-MM-DD, blank for backlog)").Placeholder("2026-06-30").
				Value(&d.Due).Validate(validateOptionalDate),
			huh.NewSelect[domain.Priority]().Title("Priority").Options(priorities...).Value(&d.Priority),
			huh.NewInput().Title("Client").Value(&d.Client),
		),
	).WithTheme(loadboardHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

// validateOptionalHours accepts empty or a non-negative number.
func validateOptionalHours(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := parseHours(s)
	if err != nil || v < 0 {
		return errors.New("enter a non-negative number of hours")
	}
	return nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date.
func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(domain.DateLayout, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD format")
	}
	return nil
}
