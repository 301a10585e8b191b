package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/loadboard/internal/app"
	"github.com/alexanderramin/loadboard/internal/domain"
)

// backlogTarget is the move target that clears a due date.
const backlogTarget = "backlog"

// windowFlags are the --start and --days flags shared by plan, move and board.
type windowFlags struct {
	start string
	days  int
}

func (w *windowFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&w.start, "start", "", "first day of the board (YYYY-MM-DD, today, tomorrow); default today")
	cmd.Flags().IntVar(&w.days, "days", 0, "number of days shown; default from config")
}

func (w *windowFlags) apply(now time.Time, start **time.Time, days *int) error {
	if w.days < 0 {
		return fmt.Errorf("--days must be positive, got %d", w.days)
	}
	*days = w.days
	if w.start == "" {
		return nil
	}
	d, err := parseDay(w.start, now)
	if err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	*start = &d
	return nil
}

func (w *windowFlags) scheduleRequest(assignee string, now time.Time) (app.ScheduleRequest, error) {
	req := app.NewScheduleRequest(assignee)
	err := w.apply(now, &req.Start, &req.Days)
	return req, err
}

// parseDay accepts YYYY-MM-DD, "today" or "tomorrow".
func parseDay(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return domain.DateOf(now), nil
	case "tomorrow":
		return domain.DateOf(now).AddDate(0, 0, 1), nil
	}
	return domain.ParseDate(strings.TrimSpace(s))
}

// parseMoveTarget returns nil for the backlog.
func parseMoveTarget(s string, now time.Time) (*time.Time, error) {
	if strings.EqualFold(strings.TrimSpace(s), backlogTarget) {
		return nil, nil
	}
	d, err := parseDay(s, now)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

func parseHours(s string) (float64, error) {
	h, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "h"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q", s)
	}
	return h, nil
}
