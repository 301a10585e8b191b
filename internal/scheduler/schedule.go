package scheduler

import (
	"time"

	"github.com/alexanderramin/loadboard/internal/domain"
)

// Options tunes a scheduling pass.
type Options struct {
	MaxDayAdvances int
}

// Option mutates Options.
type Option func(*Options)

// WithMaxDayAdvances overrides the per-task day-advance budget.
func WithMaxDayAdvances(n int) Option {
	return func(o *Options) {
		o.MaxDayAdvances = n
	}
}

// DefaultOptions returns the options used when none are supplied.
func DefaultOptions() Options {
	return Options{MaxDayAdvances: DefaultMaxDayAdvances}
}

func (o Options) maxDayAdvances() int {
	if o.MaxDayAdvances <= 0 {
		return DefaultMaxDayAdvances
	}
	return o.MaxDayAdvances
}

// Summary carries the header figures of a workload board.
type Summary struct {
	TaskCount           int
	TotalEstimatedHours float64
	CapacityHours       float64
	ScheduledHours      float64 // inside the visible window
	BacklogCount        int
	FailureCount        int
}

// Schedule is the full result of one scheduling pass for one assignee.
type Schedule struct {
	AssigneeKey   string
	WindowStart   time.Time
	WindowLength  int
	CapacityHours float64
	Days          []DayBucket
	Backlog       []BacklogEntry
	Failures      []PlacementFailure
	Summary       Summary
}

// WindowEnd returns the first day after the visible window.
func (s *Schedule) WindowEnd() time.Time {
	return s.WindowStart.AddDate(0, 0, s.WindowLength)
}

// Visible returns the buckets inside the window, in order.
func (s *Schedule) Visible() []DayBucket {
	end := s.WindowEnd()
	out := make([]DayBucket, 0, s.WindowLength)
	for _, d := range s.Days {
		if !d.Day.Before(s.WindowStart) && d.Day.Before(end) {
			out = append(out, d)
		}
	}
	return out
}

// Bucket returns the bucket for day, including days past the window.
func (s *Schedule) Bucket(day time.Time) (*DayBucket, bool) {
	day = domain.DateOf(day)
	for i := range s.Days {
		if s.Days[i].Day.Equal(day) {
			return &s.Days[i], true
		}
	}
	return nil, false
}

// SegmentsFor returns a task's segments in day order.
func (s *Schedule) SegmentsFor(taskID int64) []Segment {
	var out []Segment
	for _, d := range s.Days {
		for _, seg := range d.Segments {
			if seg.TaskID == taskID {
				out = append(out, seg)
			}
		}
	}
	return out
}

// ComputeSchedule runs a full scheduling pass for one assignee: it keeps the
// assignee's active tasks, clamps the capacity, builds the window, classifies
// and places. It is pure; identical inputs give identical output.
func ComputeSchedule(tasks []domain.Task, assignee domain.Assignee, windowStart time.Time, windowLength int, opts ...Option) Schedule {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	window := BuildWindow(windowStart, windowLength)
	start := window[0].Date
	capacity := assignee.EffectiveCapacity()

	own := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.AssignedTo(assignee.Key) && t.IsActive() {
			own = append(own, t)
		}
	}

	c := Classify(own, start)
	p := Place(c.Schedulable, window, capacity, o)

	backlog := c.Backlog
	if len(p.Failures) > 0 {
		byID := make(map[int64]domain.Task, len(c.Schedulable))
		for _, t := range c.Schedulable {
			byID[t.ID] = t
		}
		for _, f := range p.Failures {
			backlog = append(backlog, BacklogEntry{
				Task:             byID[f.TaskID],
				Reason:           ReasonPlacementExhausted,
				Diagnostic:       "could not be fully scheduled within the day-advance limit",
				UnscheduledHours: f.UnscheduledHours,
			})
		}
		SortBacklog(backlog)
	}

	s := Schedule{
		AssigneeKey:   assignee.Key,
		WindowStart:   start,
		WindowLength:  len(window),
		CapacityHours: capacity,
		Days:          p.Days,
		Backlog:       backlog,
		Failures:      p.Failures,
	}
	s.Summary = summarize(own, &s)
	return s
}

func summarize(tasks []domain.Task, s *Schedule) Summary {
	sum := Summary{
		TaskCount:     len(tasks),
		CapacityHours: s.CapacityHours,
		BacklogCount:  len(s.Backlog),
		FailureCount:  len(s.Failures),
	}
	for _, t := range tasks {
		if t.HasUsableEstimate() {
			sum.TotalEstimatedHours += t.EstimatedHours
		}
	}
	for _, d := range s.Visible() {
		sum.ScheduledHours += d.UsedHours
	}
	return sum
}
