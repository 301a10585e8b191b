package scheduler

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/loadboard/internal/domain"
)

const (
	// DefaultMaxDayAdvances bounds how many times one task may move its
	// cursor to the next day before placement gives up.
	DefaultMaxDayAdvances = 30

	// Epsilon is the tolerance for hour comparisons.
	Epsilon = 1e-9
)

// Segment is the part of one task's hours allocated to one day.
type Segment struct {
	TaskID         int64
	Title          string
	Priority       domain.Priority
	Day            time.Time
	AllocatedHours float64
	SplitIndex     int
	IsSplitTask    bool
}

// DayBucket accumulates the segments placed on one calendar day.
type DayBucket struct {
	Day           time.Time
	IsWeekend     bool
	CapacityHours float64
	Segments      []Segment
	UsedHours     float64
}

// Available returns the hours still free on the day, never negative.
func (b *DayBucket) Available() float64 {
	return math.Max(0, b.CapacityHours-b.UsedHours)
}

// PlacementFailure reports a task that still had hours left when its
// day-advance budget ran out.
type PlacementFailure struct {
	TaskID           int64
	Title            string
	EstimatedHours   float64
	PlacedHours      float64
	UnscheduledHours float64
}

// Placement is the raw output of Place.
type Placement struct {
	// Days holds every bucket in chronological order: the whole window,
	// plus any day past it that received a segment.
	Days     []DayBucket
	Failures []PlacementFailure
}

// Place lays tasks out over the window by water-filling: each task starts on
// its due date and fills that day up to capacity before spilling into later
// days. Continuation days skip weekends; the due date itself may be a
// weekend. Tasks must already be classified and sorted.
func Place(tasks []domain.Task, window []CalendarDay, capacityHours float64, opts Options) Placement {
	l := newLedger(window, domain.ClampCapacity(capacityHours))

	var failures []PlacementFailure
	for _, t := range tasks {
		if f := l.placeTask(t, opts.maxDayAdvances()); f != nil {
			failures = append(failures, *f)
		}
	}

	return Placement{Days: l.ordered(), Failures: failures}
}

// ledger tracks day buckets by date key. Buckets outside the window are
// created lazily.
type ledger struct {
	capacity float64
	buckets  map[string]*DayBucket
}

func newLedger(window []CalendarDay, capacity float64) *ledger {
	l := &ledger{capacity: capacity, buckets: make(map[string]*DayBucket, len(window))}
	for _, d := range window {
		l.bucket(d.Date)
	}
	return l
}

func (l *ledger) bucket(day time.Time) *DayBucket {
	key := domain.FormatDate(day)
	b, ok := l.buckets[key]
	if !ok {
		b = &DayBucket{Day: day, IsWeekend: IsWeekend(day), CapacityHours: l.capacity}
		l.buckets[key] = b
	}
	return b
}

func (l *ledger) ordered() []DayBucket {
	keys := make([]string, 0, len(l.buckets))
	for k := range l.buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	days := make([]DayBucket, 0, len(keys))
	for _, k := range keys {
		days = append(days, *l.buckets[k])
	}
	return days
}

func (l *ledger) placeTask(t domain.Task, maxAdvances int) *PlacementFailure {
	start := domain.DateOf(*t.DueDate)
	cursor := start
	remaining := t.EstimatedHours
	splitIndex := 1
	advances := 0

	for remaining > Epsilon {
		if IsWeekend(cursor) && !cursor.Equal(start) {
			if advances >= maxAdvances {
				break
			}
			cursor = cursor.AddDate(0, 0, 1)
			advances++
			continue
		}

		b := l.bucket(cursor)
		if available := b.Available(); available > Epsilon {
			hours := math.Min(remaining, available)
			b.Segments = append(b.Segments, Segment{
				TaskID:         t.ID,
				Title:          t.Title,
				Priority:       t.Priority,
				Day:            cursor,
				AllocatedHours: hours,
				SplitIndex:     splitIndex,
				IsSplitTask:    hours < t.EstimatedHours-Epsilon,
			})
			b.UsedHours += hours
			remaining -= hours
			splitIndex++
		}

		if remaining > Epsilon {
			if advances >= maxAdvances {
				break
			}
			cursor = cursor.AddDate(0, 0, 1)
			advances++
		}
	}

	if remaining <= Epsilon {
		return nil
	}
	return &PlacementFailure{
		TaskID:           t.ID,
		Title:            t.Title,
		EstimatedHours:   t.EstimatedHours,
		PlacedHours:      t.EstimatedHours - remaining,
		UnscheduledHours: remaining,
	}
}
