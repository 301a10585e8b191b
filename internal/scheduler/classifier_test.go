package scheduler

import (
	"math"
	"testing"
	"time"

	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_BacklogReasons(t *testing.T) {
	start := date(2026, 3, 2)
	tasks := []domain.Task{
		newTask(1, "no date", hours(3)),
		newTask(2, "past", due(date(2026, 2, 27)), hours(3)),
		newTask(3, "zero", due(start), hours(0)),
		newTask(4, "negative", due(start), hours(-2)),
		newTask(5, "nan", due(start), hours(math.NaN())),
		newTask(6, "garbled", hours(3), func(t *domain.Task) { t.InvalidDueDate = "03/04/2026" }),
		newTask(7, "ok", due(start), hours(3)),
	}

	c := Classify(tasks, start)

	require.Len(t, c.Schedulable, 1)
	assert.Equal(t, int64(7), c.Schedulable[0].ID)

	reasons := map[int64]BacklogReason{}
	for _, e := range c.Backlog {
		reasons[e.Task.ID] = e.Reason
	}
	assert.Equal(t, map[int64]BacklogReason{
		1: ReasonNoDueDate,
		2: ReasonDueBeforeWindow,
		3: ReasonNoEstimate,
		4: ReasonMalformedEstimate,
		5: ReasonMalformedEstimate,
		6: ReasonMalformedDueDate,
	}, reasons)
}

func TestClassify_MalformedEntriesCarryDiagnostic(t *testing.T) {
	c := Classify([]domain.Task{
		newTask(1, "negative", due(date(2026, 3, 2)), hours(-1)),
	}, date(2026, 3, 2))

	require.Len(t, c.Backlog, 1)
	assert.Contains(t, c.Backlog[0].Diagnostic, "-1")
}

func TestClassify_DueOnWindowStartIsSchedulable(t *testing.T) {
	// Clock component on the due date must not push it before the window.
	dueAt := time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)
	c := Classify([]domain.Task{newTask(1, "edge", due(dueAt), hours(1))}, date(2026, 3, 2))

	require.Len(t, c.Schedulable, 1)
	assert.Equal(t, date(2026, 3, 2), *c.Schedulable[0].DueDate)
}

func TestClassify_DoesNotMutateInput(t *testing.T) {
	dueAt := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	tasks := []domain.Task{newTask(1, "a", due(dueAt), hours(1))}

	Classify(tasks, date(2026, 3, 2))

	assert.Equal(t, dueAt, *tasks[0].DueDate)
}

func TestSortSchedulable_DueThenPriorityThenNewestID(t *testing.T) {
	tue, wed := date(2026, 3, 3), date(2026, 3, 4)
	tasks := []domain.Task{
		newTask(1, "wed high", due(wed), prio(domain.PriorityHigh)),
		newTask(2, "tue low", due(tue), prio(domain.PriorityLow)),
		newTask(3, "tue critical old", due(tue), prio(domain.PriorityCritical)),
		newTask(4, "tue critical new", due(tue), prio(domain.PriorityCritical)),
	}

	SortSchedulable(tasks)

	ids := []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID, tasks[3].ID}
	assert.Equal(t, []int64{4, 3, 2, 1}, ids)
}

func TestSortBacklog_PriorityThenTitle(t *testing.T) {
	entries := []BacklogEntry{
		{Task: newTask(1, "zeta", prio(domain.PriorityHigh))},
		{Task: newTask(2, "alpha", prio(domain.PriorityLow))},
		{Task: newTask(3, "alpha", prio(domain.PriorityHigh))},
		{Task: newTask(4, "beta", prio(domain.Priority(9)))},
	}

	SortBacklog(entries)

	var ids []int64
	for _, e := range entries {
		ids = append(ids, e.Task.ID)
	}
	assert.Equal(t, []int64{3, 1, 2, 4}, ids)
}
