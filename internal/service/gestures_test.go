package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/loadboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGestures_DropOnDayThenBacklog(t *testing.T) {
	tasks, assignees, _ := setupRepos(t)
	ctx := context.Background()
	seedAssignee(t, assignees, "Ana")
	task := seedTask(t, tasks, "ana", "card", testutil.WithEstimate(10))

	g := NewGestures(newRescheduler(t, tasks, assignees), "ana")
	g.Days = 5

	fri := monday.AddDate(0, 0, 4)
	resp, err := g.OnDropOnDay(ctx, task.ID, fri)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Schedule.Schedule.WindowLength)

	segs := resp.Schedule.Schedule.SegmentsFor(task.ID)
	require.Len(t, segs, 2)
	assert.Equal(t, fri, segs[0].Day)
	assert.Equal(t, monday.AddDate(0, 0, 7), segs[1].Day, "continuation skips the weekend")

	resp, err = g.OnDropOnBacklog(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Schedule.Schedule.SegmentsFor(task.ID))
	require.Len(t, resp.Schedule.Schedule.Backlog, 1)
}
