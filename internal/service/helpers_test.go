package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/loadboard/internal/db"
	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/alexanderramin/loadboard/internal/repository"
	"github.com/alexanderramin/loadboard/internal/testutil"
	"github.com/stretchr/testify/require"
)

// monday is 2026-03-02.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return monday.Add(9 * time.Hour) }

func setupRepos(t *testing.T) (repository.TaskRepo, repository.AssigneeRepo, db.UnitOfWork) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteTaskRepo(database),
		repository.NewSQLiteAssigneeRepo(database),
		testutil.NewTestUoW(database)
}

func seedAssignee(t *testing.T, repo repository.AssigneeRepo, name string, opts ...testutil.AssigneeOption) *domain.Assignee {
	t.Helper()
	a := testutil.NewTestAssignee(name, opts...)
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func seedTask(t *testing.T, repo repository.TaskRepo, key, title string, opts ...testutil.TaskOption) *domain.Task {
	t.Helper()
	task := testutil.NewTestTask(key, title, opts...)
	require.NoError(t, repo.Create(context.Background(), task))
	return task
}

// recordingTaskRepo wraps a TaskRepo, logs calls in order, and can fail or
// hold SetDueDate.
type recordingTaskRepo struct {
	repository.TaskRepo

	mu    sync.Mutex
	calls []string

	setErr  error
	entered chan struct{} // closed-over signal that SetDueDate started
	gate    chan struct{} // SetDueDate waits on this when non-nil
}

func (r *recordingTaskRepo) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recordingTaskRepo) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recordingTaskRepo) SetDueDate(ctx context.Context, id int64, due *time.Time) error {
	r.record("set_due_date")
	if r.entered != nil {
		r.entered <- struct{}{}
	}
	if r.gate != nil {
		<-r.gate
	}
	if r.setErr != nil {
		return r.setErr
	}
	return r.TaskRepo.SetDueDate(ctx, id, due)
}

func (r *recordingTaskRepo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	r.record("get_task")
	return r.TaskRepo.GetByID(ctx, id)
}

func (r *recordingTaskRepo) ListActiveByAssignee(ctx context.Context, key string) ([]domain.Task, error) {
	r.record("list_active")
	return r.TaskRepo.ListActiveByAssignee(ctx, key)
}
