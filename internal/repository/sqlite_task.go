package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/loadboard/internal/db"
	"github.com/alexanderramin/loadboard/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, title, description, client, assignee_key, estimated_hours,
		due_date, priority, status, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

// Create inserts t and sets t.ID to the assigned row id.
func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (title, description, client, assignee_key, estimated_hours,
		due_date, priority, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		t.Client,
		t.AssigneeKey,
		t.EstimatedHours,
		nullableTimeToString(t.DueDate, domain.DateLayout),
		int(t.Priority),
		string(t.Status),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading task id: %w", err)
	}
	t.ID = id
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

func (r *SQLiteTaskRepo) List(ctx context.Context, f TaskFilter) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1 = 1`
	var args []any
	if f.AssigneeKey != "" {
		query += ` AND assignee_key = ?`
		args = append(args, f.AssigneeKey)
	}
	if !f.IncludeInactive {
		query += ` AND status NOT IN ('completed', 'canceled')`
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListActiveByAssignee(ctx context.Context, assigneeKey string) ([]domain.Task, error) {
	return r.List(ctx, TaskFilter{AssigneeKey: assigneeKey})
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, client = ?, assignee_key = ?,
		estimated_hours = ?, due_date = ?, priority = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		t.Client,
		t.AssigneeKey,
		t.EstimatedHours,
		nullableTimeToString(t.DueDate, domain.DateLayout),
		int(t.Priority),
		string(t.Status),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireOneRow(res, "task", t.ID)
}

func (r *SQLiteTaskRepo) SetDueDate(ctx context.Context, id int64, due *time.Time) error {
	var value any
	if due != nil {
		d := domain.DateOf(*due)
		value = nullableTimeToString(&d, domain.DateLayout)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET due_date = ?, updated_at = ? WHERE id = ?`,
		value, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("setting due date: %w", err)
	}
	return requireOneRow(res, "task", id)
}

func requireOneRow(res sql.Result, what string, id any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %v: %w", what, id, ErrNotFound)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (domain.Task, error) {
	var t domain.Task
	var dueDateStr sql.NullString
	var priority int
	var statusStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Client, &t.AssigneeKey, &t.EstimatedHours,
		&dueDateStr, &priority, &statusStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("scanning task: %w", err)
	}

	t.DueDate, t.InvalidDueDate = parseDueDate(dueDateStr)
	t.Priority = domain.Priority(priority)
	t.Status = domain.TaskStatus(statusStr)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return t, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return t, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return t, nil
}

func scanTasks(rows *sql.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}
