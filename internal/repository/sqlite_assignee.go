package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/loadboard/internal/db"
	"github.com/alexanderramin/loadboard/internal/domain"
)

// SQLiteAssigneeRepo implements AssigneeRepo using a SQLite database.
type SQLiteAssigneeRepo struct {
	db db.DBTX
}

// NewSQLiteAssigneeRepo creates a new SQLiteAssigneeRepo.
func NewSQLiteAssigneeRepo(conn db.DBTX) *SQLiteAssigneeRepo {
	return &SQLiteAssigneeRepo{db: conn}
}

func (r *SQLiteAssigneeRepo) Create(ctx context.Context, a *domain.Assignee) error {
	now := nowUTC()
	query := `INSERT INTO assignees (key, name, role, daily_hours, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.Key,
		a.Name,
		string(a.Role),
		a.DailyCapacityHours,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("inserting assignee: %w", err)
	}
	return nil
}

func (r *SQLiteAssigneeRepo) GetByKey(ctx context.Context, key string) (*domain.Assignee, error) {
	query := `SELECT key, name, role, daily_hours FROM assignees WHERE key = ?`
	a, err := scanAssignee(r.db.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("assignee %q: %w", key, ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

func (r *SQLiteAssigneeRepo) List(ctx context.Context) ([]*domain.Assignee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, name, role, daily_hours FROM assignees ORDER BY name, key`)
	if err != nil {
		return nil, fmt.Errorf("listing assignees: %w", err)
	}
	defer rows.Close()

	var out []*domain.Assignee
	for rows.Next() {
		a, err := scanAssignee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignees: %w", err)
	}
	return out, nil
}

func (r *SQLiteAssigneeRepo) SetCapacity(ctx context.Context, key string, hours *float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assignees SET daily_hours = ?, updated_at = ? WHERE key = ?`,
		nullableFloatToValue(hours), nowUTC(), key)
	if err != nil {
		return fmt.Errorf("setting capacity: %w", err)
	}
	return requireOneRow(res, "assignee", key)
}

func scanAssignee(row rowScanner) (*domain.Assignee, error) {
	var a domain.Assignee
	var role string
	var hours sql.NullFloat64
	if err := row.Scan(&a.Key, &a.Name, &role, &hours); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning assignee: %w", err)
	}
	a.Role = domain.AssigneeRole(role)
	a.DailyCapacityHours = domain.DefaultDailyCapacityHours
	if hours.Valid {
		a.DailyCapacityHours = hours.Float64
	}
	return &a, nil
}
