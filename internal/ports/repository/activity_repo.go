package repository

import (
	"context"
	"database/sql"

	"worksim.service/internal/core/model"
)

// PostgresActivityRepository persists narrated activities written by the
// activity worker.
type PostgresActivityRepository struct {
	DB *sql.DB
}

// NewActivityRepository create new instance
func NewActivityRepository(db *sql.DB) ActivityRepository {
	return &PostgresActivityRepository{DB: db}
}

// Insert writes one activity row.
func (r *PostgresActivityRepository) Insert(ctx context.Context, a *model.Activity) error {
	query := `INSERT INTO activities (id, employee_id, kind, message, occurred_at)
              VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query, a.ID, a.EmployeeID, a.Kind, a.Message, a.OccurredAt)
	return err
}

// Exists reports whether an activity with this id was already persisted,
// guarding against SQS at-least-once redelivery.
func (r *PostgresActivityRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM activities WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// ListRecent returns the newest activities for the presentation feed.
func (r *PostgresActivityRepository) ListRecent(ctx context.Context, limit int) ([]*model.Activity, error) {
	query := `SELECT id, employee_id, kind, message, occurred_at
              FROM activities ORDER BY occurred_at DESC LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Activity
	for rows.Next() {
		a := &model.Activity{}
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Kind, &a.Message, &a.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
