package repository

import (
	"context"
	"database/sql"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"worksim.service/internal/core/model"
	"worksim.service/internal/core/schedule"
)

// PostgresClockEventRepository is the ledger implementation. Rows are only
// ever inserted; there is no update path.
type PostgresClockEventRepository struct {
	DB *sql.DB
}

// NewClockEventRepository create new instance
func NewClockEventRepository(db *sql.DB) ClockEventRepository {
	return &PostgresClockEventRepository{DB: db}
}

// Append writes one ledger row.
func (r *PostgresClockEventRepository) Append(ctx context.Context, ev *model.ClockEvent) error {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_id", ev.EmployeeID))

	query := `INSERT INTO clock_events (id, employee_id, event_type, location, timestamp, notes)
              VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(ctx, query, ev.ID, ev.EmployeeID, ev.EventType, ev.Location, ev.Timestamp, ev.Notes)
	return err
}

// HasEventOn reports whether the employee already has an event of this type
// on the given calendar day. This is the idempotency guard for the daily
// clock_in/clock_out transitions.
func (r *PostgresClockEventRepository) HasEventOn(ctx context.Context, employeeID string, eventType model.ClockEventType, day time.Time) (bool, error) {
	start := schedule.StartOfDay(day)
	end := start.Add(24 * time.Hour)

	var exists bool
	query := `SELECT EXISTS (
                SELECT 1 FROM clock_events
                WHERE employee_id = $1 AND event_type = $2 AND timestamp >= $3 AND timestamp < $4
              )`
	err := r.DB.QueryRowContext(ctx, query, employeeID, eventType, start, end).Scan(&exists)
	return exists, err
}

// ListByEmployeeSince returns the employee's events newer than since, most recent first.
func (r *PostgresClockEventRepository) ListByEmployeeSince(ctx context.Context, employeeID string, since time.Time) ([]*model.ClockEvent, error) {
	query := `SELECT id, employee_id, event_type, location, timestamp, notes
              FROM clock_events
              WHERE employee_id = $1 AND timestamp >= $2
              ORDER BY timestamp DESC`
	rows, err := r.DB.QueryContext(ctx, query, employeeID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClockEvents(rows)
}

// ListOn returns every event on the given calendar day, most recent first.
func (r *PostgresClockEventRepository) ListOn(ctx context.Context, day time.Time) ([]*model.ClockEvent, error) {
	start := schedule.StartOfDay(day)
	end := start.Add(24 * time.Hour)

	query := `SELECT id, employee_id, event_type, location, timestamp, notes
              FROM clock_events
              WHERE timestamp >= $1 AND timestamp < $2
              ORDER BY timestamp DESC`
	rows, err := r.DB.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClockEvents(rows)
}

func scanClockEvents(rows *sql.Rows) ([]*model.ClockEvent, error) {
	var out []*model.ClockEvent
	for rows.Next() {
		ev := &model.ClockEvent{}
		var notes sql.NullString
		if err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.EventType, &ev.Location, &ev.Timestamp, &notes); err != nil {
			return nil, err
		}
		ev.Notes = notes.String
		out = append(out, ev)
	}
	return out, rows.Err()
}
