package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"worksim.service/internal/core/model"
)

const employeeColumns = `id, name, status, activity_state, sleep_state, current_room, floor, home_room, online_status, hired_at`

// PostgresEmployeeRepository is the concrete implementation for a PostgreSQL database.
type PostgresEmployeeRepository struct {
	DB *sql.DB
}

// NewEmployeeRepository create new instance
func NewEmployeeRepository(db *sql.DB) EmployeeRepository {
	return &PostgresEmployeeRepository{DB: db}
}

// ListActive returns every employee still participating in the simulation.
func (r *PostgresEmployeeRepository) ListActive(ctx context.Context) ([]*model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE status = $1 ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, model.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// ListActiveInStates returns active employees whose activity state is one of states.
func (r *PostgresEmployeeRepository) ListActiveInStates(ctx context.Context, states ...model.ActivityState) ([]*model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE status = $1 AND activity_state = ANY($2) ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, model.StatusActive, statesArray(states))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// ListActiveNotInStates returns active employees whose activity state is none of states.
func (r *PostgresEmployeeRepository) ListActiveNotInStates(ctx context.Context, states ...model.ActivityState) ([]*model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE status = $1 AND NOT (activity_state = ANY($2)) ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, model.StatusActive, statesArray(states))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// ListActiveBySleepState returns active employees in the given sleep state.
func (r *PostgresEmployeeRepository) ListActiveBySleepState(ctx context.Context, state model.SleepState) ([]*model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE status = $1 AND sleep_state = $2 ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, model.StatusActive, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// UpdatePresence moves an employee between locations in one statement.
func (r *PostgresEmployeeRepository) UpdatePresence(ctx context.Context, id string, activity model.ActivityState, room *string, floor *int, online model.OnlineStatus) error {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_id", id))

	query := `UPDATE employees
              SET activity_state = $1,
                  current_room = $2,
                  floor = $3,
                  online_status = $4
              WHERE id = $5`

	_, err := r.DB.ExecContext(ctx, query, activity, room, floor, online, id)
	return err
}

// UpdateSleepAndActivity sets both sleep and activity state, used by the
// bedtime and wake-up transitions.
func (r *PostgresEmployeeRepository) UpdateSleepAndActivity(ctx context.Context, id string, sleep model.SleepState, activity model.ActivityState) error {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_id", id))

	query := `UPDATE employees SET sleep_state = $1, activity_state = $2 WHERE id = $3`
	_, err := r.DB.ExecContext(ctx, query, sleep, activity, id)
	return err
}

// SetSleepState changes only the sleep flag, leaving activity untouched. The
// enforcer uses this to wake an on-site employee without moving them.
func (r *PostgresEmployeeRepository) SetSleepState(ctx context.Context, id string, sleep model.SleepState) error {
	query := `UPDATE employees SET sleep_state = $1 WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, sleep, id)
	return err
}

func statesArray(states []model.ActivityState) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = string(s)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func scanEmployees(rows *sql.Rows) ([]*model.Employee, error) {
	var out []*model.Employee
	for rows.Next() {
		e := &model.Employee{}
		var room sql.NullString
		var floor sql.NullInt64
		err := rows.Scan(&e.ID, &e.Name, &e.Status, &e.ActivityState, &e.SleepState, &room, &floor, &e.HomeRoom, &e.OnlineStatus, &e.HiredAt)
		if err != nil {
			return nil, fmt.Errorf("scanning employee row: %w", err)
		}
		if room.Valid {
			e.CurrentRoom = &room.String
		}
		if floor.Valid {
			f := int(floor.Int64)
			e.Floor = &f
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
