package repository

import (
	"context"
	"database/sql"

	"worksim.service/internal/core/model"
)

// PostgresDependentRepository stores family members and home pets.
type PostgresDependentRepository struct {
	DB *sql.DB
}

// NewDependentRepository create new instance
func NewDependentRepository(db *sql.DB) DependentRepository {
	return &PostgresDependentRepository{DB: db}
}

// ListFamilyByEmployee returns the employee's family members in the given sleep state.
func (r *PostgresDependentRepository) ListFamilyByEmployee(ctx context.Context, employeeID string, state model.SleepState) ([]*model.FamilyMember, error) {
	query := `SELECT id, employee_id, name, sleep_state FROM family_members WHERE employee_id = $1 AND sleep_state = $2`
	rows, err := r.DB.QueryContext(ctx, query, employeeID, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.FamilyMember
	for rows.Next() {
		f := &model.FamilyMember{}
		if err := rows.Scan(&f.ID, &f.EmployeeID, &f.Name, &f.SleepState); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ListFamilyBySleepState returns all family members in the given sleep state,
// regardless of owner. The family-wake window runs over this set.
func (r *PostgresDependentRepository) ListFamilyBySleepState(ctx context.Context, state model.SleepState) ([]*model.FamilyMember, error) {
	query := `SELECT id, employee_id, name, sleep_state FROM family_members WHERE sleep_state = $1`
	rows, err := r.DB.QueryContext(ctx, query, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.FamilyMember
	for rows.Next() {
		f := &model.FamilyMember{}
		if err := rows.Scan(&f.ID, &f.EmployeeID, &f.Name, &f.SleepState); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ListPetsByEmployee returns the employee's pets in the given sleep state.
func (r *PostgresDependentRepository) ListPetsByEmployee(ctx context.Context, employeeID string, state model.SleepState) ([]*model.HomePet, error) {
	query := `SELECT id, employee_id, name, sleep_state FROM home_pets WHERE employee_id = $1 AND sleep_state = $2`
	rows, err := r.DB.QueryContext(ctx, query, employeeID, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.HomePet
	for rows.Next() {
		p := &model.HomePet{}
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.Name, &p.SleepState); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SetFamilySleepState updates one family member's sleep flag.
func (r *PostgresDependentRepository) SetFamilySleepState(ctx context.Context, id string, state model.SleepState) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE family_members SET sleep_state = $1 WHERE id = $2`, state, id)
	return err
}

// SetPetSleepState updates one pet's sleep flag.
func (r *PostgresDependentRepository) SetPetSleepState(ctx context.Context, id string, state model.SleepState) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE home_pets SET sleep_state = $1 WHERE id = $2`, state, id)
	return err
}
