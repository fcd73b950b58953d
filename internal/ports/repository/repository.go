package repository

import (
	"context"
	"time"

	"worksim.service/internal/core/model"
)

// EmployeeRepository is the store contract for employee daily-rhythm state.
type EmployeeRepository interface {
	ListActive(ctx context.Context) ([]*model.Employee, error)
	ListActiveInStates(ctx context.Context, states ...model.ActivityState) ([]*model.Employee, error)
	ListActiveNotInStates(ctx context.Context, states ...model.ActivityState) ([]*model.Employee, error)
	ListActiveBySleepState(ctx context.Context, state model.SleepState) ([]*model.Employee, error)
	UpdatePresence(ctx context.Context, id string, activity model.ActivityState, room *string, floor *int, online model.OnlineStatus) error
	UpdateSleepAndActivity(ctx context.Context, id string, sleep model.SleepState, activity model.ActivityState) error
	SetSleepState(ctx context.Context, id string, sleep model.SleepState) error
}

// DependentRepository covers family members and pets. Dependents have no
// schedule of their own in this core; they only move when their owner does,
// or during the shared family-wake window.
type DependentRepository interface {
	ListFamilyByEmployee(ctx context.Context, employeeID string, state model.SleepState) ([]*model.FamilyMember, error)
	ListFamilyBySleepState(ctx context.Context, state model.SleepState) ([]*model.FamilyMember, error)
	ListPetsByEmployee(ctx context.Context, employeeID string, state model.SleepState) ([]*model.HomePet, error)
	SetFamilySleepState(ctx context.Context, id string, state model.SleepState) error
	SetPetSleepState(ctx context.Context, id string, state model.SleepState) error
}

// ClockEventRepository is the append-only ledger contract.
type ClockEventRepository interface {
	Append(ctx context.Context, ev *model.ClockEvent) error
	HasEventOn(ctx context.Context, employeeID string, eventType model.ClockEventType, day time.Time) (bool, error)
	ListByEmployeeSince(ctx context.Context, employeeID string, since time.Time) ([]*model.ClockEvent, error)
	ListOn(ctx context.Context, day time.Time) ([]*model.ClockEvent, error)
}

// ActivityRepository persists narrated activities for the presentation layer.
type ActivityRepository interface {
	Insert(ctx context.Context, a *model.Activity) error
	Exists(ctx context.Context, id string) (bool, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Activity, error)
}
