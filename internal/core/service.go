package core

import (
	"context"

	"worksim.service/internal/core/schedule"
	"worksim.service/internal/ports/messaging"
	"worksim.service/internal/ports/repository"
)

// RoomAssigner is the contract for the external room/floor capacity service.
// It is consulted only for a target room at morning arrival; any failure is
// absorbed with a fallback so arrivals never depend on it.
type RoomAssigner interface {
	AssignRoom(ctx context.Context, employeeID string) (string, error)
}

// defaultOfficeRoom is where an employee lands when neither the room service
// nor their home_room yields a target.
const defaultOfficeRoom = "open_space"

// officeFloor is the only floor the simulation places arrivals on.
const officeFloor = 1

// RhythmService drives the daily rhythm of the workforce: wake, commute to
// the office, work, depart, sleep. Each Process* method is invoked once per
// simulation tick by the scheduler; EnforceSleepRules runs last as the
// consistency backstop.
type RhythmService struct {
	employees repository.EmployeeRepository
	deps      repository.DependentRepository
	ledger    repository.ClockEventRepository
	producer  messaging.EventProducer
	rooms     RoomAssigner
	clock     schedule.Clock
	roller    schedule.Roller
	timezone  string
}

// NewRhythmService wires the store, the activity/digest producer, the room
// assigner and the injected clock and roll source together.
func NewRhythmService(
	employees repository.EmployeeRepository,
	deps repository.DependentRepository,
	ledger repository.ClockEventRepository,
	producer messaging.EventProducer,
	rooms RoomAssigner,
	clock schedule.Clock,
	roller schedule.Roller,
	timezone string,
) *RhythmService {
	return &RhythmService{
		employees: employees,
		deps:      deps,
		ledger:    ledger,
		producer:  producer,
		rooms:     rooms,
		clock:     clock,
		roller:    roller,
		timezone:  timezone,
	}
}
