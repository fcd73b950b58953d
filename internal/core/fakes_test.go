package core

import (
	"context"
	"errors"
	"sort"
	"time"

	"worksim.service/internal/core/model"
	"worksim.service/internal/ports/messaging"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

// fixedRoller always returns the same value, forcing stagger rolls to a
// known outcome.
type fixedRoller struct {
	v float64
}

func (r *fixedRoller) Roll() float64 {
	return r.v
}

type fakeEmployeeRepo struct {
	employees map[string]*model.Employee
	order     []string
	// failFor makes every write for this employee id fail, for isolation tests.
	failFor string
}

func newFakeEmployeeRepo(employees ...*model.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{employees: make(map[string]*model.Employee)}
	for _, e := range employees {
		clone := *e
		r.employees[e.ID] = &clone
		r.order = append(r.order, e.ID)
	}
	return r
}

func (r *fakeEmployeeRepo) get(id string) *model.Employee {
	return r.employees[id]
}

func (r *fakeEmployeeRepo) listWhere(keep func(*model.Employee) bool) []*model.Employee {
	var out []*model.Employee
	for _, id := range r.order {
		e := r.employees[id]
		if e.Status != model.StatusActive || !keep(e) {
			continue
		}
		clone := *e
		out = append(out, &clone)
	}
	return out
}

func (r *fakeEmployeeRepo) ListActive(_ context.Context) ([]*model.Employee, error) {
	return r.listWhere(func(*model.Employee) bool { return true }), nil
}

func (r *fakeEmployeeRepo) ListActiveInStates(_ context.Context, states ...model.ActivityState) ([]*model.Employee, error) {
	return r.listWhere(func(e *model.Employee) bool {
		for _, s := range states {
			if e.ActivityState == s {
				return true
			}
		}
		return false
	}), nil
}

func (r *fakeEmployeeRepo) ListActiveNotInStates(_ context.Context, states ...model.ActivityState) ([]*model.Employee, error) {
	return r.listWhere(func(e *model.Employee) bool {
		for _, s := range states {
			if e.ActivityState == s {
				return false
			}
		}
		return true
	}), nil
}

func (r *fakeEmployeeRepo) ListActiveBySleepState(_ context.Context, state model.SleepState) ([]*model.Employee, error) {
	return r.listWhere(func(e *model.Employee) bool { return e.SleepState == state }), nil
}

func (r *fakeEmployeeRepo) UpdatePresence(_ context.Context, id string, activity model.ActivityState, room *string, floor *int, online model.OnlineStatus) error {
	if id == r.failFor {
		return errors.New("simulated write failure")
	}
	e, ok := r.employees[id]
	if !ok {
		return errors.New("employee not found")
	}
	e.ActivityState = activity
	e.CurrentRoom = room
	e.Floor = floor
	e.OnlineStatus = online
	return nil
}

func (r *fakeEmployeeRepo) UpdateSleepAndActivity(_ context.Context, id string, sleep model.SleepState, activity model.ActivityState) error {
	if id == r.failFor {
		return errors.New("simulated write failure")
	}
	e, ok := r.employees[id]
	if !ok {
		return errors.New("employee not found")
	}
	e.SleepState = sleep
	e.ActivityState = activity
	return nil
}

func (r *fakeEmployeeRepo) SetSleepState(_ context.Context, id string, sleep model.SleepState) error {
	if id == r.failFor {
		return errors.New("simulated write failure")
	}
	e, ok := r.employees[id]
	if !ok {
		return errors.New("employee not found")
	}
	e.SleepState = sleep
	return nil
}

type fakeDependentRepo struct {
	family map[string]*model.FamilyMember
	pets   map[string]*model.HomePet
	fOrder []string
	pOrder []string
}

func newFakeDependentRepo() *fakeDependentRepo {
	return &fakeDependentRepo{
		family: make(map[string]*model.FamilyMember),
		pets:   make(map[string]*model.HomePet),
	}
}

func (r *fakeDependentRepo) addFamily(f *model.FamilyMember) {
	clone := *f
	r.family[f.ID] = &clone
	r.fOrder = append(r.fOrder, f.ID)
}

func (r *fakeDependentRepo) addPet(p *model.HomePet) {
	clone := *p
	r.pets[p.ID] = &clone
	r.pOrder = append(r.pOrder, p.ID)
}

func (r *fakeDependentRepo) ListFamilyByEmployee(_ context.Context, employeeID string, state model.SleepState) ([]*model.FamilyMember, error) {
	var out []*model.FamilyMember
	for _, id := range r.fOrder {
		f := r.family[id]
		if f.EmployeeID == employeeID && f.SleepState == state {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeDependentRepo) ListFamilyBySleepState(_ context.Context, state model.SleepState) ([]*model.FamilyMember, error) {
	var out []*model.FamilyMember
	for _, id := range r.fOrder {
		f := r.family[id]
		if f.SleepState == state {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeDependentRepo) ListPetsByEmployee(_ context.Context, employeeID string, state model.SleepState) ([]*model.HomePet, error) {
	var out []*model.HomePet
	for _, id := range r.pOrder {
		p := r.pets[id]
		if p.EmployeeID == employeeID && p.SleepState == state {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeDependentRepo) SetFamilySleepState(_ context.Context, id string, state model.SleepState) error {
	f, ok := r.family[id]
	if !ok {
		return errors.New("family member not found")
	}
	f.SleepState = state
	return nil
}

func (r *fakeDependentRepo) SetPetSleepState(_ context.Context, id string, state model.SleepState) error {
	p, ok := r.pets[id]
	if !ok {
		return errors.New("pet not found")
	}
	p.SleepState = state
	return nil
}

type fakeLedger struct {
	events []*model.ClockEvent
	// failFor makes appends for this employee id fail.
	failFor string
}

func (r *fakeLedger) Append(_ context.Context, ev *model.ClockEvent) error {
	if ev.EmployeeID == r.failFor {
		return errors.New("simulated append failure")
	}
	clone := *ev
	r.events = append(r.events, &clone)
	return nil
}

func (r *fakeLedger) HasEventOn(_ context.Context, employeeID string, eventType model.ClockEventType, day time.Time) (bool, error) {
	for _, ev := range r.events {
		if ev.EmployeeID != employeeID || ev.EventType != eventType {
			continue
		}
		y1, m1, d1 := day.Date()
		y2, m2, d2 := ev.Timestamp.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLedger) ListByEmployeeSince(_ context.Context, employeeID string, since time.Time) ([]*model.ClockEvent, error) {
	var out []*model.ClockEvent
	for _, ev := range r.events {
		if ev.EmployeeID == employeeID && !ev.Timestamp.Before(since) {
			clone := *ev
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (r *fakeLedger) ListOn(_ context.Context, day time.Time) ([]*model.ClockEvent, error) {
	var out []*model.ClockEvent
	for _, ev := range r.events {
		y1, m1, d1 := day.Date()
		y2, m2, d2 := ev.Timestamp.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			clone := *ev
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (r *fakeLedger) countByType(employeeID string, eventType model.ClockEventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.EmployeeID == employeeID && ev.EventType == eventType {
			n++
		}
	}
	return n
}

type fakeProducer struct {
	activities []messaging.ActivityEvent
	digests    []messaging.DigestEvent
}

func (p *fakeProducer) PublishActivity(_ context.Context, body interface{}) error {
	p.activities = append(p.activities, body.(messaging.ActivityEvent))
	return nil
}

func (p *fakeProducer) PublishDigest(_ context.Context, body interface{}) error {
	p.digests = append(p.digests, body.(messaging.DigestEvent))
	return nil
}

type fakeAssigner struct {
	room string
	err  error
}

func (a *fakeAssigner) AssignRoom(_ context.Context, _ string) (string, error) {
	return a.room, a.err
}

// testEmployee builds an active, awake, at-home employee hired long ago.
func testEmployee(id string) *model.Employee {
	return &model.Employee{
		ID:            id,
		Name:          "Employee " + id,
		Status:        model.StatusActive,
		ActivityState: model.ActivityAtHome,
		SleepState:    model.SleepAwake,
		HomeRoom:      "living_room_" + id,
		OnlineStatus:  model.OnlineStatusOffline,
		HiredAt:       time.Date(2020, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

type testEnv struct {
	employees *fakeEmployeeRepo
	deps      *fakeDependentRepo
	ledger    *fakeLedger
	producer  *fakeProducer
	assigner  *fakeAssigner
	clock     *stubClock
	roller    *fixedRoller
	service   *RhythmService
}

func newTestEnv(now time.Time, roll float64, employees ...*model.Employee) *testEnv {
	env := &testEnv{
		employees: newFakeEmployeeRepo(employees...),
		deps:      newFakeDependentRepo(),
		ledger:    &fakeLedger{},
		producer:  &fakeProducer{},
		assigner:  &fakeAssigner{room: "dev_east"},
		clock:     &stubClock{now: now},
		roller:    &fixedRoller{v: roll},
	}
	env.service = NewRhythmService(env.employees, env.deps, env.ledger, env.producer, env.assigner, env.clock, env.roller, "UTC")
	return env
}

// 2024-01-01 was a Monday.
func monday(hour, min int) time.Time {
	return time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
}

// 2024-01-06 was a Saturday.
func saturday(hour, min int) time.Time {
	return time.Date(2024, 1, 6, hour, min, 0, 0, time.UTC)
}
