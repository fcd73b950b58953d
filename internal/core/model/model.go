package model

import (
	"time"
)

// EmployeeStatus defines whether an employee still participates in the simulation.
type EmployeeStatus string

const (
	StatusActive EmployeeStatus = "active"
	StatusFired  EmployeeStatus = "fired"
)

// ActivityState is what an employee is currently doing.
type ActivityState string

const (
	ActivityWorking       ActivityState = "working"
	ActivityAtHome        ActivityState = "at_home"
	ActivityLeavingWork   ActivityState = "leaving_work"
	ActivityCommutingHome ActivityState = "commuting_home"
	ActivitySleeping      ActivityState = "sleeping"
	ActivitySick          ActivityState = "sick"
	ActivityTraining      ActivityState = "training"
	ActivityMeeting       ActivityState = "meeting"
	ActivityBreak         ActivityState = "break"
	ActivityIdle          ActivityState = "idle"
)

// OffSite reports whether the activity state means the employee is away from
// the workplace. Anything else counts as on-site presence, which in turn means
// the employee can never be asleep.
func (a ActivityState) OffSite() bool {
	switch a {
	case ActivityAtHome, ActivitySleeping, ActivityLeavingWork, ActivityCommutingHome:
		return true
	}
	return false
}

// SleepState is the awake/asleep flag shared by employees and their dependents.
type SleepState string

const (
	SleepAwake    SleepState = "awake"
	SleepSleeping SleepState = "sleeping"
)

// OnlineStatus drives the presence dot in the UI layer.
type OnlineStatus string

const (
	OnlineStatusOnline  OnlineStatus = "online"
	OnlineStatusOffline OnlineStatus = "offline"
)

// ClockEventType enumerates the daily transitions recorded in the ledger.
type ClockEventType string

const (
	EventClockIn     ClockEventType = "clock_in"
	EventClockOut    ClockEventType = "clock_out"
	EventArrivedHome ClockEventType = "arrived_home"
	EventLeftHome    ClockEventType = "left_home"
)

// ClockEventLocation is where the event happened.
type ClockEventLocation string

const (
	LocationOffice ClockEventLocation = "office"
	LocationHome   ClockEventLocation = "home"
)

// Employee carries the mutable daily-rhythm state. Rows are created and
// terminated by onboarding/offboarding flows elsewhere; the processors only
// touch activity_state, sleep_state, current_room, floor and online_status.
type Employee struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Status        EmployeeStatus `json:"status"`
	ActivityState ActivityState  `json:"activityState"`
	SleepState    SleepState     `json:"sleepState"`
	CurrentRoom   *string        `json:"currentRoom,omitempty"`
	Floor         *int           `json:"floor,omitempty"`
	HomeRoom      string         `json:"homeRoom"`
	OnlineStatus  OnlineStatus   `json:"onlineStatus"`
	HiredAt       time.Time      `json:"hiredAt"`
}

// FamilyMember sleeps and wakes as a side effect of the owning employee's
// bedtime, but wakes on its own schedule in the morning.
type FamilyMember struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	Name       string     `json:"name"`
	SleepState SleepState `json:"sleepState"`
}

// HomePet follows the owning employee's sleep transitions in lock-step.
type HomePet struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	Name       string     `json:"name"`
	SleepState SleepState `json:"sleepState"`
}

// ClockEvent is an append-only ledger row. It doubles as the idempotency
// guard: at most one clock_in and one clock_out exist per employee per day.
type ClockEvent struct {
	ID         string             `json:"id"`
	EmployeeID string             `json:"employeeId"`
	EventType  ClockEventType     `json:"eventType"`
	Location   ClockEventLocation `json:"location"`
	Timestamp  time.Time          `json:"timestamp"`
	Notes      string             `json:"notes,omitempty"`
}

// Activity is a persisted human-readable narration of a transition, written
// by the activity worker for the presentation layer to read.
type Activity struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
}
