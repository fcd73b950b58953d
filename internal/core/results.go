package core

import "time"

// ArrivalResult summarizes one morning-arrival pass.
type ArrivalResult struct {
	Arrived           int    `json:"arrived"`
	TotalEmployees    int    `json:"totalEmployees"`
	Message           string `json:"message"`
	ActivitiesCreated int    `json:"activitiesCreated"`
	Errors            int    `json:"errors"`
}

// DepartureResult summarizes one end-of-day departure pass.
type DepartureResult struct {
	Departed          int    `json:"departed"`
	TotalEmployees    int    `json:"totalEmployees"`
	Message           string `json:"message"`
	ActivitiesCreated int    `json:"activitiesCreated"`
	Errors            int    `json:"errors"`
}

// CommuteResult summarizes one commute pass. Commuting and ArrivedHome match
// unless a per-employee write failed mid-transition.
type CommuteResult struct {
	Commuting   int    `json:"commuting"`
	ArrivedHome int    `json:"arrivedHome"`
	Message     string `json:"message"`
	Errors      int    `json:"errors"`
}

// BedtimeResult summarizes one bedtime pass.
type BedtimeResult struct {
	WentToSleep       int    `json:"wentToSleep"`
	Message           string `json:"message"`
	ActivitiesCreated int    `json:"activitiesCreated"`
	Errors            int    `json:"errors"`
}

// WakeUpResult summarizes one wake-up pass across both sub-schedules.
type WakeUpResult struct {
	WokeEmployees int    `json:"wokeEmployees"`
	WokeFamily    int    `json:"wokeFamily"`
	Message       string `json:"message"`
	Errors        int    `json:"errors"`
}

// EnforcementResult summarizes one reconciliation pass.
type EnforcementResult struct {
	EnforcedSleep int       `json:"enforcedSleep"`
	EnforcedWake  int       `json:"enforcedWake"`
	CurrentTime   time.Time `json:"currentTime"`
	Timezone      string    `json:"timezone"`
	IsSleepPeriod bool      `json:"isSleepPeriod"`
	Message       string    `json:"message"`
	Errors        int       `json:"errors"`
}
