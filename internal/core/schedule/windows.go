package schedule

import "time"

// Window is one stagger sub-window expressed in minutes of the day. Both
// bounds are inclusive, so tables can straddle midnight by listing entries on
// either side of it instead of special-casing rollover.
type Window struct {
	From        int // minute of day, inclusive
	To          int // minute of day, inclusive
	Probability float64
}

// Stagger is an ordered, non-overlapping window table for one processor.
type Stagger []Window

// Probability returns the transition probability for t and whether t falls
// inside the table at all.
func (s Stagger) Probability(t time.Time) (float64, bool) {
	m := t.Hour()*60 + t.Minute()
	for _, w := range s {
		if m >= w.From && m <= w.To {
			return w.Probability, true
		}
	}
	return 0, false
}

// Contains reports whether t falls inside any window of the table.
func (s Stagger) Contains(t time.Time) bool {
	_, ok := s.Probability(t)
	return ok
}

func minute(h, m int) int { return h*60 + m }

// MorningArrival covers 06:45-07:45 on weekdays. The final sub-window is
// certain so everyone has arrived by the end of the window.
var MorningArrival = Stagger{
	{From: minute(6, 45), To: minute(6, 59), Probability: 0.30},
	{From: minute(7, 0), To: minute(7, 29), Probability: 0.60},
	{From: minute(7, 30), To: minute(7, 45), Probability: 1.0},
}

// EndOfDayDeparture covers 18:45-19:15 on weekdays.
var EndOfDayDeparture = Stagger{
	{From: minute(18, 45), To: minute(18, 59), Probability: 0.40},
	{From: minute(19, 0), To: minute(19, 9), Probability: 0.50},
	{From: minute(19, 10), To: minute(19, 15), Probability: 1.0},
}

// Bedtime covers 22:00-00:30, straddling midnight. Completion is guaranteed
// by 00:30.
var Bedtime = Stagger{
	{From: minute(22, 0), To: minute(22, 29), Probability: 0.30},
	{From: minute(22, 30), To: minute(22, 59), Probability: 0.40},
	{From: minute(23, 0), To: minute(23, 29), Probability: 0.20},
	{From: minute(23, 30), To: minute(23, 59), Probability: 1.0},
	{From: minute(0, 0), To: minute(0, 30), Probability: 1.0},
}

// EmployeeWake covers 05:30-06:45 on weekdays.
var EmployeeWake = Stagger{
	{From: minute(5, 30), To: minute(5, 59), Probability: 0.40},
	{From: minute(6, 0), To: minute(6, 29), Probability: 0.50},
	{From: minute(6, 30), To: minute(6, 45), Probability: 1.0},
}

// FamilyWake covers 07:30-09:00 every day, independent of the owning
// employee's schedule.
var FamilyWake = Stagger{
	{From: minute(7, 30), To: minute(7, 59), Probability: 0.30},
	{From: minute(8, 0), To: minute(8, 29), Probability: 0.50},
	{From: minute(8, 30), To: minute(9, 0), Probability: 1.0},
}

const (
	sleepStart      = 22 * 60   // 22:00, every night
	weekdaySleepEnd = 5*60 + 30 // 05:30
	weekendSleepEnd = 7*60 + 30 // 07:30
	weekdayWakeCut  = 5*60 + 30 // 05:30
	anyDayWakeCut   = 8 * 60    // 08:00
)

// InSleepWindow reports whether t is inside the nightly sleep window:
// 22:00-05:30 on weekdays, 22:00-07:30 on weekends.
func InSleepWindow(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	end := weekdaySleepEnd
	if !IsWeekday(t) {
		end = weekendSleepEnd
	}
	return m >= sleepStart || m < end
}

// PastWakeCutoff reports whether t is past the hard wake threshold used by
// the enforcer: 05:30 on weekdays, 08:00 on any day.
func PastWakeCutoff(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	if IsWeekday(t) && m >= weekdayWakeCut && m < sleepStart {
		return true
	}
	return m >= anyDayWakeCut && m < sleepStart
}
