package schedule

import (
	"math/rand"
	"time"
)

// Clock supplies the current simulated timestamp. Every processor reads time
// through this interface so ticks are reproducible in tests.
type Clock interface {
	Now() time.Time
}

// SimClock is the production clock: wall time converted into the single
// configured simulation timezone.
type SimClock struct {
	loc *time.Location
}

// NewSimClock loads the given IANA timezone name.
func NewSimClock(timezone string) (*SimClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &SimClock{loc: loc}, nil
}

func (c *SimClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location exposes the simulation timezone for result reporting.
func (c *SimClock) Location() *time.Location {
	return c.loc
}

// Roller draws the uniform random values behind the stagger probabilities.
// Injected so tests can force deterministic outcomes.
type Roller interface {
	Roll() float64
}

// RandRoller wraps a seeded math/rand generator.
type RandRoller struct {
	rng *rand.Rand
}

// NewRandRoller seeds a dedicated generator; pass a fixed seed for
// reproducible runs.
func NewRandRoller(seed int64) *RandRoller {
	return &RandRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandRoller) Roll() float64 {
	return r.rng.Float64()
}

// IsWeekday reports whether t falls on Monday through Friday.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
