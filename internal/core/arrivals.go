package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"worksim.service/internal/core/model"
	"worksim.service/internal/core/schedule"
	"worksim.service/internal/ports/messaging"
)

// newHireGrace suppresses premature transitions for employees hired moments
// ago by the onboarding flow; they join the rhythm from the next day on.
const newHireGrace = time.Hour

// ProcessMorningArrivals moves employees from home to the office on weekday
// mornings. The 06:45-07:45 window is staggered so the floor fills up
// gradually; by the end of the window everyone still at home has arrived.
// Employees with a clock_in ledger entry for today are skipped, which makes
// re-running the processor within the same window a no-op.
func (s *RhythmService) ProcessMorningArrivals(ctx context.Context) (ArrivalResult, error) {
	now := s.clock.Now()

	if !schedule.IsWeekday(now) {
		return ArrivalResult{Message: "weekend: no office arrivals"}, nil
	}
	prob, ok := schedule.MorningArrival.Probability(now)
	if !ok {
		return ArrivalResult{Message: "outside the morning arrival window"}, nil
	}

	candidates, err := s.employees.ListActiveInStates(ctx, model.ActivityAtHome, model.ActivitySleeping)
	if err != nil {
		return ArrivalResult{}, fmt.Errorf("listing arrival candidates: %w", err)
	}

	res := ArrivalResult{TotalEmployees: len(candidates)}
	for _, e := range candidates {
		if now.Sub(e.HiredAt) < newHireGrace {
			continue
		}

		checkedIn, err := s.ledger.HasEventOn(ctx, e.ID, model.EventClockIn, now)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("employee_id", e.ID).Msg("Arrival idempotency check failed, skipping employee")
			res.Errors++
			continue
		}
		if checkedIn {
			continue
		}

		if s.roller.Roll() >= prob {
			continue
		}

		if err := s.arriveAtOffice(ctx, e, now); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("employee_id", e.ID).Msg("Arrival transition failed, skipping employee")
			res.Errors++
			continue
		}
		res.Arrived++
		res.ActivitiesCreated += s.narrate(ctx, e.ID, "arrival", fmt.Sprintf("%s arrived at the office and started working", e.Name), now)
	}

	res.Message = fmt.Sprintf("%d of %d employees arrived at the office", res.Arrived, res.TotalEmployees)
	return res, nil
}

// arriveAtOffice performs the full home-to-office transition for one employee.
func (s *RhythmService) arriveAtOffice(ctx context.Context, e *model.Employee, now time.Time) error {
	if err := s.ledger.Append(ctx, &model.ClockEvent{
		ID:         uuid.NewString(),
		EmployeeID: e.ID,
		EventType:  model.EventLeftHome,
		Location:   model.LocationHome,
		Timestamp:  now,
		Notes:      "left for the office",
	}); err != nil {
		return fmt.Errorf("appending left_home event: %w", err)
	}

	room := s.targetRoom(ctx, e)
	floor := officeFloor

	if e.SleepState == model.SleepSleeping {
		if err := s.employees.SetSleepState(ctx, e.ID, model.SleepAwake); err != nil {
			return fmt.Errorf("waking employee before arrival: %w", err)
		}
	}

	if err := s.employees.UpdatePresence(ctx, e.ID, model.ActivityWorking, &room, &floor, model.OnlineStatusOnline); err != nil {
		return fmt.Errorf("updating presence: %w", err)
	}

	if err := s.ledger.Append(ctx, &model.ClockEvent{
		ID:         uuid.NewString(),
		EmployeeID: e.ID,
		EventType:  model.EventClockIn,
		Location:   model.LocationOffice,
		Timestamp:  now,
		Notes:      "morning arrival",
	}); err != nil {
		return fmt.Errorf("appending clock_in event: %w", err)
	}
	return nil
}

// targetRoom asks the room assigner for a spot, falling back to the
// employee's home room and then to the default room. Arrival never fails
// because the assigner is down.
func (s *RhythmService) targetRoom(ctx context.Context, e *model.Employee) string {
	if s.rooms != nil {
		room, err := s.rooms.AssignRoom(ctx, e.ID)
		if err == nil && room != "" {
			return room
		}
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("employee_id", e.ID).Msg("Room assigner unavailable, using fallback room")
		}
	}
	if e.HomeRoom != "" {
		return e.HomeRoom
	}
	return defaultOfficeRoom
}

// narrate publishes a human-readable activity to the feed queue. Narration is
// best-effort; a publish failure never blocks a state transition.
func (s *RhythmService) narrate(ctx context.Context, employeeID, kind, message string, now time.Time) int {
	if s.producer == nil {
		return 0
	}
	ev := messaging.ActivityEvent{
		ActivityID: uuid.NewString(),
		EmployeeID: employeeID,
		Kind:       kind,
		Message:    message,
		OccurredAt: now,
	}
	if err := s.producer.PublishActivity(ctx, ev); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("employee_id", employeeID).Msg("Failed to publish activity narration")
		return 0
	}
	return 1
}
