package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"worksim.service/internal/core/model"
	"worksim.service/internal/core/schedule"
	"worksim.service/internal/ports/messaging"
)

// ProcessEndOfDayDepartures sends employees home on weekday evenings. It is
// the mirror of ProcessMorningArrivals: staggered over 18:45-19:15, guarded
// by the clock_out ledger entry, complete by the end of the window.
func (s *RhythmService) ProcessEndOfDayDepartures(ctx context.Context) (DepartureResult, error) {
	now := s.clock.Now()

	if !schedule.IsWeekday(now) {
		return DepartureResult{Message: "weekend: no office departures"}, nil
	}
	prob, ok := schedule.EndOfDayDeparture.Probability(now)
	if !ok {
		return DepartureResult{Message: "outside the end-of-day departure window"}, nil
	}

	// Anyone still on-site: working, in a meeting, training, sick bay, on a
	// break or idling at a desk.
	candidates, err := s.employees.ListActiveNotInStates(ctx,
		model.ActivityAtHome, model.ActivitySleeping, model.ActivityLeavingWork, model.ActivityCommutingHome)
	if err != nil {
		return DepartureResult{}, fmt.Errorf("listing departure candidates: %w", err)
	}

	res := DepartureResult{TotalEmployees: len(candidates)}
	for _, e := range candidates {
		clockedOut, err := s.ledger.HasEventOn(ctx, e.ID, model.EventClockOut, now)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("employee_id", e.ID).Msg("Departure idempotency check failed, skipping employee")
			res.Errors++
			continue
		}
		if clockedOut {
			continue
		}

		if s.roller.Roll() >= prob {
			continue
		}

		if err := s.employees.UpdatePresence(ctx, e.ID, model.ActivityLeavingWork, nil, nil, model.OnlineStatusOffline); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("employee_id", e.ID).Msg("Departure transition failed, skipping employee")
			res.Errors++
			continue
		}

		if err := s.ledger.Append(ctx, &model.ClockEvent{
			ID:         uuid.NewString(),
			EmployeeID: e.ID,
			EventType:  model.EventClockOut,
			Location:   model.LocationOffice,
			Timestamp:  now,
			Notes:      "end of day",
		}); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("employee_id", e.ID).Msg("Failed to append clock_out event")
			res.Errors++
			continue
		}

		res.Departed++
		res.ActivitiesCreated += s.narrate(ctx, e.ID, "departure", fmt.Sprintf("%s wrapped up for the day and left the office", e.Name), now)

		if s.producer != nil {
			digest := messaging.DigestEvent{
				EmployeeID:   e.ID,
				EmployeeName: e.Name,
				ClockOutTime: now,
			}
			if err := s.producer.PublishDigest(ctx, digest); err != nil {
				log.Ctx(ctx).Warn().Err(err).Str("employee_id", e.ID).Msg("Failed to publish digest event")
			}
		}
	}

	res.Message = fmt.Sprintf("%d of %d employees left the office", res.Departed, res.TotalEmployees)
	return res, nil
}
