package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"worksim.service/internal/core/model"
)

// ProcessCommutingEmployees collapses the trip home into a single pass.
// There is no travel-time model, so every leaving_work employee passes
// through commuting_home and lands at_home within the same invocation. The
// intermediate write exists only so the feed can narrate the commute.
func (s *RhythmService) ProcessCommutingEmployees(ctx context.Context) (CommuteResult, error) {
	now := s.clock.Now()

	candidates, err := s.employees.ListActiveInStates(ctx, model.ActivityLeavingWork)
	if err != nil {
		return CommuteResult{}, fmt.Errorf("listing commuting candidates: %w", err)
	}

	var res CommuteResult
	for _, e := range candidates {
		if err := s.employees.UpdatePresence(ctx, e.ID, model.ActivityCommutingHome, nil, nil, model.OnlineStatusOffline); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("employee_id", e.ID).Msg("Commute transition failed, skipping employee")
			res.Errors++
			continue
		}
		res.Commuting++

		if err := s.employees.UpdatePresence(ctx, e.ID, model.ActivityAtHome, nil, nil, model.OnlineStatusOffline); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("employee_id", e.ID).Msg("Arrival-home transition failed, employee left commuting")
			res.Errors++
			continue
		}

		if err := s.ledger.Append(ctx, &model.ClockEvent{
			ID:         uuid.NewString(),
			EmployeeID: e.ID,
			EventType:  model.EventArrivedHome,
			Location:   model.LocationHome,
			Timestamp:  now,
			Notes:      "commute complete",
		}); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("employee_id", e.ID).Msg("Failed to append arrived_home event")
			res.Errors++
			continue
		}

		res.ArrivedHome++
		s.narrate(ctx, e.ID, "commute", fmt.Sprintf("%s got home after the commute", e.Name), now)
	}

	res.Message = fmt.Sprintf("%d employees commuted, %d arrived home", res.Commuting, res.ArrivedHome)
	return res, nil
}
