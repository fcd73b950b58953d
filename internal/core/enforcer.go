package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"worksim.service/internal/core/model"
	"worksim.service/internal/core/schedule"
)

// EnforceSleepRules is the self-healing backstop. The staggered processors
// are probabilistic and tolerate skipped ticks, so state can drift; this pass
// deterministically forces every active employee into the state the current
// time window demands. It must run after the staggered processors in a tick,
// and running it twice with no elapsed time yields zero further corrections.
func (s *RhythmService) EnforceSleepRules(ctx context.Context) (EnforcementResult, error) {
	now := s.clock.Now()
	inSleepWindow := schedule.InSleepWindow(now)

	res := EnforcementResult{
		CurrentTime:   now,
		Timezone:      s.timezone,
		IsSleepPeriod: inSleepWindow,
	}

	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		return res, fmt.Errorf("listing active employees: %w", err)
	}

	for _, e := range employees {
		switch {
		case !e.ActivityState.OffSite():
			// Present at the workplace: never asleep, whatever the hour says.
			if e.SleepState != model.SleepSleeping {
				continue
			}
			if err := s.employees.SetSleepState(ctx, e.ID, model.SleepAwake); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("employee_id", e.ID).Msg("Failed to force on-site employee awake")
				res.Errors++
				continue
			}
			res.EnforcedWake++

		case inSleepWindow && e.SleepState == model.SleepAwake:
			// Hard correction, no stagger roll.
			if err := s.putEmployeeToSleep(ctx, e.ID); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("employee_id", e.ID).Msg("Failed to force employee asleep")
				res.Errors++
				continue
			}
			res.EnforcedSleep++

		case !inSleepWindow && e.SleepState == model.SleepSleeping && schedule.PastWakeCutoff(now):
			if err := s.employees.UpdateSleepAndActivity(ctx, e.ID, model.SleepAwake, model.ActivityAtHome); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("employee_id", e.ID).Msg("Failed to force employee awake")
				res.Errors++
				continue
			}
			if err := s.wakePets(ctx, e.ID); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("employee_id", e.ID).Msg("Failed to wake pets during enforcement")
				res.Errors++
			}
			res.EnforcedWake++
		}
	}

	res.Message = fmt.Sprintf("enforced sleep for %d and wake for %d employees", res.EnforcedSleep, res.EnforcedWake)
	return res, nil
}
