package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"worksim.service/internal/core/model"
	"worksim.service/internal/core/schedule"
)

// ProcessWakeUp runs two independent sub-schedules: the weekday employee wake
// (05:30-06:45) and the every-day family wake (07:30-09:00). Waking an
// employee wakes their pets in lock-step; family members stay asleep until
// their own window, whoever they belong to.
func (s *RhythmService) ProcessWakeUp(ctx context.Context) (WakeUpResult, error) {
	now := s.clock.Now()

	var res WakeUpResult
	employeeWindow := schedule.IsWeekday(now) && schedule.EmployeeWake.Contains(now)
	familyWindow := schedule.FamilyWake.Contains(now)

	if !employeeWindow && !familyWindow {
		return WakeUpResult{Message: "outside the wake-up windows"}, nil
	}

	if employeeWindow {
		prob, _ := schedule.EmployeeWake.Probability(now)
		sleeping, err := s.employees.ListActiveBySleepState(ctx, model.SleepSleeping)
		if err != nil {
			return res, fmt.Errorf("listing sleeping employees: %w", err)
		}

		for _, e := range sleeping {
			if s.roller.Roll() >= prob {
				continue
			}
			if err := s.employees.UpdateSleepAndActivity(ctx, e.ID, model.SleepAwake, model.ActivityAtHome); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("employee_id", e.ID).Msg("Wake-up transition failed, skipping employee")
				res.Errors++
				continue
			}
			if err := s.wakePets(ctx, e.ID); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("employee_id", e.ID).Msg("Failed to wake pets")
				res.Errors++
			}
			res.WokeEmployees++
			s.narrate(ctx, e.ID, "wake_up", fmt.Sprintf("%s woke up", e.Name), now)
		}
	}

	if familyWindow {
		prob, _ := schedule.FamilyWake.Probability(now)
		family, err := s.deps.ListFamilyBySleepState(ctx, model.SleepSleeping)
		if err != nil {
			return res, fmt.Errorf("listing sleeping family members: %w", err)
		}

		for _, f := range family {
			if s.roller.Roll() >= prob {
				continue
			}
			if err := s.deps.SetFamilySleepState(ctx, f.ID, model.SleepAwake); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("family_member_id", f.ID).Msg("Family wake failed, skipping")
				res.Errors++
				continue
			}
			res.WokeFamily++
		}
	}

	res.Message = fmt.Sprintf("%d employees and %d family members woke up", res.WokeEmployees, res.WokeFamily)
	return res, nil
}
