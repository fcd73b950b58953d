package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"worksim.service/internal/core/model"
	"worksim.service/internal/core/schedule"
)

// ProcessBedtime puts awake employees to sleep across the 22:00-00:30 window.
// An employee going to sleep drags every still-awake family member and pet
// down with them; dependents get no roll of their own. Employees still
// physically at the workplace are left alone, the invariant being that nobody
// sleeps at the office.
func (s *RhythmService) ProcessBedtime(ctx context.Context) (BedtimeResult, error) {
	now := s.clock.Now()

	prob, ok := schedule.Bedtime.Probability(now)
	if !ok {
		return BedtimeResult{Message: "outside the bedtime window"}, nil
	}

	candidates, err := s.employees.ListActiveBySleepState(ctx, model.SleepAwake)
	if err != nil {
		return BedtimeResult{}, fmt.Errorf("listing bedtime candidates: %w", err)
	}

	var res BedtimeResult
	for _, e := range candidates {
		if !e.ActivityState.OffSite() {
			continue
		}
		if s.roller.Roll() >= prob {
			continue
		}

		if err := s.putEmployeeToSleep(ctx, e.ID); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("employee_id", e.ID).Msg("Bedtime transition failed, skipping employee")
			res.Errors++
			continue
		}

		res.WentToSleep++
		res.ActivitiesCreated += s.narrate(ctx, e.ID, "bedtime", fmt.Sprintf("%s went to bed", e.Name), now)
	}

	res.Message = fmt.Sprintf("%d employees went to sleep", res.WentToSleep)
	return res, nil
}

// putEmployeeToSleep flips the employee and cascades to every awake dependent.
func (s *RhythmService) putEmployeeToSleep(ctx context.Context, employeeID string) error {
	if err := s.employees.UpdateSleepAndActivity(ctx, employeeID, model.SleepSleeping, model.ActivitySleeping); err != nil {
		return fmt.Errorf("updating employee sleep state: %w", err)
	}
	return s.cascadeSleep(ctx, employeeID)
}

// cascadeSleep puts all awake family members and pets of the employee to sleep.
func (s *RhythmService) cascadeSleep(ctx context.Context, employeeID string) error {
	family, err := s.deps.ListFamilyByEmployee(ctx, employeeID, model.SleepAwake)
	if err != nil {
		return fmt.Errorf("listing awake family: %w", err)
	}
	for _, f := range family {
		if err := s.deps.SetFamilySleepState(ctx, f.ID, model.SleepSleeping); err != nil {
			return fmt.Errorf("putting family member %s to sleep: %w", f.ID, err)
		}
	}

	pets, err := s.deps.ListPetsByEmployee(ctx, employeeID, model.SleepAwake)
	if err != nil {
		return fmt.Errorf("listing awake pets: %w", err)
	}
	for _, p := range pets {
		if err := s.deps.SetPetSleepState(ctx, p.ID, model.SleepSleeping); err != nil {
			return fmt.Errorf("putting pet %s to sleep: %w", p.ID, err)
		}
	}
	return nil
}

// wakePets wakes the employee's sleeping pets; pets track their owner.
func (s *RhythmService) wakePets(ctx context.Context, employeeID string) error {
	pets, err := s.deps.ListPetsByEmployee(ctx, employeeID, model.SleepSleeping)
	if err != nil {
		return fmt.Errorf("listing sleeping pets: %w", err)
	}
	for _, p := range pets {
		if err := s.deps.SetPetSleepState(ctx, p.ID, model.SleepAwake); err != nil {
			return fmt.Errorf("waking pet %s: %w", p.ID, err)
		}
	}
	return nil
}
