package core

import (
	"context"
	"fmt"

	"worksim.service/internal/core/model"
)

// defaultHistoryDays is the lookback used when the caller does not supply one.
const defaultHistoryDays = 7

// GetEmployeeClockHistory returns the employee's ledger events from the last
// n days, most recent first.
func (s *RhythmService) GetEmployeeClockHistory(ctx context.Context, employeeID string, days int) ([]*model.ClockEvent, error) {
	if days <= 0 {
		days = defaultHistoryDays
	}
	now := s.clock.Now()
	since := now.AddDate(0, 0, -days)

	events, err := s.ledger.ListByEmployeeSince(ctx, employeeID, since)
	if err != nil {
		return nil, fmt.Errorf("listing clock history for %s: %w", employeeID, err)
	}
	return events, nil
}

// GetAllClockEventsToday returns every ledger event for the current simulated
// day, most recent first.
func (s *RhythmService) GetAllClockEventsToday(ctx context.Context) ([]*model.ClockEvent, error) {
	events, err := s.ledger.ListOn(ctx, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("listing today's clock events: %w", err)
	}
	return events, nil
}
