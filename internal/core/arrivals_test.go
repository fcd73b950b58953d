package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worksim.service/internal/core/model"
)

func TestProcessMorningArrivalsBeforeWindow(t *testing.T) {
	env := newTestEnv(monday(6, 44), 0.0, testEmployee("e1"))

	res, err := env.service.ProcessMorningArrivals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Arrived)
	assert.Equal(t, model.ActivityAtHome, env.employees.get("e1").ActivityState)
}

func TestProcessMorningArrivalsWeekend(t *testing.T) {
	env := newTestEnv(saturday(7, 15), 0.0, testEmployee("e1"))

	res, err := env.service.ProcessMorningArrivals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Arrived)
	assert.Empty(t, env.ledger.events)
}

func TestProcessMorningArrivalsEndOfWindowTransitionsEveryone(t *testing.T) {
	sleeping := testEmployee("e2")
	sleeping.ActivityState = model.ActivitySleeping
	sleeping.SleepState = model.SleepSleeping

	// Roll of 0.99 only passes against the certain final sub-window.
	env := newTestEnv(monday(7, 45), 0.99, testEmployee("e1"), sleeping)

	res, err := env.service.ProcessMorningArrivals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Arrived)
	assert.Equal(t, 2, res.TotalEmployees)
	assert.Equal(t, 0, res.Errors)

	for _, id := range []string{"e1", "e2"} {
		e := env.employees.get(id)
		assert.Equal(t, model.ActivityWorking, e.ActivityState, id)
		assert.Equal(t, model.SleepAwake, e.SleepState, id)
		assert.Equal(t, model.OnlineStatusOnline, e.OnlineStatus, id)
		require.NotNil(t, e.CurrentRoom, id)
		assert.Equal(t, "dev_east", *e.CurrentRoom, id)
		require.NotNil(t, e.Floor, id)
		assert.Equal(t, 1, *e.Floor, id)
		assert.Equal(t, 1, env.ledger.countByType(id, model.EventClockIn), id)
		assert.Equal(t, 1, env.ledger.countByType(id, model.EventLeftHome), id)
	}
	assert.Len(t, env.producer.activities, 2)
}

func TestProcessMorningArrivalsIdempotent(t *testing.T) {
	env := newTestEnv(monday(7, 45), 0.99, testEmployee("e1"))

	first, err := env.service.ProcessMorningArrivals(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.Arrived)

	// Drag the employee back home without touching the ledger, then rerun
	// inside the same window: the clock_in entry must block a second pass.
	env.employees.get("e1").ActivityState = model.ActivityAtHome

	second, err := env.service.ProcessMorningArrivals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Arrived)
	assert.Equal(t, 1, env.ledger.countByType("e1", model.EventClockIn))
}

func TestProcessMorningArrivalsStagger(t *testing.T) {
	// 06:50 carries 30% probability: a 0.5 roll stays home, a 0.1 roll goes.
	env := newTestEnv(monday(6, 50), 0.5, testEmployee("e1"))
	res, err := env.service.ProcessMorningArrivals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Arrived)

	env.roller.v = 0.1
	res, err = env.service.ProcessMorningArrivals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Arrived)
}

func TestProcessMorningArrivalsNewHireGrace(t *testing.T) {
	fresh := testEmployee("e1")
	fresh.HiredAt = monday(7, 20)

	env := newTestEnv(monday(7, 45), 0.0, fresh)
	res, err := env.service.ProcessMorningArrivals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Arrived)
	assert.Equal(t, model.ActivityAtHome, env.employees.get("e1").ActivityState)
}

func TestProcessMorningArrivalsRoomFallback(t *testing.T) {
	env := newTestEnv(monday(7, 45), 0.0, testEmployee("e1"))
	env.assigner.room = ""
	env.assigner.err = assert.AnError

	res, err := env.service.ProcessMorningArrivals(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Arrived)

	e := env.employees.get("e1")
	require.NotNil(t, e.CurrentRoom)
	assert.Equal(t, "living_room_e1", *e.CurrentRoom)
}

func TestProcessMorningArrivalsIsolatesFailures(t *testing.T) {
	env := newTestEnv(monday(7, 45), 0.0, testEmployee("bad"), testEmployee("good"))
	env.ledger.failFor = "bad"

	res, err := env.service.ProcessMorningArrivals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Arrived)
	assert.Equal(t, 1, res.Errors)
	assert.Equal(t, model.ActivityWorking, env.employees.get("good").ActivityState)
	assert.Equal(t, model.ActivityAtHome, env.employees.get("bad").ActivityState)
}

func TestProcessMorningArrivalsSkipsFiredEmployees(t *testing.T) {
	fired := testEmployee("e1")
	fired.Status = model.StatusFired

	env := newTestEnv(monday(7, 45), 0.0, fired)
	res, err := env.service.ProcessMorningArrivals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalEmployees)
}

func TestArrivalEventsCarryWindowTimestamp(t *testing.T) {
	now := monday(7, 32)
	env := newTestEnv(now, 0.0, testEmployee("e1"))

	_, err := env.service.ProcessMorningArrivals(context.Background())
	require.NoError(t, err)

	for _, ev := range env.ledger.events {
		assert.True(t, ev.Timestamp.Equal(now))
	}
	assert.Equal(t, time.Monday, now.Weekday())
}
