package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worksim.service/internal/core/model"
)

func atOffice(id string) *model.Employee {
	e := testEmployee(id)
	e.ActivityState = model.ActivityWorking
	room := "dev_east"
	floor := 1
	e.CurrentRoom = &room
	e.Floor = &floor
	e.OnlineStatus = model.OnlineStatusOnline
	return e
}

func TestProcessEndOfDayDeparturesBeforeWindow(t *testing.T) {
	env := newTestEnv(monday(18, 44), 0.0, atOffice("e1"))

	res, err := env.service.ProcessEndOfDayDepartures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Departed)
}

func TestProcessEndOfDayDeparturesWeekend(t *testing.T) {
	env := newTestEnv(saturday(19, 0), 0.0, atOffice("e1"))

	res, err := env.service.ProcessEndOfDayDepartures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Departed)
}

func TestProcessEndOfDayDeparturesEndOfWindow(t *testing.T) {
	meeting := atOffice("e2")
	meeting.ActivityState = model.ActivityMeeting

	env := newTestEnv(monday(19, 15), 0.99, atOffice("e1"), meeting)

	res, err := env.service.ProcessEndOfDayDepartures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Departed)

	for _, id := range []string{"e1", "e2"} {
		e := env.employees.get(id)
		assert.Equal(t, model.ActivityLeavingWork, e.ActivityState, id)
		assert.Nil(t, e.CurrentRoom, id)
		assert.Equal(t, model.OnlineStatusOffline, e.OnlineStatus, id)
		assert.Equal(t, 1, env.ledger.countByType(id, model.EventClockOut), id)
	}
	assert.Len(t, env.producer.digests, 2)
}

func TestProcessEndOfDayDeparturesSkipsOffSiteStates(t *testing.T) {
	home := testEmployee("home")
	commuting := testEmployee("commuting")
	commuting.ActivityState = model.ActivityCommutingHome

	env := newTestEnv(monday(19, 15), 0.0, home, commuting, atOffice("office"))

	res, err := env.service.ProcessEndOfDayDepartures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalEmployees)
	assert.Equal(t, 1, res.Departed)
	assert.Equal(t, model.ActivityAtHome, env.employees.get("home").ActivityState)
	assert.Equal(t, model.ActivityCommutingHome, env.employees.get("commuting").ActivityState)
}

func TestProcessEndOfDayDeparturesIdempotent(t *testing.T) {
	env := newTestEnv(monday(19, 15), 0.99, atOffice("e1"))

	first, err := env.service.ProcessEndOfDayDepartures(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.Departed)

	// Put the employee back at a desk with the ledger untouched.
	env.employees.get("e1").ActivityState = model.ActivityWorking

	second, err := env.service.ProcessEndOfDayDepartures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Departed)
	assert.Equal(t, 1, env.ledger.countByType("e1", model.EventClockOut))
	assert.Len(t, env.producer.digests, 1)
}

func TestProcessEndOfDayDeparturesStagger(t *testing.T) {
	// 18:50 carries 40%: a 0.6 roll stays, a 0.2 roll leaves.
	env := newTestEnv(monday(18, 50), 0.6, atOffice("e1"))
	res, err := env.service.ProcessEndOfDayDepartures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Departed)

	env.roller.v = 0.2
	res, err = env.service.ProcessEndOfDayDepartures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Departed)
}

func TestProcessEndOfDayDeparturesIsolatesFailures(t *testing.T) {
	env := newTestEnv(monday(19, 15), 0.0, atOffice("bad"), atOffice("good"))
	env.employees.failFor = "bad"

	res, err := env.service.ProcessEndOfDayDepartures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Departed)
	assert.Equal(t, 1, res.Errors)
	assert.Equal(t, model.ActivityLeavingWork, env.employees.get("good").ActivityState)
}
