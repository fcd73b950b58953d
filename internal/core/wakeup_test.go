package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worksim.service/internal/core/model"
)

func asleep(id string) *model.Employee {
	e := testEmployee(id)
	e.ActivityState = model.ActivitySleeping
	e.SleepState = model.SleepSleeping
	return e
}

func sleepingHousehold(env *testEnv, employeeID string) {
	env.deps.addFamily(&model.FamilyMember{ID: employeeID + "-f1", EmployeeID: employeeID, SleepState: model.SleepSleeping})
	env.deps.addFamily(&model.FamilyMember{ID: employeeID + "-f2", EmployeeID: employeeID, SleepState: model.SleepSleeping})
	env.deps.addPet(&model.HomePet{ID: employeeID + "-p1", EmployeeID: employeeID, SleepState: model.SleepSleeping})
}

func TestProcessWakeUpOutsideWindows(t *testing.T) {
	env := newTestEnv(monday(4, 0), 0.0, asleep("e1"))

	res, err := env.service.ProcessWakeUp(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.WokeEmployees)
	assert.Equal(t, 0, res.WokeFamily)
}

func TestProcessWakeUpWakesEmployeeAndPetsOnly(t *testing.T) {
	env := newTestEnv(monday(6, 40), 0.99, asleep("e1"))
	sleepingHousehold(env, "e1")

	res, err := env.service.ProcessWakeUp(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.WokeEmployees)
	assert.Equal(t, 0, res.WokeFamily)

	e := env.employees.get("e1")
	assert.Equal(t, model.SleepAwake, e.SleepState)
	assert.Equal(t, model.ActivityAtHome, e.ActivityState)

	// Pets track the owner; family members sleep on until their own window.
	assert.Equal(t, model.SleepAwake, env.deps.pets["e1-p1"].SleepState)
	assert.Equal(t, model.SleepSleeping, env.deps.family["e1-f1"].SleepState)
	assert.Equal(t, model.SleepSleeping, env.deps.family["e1-f2"].SleepState)
}

func TestProcessWakeUpEmployeesSkippedOnWeekends(t *testing.T) {
	env := newTestEnv(saturday(6, 0), 0.0, asleep("e1"))

	res, err := env.service.ProcessWakeUp(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.WokeEmployees)
	assert.Equal(t, model.SleepSleeping, env.employees.get("e1").SleepState)
}

func TestProcessWakeUpFamilyWindowRunsEveryDay(t *testing.T) {
	env := newTestEnv(saturday(8, 45), 0.99, asleep("e1"))
	sleepingHousehold(env, "e1")

	res, err := env.service.ProcessWakeUp(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.WokeEmployees)
	assert.Equal(t, 2, res.WokeFamily)

	assert.Equal(t, model.SleepAwake, env.deps.family["e1-f1"].SleepState)
	assert.Equal(t, model.SleepAwake, env.deps.family["e1-f2"].SleepState)
	// The employee and the pet stay asleep on a Saturday morning.
	assert.Equal(t, model.SleepSleeping, env.employees.get("e1").SleepState)
	assert.Equal(t, model.SleepSleeping, env.deps.pets["e1-p1"].SleepState)
}

func TestProcessWakeUpFamilyStagger(t *testing.T) {
	env := newTestEnv(saturday(7, 45), 0.5, asleep("e1"))
	sleepingHousehold(env, "e1")

	// 07:45 carries 30% for family.
	res, err := env.service.ProcessWakeUp(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.WokeFamily)

	env.roller.v = 0.1
	res, err = env.service.ProcessWakeUp(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.WokeFamily)
}

func TestProcessWakeUpEmployeeStagger(t *testing.T) {
	// 05:45 carries 40% for employees.
	env := newTestEnv(monday(5, 45), 0.7, asleep("e1"))
	res, err := env.service.ProcessWakeUp(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.WokeEmployees)

	env.roller.v = 0.3
	res, err = env.service.ProcessWakeUp(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.WokeEmployees)
}
