package service

import (
	"testing"

	"github.com/Arsonist406/MassagePlanner/modules/schedule/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftByMinutesEmitsSingleUpdate(t *testing.T) {
	e := NewPlacementEngine(testScheduleCfg())
	a := appt(uuid.New(), at(9, 0), 45)
	items := []entity.ScheduleItem{a}

	res := e.ShiftByMinutes(items, a.ID, 15)

	require.True(t, res.Allowed)
	require.Len(t, res.Mutations, 1)
	m := res.Mutations[0]
	assert.Equal(t, MutationUpdate, m.Op)
	assert.Equal(t, a.ID, m.ID)
	assert.True(t, m.StartTime.Equal(at(9, 15)))
	assert.Equal(t, 45, m.DurationMinutes)
}

func TestShiftByMinutesRejectsOverlapWithoutMutations(t *testing.T) {
	e := NewPlacementEngine(testScheduleCfg())
	a := appt(uuid.New(), at(9, 0), 45)
	b := appt(uuid.New(), at(10, 0), 60)
	items := []entity.ScheduleItem{a, b}

	res := e.ShiftByMinutes(items, a.ID, 30) // 09:30-10:15 overlaps b

	assert.False(t, res.Allowed)
	assert.Equal(t, ViolationOverlap, res.Violation)
	assert.Empty(t, res.Mutations)
}

func TestShiftByMinutesUnknownItem(t *testing.T) {
	e := NewPlacementEngine(testScheduleCfg())

	res := e.ShiftByMinutes(nil, uuid.New(), 15)

	assert.False(t, res.Allowed)
	assert.Equal(t, ViolationNotFound, res.Violation)
}

func TestDragWithinClickThresholdIsANoOp(t *testing.T) {
	e := NewPlacementEngine(testScheduleCfg())
	a := appt(uuid.New(), at(9, 0), 45)
	items := []entity.ScheduleItem{a}

	res := e.DragTo(items, a.ID, 60, 63) // 3px of travel is a click

	assert.True(t, res.Allowed)
	assert.Empty(t, res.Mutations, "a click must not move the item")
}

func TestDragResolvesToSnappedTime(t *testing.T) {
	e := NewPlacementEngine(testScheduleCfg())
	a := appt(uuid.New(), at(9, 0), 45)
	items := []entity.ScheduleItem{a}

	// 123px past opening = 123 minutes, snapped to 125 = 10:05.
	res := e.DragTo(items, a.ID, 60, 123)

	require.True(t, res.Allowed)
	require.Len(t, res.Mutations, 1)
	assert.True(t, res.Mutations[0].StartTime.Equal(at(10, 5)))
}

func TestDragLandingOnSameSlotIsANoOp(t *testing.T) {
	e := NewPlacementEngine(testScheduleCfg())
	a := appt(uuid.New(), at(9, 0), 45)
	items := []entity.ScheduleItem{a}

	// 58px of raw travel snaps back onto the current 09:00 slot.
	res := e.DragTo(items, a.ID, 0, 58)

	assert.True(t, res.Allowed)
	assert.Empty(t, res.Mutations)
}

func TestDragNearClosingRejectsOutOfBounds(t *testing.T) {
	e := NewPlacementEngine(testScheduleCfg())
	a := appt(uuid.New(), at(9, 0), 60)
	items := []entity.ScheduleItem{a}

	// Drops at 18:30; the hour-long appointment would run past closing.
	res := e.DragTo(items, a.ID, 60, 630)

	assert.False(t, res.Allowed)
	assert.Equal(t, ViolationBounds, res.Violation)
}

func TestResizeSnapsAndValidates(t *testing.T) {
	e := NewPlacementEngine(testScheduleCfg())
	a := appt(uuid.New(), at(9, 0), 45)
	items := []entity.ScheduleItem{a}

	res := e.ResizeDuration(items, a.ID, 62)

	require.True(t, res.Allowed)
	require.Len(t, res.Mutations, 1)
	assert.Equal(t, 60, res.Mutations[0].DurationMinutes)
	assert.True(t, res.Mutations[0].StartTime.Equal(at(9, 0)), "resize never moves the start")
}

func TestResizeToSameDurationIsANoOp(t *testing.T) {
	e := NewPlacementEngine(testScheduleCfg())
	a := appt(uuid.New(), at(9, 0), 45)
	items := []entity.ScheduleItem{a}

	res := e.ResizeDuration(items, a.ID, 47) // snaps back to 45

	assert.True(t, res.Allowed)
	assert.Empty(t, res.Mutations)
}

func TestResizeRejectsWhenGrowingIntoNeighbor(t *testing.T) {
	e := NewPlacementEngine(testScheduleCfg())
	a := appt(uuid.New(), at(9, 0), 45)
	b := appt(uuid.New(), at(10, 0), 60)
	items := []entity.ScheduleItem{a, b}

	res := e.ResizeDuration(items, a.ID, 70) // 09:00-10:10 overlaps b

	assert.False(t, res.Allowed)
	assert.Equal(t, ViolationOverlap, res.Violation)
	assert.Empty(t, res.Mutations)
}

func TestResizeClampsToMinimumDuration(t *testing.T) {
	e := NewPlacementEngine(testScheduleCfg())
	a := appt(uuid.New(), at(9, 0), 45)
	items := []entity.ScheduleItem{a}

	res := e.ResizeDuration(items, a.ID, 1)

	require.True(t, res.Allowed)
	require.Len(t, res.Mutations, 1)
	assert.Equal(t, 5, res.Mutations[0].DurationMinutes)
}

func TestBulkShiftMovesWholeChainRigidly(t *testing.T) {
	e := NewPlacementEngine(testScheduleCfg())
	a := appt(uuid.New(), at(9, 0), 60)
	b := brk(uuid.New(), at(10, 0), 15)
	c := appt(uuid.New(), at(10, 15), 45)
	items := []entity.ScheduleItem{a, b, c}

	res := e.BulkShift(items, a.ID, 30, BulkShiftForward)

	require.True(t, res.Allowed)
	require.Len(t, res.Mutations, 3)
	assert.True(t, res.Mutations[0].StartTime.Equal(at(9, 30)))
	assert.True(t, res.Mutations[1].StartTime.Equal(at(10, 30)))
	assert.True(t, res.Mutations[2].StartTime.Equal(at(10, 45)))
	for _, m := range res.Mutations {
		assert.Equal(t, MutationUpdate, m.Op)
	}
}

func TestBulkShiftIsAllOrNothing(t *testing.T) {
	e := NewPlacementEngine(testScheduleCfg())
	a := appt(uuid.New(), at(17, 0), 60)
	b := appt(uuid.New(), at(18, 0), 45) // ends 18:45; +30 would pass closing
	items := []entity.ScheduleItem{a, b}

	res := e.BulkShift(items, a.ID, 30, BulkShiftForward)

	assert.False(t, res.Allowed)
	assert.Equal(t, ViolationBounds, res.Violation)
	assert.Empty(t, res.Mutations, "a single out-of-bounds member rejects the whole chain")
}

func TestBulkShiftBackwardUsesTheBackwardChain(t *testing.T) {
	e := NewPlacementEngine(testScheduleCfg())
	a := appt(uuid.New(), at(9, 0), 60)
	b := appt(uuid.New(), at(10, 0), 45)
	later := appt(uuid.New(), at(14, 0), 30)
	items := []entity.ScheduleItem{a, b, later}

	res := e.BulkShift(items, b.ID, -30, BulkShiftBackward)

	require.True(t, res.Allowed)
	require.Len(t, res.Mutations, 2)
	moved := map[uuid.UUID]bool{}
	for _, m := range res.Mutations {
		moved[m.ID] = true
	}
	assert.True(t, moved[a.ID])
	assert.True(t, moved[b.ID])
	assert.False(t, moved[later.ID], "detached items never ride along")
}
