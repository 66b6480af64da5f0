package service

import (
	"testing"

	"github.com/Arsonist406/MassagePlanner/modules/schedule/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGapThreshold = 30

func TestPlanBreaksFillsLegitimateGap(t *testing.T) {
	a := appt(uuid.New(), at(9, 0), 45)  // ends 09:45
	b := appt(uuid.New(), at(10, 0), 60) // 15 minute gap

	mutations := PlanBreaks([]entity.ScheduleItem{a, b}, nil, testGapThreshold)

	require.Len(t, mutations, 1)
	m := mutations[0]
	assert.Equal(t, MutationCreate, m.Op)
	assert.Equal(t, entity.ItemKindBreak, m.Kind)
	assert.True(t, m.StartTime.Equal(at(9, 45)))
	assert.Equal(t, 15, m.DurationMinutes)
}

func TestPlanBreaksIsIdempotent(t *testing.T) {
	a := appt(uuid.New(), at(9, 0), 45)
	b := appt(uuid.New(), at(10, 0), 60)
	cover := brk(uuid.New(), at(9, 45), 15)

	mutations := PlanBreaks([]entity.ScheduleItem{a, b}, []entity.ScheduleItem{cover}, testGapThreshold)

	assert.Empty(t, mutations, "a reconciled snapshot needs no further mutations")
}

func TestPlanBreaksStretchesExistingBreakWhenGapGrows(t *testing.T) {
	a := appt(uuid.New(), at(9, 0), 45)
	b := appt(uuid.New(), at(10, 10), 60) // gap grew to 25 minutes
	cover := brk(uuid.New(), at(9, 45), 15)

	mutations := PlanBreaks([]entity.ScheduleItem{a, b}, []entity.ScheduleItem{cover}, testGapThreshold)

	require.Len(t, mutations, 1)
	m := mutations[0]
	assert.Equal(t, MutationUpdate, m.Op)
	assert.Equal(t, cover.ID, m.ID)
	assert.True(t, m.StartTime.Equal(at(9, 45)))
	assert.Equal(t, 25, m.DurationMinutes)
}

func TestPlanBreaksShrinksExistingBreakWhenGapShrinks(t *testing.T) {
	a := appt(uuid.New(), at(9, 0), 45)
	b := appt(uuid.New(), at(9, 50), 60) // gap shrank to 5 minutes
	cover := brk(uuid.New(), at(9, 45), 15)

	mutations := PlanBreaks([]entity.ScheduleItem{a, b}, []entity.ScheduleItem{cover}, testGapThreshold)

	require.Len(t, mutations, 1)
	m := mutations[0]
	assert.Equal(t, MutationUpdate, m.Op)
	assert.Equal(t, cover.ID, m.ID)
	assert.Equal(t, 5, m.DurationMinutes)
}

func TestPlanBreaksDeletesBreakWhenGapExceedsThreshold(t *testing.T) {
	a := appt(uuid.New(), at(9, 0), 45)
	b := appt(uuid.New(), at(11, 0), 60) // 75 minute gap gets no break
	stale := brk(uuid.New(), at(9, 45), 15)

	mutations := PlanBreaks([]entity.ScheduleItem{a, b}, []entity.ScheduleItem{stale}, testGapThreshold)

	require.Len(t, mutations, 1)
	assert.Equal(t, MutationDelete, mutations[0].Op)
	assert.Equal(t, stale.ID, mutations[0].ID)
}

func TestPlanBreaksSkipsTouchingAppointments(t *testing.T) {
	a := appt(uuid.New(), at(9, 0), 60)
	b := appt(uuid.New(), at(10, 0), 60) // zero gap

	mutations := PlanBreaks([]entity.ScheduleItem{a, b}, nil, testGapThreshold)

	assert.Empty(t, mutations)
}

func TestPlanBreaksSkipsOverlappingAppointments(t *testing.T) {
	// Overlapping pairs can transiently exist mid-edit; they are skipped,
	// never treated as an error.
	a := appt(uuid.New(), at(9, 0), 90)
	b := appt(uuid.New(), at(10, 0), 60)

	mutations := PlanBreaks([]entity.ScheduleItem{a, b}, nil, testGapThreshold)

	assert.Empty(t, mutations)
}

func TestPlanBreaksDeletesOrphanedBreak(t *testing.T) {
	a := appt(uuid.New(), at(9, 0), 60)
	orphan := brk(uuid.New(), at(14, 0), 15) // no surrounding appointment pair

	mutations := PlanBreaks([]entity.ScheduleItem{a}, []entity.ScheduleItem{orphan}, testGapThreshold)

	require.Len(t, mutations, 1)
	assert.Equal(t, MutationDelete, mutations[0].Op)
	assert.Equal(t, orphan.ID, mutations[0].ID)
}

func TestPlanBreaksKeepsOneBreakPerGap(t *testing.T) {
	a := appt(uuid.New(), at(9, 0), 45)
	b := appt(uuid.New(), at(10, 15), 60) // 30 minute gap
	first := brk(uuid.New(), at(9, 45), 10)
	second := brk(uuid.New(), at(10, 0), 10)

	mutations := PlanBreaks([]entity.ScheduleItem{a, b}, []entity.ScheduleItem{first, second}, testGapThreshold)

	var updates, deletes []Mutation
	for _, m := range mutations {
		switch m.Op {
		case MutationUpdate:
			updates = append(updates, m)
		case MutationDelete:
			deletes = append(deletes, m)
		}
	}

	require.Len(t, updates, 1, "the earliest break is stretched to span the gap")
	assert.Equal(t, first.ID, updates[0].ID)
	assert.True(t, updates[0].StartTime.Equal(at(9, 45)))
	assert.Equal(t, 30, updates[0].DurationMinutes)

	require.Len(t, deletes, 1, "the extra break would collide once the holder spans the gap")
	assert.Equal(t, second.ID, deletes[0].ID)
}

func TestPlanBreaksHandlesMultipleGaps(t *testing.T) {
	a := appt(uuid.New(), at(9, 0), 45)   // gap 09:45-10:00
	b := appt(uuid.New(), at(10, 0), 60)  // gap 11:00-11:20
	c := appt(uuid.New(), at(11, 20), 40) // big gap after c gets nothing
	d := appt(uuid.New(), at(14, 0), 60)

	mutations := PlanBreaks([]entity.ScheduleItem{d, c, a, b}, nil, testGapThreshold)

	require.Len(t, mutations, 2)
	assert.True(t, mutations[0].StartTime.Equal(at(9, 45)))
	assert.Equal(t, 15, mutations[0].DurationMinutes)
	assert.True(t, mutations[1].StartTime.Equal(at(11, 0)))
	assert.Equal(t, 20, mutations[1].DurationMinutes)
}

func TestPlanBreaksGapExactlyAtThreshold(t *testing.T) {
	a := appt(uuid.New(), at(9, 0), 60)
	b := appt(uuid.New(), at(10, 30), 60) // exactly 30 minutes

	mutations := PlanBreaks([]entity.ScheduleItem{a, b}, nil, testGapThreshold)

	require.Len(t, mutations, 1)
	assert.Equal(t, MutationCreate, mutations[0].Op)
	assert.Equal(t, 30, mutations[0].DurationMinutes)
}

func TestPlanBreaksGapJustOverThreshold(t *testing.T) {
	a := appt(uuid.New(), at(9, 0), 60)
	b := appt(uuid.New(), at(10, 31), 60) // 31 minutes

	mutations := PlanBreaks([]entity.ScheduleItem{a, b}, nil, testGapThreshold)

	assert.Empty(t, mutations)
}
