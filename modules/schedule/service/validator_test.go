package service

import (
	"testing"
	"time"

	"github.com/Arsonist406/MassagePlanner/modules/schedule/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func appt(id uuid.UUID, start time.Time, durationMinutes int) entity.ScheduleItem {
	item := entity.ScheduleItem{
		Kind:            entity.ItemKindAppointment,
		StartTime:       start,
		DurationMinutes: durationMinutes,
		EndTime:         entity.CalculateEndTime(start, durationMinutes),
	}
	item.ID = id
	return item
}

func brk(id uuid.UUID, start time.Time, durationMinutes int) entity.ScheduleItem {
	item := entity.ScheduleItem{
		Kind:            entity.ItemKindBreak,
		StartTime:       start,
		DurationMinutes: durationMinutes,
		EndTime:         entity.CalculateEndTime(start, durationMinutes),
	}
	item.ID = id
	return item
}

func testWindow() Window {
	return Window{StartHour: 8, EndHour: 19}
}

func TestCanPlaceRejectsBeforeOpening(t *testing.T) {
	v := CanPlace(Candidate{
		Kind:            entity.ItemKindAppointment,
		StartTime:       at(7, 30),
		DurationMinutes: 60,
	}, nil, testWindow())

	assert.False(t, v.Allowed)
	assert.Equal(t, ViolationBounds, v.Violation)
	assert.Contains(t, v.Reason, "before the operating window opens")
}

func TestCanPlaceRejectsPastClosing(t *testing.T) {
	v := CanPlace(Candidate{
		Kind:            entity.ItemKindAppointment,
		StartTime:       at(18, 30),
		DurationMinutes: 60,
	}, nil, testWindow())

	assert.False(t, v.Allowed)
	assert.Equal(t, ViolationBounds, v.Violation)
	assert.Contains(t, v.Reason, "after the operating window closes")
}

func TestCanPlaceAllowsExactWindowFit(t *testing.T) {
	v := CanPlace(Candidate{
		Kind:            entity.ItemKindAppointment,
		StartTime:       at(8, 0),
		DurationMinutes: 11 * 60,
	}, nil, testWindow())

	assert.True(t, v.Allowed)
}

func TestCanPlaceDetectsOverlap(t *testing.T) {
	existing := appt(uuid.New(), at(10, 0), 60)

	v := CanPlace(Candidate{
		Kind:            entity.ItemKindAppointment,
		StartTime:       at(10, 30),
		DurationMinutes: 60,
	}, []entity.ScheduleItem{existing}, testWindow())

	assert.False(t, v.Allowed)
	assert.Equal(t, ViolationOverlap, v.Violation)
	assert.NotNil(t, v.Conflict)
	assert.Equal(t, existing.ID, v.Conflict.ID)
}

func TestCanPlaceTouchingEndpointsDoNotCollide(t *testing.T) {
	existing := appt(uuid.New(), at(10, 0), 60)
	items := []entity.ScheduleItem{existing}

	before := CanPlace(Candidate{
		Kind:            entity.ItemKindAppointment,
		StartTime:       at(9, 0),
		DurationMinutes: 60,
	}, items, testWindow())
	after := CanPlace(Candidate{
		Kind:            entity.ItemKindAppointment,
		StartTime:       at(11, 0),
		DurationMinutes: 60,
	}, items, testWindow())

	assert.True(t, before.Allowed, "ending exactly at the other's start is legal")
	assert.True(t, after.Allowed, "starting exactly at the other's end is legal")
}

func TestCanPlaceAppointmentIgnoresBreaks(t *testing.T) {
	b := brk(uuid.New(), at(10, 0), 15)

	v := CanPlace(Candidate{
		Kind:            entity.ItemKindAppointment,
		StartTime:       at(9, 55),
		DurationMinutes: 30,
	}, []entity.ScheduleItem{b}, testWindow())

	assert.True(t, v.Allowed, "breaks yield to appointment placement")
}

func TestCanPlaceBreakCollidesWithEverything(t *testing.T) {
	a := appt(uuid.New(), at(10, 0), 60)
	b := brk(uuid.New(), at(12, 0), 15)
	items := []entity.ScheduleItem{a, b}

	overAppt := CanPlace(Candidate{
		Kind:            entity.ItemKindBreak,
		StartTime:       at(10, 30),
		DurationMinutes: 15,
	}, items, testWindow())
	overBreak := CanPlace(Candidate{
		Kind:            entity.ItemKindBreak,
		StartTime:       at(12, 5),
		DurationMinutes: 15,
	}, items, testWindow())

	assert.False(t, overAppt.Allowed)
	assert.Equal(t, ViolationOverlap, overAppt.Violation)
	assert.False(t, overBreak.Allowed)
	assert.Equal(t, ViolationOverlap, overBreak.Violation)
}

func TestCanPlaceExcludesTheItemItself(t *testing.T) {
	id := uuid.New()
	existing := appt(id, at(10, 0), 60)

	v := CanPlace(Candidate{
		ID:              id,
		Kind:            entity.ItemKindAppointment,
		StartTime:       at(10, 15),
		DurationMinutes: 60,
	}, []entity.ScheduleItem{existing}, testWindow())

	assert.True(t, v.Allowed, "an item never collides with its own previous position")
}
