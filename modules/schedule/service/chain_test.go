package service

import (
	"testing"

	"github.com/Arsonist406/MassagePlanner/modules/schedule/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func chainIDs(chain []entity.ScheduleItem) []uuid.UUID {
	ids := make([]uuid.UUID, len(chain))
	for i := range chain {
		ids[i] = chain[i].ID
	}
	return ids
}

func TestTouchingAfterCollectsEdgeToEdgeRun(t *testing.T) {
	a := appt(uuid.New(), at(9, 0), 60)   // 09:00-10:00
	b := brk(uuid.New(), at(10, 0), 30)   // 10:00-10:30
	c := appt(uuid.New(), at(10, 30), 45) // 10:30-11:15
	d := appt(uuid.New(), at(11, 20), 30) // 11:20 — 5 minute gap breaks the chain
	items := []entity.ScheduleItem{d, c, a, b}

	chain := TouchingAfter(items, a.ID)

	assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, chainIDs(chain))
}

func TestTouchingAfterStopsAtOneMinuteGap(t *testing.T) {
	a := appt(uuid.New(), at(9, 0), 60)
	b := appt(uuid.New(), at(10, 1), 30)
	items := []entity.ScheduleItem{a, b}

	chain := TouchingAfter(items, a.ID)

	assert.Equal(t, []uuid.UUID{a.ID}, chainIDs(chain))
}

func TestTouchingBeforeWalksBackward(t *testing.T) {
	a := appt(uuid.New(), at(9, 0), 60)
	b := brk(uuid.New(), at(10, 0), 30)
	c := appt(uuid.New(), at(10, 30), 45)
	items := []entity.ScheduleItem{a, b, c}

	chain := TouchingBefore(items, c.ID)

	assert.Equal(t, []uuid.UUID{c.ID, b.ID, a.ID}, chainIDs(chain))
}

func TestTouchingChainSingleton(t *testing.T) {
	a := appt(uuid.New(), at(9, 0), 60)
	far := appt(uuid.New(), at(14, 0), 60)
	items := []entity.ScheduleItem{a, far}

	assert.Equal(t, []uuid.UUID{a.ID}, chainIDs(TouchingAfter(items, a.ID)))
	assert.Equal(t, []uuid.UUID{a.ID}, chainIDs(TouchingBefore(items, a.ID)))
}

func TestTouchingChainUnknownAnchor(t *testing.T) {
	items := []entity.ScheduleItem{appt(uuid.New(), at(9, 0), 60)}

	assert.Nil(t, TouchingAfter(items, uuid.New()))
	assert.Nil(t, TouchingBefore(items, uuid.New()))
}
