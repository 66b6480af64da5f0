package service

import (
	"fmt"
	"math"
	"time"

	"github.com/Arsonist406/MassagePlanner/core/config"
	"github.com/Arsonist406/MassagePlanner/core/constants"
	"github.com/Arsonist406/MassagePlanner/modules/schedule/entity"

	"github.com/google/uuid"
)

type MutationOp string

const (
	MutationCreate MutationOp = "create"
	MutationUpdate MutationOp = "update"
	MutationDelete MutationOp = "delete"
)

// Mutation is one create/update/delete the caller must apply to the store.
// The engine never mutates items directly; it only emits these, so the
// state owner can apply a batch atomically and re-render from one snapshot.
type Mutation struct {
	Op              MutationOp
	Kind            entity.ItemKind
	ID              uuid.UUID // zero for creates
	StartTime       time.Time
	DurationMinutes int
}

// PlacementResult is the tagged outcome of a placement operation: either
// success with the mutations to commit, or a rejection with the specific
// reason. No partial mutation list is ever produced.
type PlacementResult struct {
	Allowed   bool
	Violation ViolationKind
	Reason    string
	Mutations []Mutation
}

func rejected(v Verdict) PlacementResult {
	return PlacementResult{Violation: v.Violation, Reason: v.Reason}
}

func notFound(id uuid.UUID) PlacementResult {
	return PlacementResult{
		Violation: ViolationNotFound,
		Reason:    fmt.Sprintf("schedule item %s no longer exists", id),
	}
}

type BulkShiftDirection string

const (
	BulkShiftForward  BulkShiftDirection = "forward"
	BulkShiftBackward BulkShiftDirection = "backward"
)

// PlacementEngine orchestrates single user-initiated placement changes over
// an in-memory snapshot. All methods are synchronous and pure; persistence
// happens in the caller.
type PlacementEngine struct {
	timeline    *Timeline
	dragClickPx float64
}

func NewPlacementEngine(cfg config.ScheduleConfig) *PlacementEngine {
	return &PlacementEngine{
		timeline:    NewTimeline(cfg),
		dragClickPx: cfg.DragClickPx,
	}
}

func (e *PlacementEngine) Timeline() *Timeline {
	return e.timeline
}

// ShiftByMinutes moves an item by a signed delta and validates the new
// placement under the kind-specific rule.
func (e *PlacementEngine) ShiftByMinutes(items []entity.ScheduleItem, itemID uuid.UUID, deltaMinutes int) PlacementResult {
	item := findItem(items, itemID)
	if item == nil {
		return notFound(itemID)
	}

	newStart := item.StartTime.Add(time.Duration(deltaMinutes) * time.Minute)
	return e.place(items, item, newStart, item.DurationMinutes)
}

// DragTo resolves a raw pixel position to a snapped wall-clock time and
// places the item there. A pointer travel within the click threshold is a
// click, not a move, and is a successful no-op.
func (e *PlacementEngine) DragTo(items []entity.ScheduleItem, itemID uuid.UUID, fromPx, toPx float64) PlacementResult {
	item := findItem(items, itemID)
	if item == nil {
		return notFound(itemID)
	}

	if math.Abs(toPx-fromPx) <= e.dragClickPx {
		return PlacementResult{Allowed: true}
	}

	newStart := e.timeline.TimeAt(toPx, item.StartTime)
	if newStart.Equal(item.StartTime) {
		return PlacementResult{Allowed: true}
	}
	return e.place(items, item, newStart, item.DurationMinutes)
}

// ResizeDuration changes an item's duration in place. The new duration is
// clamped to the minimum granularity, rounded to the snap multiple, and the
// resulting interval is validated exactly like a placement.
func (e *PlacementEngine) ResizeDuration(items []entity.ScheduleItem, itemID uuid.UUID, newDurationMinutes int) PlacementResult {
	item := findItem(items, itemID)
	if item == nil {
		return notFound(itemID)
	}

	duration := e.timeline.SnapDuration(newDurationMinutes, constants.MinDurationMinutes)
	if duration == item.DurationMinutes {
		return PlacementResult{Allowed: true}
	}
	return e.place(items, item, item.StartTime, duration)
}

func (e *PlacementEngine) place(items []entity.ScheduleItem, item *entity.ScheduleItem, newStart time.Time, duration int) PlacementResult {
	candidate := Candidate{
		ID:              item.ID,
		Kind:            item.Kind,
		StartTime:       newStart,
		DurationMinutes: duration,
	}
	verdict := CanPlace(candidate, items, e.timeline.Window)
	if !verdict.Allowed {
		return rejected(verdict)
	}

	return PlacementResult{
		Allowed: true,
		Mutations: []Mutation{{
			Op:              MutationUpdate,
			Kind:            item.Kind,
			ID:              item.ID,
			StartTime:       newStart,
			DurationMinutes: duration,
		}},
	}
}

// BulkShift moves the whole touching chain anchored at an appointment
// rigidly by the delta. Every member's shifted interval is checked against
// the operating window only; the chain moves as one block, so relative gaps
// are preserved and mutual overlap cannot arise. All-or-nothing: one member
// out of bounds rejects the entire operation.
func (e *PlacementEngine) BulkShift(items []entity.ScheduleItem, anchorID uuid.UUID, deltaMinutes int, direction BulkShiftDirection) PlacementResult {
	anchor := findItem(items, anchorID)
	if anchor == nil {
		return notFound(anchorID)
	}

	var chain []entity.ScheduleItem
	if direction == BulkShiftBackward {
		chain = TouchingBefore(items, anchorID)
	} else {
		chain = TouchingAfter(items, anchorID)
	}

	delta := time.Duration(deltaMinutes) * time.Minute
	mutations := make([]Mutation, 0, len(chain))
	for i := range chain {
		member := &chain[i]
		newStart := member.StartTime.Add(delta)
		if !withinWindow(newStart, member.DurationMinutes, e.timeline.Window) {
			return PlacementResult{
				Violation: ViolationBounds,
				Reason: fmt.Sprintf("shifting the chain would push the item at %s outside the operating window",
					member.StartTime.Format("15:04")),
			}
		}
		mutations = append(mutations, Mutation{
			Op:              MutationUpdate,
			Kind:            member.Kind,
			ID:              member.ID,
			StartTime:       newStart,
			DurationMinutes: member.DurationMinutes,
		})
	}

	return PlacementResult{Allowed: true, Mutations: mutations}
}
