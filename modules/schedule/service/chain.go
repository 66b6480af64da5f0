package service

import (
	"github.com/Arsonist406/MassagePlanner/modules/schedule/entity"

	"github.com/google/uuid"
)

// findItem returns the item with the given id, or nil.
func findItem(items []entity.ScheduleItem, id uuid.UUID) *entity.ScheduleItem {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

// TouchingAfter returns the maximal chain of items connected edge-to-edge
// forward from the anchor, anchor first. Only exact-equality touching
// (zero gap) connects; a one-minute gap breaks the chain. Both
// appointments and breaks participate.
func TouchingAfter(items []entity.ScheduleItem, anchorID uuid.UUID) []entity.ScheduleItem {
	anchor := findItem(items, anchorID)
	if anchor == nil {
		return nil
	}

	chain := []entity.ScheduleItem{*anchor}
	seen := map[uuid.UUID]bool{anchor.ID: true}
	chainEnd := anchor.End()

	for {
		var next *entity.ScheduleItem
		for i := range items {
			if seen[items[i].ID] {
				continue
			}
			if items[i].StartTime.Equal(chainEnd) {
				next = &items[i]
				break
			}
		}
		if next == nil {
			return chain
		}
		chain = append(chain, *next)
		seen[next.ID] = true
		chainEnd = next.End()
	}
}

// TouchingBefore is the backward mirror: items whose end equals the current
// chain start, anchor first.
func TouchingBefore(items []entity.ScheduleItem, anchorID uuid.UUID) []entity.ScheduleItem {
	anchor := findItem(items, anchorID)
	if anchor == nil {
		return nil
	}

	chain := []entity.ScheduleItem{*anchor}
	seen := map[uuid.UUID]bool{anchor.ID: true}
	chainStart := anchor.StartTime

	for {
		var prev *entity.ScheduleItem
		for i := range items {
			if seen[items[i].ID] {
				continue
			}
			if items[i].End().Equal(chainStart) {
				prev = &items[i]
				break
			}
		}
		if prev == nil {
			return chain
		}
		chain = append(chain, *prev)
		seen[prev.ID] = true
		chainStart = prev.StartTime
	}
}
