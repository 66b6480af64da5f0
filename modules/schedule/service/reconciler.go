package service

import (
	"math"
	"sort"
	"time"

	"github.com/Arsonist406/MassagePlanner/modules/schedule/entity"

	"github.com/google/uuid"
)

// timeRange is a half-open [Start, End) interval between two appointments.
type timeRange struct {
	Start time.Time
	End   time.Time
}

func (r timeRange) contains(start, end time.Time) bool {
	return !start.Before(r.Start) && !end.After(r.End)
}

func (r timeRange) overlaps(start, end time.Time) bool {
	return start.Before(r.End) && end.After(r.Start)
}

// PlanBreaks computes the minimal break mutations that restore the
// legitimacy invariant: every gap between consecutive appointments of
// length (0, gapThreshold] is covered by exactly one break spanning it, and
// no break exists outside such a gap. Pure; safe to run on any snapshot.
//
// Running it twice on an already-reconciled snapshot yields no mutations.
func PlanBreaks(appointments, breaks []entity.ScheduleItem, gapThresholdMinutes int) []Mutation {
	appts := make([]entity.ScheduleItem, len(appointments))
	copy(appts, appointments)
	sort.Slice(appts, func(i, j int) bool {
		return appts[i].StartTime.Before(appts[j].StartTime)
	})

	brks := make([]entity.ScheduleItem, len(breaks))
	copy(brks, breaks)
	sort.Slice(brks, func(i, j int) bool {
		return brks[i].StartTime.Before(brks[j].StartTime)
	})

	var mutations []Mutation
	var deletes []Mutation
	legitGaps := make([]timeRange, 0, len(appts))
	claimed := make(map[uuid.UUID]bool)
	removed := make(map[uuid.UUID]bool)

	for i := 0; i+1 < len(appts); i++ {
		prev := &appts[i]
		next := &appts[i+1]

		gap := next.StartTime.Sub(prev.End())
		gapMinutes := gap.Minutes()
		// Zero or negative gaps (touching or overlapping pairs) are
		// skipped, not errors; oversized gaps get no break at all.
		if gapMinutes <= 0 || gapMinutes > float64(gapThresholdMinutes) {
			continue
		}

		gapStart := prev.End()
		gapEnd := next.StartTime
		duration := int(math.Floor(gapMinutes))
		legitGaps = append(legitGaps, timeRange{Start: gapStart, End: gapEnd})

		var holder *entity.ScheduleItem
		for j := range brks {
			b := &brks[j]
			if claimed[b.ID] || removed[b.ID] {
				continue
			}
			if !(timeRange{Start: gapStart, End: gapEnd}).overlaps(b.StartTime, b.End()) {
				continue
			}
			if holder == nil {
				holder = b
				continue
			}
			// A second break touching the same gap would collide with
			// the holder once it is stretched to span the whole gap.
			removed[b.ID] = true
			deletes = append(deletes, Mutation{Op: MutationDelete, Kind: entity.ItemKindBreak, ID: b.ID})
		}

		if holder != nil {
			claimed[holder.ID] = true
			if !holder.StartTime.Equal(gapStart) || holder.DurationMinutes != duration {
				mutations = append(mutations, Mutation{
					Op:              MutationUpdate,
					Kind:            entity.ItemKindBreak,
					ID:              holder.ID,
					StartTime:       gapStart,
					DurationMinutes: duration,
				})
			}
			continue
		}

		mutations = append(mutations, Mutation{
			Op:              MutationCreate,
			Kind:            entity.ItemKindBreak,
			StartTime:       gapStart,
			DurationMinutes: duration,
		})
	}

	// Any break neither claimed above nor fully contained in a legitimate
	// gap is an orphan and goes away.
	for j := range brks {
		b := &brks[j]
		if claimed[b.ID] || removed[b.ID] {
			continue
		}
		contained := false
		for _, g := range legitGaps {
			if g.contains(b.StartTime, b.End()) {
				contained = true
				break
			}
		}
		if !contained {
			deletes = append(deletes, Mutation{Op: MutationDelete, Kind: entity.ItemKindBreak, ID: b.ID})
		}
	}

	return append(mutations, deletes...)
}
