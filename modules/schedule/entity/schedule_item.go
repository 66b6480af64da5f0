package entity

import (
	"time"

	"github.com/Arsonist406/MassagePlanner/core/entity"
)

// ItemKind discriminates the two schedule item variants. Breaks are
// derivative items maintained by the auto-break reconciler; appointments
// are the user's ground truth.
type ItemKind string

const (
	ItemKindAppointment ItemKind = "appointment"
	ItemKindBreak       ItemKind = "break"
)

// ScheduleItem is one entry on the day timeline (appointments table and
// breaks share the schedule_items table, discriminated by kind).
// EndTime is persisted redundantly for range queries but is always derived
// from StartTime + DurationMinutes on write; it is never accepted from
// callers.
type ScheduleItem struct {
	Kind            ItemKind  `db:"kind" json:"kind"`
	StartTime       time.Time `db:"start_time" json:"start_time"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	EndTime         time.Time `db:"end_time" json:"end_time"`
	ClientName      *string   `db:"client_name" json:"client_name,omitempty"`
	Notes           *string   `db:"notes" json:"notes,omitempty"`
	entity.BaseEntity
}

// CalculateEndTime derives the end instant. Both the engine and the
// repository use this so the stored column can never drift from its inputs.
func CalculateEndTime(startTime time.Time, durationMinutes int) time.Time {
	return startTime.Add(time.Duration(durationMinutes) * time.Minute)
}

// End recomputes the derived end time from the item's current fields.
func (i *ScheduleItem) End() time.Time {
	return CalculateEndTime(i.StartTime, i.DurationMinutes)
}

func (i *ScheduleItem) IsAppointment() bool {
	return i.Kind == ItemKindAppointment
}

func (i *ScheduleItem) IsBreak() bool {
	return i.Kind == ItemKindBreak
}
