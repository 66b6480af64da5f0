package service

import (
	"fmt"
	"time"

	"github.com/Arsonist406/MassagePlanner/modules/schedule/entity"

	"github.com/google/uuid"
)

// Candidate is a hypothetical placement to validate.
type Candidate struct {
	ID              uuid.UUID
	Kind            entity.ItemKind
	StartTime       time.Time
	DurationMinutes int
}

func (c Candidate) End() time.Time {
	return entity.CalculateEndTime(c.StartTime, c.DurationMinutes)
}

type ViolationKind string

const (
	ViolationNone     ViolationKind = ""
	ViolationBounds   ViolationKind = "bounds"
	ViolationOverlap  ViolationKind = "overlap"
	ViolationNotFound ViolationKind = "not_found"
)

// Verdict is the validator's answer. It never crosses the engine boundary
// as an error; callers translate it for the user.
type Verdict struct {
	Allowed   bool
	Violation ViolationKind
	Conflict  *entity.ScheduleItem
	Reason    string
}

func allowed() Verdict {
	return Verdict{Allowed: true}
}

// CanPlace checks a candidate placement against the operating window and
// every other item in the snapshot. The overlap test is strictly half-open:
// touching endpoints do not collide. Appointments ignore breaks (breaks are
// derivative and yield to appointment placement; the reconciler cleans up
// afterwards), while breaks collide with everything. The first violation
// found decides the verdict.
func CanPlace(c Candidate, items []entity.ScheduleItem, w Window) Verdict {
	startMin := minutesOfDay(c.StartTime)
	endMin := startMin + c.DurationMinutes

	if startMin < w.StartMinutes() {
		return Verdict{
			Violation: ViolationBounds,
			Reason:    fmt.Sprintf("starts before the operating window opens at %02d:00", w.StartHour),
		}
	}
	if endMin > w.EndMinutes() {
		return Verdict{
			Violation: ViolationBounds,
			Reason:    fmt.Sprintf("ends after the operating window closes at %02d:00", w.EndHour),
		}
	}

	candEnd := c.End()
	for i := range items {
		x := &items[i]
		if x.ID == c.ID {
			continue
		}
		if c.Kind == entity.ItemKindAppointment && x.Kind == entity.ItemKindBreak {
			continue
		}
		if c.StartTime.Before(x.End()) && candEnd.After(x.StartTime) {
			return Verdict{
				Violation: ViolationOverlap,
				Conflict:  x,
				Reason: fmt.Sprintf("overlaps the %s from %s to %s",
					x.Kind,
					x.StartTime.Format("15:04"),
					x.End().Format("15:04")),
			}
		}
	}

	return allowed()
}

// withinWindow checks only the operating-window part of a placement. Bulk
// shifts move a touching chain rigidly, so relative gaps are preserved and
// mutual overlap never needs rechecking.
func withinWindow(start time.Time, durationMinutes int, w Window) bool {
	startMin := minutesOfDay(start)
	return startMin >= w.StartMinutes() && startMin+durationMinutes <= w.EndMinutes()
}
