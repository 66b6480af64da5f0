package service

import (
	"math"
	"time"

	"github.com/Arsonist406/MassagePlanner/core/config"
)

// Window is the operating window of the day, [StartHour, EndHour).
// Items must fall entirely inside it. Bounds are wall-clock hour markers;
// only the hour/minute of an instant matters, never the calendar date.
type Window struct {
	StartHour int
	EndHour   int
}

func (w Window) StartMinutes() int {
	return w.StartHour * 60
}

func (w Window) EndMinutes() int {
	return w.EndHour * 60
}

// minutesOfDay maps an instant to its minute offset from local midnight.
func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Timeline converts between wall-clock instants and pixel offsets on the
// visual axis under the linear mapping
// pixels = (hour - dayStartHour + minute/60) * pixelsPerHour.
// All inputs come from configuration passed in at construction; nothing is
// read from ambient clock state.
type Timeline struct {
	Window        Window
	PixelsPerHour float64
	SnapMinutes   int
}

func NewTimeline(cfg config.ScheduleConfig) *Timeline {
	return &Timeline{
		Window:        Window{StartHour: cfg.DayStartHour, EndHour: cfg.DayEndHour},
		PixelsPerHour: cfg.PixelsPerHour,
		SnapMinutes:   cfg.SnapMinutes,
	}
}

// PositionOf returns the pixel offset of an instant on the axis.
func (t *Timeline) PositionOf(start time.Time) float64 {
	minutes := float64(minutesOfDay(start) - t.Window.StartMinutes())
	return minutes / 60.0 * t.PixelsPerHour
}

// TimeAt inverts the mapping for a raw pixel offset on the given day,
// snaps the result to the nearest snap multiple and clamps it into the
// operating window. A result landing exactly on a window boundary is kept.
func (t *Timeline) TimeAt(offsetPx float64, day time.Time) time.Time {
	minutes := offsetPx / t.PixelsPerHour * 60.0
	minuteOfDay := int(math.Round(minutes/float64(t.SnapMinutes))) * t.SnapMinutes
	minuteOfDay += t.Window.StartMinutes()

	if minuteOfDay < t.Window.StartMinutes() {
		minuteOfDay = t.Window.StartMinutes()
	}
	if minuteOfDay > t.Window.EndMinutes() {
		minuteOfDay = t.Window.EndMinutes()
	}

	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).
		Add(time.Duration(minuteOfDay) * time.Minute)
}

// SnapDuration clamps a duration to the minimum granularity and rounds it
// to the nearest snap multiple.
func (t *Timeline) SnapDuration(durationMinutes int, minMinutes int) int {
	snapped := int(math.Round(float64(durationMinutes)/float64(t.SnapMinutes))) * t.SnapMinutes
	if snapped < minMinutes {
		snapped = minMinutes
	}
	return snapped
}
