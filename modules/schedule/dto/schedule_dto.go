package dto

import (
	"time"

	"github.com/Arsonist406/MassagePlanner/modules/schedule/entity"
)

// ===================== Request DTOs =====================

// CreateAppointmentRequest books a new appointment.
type CreateAppointmentRequest struct {
	ClientName      string    `json:"client_name" validate:"required,max=40"`
	Notes           string    `json:"notes" validate:"max=300"`
	StartTime       time.Time `json:"start_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=5"`
}

// UpdateAppointmentRequest edits client-facing fields only; placement
// changes go through the dedicated placement endpoints.
type UpdateAppointmentRequest struct {
	ClientName string `json:"client_name" validate:"required,max=40"`
	Notes      string `json:"notes" validate:"max=300"`
}

type ShiftRequest struct {
	DeltaMinutes int `json:"delta_minutes" validate:"required"`
}

// DragRequest carries the raw pixel positions of a pointer drag. The
// backend resolves them to snapped wall-clock times; a travel below the
// click threshold is treated as a click and ignored.
type DragRequest struct {
	FromPx float64 `json:"from_px"`
	ToPx   float64 `json:"to_px"`
}

type ResizeRequest struct {
	DurationMinutes int `json:"duration_minutes" validate:"required,min=5"`
}

type BulkShiftRequest struct {
	DeltaMinutes int    `json:"delta_minutes" validate:"required"`
	Direction    string `json:"direction" validate:"required,oneof=forward backward"`
}

// CreateBreakRequest places a manual break. Manual breaks in illegitimate
// positions are tolerated until the next reconciliation pass.
type CreateBreakRequest struct {
	StartTime       time.Time `json:"start_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=5"`
}

type MoveBreakRequest struct {
	StartTime       time.Time `json:"start_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=5"`
}

// ===================== Response DTOs =====================

// QuickActions reports which one-step adjustments are currently legal for
// an item, derived by probing the validator with hypothetical deltas.
type QuickActions struct {
	CanShiftEarlier bool `json:"can_shift_earlier"`
	CanShiftLater   bool `json:"can_shift_later"`
	CanExtend       bool `json:"can_extend"`
	CanShorten      bool `json:"can_shorten"`
}

type ScheduleItemResponse struct {
	ID              string        `json:"id"`
	Kind            string        `json:"kind"`
	StartTime       time.Time     `json:"start_time"`
	EndTime         time.Time     `json:"end_time"`
	DurationMinutes int           `json:"duration_minutes"`
	ClientName      string        `json:"client_name,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	OffsetPx        float64       `json:"offset_px"`
	QuickActions    *QuickActions `json:"quick_actions,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type DayScheduleResponse struct {
	Date         string                 `json:"date"`
	DayStartHour int                    `json:"day_start_hour"`
	DayEndHour   int                    `json:"day_end_hour"`
	Items        []ScheduleItemResponse `json:"items"`
}

type ReconcileStatusResponse struct {
	RanAt    *time.Time `json:"ran_at,omitempty"`
	Created  int        `json:"created"`
	Updated  int        `json:"updated"`
	Deleted  int        `json:"deleted"`
	Failures int        `json:"failures"`
}

// ===================== Mapper Functions =====================

// ToItemResponse maps an entity to its response shape. Offset and quick
// actions are computed by the service, which owns the timeline.
func ToItemResponse(item *entity.ScheduleItem, offsetPx float64, actions *QuickActions) *ScheduleItemResponse {
	resp := &ScheduleItemResponse{
		ID:              item.ID.String(),
		Kind:            string(item.Kind),
		StartTime:       item.StartTime,
		EndTime:         item.End(),
		DurationMinutes: item.DurationMinutes,
		OffsetPx:        offsetPx,
		QuickActions:    actions,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
	if item.ClientName != nil {
		resp.ClientName = *item.ClientName
	}
	if item.Notes != nil {
		resp.Notes = *item.Notes
	}
	return resp
}
