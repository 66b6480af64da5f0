package controller

import (
	"time"

	"github.com/Arsonist406/MassagePlanner/core/controller"
	"github.com/Arsonist406/MassagePlanner/core/errors"
	"github.com/Arsonist406/MassagePlanner/modules/schedule/dto"
	"github.com/Arsonist406/MassagePlanner/modules/schedule/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ScheduleController handles schedule HTTP requests
type ScheduleController struct {
	controller.BaseController
	ScheduleService service.ScheduleServiceInterface
}

func NewScheduleController(svc service.ScheduleServiceInterface) *ScheduleController {
	return &ScheduleController{
		BaseController:  controller.NewBaseController(),
		ScheduleService: svc,
	}
}

// GetDaySchedule handles GET /schedule/items?date=YYYY-MM-DD
func (c *ScheduleController) GetDaySchedule(ctx echo.Context) error {
	dateStr := ctx.QueryParam("date")
	day := time.Now()
	if dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid date, expected YYYY-MM-DD")
		}
		day = parsed
	}

	result, appErr := c.ScheduleService.GetDaySchedule(ctx.Request().Context(), day)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// CreateAppointment handles POST /schedule/appointments
func (c *ScheduleController) CreateAppointment(ctx echo.Context) error {
	var req dto.CreateAppointmentRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ScheduleService.CreateAppointment(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Appointment created successfully")
}

// UpdateAppointment handles PUT /schedule/appointments/:id
func (c *ScheduleController) UpdateAppointment(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid appointment ID")
	}

	var req dto.UpdateAppointmentRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ScheduleService.UpdateAppointmentDetails(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Appointment updated successfully")
}

// DeleteAppointment handles DELETE /schedule/appointments/:id
func (c *ScheduleController) DeleteAppointment(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid appointment ID")
	}

	if appErr := c.ScheduleService.DeleteAppointment(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Appointment deleted successfully")
}

// Shift handles POST /schedule/items/:id/shift
func (c *ScheduleController) Shift(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid item ID")
	}

	var req dto.ShiftRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ScheduleService.Shift(ctx.Request().Context(), id, req.DeltaMinutes)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Item moved successfully")
}

// Drag handles POST /schedule/items/:id/drag
func (c *ScheduleController) Drag(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid item ID")
	}

	var req dto.DragRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ScheduleService.Drag(ctx.Request().Context(), id, req.FromPx, req.ToPx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Item moved successfully")
}

// Resize handles POST /schedule/items/:id/resize
func (c *ScheduleController) Resize(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid item ID")
	}

	var req dto.ResizeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ScheduleService.Resize(ctx.Request().Context(), id, req.DurationMinutes)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Item resized successfully")
}

// BulkShift handles POST /schedule/appointments/:id/bulk-shift
func (c *ScheduleController) BulkShift(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid appointment ID")
	}

	var req dto.BulkShiftRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	direction := service.BulkShiftForward
	if req.Direction == string(service.BulkShiftBackward) {
		direction = service.BulkShiftBackward
	}

	if appErr := c.ScheduleService.BulkShift(ctx.Request().Context(), id, req.DeltaMinutes, direction); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Chain shifted successfully")
}

// CreateBreak handles POST /schedule/breaks
func (c *ScheduleController) CreateBreak(ctx echo.Context) error {
	var req dto.CreateBreakRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ScheduleService.CreateBreak(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Break created successfully")
}

// MoveBreak handles PUT /schedule/breaks/:id
func (c *ScheduleController) MoveBreak(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid break ID")
	}

	var req dto.MoveBreakRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ScheduleService.MoveBreak(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Break moved successfully")
}

// DeleteBreak handles DELETE /schedule/breaks/:id
func (c *ScheduleController) DeleteBreak(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid break ID")
	}

	if appErr := c.ScheduleService.DeleteBreak(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Break deleted successfully")
}

// ReconcileNow handles POST /schedule/reconcile
func (c *ScheduleController) ReconcileNow(ctx echo.Context) error {
	if appErr := c.ScheduleService.ReconcileNow(ctx.Request().Context()); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Reconciliation pass completed")
}

// GetReconcileStatus handles GET /schedule/reconcile/status
func (c *ScheduleController) GetReconcileStatus(ctx echo.Context) error {
	result, appErr := c.ScheduleService.GetReconcileStatus(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}
