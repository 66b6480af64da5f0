package router

import (
	"github.com/Arsonist406/MassagePlanner/core/middleware"
	"github.com/Arsonist406/MassagePlanner/modules/schedule/controller"

	"github.com/labstack/echo/v4"
)

// ScheduleRouter registers the schedule routes
type ScheduleRouter struct {
	ScheduleController *controller.ScheduleController
}

func NewScheduleRouter(scheduleController *controller.ScheduleController) *ScheduleRouter {
	return &ScheduleRouter{
		ScheduleController: scheduleController,
	}
}

func (r *ScheduleRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	schedule := v1.Group("/schedule")

	// Day view
	schedule.GET("/items", r.ScheduleController.GetDaySchedule)

	// Appointments
	schedule.POST("/appointments", r.ScheduleController.CreateAppointment)
	schedule.PUT("/appointments/:id", r.ScheduleController.UpdateAppointment)
	schedule.DELETE("/appointments/:id", r.ScheduleController.DeleteAppointment)
	schedule.POST("/appointments/:id/bulk-shift", r.ScheduleController.BulkShift)

	// Placement operations on any item
	schedule.POST("/items/:id/shift", r.ScheduleController.Shift)
	schedule.POST("/items/:id/drag", r.ScheduleController.Drag)
	schedule.POST("/items/:id/resize", r.ScheduleController.Resize)

	// Manual break edits
	schedule.POST("/breaks", r.ScheduleController.CreateBreak)
	schedule.PUT("/breaks/:id", r.ScheduleController.MoveBreak)
	schedule.DELETE("/breaks/:id", r.ScheduleController.DeleteBreak)

	// Reconciliation
	schedule.POST("/reconcile", r.ScheduleController.ReconcileNow)
	schedule.GET("/reconcile/status", r.ScheduleController.GetReconcileStatus)
}
