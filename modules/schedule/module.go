package schedule

import (
	"github.com/Arsonist406/MassagePlanner/core/cache"
	"github.com/Arsonist406/MassagePlanner/core/config"
	"github.com/Arsonist406/MassagePlanner/core/database"
	"github.com/Arsonist406/MassagePlanner/core/middleware"
	"github.com/Arsonist406/MassagePlanner/modules/schedule/controller"
	"github.com/Arsonist406/MassagePlanner/modules/schedule/repository"
	"github.com/Arsonist406/MassagePlanner/modules/schedule/router"
	"github.com/Arsonist406/MassagePlanner/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

// Init wires the schedule module and registers its routes
func Init(e *echo.Echo, db database.IDatabase, c cache.Cache, mw *middleware.Middleware) {
	cfg := config.Get().Schedule

	repo := repository.NewScheduleRepository(db)
	svc := service.NewScheduleService(repo, c, cfg)
	ctrl := controller.NewScheduleController(svc)
	rtr := router.NewScheduleRouter(ctrl)

	rtr.Setup(e, mw)
}
