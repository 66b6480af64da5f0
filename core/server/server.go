package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Arsonist406/MassagePlanner/core/cache"
	"github.com/Arsonist406/MassagePlanner/core/config"
	"github.com/Arsonist406/MassagePlanner/core/database"
	"github.com/Arsonist406/MassagePlanner/core/logger"
	"github.com/Arsonist406/MassagePlanner/core/middleware"
	"github.com/Arsonist406/MassagePlanner/modules/maintenance"
	"github.com/Arsonist406/MassagePlanner/modules/schedule"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

// Run boots the whole service: config, stores, HTTP routes and the
// maintenance worker. It blocks until an interrupt arrives, then shuts
// everything down in reverse order.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	c, err := cache.NewCache(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	mw := middleware.NewMiddleware()
	e.Use(mw.RequestID())
	e.Use(mw.RequestLogger())

	schedule.Init(e, db, c, mw)

	worker, err := maintenance.Init(cfg, db, c)
	if err != nil {
		return fmt.Errorf("init maintenance worker: %w", err)
	}
	if err := worker.Start(); err != nil {
		return fmt.Errorf("start maintenance worker: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("Server:Starting", "addr", addr, "env", cfg.Server.Env)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start:Error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server:ShuttingDown")
	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server:Stopped")
	return nil
}
