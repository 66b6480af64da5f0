package service

import (
	"context"
	"time"

	"github.com/Arsonist406/MassagePlanner/core/cache"
	"github.com/Arsonist406/MassagePlanner/core/database"
	"github.com/Arsonist406/MassagePlanner/core/logger"
	"github.com/Arsonist406/MassagePlanner/modules/schedule/repository"
)

// MaintenanceService runs the periodic housekeeping jobs. These are plain
// batch operations against the raw store; they never touch the auto-break
// reconciler.
type MaintenanceService struct {
	repo          repository.ScheduleRepositoryInterface
	db            database.IDatabase
	cache         cache.Cache
	retentionDays int
}

type MaintenanceServiceInterface interface {
	Cleanup(ctx context.Context) error
	KeepAlive(ctx context.Context) error
}

func NewMaintenanceService(repo repository.ScheduleRepositoryInterface, db database.IDatabase, c cache.Cache, retentionDays int) MaintenanceServiceInterface {
	return &MaintenanceService{
		repo:          repo,
		db:            db,
		cache:         c,
		retentionDays: retentionDays,
	}
}

// Cleanup deletes schedule items that ended before the retention window.
func (s *MaintenanceService) Cleanup(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logger.Error("MaintenanceService:Cleanup:Error", "error", err)
		return err
	}

	logger.Info("MaintenanceService:Cleanup:Done", "deleted", deleted, "cutoff", cutoff)
	return nil
}

// KeepAlive pings the backing stores so managed instances do not idle out.
func (s *MaintenanceService) KeepAlive(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		logger.Error("MaintenanceService:KeepAlive:Database:Error", "error", err)
		return err
	}
	if err := s.cache.Ping(ctx); err != nil {
		logger.Error("MaintenanceService:KeepAlive:Cache:Error", "error", err)
		return err
	}

	logger.Info("MaintenanceService:KeepAlive:OK")
	return nil
}
