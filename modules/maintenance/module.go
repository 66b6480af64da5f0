package maintenance

import (
	"context"

	"github.com/Arsonist406/MassagePlanner/core/cache"
	"github.com/Arsonist406/MassagePlanner/core/config"
	"github.com/Arsonist406/MassagePlanner/core/constants"
	"github.com/Arsonist406/MassagePlanner/core/database"
	"github.com/Arsonist406/MassagePlanner/core/logger"
	"github.com/Arsonist406/MassagePlanner/modules/maintenance/service"
	"github.com/Arsonist406/MassagePlanner/modules/schedule/repository"

	"github.com/hibiken/asynq"
)

// Worker owns the asynq server processing maintenance tasks and the
// scheduler enqueueing them on their cron specs.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

// Init builds the maintenance worker. The caller starts and stops it.
func Init(cfg *config.Config, db database.IDatabase, c cache.Cache) (*Worker, error) {
	repo := repository.NewScheduleRepository(db)
	svc := service.NewMaintenanceService(repo, db, c, cfg.Maintenance.RetentionDays)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Maintenance.WorkerConcurrency,
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(constants.TaskCleanup, func(ctx context.Context, t *asynq.Task) error {
		return svc.Cleanup(ctx)
	})
	mux.HandleFunc(constants.TaskKeepAlive, func(ctx context.Context, t *asynq.Task) error {
		return svc.KeepAlive(ctx)
	})

	scheduler := asynq.NewScheduler(redisOpt, nil)
	if _, err := scheduler.Register(cfg.Maintenance.CleanupSpec, asynq.NewTask(constants.TaskCleanup, nil)); err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(cfg.Maintenance.KeepAliveSpec, asynq.NewTask(constants.TaskKeepAlive, nil)); err != nil {
		return nil, err
	}

	return &Worker{server: server, scheduler: scheduler, mux: mux}, nil
}

// Start launches the task server and scheduler in the background.
func (w *Worker) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return err
	}
	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return err
	}
	logger.Info("Maintenance:Worker:Started")
	return nil
}

// Shutdown stops the scheduler and drains the task server.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
	logger.Info("Maintenance:Worker:Stopped")
}
