package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Arsonist406/MassagePlanner/core/database"
	"github.com/Arsonist406/MassagePlanner/core/logger"
	"github.com/Arsonist406/MassagePlanner/modules/schedule/entity"

	"github.com/google/uuid"
)

// ScheduleRepository owns the schedule_items table. Appointments and breaks
// live in one table discriminated by kind; end_time is always recomputed
// from start_time + duration_minutes on write.
type ScheduleRepository struct {
	db database.IDatabase
}

func NewScheduleRepository(db database.IDatabase) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ScheduleRepositoryInterface is the persistence contract consumed by the
// schedule services and the auto-break runner.
type ScheduleRepositoryInterface interface {
	ListByKind(ctx context.Context, kind entity.ItemKind) ([]entity.ScheduleItem, error)
	ListAll(ctx context.Context) ([]entity.ScheduleItem, error)
	ListByDay(ctx context.Context, day time.Time) ([]entity.ScheduleItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ScheduleItem, error)
	CreateAppointment(ctx context.Context, item *entity.ScheduleItem) (*entity.ScheduleItem, error)
	UpdateAppointmentDetails(ctx context.Context, id uuid.UUID, clientName string, notes *string) error
	CreateBreak(ctx context.Context, startTime time.Time, durationMinutes int) (*entity.ScheduleItem, error)
	UpdatePlacement(ctx context.Context, id uuid.UUID, startTime time.Time, durationMinutes int) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

const itemColumns = `id, kind, start_time, duration_minutes, end_time, client_name, notes, created_at, updated_at`

func (r *ScheduleRepository) ListByKind(ctx context.Context, kind entity.ItemKind) ([]entity.ScheduleItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM schedule_items
		WHERE kind = $1
		ORDER BY start_time
	`
	var items []entity.ScheduleItem
	if err := r.db.SelectContext(ctx, &items, query, kind); err != nil {
		logger.Error("ScheduleRepository:ListByKind", err)
		return nil, err
	}
	return items, nil
}

func (r *ScheduleRepository) ListAll(ctx context.Context) ([]entity.ScheduleItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM schedule_items
		ORDER BY start_time
	`
	var items []entity.ScheduleItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		logger.Error("ScheduleRepository:ListAll", err)
		return nil, err
	}
	return items, nil
}

func (r *ScheduleRepository) ListByDay(ctx context.Context, day time.Time) ([]entity.ScheduleItem, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT ` + itemColumns + `
		FROM schedule_items
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time
	`
	var items []entity.ScheduleItem
	if err := r.db.SelectContext(ctx, &items, query, dayStart, dayEnd); err != nil {
		logger.Error("ScheduleRepository:ListByDay", err)
		return nil, err
	}
	return items, nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ScheduleItem, error) {
	query := `SELECT ` + itemColumns + ` FROM schedule_items WHERE id = $1`

	var item entity.ScheduleItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ScheduleRepository:GetByID", err)
		return nil, err
	}
	return &item, nil
}

func (r *ScheduleRepository) CreateAppointment(ctx context.Context, item *entity.ScheduleItem) (*entity.ScheduleItem, error) {
	query := `
		INSERT INTO schedule_items (kind, start_time, duration_minutes, end_time, client_name, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + itemColumns + `
	`
	endTime := entity.CalculateEndTime(item.StartTime, item.DurationMinutes)

	var created entity.ScheduleItem
	err := r.db.GetContext(ctx, &created, query,
		entity.ItemKindAppointment, item.StartTime, item.DurationMinutes, endTime,
		item.ClientName, item.Notes)
	if err != nil {
		logger.Error("ScheduleRepository:CreateAppointment", err)
		return nil, err
	}
	return &created, nil
}

func (r *ScheduleRepository) UpdateAppointmentDetails(ctx context.Context, id uuid.UUID, clientName string, notes *string) error {
	query := `
		UPDATE schedule_items
		SET client_name = $2, notes = $3, updated_at = NOW()
		WHERE id = $1 AND kind = $4
	`
	if err := r.db.ExecContext(ctx, query, id, clientName, notes, entity.ItemKindAppointment); err != nil {
		logger.Error("ScheduleRepository:UpdateAppointmentDetails", err)
		return err
	}
	return nil
}

func (r *ScheduleRepository) CreateBreak(ctx context.Context, startTime time.Time, durationMinutes int) (*entity.ScheduleItem, error) {
	query := `
		INSERT INTO schedule_items (kind, start_time, duration_minutes, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + itemColumns + `
	`
	endTime := entity.CalculateEndTime(startTime, durationMinutes)

	var created entity.ScheduleItem
	err := r.db.GetContext(ctx, &created, query,
		entity.ItemKindBreak, startTime, durationMinutes, endTime)
	if err != nil {
		logger.Error("ScheduleRepository:CreateBreak", err)
		return nil, err
	}
	return &created, nil
}

func (r *ScheduleRepository) UpdatePlacement(ctx context.Context, id uuid.UUID, startTime time.Time, durationMinutes int) error {
	query := `
		UPDATE schedule_items
		SET start_time = $2, duration_minutes = $3, end_time = $4, updated_at = NOW()
		WHERE id = $1
	`
	endTime := entity.CalculateEndTime(startTime, durationMinutes)

	if err := r.db.ExecContext(ctx, query, id, startTime, durationMinutes, endTime); err != nil {
		logger.Error("ScheduleRepository:UpdatePlacement", err)
		return err
	}
	return nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM schedule_items WHERE id = $1`
	if err := r.db.ExecContext(ctx, query, id); err != nil {
		logger.Error("ScheduleRepository:Delete", err)
		return err
	}
	return nil
}

// DeleteOlderThan removes items whose end_time predates the cutoff. Used by
// the retention cleanup job only; it deliberately bypasses the reconciler.
func (r *ScheduleRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM schedule_items WHERE end_time < :cutoff`
	res, err := r.db.NamedExecContext(ctx, query, map[string]any{"cutoff": cutoff})
	if err != nil {
		logger.Error("ScheduleRepository:DeleteOlderThan", err)
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}
