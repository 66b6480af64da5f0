package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Arsonist406/MassagePlanner/core/cache"
	"github.com/Arsonist406/MassagePlanner/core/config"
	"github.com/Arsonist406/MassagePlanner/core/constants"
	"github.com/Arsonist406/MassagePlanner/core/errors"
	"github.com/Arsonist406/MassagePlanner/core/logger"
	"github.com/Arsonist406/MassagePlanner/modules/schedule/dto"
	"github.com/Arsonist406/MassagePlanner/modules/schedule/entity"
	"github.com/Arsonist406/MassagePlanner/modules/schedule/repository"

	"github.com/google/uuid"
)

const maxClientNameLen = 40
const maxNotesLen = 300

// ScheduleService orchestrates the timeline engine against the store: it
// fetches snapshots, runs placement operations, applies the emitted
// mutations and triggers auto-break reconciliation.
type ScheduleService struct {
	repo   repository.ScheduleRepositoryInterface
	engine *PlacementEngine
	runner *AutoBreakRunner
	cache  cache.Cache
	cfg    config.ScheduleConfig
}

type ScheduleServiceInterface interface {
	GetDaySchedule(ctx context.Context, day time.Time) (*dto.DayScheduleResponse, *errors.AppError)
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.ScheduleItemResponse, *errors.AppError)
	UpdateAppointmentDetails(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.ScheduleItemResponse, *errors.AppError)
	DeleteAppointment(ctx context.Context, id uuid.UUID) *errors.AppError
	Shift(ctx context.Context, id uuid.UUID, deltaMinutes int) (*dto.ScheduleItemResponse, *errors.AppError)
	Drag(ctx context.Context, id uuid.UUID, fromPx, toPx float64) (*dto.ScheduleItemResponse, *errors.AppError)
	Resize(ctx context.Context, id uuid.UUID, durationMinutes int) (*dto.ScheduleItemResponse, *errors.AppError)
	BulkShift(ctx context.Context, anchorID uuid.UUID, deltaMinutes int, direction BulkShiftDirection) *errors.AppError
	CreateBreak(ctx context.Context, req *dto.CreateBreakRequest) (*dto.ScheduleItemResponse, *errors.AppError)
	MoveBreak(ctx context.Context, id uuid.UUID, req *dto.MoveBreakRequest) (*dto.ScheduleItemResponse, *errors.AppError)
	DeleteBreak(ctx context.Context, id uuid.UUID) *errors.AppError
	ReconcileNow(ctx context.Context) *errors.AppError
	GetReconcileStatus(ctx context.Context) (*dto.ReconcileStatusResponse, *errors.AppError)
}

func NewScheduleService(repo repository.ScheduleRepositoryInterface, c cache.Cache, cfg config.ScheduleConfig) ScheduleServiceInterface {
	return &ScheduleService{
		repo:   repo,
		engine: NewPlacementEngine(cfg),
		runner: NewAutoBreakRunner(repo, c, cfg),
		cache:  c,
		cfg:    cfg,
	}
}

// rejectionToAppError translates an engine rejection into the boundary
// error type. The engine itself never produces errors.
func rejectionToAppError(res PlacementResult) *errors.AppError {
	switch res.Violation {
	case ViolationBounds:
		return errors.NewAppError(errors.ErrOutOfBounds, res.Reason, nil)
	case ViolationOverlap:
		return errors.NewAppError(errors.ErrOverlap, res.Reason, nil)
	case ViolationNotFound:
		return errors.NewAppError(errors.ErrNotFound, res.Reason, nil)
	default:
		return errors.NewAppError(errors.ErrInternalServer, "placement rejected for an unknown reason", nil)
	}
}

func verdictToAppError(v Verdict) *errors.AppError {
	switch v.Violation {
	case ViolationBounds:
		return errors.NewAppError(errors.ErrOutOfBounds, v.Reason, nil)
	case ViolationOverlap:
		return errors.NewAppError(errors.ErrOverlap, v.Reason, nil)
	default:
		return errors.NewAppError(errors.ErrInternalServer, "placement rejected for an unknown reason", nil)
	}
}

// GetDaySchedule returns the day view: items with their pixel offsets and
// the enabled/disabled state of each quick-adjustment control, derived by
// probing the validator with hypothetical deltas before rendering.
func (s *ScheduleService) GetDaySchedule(ctx context.Context, day time.Time) (*dto.DayScheduleResponse, *errors.AppError) {
	items, err := s.repo.ListByDay(ctx, day)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrPersistence, "Failed to load schedule", err)
	}

	timeline := s.engine.Timeline()
	resp := &dto.DayScheduleResponse{
		Date:         day.Format("2006-01-02"),
		DayStartHour: s.cfg.DayStartHour,
		DayEndHour:   s.cfg.DayEndHour,
		Items:        make([]dto.ScheduleItemResponse, 0, len(items)),
	}

	for i := range items {
		item := &items[i]
		actions := s.quickActions(item, items)
		resp.Items = append(resp.Items, *dto.ToItemResponse(item, timeline.PositionOf(item.StartTime), actions))
	}
	return resp, nil
}

func (s *ScheduleService) quickActions(item *entity.ScheduleItem, items []entity.ScheduleItem) *dto.QuickActions {
	snap := s.cfg.SnapMinutes
	w := s.engine.Timeline().Window

	probe := func(start time.Time, duration int) bool {
		return CanPlace(Candidate{
			ID:              item.ID,
			Kind:            item.Kind,
			StartTime:       start,
			DurationMinutes: duration,
		}, items, w).Allowed
	}

	return &dto.QuickActions{
		CanShiftEarlier: probe(item.StartTime.Add(-time.Duration(snap)*time.Minute), item.DurationMinutes),
		CanShiftLater:   probe(item.StartTime.Add(time.Duration(snap)*time.Minute), item.DurationMinutes),
		CanExtend:       probe(item.StartTime, item.DurationMinutes+snap),
		CanShorten:      item.DurationMinutes-snap >= constants.MinDurationMinutes,
	}
}

func (s *ScheduleService) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.ScheduleItemResponse, *errors.AppError) {
	clientName := strings.TrimSpace(req.ClientName)
	if clientName == "" || len(clientName) > maxClientNameLen {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Client name is required and must be at most 40 characters", nil)
	}
	if len(req.Notes) > maxNotesLen {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Notes must be at most 300 characters", nil)
	}
	duration := s.engine.Timeline().SnapDuration(req.DurationMinutes, constants.MinDurationMinutes)

	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrPersistence, "Failed to load schedule", err)
	}

	verdict := CanPlace(Candidate{
		Kind:            entity.ItemKindAppointment,
		StartTime:       req.StartTime,
		DurationMinutes: duration,
	}, items, s.engine.Timeline().Window)
	if !verdict.Allowed {
		return nil, verdictToAppError(verdict)
	}

	item := &entity.ScheduleItem{
		Kind:            entity.ItemKindAppointment,
		StartTime:       req.StartTime,
		DurationMinutes: duration,
		ClientName:      &clientName,
	}
	if req.Notes != "" {
		notes := req.Notes
		item.Notes = &notes
	}

	created, err := s.repo.CreateAppointment(ctx, item)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrPersistence, "Failed to create appointment", err)
	}

	logger.Info("ScheduleService:CreateAppointment:Success", "id", created.ID, "start", created.StartTime)
	s.runner.Schedule()

	return dto.ToItemResponse(created, s.engine.Timeline().PositionOf(created.StartTime), nil), nil
}

func (s *ScheduleService) UpdateAppointmentDetails(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.ScheduleItemResponse, *errors.AppError) {
	clientName := strings.TrimSpace(req.ClientName)
	if clientName == "" || len(clientName) > maxClientNameLen {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Client name is required and must be at most 40 characters", nil)
	}
	if len(req.Notes) > maxNotesLen {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Notes must be at most 300 characters", nil)
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrPersistence, "Failed to load appointment", err)
	}
	if item == nil || !item.IsAppointment() {
		return nil, errors.NewAppError(errors.ErrNotFound, "Appointment not found", nil)
	}

	var notes *string
	if req.Notes != "" {
		n := req.Notes
		notes = &n
	}
	if err := s.repo.UpdateAppointmentDetails(ctx, id, clientName, notes); err != nil {
		return nil, errors.NewAppError(errors.ErrPersistence, "Failed to update appointment", err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil || updated == nil {
		return nil, errors.NewAppError(errors.ErrPersistence, "Failed to reload appointment", err)
	}
	return dto.ToItemResponse(updated, s.engine.Timeline().PositionOf(updated.StartTime), nil), nil
}

func (s *ScheduleService) DeleteAppointment(ctx context.Context, id uuid.UUID) *errors.AppError {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrPersistence, "Failed to load appointment", err)
	}
	if item == nil || !item.IsAppointment() {
		return errors.NewAppError(errors.ErrNotFound, "Appointment not found", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrPersistence, "Failed to delete appointment", err)
	}

	logger.Info("ScheduleService:DeleteAppointment:Success", "id", id)
	s.runner.Schedule()
	return nil
}

// applyPlacement runs one engine operation as a compound edit: the pause
// counter suppresses reconciliation while the mutations land, and the
// follow-up pass is scheduled only for appointment changes.
func (s *ScheduleService) applyPlacement(ctx context.Context, id uuid.UUID, op func(items []entity.ScheduleItem) PlacementResult) (*dto.ScheduleItemResponse, *errors.AppError) {
	s.runner.Pause()
	defer s.runner.Resume()

	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrPersistence, "Failed to load schedule", err)
	}

	res := op(items)
	if !res.Allowed {
		return nil, rejectionToAppError(res)
	}

	appointmentTouched := false
	for _, m := range res.Mutations {
		if m.Kind == entity.ItemKindAppointment {
			appointmentTouched = true
		}
		if err := s.repo.UpdatePlacement(ctx, m.ID, m.StartTime, m.DurationMinutes); err != nil {
			return nil, errors.NewAppError(errors.ErrPersistence, "Failed to apply placement change", err)
		}
	}

	if appointmentTouched {
		s.runner.Schedule()
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil || updated == nil {
		return nil, errors.NewAppError(errors.ErrPersistence, "Failed to reload item", err)
	}
	return dto.ToItemResponse(updated, s.engine.Timeline().PositionOf(updated.StartTime), nil), nil
}

func (s *ScheduleService) Shift(ctx context.Context, id uuid.UUID, deltaMinutes int) (*dto.ScheduleItemResponse, *errors.AppError) {
	return s.applyPlacement(ctx, id, func(items []entity.ScheduleItem) PlacementResult {
		return s.engine.ShiftByMinutes(items, id, deltaMinutes)
	})
}

func (s *ScheduleService) Drag(ctx context.Context, id uuid.UUID, fromPx, toPx float64) (*dto.ScheduleItemResponse, *errors.AppError) {
	return s.applyPlacement(ctx, id, func(items []entity.ScheduleItem) PlacementResult {
		return s.engine.DragTo(items, id, fromPx, toPx)
	})
}

func (s *ScheduleService) Resize(ctx context.Context, id uuid.UUID, durationMinutes int) (*dto.ScheduleItemResponse, *errors.AppError) {
	return s.applyPlacement(ctx, id, func(items []entity.ScheduleItem) PlacementResult {
		return s.engine.ResizeDuration(items, id, durationMinutes)
	})
}

func (s *ScheduleService) BulkShift(ctx context.Context, anchorID uuid.UUID, deltaMinutes int, direction BulkShiftDirection) *errors.AppError {
	_, appErr := s.applyPlacement(ctx, anchorID, func(items []entity.ScheduleItem) PlacementResult {
		return s.engine.BulkShift(items, anchorID, deltaMinutes, direction)
	})
	return appErr
}

// CreateBreak places a manual break. Breaks collide with everything, so the
// placement is validated; an illegitimate but collision-free position is
// tolerated until the next reconciliation pass.
func (s *ScheduleService) CreateBreak(ctx context.Context, req *dto.CreateBreakRequest) (*dto.ScheduleItemResponse, *errors.AppError) {
	duration := s.engine.Timeline().SnapDuration(req.DurationMinutes, constants.MinDurationMinutes)

	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrPersistence, "Failed to load schedule", err)
	}

	verdict := CanPlace(Candidate{
		Kind:            entity.ItemKindBreak,
		StartTime:       req.StartTime,
		DurationMinutes: duration,
	}, items, s.engine.Timeline().Window)
	if !verdict.Allowed {
		return nil, verdictToAppError(verdict)
	}

	created, err := s.repo.CreateBreak(ctx, req.StartTime, duration)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrPersistence, "Failed to create break", err)
	}
	return dto.ToItemResponse(created, s.engine.Timeline().PositionOf(created.StartTime), nil), nil
}

func (s *ScheduleService) MoveBreak(ctx context.Context, id uuid.UUID, req *dto.MoveBreakRequest) (*dto.ScheduleItemResponse, *errors.AppError) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrPersistence, "Failed to load break", err)
	}
	if item == nil || !item.IsBreak() {
		return nil, errors.NewAppError(errors.ErrNotFound, "Break not found", nil)
	}

	duration := s.engine.Timeline().SnapDuration(req.DurationMinutes, constants.MinDurationMinutes)

	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrPersistence, "Failed to load schedule", err)
	}

	verdict := CanPlace(Candidate{
		ID:              id,
		Kind:            entity.ItemKindBreak,
		StartTime:       req.StartTime,
		DurationMinutes: duration,
	}, items, s.engine.Timeline().Window)
	if !verdict.Allowed {
		return nil, verdictToAppError(verdict)
	}

	if err := s.repo.UpdatePlacement(ctx, id, req.StartTime, duration); err != nil {
		return nil, errors.NewAppError(errors.ErrPersistence, "Failed to move break", err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil || updated == nil {
		return nil, errors.NewAppError(errors.ErrPersistence, "Failed to reload break", err)
	}
	return dto.ToItemResponse(updated, s.engine.Timeline().PositionOf(updated.StartTime), nil), nil
}

func (s *ScheduleService) DeleteBreak(ctx context.Context, id uuid.UUID) *errors.AppError {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrPersistence, "Failed to load break", err)
	}
	if item == nil || !item.IsBreak() {
		return errors.NewAppError(errors.ErrNotFound, "Break not found", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrPersistence, "Failed to delete break", err)
	}
	return nil
}

func (s *ScheduleService) ReconcileNow(ctx context.Context) *errors.AppError {
	if err := s.runner.Run(ctx); err != nil {
		return errors.NewAppError(errors.ErrPersistence, "Reconciliation pass failed", err)
	}
	return nil
}

func (s *ScheduleService) GetReconcileStatus(ctx context.Context) (*dto.ReconcileStatusResponse, *errors.AppError) {
	resp := &dto.ReconcileStatusResponse{}
	if s.cache == nil {
		return resp, nil
	}

	raw, err := s.cache.Get(ctx, LastReconcileKey)
	if err != nil {
		if err == cache.ErrCacheMiss {
			return resp, nil
		}
		return nil, errors.NewAppError(errors.ErrPersistence, "Failed to read reconciliation status", err)
	}

	var summary PassSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Corrupt reconciliation status", err)
	}
	resp.RanAt = &summary.RanAt
	resp.Created = summary.Created
	resp.Updated = summary.Updated
	resp.Deleted = summary.Deleted
	resp.Failures = summary.Failures
	return resp, nil
}
