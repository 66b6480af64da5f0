package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Arsonist406/MassagePlanner/core/cache"
	"github.com/Arsonist406/MassagePlanner/core/config"
	"github.com/Arsonist406/MassagePlanner/core/logger"
	"github.com/Arsonist406/MassagePlanner/modules/schedule/entity"
	"github.com/Arsonist406/MassagePlanner/modules/schedule/repository"
)

// LastReconcileKey is where the runner records its latest pass summary.
const LastReconcileKey = "schedule:last_reconcile"

// PassSummary describes one reconciliation pass.
type PassSummary struct {
	RanAt    time.Time `json:"ran_at"`
	Created  int       `json:"created"`
	Updated  int       `json:"updated"`
	Deleted  int       `json:"deleted"`
	Failures int       `json:"failures"`
}

// AutoBreakRunner drives the gap reconciler against the store.
//
// Guarantees:
//   - passes are serialized: a pass requested while one is in flight waits
//     on the pass mutex rather than interleaving reads and writes;
//   - every pass fetches a fresh snapshot, never reconciles cached state;
//   - a non-zero pause counter suppresses passes; Resume re-triggers a
//     pending pass once the counter returns to zero;
//   - the debounce timer is cancelled, not merely ignored, when a newer
//     change supersedes it.
type AutoBreakRunner struct {
	repo         repository.ScheduleRepositoryInterface
	cache        cache.Cache
	gapThreshold int
	debounce     time.Duration

	passMu sync.Mutex

	mu      sync.Mutex
	paused  int
	pending bool
	timer   *time.Timer
}

func NewAutoBreakRunner(repo repository.ScheduleRepositoryInterface, c cache.Cache, cfg config.ScheduleConfig) *AutoBreakRunner {
	return &AutoBreakRunner{
		repo:         repo,
		cache:        c,
		gapThreshold: cfg.GapThresholdMinutes,
		debounce:     cfg.ReconcileDebounce,
	}
}

// Schedule requests a reconciliation pass after the debounce window,
// coalescing rapid successive appointment changes into one pass.
func (r *AutoBreakRunner) Schedule() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.debounce, func() {
		if err := r.Run(context.Background()); err != nil {
			logger.Error("AutoBreakRunner:Schedule:Run:Error", "error", err)
		}
	})
}

// Pause suppresses reconciliation for the duration of a compound operation.
// Calls nest; each Pause must be matched by a Resume.
func (r *AutoBreakRunner) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused++
}

// Resume decrements the pause counter and, once it reaches zero, re-triggers
// a pass if one was suppressed while paused.
func (r *AutoBreakRunner) Resume() {
	r.mu.Lock()
	retrigger := false
	if r.paused > 0 {
		r.paused--
	}
	if r.paused == 0 && r.pending {
		r.pending = false
		retrigger = true
	}
	r.mu.Unlock()

	if retrigger {
		r.Schedule()
	}
}

// Run executes one reconciliation pass immediately. No-ops while paused
// (marking the pass pending for Resume). Individual persistence failures
// are logged and skipped so one bad break cannot block the rest.
func (r *AutoBreakRunner) Run(ctx context.Context) error {
	r.mu.Lock()
	if r.paused > 0 {
		r.pending = true
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	r.passMu.Lock()
	defer r.passMu.Unlock()

	appointments, err := r.repo.ListByKind(ctx, entity.ItemKindAppointment)
	if err != nil {
		return err
	}
	breaks, err := r.repo.ListByKind(ctx, entity.ItemKindBreak)
	if err != nil {
		return err
	}

	mutations := PlanBreaks(appointments, breaks, r.gapThreshold)
	if len(mutations) == 0 {
		return nil
	}

	summary := PassSummary{RanAt: time.Now()}
	for _, m := range mutations {
		switch m.Op {
		case MutationCreate:
			if _, err := r.repo.CreateBreak(ctx, m.StartTime, m.DurationMinutes); err != nil {
				logger.Error("AutoBreakRunner:Run:CreateBreak:Error", "error", err, "start", m.StartTime)
				summary.Failures++
				continue
			}
			summary.Created++
		case MutationUpdate:
			if err := r.repo.UpdatePlacement(ctx, m.ID, m.StartTime, m.DurationMinutes); err != nil {
				logger.Error("AutoBreakRunner:Run:UpdateBreak:Error", "error", err, "id", m.ID)
				summary.Failures++
				continue
			}
			summary.Updated++
		case MutationDelete:
			if err := r.repo.Delete(ctx, m.ID); err != nil {
				logger.Error("AutoBreakRunner:Run:DeleteBreak:Error", "error", err, "id", m.ID)
				summary.Failures++
				continue
			}
			summary.Deleted++
		}
	}

	logger.Info("AutoBreakRunner:Run:Done",
		"created", summary.Created,
		"updated", summary.Updated,
		"deleted", summary.Deleted,
		"failures", summary.Failures,
	)
	r.record(ctx, summary)
	return nil
}

func (r *AutoBreakRunner) record(ctx context.Context, summary PassSummary) {
	if r.cache == nil {
		return
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, LastReconcileKey, string(payload), 0); err != nil {
		logger.Warn("AutoBreakRunner:Record:Error", "error", err)
	}
}
