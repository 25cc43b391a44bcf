package session

import (
	"context"
	"fmt"

	"github.com/andrescamacho/redcycle-go/internal/adapters/metrics"
	"github.com/andrescamacho/redcycle-go/internal/application/common"
	domainSession "github.com/andrescamacho/redcycle-go/internal/domain/session"
)

// Lifecycle owns the live session and its persisted snapshot for one profile.
type Lifecycle struct {
	repo    domainSession.Repository
	current *domainSession.Session
}

// NewLifecycle creates a lifecycle holding a default session until Init runs.
func NewLifecycle(repo domainSession.Repository) *Lifecycle {
	return &Lifecycle{
		repo:    repo,
		current: domainSession.New(),
	}
}

// Session returns the live session.
func (l *Lifecycle) Session() *domainSession.Session {
	return l.current
}

// Init loads the stored snapshot. Fields missing or unreadable in storage
// keep their catalog defaults; a failing backend leaves the whole session at
// defaults. Init never fails.
func (l *Lifecycle) Init(ctx context.Context) *domainSession.Session {
	logger := common.LoggerFromContext(ctx)

	snap, err := l.repo.Load(ctx)
	if err != nil {
		logger.Log(common.LevelWarn, "could not load stored session, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		l.current = domainSession.New()
		return l.current
	}

	if snap.IsEmpty() {
		logger.Log(common.LevelDebug, "no stored session, starting from catalog defaults", nil)
	}
	l.current = domainSession.Restore(snap)
	recordState(l.current)
	return l.current
}

// Commit writes the full session to storage.
func (l *Lifecycle) Commit(ctx context.Context) error {
	if err := l.repo.Save(ctx, l.current.Snapshot()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	recordState(l.current)
	return nil
}

// Reset restores defaults and removes the stored snapshot. Calling it twice
// leaves the same state as calling it once.
func (l *Lifecycle) Reset(ctx context.Context) error {
	l.current.Reset()
	if err := l.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear stored session: %w", err)
	}
	recordState(l.current)
	return nil
}

// CommitMiddleware commits the session after every successful Mutation.
func CommitMiddleware(lifecycle *Lifecycle) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		response, err := next(ctx, request)
		if err != nil {
			return response, err
		}
		if _, ok := request.(common.Mutation); !ok {
			return response, nil
		}
		if err := lifecycle.Commit(ctx); err != nil {
			return response, err
		}
		return response, nil
	}
}

func recordState(s *domainSession.Session) {
	if !metrics.IsEnabled() {
		return
	}

	assigned := 0
	for _, a := range s.Crew() {
		if a.Assigned() {
			assigned++
		}
	}
	metrics.RecordSessionState(metrics.SessionState{
		Resources:    s.Resources(),
		MissionDay:   s.MissionDay(),
		Totals:       s.Totals(),
		WastePoolKg:  s.WastePoolTotal(),
		InventoryKg:  s.InventoryKg(),
		ProductKg:    s.ProductKg(),
		ProductCount: len(s.Products()),
		AssignedCrew: assigned,
	})
}
