package service

import (
	"context"
	"time"

	"github.com/jjimmyk/planningp/internal/db"
	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/phase"
	"github.com/jjimmyk/planningp/internal/repository"
)

type periodService struct {
	periods  repository.PeriodRepo
	bags     repository.PhaseDataRepo
	uow      db.UnitOfWork
	ids      domain.IDGenerator
	now      func() time.Time
	observer UseCaseObserver
}

// NewPeriodService wires operational periods to SQLite storage. ids and now
// may be nil for UUIDs and the wall clock.
func NewPeriodService(
	periods repository.PeriodRepo,
	bags repository.PhaseDataRepo,
	uow db.UnitOfWork,
	ids domain.IDGenerator,
	now func() time.Time,
	observers ...UseCaseObserver,
) PeriodService {
	if ids == nil {
		ids = domain.UUIDGenerator{}
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &periodService{
		periods:  periods,
		bags:     bags,
		uow:      uow,
		ids:      ids,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *periodService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  s.now().Sub(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

// Create stores the period together with its empty bag.
func (s *periodService) Create(ctx context.Context, p *domain.OperationalPeriod) (err error) {
	startedAt := s.now()
	fields := map[string]any{"name": p.Name}
	defer func() { s.observe(ctx, "create-period", startedAt, fields, err) }()

	if domain.IsBlank(p.Name) {
		return domain.NewValidationError("name", "is required")
	}
	if p.StartsAt != nil && p.EndsAt != nil && p.EndsAt.Before(*p.StartsAt) {
		return domain.NewValidationError("endsAt", "must not be before startsAt")
	}
	if p.ID == "" {
		p.ID = s.ids.NewID()
	}
	if p.ActivePhase == "" {
		p.ActivePhase = domain.PhaseIncidentBriefing
	}
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	fields["period"] = p.ID

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLitePeriodRepo(tx).Create(ctx, p); err != nil {
			return err
		}
		return repository.NewSQLitePhaseDataRepo(tx).Init(ctx, p.ID)
	})
}

func (s *periodService) Get(ctx context.Context, id string) (*domain.OperationalPeriod, error) {
	return s.periods.GetByID(ctx, id)
}

func (s *periodService) List(ctx context.Context) ([]*domain.OperationalPeriod, error) {
	return s.periods.List(ctx)
}

func (s *periodService) Rename(ctx context.Context, id, name string) error {
	if domain.IsBlank(name) {
		return domain.NewValidationError("name", "is required")
	}
	p, err := s.periods.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Name = name
	p.UpdatedAt = s.now()
	return s.periods.Update(ctx, p)
}

func (s *periodService) Delete(ctx context.Context, id string) (err error) {
	startedAt := s.now()
	defer func() { s.observe(ctx, "delete-period", startedAt, map[string]any{"period": id}, err) }()
	return s.periods.Delete(ctx, id)
}

// SetActivePhase records the phase the period was last viewed in. Unknown
// phase ids are rejected here even though the controller accepts them.
func (s *periodService) SetActivePhase(ctx context.Context, id string, phaseID domain.PhaseID) error {
	if !phase.Known(phaseID) {
		return domain.NewValidationError("phase", "is not a Planning P phase")
	}
	return s.periods.SetActivePhase(ctx, id, phaseID)
}

// Open loads the period's bag into a new Workspace whose saves go back to
// SQLite. The workspace starts on the period's recorded phase.
func (s *periodService) Open(ctx context.Context, id string, opts ...WorkspaceOption) (ws *Workspace, err error) {
	startedAt := s.now()
	fields := map[string]any{"period": id}
	defer func() { s.observe(ctx, "open-period", startedAt, fields, err) }()

	p, err := s.periods.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	bag, rev, err := s.bags.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	fields["revision"] = rev

	base := []WorkspaceOption{
		WithPeriodID(id),
		WithIDGenerator(s.ids),
		WithClock(s.now),
		WithObserver(s.observer),
	}
	persister := repository.NewBagPersister(s.uow, id)
	ws = NewWorkspace(bag, persister, append(base, opts...)...)
	ws.revision = rev
	persister.OnSave(ws.savedRevision)
	if phase.Known(p.ActivePhase) {
		ws.ctrl.Select(p.ActivePhase)
	}
	return ws, nil
}

func (s *periodService) History(ctx context.Context, id string) ([]domain.BagRevision, error) {
	return s.bags.History(ctx, id)
}

// Restore saves an old revision as the newest one. History is kept.
func (s *periodService) Restore(ctx context.Context, id string, revision int) (err error) {
	startedAt := s.now()
	fields := map[string]any{"period": id, "revision": revision}
	defer func() { s.observe(ctx, "restore-period", startedAt, fields, err) }()

	old, err := s.bags.LoadRevision(ctx, id, revision)
	if err != nil {
		return err
	}
	return repository.NewBagPersister(s.uow, id).Save(ctx, old.Bag)
}
