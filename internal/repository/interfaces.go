package repository

import (
	"context"

	"github.com/jjimmyk/planningp/internal/domain"
)

type PeriodRepo interface {
	Create(ctx context.Context, p *domain.OperationalPeriod) error
	GetByID(ctx context.Context, id string) (*domain.OperationalPeriod, error)
	List(ctx context.Context) ([]*domain.OperationalPeriod, error)
	Update(ctx context.Context, p *domain.OperationalPeriod) error
	SetActivePhase(ctx context.Context, id string, phase domain.PhaseID) error
	Delete(ctx context.Context, id string) error
}

// PhaseDataRepo stores a period's bag as one JSON document plus an
// append-only revision history.
type PhaseDataRepo interface {
	Init(ctx context.Context, periodID string) error
	Load(ctx context.Context, periodID string) (domain.PhaseDataBag, int, error)
	Save(ctx context.Context, periodID string, bag domain.PhaseDataBag) (int, error)
	History(ctx context.Context, periodID string) ([]domain.BagRevision, error)
	LoadRevision(ctx context.Context, periodID string, revision int) (domain.BagRevision, error)
}
