package service

import (
	"context"

	"github.com/jjimmyk/planningp/internal/domain"
)

// PeriodService manages operational periods and opens their workspaces.
type PeriodService interface {
	Create(ctx context.Context, p *domain.OperationalPeriod) error
	Get(ctx context.Context, id string) (*domain.OperationalPeriod, error)
	List(ctx context.Context) ([]*domain.OperationalPeriod, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	SetActivePhase(ctx context.Context, id string, phaseID domain.PhaseID) error
	Open(ctx context.Context, id string, opts ...WorkspaceOption) (*Workspace, error)
	History(ctx context.Context, id string) ([]domain.BagRevision, error)
	Restore(ctx context.Context, id string, revision int) error
}
