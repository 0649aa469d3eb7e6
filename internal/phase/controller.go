package phase

import (
	"context"
	"fmt"

	"github.com/jjimmyk/planningp/internal/domain"
)

// Persister is the persistence collaborator. It receives the whole bag
// after every committed change.
type Persister interface {
	Save(ctx context.Context, bag domain.PhaseDataBag) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(ctx context.Context, bag domain.PhaseDataBag) error

func (f PersisterFunc) Save(ctx context.Context, bag domain.PhaseDataBag) error {
	return f(ctx, bag)
}

// Discard is a Persister that drops every bag.
var Discard Persister = PersisterFunc(func(context.Context, domain.PhaseDataBag) error { return nil })

// Controller tracks the active phase and owns the period's bag. Every
// write goes through MergeAndPersist.
type Controller struct {
	active    domain.PhaseID
	bag       domain.PhaseDataBag
	persister Persister
}

// NewController starts at the first phase of the cycle with a copy of
// initial. A nil persister discards saves.
func NewController(initial domain.PhaseDataBag, p Persister) *Controller {
	if p == nil {
		p = Discard
	}
	return &Controller{
		active:    phases[0].ID,
		bag:       initial.Clone(),
		persister: p,
	}
}

func (c *Controller) Active() domain.PhaseID { return c.active }

// Select makes id the active phase. Any phase may follow any other.
func (c *Controller) Select(id domain.PhaseID) []SectionTag {
	c.active = id
	return VisibleSections(id)
}

// Visible returns the sections for the active phase.
func (c *Controller) Visible() []SectionTag {
	return VisibleSections(c.active)
}

func (c *Controller) IsVisible(tag SectionTag) bool {
	return IsVisible(c.active, tag)
}

// Bag returns a copy of the current bag.
func (c *Controller) Bag() domain.PhaseDataBag {
	return c.bag.Clone()
}

// Mount replaces the bag with one supplied by the persistence collaborator.
func (c *Controller) Mount(bag domain.PhaseDataBag) {
	c.bag = bag.Clone()
}

// MergeAndPersist merges patch into the current bag and hands the result to
// the persister. The merged bag is kept even when Save fails so that the
// next successful save carries it.
func (c *Controller) MergeAndPersist(ctx context.Context, patch Patch) (domain.PhaseDataBag, error) {
	c.bag = Merge(c.bag, patch)
	if err := c.persister.Save(ctx, c.bag.Clone()); err != nil {
		return c.bag.Clone(), fmt.Errorf("persisting phase data: %w", err)
	}
	return c.bag.Clone(), nil
}
