package service

import (
	"context"
	"sync"
	"time"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/phase"
	"github.com/jjimmyk/planningp/internal/store"
)

// Workspace is the single owner of one operational period's data. Editors
// are thin views over it; every mutation takes the lock, changes the store
// and pushes the touched bag keys through the phase controller.
type Workspace struct {
	mu       sync.Mutex
	periodID string
	store    *store.Store
	ctrl     *phase.Controller
	ids      domain.IDGenerator
	now      func() time.Time
	observer UseCaseObserver

	// revision is the last stored revision, when the persister reports one.
	revision int
}

type WorkspaceOption func(*Workspace)

func WithIDGenerator(g domain.IDGenerator) WorkspaceOption {
	return func(w *Workspace) {
		if g != nil {
			w.ids = g
		}
	}
}

func WithClock(now func() time.Time) WorkspaceOption {
	return func(w *Workspace) {
		if now != nil {
			w.now = now
		}
	}
}

// WithObserver adds observers. Several observers are fanned out in order.
func WithObserver(observers ...UseCaseObserver) WorkspaceOption {
	return func(w *Workspace) {
		w.observer = MultiObserver(append([]UseCaseObserver{w.observer}, observers...)...)
	}
}

func WithPeriodID(id string) WorkspaceOption {
	return func(w *Workspace) { w.periodID = id }
}

// NewWorkspace mounts bag as-is. An empty bag yields empty collections;
// nothing is seeded.
func NewWorkspace(bag domain.PhaseDataBag, persister phase.Persister, opts ...WorkspaceOption) *Workspace {
	w := &Workspace{
		store:    store.FromBag(bag),
		ctrl:     phase.NewController(bag, persister),
		ids:      domain.UUIDGenerator{},
		now:      func() time.Time { return time.Now().UTC() },
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) PeriodID() string { return w.periodID }

// Revision returns the stored revision the in-memory data matches, or 0
// when the persister does not track revisions.
func (w *Workspace) Revision() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.revision
}

// savedRevision is the persister's save hook; it runs inside mutate, under
// the lock.
func (w *Workspace) savedRevision(rev int, _ time.Time) {
	w.revision = rev
}

// ActivePhase returns the phase currently selected.
func (w *Workspace) ActivePhase() domain.PhaseID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ctrl.Active()
}

// SelectPhase navigates to id and returns the sections it shows.
func (w *Workspace) SelectPhase(ctx context.Context, id domain.PhaseID) []phase.SectionTag {
	startedAt := w.now()
	w.mu.Lock()
	sections := w.ctrl.Select(id)
	w.mu.Unlock()
	w.observe(ctx, "select-phase", startedAt, map[string]any{"phase": string(id)}, nil)
	return sections
}

func (w *Workspace) VisibleSections() []phase.SectionTag {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ctrl.Visible()
}

// Bag returns a copy of the bag as last merged.
func (w *Workspace) Bag() domain.PhaseDataBag {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ctrl.Bag()
}

// Reload replaces all in-memory state with bag, for example after the
// persistence collaborator delivers a newer copy.
func (w *Workspace) Reload(bag domain.PhaseDataBag) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.store.Load(bag)
	w.ctrl.Mount(bag)
}

// mutate runs fn under the lock. fn validates, changes the store and returns
// the patch describing what changed; an empty patch skips the save.
func (w *Workspace) mutate(ctx context.Context, name string, fields map[string]any, fn func() (phase.Patch, error)) (err error) {
	startedAt := w.now()
	if fields == nil {
		fields = map[string]any{}
	}
	defer func() {
		w.observe(ctx, name, startedAt, fields, err)
	}()

	w.mu.Lock()
	defer w.mu.Unlock()

	patch, err := fn()
	if err != nil {
		return err
	}
	if patch.Empty() {
		fields["changed"] = false
		return nil
	}
	fields["changed"] = true
	if _, err = w.ctrl.MergeAndPersist(ctx, patch); err != nil {
		return err
	}
	if w.revision > 0 {
		fields["revision"] = w.revision
	}
	return nil
}

// read runs fn under the lock.
func (w *Workspace) read(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn()
}

func (w *Workspace) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	if w.periodID != "" {
		fields["period"] = w.periodID
	}
	w.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  w.now().Sub(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (w *Workspace) hierarchyPatch() phase.Patch {
	tree := w.store.Hierarchy.Tree()
	return phase.Patch{WorkObjectives: &tree}
}

func (w *Workspace) assignmentsPatch() phase.Patch {
	list := w.store.Assignments.List()
	return phase.Patch{WorkAssignments: &list}
}

func (w *Workspace) hazardsPatch() phase.Patch {
	list := w.store.Hazards.List()
	return phase.Patch{Hazards: &list}
}

func (w *Workspace) responseObjectivesPatch() phase.Patch {
	list := w.store.ResponseObjectives.List()
	return phase.Patch{ResponseObjectives: &list}
}

func (w *Workspace) meetingsPatch() phase.Patch {
	list := w.store.Meetings.List()
	return phase.Patch{Meetings: &list}
}

func (w *Workspace) actionItemsPatch() phase.Patch {
	list := w.store.ActionItems.List()
	return phase.Patch{ActionItems: &list}
}

func (w *Workspace) rosterPatch() phase.Patch {
	list := w.store.Roster.List()
	return phase.Patch{Roster: &list}
}

func (w *Workspace) resourceSummaryPatch() phase.Patch {
	list := w.store.ResourceSummary.List()
	return phase.Patch{ResourceSummary: &list}
}

func (w *Workspace) ics201Patch() phase.Patch {
	hdr := w.store.ICS201
	return phase.Patch{ICS201: &hdr}
}

func (w *Workspace) phaseStatesPatch() phase.Patch {
	states := w.store.PhaseStatesCopy()
	return phase.Patch{PhaseStates: &states}
}

// Editors share the workspace; none of them keeps state of its own.

func (w *Workspace) Hierarchy() *HierarchyEditor { return &HierarchyEditor{ws: w} }
func (w *Workspace) Ledger() *WorkAssignmentLedger { return &WorkAssignmentLedger{ws: w} }
func (w *Workspace) Hazards() *HazardRegister { return &HazardRegister{ws: w} }
func (w *Workspace) ResponseTable() *ResponseObjectiveTable { return &ResponseObjectiveTable{ws: w} }
func (w *Workspace) Meetings() *MeetingBoard { return &MeetingBoard{ws: w} }
func (w *Workspace) ActionTracker() *ActionTracker { return &ActionTracker{ws: w} }
func (w *Workspace) ICS201() *ICS201Form { return &ICS201Form{ws: w} }
func (w *Workspace) Agenda() *AgendaChecklist { return &AgendaChecklist{ws: w} }
