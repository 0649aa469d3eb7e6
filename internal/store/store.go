// Package store holds the in-memory entities of one operational period.
// It does no validation and no I/O; editors in the service package own
// both.
package store

import "github.com/jjimmyk/planningp/internal/domain"

type Store struct {
	Hierarchy          *Hierarchy
	Assignments        *Collection[domain.WorkAssignment]
	Hazards            *Collection[domain.Hazard]
	ResponseObjectives *Collection[domain.ResponseObjective]
	Meetings           *Collection[domain.Meeting]
	ActionItems        *Collection[domain.ActionItem]
	Roster             *Collection[domain.RosterEntry]
	ResourceSummary    *Collection[domain.ResourceSummaryRow]
	ICS201             domain.ICS201Header
	PhaseStates        map[domain.PhaseID]domain.PhaseState
}

func New() *Store {
	return &Store{
		Hierarchy:          NewHierarchy(),
		Assignments:        NewCollection[domain.WorkAssignment]("work assignment"),
		Hazards:            NewCollection[domain.Hazard]("hazard"),
		ResponseObjectives: NewCollection[domain.ResponseObjective]("response objective"),
		Meetings:           NewCollection[domain.Meeting]("meeting"),
		ActionItems:        NewCollection[domain.ActionItem]("action item"),
		Roster:             NewCollection[domain.RosterEntry]("roster entry"),
		ResourceSummary:    NewCollection[domain.ResourceSummaryRow]("resource summary row"),
		PhaseStates:        make(map[domain.PhaseID]domain.PhaseState),
	}
}

// FromBag builds a store holding a copy of bag's contents.
func FromBag(bag domain.PhaseDataBag) *Store {
	s := New()
	s.Load(bag)
	return s
}

// Load replaces every collection with the contents of bag.
func (s *Store) Load(bag domain.PhaseDataBag) {
	bag = bag.Clone()
	s.Hierarchy.Load(bag.WorkObjectives)
	s.Assignments.Reset(bag.WorkAssignments)
	s.Hazards.Reset(bag.Hazards)
	s.ResponseObjectives.Reset(bag.ResponseObjectives)
	s.Meetings.Reset(bag.Meetings)
	s.ActionItems.Reset(bag.ActionItems)
	s.Roster.Reset(bag.Roster)
	s.ResourceSummary.Reset(bag.ResourceSummary)
	s.ICS201 = bag.ICS201
	s.PhaseStates = bag.PhaseStates
	if s.PhaseStates == nil {
		s.PhaseStates = make(map[domain.PhaseID]domain.PhaseState)
	}
}

// Snapshot returns the full contents as a bag.
func (s *Store) Snapshot() domain.PhaseDataBag {
	bag := domain.PhaseDataBag{
		WorkObjectives:     s.Hierarchy.Tree(),
		WorkAssignments:    s.Assignments.List(),
		Hazards:            s.Hazards.List(),
		ResponseObjectives: s.ResponseObjectives.List(),
		Meetings:           s.Meetings.List(),
		ActionItems:        s.ActionItems.List(),
		Roster:             s.Roster.List(),
		ResourceSummary:    s.ResourceSummary.List(),
		ICS201:             s.ICS201,
		PhaseStates:        s.PhaseStatesCopy(),
	}
	return bag
}

// PhaseStatesCopy returns a deep copy of the per-phase UI state.
func (s *Store) PhaseStatesCopy() map[domain.PhaseID]domain.PhaseState {
	out := make(map[domain.PhaseID]domain.PhaseState, len(s.PhaseStates))
	for k, v := range s.PhaseStates {
		out[k] = v.Clone()
	}
	return out
}
