package phase

import "github.com/jjimmyk/planningp/internal/domain"

// Patch is a partial PhaseDataBag. A nil field means "keep the existing
// value"; a non-nil field replaces the matching top-level key wholesale.
type Patch struct {
	WorkObjectives     *[]domain.WorkObjective
	WorkAssignments    *[]domain.WorkAssignment
	Hazards            *[]domain.Hazard
	ResponseObjectives *[]domain.ResponseObjective
	Meetings           *[]domain.Meeting
	ActionItems        *[]domain.ActionItem
	Roster             *[]domain.RosterEntry
	ResourceSummary    *[]domain.ResourceSummaryRow
	ICS201             *domain.ICS201Header
	PhaseStates        *map[domain.PhaseID]domain.PhaseState
}

// Keys lists the bag keys the patch replaces, using the bag's JSON names.
func (p Patch) Keys() []string {
	var keys []string
	add := func(set bool, name string) {
		if set {
			keys = append(keys, name)
		}
	}
	add(p.WorkObjectives != nil, "workObjectives")
	add(p.WorkAssignments != nil, "workAssignments")
	add(p.Hazards != nil, "hazards")
	add(p.ResponseObjectives != nil, "responseObjectives")
	add(p.Meetings != nil, "meetings")
	add(p.ActionItems != nil, "actionItems")
	add(p.Roster != nil, "organizationRoster")
	add(p.ResourceSummary != nil, "resourceSummary")
	add(p.ICS201 != nil, "ics201")
	add(p.PhaseStates != nil, "phaseStates")
	return keys
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return len(p.Keys()) == 0
}

// Merge performs a shallow merge of patch over bag and returns a new bag.
// Neither argument is modified and the result shares no state with them.
func Merge(bag domain.PhaseDataBag, patch Patch) domain.PhaseDataBag {
	out := bag
	if patch.WorkObjectives != nil {
		out.WorkObjectives = *patch.WorkObjectives
	}
	if patch.WorkAssignments != nil {
		out.WorkAssignments = *patch.WorkAssignments
	}
	if patch.Hazards != nil {
		out.Hazards = *patch.Hazards
	}
	if patch.ResponseObjectives != nil {
		out.ResponseObjectives = *patch.ResponseObjectives
	}
	if patch.Meetings != nil {
		out.Meetings = *patch.Meetings
	}
	if patch.ActionItems != nil {
		out.ActionItems = *patch.ActionItems
	}
	if patch.Roster != nil {
		out.Roster = *patch.Roster
	}
	if patch.ResourceSummary != nil {
		out.ResourceSummary = *patch.ResourceSummary
	}
	if patch.ICS201 != nil {
		out.ICS201 = *patch.ICS201
	}
	if patch.PhaseStates != nil {
		out.PhaseStates = *patch.PhaseStates
	}
	return out.Clone()
}
