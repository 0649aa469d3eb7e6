package domain

// PhaseDataBag is everything collected for one operational period. It is
// the unit handed to and received from the persistence collaborator.
type PhaseDataBag struct {
	WorkObjectives     []WorkObjective        `json:"workObjectives"`
	WorkAssignments    []WorkAssignment       `json:"workAssignments"`
	Hazards            []Hazard               `json:"hazards"`
	ResponseObjectives []ResponseObjective    `json:"responseObjectives"`
	Meetings           []Meeting              `json:"meetings"`
	ActionItems        []ActionItem           `json:"actionItems"`
	Roster             []RosterEntry          `json:"organizationRoster"`
	ResourceSummary    []ResourceSummaryRow   `json:"resourceSummary"`
	ICS201             ICS201Header           `json:"ics201"`
	PhaseStates        map[PhaseID]PhaseState `json:"phaseStates"`
}

// PhaseState is transient per-phase UI state persisted alongside the data.
type PhaseState struct {
	Checked  map[string]bool        `json:"checked,omitempty"`
	Expanded map[string]bool        `json:"expanded,omitempty"`
	Notes    string                 `json:"notes,omitempty"`
	Queries  map[string]ActionQuery `json:"queries,omitempty"`
}

// ActionQuery is the search/filter/sort state of an ICS-201 action table.
type ActionQuery struct {
	Search       string `json:"search,omitempty"`
	StatusFilter string `json:"statusFilter,omitempty"`
	SortBy       string `json:"sortBy,omitempty"`
	SortOrder    string `json:"sortOrder,omitempty"`
}

const (
	StatusFilterAll = "all"

	SortByAction = "action"
	SortByStatus = "status"
	SortByTime   = "time"

	SortAsc  = "asc"
	SortDesc = "desc"
)

func cloneSlice[T interface{ Clone() T }](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = v.Clone()
	}
	return out
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	if in == nil {
		return nil
	}
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s PhaseState) Clone() PhaseState {
	return PhaseState{
		Checked:  cloneMap(s.Checked),
		Expanded: cloneMap(s.Expanded),
		Notes:    s.Notes,
		Queries:  cloneMap(s.Queries),
	}
}

// Clone returns a deep copy that shares no slices or maps with b.
func (b PhaseDataBag) Clone() PhaseDataBag {
	c := PhaseDataBag{
		WorkObjectives:     cloneSlice(b.WorkObjectives),
		WorkAssignments:    cloneSlice(b.WorkAssignments),
		Hazards:            cloneSlice(b.Hazards),
		ResponseObjectives: cloneSlice(b.ResponseObjectives),
		Meetings:           cloneSlice(b.Meetings),
		ActionItems:        cloneSlice(b.ActionItems),
		Roster:             cloneSlice(b.Roster),
		ResourceSummary:    cloneSlice(b.ResourceSummary),
		ICS201:             b.ICS201,
	}
	if b.PhaseStates != nil {
		c.PhaseStates = make(map[PhaseID]PhaseState, len(b.PhaseStates))
		for k, v := range b.PhaseStates {
			c.PhaseStates[k] = v.Clone()
		}
	}
	return c
}

// PhaseState returns the state recorded for id, or a zero value.
func (b PhaseDataBag) PhaseState(id PhaseID) PhaseState {
	if b.PhaseStates == nil {
		return PhaseState{}
	}
	return b.PhaseStates[id].Clone()
}
