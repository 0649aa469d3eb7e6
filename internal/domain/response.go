package domain

import "slices"

// ResponseObjective is an ICS-201 objective row with its ordered actions.
type ResponseObjective struct {
	ID        string   `json:"id" yaml:"id"`
	Objective string   `json:"objective" yaml:"objective"`
	Time      string   `json:"time" yaml:"time"`
	Actions   []Action `json:"actions" yaml:"actions"`
}

type Action struct {
	ID     string       `json:"id" yaml:"id"`
	Action string       `json:"action" yaml:"action"`
	Status ActionStatus `json:"status" yaml:"status"`
	Time   string       `json:"time" yaml:"time"`
}

func (o ResponseObjective) Key() string { return o.ID }

func (o ResponseObjective) Clone() ResponseObjective {
	c := o
	if o.Actions != nil {
		c.Actions = slices.Clone(o.Actions)
	}
	return c
}

// ActionIndex returns the position of the action with id, or -1.
func (o *ResponseObjective) ActionIndex(id string) int {
	for i := range o.Actions {
		if o.Actions[i].ID == id {
			return i
		}
	}
	return -1
}

// RosterEntry is a row of the ICS-201 current organization.
type RosterEntry struct {
	ID       string `json:"id" yaml:"id"`
	Position string `json:"position" yaml:"position"`
	Name     string `json:"name" yaml:"name"`
}

func (r RosterEntry) Key() string { return r.ID }

func (r RosterEntry) Clone() RosterEntry { return r }

// ResourceSummaryRow is a row of the ICS-201 resource summary.
type ResourceSummaryRow struct {
	ID         string `json:"id" yaml:"id"`
	Resource   string `json:"resource" yaml:"resource"`
	Identifier string `json:"identifier" yaml:"identifier"`
	OrderedAt  string `json:"orderedAt" yaml:"ordered_at"`
	ETA        string `json:"eta" yaml:"eta"`
	Arrived    bool   `json:"arrived" yaml:"arrived"`
	Notes      string `json:"notes" yaml:"notes"`
}

func (r ResourceSummaryRow) Key() string { return r.ID }

func (r ResourceSummaryRow) Clone() ResourceSummaryRow { return r }

// ICS201Header holds the single-value fields of the incident briefing form.
type ICS201Header struct {
	IncidentName     string `json:"incidentName" yaml:"incident_name"`
	IncidentNumber   string `json:"incidentNumber" yaml:"incident_number"`
	PreparedBy       string `json:"preparedBy" yaml:"prepared_by"`
	PreparedAt       string `json:"preparedAt" yaml:"prepared_at"`
	SituationSummary string `json:"situationSummary" yaml:"situation_summary"`
	SafetyBriefing   string `json:"safetyBriefing" yaml:"safety_briefing"`
}
