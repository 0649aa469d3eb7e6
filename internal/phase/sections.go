// Package phase maps Planning P phases to the sections shown for them and
// owns the single merge-and-persist write path for a period's data.
package phase

import "github.com/jjimmyk/planningp/internal/domain"

type SectionTag string

const (
	ScheduledMeetings   SectionTag = "scheduled-meetings"
	IncidentObjectives  SectionTag = "incident-objectives"
	WorkAnalysisMatrix  SectionTag = "work-analysis-matrix"
	OperationalPlanning SectionTag = "operational-planning"
	SafetyAnalysis      SectionTag = "safety-analysis"
	ICSFormsExport      SectionTag = "ics-forms-export"
	AgendaChecklist     SectionTag = "agenda-checklist"
	ICS201Form          SectionTag = "ics-201-form"
	OpenActionsTracker  SectionTag = "open-actions-tracker"
	ResourceSummary     SectionTag = "resource-summary"
	Organization        SectionTag = "organization"
	Placeholder         SectionTag = "placeholder"
)

// Info describes one phase of the cycle.
type Info struct {
	ID       domain.PhaseID
	Title    string
	Sections []SectionTag
}

// phases is the Planning P in cycle order. It is the only place that
// decides which sections a phase shows.
var phases = []Info{
	{
		ID:    domain.PhaseIncidentBriefing,
		Title: "Incident Briefing (ICS-201)",
		Sections: []SectionTag{
			ICS201Form, ResourceSummary, Organization, OpenActionsTracker,
			ScheduledMeetings, ICSFormsExport,
		},
	},
	{
		ID:    domain.PhaseInitialUCMeeting,
		Title: "Initial UC Meeting",
		Sections: []SectionTag{
			AgendaChecklist, ScheduledMeetings, IncidentObjectives, OpenActionsTracker,
		},
	},
	{
		ID:    domain.PhaseObjectivesMeeting,
		Title: "IC/UC Develop/Update Objectives Meeting",
		Sections: []SectionTag{
			AgendaChecklist, ScheduledMeetings, IncidentObjectives, WorkAnalysisMatrix,
			OpenActionsTracker,
		},
	},
	{
		ID:    domain.PhaseStrategyMeeting,
		Title: "Strategy Meeting / Command & General Staff Meeting",
		Sections: []SectionTag{
			AgendaChecklist, ScheduledMeetings, IncidentObjectives, WorkAnalysisMatrix,
			OpenActionsTracker,
		},
	},
	{
		ID:    domain.PhasePrepareTacticsMeeting,
		Title: "Preparing for the Tactics Meeting",
		Sections: []SectionTag{
			ScheduledMeetings, WorkAnalysisMatrix, OperationalPlanning, SafetyAnalysis,
			OpenActionsTracker,
		},
	},
	{
		ID:    domain.PhaseTacticsMeeting,
		Title: "Tactics Meeting",
		Sections: []SectionTag{
			AgendaChecklist, ScheduledMeetings, WorkAnalysisMatrix, OperationalPlanning,
			SafetyAnalysis, OpenActionsTracker,
		},
	},
	{
		ID:    domain.PhasePreparePlanningMeeting,
		Title: "Preparing for the Planning Meeting",
		Sections: []SectionTag{
			ScheduledMeetings, OperationalPlanning, SafetyAnalysis, ResourceSummary,
			OpenActionsTracker,
		},
	},
	{
		ID:    domain.PhasePlanningMeeting,
		Title: "Planning Meeting",
		Sections: []SectionTag{
			AgendaChecklist, ScheduledMeetings, IncidentObjectives, OperationalPlanning,
			SafetyAnalysis, OpenActionsTracker,
		},
	},
	{
		ID:    domain.PhaseIAPPrepApproval,
		Title: "IAP Prep & Approval",
		Sections: []SectionTag{
			IncidentObjectives, OperationalPlanning, SafetyAnalysis, Organization,
			ICSFormsExport,
		},
	},
	{
		ID:    domain.PhaseOperationsBriefing,
		Title: "Operations Briefing",
		Sections: []SectionTag{
			AgendaChecklist, ScheduledMeetings, OperationalPlanning, SafetyAnalysis,
			ICSFormsExport,
		},
	},
	{
		ID:       domain.PhaseExecuteAssess,
		Title:    "Execute Plan & Assess Progress",
		Sections: []SectionTag{Placeholder, OpenActionsTracker},
	},
}

var byID = func() map[domain.PhaseID]Info {
	m := make(map[domain.PhaseID]Info, len(phases))
	for _, p := range phases {
		m[p.ID] = p
	}
	return m
}()

var unknownSections = []SectionTag{Placeholder}

// Ordered returns every phase in Planning P order.
func Ordered() []Info {
	out := make([]Info, len(phases))
	for i, p := range phases {
		out[i] = p
		out[i].Sections = append([]SectionTag(nil), p.Sections...)
	}
	return out
}

// Lookup returns the phase's info; ok is false for an unknown id.
func Lookup(id domain.PhaseID) (Info, bool) {
	p, ok := byID[id]
	if !ok {
		return Info{}, false
	}
	p.Sections = append([]SectionTag(nil), p.Sections...)
	return p, true
}

// Known reports whether id names a phase of the cycle.
func Known(id domain.PhaseID) bool {
	_, ok := byID[id]
	return ok
}

// VisibleSections returns the sections shown for id in display order.
// Unknown phases show only the placeholder.
func VisibleSections(id domain.PhaseID) []SectionTag {
	p, ok := byID[id]
	if !ok {
		return append([]SectionTag(nil), unknownSections...)
	}
	return append([]SectionTag(nil), p.Sections...)
}

// IsVisible reports whether tag is shown for id.
func IsVisible(id domain.PhaseID, tag SectionTag) bool {
	for _, s := range VisibleSections(id) {
		if s == tag {
			return true
		}
	}
	return false
}
