package phase

import "github.com/jjimmyk/planningp/internal/domain"

// AgendaItem is a fixed checklist entry for a meeting phase.
type AgendaItem struct {
	ID    string
	Label string
}

var agendas = map[domain.PhaseID][]AgendaItem{
	domain.PhaseInitialUCMeeting: {
		{"roles", "Clarify UC roles and responsibilities"},
		{"priorities", "Agree on incident priorities"},
		{"limitations", "Identify limitations and constraints"},
		{"org", "Agree on incident organization and facilities"},
		{"period", "Set operational period length and start time"},
	},
	domain.PhaseObjectivesMeeting: {
		{"review", "Review incident situation and status"},
		{"objectives", "Develop or update incident objectives"},
		{"priorities", "Confirm priorities and key decisions"},
		{"tasks", "Assign tasks to Command and General Staff"},
	},
	domain.PhaseStrategyMeeting: {
		{"situation", "Situation and resource status briefing"},
		{"objectives", "Review objectives and work analysis"},
		{"strategies", "Develop strategies for each objective"},
		{"actions", "Review open actions"},
	},
	domain.PhaseTacticsMeeting: {
		{"objectives", "Review objectives and strategies"},
		{"ics215", "Complete ICS-215 work assignments"},
		{"ics215a", "Complete ICS-215A safety analysis"},
		{"resources", "Identify resource requirements and shortfalls"},
		{"support", "Confirm logistics and communications support"},
	},
	domain.PhasePlanningMeeting: {
		{"situation", "Situation briefing"},
		{"objectives", "Review incident objectives"},
		{"plan", "Operations presents the tactical plan"},
		{"support", "Logistics, finance and safety confirm support"},
		{"approval", "Command approves the plan in principle"},
	},
	domain.PhaseOperationsBriefing: {
		{"objectives", "Objectives and plan overview"},
		{"assignments", "Division and group assignments"},
		{"safety", "Safety message"},
		{"logistics", "Logistics and communications"},
		{"closing", "Closing remarks from command"},
	},
}

// Agenda returns the checklist for id, or nil when the phase has none.
func Agenda(id domain.PhaseID) []AgendaItem {
	items, ok := agendas[id]
	if !ok {
		return nil
	}
	return append([]AgendaItem(nil), items...)
}

// HasAgendaItem reports whether itemID is part of id's checklist.
func HasAgendaItem(id domain.PhaseID, itemID string) bool {
	for _, it := range agendas[id] {
		if it.ID == itemID {
			return true
		}
	}
	return false
}
