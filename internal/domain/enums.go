package domain

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// priorityRank orders priorities for sorting. The enum itself carries no order.
var priorityRank = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// Rank returns the sort rank of p (lower = more urgent). Unknown priorities
// sort after Low.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

type ActionStatus string

const (
	ActionCurrent   ActionStatus = "Current"
	ActionPlanned   ActionStatus = "Planned"
	ActionCompleted ActionStatus = "Completed"
)

// ValidActionStatuses is the canonical set of accepted ICS-201 action statuses.
var ValidActionStatuses = map[ActionStatus]bool{
	ActionCurrent: true, ActionPlanned: true, ActionCompleted: true,
}

type Briefed string

const (
	BriefedYes Briefed = "Yes"
	BriefedNo  Briefed = "No"
)

type ActionItemStatus string

const (
	ItemNotStarted ActionItemStatus = "Not Started"
	ItemInProgress ActionItemStatus = "In Progress"
	ItemCompleted  ActionItemStatus = "Completed"
	ItemCancelled  ActionItemStatus = "Cancelled"
)

// ValidActionItemStatuses is the canonical set of accepted open-action statuses.
var ValidActionItemStatuses = map[ActionItemStatus]bool{
	ItemNotStarted: true, ItemInProgress: true, ItemCompleted: true, ItemCancelled: true,
}

// IsClosed reports whether the action item no longer needs follow-up.
func (s ActionItemStatus) IsClosed() bool {
	return s == ItemCompleted || s == ItemCancelled
}

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// PhaseID names a step of the Planning P cycle.
type PhaseID string

const (
	PhaseIncidentBriefing       PhaseID = "incident-briefing"
	PhaseInitialUCMeeting       PhaseID = "initial-uc-meeting"
	PhaseObjectivesMeeting      PhaseID = "ic-uc-objectives-meeting"
	PhaseStrategyMeeting        PhaseID = "strategy-meeting"
	PhasePrepareTacticsMeeting  PhaseID = "prepare-tactics-meeting"
	PhaseTacticsMeeting         PhaseID = "tactics-meeting"
	PhasePreparePlanningMeeting PhaseID = "prepare-planning-meeting"
	PhasePlanningMeeting        PhaseID = "planning-meeting"
	PhaseIAPPrepApproval        PhaseID = "iap-prep-approval"
	PhaseOperationsBriefing     PhaseID = "operations-briefing"
	PhaseExecuteAssess          PhaseID = "execute-assess-progress"
)
