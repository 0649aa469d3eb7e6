// Package export turns a period's bag into plain per-form snapshots and
// writes them as YAML or JSON. Printable layouts are out of scope; the
// snapshots only fix which fields each ICS form carries.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jjimmyk/planningp/internal/domain"
)

type Form string

const (
	ICS201  Form = "ics201"
	ICS202  Form = "ics202"
	ICS204  Form = "ics204"
	ICS215  Form = "ics215"
	ICS215A Form = "ics215a"
)

var formTitles = map[Form]string{
	ICS201:  "Incident Briefing",
	ICS202:  "Incident Objectives",
	ICS204:  "Assignment List",
	ICS215:  "Operational Planning Worksheet",
	ICS215A: "Incident Action Plan Safety Analysis",
}

// Forms lists every exportable form in form-number order.
func Forms() []Form {
	return []Form{ICS201, ICS202, ICS204, ICS215, ICS215A}
}

// ParseForm accepts "ics215a", "ICS-215A" and similar spellings.
func ParseForm(s string) (Form, error) {
	f := Form(strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "")))
	if _, ok := formTitles[f]; !ok {
		return "", domain.NewValidationError("form", fmt.Sprintf("%q is not one of ics201, ics202, ics204, ics215, ics215a", s))
	}
	return f, nil
}

func (f Form) Title() string { return formTitles[f] }

// Meta describes where a snapshot came from.
type Meta struct {
	IncidentName string
	PeriodName   string
	GeneratedAt  time.Time
}

type Header struct {
	Form        Form      `json:"form" yaml:"form"`
	Title       string    `json:"title" yaml:"title"`
	Incident    string    `json:"incident" yaml:"incident"`
	Period      string    `json:"period" yaml:"period"`
	GeneratedAt time.Time `json:"generatedAt" yaml:"generated_at"`
}

// Document is one exported form.
type Document struct {
	Header Header `json:"header" yaml:"header"`
	Body   any    `json:"body" yaml:"body"`
}

// Snapshot builds the document for form from bag. The bag is not modified.
func Snapshot(form Form, bag domain.PhaseDataBag, meta Meta) (Document, error) {
	bag = bag.Clone()
	incident := domain.CoalesceStr(bag.ICS201.IncidentName, meta.IncidentName)
	doc := Document{
		Header: Header{
			Form:        form,
			Title:       form.Title(),
			Incident:    incident,
			Period:      meta.PeriodName,
			GeneratedAt: meta.GeneratedAt.UTC(),
		},
	}
	switch form {
	case ICS201:
		doc.Body = ics201(bag)
	case ICS202:
		doc.Body = ics202(bag)
	case ICS204:
		doc.Body = ics204(bag)
	case ICS215:
		doc.Body = ics215(bag)
	case ICS215A:
		doc.Body = ics215a(bag)
	default:
		return Document{}, domain.NewValidationError("form", fmt.Sprintf("%q is not exportable", form))
	}
	return doc, nil
}

type IncidentBriefing struct {
	IncidentNumber   string                      `json:"incidentNumber" yaml:"incident_number"`
	PreparedBy       string                      `json:"preparedBy" yaml:"prepared_by"`
	PreparedAt       string                      `json:"preparedAt" yaml:"prepared_at"`
	SituationSummary string                      `json:"situationSummary" yaml:"situation_summary"`
	SafetyBriefing   string                      `json:"safetyBriefing" yaml:"safety_briefing"`
	Objectives       []domain.ResponseObjective  `json:"objectives" yaml:"objectives"`
	Organization     []domain.RosterEntry        `json:"organization" yaml:"organization"`
	Resources        []domain.ResourceSummaryRow `json:"resources" yaml:"resources"`
}

func ics201(bag domain.PhaseDataBag) IncidentBriefing {
	h := bag.ICS201
	return IncidentBriefing{
		IncidentNumber:   h.IncidentNumber,
		PreparedBy:       h.PreparedBy,
		PreparedAt:       h.PreparedAt,
		SituationSummary: h.SituationSummary,
		SafetyBriefing:   h.SafetyBriefing,
		Objectives:       nonNil(bag.ResponseObjectives),
		Organization:     nonNil(bag.Roster),
		Resources:        nonNil(bag.ResourceSummary),
	}
}

type IncidentObjectives struct {
	Objectives    []ObjectiveLine `json:"objectives" yaml:"objectives"`
	SafetyMessage string          `json:"safetyMessage" yaml:"safety_message"`
	Meetings      []MeetingLine   `json:"meetings" yaml:"meetings"`
}

type ObjectiveLine struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Strategies  []string `json:"strategies" yaml:"strategies"`
}

type MeetingLine struct {
	Name     string `json:"name" yaml:"name"`
	Date     string `json:"date" yaml:"date"`
	Start    string `json:"start" yaml:"start"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

func ics202(bag domain.PhaseDataBag) IncidentObjectives {
	out := IncidentObjectives{
		Objectives:    make([]ObjectiveLine, 0, len(bag.WorkObjectives)),
		SafetyMessage: bag.ICS201.SafetyBriefing,
		Meetings:      make([]MeetingLine, 0, len(bag.Meetings)),
	}
	for _, o := range bag.WorkObjectives {
		line := ObjectiveLine{Name: o.Name, Description: o.Description, Strategies: []string{}}
		for _, s := range o.Strategies {
			line.Strategies = append(line.Strategies, s.Name)
		}
		out.Objectives = append(out.Objectives, line)
	}
	for _, m := range bag.Meetings {
		out.Meetings = append(out.Meetings, MeetingLine{Name: m.Name, Date: m.Date, Start: m.StartTime, Location: m.Location})
	}
	sort.SliceStable(out.Meetings, func(i, j int) bool {
		a, b := out.Meetings[i], out.Meetings[j]
		return a.Date+" "+a.Start < b.Date+" "+b.Start
	})
	return out
}

type AssignmentList struct {
	Assignments []AssignmentSheet `json:"assignments" yaml:"assignments"`
}

type AssignmentSheet struct {
	Name                 string         `json:"name" yaml:"name"`
	DivisionGroup        string         `json:"divisionGroup" yaml:"division_group"`
	OverheadPositions    string         `json:"overheadPositions" yaml:"overhead_positions"`
	SpecialEquipment     string         `json:"specialEquipment" yaml:"special_equipment"`
	ReportingLocation    string         `json:"reportingLocation" yaml:"reporting_location"`
	RequestedArrivalTime string         `json:"requestedArrivalTime" yaml:"requested_arrival_time"`
	Resources            []ResourceLine `json:"resources" yaml:"resources"`
}

type ResourceLine struct {
	Name     string `json:"name" yaml:"name"`
	Required int    `json:"required" yaml:"required"`
	Have     int    `json:"have" yaml:"have"`
	Need     int    `json:"need" yaml:"need"`
	Gap      int    `json:"gap" yaml:"gap"`
}

func resourceLines(rs []domain.Resource) []ResourceLine {
	out := make([]ResourceLine, 0, len(rs))
	for _, r := range rs {
		out = append(out, ResourceLine{
			Name:     r.Name,
			Required: r.QuantityRequired,
			Have:     r.QuantityHad,
			Need:     r.QuantityNeeded,
			Gap:      r.Gap(),
		})
	}
	return out
}

func ics204(bag domain.PhaseDataBag) AssignmentList {
	out := AssignmentList{Assignments: make([]AssignmentSheet, 0, len(bag.WorkAssignments))}
	for _, a := range bag.WorkAssignments {
		out.Assignments = append(out.Assignments, AssignmentSheet{
			Name:                 a.Name,
			DivisionGroup:        a.DivisionGroupLocation,
			OverheadPositions:    a.OverheadPositions,
			SpecialEquipment:     a.SpecialEquipmentSupplies,
			ReportingLocation:    a.ReportingLocation,
			RequestedArrivalTime: a.RequestedArrivalTime,
			Resources:            resourceLines(a.Resources),
		})
	}
	return out
}

type PlanningWorksheet struct {
	Rows    []WorksheetRow `json:"rows" yaml:"rows"`
	Tactics []TacticLine   `json:"tactics" yaml:"tactics"`
	Total   ResourceLine   `json:"total" yaml:"total"`
}

type WorksheetRow struct {
	Assignment string         `json:"assignment" yaml:"assignment"`
	Location   string         `json:"location" yaml:"location"`
	Resources  []ResourceLine `json:"resources" yaml:"resources"`
}

type TacticLine struct {
	Objective  string          `json:"objective" yaml:"objective"`
	Strategy   string          `json:"strategy" yaml:"strategy"`
	Tactic     string          `json:"tactic" yaml:"tactic"`
	AssignedTo string          `json:"assignedTo,omitempty" yaml:"assigned_to,omitempty"`
	Priority   domain.Priority `json:"priority" yaml:"priority"`
}

func ics215(bag domain.PhaseDataBag) PlanningWorksheet {
	out := PlanningWorksheet{
		Rows:    make([]WorksheetRow, 0, len(bag.WorkAssignments)),
		Tactics: []TacticLine{},
		Total:   ResourceLine{Name: "total"},
	}
	for _, a := range bag.WorkAssignments {
		lines := resourceLines(a.Resources)
		for _, l := range lines {
			out.Total.Required += l.Required
			out.Total.Have += l.Have
			out.Total.Need += l.Need
			out.Total.Gap += l.Gap
		}
		out.Rows = append(out.Rows, WorksheetRow{Assignment: a.Name, Location: a.DivisionGroupLocation, Resources: lines})
	}
	for _, o := range bag.WorkObjectives {
		for _, s := range o.Strategies {
			for _, t := range s.Tactics {
				out.Tactics = append(out.Tactics, TacticLine{
					Objective:  o.Name,
					Strategy:   s.Name,
					Tactic:     t.Name,
					AssignedTo: t.AssignedTo,
					Priority:   t.Priority,
				})
			}
		}
	}
	sort.SliceStable(out.Tactics, func(i, j int) bool {
		return out.Tactics[i].Priority.Rank() < out.Tactics[j].Priority.Rank()
	})
	return out
}

type SafetyAnalysis struct {
	Hazards []HazardLine           `json:"hazards" yaml:"hazards"`
	Counts  map[domain.Severity]int `json:"counts" yaml:"counts"`
}

type HazardLine struct {
	Name         string          `json:"name" yaml:"name"`
	IncidentArea string          `json:"incidentArea" yaml:"incident_area"`
	Mitigations  string          `json:"mitigations" yaml:"mitigations"`
	GARScore     int             `json:"garScore" yaml:"gar_score"`
	Severity     domain.Severity `json:"severity" yaml:"severity"`
}

// ics215a lists hazards highest GAR first; equal scores keep register order.
func ics215a(bag domain.PhaseDataBag) SafetyAnalysis {
	out := SafetyAnalysis{
		Hazards: make([]HazardLine, 0, len(bag.Hazards)),
		Counts: map[domain.Severity]int{
			domain.SeverityLow: 0, domain.SeverityMedium: 0, domain.SeverityHigh: 0,
		},
	}
	for _, h := range bag.Hazards {
		score := domain.ClampGAR(h.GARScore)
		out.Hazards = append(out.Hazards, HazardLine{
			Name:         h.Name,
			IncidentArea: h.IncidentArea,
			Mitigations:  h.Mitigations,
			GARScore:     score,
			Severity:     domain.SeverityFor(score),
		})
		out.Counts[domain.SeverityFor(score)]++
	}
	sort.SliceStable(out.Hazards, func(i, j int) bool {
		return out.Hazards[i].GARScore > out.Hazards[j].GARScore
	})
	return out
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
