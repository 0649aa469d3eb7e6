package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/jjimmyk/planningp/internal/cli/formatter"
	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/export"
	"github.com/jjimmyk/planningp/internal/phase"
	"github.com/jjimmyk/planningp/internal/service"
)

// renderPhase draws every section the phase shows, in table order.
func renderPhase(ws *service.Workspace, id domain.PhaseID, now time.Time) string {
	var b strings.Builder
	for i, tag := range phase.VisibleSections(id) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatter.Header(formatter.SectionTitle(tag)) + "\n")
		b.WriteString(renderSection(ws, id, tag, now))
	}
	return b.String()
}

func renderSection(ws *service.Workspace, id domain.PhaseID, tag phase.SectionTag, now time.Time) string {
	switch tag {
	case phase.ScheduledMeetings:
		return formatter.FormatMeetings(ws.Meetings().Upcoming(now), now)
	case phase.IncidentObjectives:
		return formatter.FormatHierarchy(ws.Hierarchy().Objectives(), true)
	case phase.WorkAnalysisMatrix:
		rows := ws.Hierarchy().TacticsByPriority()
		if len(rows) == 0 {
			return formatter.Dim("No tactics yet.") + "\n"
		}
		return formatter.FormatTacticsByPriority(rows)
	case phase.OperationalPlanning:
		l := ws.Ledger()
		if len(l.WorkAssignments()) == 0 {
			return formatter.Dim("No work assignments yet.") + "\n"
		}
		return formatter.FormatAssignmentList(l.WorkAssignments()) + "\n" + formatter.FormatShortfalls(l.Shortfalls())
	case phase.SafetyAnalysis:
		h := ws.Hazards()
		return formatter.FormatHazards(h.BySeverity()) + formatter.FormatSeverityCounts(h.SeverityCounts()) + "\n"
	case phase.ICSFormsExport:
		var b strings.Builder
		for _, f := range export.Forms() {
			fmt.Fprintf(&b, "%-8s %s\n", f, f.Title())
		}
		b.WriteString(formatter.Dim("planningp export --form FORM [--format yaml|json]") + "\n")
		return b.String()
	case phase.AgendaChecklist:
		a := ws.Agenda()
		return formatter.FormatAgenda(a.Items(id), a.Notes(id))
	case phase.ICS201Form:
		f := ws.ICS201()
		return formatter.FormatICS201Header(f.Header()) + "\n" +
			formatter.FormatResponseObjectives(ws.ResponseTable().Objectives())
	case phase.OpenActionsTracker:
		return formatter.FormatActionItems(ws.ActionTracker().Open(), now)
	case phase.ResourceSummary:
		return formatter.FormatResourceSummary(ws.ICS201().ResourceSummary())
	case phase.Organization:
		return formatter.FormatRoster(ws.ICS201().Roster())
	default:
		return formatter.Dim("This phase has no working sections.") + "\n"
	}
}
