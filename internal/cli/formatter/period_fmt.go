package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/phase"
)

const stampLayout = "2006-01-02 15:04"

func windowString(p *domain.OperationalPeriod) string {
	if p.StartsAt == nil && p.EndsAt == nil {
		return Dim("--")
	}
	part := func(t *time.Time) string {
		if t == nil {
			return "?"
		}
		return t.Format(stampLayout)
	}
	return part(p.StartsAt) + " → " + part(p.EndsAt)
}

// FormatPeriodList renders operational periods as a table. The row whose id
// equals current is marked.
func FormatPeriodList(periods []*domain.OperationalPeriod, current string) string {
	rows := make([][]string, 0, len(periods))
	for _, p := range periods {
		mark := " "
		if p.ID == current {
			mark = StyleGreen.Render("●")
		}
		rows = append(rows, []string{
			mark,
			TruncID(p.ID),
			Bold(p.Name),
			OrDash(p.IncidentName),
			windowString(p),
			PhaseTitle(p.ActivePhase),
		})
	}
	return RenderTable([]string{"", "ID", "PERIOD", "INCIDENT", "WINDOW", "PHASE"}, rows)
}

// FormatPeriod renders one period's details.
func FormatPeriod(p *domain.OperationalPeriod) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(p.Name), Dim(p.ID))
	fmt.Fprintf(&b, "Incident  %s\n", OrDash(p.IncidentName))
	fmt.Fprintf(&b, "Window    %s\n", windowString(p))
	fmt.Fprintf(&b, "Phase     %s\n", PhaseTitle(p.ActivePhase))
	return b.String()
}

// FormatHistory lists saved revisions, newest first.
func FormatHistory(revs []domain.BagRevision) string {
	rows := make([][]string, 0, len(revs))
	for _, r := range revs {
		b := r.Bag
		rows = append(rows, []string{
			strconv.Itoa(r.Revision),
			r.SavedAt.Local().Format(stampLayout),
			fmt.Sprintf("%d obj · %d asg · %d haz · %d mtg",
				len(b.WorkObjectives), len(b.WorkAssignments), len(b.Hazards), len(b.Meetings)),
		})
	}
	return Table{
		Headers:    []string{"REV", "SAVED", "CONTENTS"},
		Rows:       rows,
		RightAlign: map[int]bool{0: true},
	}.Render()
}

// PhaseTitle is the phase's display title, or the raw id dimmed when the
// phase is not part of the cycle.
func PhaseTitle(id domain.PhaseID) string {
	if info, ok := phase.Lookup(id); ok {
		return info.Title
	}
	return Dim(string(id))
}

// FormatPhaseList renders the cycle in order, marking the active phase.
func FormatPhaseList(active domain.PhaseID) string {
	rows := [][]string{}
	for i, info := range phase.Ordered() {
		mark := " "
		title := info.Title
		if info.ID == active {
			mark = StyleGreen.Render("▶")
			title = StyleYellowBold.Render(title)
		}
		rows = append(rows, []string{mark, strconv.Itoa(i + 1), title, Dim(string(info.ID))})
	}
	return Table{
		Headers:    []string{"", "#", "PHASE", "ID"},
		Rows:       rows,
		RightAlign: map[int]bool{1: true},
	}.Render()
}

var sectionTitles = map[phase.SectionTag]string{
	phase.ScheduledMeetings:   "Scheduled Meetings",
	phase.IncidentObjectives:  "Incident Objectives",
	phase.WorkAnalysisMatrix:  "Work Analysis Matrix",
	phase.OperationalPlanning: "Operational Planning (ICS-215)",
	phase.SafetyAnalysis:      "Safety Analysis (ICS-215A)",
	phase.ICSFormsExport:      "ICS Forms Export",
	phase.AgendaChecklist:     "Agenda",
	phase.ICS201Form:          "ICS-201 Incident Briefing",
	phase.OpenActionsTracker:  "Open Actions",
	phase.ResourceSummary:     "Resource Summary",
	phase.Organization:        "Current Organization",
	phase.Placeholder:         "Nothing to show for this phase",
}

// SectionTitle names a section tag for display.
func SectionTitle(tag phase.SectionTag) string {
	if t, ok := sectionTitles[tag]; ok {
		return t
	}
	return string(tag)
}
