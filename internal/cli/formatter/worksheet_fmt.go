package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/service"
)

// FormatHierarchy renders the objective → strategy → tactic breakdown.
func FormatHierarchy(objectives []domain.WorkObjective, respectFolding bool) string {
	if len(objectives) == 0 {
		return Dim("No work objectives yet.") + "\n"
	}
	return RenderTree(HierarchyTree(objectives, respectFolding))
}

// FormatTacticsByPriority lists every tactic, most urgent first.
func FormatTacticsByPriority(rows []service.TacticRow) string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			PriorityBadge(r.Tactic.Priority),
			Bold(r.Tactic.Name),
			OrDash(r.Tactic.AssignedTo),
			Dim(r.ObjectiveName + " / " + r.StrategyName),
		})
	}
	return RenderTable([]string{"PRIORITY", "TACTIC", "ASSIGNED TO", "OBJECTIVE / STRATEGY"}, out)
}

// FormatAssignmentList renders one line per work assignment.
func FormatAssignmentList(assignments []domain.WorkAssignment) string {
	rows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		gap := 0
		for _, r := range a.Resources {
			gap += r.Gap()
		}
		gapCell := StyleGreen.Render("0")
		if gap > 0 {
			gapCell = StyleRed.Render(strconv.Itoa(gap))
		}
		rows = append(rows, []string{
			Dim(a.ID),
			Bold(a.Name),
			OrDash(a.DivisionGroupLocation),
			OrDash(a.ReportingLocation),
			OrDash(a.RequestedArrivalTime),
			strconv.Itoa(len(a.Resources)),
			gapCell,
		})
	}
	return Table{
		Headers:    []string{"ID", "ASSIGNMENT", "DIV/GROUP", "REPORT TO", "ARRIVAL", "RES", "GAP"},
		Rows:       rows,
		RightAlign: map[int]bool{5: true, 6: true},
	}.Render()
}

// FormatAssignment renders an assignment's fields and its resource lines
// with a totals footer.
func FormatAssignment(a domain.WorkAssignment, t service.ResourceTotals) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(a.Name), Dim(a.ID))
	fmt.Fprintf(&b, "Division/Group     %s\n", OrDash(a.DivisionGroupLocation))
	fmt.Fprintf(&b, "Overhead           %s\n", OrDash(a.OverheadPositions))
	fmt.Fprintf(&b, "Special equipment  %s\n", OrDash(a.SpecialEquipmentSupplies))
	fmt.Fprintf(&b, "Reporting location %s\n", OrDash(a.ReportingLocation))
	fmt.Fprintf(&b, "Requested arrival  %s\n\n", OrDash(a.RequestedArrivalTime))

	if len(a.Resources) == 0 {
		b.WriteString(Dim("No resources.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(a.Resources))
	for _, r := range a.Resources {
		rows = append(rows, []string{
			Dim(r.ID),
			OrDash(r.Name),
			strconv.Itoa(r.QuantityRequired),
			strconv.Itoa(r.QuantityHad),
			strconv.Itoa(r.QuantityNeeded),
			gapCell(r.Gap()),
		})
	}
	b.WriteString(Table{
		Headers: []string{"ID", "RESOURCE", "REQ", "HAVE", "NEED", "GAP"},
		Rows:    rows,
		Footer: []string{"", "total",
			strconv.Itoa(t.Required), strconv.Itoa(t.Had), strconv.Itoa(t.Needed), strconv.Itoa(t.Gap)},
		RightAlign: map[int]bool{2: true, 3: true, 4: true, 5: true},
	}.Render())
	return b.String()
}

func gapCell(gap int) string {
	if gap > 0 {
		return StyleRed.Render(strconv.Itoa(gap))
	}
	return Dim("0")
}

// FormatShortfalls lists resource lines with less on hand than required.
func FormatShortfalls(list []service.Shortfall) string {
	if len(list) == 0 {
		return StyleGreen.Render("✔ No resource shortfalls.") + "\n"
	}
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			Bold(s.AssignmentName),
			OrDash(s.Resource.Name),
			strconv.Itoa(s.Resource.QuantityRequired),
			strconv.Itoa(s.Resource.QuantityHad),
			StyleRed.Render(strconv.Itoa(s.Gap)),
		})
	}
	return Table{
		Headers:    []string{"ASSIGNMENT", "RESOURCE", "REQ", "HAVE", "GAP"},
		Rows:       rows,
		RightAlign: map[int]bool{2: true, 3: true, 4: true},
	}.Render()
}

// FormatHazards renders the ICS-215A register in the order given.
func FormatHazards(hazards []domain.Hazard) string {
	if len(hazards) == 0 {
		return Dim("No hazards recorded.") + "\n"
	}
	rows := make([][]string, 0, len(hazards))
	for _, h := range hazards {
		rows = append(rows, []string{
			Dim(h.ID),
			Bold(h.Name),
			OrDash(h.IncidentArea),
			OrDash(Truncate(h.Mitigations, 40)),
			GARBadge(h.GARScore),
			SeverityPill(h.Severity()),
		})
	}
	return Table{
		Headers:    []string{"ID", "HAZARD", "AREA", "MITIGATIONS", "GAR", "SEVERITY"},
		Rows:       rows,
		RightAlign: map[int]bool{4: true},
	}.Render()
}

// FormatSeverityCounts renders "● HIGH 2  ● MEDIUM 1  ● LOW 0".
func FormatSeverityCounts(counts map[domain.Severity]int) string {
	parts := make([]string, 0, 3)
	for _, s := range []domain.Severity{domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow} {
		parts = append(parts, fmt.Sprintf("%s %d", SeverityPill(s), counts[s]))
	}
	return strings.Join(parts, "  ")
}
