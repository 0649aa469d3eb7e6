package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/service"
)

// FormatICS201Header renders the incident briefing header block.
func FormatICS201Header(h domain.ICS201Header) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Incident name    %s\n", OrDash(h.IncidentName))
	fmt.Fprintf(&b, "Incident number  %s\n", OrDash(h.IncidentNumber))
	fmt.Fprintf(&b, "Prepared by      %s\n", OrDash(h.PreparedBy))
	fmt.Fprintf(&b, "Prepared at      %s\n", OrDash(h.PreparedAt))
	fmt.Fprintf(&b, "\n%s\n%s\n", Header("Situation summary"), OrDash(h.SituationSummary))
	fmt.Fprintf(&b, "\n%s\n%s\n", Header("Safety briefing"), OrDash(h.SafetyBriefing))
	return b.String()
}

// FormatRoster renders the current organization.
func FormatRoster(roster []domain.RosterEntry) string {
	rows := make([][]string, 0, len(roster))
	for _, r := range roster {
		rows = append(rows, []string{Dim(r.ID), OrDash(r.Position), OrDash(r.Name)})
	}
	return RenderTable([]string{"ID", "POSITION", "NAME"}, rows)
}

// FormatResourceSummary renders the ICS-201 resource summary.
func FormatResourceSummary(summary []domain.ResourceSummaryRow) string {
	rows := make([][]string, 0, len(summary))
	for _, r := range summary {
		rows = append(rows, []string{
			Dim(r.ID),
			OrDash(r.Resource),
			OrDash(r.Identifier),
			OrDash(r.OrderedAt),
			OrDash(r.ETA),
			YesNo(r.Arrived),
			OrDash(Truncate(r.Notes, 30)),
		})
	}
	return RenderTable([]string{"ID", "RESOURCE", "IDENTIFIER", "ORDERED", "ETA", "ARRIVED", "NOTES"}, rows)
}

// FormatResponseObjectives renders each objective with its actions below it.
func FormatResponseObjectives(objectives []domain.ResponseObjective) string {
	if len(objectives) == 0 {
		return Dim("No response objectives.") + "\n"
	}
	var b strings.Builder
	for i, o := range objectives {
		if i > 0 {
			b.WriteString("\n")
		}
		title := o.Objective
		if domain.IsBlank(title) {
			title = Dim("(untitled objective)")
		} else {
			title = Bold(title)
		}
		fmt.Fprintf(&b, "%s  %s  %s\n", title, Dim(o.ID), Dim(o.Time))
		b.WriteString(FormatActions(o.Actions))
	}
	return b.String()
}

// FormatActions renders an action table in the order given.
func FormatActions(actions []domain.Action) string {
	if len(actions) == 0 {
		return Dim("  no matching actions") + "\n"
	}
	rows := make([][]string, 0, len(actions))
	for _, a := range actions {
		rows = append(rows, []string{Dim(a.ID), OrDash(a.Action), ActionStatusPill(a.Status), OrDash(a.Time)})
	}
	return RenderTable([]string{"ID", "ACTION", "STATUS", "TIME"}, rows)
}

// FormatMeetings renders meetings with a relative day seen from now.
func FormatMeetings(meetings []domain.Meeting, now time.Time) string {
	if len(meetings) == 0 {
		return Dim("No meetings scheduled.") + "\n"
	}
	rows := make([][]string, 0, len(meetings))
	for _, m := range meetings {
		when := m.Date
		if at, ok := m.StartsAt(now.Location()); ok {
			when = fmt.Sprintf("%s %s", m.Date, Dim("("+RelativeDateFrom(at, now)+")"))
		}
		where := m.Location
		if !m.IsInPerson && m.VirtualLink != "" {
			where = StyleBlue.Render(m.VirtualLink)
		}
		rows = append(rows, []string{
			Dim(m.ID),
			Bold(m.Name),
			OrDash(m.Type),
			when,
			m.StartTime + "–" + m.EndTime,
			OrDash(where),
			fmt.Sprintf("%d", len(m.Attendees)),
		})
	}
	return Table{
		Headers:    []string{"ID", "MEETING", "TYPE", "DATE", "TIME", "WHERE", "ATT"},
		Rows:       rows,
		RightAlign: map[int]bool{6: true},
	}.Render()
}

// FormatActionItems renders the open-actions tracker. Items whose deadline
// is before today are flagged.
func FormatActionItems(items []domain.ActionItem, now time.Time) string {
	if len(items) == 0 {
		return Dim("No action items.") + "\n"
	}
	today := now.Format(domain.DateLayout)
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		deadline := OrDash(it.Deadline)
		if it.Deadline != "" && it.Deadline < today && !it.Status.IsClosed() {
			deadline = StyleRed.Render(it.Deadline + " !")
		}
		rows = append(rows, []string{
			Dim(it.ID),
			Bold(it.TaskName),
			OrDash(it.PointOfContact),
			string(it.POCBriefed),
			OrDash(it.StartDate),
			deadline,
			ItemStatusPill(it.Status),
		})
	}
	return RenderTable([]string{"ID", "TASK", "POC", "BRIEFED", "START", "DEADLINE", "STATUS"}, rows)
}

// FormatAgenda renders a phase's checklist with a progress bar and notes.
func FormatAgenda(entries []service.AgendaEntry, notes string) string {
	if len(entries) == 0 && notes == "" {
		return Dim("This phase has no agenda.") + "\n"
	}
	var b strings.Builder
	done := 0
	for _, e := range entries {
		box := StyleDim.Render("[ ]")
		label := e.Label
		if e.Checked {
			done++
			box = StyleGreen.Render("[✔]")
			label = Dim(label)
		}
		fmt.Fprintf(&b, "%s %s %s\n", box, label, Dim("("+e.ID+")"))
	}
	if len(entries) > 0 {
		fmt.Fprintf(&b, "\n%s\n", RenderProgress(done, len(entries), 20))
	}
	if notes != "" {
		fmt.Fprintf(&b, "\n%s\n%s\n", Header("Notes"), notes)
	}
	return b.String()
}
