package service

import (
	"context"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/phase"
)

// AgendaChecklist tracks which fixed agenda items were covered in a
// meeting phase, plus free-text notes per phase.
type AgendaChecklist struct {
	ws *Workspace
}

// AgendaEntry is one agenda item with its checked state.
type AgendaEntry struct {
	phase.AgendaItem
	Checked bool
}

// ToggleItem flips an agenda item and returns its new state.
func (c *AgendaChecklist) ToggleItem(ctx context.Context, phaseID domain.PhaseID, itemID string) (bool, error) {
	var checked bool
	fields := map[string]any{"phase": string(phaseID), "item": itemID}
	err := c.ws.mutate(ctx, "toggle-agenda-item", fields, func() (phase.Patch, error) {
		if !phase.HasAgendaItem(phaseID, itemID) {
			return phase.Patch{}, domain.NewNotFoundError("agenda item", itemID)
		}
		st := c.ws.store.PhaseStates[phaseID].Clone()
		if st.Checked == nil {
			st.Checked = map[string]bool{}
		}
		checked = !st.Checked[itemID]
		st.Checked[itemID] = checked
		c.ws.store.PhaseStates[phaseID] = st
		return c.ws.phaseStatesPatch(), nil
	})
	return checked, err
}

// SetNotes replaces the phase's notes.
func (c *AgendaChecklist) SetNotes(ctx context.Context, phaseID domain.PhaseID, notes string) error {
	return c.ws.mutate(ctx, "set-phase-notes", map[string]any{"phase": string(phaseID)}, func() (phase.Patch, error) {
		st := c.ws.store.PhaseStates[phaseID].Clone()
		st.Notes = notes
		c.ws.store.PhaseStates[phaseID] = st
		return c.ws.phaseStatesPatch(), nil
	})
}

func (c *AgendaChecklist) Notes(phaseID domain.PhaseID) string {
	var out string
	c.ws.read(func() { out = c.ws.store.PhaseStates[phaseID].Notes })
	return out
}

// Items returns the phase's agenda with checked state.
func (c *AgendaChecklist) Items(phaseID domain.PhaseID) []AgendaEntry {
	var checked map[string]bool
	c.ws.read(func() { checked = c.ws.store.PhaseStates[phaseID].Clone().Checked })
	items := phase.Agenda(phaseID)
	out := make([]AgendaEntry, len(items))
	for i, it := range items {
		out[i] = AgendaEntry{AgendaItem: it, Checked: checked[it.ID]}
	}
	return out
}

// Progress reports how many of the phase's agenda items are checked.
func (c *AgendaChecklist) Progress(phaseID domain.PhaseID) (done, total int) {
	for _, e := range c.Items(phaseID) {
		total++
		if e.Checked {
			done++
		}
	}
	return done, total
}
