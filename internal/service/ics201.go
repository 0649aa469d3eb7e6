package service

import (
	"context"
	"strconv"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/phase"
	"github.com/jjimmyk/planningp/internal/store"
)

// ICS201Form edits the incident briefing header, the current organization
// roster and the resource summary. Both tables keep at least one row once
// they have one.
type ICS201Form struct {
	ws *Workspace
}

func (f *ICS201Form) Header() domain.ICS201Header {
	var out domain.ICS201Header
	f.ws.read(func() { out = f.ws.store.ICS201 })
	return out
}

// UpdateHeader sets one header field.
func (f *ICS201Form) UpdateHeader(ctx context.Context, field, value string) error {
	return f.ws.mutate(ctx, "update-ics201-header", map[string]any{"field": field}, func() (phase.Patch, error) {
		h := f.ws.store.ICS201
		switch field {
		case "incidentName":
			h.IncidentName = value
		case "incidentNumber":
			h.IncidentNumber = value
		case "preparedBy":
			h.PreparedBy = value
		case "preparedAt":
			h.PreparedAt = value
		case "situationSummary":
			h.SituationSummary = value
		case "safetyBriefing":
			h.SafetyBriefing = value
		default:
			return phase.Patch{}, unknownField(field)
		}
		f.ws.store.ICS201 = h
		return f.ws.ics201Patch(), nil
	})
}

func (f *ICS201Form) Roster() []domain.RosterEntry {
	var out []domain.RosterEntry
	f.ws.read(func() { out = f.ws.store.Roster.List() })
	return out
}

func (f *ICS201Form) AddRosterEntry(ctx context.Context, position, name string) (domain.RosterEntry, error) {
	var out domain.RosterEntry
	fields := map[string]any{}
	err := f.ws.mutate(ctx, "add-roster-entry", fields, func() (phase.Patch, error) {
		out = domain.RosterEntry{ID: f.ws.ids.NewID(), Position: position, Name: name}
		fields["roster_id"] = out.ID
		if err := f.ws.store.Roster.Add(out); err != nil {
			return phase.Patch{}, err
		}
		return f.ws.rosterPatch(), nil
	})
	return out, err
}

// UpdateRosterEntry sets position or name.
func (f *ICS201Form) UpdateRosterEntry(ctx context.Context, id, field, value string) error {
	fields := map[string]any{"roster_id": id, "field": field}
	return f.ws.mutate(ctx, "update-roster-entry", fields, func() (phase.Patch, error) {
		err := f.ws.store.Roster.Update(id, func(r *domain.RosterEntry) error {
			switch field {
			case "position":
				r.Position = value
			case "name":
				r.Name = value
			default:
				return unknownField(field)
			}
			return nil
		})
		if err != nil {
			return phase.Patch{}, err
		}
		return f.ws.rosterPatch(), nil
	})
}

func (f *ICS201Form) RemoveRosterEntry(ctx context.Context, id string) error {
	return f.ws.mutate(ctx, "remove-roster-entry", map[string]any{"roster_id": id}, func() (phase.Patch, error) {
		removed, err := removeKeepingOne(f.ws.store.Roster, id, "roster")
		if err != nil || !removed {
			return phase.Patch{}, err
		}
		return f.ws.rosterPatch(), nil
	})
}

func (f *ICS201Form) ResourceSummary() []domain.ResourceSummaryRow {
	var out []domain.ResourceSummaryRow
	f.ws.read(func() { out = f.ws.store.ResourceSummary.List() })
	return out
}

func (f *ICS201Form) AddSummaryRow(ctx context.Context, row domain.ResourceSummaryRow) (domain.ResourceSummaryRow, error) {
	var out domain.ResourceSummaryRow
	fields := map[string]any{}
	err := f.ws.mutate(ctx, "add-resource-summary-row", fields, func() (phase.Patch, error) {
		row.ID = f.ws.ids.NewID()
		fields["row_id"] = row.ID
		if err := f.ws.store.ResourceSummary.Add(row); err != nil {
			return phase.Patch{}, err
		}
		out = row
		return f.ws.resourceSummaryPatch(), nil
	})
	return out, err
}

// UpdateSummaryRow sets one column. arrived takes any value strconv.ParseBool
// accepts.
func (f *ICS201Form) UpdateSummaryRow(ctx context.Context, id, field, value string) error {
	fields := map[string]any{"row_id": id, "field": field}
	return f.ws.mutate(ctx, "update-resource-summary-row", fields, func() (phase.Patch, error) {
		err := f.ws.store.ResourceSummary.Update(id, func(r *domain.ResourceSummaryRow) error {
			switch field {
			case "resource":
				r.Resource = value
			case "identifier":
				r.Identifier = value
			case "orderedAt":
				r.OrderedAt = value
			case "eta":
				r.ETA = value
			case "arrived":
				b, err := strconv.ParseBool(value)
				if err != nil {
					return domain.NewValidationError("arrived", "must be true or false")
				}
				r.Arrived = b
			case "notes":
				r.Notes = value
			default:
				return unknownField(field)
			}
			return nil
		})
		if err != nil {
			return phase.Patch{}, err
		}
		return f.ws.resourceSummaryPatch(), nil
	})
}

func (f *ICS201Form) RemoveSummaryRow(ctx context.Context, id string) error {
	return f.ws.mutate(ctx, "remove-resource-summary-row", map[string]any{"row_id": id}, func() (phase.Patch, error) {
		removed, err := removeKeepingOne(f.ws.store.ResourceSummary, id, "resource summary")
		if err != nil || !removed {
			return phase.Patch{}, err
		}
		return f.ws.resourceSummaryPatch(), nil
	})
}

// removeKeepingOne deletes id from c unless it is the only row left.
func removeKeepingOne[T store.Record[T]](c *store.Collection[T], id, table string) (bool, error) {
	if _, ok := c.Get(id); !ok {
		return false, nil
	}
	if c.Len() <= 1 {
		return false, domain.NewConflictError("cannot remove the last " + table + " row")
	}
	return c.Delete(id), nil
}
