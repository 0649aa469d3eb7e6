package service

import (
	"context"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/phase"
)

// ResponseObjectiveTable edits the ICS-201 objectives and their actions.
// The table never drops below one objective, and an objective never drops
// below one action.
type ResponseObjectiveTable struct {
	ws *Workspace
}

func (t *ResponseObjectiveTable) blankAction() domain.Action {
	return domain.Action{ID: t.ws.ids.NewID(), Status: domain.ActionCurrent}
}

// AddObjective appends an empty objective holding one blank action.
func (t *ResponseObjectiveTable) AddObjective(ctx context.Context) (domain.ResponseObjective, error) {
	var out domain.ResponseObjective
	fields := map[string]any{}
	err := t.ws.mutate(ctx, "add-response-objective", fields, func() (phase.Patch, error) {
		out = domain.ResponseObjective{
			ID:      t.ws.ids.NewID(),
			Actions: []domain.Action{t.blankAction()},
		}
		fields["objective_id"] = out.ID
		if err := t.ws.store.ResponseObjectives.Add(out); err != nil {
			return phase.Patch{}, err
		}
		return t.ws.responseObjectivesPatch(), nil
	})
	return out.Clone(), err
}

// RemoveObjective deletes an objective unless it is the last one. Unknown
// ids are a no-op.
func (t *ResponseObjectiveTable) RemoveObjective(ctx context.Context, id string) error {
	return t.ws.mutate(ctx, "remove-response-objective", map[string]any{"objective_id": id}, func() (phase.Patch, error) {
		objectives := t.ws.store.ResponseObjectives
		if _, ok := objectives.Get(id); !ok {
			return phase.Patch{}, nil
		}
		if objectives.Len() <= 1 {
			return phase.Patch{}, domain.NewConflictError("cannot remove the last objective")
		}
		objectives.Delete(id)
		return t.ws.responseObjectivesPatch(), nil
	})
}

func (t *ResponseObjectiveTable) AddAction(ctx context.Context, objectiveID string) (domain.Action, error) {
	var out domain.Action
	fields := map[string]any{"objective_id": objectiveID}
	err := t.ws.mutate(ctx, "add-response-action", fields, func() (phase.Patch, error) {
		a := t.blankAction()
		fields["action_id"] = a.ID
		err := t.ws.store.ResponseObjectives.Update(objectiveID, func(o *domain.ResponseObjective) error {
			o.Actions = append(o.Actions, a)
			return nil
		})
		if err != nil {
			return phase.Patch{}, err
		}
		out = a
		return t.ws.responseObjectivesPatch(), nil
	})
	return out, err
}

// RemoveAction deletes an action unless it is the objective's last one.
// Unknown objective or action ids are a no-op.
func (t *ResponseObjectiveTable) RemoveAction(ctx context.Context, objectiveID, actionID string) error {
	fields := map[string]any{"objective_id": objectiveID, "action_id": actionID}
	return t.ws.mutate(ctx, "remove-response-action", fields, func() (phase.Patch, error) {
		if _, ok := t.ws.store.ResponseObjectives.Get(objectiveID); !ok {
			return phase.Patch{}, nil
		}
		removed := false
		err := t.ws.store.ResponseObjectives.Update(objectiveID, func(o *domain.ResponseObjective) error {
			i := o.ActionIndex(actionID)
			if i < 0 {
				return nil
			}
			if len(o.Actions) <= 1 {
				return domain.NewConflictError("cannot remove the last action of an objective")
			}
			o.Actions = append(o.Actions[:i], o.Actions[i+1:]...)
			removed = true
			return nil
		})
		if err != nil {
			return phase.Patch{}, err
		}
		if !removed {
			return phase.Patch{}, nil
		}
		return t.ws.responseObjectivesPatch(), nil
	})
}

// UpdateObjective sets objective or time.
func (t *ResponseObjectiveTable) UpdateObjective(ctx context.Context, id, field, value string) error {
	fields := map[string]any{"objective_id": id, "field": field}
	return t.ws.mutate(ctx, "update-response-objective", fields, func() (phase.Patch, error) {
		err := t.ws.store.ResponseObjectives.Update(id, func(o *domain.ResponseObjective) error {
			switch field {
			case "objective":
				o.Objective = value
			case "time":
				o.Time = value
			default:
				return unknownField(field)
			}
			return nil
		})
		if err != nil {
			return phase.Patch{}, err
		}
		return t.ws.responseObjectivesPatch(), nil
	})
}

// UpdateAction sets action, status or time. Status must be Current,
// Planned or Completed.
func (t *ResponseObjectiveTable) UpdateAction(ctx context.Context, objectiveID, actionID, field, value string) error {
	fields := map[string]any{"objective_id": objectiveID, "action_id": actionID, "field": field}
	return t.ws.mutate(ctx, "update-response-action", fields, func() (phase.Patch, error) {
		err := t.ws.store.ResponseObjectives.Update(objectiveID, func(o *domain.ResponseObjective) error {
			i := o.ActionIndex(actionID)
			if i < 0 {
				return domain.NewNotFoundError("action", actionID)
			}
			a := &o.Actions[i]
			switch field {
			case "action":
				a.Action = value
			case "time":
				a.Time = value
			case "status":
				s := domain.ActionStatus(value)
				if !domain.ValidActionStatuses[s] {
					return domain.NewValidationError("status", "must be Current, Planned or Completed")
				}
				a.Status = s
			default:
				return unknownField(field)
			}
			return nil
		})
		if err != nil {
			return phase.Patch{}, err
		}
		return t.ws.responseObjectivesPatch(), nil
	})
}

func (t *ResponseObjectiveTable) Objectives() []domain.ResponseObjective {
	var out []domain.ResponseObjective
	t.ws.read(func() { out = t.ws.store.ResponseObjectives.List() })
	return out
}

// FilterAndSort returns the objective's actions after applying q. The
// stored list is never reordered.
func (t *ResponseObjectiveTable) FilterAndSort(objectiveID string, q domain.ActionQuery) ([]domain.Action, error) {
	var (
		o  domain.ResponseObjective
		ok bool
	)
	t.ws.read(func() { o, ok = t.ws.store.ResponseObjectives.Get(objectiveID) })
	if !ok {
		return nil, domain.NewNotFoundError("response objective", objectiveID)
	}
	return FilterActions(o.Actions, q), nil
}

// GlobalFilterObjectives keeps objectives whose text matches search or that
// own at least one matching action. An empty search returns everything.
func (t *ResponseObjectiveTable) GlobalFilterObjectives(search string) []domain.ResponseObjective {
	all := t.Objectives()
	if search == "" {
		return all
	}
	out := make([]domain.ResponseObjective, 0, len(all))
	for _, o := range all {
		if objectiveMatches(o, search) {
			out = append(out, o)
		}
	}
	return out
}

// SaveQuery remembers the search/filter/sort state of one objective's
// action table for a phase.
func (t *ResponseObjectiveTable) SaveQuery(ctx context.Context, phaseID domain.PhaseID, objectiveID string, q domain.ActionQuery) error {
	fields := map[string]any{"phase": string(phaseID), "objective_id": objectiveID}
	return t.ws.mutate(ctx, "save-action-query", fields, func() (phase.Patch, error) {
		if q.SortBy != "" && !validSortKeys[q.SortBy] {
			return phase.Patch{}, domain.NewValidationError("sortBy", "must be action, status or time")
		}
		if q.SortOrder != "" && q.SortOrder != domain.SortAsc && q.SortOrder != domain.SortDesc {
			return phase.Patch{}, domain.NewValidationError("sortOrder", "must be asc or desc")
		}
		st := t.ws.store.PhaseStates[phaseID].Clone()
		if st.Queries == nil {
			st.Queries = map[string]domain.ActionQuery{}
		}
		st.Queries[objectiveID] = q
		t.ws.store.PhaseStates[phaseID] = st
		return t.ws.phaseStatesPatch(), nil
	})
}

// SavedQuery returns the stored query for an objective's table, if any.
func (t *ResponseObjectiveTable) SavedQuery(phaseID domain.PhaseID, objectiveID string) (domain.ActionQuery, bool) {
	var (
		q  domain.ActionQuery
		ok bool
	)
	t.ws.read(func() { q, ok = t.ws.store.PhaseStates[phaseID].Queries[objectiveID] })
	return q, ok
}
