package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/phase"
)

// HierarchyEditor edits the Objective → Strategy → Tactic work breakdown.
type HierarchyEditor struct {
	ws *Workspace
}

// TacticRow is a tactic flattened with its ancestors, for priority views.
type TacticRow struct {
	ObjectiveID   string
	ObjectiveName string
	StrategyID    string
	StrategyName  string
	Tactic        domain.WorkTactic
}

const (
	LevelObjective = "objective"
	LevelStrategy  = "strategy"
)

func (e *HierarchyEditor) AddObjective(ctx context.Context, name, description string) (domain.WorkObjective, error) {
	var out domain.WorkObjective
	fields := map[string]any{}
	err := e.ws.mutate(ctx, "add-objective", fields, func() (phase.Patch, error) {
		if domain.IsBlank(name) {
			return phase.Patch{}, domain.NewValidationError("name", "is required")
		}
		out = domain.WorkObjective{
			ID:          e.ws.ids.NewID(),
			Name:        name,
			Description: description,
			Strategies:  []domain.WorkStrategy{},
			Expanded:    true,
		}
		fields["objective_id"] = out.ID
		if err := e.ws.store.Hierarchy.AddObjective(out); err != nil {
			return phase.Patch{}, err
		}
		return e.ws.hierarchyPatch(), nil
	})
	return out, err
}

func (e *HierarchyEditor) AddStrategy(ctx context.Context, objectiveID, name, description string) (domain.WorkStrategy, error) {
	var out domain.WorkStrategy
	fields := map[string]any{"objective_id": objectiveID}
	err := e.ws.mutate(ctx, "add-strategy", fields, func() (phase.Patch, error) {
		if _, ok := e.ws.store.Hierarchy.Objective(objectiveID); !ok {
			return phase.Patch{}, domain.NewNotFoundError("objective", objectiveID)
		}
		if domain.IsBlank(name) {
			return phase.Patch{}, domain.NewValidationError("name", "is required")
		}
		out = domain.WorkStrategy{
			ID:          e.ws.ids.NewID(),
			Name:        name,
			Description: description,
			Tactics:     []domain.WorkTactic{},
			Expanded:    true,
		}
		fields["strategy_id"] = out.ID
		if err := e.ws.store.Hierarchy.AddStrategy(objectiveID, out); err != nil {
			return phase.Patch{}, err
		}
		return e.ws.hierarchyPatch(), nil
	})
	return out, err
}

// AddTactic appends a tactic to a strategy. An empty priority means Medium.
func (e *HierarchyEditor) AddTactic(ctx context.Context, objectiveID, strategyID, name, description, assignedTo string, priority domain.Priority) (domain.WorkTactic, error) {
	var out domain.WorkTactic
	fields := map[string]any{"objective_id": objectiveID, "strategy_id": strategyID}
	err := e.ws.mutate(ctx, "add-tactic", fields, func() (phase.Patch, error) {
		if _, ok := e.ws.store.Hierarchy.Strategy(objectiveID, strategyID); !ok {
			return phase.Patch{}, domain.NewNotFoundError("strategy", strategyID)
		}
		if domain.IsBlank(name) {
			return phase.Patch{}, domain.NewValidationError("name", "is required")
		}
		if priority == "" {
			priority = domain.PriorityMedium
		}
		if !priority.Valid() {
			return phase.Patch{}, domain.NewValidationError("priority", "must be High, Medium or Low")
		}
		out = domain.WorkTactic{
			ID:          e.ws.ids.NewID(),
			Name:        name,
			Description: description,
			AssignedTo:  assignedTo,
			Priority:    priority,
		}
		fields["tactic_id"] = out.ID
		if err := e.ws.store.Hierarchy.AddTactic(objectiveID, strategyID, out); err != nil {
			return phase.Patch{}, err
		}
		return e.ws.hierarchyPatch(), nil
	})
	return out, err
}

// DeleteObjective removes the objective with its strategies and tactics.
// Unknown ids are a no-op.
func (e *HierarchyEditor) DeleteObjective(ctx context.Context, id string) error {
	return e.ws.mutate(ctx, "delete-objective", map[string]any{"objective_id": id}, func() (phase.Patch, error) {
		if !e.ws.store.Hierarchy.DeleteObjective(id) {
			return phase.Patch{}, nil
		}
		return e.ws.hierarchyPatch(), nil
	})
}

func (e *HierarchyEditor) DeleteStrategy(ctx context.Context, objectiveID, id string) error {
	fields := map[string]any{"objective_id": objectiveID, "strategy_id": id}
	return e.ws.mutate(ctx, "delete-strategy", fields, func() (phase.Patch, error) {
		if !e.ws.store.Hierarchy.DeleteStrategy(objectiveID, id) {
			return phase.Patch{}, nil
		}
		return e.ws.hierarchyPatch(), nil
	})
}

func (e *HierarchyEditor) DeleteTactic(ctx context.Context, objectiveID, strategyID, id string) error {
	fields := map[string]any{"objective_id": objectiveID, "strategy_id": strategyID, "tactic_id": id}
	return e.ws.mutate(ctx, "delete-tactic", fields, func() (phase.Patch, error) {
		if !e.ws.store.Hierarchy.DeleteTactic(objectiveID, strategyID, id) {
			return phase.Patch{}, nil
		}
		return e.ws.hierarchyPatch(), nil
	})
}

// UpdateObjective sets one field: name or description.
func (e *HierarchyEditor) UpdateObjective(ctx context.Context, id, field, value string) error {
	fields := map[string]any{"objective_id": id, "field": field}
	return e.ws.mutate(ctx, "update-objective", fields, func() (phase.Patch, error) {
		err := e.ws.store.Hierarchy.UpdateObjective(id, func(o *domain.WorkObjective) error {
			return setNameDescription(&o.Name, &o.Description, field, value)
		})
		if err != nil {
			return phase.Patch{}, err
		}
		return e.ws.hierarchyPatch(), nil
	})
}

// UpdateStrategy sets one field: name or description.
func (e *HierarchyEditor) UpdateStrategy(ctx context.Context, objectiveID, id, field, value string) error {
	fields := map[string]any{"objective_id": objectiveID, "strategy_id": id, "field": field}
	return e.ws.mutate(ctx, "update-strategy", fields, func() (phase.Patch, error) {
		err := e.ws.store.Hierarchy.UpdateStrategy(objectiveID, id, func(s *domain.WorkStrategy) error {
			return setNameDescription(&s.Name, &s.Description, field, value)
		})
		if err != nil {
			return phase.Patch{}, err
		}
		return e.ws.hierarchyPatch(), nil
	})
}

// UpdateTactic sets one of name, description, assignedTo or priority.
func (e *HierarchyEditor) UpdateTactic(ctx context.Context, objectiveID, strategyID, id, field, value string) error {
	fields := map[string]any{"objective_id": objectiveID, "strategy_id": strategyID, "tactic_id": id, "field": field}
	return e.ws.mutate(ctx, "update-tactic", fields, func() (phase.Patch, error) {
		err := e.ws.store.Hierarchy.UpdateTactic(objectiveID, strategyID, id, func(t *domain.WorkTactic) error {
			switch field {
			case "assignedTo":
				t.AssignedTo = value
				return nil
			case "priority":
				p := domain.Priority(value)
				if !p.Valid() {
					return domain.NewValidationError("priority", "must be High, Medium or Low")
				}
				t.Priority = p
				return nil
			}
			return setNameDescription(&t.Name, &t.Description, field, value)
		})
		if err != nil {
			return phase.Patch{}, err
		}
		return e.ws.hierarchyPatch(), nil
	})
}

func setNameDescription(name, description *string, field, value string) error {
	switch field {
	case "name":
		if domain.IsBlank(value) {
			return domain.NewValidationError("name", "is required")
		}
		*name = value
	case "description":
		*description = value
	default:
		return unknownField(field)
	}
	return nil
}

func unknownField(field string) error {
	return domain.NewValidationError("field", fmt.Sprintf("%q is not editable", field))
}

// ToggleExpanded flips the expanded flag of an objective (ids: objectiveID)
// or a strategy (ids: objectiveID, strategyID).
func (e *HierarchyEditor) ToggleExpanded(ctx context.Context, level string, ids ...string) error {
	fields := map[string]any{"level": level}
	return e.ws.mutate(ctx, "toggle-expanded", fields, func() (phase.Patch, error) {
		var err error
		switch {
		case level == LevelObjective && len(ids) == 1:
			err = e.ws.store.Hierarchy.UpdateObjective(ids[0], func(o *domain.WorkObjective) error {
				o.Expanded = !o.Expanded
				return nil
			})
		case level == LevelStrategy && len(ids) == 2:
			err = e.ws.store.Hierarchy.UpdateStrategy(ids[0], ids[1], func(s *domain.WorkStrategy) error {
				s.Expanded = !s.Expanded
				return nil
			})
		default:
			err = domain.NewValidationError("level", "must be objective with one id or strategy with two ids")
		}
		if err != nil {
			return phase.Patch{}, err
		}
		return e.ws.hierarchyPatch(), nil
	})
}

// Objectives returns the full tree in insertion order.
func (e *HierarchyEditor) Objectives() []domain.WorkObjective {
	var out []domain.WorkObjective
	e.ws.read(func() { out = e.ws.store.Hierarchy.Tree() })
	return out
}

func (e *HierarchyEditor) Objective(id string) (domain.WorkObjective, bool) {
	var (
		out domain.WorkObjective
		ok  bool
	)
	e.ws.read(func() { out, ok = e.ws.store.Hierarchy.Objective(id) })
	return out, ok
}

// TacticsByPriority lists every tactic, High first. Equal priorities keep
// tree order.
func (e *HierarchyEditor) TacticsByPriority() []TacticRow {
	var rows []TacticRow
	for _, o := range e.Objectives() {
		for _, s := range o.Strategies {
			for _, t := range s.Tactics {
				rows = append(rows, TacticRow{
					ObjectiveID:   o.ID,
					ObjectiveName: o.Name,
					StrategyID:    s.ID,
					StrategyName:  s.Name,
					Tactic:        t,
				})
			}
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Tactic.Priority.Rank() < rows[j].Tactic.Priority.Rank()
	})
	return rows
}
