package store

import "github.com/jjimmyk/planningp/internal/domain"

// Hierarchy is the objective→strategy→tactic arena. Children are kept in
// per-parent index maps, so strategies are always addressed through their
// objective and tactics through their strategy. Removing a node drops its
// whole subtree.
type Hierarchy struct {
	order      []string
	objectives map[string]*objectiveNode
}

type objectiveNode struct {
	objective  domain.WorkObjective // Strategies always nil here
	order      []string
	strategies map[string]*strategyNode
}

type strategyNode struct {
	strategy domain.WorkStrategy // Tactics always nil here
	order    []string
	tactics  map[string]domain.WorkTactic
}

func NewHierarchy() *Hierarchy {
	return &Hierarchy{objectives: make(map[string]*objectiveNode)}
}

func (h *Hierarchy) Len() int { return len(h.order) }

// AddObjective appends o together with any strategies and tactics it
// carries. Nested duplicates are dropped.
func (h *Hierarchy) AddObjective(o domain.WorkObjective) error {
	if _, ok := h.objectives[o.ID]; ok {
		return domain.NewConflictError("objective " + o.ID + " already exists")
	}
	node := &objectiveNode{strategies: make(map[string]*strategyNode)}
	node.objective = o
	node.objective.Strategies = nil
	h.objectives[o.ID] = node
	h.order = append(h.order, o.ID)
	for _, s := range o.Strategies {
		_ = h.AddStrategy(o.ID, s)
	}
	return nil
}

// AddStrategy appends s under the objective, with any tactics it carries.
func (h *Hierarchy) AddStrategy(objectiveID string, s domain.WorkStrategy) error {
	obj, ok := h.objectives[objectiveID]
	if !ok {
		return domain.NewNotFoundError("objective", objectiveID)
	}
	if _, dup := obj.strategies[s.ID]; dup {
		return domain.NewConflictError("strategy " + s.ID + " already exists in objective " + objectiveID)
	}
	node := &strategyNode{tactics: make(map[string]domain.WorkTactic)}
	node.strategy = s
	node.strategy.Tactics = nil
	for _, t := range s.Tactics {
		if _, dup := node.tactics[t.ID]; dup {
			continue
		}
		node.tactics[t.ID] = t
		node.order = append(node.order, t.ID)
	}
	obj.strategies[s.ID] = node
	obj.order = append(obj.order, s.ID)
	return nil
}

// AddTactic appends t under the strategy scoped by objectiveID.
func (h *Hierarchy) AddTactic(objectiveID, strategyID string, t domain.WorkTactic) error {
	strat, err := h.strategy(objectiveID, strategyID)
	if err != nil {
		return err
	}
	if _, dup := strat.tactics[t.ID]; dup {
		return domain.NewConflictError("tactic " + t.ID + " already exists in strategy " + strategyID)
	}
	strat.tactics[t.ID] = t
	strat.order = append(strat.order, t.ID)
	return nil
}

func (h *Hierarchy) strategy(objectiveID, strategyID string) (*strategyNode, error) {
	obj, ok := h.objectives[objectiveID]
	if !ok {
		return nil, domain.NewNotFoundError("objective", objectiveID)
	}
	strat, ok := obj.strategies[strategyID]
	if !ok {
		return nil, domain.NewNotFoundError("strategy", strategyID)
	}
	return strat, nil
}

// Objective returns a deep copy of the objective with its subtree.
func (h *Hierarchy) Objective(id string) (domain.WorkObjective, bool) {
	node, ok := h.objectives[id]
	if !ok {
		return domain.WorkObjective{}, false
	}
	return node.build(), true
}

// Strategy returns a deep copy of the strategy with its tactics.
func (h *Hierarchy) Strategy(objectiveID, strategyID string) (domain.WorkStrategy, bool) {
	strat, err := h.strategy(objectiveID, strategyID)
	if err != nil {
		return domain.WorkStrategy{}, false
	}
	return strat.build(), true
}

// UpdateObjective edits the objective's own fields. Changes fn makes to
// Strategies are ignored.
func (h *Hierarchy) UpdateObjective(id string, fn func(*domain.WorkObjective) error) error {
	node, ok := h.objectives[id]
	if !ok {
		return domain.NewNotFoundError("objective", id)
	}
	draft := node.objective
	if err := fn(&draft); err != nil {
		return err
	}
	draft.ID = id
	draft.Strategies = nil
	node.objective = draft
	return nil
}

func (h *Hierarchy) UpdateStrategy(objectiveID, strategyID string, fn func(*domain.WorkStrategy) error) error {
	strat, err := h.strategy(objectiveID, strategyID)
	if err != nil {
		return err
	}
	draft := strat.strategy
	if err := fn(&draft); err != nil {
		return err
	}
	draft.ID = strategyID
	draft.Tactics = nil
	strat.strategy = draft
	return nil
}

func (h *Hierarchy) UpdateTactic(objectiveID, strategyID, tacticID string, fn func(*domain.WorkTactic) error) error {
	strat, err := h.strategy(objectiveID, strategyID)
	if err != nil {
		return err
	}
	t, ok := strat.tactics[tacticID]
	if !ok {
		return domain.NewNotFoundError("tactic", tacticID)
	}
	if err := fn(&t); err != nil {
		return err
	}
	t.ID = tacticID
	strat.tactics[tacticID] = t
	return nil
}

// DeleteObjective removes the objective and its entire subtree.
func (h *Hierarchy) DeleteObjective(id string) bool {
	if _, ok := h.objectives[id]; !ok {
		return false
	}
	delete(h.objectives, id)
	h.order = without(h.order, id)
	return true
}

// DeleteStrategy removes the strategy and all of its tactics.
func (h *Hierarchy) DeleteStrategy(objectiveID, strategyID string) bool {
	obj, ok := h.objectives[objectiveID]
	if !ok {
		return false
	}
	if _, ok := obj.strategies[strategyID]; !ok {
		return false
	}
	delete(obj.strategies, strategyID)
	obj.order = without(obj.order, strategyID)
	return true
}

func (h *Hierarchy) DeleteTactic(objectiveID, strategyID, tacticID string) bool {
	strat, err := h.strategy(objectiveID, strategyID)
	if err != nil {
		return false
	}
	if _, ok := strat.tactics[tacticID]; !ok {
		return false
	}
	delete(strat.tactics, tacticID)
	strat.order = without(strat.order, tacticID)
	return true
}

// Tree returns the nested form of the whole hierarchy in insertion order.
func (h *Hierarchy) Tree() []domain.WorkObjective {
	out := make([]domain.WorkObjective, 0, len(h.order))
	for _, id := range h.order {
		out = append(out, h.objectives[id].build())
	}
	return out
}

// Load replaces the hierarchy with tree. Duplicate ids at any level are
// dropped rather than failing the whole load.
func (h *Hierarchy) Load(tree []domain.WorkObjective) {
	h.order = nil
	h.objectives = make(map[string]*objectiveNode, len(tree))
	for _, o := range tree {
		if _, dup := h.objectives[o.ID]; dup {
			continue
		}
		_ = h.AddObjective(o)
	}
}

// Counts returns the number of strategies and tactics currently held.
func (h *Hierarchy) Counts() (strategies, tactics int) {
	for _, obj := range h.objectives {
		strategies += len(obj.strategies)
		for _, s := range obj.strategies {
			tactics += len(s.tactics)
		}
	}
	return strategies, tactics
}

func (n *objectiveNode) build() domain.WorkObjective {
	o := n.objective
	o.Strategies = make([]domain.WorkStrategy, 0, len(n.order))
	for _, sid := range n.order {
		o.Strategies = append(o.Strategies, n.strategies[sid].build())
	}
	return o
}

func (n *strategyNode) build() domain.WorkStrategy {
	s := n.strategy
	s.Tactics = make([]domain.WorkTactic, 0, len(n.order))
	for _, tid := range n.order {
		s.Tactics = append(s.Tactics, n.tactics[tid])
	}
	return s
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
