package domain

import "slices"

// WorkObjective is the top level of the work breakdown. It owns its
// strategies exclusively; Expanded is view state only.
type WorkObjective struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Strategies  []WorkStrategy `json:"strategies" yaml:"strategies"`
	Expanded    bool           `json:"expanded" yaml:"-"`
}

// WorkStrategy belongs to exactly one WorkObjective. Its ID is only
// guaranteed unique within that objective.
type WorkStrategy struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	Tactics     []WorkTactic `json:"tactics" yaml:"tactics"`
	Expanded    bool         `json:"expanded" yaml:"-"`
}

type WorkTactic struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	AssignedTo  string   `json:"assignedTo" yaml:"assigned_to"`
	Priority    Priority `json:"priority" yaml:"priority"`
}

func (o WorkObjective) Key() string { return o.ID }

func (o WorkObjective) Clone() WorkObjective {
	c := o
	if o.Strategies != nil {
		c.Strategies = make([]WorkStrategy, len(o.Strategies))
		for i, s := range o.Strategies {
			c.Strategies[i] = s.Clone()
		}
	}
	return c
}

func (s WorkStrategy) Key() string { return s.ID }

func (s WorkStrategy) Clone() WorkStrategy {
	c := s
	if s.Tactics != nil {
		c.Tactics = slices.Clone(s.Tactics)
	}
	return c
}

func (t WorkTactic) Key() string { return t.ID }

func (t WorkTactic) Clone() WorkTactic { return t }
