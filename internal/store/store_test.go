package store

import (
	"testing"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHierarchy(t *testing.T) *Hierarchy {
	t.Helper()
	h := NewHierarchy()
	require.NoError(t, h.AddObjective(domain.WorkObjective{ID: "o1", Name: "Secure perimeter"}))
	require.NoError(t, h.AddObjective(domain.WorkObjective{ID: "o2", Name: "Restore power"}))
	require.NoError(t, h.AddStrategy("o1", domain.WorkStrategy{ID: "s1", Name: "Establish checkpoints"}))
	require.NoError(t, h.AddStrategy("o1", domain.WorkStrategy{ID: "s2", Name: "Patrol"}))
	// Strategy ids only need to be unique within their objective.
	require.NoError(t, h.AddStrategy("o2", domain.WorkStrategy{ID: "s1", Name: "Assess grid"}))
	require.NoError(t, h.AddTactic("o1", "s1", domain.WorkTactic{ID: "t1", Name: "Deploy Unit 12", Priority: domain.PriorityHigh}))
	require.NoError(t, h.AddTactic("o1", "s1", domain.WorkTactic{ID: "t2", Name: "Barricades"}))
	require.NoError(t, h.AddTactic("o1", "s2", domain.WorkTactic{ID: "t3", Name: "Night patrol"}))
	require.NoError(t, h.AddTactic("o2", "s1", domain.WorkTactic{ID: "t4", Name: "Survey lines"}))
	return h
}

func TestHierarchy_TreeKeepsInsertionOrder(t *testing.T) {
	h := seedHierarchy(t)
	tree := h.Tree()
	require.Len(t, tree, 2)
	assert.Equal(t, "o1", tree[0].ID)
	require.Len(t, tree[0].Strategies, 2)
	assert.Equal(t, []string{"t1", "t2"}, []string{tree[0].Strategies[0].Tactics[0].ID, tree[0].Strategies[0].Tactics[1].ID})
	assert.Equal(t, "Assess grid", tree[1].Strategies[0].Name)
}

func TestHierarchy_DeleteObjectiveCascades(t *testing.T) {
	h := seedHierarchy(t)
	require.True(t, h.DeleteObjective("o1"))

	_, ok := h.Strategy("o1", "s1")
	assert.False(t, ok)
	err := h.AddTactic("o1", "s1", domain.WorkTactic{ID: "t9"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	strategies, tactics := h.Counts()
	assert.Equal(t, 1, strategies, "only o2's strategy remains")
	assert.Equal(t, 1, tactics, "only o2's tactic remains")

	// Same strategy id under the surviving objective is untouched.
	s, ok := h.Strategy("o2", "s1")
	require.True(t, ok)
	assert.Len(t, s.Tactics, 1)
}

func TestHierarchy_DeleteStrategyCascades(t *testing.T) {
	h := seedHierarchy(t)
	require.True(t, h.DeleteStrategy("o1", "s1"))

	o, ok := h.Objective("o1")
	require.True(t, ok)
	require.Len(t, o.Strategies, 1)
	assert.Equal(t, "s2", o.Strategies[0].ID)
	assert.False(t, h.DeleteTactic("o1", "s1", "t1"))
}

func TestHierarchy_DeletesAreIdempotent(t *testing.T) {
	h := seedHierarchy(t)
	assert.True(t, h.DeleteTactic("o1", "s1", "t1"))
	assert.False(t, h.DeleteTactic("o1", "s1", "t1"))
	assert.False(t, h.DeleteStrategy("missing", "s1"))
	assert.False(t, h.DeleteObjective("missing"))
}

func TestHierarchy_AddUnderMissingParent(t *testing.T) {
	h := seedHierarchy(t)
	assert.ErrorIs(t, h.AddStrategy("nope", domain.WorkStrategy{ID: "x"}), domain.ErrNotFound)
	assert.ErrorIs(t, h.AddTactic("o1", "nope", domain.WorkTactic{ID: "x"}), domain.ErrNotFound)
	assert.ErrorIs(t, h.AddTactic("o2", "s2", domain.WorkTactic{ID: "x"}), domain.ErrNotFound,
		"s2 exists only under o1")
}

func TestHierarchy_UpdateIsAllOrNothing(t *testing.T) {
	h := seedHierarchy(t)
	err := h.UpdateTactic("o1", "s1", "t1", func(tc *domain.WorkTactic) error {
		tc.Name = "half-applied"
		return domain.NewValidationError("priority", "is not valid")
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	s, _ := h.Strategy("o1", "s1")
	assert.Equal(t, "Deploy Unit 12", s.Tactics[0].Name)
}

func TestHierarchy_LoadRoundTrip(t *testing.T) {
	h := seedHierarchy(t)
	tree := h.Tree()

	other := NewHierarchy()
	other.Load(tree)
	assert.Equal(t, tree, other.Tree())
}

func TestHierarchy_ObjectiveReturnsCopy(t *testing.T) {
	h := seedHierarchy(t)
	o, _ := h.Objective("o1")
	o.Strategies[0].Tactics[0].Name = "mutated"

	again, _ := h.Objective("o1")
	assert.Equal(t, "Deploy Unit 12", again.Strategies[0].Tactics[0].Name)
}

func TestCollection_CRUD(t *testing.T) {
	c := NewCollection[domain.Hazard]("hazard")
	require.NoError(t, c.Add(domain.Hazard{ID: "h1", Name: "Downed lines", GARScore: 8}))
	require.NoError(t, c.Add(domain.Hazard{ID: "h2", Name: "Smoke", GARScore: 3}))
	assert.ErrorIs(t, c.Add(domain.Hazard{ID: "h1"}), domain.ErrConflict)

	require.NoError(t, c.Update("h2", func(h *domain.Hazard) error {
		h.GARScore = 5
		return nil
	}))
	got, ok := c.Get("h2")
	require.True(t, ok)
	assert.Equal(t, 5, got.GARScore)

	assert.ErrorIs(t, c.Update("h9", func(*domain.Hazard) error { return nil }), domain.ErrNotFound)

	assert.True(t, c.Delete("h1"))
	assert.False(t, c.Delete("h1"))
	list := c.List()
	require.Len(t, list, 1)
	assert.Equal(t, "h2", list[0].ID)
	assert.Equal(t, 1, c.Len())
}

func TestCollection_FailedUpdateLeavesNestedStateUntouched(t *testing.T) {
	c := NewCollection[domain.ResponseObjective]("response objective")
	require.NoError(t, c.Add(domain.ResponseObjective{ID: "r1", Actions: []domain.Action{{ID: "a1", Action: "Evacuate"}}}))

	err := c.Update("r1", func(o *domain.ResponseObjective) error {
		o.Actions[0].Action = "changed"
		return domain.NewConflictError("nope")
	})
	require.Error(t, err)

	got, _ := c.Get("r1")
	assert.Equal(t, "Evacuate", got.Actions[0].Action)
}

func TestStore_SnapshotRoundTrip(t *testing.T) {
	bag := domain.PhaseDataBag{
		WorkObjectives:  []domain.WorkObjective{{ID: "o1", Name: "A", Strategies: []domain.WorkStrategy{{ID: "s1", Tactics: []domain.WorkTactic{{ID: "t1"}}}}}},
		WorkAssignments: []domain.WorkAssignment{{ID: "w1", Name: "Div A", Resources: []domain.Resource{{ID: "r1", QuantityRequired: 2}}}},
		Hazards:         []domain.Hazard{{ID: "h1", GARScore: 4}},
		Meetings:        []domain.Meeting{{ID: "m1", Name: "Tactics"}},
		ICS201:          domain.ICS201Header{IncidentName: "Ridge Fire"},
		PhaseStates:     map[domain.PhaseID]domain.PhaseState{domain.PhaseTacticsMeeting: {Notes: "n"}},
	}

	s := FromBag(bag)
	snap := s.Snapshot()
	assert.Equal(t, bag.WorkObjectives, snap.WorkObjectives)
	assert.Equal(t, bag.WorkAssignments, snap.WorkAssignments)
	assert.Equal(t, bag.Hazards, snap.Hazards)
	assert.Equal(t, bag.ICS201, snap.ICS201)
	assert.Equal(t, "n", snap.PhaseStates[domain.PhaseTacticsMeeting].Notes)
	assert.Empty(t, snap.ActionItems)
}
