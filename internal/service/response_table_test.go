package service

import (
	"context"
	"testing"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actionIDs(actions []domain.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.ID
	}
	return out
}

func responseBag() domain.PhaseDataBag {
	return domain.PhaseDataBag{
		ResponseObjectives: []domain.ResponseObjective{
			{
				ID: "o1", Objective: "Evacuate zone 3", Time: "0800",
				Actions: []domain.Action{
					{ID: "a1", Action: "Open shelter", Status: domain.ActionCurrent, Time: "0900"},
					{ID: "a2", Action: "Close road", Status: domain.ActionCompleted, Time: "0700"},
					{ID: "a3", Action: "brief media", Status: domain.ActionPlanned, Time: "1200"},
					{ID: "a4", Action: "Alert hospitals", Status: domain.ActionCompleted, Time: "0700"},
				},
			},
			{
				ID: "o2", Objective: "Protect structures", Time: "0800",
				Actions: []domain.Action{{ID: "b1", Action: "Foam line", Status: domain.ActionCurrent, Time: "ICS-201 1400"}},
			},
		},
	}
}

func TestResponseTable_ScenarioC_StatusFilter(t *testing.T) {
	actions := []domain.Action{
		{ID: "x", Action: "Door to door", Status: domain.ActionCurrent},
		{ID: "y", Action: "Set roadblock", Status: domain.ActionCompleted},
	}
	got := FilterActions(actions, domain.ActionQuery{StatusFilter: string(domain.ActionCompleted)})
	assert.Equal(t, []string{"y"}, actionIDs(got))

	got = FilterActions(responseBag().ResponseObjectives[0].Actions, domain.ActionQuery{StatusFilter: "Completed"})
	assert.Equal(t, []string{"a2", "a4"}, actionIDs(got), "ties keep stored order")
}

func TestResponseTable_ScenarioD_TimeOnlyMatch(t *testing.T) {
	f := newFixture(t, responseBag())
	tbl := f.ws.ResponseTable()

	actions, err := tbl.FilterAndSort("o2", domain.ActionQuery{Search: "ics-201"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, actionIDs(actions))

	objectives := tbl.GlobalFilterObjectives("ics-201")
	require.Len(t, objectives, 1)
	assert.Equal(t, "o2", objectives[0].ID)

	assert.Len(t, tbl.GlobalFilterObjectives(""), 2)
	assert.Len(t, tbl.GlobalFilterObjectives("zone 3"), 1)
}

func TestFilterActions(t *testing.T) {
	all := responseBag().ResponseObjectives[0].Actions

	tests := []struct {
		name string
		q    domain.ActionQuery
		want []string
	}{
		{"empty query keeps order", domain.ActionQuery{}, []string{"a1", "a2", "a3", "a4"}},
		{"all filter", domain.ActionQuery{StatusFilter: domain.StatusFilterAll}, []string{"a1", "a2", "a3", "a4"}},
		{"search action text", domain.ActionQuery{Search: "ROAD"}, []string{"a2"}},
		{"search time text", domain.ActionQuery{Search: "1200"}, []string{"a3"}},
		{"search ignores status", domain.ActionQuery{Search: "planned"}, []string{}},
		{"sort by action ignores case", domain.ActionQuery{SortBy: domain.SortByAction}, []string{"a4", "a3", "a2", "a1"}},
		{"sort by time asc", domain.ActionQuery{SortBy: domain.SortByTime, SortOrder: domain.SortAsc}, []string{"a2", "a4", "a1", "a3"}},
		{"sort by time desc keeps ties", domain.ActionQuery{SortBy: domain.SortByTime, SortOrder: domain.SortDesc}, []string{"a3", "a1", "a2", "a4"}},
		{"search then filter then sort", domain.ActionQuery{Search: "o", StatusFilter: "Completed", SortBy: domain.SortByAction}, []string{"a4", "a2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterActions(all, tt.q)
			assert.Equal(t, tt.want, actionIDs(got))
		})
	}
}

func TestFilterActions_IsIdempotentAndPure(t *testing.T) {
	all := responseBag().ResponseObjectives[0].Actions
	before := append([]domain.Action(nil), all...)
	q := domain.ActionQuery{Search: "o", SortBy: domain.SortByStatus, SortOrder: domain.SortDesc}

	once := FilterActions(all, q)
	twice := FilterActions(once, q)
	assert.Equal(t, once, twice)
	assert.Equal(t, before, all)
}

func TestResponseTable_Floors(t *testing.T) {
	f := newFixture(t, domain.PhaseDataBag{})
	tbl := f.ws.ResponseTable()
	ctx := context.Background()

	o, err := tbl.AddObjective(ctx)
	require.NoError(t, err)
	require.Len(t, o.Actions, 1)
	assert.Equal(t, domain.ActionCurrent, o.Actions[0].Status)

	assert.ErrorIs(t, tbl.RemoveObjective(ctx, o.ID), domain.ErrConflict)
	assert.ErrorIs(t, tbl.RemoveAction(ctx, o.ID, o.Actions[0].ID), domain.ErrConflict)

	a, err := tbl.AddAction(ctx, o.ID)
	require.NoError(t, err)
	require.NoError(t, tbl.RemoveAction(ctx, o.ID, o.Actions[0].ID))
	assert.Equal(t, []string{a.ID}, actionIDs(tbl.Objectives()[0].Actions))

	o2, err := tbl.AddObjective(ctx)
	require.NoError(t, err)
	require.NoError(t, tbl.RemoveObjective(ctx, o.ID))
	require.Len(t, tbl.Objectives(), 1)
	assert.Equal(t, o2.ID, tbl.Objectives()[0].ID)
}

func TestResponseTable_UnknownIDs(t *testing.T) {
	f := newFixture(t, responseBag())
	tbl := f.ws.ResponseTable()
	ctx := context.Background()

	assert.NoError(t, tbl.RemoveObjective(ctx, "missing"))
	assert.NoError(t, tbl.RemoveAction(ctx, "o1", "missing"))
	assert.NoError(t, tbl.RemoveAction(ctx, "missing", "missing"))
	assert.Zero(t, f.persister.Count())

	_, err := tbl.AddAction(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, tbl.UpdateAction(ctx, "o1", "missing", "action", "x"), domain.ErrNotFound)
	_, err = tbl.FilterAndSort("missing", domain.ActionQuery{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResponseTable_Updates(t *testing.T) {
	f := newFixture(t, responseBag())
	tbl := f.ws.ResponseTable()
	ctx := context.Background()

	require.NoError(t, tbl.UpdateObjective(ctx, "o1", "objective", "Evacuate zone 4"))
	require.NoError(t, tbl.UpdateAction(ctx, "o1", "a3", "status", "Completed"))
	assert.ErrorIs(t, tbl.UpdateAction(ctx, "o1", "a3", "status", "Done"), domain.ErrValidation)
	assert.ErrorIs(t, tbl.UpdateObjective(ctx, "o1", "owner", "x"), domain.ErrValidation)

	o := tbl.Objectives()[0]
	assert.Equal(t, "Evacuate zone 4", o.Objective)
	assert.Equal(t, domain.ActionCompleted, o.Actions[2].Status)
}

func TestResponseTable_SaveQuery(t *testing.T) {
	f := newFixture(t, responseBag())
	tbl := f.ws.ResponseTable()
	ctx := context.Background()

	q := domain.ActionQuery{Search: "road", SortBy: domain.SortByTime, SortOrder: domain.SortDesc}
	require.NoError(t, tbl.SaveQuery(ctx, domain.PhaseIncidentBriefing, "o1", q))

	got, ok := tbl.SavedQuery(domain.PhaseIncidentBriefing, "o1")
	require.True(t, ok)
	assert.Equal(t, q, got)
	assert.Equal(t, q, f.persister.Last().PhaseStates[domain.PhaseIncidentBriefing].Queries["o1"])

	_, ok = tbl.SavedQuery(domain.PhaseTacticsMeeting, "o1")
	assert.False(t, ok)

	assert.ErrorIs(t, tbl.SaveQuery(ctx, domain.PhaseIncidentBriefing, "o1", domain.ActionQuery{SortBy: "owner"}), domain.ErrValidation)
	assert.ErrorIs(t, tbl.SaveQuery(ctx, domain.PhaseIncidentBriefing, "o1", domain.ActionQuery{SortOrder: "up"}), domain.ErrValidation)
	assert.Equal(t, 1, f.persister.Count())
}
