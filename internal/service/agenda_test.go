package service

import (
	"context"
	"testing"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgenda_LoadedState(t *testing.T) {
	f := newFixture(t, testutil.NewTestBag())
	a := f.ws.Agenda()

	done, total := a.Progress(domain.PhaseTacticsMeeting)
	assert.Equal(t, 1, done)
	assert.Equal(t, 5, total)
	assert.Equal(t, "bring maps", a.Notes(domain.PhaseTacticsMeeting))
}

func TestAgenda_Toggle(t *testing.T) {
	f := newFixture(t, domain.PhaseDataBag{})
	a := f.ws.Agenda()
	ctx := context.Background()

	checked, err := a.ToggleItem(ctx, domain.PhaseStrategyMeeting, "strategies")
	require.NoError(t, err)
	assert.True(t, checked)

	items := a.Items(domain.PhaseStrategyMeeting)
	require.Len(t, items, 4)
	assert.True(t, items[2].Checked)
	assert.False(t, items[0].Checked)
	assert.True(t, f.persister.Last().PhaseStates[domain.PhaseStrategyMeeting].Checked["strategies"])

	checked, err = a.ToggleItem(ctx, domain.PhaseStrategyMeeting, "strategies")
	require.NoError(t, err)
	assert.False(t, checked)
}

func TestAgenda_UnknownItem(t *testing.T) {
	f := newFixture(t, domain.PhaseDataBag{})
	a := f.ws.Agenda()

	_, err := a.ToggleItem(context.Background(), domain.PhaseStrategyMeeting, "ics215")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = a.ToggleItem(context.Background(), domain.PhaseIncidentBriefing, "roles")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, a.Items(domain.PhaseIncidentBriefing))
	assert.Zero(t, f.persister.Count())
}

func TestAgenda_NotesKeepChecks(t *testing.T) {
	f := newFixture(t, testutil.NewTestBag())
	a := f.ws.Agenda()

	require.NoError(t, a.SetNotes(context.Background(), domain.PhaseTacticsMeeting, "use grid maps"))
	assert.Equal(t, "use grid maps", a.Notes(domain.PhaseTacticsMeeting))
	done, _ := a.Progress(domain.PhaseTacticsMeeting)
	assert.Equal(t, 1, done)
}
