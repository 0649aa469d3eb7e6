package service

import (
	"context"
	"testing"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestICS201_Header(t *testing.T) {
	f := newFixture(t, testutil.NewTestBag())
	form := f.ws.ICS201()
	ctx := context.Background()

	require.NoError(t, form.UpdateHeader(ctx, "preparedBy", "Planning Section Chief"))
	require.NoError(t, form.UpdateHeader(ctx, "situationSummary", "Fire spreading east"))
	assert.ErrorIs(t, form.UpdateHeader(ctx, "weather", "windy"), domain.ErrValidation)

	h := form.Header()
	assert.Equal(t, "Ridge Fire", h.IncidentName)
	assert.Equal(t, "Planning Section Chief", h.PreparedBy)
	assert.Equal(t, "Fire spreading east", h.SituationSummary)
	assert.Equal(t, h, f.persister.Last().ICS201)
}

func TestICS201_RosterKeepsOneRow(t *testing.T) {
	f := newFixture(t, domain.PhaseDataBag{})
	form := f.ws.ICS201()
	ctx := context.Background()

	first, err := form.AddRosterEntry(ctx, "Incident Commander", "")
	require.NoError(t, err, "names may be filled in later")
	assert.ErrorIs(t, form.RemoveRosterEntry(ctx, first.ID), domain.ErrConflict)

	second, err := form.AddRosterEntry(ctx, "Safety Officer", "Kim")
	require.NoError(t, err)
	require.NoError(t, form.UpdateRosterEntry(ctx, first.ID, "name", "Alvarez"))
	assert.ErrorIs(t, form.UpdateRosterEntry(ctx, first.ID, "phone", "x"), domain.ErrValidation)

	require.NoError(t, form.RemoveRosterEntry(ctx, second.ID))
	require.NoError(t, form.RemoveRosterEntry(ctx, second.ID))
	roster := form.Roster()
	require.Len(t, roster, 1)
	assert.Equal(t, "Alvarez", roster[0].Name)
}

func TestICS201_ResourceSummary(t *testing.T) {
	f := newFixture(t, testutil.NewTestBag())
	form := f.ws.ICS201()
	ctx := context.Background()

	row, err := form.AddSummaryRow(ctx, domain.ResourceSummaryRow{Resource: "Dozer", Identifier: "D-2"})
	require.NoError(t, err)
	require.NoError(t, form.UpdateSummaryRow(ctx, row.ID, "arrived", "true"))
	assert.ErrorIs(t, form.UpdateSummaryRow(ctx, row.ID, "arrived", "soon"), domain.ErrValidation)
	assert.ErrorIs(t, form.UpdateSummaryRow(ctx, "missing", "eta", "1200"), domain.ErrNotFound)

	rows := form.ResourceSummary()
	require.Len(t, rows, 2)
	assert.True(t, rows[1].Arrived)

	require.NoError(t, form.RemoveSummaryRow(ctx, "rs1"))
	assert.ErrorIs(t, form.RemoveSummaryRow(ctx, row.ID), domain.ErrConflict)
	assert.Len(t, form.ResourceSummary(), 1)
}
