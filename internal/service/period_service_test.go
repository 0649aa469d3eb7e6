package service

import (
	"context"
	"testing"
	"time"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/phase"
	"github.com/jjimmyk/planningp/internal/repository"
	"github.com/jjimmyk/planningp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPeriodService(t *testing.T) (PeriodService, *recordingObserver) {
	t.Helper()
	database := testutil.NewTestDB(t)
	obs := &recordingObserver{}
	svc := NewPeriodService(
		repository.NewSQLitePeriodRepo(database),
		repository.NewSQLitePhaseDataRepo(database),
		testutil.NewTestUoW(database),
		domain.NewSequenceGenerator("e"),
		testutil.FixedClock(testNow),
		obs,
	)
	return svc, obs
}

func TestPeriodService_CreateDefaults(t *testing.T) {
	svc, obs := newTestPeriodService(t)
	ctx := context.Background()

	p := &domain.OperationalPeriod{Name: "OP 1", IncidentName: "Ridge Fire"}
	require.NoError(t, svc.Create(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, domain.PhaseIncidentBriefing, p.ActivePhase)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ridge Fire", got.IncidentName)
	assert.Equal(t, []string{"create-period"}, obs.names())
}

func TestPeriodService_CreateValidation(t *testing.T) {
	svc, _ := newTestPeriodService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Create(ctx, &domain.OperationalPeriod{Name: " "}), domain.ErrValidation)

	start := testNow
	end := testNow.Add(-time.Hour)
	err := svc.Create(ctx, &domain.OperationalPeriod{Name: "OP", StartsAt: &start, EndsAt: &end})
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPeriodService_OpenEditReopen(t *testing.T) {
	svc, _ := newTestPeriodService(t)
	ctx := context.Background()

	p := &domain.OperationalPeriod{Name: "OP 1"}
	require.NoError(t, svc.Create(ctx, p))

	ws, err := svc.Open(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, ws.PeriodID())
	assert.Empty(t, ws.Hierarchy().Objectives())

	o, err := ws.Hierarchy().AddObjective(ctx, "Secure perimeter", "")
	require.NoError(t, err)
	_, err = ws.Hazards().AddHazard(ctx, "Downed lines", "", "", 12)
	require.NoError(t, err)

	again, err := svc.Open(ctx, p.ID)
	require.NoError(t, err)
	objectives := again.Hierarchy().Objectives()
	require.Len(t, objectives, 1)
	assert.Equal(t, o.ID, objectives[0].ID)
	assert.Equal(t, 10, again.Hazards().Hazards()[0].GARScore)

	history, err := svc.History(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 2, history[0].Revision)
}

func TestPeriodService_WorkspaceTracksRevision(t *testing.T) {
	svc, obs := newTestPeriodService(t)
	ctx := context.Background()

	p := &domain.OperationalPeriod{Name: "OP 1"}
	require.NoError(t, svc.Create(ctx, p))
	ws, err := svc.Open(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, ws.Revision())

	_, err = ws.Hazards().AddHazard(ctx, "Smoke", "", "", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, ws.Revision())
	assert.Equal(t, 1, obs.last().Fields["revision"])

	_, err = ws.Hazards().AddHazard(ctx, "Heat", "", "", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, ws.Revision())

	again, err := svc.Open(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Revision())
}

func TestPeriodService_ActivePhase(t *testing.T) {
	svc, _ := newTestPeriodService(t)
	ctx := context.Background()
	p := &domain.OperationalPeriod{Name: "OP 1"}
	require.NoError(t, svc.Create(ctx, p))

	require.NoError(t, svc.SetActivePhase(ctx, p.ID, domain.PhaseTacticsMeeting))
	assert.ErrorIs(t, svc.SetActivePhase(ctx, p.ID, "lunch"), domain.ErrValidation)
	assert.ErrorIs(t, svc.SetActivePhase(ctx, "missing", domain.PhaseTacticsMeeting), domain.ErrNotFound)

	ws, err := svc.Open(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseTacticsMeeting, ws.ActivePhase())
	assert.Contains(t, ws.VisibleSections(), phase.SafetyAnalysis)
}

func TestPeriodService_Restore(t *testing.T) {
	svc, obs := newTestPeriodService(t)
	ctx := context.Background()
	p := &domain.OperationalPeriod{Name: "OP 1"}
	require.NoError(t, svc.Create(ctx, p))

	ws, err := svc.Open(ctx, p.ID)
	require.NoError(t, err)
	_, err = ws.Hazards().AddHazard(ctx, "Smoke", "", "", 3)
	require.NoError(t, err)
	_, err = ws.Hazards().AddHazard(ctx, "Heat", "", "", 3)
	require.NoError(t, err)

	require.NoError(t, svc.Restore(ctx, p.ID, 1))
	ws, err = svc.Open(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, ws.Hazards().Hazards(), 1)

	history, err := svc.History(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, history, 3)

	assert.ErrorIs(t, svc.Restore(ctx, p.ID, 42), domain.ErrNotFound)
	assert.Contains(t, obs.names(), "restore-period")
}

func TestPeriodService_RenameAndDelete(t *testing.T) {
	svc, _ := newTestPeriodService(t)
	ctx := context.Background()
	p := &domain.OperationalPeriod{Name: "OP 1"}
	require.NoError(t, svc.Create(ctx, p))

	require.NoError(t, svc.Rename(ctx, p.ID, "OP 1 (night)"))
	assert.ErrorIs(t, svc.Rename(ctx, p.ID, ""), domain.ErrValidation)
	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "OP 1 (night)", got.Name)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Open(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
