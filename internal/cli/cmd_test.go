package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/repository"
	"github.com/jjimmyk/planningp/internal/service"
	"github.com/jjimmyk/planningp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

// testApp wires a full App over an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := testutil.FixedClock(testNow)

	return &App{
		Periods: service.NewPeriodService(
			repository.NewSQLitePeriodRepo(database),
			repository.NewSQLitePhaseDataRepo(database),
			testutil.NewTestUoW(database),
			domain.NewSequenceGenerator("e"),
			clock,
		),
		Now: clock,
	}
}

// seedPeriod creates a period through the service and returns its id.
func seedPeriod(t *testing.T, app *App, name string) string {
	t.Helper()
	p := &domain.OperationalPeriod{Name: name, IncidentName: "Ridge Fire"}
	require.NoError(t, app.Periods.Create(context.Background(), p))
	return p.ID
}

// openWS reloads the stored state of a period.
func openWS(t *testing.T, app *App, id string) *service.Workspace {
	t.Helper()
	ws, err := app.Periods.Open(context.Background(), id)
	require.NoError(t, err)
	return ws
}

// executeCmd runs the root command with args and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, out)
	return out
}

// --- Periods ---

func TestPeriodCmd_CreateAndList(t *testing.T) {
	app := testApp(t)

	out := mustRun(t, app, "period", "list")
	assert.Contains(t, out, "No operational periods found.")

	out = mustRun(t, app, "period", "create", "--name", "OP 1", "--incident", "Ridge Fire", "--starts", "2026-10-15 06:00")
	assert.Contains(t, out, "Created period OP 1")

	periods, err := app.Periods.List(context.Background())
	require.NoError(t, err)
	require.Len(t, periods, 1)
	require.NotNil(t, periods[0].StartsAt)
	assert.Equal(t, 6, periods[0].StartsAt.In(time.Local).Hour())

	out = mustRun(t, app, "period", "list")
	assert.Contains(t, out, "OP 1")
	assert.Contains(t, out, "Ridge Fire")
}

func TestPeriodCmd_CreateRejectsBadTime(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "period", "create", "--name", "OP 1", "--starts", "tomorrow")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--starts")
}

func TestPeriodCmd_RenameAndDelete(t *testing.T) {
	app := testApp(t)
	id := seedPeriod(t, app, "OP 1")

	mustRun(t, app, "period", "rename", "op 1", "OP 1 Night")
	p, err := app.Periods.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "OP 1 Night", p.Name)

	mustRun(t, app, "period", "delete", id)
	_, err = app.Periods.Get(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPeriodCmd_HistoryAndRestore(t *testing.T) {
	app := testApp(t)
	id := seedPeriod(t, app, "OP 1")

	out := mustRun(t, app, "period", "history")
	assert.Contains(t, out, "No saved revisions yet.")

	mustRun(t, app, "objective", "add", "--name", "Contain fire")
	mustRun(t, app, "objective", "add", "--name", "Protect homes")
	assert.Len(t, openWS(t, app, id).Hierarchy().Objectives(), 2)

	mustRun(t, app, "period", "restore", "1")
	objectives := openWS(t, app, id).Hierarchy().Objectives()
	require.Len(t, objectives, 1)
	assert.Equal(t, "Contain fire", objectives[0].Name)
}

// --- Period resolution ---

func TestResolve_NoPeriods(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "objective", "add", "--name", "X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no operational periods yet")
}

func TestResolve_SeveralPeriodsNeedFlag(t *testing.T) {
	app := testApp(t)
	seedPeriod(t, app, "OP 1")
	second := seedPeriod(t, app, "OP 2")

	_, err := executeCmd(t, app, "tree")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 periods exist")

	mustRun(t, app, "--period", "op 2", "objective", "add", "--name", "Contain fire")
	assert.Len(t, openWS(t, app, second).Hierarchy().Objectives(), 1)
}

func TestResolve_DefaultPeriod(t *testing.T) {
	app := testApp(t)
	seedPeriod(t, app, "OP 1")
	second := seedPeriod(t, app, "OP 2")
	app.DefaultPeriod = second

	mustRun(t, app, "hazard", "add", "--name", "Smoke", "--gar", "8")
	assert.Len(t, openWS(t, app, second).Hazards().Hazards(), 1)
}

func TestResolvePeriodID(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	first := seedPeriod(t, app, "OP 1")
	seedPeriod(t, app, "OP 2")

	got, err := resolvePeriodID(ctx, app, first)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	got, err = resolvePeriodID(ctx, app, "op 1")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	_, err = resolvePeriodID(ctx, app, "e-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	_, err = resolvePeriodID(ctx, app, "zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolvePhase(t *testing.T) {
	id, err := resolvePhase("3")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseObjectivesMeeting, id)

	id, err = resolvePhase("Tactics-Meeting")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseTacticsMeeting, id)

	for _, bad := range []string{"0", "12", "lunch"} {
		_, err := resolvePhase(bad)
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}

// --- Phases ---

func TestPhaseCmd_SelectPersistsAndShows(t *testing.T) {
	app := testApp(t)
	id := seedPeriod(t, app, "OP 1")

	out := mustRun(t, app, "phase", "select", "6")
	assert.Contains(t, out, "Active phase: Tactics Meeting")

	p, err := app.Periods.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseTacticsMeeting, p.ActivePhase)
	assert.Equal(t, domain.PhaseTacticsMeeting, openWS(t, app, id).ActivePhase())

	out = mustRun(t, app, "phase", "list")
	assert.Contains(t, out, "▶")

	out = mustRun(t, app, "phase", "show")
	assert.Contains(t, out, "Tactics Meeting")
}

func TestPhaseCmd_SelectUnknown(t *testing.T) {
	app := testApp(t)
	seedPeriod(t, app, "OP 1")
	_, err := executeCmd(t, app, "phase", "select", "lunch")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPhaseCmd_StepNeedsTerminal(t *testing.T) {
	app := testApp(t)
	seedPeriod(t, app, "OP 1")
	_, err := executeCmd(t, app, "phase", "step")
	assert.ErrorIs(t, err, errNotInteractive)
}

// --- Worksheets ---

func TestHierarchyCmd_Workflow(t *testing.T) {
	app := testApp(t)
	id := seedPeriod(t, app, "OP 1")

	mustRun(t, app, "objective", "add", "--name", "Contain fire", "--description", "North flank")
	obj := openWS(t, app, id).Hierarchy().Objectives()[0]

	mustRun(t, app, "strategy", "add", "--objective", obj.ID, "--name", "Direct attack")
	strat := openWS(t, app, id).Hierarchy().Objectives()[0].Strategies[0]

	mustRun(t, app, "tactic", "add", "--objective", obj.ID, "--strategy", strat.ID,
		"--name", "Dozer line", "--assigned-to", "Div A", "--priority", "High")

	out := mustRun(t, app, "tree")
	assert.Contains(t, out, "Contain fire")
	assert.Contains(t, out, "Direct attack")
	assert.Contains(t, out, "Dozer line")

	out = mustRun(t, app, "tree", "--by-priority")
	assert.Contains(t, out, "Div A")

	mustRun(t, app, "objective", "set", obj.ID, "name", "Hold ridge")
	assert.Equal(t, "Hold ridge", openWS(t, app, id).Hierarchy().Objectives()[0].Name)

	_, err := executeCmd(t, app, "objective", "set", obj.ID, "name", "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	mustRun(t, app, "objective", "rm", obj.ID)
	assert.Empty(t, openWS(t, app, id).Hierarchy().Objectives())
}

func TestAssignmentCmd_TotalsAndShortfalls(t *testing.T) {
	app := testApp(t)
	id := seedPeriod(t, app, "OP 1")

	mustRun(t, app, "assignment", "add", "--name", "Div A", "--division", "Division A")
	asg := openWS(t, app, id).Ledger().WorkAssignments()[0]

	out := mustRun(t, app, "resource", "add", "--assignment", asg.ID, "--name", "Engines", "--required", "4", "--have", "1", "--need", "3")
	assert.Contains(t, out, "gap 3")
	mustRun(t, app, "resource", "add", "--assignment", asg.ID, "--name", "Crews", "--required", "x", "--have", "-2")

	totals, err := openWS(t, app, id).Ledger().Totals(asg.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, totals.Required)
	assert.Equal(t, 1, totals.Had)

	out = mustRun(t, app, "assignment", "show", asg.ID)
	assert.Contains(t, out, "Engines")
	assert.Contains(t, out, "total")

	out = mustRun(t, app, "assignment", "shortfalls")
	assert.Contains(t, out, "Engines")
	assert.NotContains(t, out, "Crews")
}

func TestHazardCmd_ClampsAndSorts(t *testing.T) {
	app := testApp(t)
	id := seedPeriod(t, app, "OP 1")

	out := mustRun(t, app, "hazard", "add", "--name", "Rolling rocks", "--gar", "-3")
	assert.Contains(t, out, "GAR 1")
	mustRun(t, app, "hazard", "add", "--name", "Smoke", "--gar", "42")

	hazards := openWS(t, app, id).Hazards().BySeverity()
	require.Len(t, hazards, 2)
	assert.Equal(t, "Smoke", hazards[0].Name)
	assert.Equal(t, domain.MaxGARScore, hazards[0].GARScore)

	out = mustRun(t, app, "hazard", "list", "--by-severity")
	assert.Contains(t, out, "HIGH 1")
}

// --- Briefing ---

func TestICS201Cmd_HeaderAndRoster(t *testing.T) {
	app := testApp(t)
	id := seedPeriod(t, app, "OP 1")

	mustRun(t, app, "ics201", "set", "incidentName", "Ridge Fire")
	mustRun(t, app, "ics201", "roster", "add", "--position", "Incident Commander", "--name", "J. Ortiz")
	mustRun(t, app, "ics201", "summary", "add", "--resource", "Engine 12", "--arrived")

	ws := openWS(t, app, id)
	assert.Equal(t, "Ridge Fire", ws.ICS201().Header().IncidentName)

	out := mustRun(t, app, "ics201", "show")
	assert.Contains(t, out, "Incident Commander")
	assert.Contains(t, out, "Engine 12")

	_, err := executeCmd(t, app, "ics201", "set", "weather", "windy")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestResponseCmd_SavedQueryIsReused(t *testing.T) {
	app := testApp(t)
	id := seedPeriod(t, app, "OP 1")

	mustRun(t, app, "response", "add")
	obj := openWS(t, app, id).ResponseTable().Objectives()[0]
	first := obj.Actions[0].ID
	mustRun(t, app, "response", "set-action", obj.ID, first, "action", "Open shelter")

	out := mustRun(t, app, "response", "add-action", obj.ID)
	assert.Contains(t, out, "Added action")
	second := openWS(t, app, id).ResponseTable().Objectives()[0].Actions[1].ID
	mustRun(t, app, "response", "set-action", obj.ID, second, "action", "Close road")
	mustRun(t, app, "response", "set-action", obj.ID, second, "status", "Completed")

	out = mustRun(t, app, "response", "actions", obj.ID, "--status", "Completed", "--save")
	assert.Contains(t, out, "Close road")
	assert.NotContains(t, out, "Open shelter")

	// No flags: the saved query for the active phase applies.
	out = mustRun(t, app, "response", "actions", obj.ID)
	assert.Contains(t, out, "Close road")
	assert.NotContains(t, out, "Open shelter")

	out = mustRun(t, app, "response", "actions", obj.ID, "--status", "all")
	assert.Contains(t, out, "Open shelter")

	mustRun(t, app, "response", "rm-action", obj.ID, second)
	_, err := executeCmd(t, app, "response", "rm-action", obj.ID, first)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestQueryFlags_SearchHelpMatchesFilter(t *testing.T) {
	var q domain.ActionQuery
	usage := queryFlags(&q).Lookup("search").Usage
	assert.Contains(t, usage, "action text or time")
	assert.NotContains(t, usage, "status")
}

func TestMeetingCmd_AddRecurringAndUpcoming(t *testing.T) {
	app := testApp(t)
	id := seedPeriod(t, app, "OP 1")

	out := mustRun(t, app, "meeting", "add", "--name", "Tactics", "--date", "2026-10-15", "--start", "14:00", "--virtual", "--link", "https://meet.example/t")
	assert.Contains(t, out, "Scheduled Tactics on 2026-10-15 at 14:00")

	out = mustRun(t, app, "meeting", "add", "--name", "Ops Briefing", "--start", "06:00", "--repeat", "0 6 * * *", "--count", "2")
	assert.Contains(t, out, "Scheduled 2")

	meetings := openWS(t, app, id).Meetings().Meetings()
	require.Len(t, meetings, 3)
	assert.False(t, meetings[0].IsInPerson)

	out = mustRun(t, app, "meeting", "list", "--upcoming")
	assert.Contains(t, out, "Tactics")
	assert.Contains(t, out, "2026-10-16")

	_, err := executeCmd(t, app, "meeting", "add", "--date", "2026-10-15")
	require.Error(t, err)
	_, err = executeCmd(t, app, "meeting", "add", "--interactive")
	assert.ErrorIs(t, err, errNotInteractive)
}

func TestActionsCmd_OverdueAndStatus(t *testing.T) {
	app := testApp(t)
	id := seedPeriod(t, app, "OP 1")

	mustRun(t, app, "actions", "add", "--task", "Order water", "--deadline", "2026-10-14")
	mustRun(t, app, "actions", "add", "--task", "Brief media", "--deadline", "2026-10-20", "--briefed")

	items := openWS(t, app, id).ActionTracker().ActionItems()
	require.Len(t, items, 2)
	assert.Equal(t, domain.ItemNotStarted, items[0].Status)
	assert.Equal(t, domain.BriefedYes, items[1].POCBriefed)

	out := mustRun(t, app, "actions", "list", "--overdue")
	assert.Contains(t, out, "Order water")
	assert.NotContains(t, out, "Brief media")

	mustRun(t, app, "actions", "set", items[0].ID, "status", "Completed")
	out = mustRun(t, app, "actions", "list", "--open")
	assert.NotContains(t, out, "Order water")

	_, err := executeCmd(t, app, "actions", "add", "--task", "X", "--status", "Someday")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAgendaCmd_CheckAndNotes(t *testing.T) {
	app := testApp(t)
	id := seedPeriod(t, app, "OP 1")
	mustRun(t, app, "phase", "select", string(domain.PhaseInitialUCMeeting))

	out := mustRun(t, app, "agenda", "check", "roles")
	assert.Contains(t, out, "roles checked")

	mustRun(t, app, "agenda", "notes", "UC formed at 0700")
	ws := openWS(t, app, id)
	assert.Equal(t, "UC formed at 0700", ws.Agenda().Notes(domain.PhaseInitialUCMeeting))
	done, _ := ws.Agenda().Progress(domain.PhaseInitialUCMeeting)
	assert.Equal(t, 1, done)

	out = mustRun(t, app, "agenda", "show")
	assert.Contains(t, out, "Clarify UC roles and responsibilities")

	_, err := executeCmd(t, app, "agenda", "check", "lunch")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// --- Export ---

func TestExportCmd_YAMLToStdout(t *testing.T) {
	app := testApp(t)
	seedPeriod(t, app, "OP 1")
	mustRun(t, app, "hazard", "add", "--name", "Smoke", "--gar", "7")

	out := mustRun(t, app, "export", "--form", "ICS-215A")
	assert.Contains(t, out, "form: ics215a")
	assert.Contains(t, out, "incident: Ridge Fire")
	assert.Contains(t, out, "Smoke")
}

func TestExportCmd_AllAsJSONFile(t *testing.T) {
	app := testApp(t)
	seedPeriod(t, app, "OP 1")
	path := filepath.Join(t.TempDir(), "iap.json")

	out := mustRun(t, app, "export", "--format", "json", "--out", path)
	assert.Contains(t, out, "Wrote 5 form(s)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"form": "ics201"`)
	assert.Contains(t, string(data), `"form": "ics215a"`)
}

func TestExportCmd_Rejects(t *testing.T) {
	app := testApp(t)
	seedPeriod(t, app, "OP 1")

	_, err := executeCmd(t, app, "export", "--form", "ics999")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = executeCmd(t, app, "export", "--format", "pdf")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
