package phase

import (
	"context"
	"errors"
	"testing"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleSections_Table(t *testing.T) {
	tests := []struct {
		phase domain.PhaseID
		want  SectionTag
		shown bool
	}{
		{domain.PhaseIncidentBriefing, ICS201Form, true},
		{domain.PhaseIncidentBriefing, WorkAnalysisMatrix, false},
		{domain.PhaseTacticsMeeting, SafetyAnalysis, true},
		{domain.PhaseTacticsMeeting, OperationalPlanning, true},
		{domain.PhaseObjectivesMeeting, IncidentObjectives, true},
		{domain.PhaseObjectivesMeeting, SafetyAnalysis, false},
		{domain.PhaseIAPPrepApproval, ICSFormsExport, true},
		{domain.PhaseExecuteAssess, Placeholder, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.phase)+"/"+string(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.shown, IsVisible(tt.phase, tt.want))
		})
	}
}

func TestVisibleSections_UnknownPhaseShowsPlaceholder(t *testing.T) {
	assert.Equal(t, []SectionTag{Placeholder}, VisibleSections("not-a-phase"))
	assert.False(t, Known("not-a-phase"))
}

func TestVisibleSections_ReturnsCopy(t *testing.T) {
	got := VisibleSections(domain.PhaseTacticsMeeting)
	got[0] = Placeholder
	assert.NotEqual(t, Placeholder, VisibleSections(domain.PhaseTacticsMeeting)[0])
}

func TestOrdered_CoversEveryPhaseOnce(t *testing.T) {
	seen := map[domain.PhaseID]bool{}
	for _, p := range Ordered() {
		assert.False(t, seen[p.ID], "duplicate %s", p.ID)
		seen[p.ID] = true
		assert.NotEmpty(t, p.Sections)
		assert.NotEmpty(t, p.Title)
	}
	assert.Len(t, seen, 11)
	assert.Equal(t, domain.PhaseIncidentBriefing, Ordered()[0].ID)
}

func TestAgenda(t *testing.T) {
	items := Agenda(domain.PhaseTacticsMeeting)
	require.NotEmpty(t, items)
	assert.True(t, HasAgendaItem(domain.PhaseTacticsMeeting, "ics215a"))
	assert.False(t, HasAgendaItem(domain.PhaseTacticsMeeting, "nope"))
	assert.Nil(t, Agenda(domain.PhaseExecuteAssess))

	// Every phase that has an agenda shows the checklist section.
	for _, p := range Ordered() {
		if Agenda(p.ID) != nil {
			assert.True(t, IsVisible(p.ID, AgendaChecklist), p.ID)
		}
	}
}

func TestMerge_ReplacesOnlyPatchedKeys(t *testing.T) {
	bag := domain.PhaseDataBag{
		Hazards:  []domain.Hazard{{ID: "h1", GARScore: 3}},
		Meetings: []domain.Meeting{{ID: "m1"}},
	}
	hazards := []domain.Hazard{{ID: "h2", GARScore: 9}}

	out := Merge(bag, Patch{Hazards: &hazards})
	assert.Equal(t, hazards, out.Hazards)
	assert.Equal(t, bag.Meetings, out.Meetings)
	assert.Equal(t, "h1", bag.Hazards[0].ID, "input bag untouched")

	hazards[0].Name = "after merge"
	assert.Empty(t, out.Hazards[0].Name, "result does not alias the patch")
}

func TestMerge_EmptyPatchIsIdentity(t *testing.T) {
	bag := domain.PhaseDataBag{ICS201: domain.ICS201Header{IncidentName: "Ridge Fire"}}
	assert.Equal(t, bag, Merge(bag, Patch{}))
	assert.True(t, Patch{}.Empty())
}

func TestPatchKeys(t *testing.T) {
	h := []domain.Hazard{}
	hdr := domain.ICS201Header{}
	assert.Equal(t, []string{"hazards", "ics201"}, Patch{Hazards: &h, ICS201: &hdr}.Keys())
}

func TestController_StartsAtIncidentBriefing(t *testing.T) {
	c := NewController(domain.PhaseDataBag{}, nil)
	assert.Equal(t, domain.PhaseIncidentBriefing, c.Active())
	assert.True(t, c.IsVisible(ICS201Form))
}

func TestController_SelectAnyOrder(t *testing.T) {
	c := NewController(domain.PhaseDataBag{}, nil)
	got := c.Select(domain.PhaseOperationsBriefing)
	assert.Contains(t, got, ICSFormsExport)
	c.Select(domain.PhaseInitialUCMeeting)
	assert.Equal(t, domain.PhaseInitialUCMeeting, c.Active())
	assert.Equal(t, VisibleSections(domain.PhaseInitialUCMeeting), c.Visible())
}

func TestController_MergeAndPersistSavesWholeBag(t *testing.T) {
	var saved []domain.PhaseDataBag
	p := PersisterFunc(func(_ context.Context, bag domain.PhaseDataBag) error {
		saved = append(saved, bag)
		return nil
	})
	c := NewController(domain.PhaseDataBag{Meetings: []domain.Meeting{{ID: "m1"}}}, p)

	hazards := []domain.Hazard{{ID: "h1"}}
	out, err := c.MergeAndPersist(context.Background(), Patch{Hazards: &hazards})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, out, saved[0])
	assert.Len(t, saved[0].Meetings, 1, "unpatched keys are carried")
	assert.Len(t, c.Bag().Hazards, 1)
}

func TestController_PersistFailureKeepsMergedBag(t *testing.T) {
	boom := errors.New("disk full")
	c := NewController(domain.PhaseDataBag{}, PersisterFunc(func(context.Context, domain.PhaseDataBag) error {
		return boom
	}))

	hazards := []domain.Hazard{{ID: "h1"}}
	_, err := c.MergeAndPersist(context.Background(), Patch{Hazards: &hazards})
	require.ErrorIs(t, err, boom)
	assert.Len(t, c.Bag().Hazards, 1)
}

func TestController_MountReplacesBag(t *testing.T) {
	c := NewController(domain.PhaseDataBag{Hazards: []domain.Hazard{{ID: "h1"}}}, nil)
	c.Mount(domain.PhaseDataBag{Meetings: []domain.Meeting{{ID: "m1"}}})
	assert.Empty(t, c.Bag().Hazards)
	assert.Len(t, c.Bag().Meetings, 1)
}
