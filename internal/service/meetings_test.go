package service

import (
	"context"
	"testing"
	"time"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetings_AddRequiresNameDateAndStart(t *testing.T) {
	f := newFixture(t, domain.PhaseDataBag{})
	b := f.ws.Meetings()
	ctx := context.Background()

	tests := []struct {
		name string
		m    domain.Meeting
	}{
		{"no name", domain.Meeting{Date: "2026-10-15", StartTime: "09:00"}},
		{"no date", domain.Meeting{Name: "Tactics", StartTime: "09:00"}},
		{"no start", domain.Meeting{Name: "Tactics", Date: "2026-10-15"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.AddMeeting(ctx, tt.m)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Empty(t, b.Meetings())
	assert.Zero(t, f.persister.Count())
}

func TestMeetings_AddAndRemove(t *testing.T) {
	f := newFixture(t, domain.PhaseDataBag{})
	b := f.ws.Meetings()
	ctx := context.Background()

	m, err := b.AddMeeting(ctx, domain.Meeting{
		Name: "Tactics", Type: "tactics", Date: "2026-10-15", StartTime: "14:00", EndTime: "15:00",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, testNow, m.CreatedAt)
	assert.NotNil(t, m.Attendees)

	require.NoError(t, b.RemoveMeeting(ctx, m.ID))
	require.NoError(t, b.RemoveMeeting(ctx, m.ID))
	assert.Empty(t, b.Meetings())
	assert.Equal(t, 2, f.persister.Count())
}

func TestMeetings_Upcoming(t *testing.T) {
	bag := testutil.NewTestBag()
	bag.Meetings = append(bag.Meetings,
		domain.Meeting{ID: "past", Name: "Briefing", Date: "2026-10-14", StartTime: "09:00"},
		domain.Meeting{ID: "bad", Name: "Broken", Date: "tomorrow", StartTime: "09:00"},
		domain.Meeting{ID: "later", Name: "Planning", Date: "2026-10-16", StartTime: "07:00"},
		domain.Meeting{ID: "now", Name: "Ops", Date: "2026-10-15", StartTime: "08:00"},
	)
	f := newFixture(t, bag)

	var ids []string
	for _, m := range f.ws.Meetings().Upcoming(testNow) {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"now", "m1", "later"}, ids)
}

func TestExpandRecurring(t *testing.T) {
	template := domain.Meeting{Name: "Ops briefing", StartTime: "00:00", EndTime: "00:45", Attendees: []string{"OSC"}}

	got, err := ExpandRecurring(template, "0 7 * * *", testNow, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, day := range []string{"2026-10-16", "2026-10-17", "2026-10-18"} {
		assert.Equal(t, day, got[i].Date)
		assert.Equal(t, "07:00", got[i].StartTime)
		assert.Equal(t, "07:45", got[i].EndTime)
		assert.Empty(t, got[i].ID)
	}
	got[0].Attendees[0] = "changed"
	assert.Equal(t, "OSC", template.Attendees[0])
}

func TestExpandRecurring_Rejects(t *testing.T) {
	template := domain.Meeting{Name: "Ops briefing"}

	_, err := ExpandRecurring(template, "not a schedule", testNow, 3)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = ExpandRecurring(template, "0 7 * * *", testNow, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = ExpandRecurring(template, "0 7 * * *", testNow, maxRecurring+1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMeetings_AddRecurringIsOneChange(t *testing.T) {
	f := newFixture(t, domain.PhaseDataBag{})
	b := f.ws.Meetings()

	got, err := b.AddRecurring(context.Background(), domain.Meeting{Name: "Planning"}, "0 18 * * *", testNow, 4)
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.Len(t, b.Meetings(), 4)
	assert.Equal(t, 1, f.persister.Count())
	assert.Equal(t, "18:00", got[0].StartTime)
	assert.Equal(t, "2026-10-15", got[0].Date)

	ids := map[string]bool{}
	for _, m := range got {
		ids[m.ID] = true
	}
	assert.Len(t, ids, 4)
}

func TestMeetings_StartsAtUsesLocation(t *testing.T) {
	m := domain.Meeting{Date: "2026-10-15", StartTime: "09:30"}
	at, ok := m.StartsAt(time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC), at)
}
