package service

import (
	"context"
	"testing"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHazards_ScoreIsClamped(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  int
	}{
		{"above range", 15, 10},
		{"below range", -3, 1},
		{"not given", 0, 1},
		{"in range", 6, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, domain.PhaseDataBag{})
			h, err := f.ws.Hazards().AddHazard(context.Background(), "Smoke", "", "", tt.score)
			require.NoError(t, err)
			assert.Equal(t, tt.want, h.GARScore)
			assert.Equal(t, tt.want, f.persister.Last().Hazards[0].GARScore)
		})
	}
}

func TestHazards_UpdateScoreFromText(t *testing.T) {
	f := newFixture(t, domain.PhaseDataBag{})
	r := f.ws.Hazards()
	ctx := context.Background()
	h, err := r.AddHazard(ctx, "Smoke", "", "", 5)
	require.NoError(t, err)

	tests := []struct {
		value string
		want  int
	}{
		{"8", 8},
		{" 12 ", 10},
		{"high", 1},
		{"-1", 1},
	}
	for _, tt := range tests {
		require.NoError(t, r.UpdateHazard(ctx, h.ID, "garScore", tt.value))
		assert.Equal(t, tt.want, r.Hazards()[0].GARScore, "value %q", tt.value)
	}
}

func TestHazards_UpdateValidation(t *testing.T) {
	f := newFixture(t, domain.PhaseDataBag{})
	r := f.ws.Hazards()
	ctx := context.Background()
	h, _ := r.AddHazard(ctx, "Smoke", "", "", 5)

	require.NoError(t, r.UpdateHazard(ctx, h.ID, "mitigations", "Masks"))
	assert.ErrorIs(t, r.UpdateHazard(ctx, h.ID, "name", " "), domain.ErrValidation)
	assert.ErrorIs(t, r.UpdateHazard(ctx, h.ID, "owner", "x"), domain.ErrValidation)
	assert.ErrorIs(t, r.UpdateHazard(ctx, "missing", "name", "x"), domain.ErrNotFound)
	_, err := r.AddHazard(ctx, "", "", "", 3)
	assert.ErrorIs(t, err, domain.ErrValidation)

	got := r.Hazards()[0]
	assert.Equal(t, "Smoke", got.Name)
	assert.Equal(t, "Masks", got.Mitigations)
}

func TestHazards_SeverityViews(t *testing.T) {
	f := newFixture(t, domain.PhaseDataBag{})
	r := f.ws.Hazards()
	ctx := context.Background()
	for _, h := range []struct {
		name  string
		score int
	}{{"a", 2}, {"b", 9}, {"c", 5}, {"d", 9}} {
		_, err := r.AddHazard(ctx, h.name, "", "", h.score)
		require.NoError(t, err)
	}

	var names []string
	for _, h := range r.BySeverity() {
		names = append(names, h.Name)
	}
	assert.Equal(t, []string{"b", "d", "c", "a"}, names)

	assert.Equal(t, map[domain.Severity]int{
		domain.SeverityLow:    1,
		domain.SeverityMedium: 1,
		domain.SeverityHigh:   2,
	}, r.SeverityCounts())
}

func TestHazards_SeverityCountsHasEveryBand(t *testing.T) {
	f := newFixture(t, domain.PhaseDataBag{})
	counts := f.ws.Hazards().SeverityCounts()
	assert.Len(t, counts, 3)
	assert.Zero(t, counts[domain.SeverityHigh])
}

func TestHazards_DeleteIsIdempotent(t *testing.T) {
	f := newFixture(t, domain.PhaseDataBag{})
	r := f.ws.Hazards()
	ctx := context.Background()
	h, _ := r.AddHazard(ctx, "Smoke", "", "", 5)

	require.NoError(t, r.DeleteHazard(ctx, h.ID))
	require.NoError(t, r.DeleteHazard(ctx, h.ID))
	assert.Empty(t, r.Hazards())
	assert.Equal(t, 2, f.persister.Count())
}
