package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/phase"
	"github.com/robfig/cron/v3"
)

// MeetingBoard keeps the meetings scheduled for the period. Meetings are
// independent of the work breakdown.
type MeetingBoard struct {
	ws *Workspace
}

// maxRecurring bounds how many meetings one recurrence may create.
const maxRecurring = 100

// AddMeeting stores m as produced by the scheduling dialog.
func (b *MeetingBoard) AddMeeting(ctx context.Context, m domain.Meeting) (domain.Meeting, error) {
	var out domain.Meeting
	fields := map[string]any{}
	err := b.ws.mutate(ctx, "add-meeting", fields, func() (phase.Patch, error) {
		var err error
		if m, err = b.prepare(m); err != nil {
			return phase.Patch{}, err
		}
		fields["meeting_id"] = m.ID
		if err := b.ws.store.Meetings.Add(m); err != nil {
			return phase.Patch{}, err
		}
		out = m.Clone()
		return b.ws.meetingsPatch(), nil
	})
	return out, err
}

// AddRecurring expands template over a cron schedule and stores every
// occurrence in one change.
func (b *MeetingBoard) AddRecurring(ctx context.Context, template domain.Meeting, cronSpec string, from time.Time, n int) ([]domain.Meeting, error) {
	var out []domain.Meeting
	fields := map[string]any{"cron": cronSpec, "count": n}
	err := b.ws.mutate(ctx, "add-recurring-meetings", fields, func() (phase.Patch, error) {
		expanded, err := ExpandRecurring(template, cronSpec, from, n)
		if err != nil {
			return phase.Patch{}, err
		}
		prepared := make([]domain.Meeting, 0, len(expanded))
		for _, m := range expanded {
			if m, err = b.prepare(m); err != nil {
				return phase.Patch{}, err
			}
			prepared = append(prepared, m)
		}
		for _, m := range prepared {
			if err := b.ws.store.Meetings.Add(m); err != nil {
				return phase.Patch{}, err
			}
		}
		out = prepared
		return b.ws.meetingsPatch(), nil
	})
	return out, err
}

func (b *MeetingBoard) prepare(m domain.Meeting) (domain.Meeting, error) {
	m = m.Clone()
	switch {
	case domain.IsBlank(m.Name):
		return m, domain.NewValidationError("name", "is required")
	case domain.IsBlank(m.Date):
		return m, domain.NewValidationError("date", "is required")
	case domain.IsBlank(m.StartTime):
		return m, domain.NewValidationError("startTime", "is required")
	}
	m.ID = b.ws.ids.NewID()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = b.ws.now()
	}
	if m.Attendees == nil {
		m.Attendees = []string{}
	}
	return m, nil
}

// RemoveMeeting deletes a meeting. Unknown ids are a no-op.
func (b *MeetingBoard) RemoveMeeting(ctx context.Context, id string) error {
	return b.ws.mutate(ctx, "remove-meeting", map[string]any{"meeting_id": id}, func() (phase.Patch, error) {
		if !b.ws.store.Meetings.Delete(id) {
			return phase.Patch{}, nil
		}
		return b.ws.meetingsPatch(), nil
	})
}

func (b *MeetingBoard) Meetings() []domain.Meeting {
	var out []domain.Meeting
	b.ws.read(func() { out = b.ws.store.Meetings.List() })
	return out
}

// Upcoming returns meetings starting at or after now, soonest first.
// Meetings whose date or time does not parse are left out.
func (b *MeetingBoard) Upcoming(now time.Time) []domain.Meeting {
	type timed struct {
		m  domain.Meeting
		at time.Time
	}
	var list []timed
	for _, m := range b.Meetings() {
		at, ok := m.StartsAt(now.Location())
		if !ok || at.Before(now) {
			continue
		}
		list = append(list, timed{m, at})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].at.Before(list[j].at) })
	out := make([]domain.Meeting, len(list))
	for i, t := range list {
		out[i] = t.m
	}
	return out
}

// ExpandRecurring materialises n occurrences of template from a standard
// five-field cron spec, starting after from. Each copy keeps the template's
// duration when its start and end times parse.
func ExpandRecurring(template domain.Meeting, cronSpec string, from time.Time, n int) ([]domain.Meeting, error) {
	if n <= 0 || n > maxRecurring {
		return nil, domain.NewValidationError("count", fmt.Sprintf("must be between 1 and %d", maxRecurring))
	}
	sched, err := cron.ParseStandard(cronSpec)
	if err != nil {
		return nil, domain.NewValidationError("schedule", err.Error())
	}

	var length time.Duration
	start, errStart := time.Parse(domain.ClockLayout, template.StartTime)
	end, errEnd := time.Parse(domain.ClockLayout, template.EndTime)
	hasEnd := errStart == nil && errEnd == nil && end.After(start)
	if hasEnd {
		length = end.Sub(start)
	}

	out := make([]domain.Meeting, 0, n)
	next := from
	for i := 0; i < n; i++ {
		next = sched.Next(next)
		if next.IsZero() {
			break
		}
		m := template.Clone()
		m.ID = ""
		m.Date = next.Format(domain.DateLayout)
		m.StartTime = next.Format(domain.ClockLayout)
		if hasEnd {
			m.EndTime = next.Add(length).Format(domain.ClockLayout)
		}
		out = append(out, m)
	}
	return out, nil
}
