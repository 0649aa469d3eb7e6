package testutil

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jjimmyk/planningp/internal/domain"
)

var testPeriodCounter atomic.Int64

// Period options
type PeriodOption func(*domain.OperationalPeriod)

func WithIncidentName(name string) PeriodOption {
	return func(p *domain.OperationalPeriod) {
		p.IncidentName = name
	}
}

func WithWindow(start, end time.Time) PeriodOption {
	return func(p *domain.OperationalPeriod) {
		p.StartsAt = &start
		p.EndsAt = &end
	}
}

func WithActivePhase(id domain.PhaseID) PeriodOption {
	return func(p *domain.OperationalPeriod) {
		p.ActivePhase = id
	}
}

func NewTestPeriod(name string, opts ...PeriodOption) *domain.OperationalPeriod {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.OperationalPeriod{
		ID:          fmt.Sprintf("period-%d", testPeriodCounter.Add(1)),
		Name:        name,
		ActivePhase: domain.PhaseIncidentBriefing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestBag returns a small bag touching every top-level key.
func NewTestBag() domain.PhaseDataBag {
	return domain.PhaseDataBag{
		WorkObjectives: []domain.WorkObjective{{
			ID: "o1", Name: "Secure perimeter", Expanded: true,
			Strategies: []domain.WorkStrategy{{
				ID: "s1", Name: "Establish checkpoints",
				Tactics: []domain.WorkTactic{{ID: "t1", Name: "Deploy Unit 12", Priority: domain.PriorityHigh}},
			}},
		}},
		WorkAssignments: []domain.WorkAssignment{{
			ID: "w1", Name: "Division A",
			Resources: []domain.Resource{{ID: "r1", Name: "Ambulance", QuantityRequired: 5, QuantityHad: 2}},
		}},
		Hazards:            []domain.Hazard{{ID: "h1", Name: "Downed lines", GARScore: 8}},
		ResponseObjectives: []domain.ResponseObjective{{ID: "ro1", Objective: "Evacuate", Actions: []domain.Action{{ID: "a1", Action: "Door to door", Status: domain.ActionCurrent}}}},
		Meetings:           []domain.Meeting{{ID: "m1", Name: "Tactics", Date: "2026-10-15", StartTime: "09:00", Attendees: []string{"OSC"}}},
		ActionItems:        []domain.ActionItem{{ID: "ai1", TaskName: "Order fuel", Status: domain.ItemNotStarted, POCBriefed: domain.BriefedNo}},
		Roster:             []domain.RosterEntry{{ID: "re1", Position: "IC", Name: "Alvarez"}},
		ResourceSummary:    []domain.ResourceSummaryRow{{ID: "rs1", Resource: "Engine", Identifier: "E-51"}},
		ICS201:             domain.ICS201Header{IncidentName: "Ridge Fire", IncidentNumber: "CA-2026-01"},
		PhaseStates: map[domain.PhaseID]domain.PhaseState{
			domain.PhaseTacticsMeeting: {Checked: map[string]bool{"ics215": true}, Notes: "bring maps"},
		},
	}
}

// RecordingPersister keeps every bag it is asked to save. Set Err to make
// saves fail.
type RecordingPersister struct {
	mu    sync.Mutex
	saves []domain.PhaseDataBag
	Err   error
}

func (p *RecordingPersister) Save(_ context.Context, bag domain.PhaseDataBag) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.saves = append(p.saves, bag.Clone())
	return nil
}

func (p *RecordingPersister) Saves() []domain.PhaseDataBag {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.PhaseDataBag(nil), p.saves...)
}

func (p *RecordingPersister) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.saves)
}

// Last returns the most recent saved bag, or a zero bag if none.
func (p *RecordingPersister) Last() domain.PhaseDataBag {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.saves) == 0 {
		return domain.PhaseDataBag{}
	}
	return p.saves[len(p.saves)-1]
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
