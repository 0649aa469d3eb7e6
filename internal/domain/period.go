package domain

import "time"

// OperationalPeriod is the time window that owns one PhaseDataBag. The
// core never reads it; the persistence collaborator and CLI do.
type OperationalPeriod struct {
	ID           string
	Name         string
	IncidentName string
	StartsAt     *time.Time
	EndsAt       *time.Time
	ActivePhase  PhaseID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BagRevision is one saved version of a period's bag.
type BagRevision struct {
	PeriodID string
	Revision int
	SavedAt  time.Time
	Bag      PhaseDataBag
}
