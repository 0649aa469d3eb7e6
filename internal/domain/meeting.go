package domain

import (
	"slices"
	"time"
)

// Meeting is supplied by the scheduling dialog. Date is YYYY-MM-DD and the
// times are HH:MM; ordering between them is not validated.
type Meeting struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Type        string    `json:"type" yaml:"type"`
	Attendees   []string  `json:"attendees" yaml:"attendees"`
	Date        string    `json:"date" yaml:"date"`
	StartTime   string    `json:"startTime" yaml:"start_time"`
	EndTime     string    `json:"endTime" yaml:"end_time"`
	Location    string    `json:"location" yaml:"location"`
	IsInPerson  bool      `json:"isInPerson" yaml:"in_person"`
	VirtualLink string    `json:"virtualLink" yaml:"virtual_link"`
	Agenda      string    `json:"agenda" yaml:"agenda"`
	CreatedAt   time.Time `json:"createdAt" yaml:"created_at"`
}

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

func (m Meeting) Key() string { return m.ID }

func (m Meeting) Clone() Meeting {
	c := m
	if m.Attendees != nil {
		c.Attendees = slices.Clone(m.Attendees)
	}
	return c
}

// StartsAt combines Date and StartTime in loc. The bool is false when
// either field does not parse.
func (m Meeting) StartsAt(loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, m.Date+" "+m.StartTime, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ActionItem is a row of the open-actions tracker.
type ActionItem struct {
	ID             string           `json:"id" yaml:"id"`
	TaskName       string           `json:"taskName" yaml:"task_name"`
	PointOfContact string           `json:"pointOfContact" yaml:"point_of_contact"`
	POCBriefed     Briefed          `json:"pocBriefed" yaml:"poc_briefed"`
	StartDate      string           `json:"startDate" yaml:"start_date"`
	Deadline       string           `json:"deadline" yaml:"deadline"`
	Status         ActionItemStatus `json:"status" yaml:"status"`
	CreatedAt      time.Time        `json:"createdAt" yaml:"created_at"`
}

func (a ActionItem) Key() string { return a.ID }

func (a ActionItem) Clone() ActionItem { return a }
