package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/jjimmyk/planningp/internal/cli/formatter"
	"github.com/jjimmyk/planningp/internal/domain"
)

// planningHuhTheme styles huh forms with the formatter palette.
func planningHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

var meetingTypes = []string{
	"Planning Meeting",
	"Tactics Meeting",
	"Operations Briefing",
	"Command & General Staff",
	"IC/UC Objectives Meeting",
	"Other",
}

// meetingInput is the text state of the scheduling dialog.
type meetingInput struct {
	Name        string
	Type        string
	Date        string
	Start       string
	End         string
	InPerson    bool
	Location    string
	VirtualLink string
	Attendees   string
	Agenda      string
}

func newMeetingInput(now time.Time) *meetingInput {
	return &meetingInput{
		Type:     meetingTypes[0],
		Date:     now.Format(domain.DateLayout),
		InPerson: true,
	}
}

// Meeting converts the dialog state. Attendees are comma separated.
func (in *meetingInput) Meeting() domain.Meeting {
	m := domain.Meeting{
		Name:        strings.TrimSpace(in.Name),
		Type:        in.Type,
		Date:        strings.TrimSpace(in.Date),
		StartTime:   strings.TrimSpace(in.Start),
		EndTime:     strings.TrimSpace(in.End),
		IsInPerson:  in.InPerson,
		Location:    strings.TrimSpace(in.Location),
		VirtualLink: strings.TrimSpace(in.VirtualLink),
		Agenda:      in.Agenda,
		Attendees:   []string{},
	}
	for _, a := range strings.Split(in.Attendees, ",") {
		if a = strings.TrimSpace(a); a != "" {
			m.Attendees = append(m.Attendees, a)
		}
	}
	return m
}

// meetingForm is the scheduling dialog. The place group shows either the
// location or the virtual link depending on InPerson.
func meetingForm(in *meetingInput) *huh.Form {
	typeOptions := make([]huh.Option[string], 0, len(meetingTypes))
	for _, t := range meetingTypes {
		typeOptions = append(typeOptions, huh.NewOption(t, t))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Meeting name").Value(&in.Name).Validate(requiredText("meeting name")),
			huh.NewSelect[string]().Title("Type").Options(typeOptions...).Value(&in.Type),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(&in.Date).Validate(validateDate),
			huh.NewInput().Title("Start (HH:MM)").Placeholder("07:00").Value(&in.Start).Validate(validateClock),
			huh.NewInput().Title("End (HH:MM)").Placeholder("08:00").Value(&in.End).Validate(validateOptionalClock),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("In person?").Affirmative("Yes").Negative("Virtual").Value(&in.InPerson),
		),
		huh.NewGroup(
			huh.NewInput().Title("Location").Value(&in.Location),
		).WithHideFunc(func() bool { return !in.InPerson }),
		huh.NewGroup(
			huh.NewInput().Title("Virtual link").Value(&in.VirtualLink),
		).WithHideFunc(func() bool { return in.InPerson }),
		huh.NewGroup(
			huh.NewInput().Title("Attendees (comma separated)").Value(&in.Attendees),
			huh.NewText().Title("Agenda").Value(&in.Agenda),
		),
	).WithTheme(planningHuhTheme()).WithShowHelp(false)
}

func requiredText(label string) func(string) error {
	return func(s string) error {
		if domain.IsBlank(s) {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

// validateDate accepts a YYYY-MM-DD date.
func validateDate(s string) error {
	if _, err := time.Parse(domain.DateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateClock accepts a 24-hour HH:MM time.
func validateClock(s string) error {
	if _, err := time.Parse(domain.ClockLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use HH:MM format")
	}
	return nil
}

func validateOptionalClock(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateClock(s)
}
