package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jjimmyk/planningp/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SeverityStyle follows the band's presentation color.
func SeverityStyle(s domain.Severity) lipgloss.Style {
	switch s.Color() {
	case "red":
		return StyleRed
	case "yellow":
		return StyleYellow
	default:
		return StyleGreen
	}
}

// SeverityPill renders a hazard band such as "● HIGH".
func SeverityPill(s domain.Severity) string {
	return SeverityStyle(s).Render("● " + strings.ToUpper(string(s)))
}

// GARBadge renders a clamped GAR score with its band color, e.g. "7/10".
func GARBadge(score int) string {
	score = domain.ClampGAR(score)
	return SeverityStyle(domain.SeverityFor(score)).Render(fmt.Sprintf("%d/%d", score, domain.MaxGARScore))
}

func PriorityBadge(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("▲ High")
	case domain.PriorityMedium:
		return StyleYellow.Render("■ Medium")
	case domain.PriorityLow:
		return StyleBlue.Render("▼ Low")
	default:
		return StyleDim.Render(string(p))
	}
}

// ActionStatusPill colors an ICS-201 action status.
func ActionStatusPill(s domain.ActionStatus) string {
	switch s {
	case domain.ActionCurrent:
		return StyleGreen.Render("● Current")
	case domain.ActionPlanned:
		return StyleBlue.Render("○ Planned")
	case domain.ActionCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(s))
	}
}

// ItemStatusPill colors an open-actions tracker status.
func ItemStatusPill(s domain.ActionItemStatus) string {
	switch s {
	case domain.ItemNotStarted:
		return StyleBlue.Render("○ Not Started")
	case domain.ItemInProgress:
		return StyleYellow.Render("▶ In Progress")
	case domain.ItemCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.ItemCancelled:
		return StyleDim.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(s))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
