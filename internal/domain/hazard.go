package domain

const (
	MinGARScore = 1
	MaxGARScore = 10
)

type Hazard struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	IncidentArea string `json:"incidentArea" yaml:"incident_area"`
	Mitigations  string `json:"mitigations" yaml:"mitigations"`
	GARScore     int    `json:"garScore" yaml:"gar_score"`
}

func (h Hazard) Key() string { return h.ID }

func (h Hazard) Clone() Hazard { return h }

// Severity derives the risk band from the GAR score on every call.
func (h Hazard) Severity() Severity {
	return SeverityFor(h.GARScore)
}

// ClampGAR forces a GAR score into [MinGARScore, MaxGARScore].
func ClampGAR(score int) int {
	if score < MinGARScore {
		return MinGARScore
	}
	if score > MaxGARScore {
		return MaxGARScore
	}
	return score
}

// SeverityFor maps a GAR score to its band: 1–3 low, 4–6 medium, 7–10 high.
// Scores are clamped first.
func SeverityFor(score int) Severity {
	switch s := ClampGAR(score); {
	case s >= 7:
		return SeverityHigh
	case s >= 4:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Color returns the presentation color name of the band.
func (s Severity) Color() string {
	switch s {
	case SeverityHigh:
		return "red"
	case SeverityMedium:
		return "yellow"
	default:
		return "green"
	}
}
