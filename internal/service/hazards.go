package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/phase"
)

// HazardRegister edits the ICS-215A safety analysis. GAR scores outside
// 1-10 are clamped rather than rejected.
type HazardRegister struct {
	ws *Workspace
}

// AddHazard stores a new hazard. A zero score means "not given" and is
// stored as the minimum.
func (r *HazardRegister) AddHazard(ctx context.Context, name, incidentArea, mitigations string, garScore int) (domain.Hazard, error) {
	var out domain.Hazard
	fields := map[string]any{}
	err := r.ws.mutate(ctx, "add-hazard", fields, func() (phase.Patch, error) {
		if domain.IsBlank(name) {
			return phase.Patch{}, domain.NewValidationError("name", "is required")
		}
		out = domain.Hazard{
			ID:           r.ws.ids.NewID(),
			Name:         name,
			IncidentArea: incidentArea,
			Mitigations:  mitigations,
			GARScore:     domain.ClampGAR(garScore),
		}
		fields["hazard_id"] = out.ID
		fields["gar_score"] = out.GARScore
		if err := r.ws.store.Hazards.Add(out); err != nil {
			return phase.Patch{}, err
		}
		return r.ws.hazardsPatch(), nil
	})
	return out, err
}

// UpdateHazard sets one of name, incidentArea, mitigations or garScore.
// A non-numeric score is stored as the minimum.
func (r *HazardRegister) UpdateHazard(ctx context.Context, id, field, value string) error {
	fields := map[string]any{"hazard_id": id, "field": field}
	return r.ws.mutate(ctx, "update-hazard", fields, func() (phase.Patch, error) {
		err := r.ws.store.Hazards.Update(id, func(h *domain.Hazard) error {
			switch field {
			case "name":
				if domain.IsBlank(value) {
					return domain.NewValidationError("name", "is required")
				}
				h.Name = value
			case "incidentArea":
				h.IncidentArea = value
			case "mitigations":
				h.Mitigations = value
			case "garScore":
				n, err := strconv.Atoi(strings.TrimSpace(value))
				if err != nil {
					n = domain.MinGARScore
				}
				h.GARScore = domain.ClampGAR(n)
			default:
				return unknownField(field)
			}
			return nil
		})
		if err != nil {
			return phase.Patch{}, err
		}
		return r.ws.hazardsPatch(), nil
	})
}

// DeleteHazard removes a hazard. Unknown ids are a no-op.
func (r *HazardRegister) DeleteHazard(ctx context.Context, id string) error {
	return r.ws.mutate(ctx, "delete-hazard", map[string]any{"hazard_id": id}, func() (phase.Patch, error) {
		if !r.ws.store.Hazards.Delete(id) {
			return phase.Patch{}, nil
		}
		return r.ws.hazardsPatch(), nil
	})
}

func (r *HazardRegister) Hazards() []domain.Hazard {
	var out []domain.Hazard
	r.ws.read(func() { out = r.ws.store.Hazards.List() })
	return out
}

// BySeverity orders hazards by GAR score, highest first. Equal scores keep
// register order.
func (r *HazardRegister) BySeverity() []domain.Hazard {
	out := r.Hazards()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GARScore > out[j].GARScore
	})
	return out
}

// SeverityCounts returns how many hazards fall in each band.
func (r *HazardRegister) SeverityCounts() map[domain.Severity]int {
	counts := map[domain.Severity]int{
		domain.SeverityLow:    0,
		domain.SeverityMedium: 0,
		domain.SeverityHigh:   0,
	}
	for _, h := range r.Hazards() {
		counts[h.Severity()]++
	}
	return counts
}
