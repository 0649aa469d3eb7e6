package service

import (
	"context"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/phase"
)

// WorkAssignmentLedger edits ICS-215 work assignments and their resources.
type WorkAssignmentLedger struct {
	ws *Workspace
}

// ResourceTotals sums the resource lines of one assignment.
type ResourceTotals struct {
	Required int
	Had      int
	Needed   int
	Gap      int
}

// Shortfall is a resource line that has less on hand than required.
type Shortfall struct {
	AssignmentID   string
	AssignmentName string
	Resource       domain.Resource
	Gap            int
}

// AddWorkAssignment stores a. The id and any resource ids are assigned
// here; quantities below zero are floored. Once stored, the assignment is
// returned even if saving the period fails.
func (l *WorkAssignmentLedger) AddWorkAssignment(ctx context.Context, a domain.WorkAssignment) (domain.WorkAssignment, error) {
	var out domain.WorkAssignment
	fields := map[string]any{}
	err := l.ws.mutate(ctx, "add-work-assignment", fields, func() (phase.Patch, error) {
		if domain.IsBlank(a.Name) {
			return phase.Patch{}, domain.NewValidationError("name", "is required")
		}
		a = a.Clone()
		a.ID = l.ws.ids.NewID()
		if a.Resources == nil {
			a.Resources = []domain.Resource{}
		}
		for i := range a.Resources {
			a.Resources[i] = l.normalizeResource(a.Resources[i])
		}
		fields["assignment_id"] = a.ID
		if err := l.ws.store.Assignments.Add(a); err != nil {
			return phase.Patch{}, err
		}
		out = a.Clone()
		return l.ws.assignmentsPatch(), nil
	})
	return out, err
}

// UpdateField sets one text field of an assignment.
func (l *WorkAssignmentLedger) UpdateField(ctx context.Context, assignmentID, field, value string) error {
	fields := map[string]any{"assignment_id": assignmentID, "field": field}
	return l.ws.mutate(ctx, "update-work-assignment", fields, func() (phase.Patch, error) {
		err := l.ws.store.Assignments.Update(assignmentID, func(a *domain.WorkAssignment) error {
			switch field {
			case "name":
				if domain.IsBlank(value) {
					return domain.NewValidationError("name", "is required")
				}
				a.Name = value
			case "divisionGroupLocation":
				a.DivisionGroupLocation = value
			case "overheadPositions":
				a.OverheadPositions = value
			case "specialEquipmentSupplies":
				a.SpecialEquipmentSupplies = value
			case "reportingLocation":
				a.ReportingLocation = value
			case "requestedArrivalTime":
				a.RequestedArrivalTime = value
			default:
				return unknownField(field)
			}
			return nil
		})
		if err != nil {
			return phase.Patch{}, err
		}
		return l.ws.assignmentsPatch(), nil
	})
}

// DeleteWorkAssignment removes the assignment and its resources. Unknown
// ids are a no-op.
func (l *WorkAssignmentLedger) DeleteWorkAssignment(ctx context.Context, id string) error {
	return l.ws.mutate(ctx, "delete-work-assignment", map[string]any{"assignment_id": id}, func() (phase.Patch, error) {
		if !l.ws.store.Assignments.Delete(id) {
			return phase.Patch{}, nil
		}
		return l.ws.assignmentsPatch(), nil
	})
}

func (l *WorkAssignmentLedger) AddResource(ctx context.Context, assignmentID string, r domain.Resource) (domain.Resource, error) {
	var out domain.Resource
	fields := map[string]any{"assignment_id": assignmentID}
	err := l.ws.mutate(ctx, "add-resource", fields, func() (phase.Patch, error) {
		r.ID = ""
		r = l.normalizeResource(r)
		fields["resource_id"] = r.ID
		err := l.ws.store.Assignments.Update(assignmentID, func(a *domain.WorkAssignment) error {
			a.Resources = append(a.Resources, r)
			return nil
		})
		if err != nil {
			return phase.Patch{}, err
		}
		out = r
		return l.ws.assignmentsPatch(), nil
	})
	return out, err
}

// UpdateResource sets one resource field. Quantity fields accept form text;
// anything that is not a non-negative integer is stored as 0.
func (l *WorkAssignmentLedger) UpdateResource(ctx context.Context, assignmentID, resourceID, field, value string) error {
	fields := map[string]any{"assignment_id": assignmentID, "resource_id": resourceID, "field": field}
	return l.ws.mutate(ctx, "update-resource", fields, func() (phase.Patch, error) {
		err := l.ws.store.Assignments.Update(assignmentID, func(a *domain.WorkAssignment) error {
			i := a.ResourceIndex(resourceID)
			if i < 0 {
				return domain.NewNotFoundError("resource", resourceID)
			}
			r := &a.Resources[i]
			switch field {
			case "name":
				r.Name = value
			case "quantityRequired":
				r.QuantityRequired = domain.CoerceQuantity(value)
			case "quantityHad":
				r.QuantityHad = domain.CoerceQuantity(value)
			case "quantityNeeded":
				r.QuantityNeeded = domain.CoerceQuantity(value)
			default:
				return unknownField(field)
			}
			return nil
		})
		if err != nil {
			return phase.Patch{}, err
		}
		return l.ws.assignmentsPatch(), nil
	})
}

// DeleteResource removes one resource line. Unknown ids are a no-op.
func (l *WorkAssignmentLedger) DeleteResource(ctx context.Context, assignmentID, resourceID string) error {
	fields := map[string]any{"assignment_id": assignmentID, "resource_id": resourceID}
	return l.ws.mutate(ctx, "delete-resource", fields, func() (phase.Patch, error) {
		removed := false
		err := l.ws.store.Assignments.Update(assignmentID, func(a *domain.WorkAssignment) error {
			if i := a.ResourceIndex(resourceID); i >= 0 {
				a.Resources = append(a.Resources[:i], a.Resources[i+1:]...)
				removed = true
			}
			return nil
		})
		if err != nil || !removed {
			// A missing assignment means there is nothing to delete.
			return phase.Patch{}, nil
		}
		return l.ws.assignmentsPatch(), nil
	})
}

func (l *WorkAssignmentLedger) normalizeResource(r domain.Resource) domain.Resource {
	if r.ID == "" {
		r.ID = l.ws.ids.NewID()
	}
	r.QuantityRequired = domain.NonNegative(r.QuantityRequired)
	r.QuantityHad = domain.NonNegative(r.QuantityHad)
	r.QuantityNeeded = domain.NonNegative(r.QuantityNeeded)
	return r
}

func (l *WorkAssignmentLedger) WorkAssignments() []domain.WorkAssignment {
	var out []domain.WorkAssignment
	l.ws.read(func() { out = l.ws.store.Assignments.List() })
	return out
}

func (l *WorkAssignmentLedger) WorkAssignment(id string) (domain.WorkAssignment, bool) {
	var (
		out domain.WorkAssignment
		ok  bool
	)
	l.ws.read(func() { out, ok = l.ws.store.Assignments.Get(id) })
	return out, ok
}

// Totals sums quantities over one assignment's resources. Gap is the sum of
// per-line gaps, so a surplus on one line does not hide a shortfall on another.
func (l *WorkAssignmentLedger) Totals(assignmentID string) (ResourceTotals, error) {
	a, ok := l.WorkAssignment(assignmentID)
	if !ok {
		return ResourceTotals{}, domain.NewNotFoundError("work assignment", assignmentID)
	}
	var t ResourceTotals
	for _, r := range a.Resources {
		t.Required += r.QuantityRequired
		t.Had += r.QuantityHad
		t.Needed += r.QuantityNeeded
		t.Gap += r.Gap()
	}
	return t, nil
}

// Shortfalls lists every resource line with a positive gap, in ledger order.
func (l *WorkAssignmentLedger) Shortfalls() []Shortfall {
	var out []Shortfall
	for _, a := range l.WorkAssignments() {
		for _, r := range a.Resources {
			if g := r.Gap(); g > 0 {
				out = append(out, Shortfall{
					AssignmentID:   a.ID,
					AssignmentName: a.Name,
					Resource:       r,
					Gap:            g,
				})
			}
		}
	}
	return out
}
