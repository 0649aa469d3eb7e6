package domain

import "slices"

type WorkAssignment struct {
	ID                       string     `json:"id" yaml:"id"`
	Name                     string     `json:"name" yaml:"name"`
	DivisionGroupLocation    string     `json:"divisionGroupLocation" yaml:"division_group_location"`
	OverheadPositions        string     `json:"overheadPositions" yaml:"overhead_positions"`
	SpecialEquipmentSupplies string     `json:"specialEquipmentSupplies" yaml:"special_equipment_supplies"`
	ReportingLocation        string     `json:"reportingLocation" yaml:"reporting_location"`
	RequestedArrivalTime     string     `json:"requestedArrivalTime" yaml:"requested_arrival_time"`
	Resources                []Resource `json:"resources" yaml:"resources"`
}

// Resource is a line in a work assignment's resource list. QuantityNeeded is
// edited independently and may disagree with Gap.
type Resource struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	QuantityRequired int    `json:"quantityRequired" yaml:"quantity_required"`
	QuantityHad      int    `json:"quantityHad" yaml:"quantity_had"`
	QuantityNeeded   int    `json:"quantityNeeded" yaml:"quantity_needed"`
}

// Gap is the shortfall between required and on-hand quantities, never negative.
func (r Resource) Gap() int {
	return NonNegative(r.QuantityRequired - r.QuantityHad)
}

func (a WorkAssignment) Key() string { return a.ID }

func (a WorkAssignment) Clone() WorkAssignment {
	c := a
	if a.Resources != nil {
		c.Resources = slices.Clone(a.Resources)
	}
	return c
}

// ResourceIndex returns the position of the resource with id, or -1.
func (a *WorkAssignment) ResourceIndex(id string) int {
	for i := range a.Resources {
		if a.Resources[i].ID == id {
			return i
		}
	}
	return -1
}
