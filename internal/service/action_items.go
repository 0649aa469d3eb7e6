package service

import (
	"context"
	"time"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/phase"
)

// ActionTracker keeps the open-actions list that follows the period
// through every phase.
type ActionTracker struct {
	ws *Workspace
}

func (t *ActionTracker) AddActionItem(ctx context.Context, item domain.ActionItem) (domain.ActionItem, error) {
	var out domain.ActionItem
	fields := map[string]any{}
	err := t.ws.mutate(ctx, "add-action-item", fields, func() (phase.Patch, error) {
		if domain.IsBlank(item.TaskName) {
			return phase.Patch{}, domain.NewValidationError("taskName", "is required")
		}
		if item.Status == "" {
			item.Status = domain.ItemNotStarted
		}
		if !domain.ValidActionItemStatuses[item.Status] {
			return phase.Patch{}, invalidItemStatus()
		}
		if item.POCBriefed == "" {
			item.POCBriefed = domain.BriefedNo
		}
		if item.POCBriefed != domain.BriefedYes && item.POCBriefed != domain.BriefedNo {
			return phase.Patch{}, domain.NewValidationError("pocBriefed", "must be Yes or No")
		}
		item.ID = t.ws.ids.NewID()
		item.CreatedAt = t.ws.now()
		fields["action_item_id"] = item.ID
		if err := t.ws.store.ActionItems.Add(item); err != nil {
			return phase.Patch{}, err
		}
		out = item
		return t.ws.actionItemsPatch(), nil
	})
	return out, err
}

func invalidItemStatus() error {
	return domain.NewValidationError("status", "must be Not Started, In Progress, Completed or Cancelled")
}

// UpdateField sets one of taskName, pointOfContact, pocBriefed, startDate,
// deadline or status.
func (t *ActionTracker) UpdateField(ctx context.Context, id, field, value string) error {
	fields := map[string]any{"action_item_id": id, "field": field}
	return t.ws.mutate(ctx, "update-action-item", fields, func() (phase.Patch, error) {
		err := t.ws.store.ActionItems.Update(id, func(a *domain.ActionItem) error {
			switch field {
			case "taskName":
				if domain.IsBlank(value) {
					return domain.NewValidationError("taskName", "is required")
				}
				a.TaskName = value
			case "pointOfContact":
				a.PointOfContact = value
			case "pocBriefed":
				b := domain.Briefed(value)
				if b != domain.BriefedYes && b != domain.BriefedNo {
					return domain.NewValidationError("pocBriefed", "must be Yes or No")
				}
				a.POCBriefed = b
			case "startDate":
				a.StartDate = value
			case "deadline":
				a.Deadline = value
			case "status":
				s := domain.ActionItemStatus(value)
				if !domain.ValidActionItemStatuses[s] {
					return invalidItemStatus()
				}
				a.Status = s
			default:
				return unknownField(field)
			}
			return nil
		})
		if err != nil {
			return phase.Patch{}, err
		}
		return t.ws.actionItemsPatch(), nil
	})
}

// RemoveActionItem deletes an item. Unknown ids are a no-op.
func (t *ActionTracker) RemoveActionItem(ctx context.Context, id string) error {
	return t.ws.mutate(ctx, "remove-action-item", map[string]any{"action_item_id": id}, func() (phase.Patch, error) {
		if !t.ws.store.ActionItems.Delete(id) {
			return phase.Patch{}, nil
		}
		return t.ws.actionItemsPatch(), nil
	})
}

func (t *ActionTracker) ActionItems() []domain.ActionItem {
	var out []domain.ActionItem
	t.ws.read(func() { out = t.ws.store.ActionItems.List() })
	return out
}

// Open returns items that are neither completed nor cancelled.
func (t *ActionTracker) Open() []domain.ActionItem {
	var out []domain.ActionItem
	for _, a := range t.ActionItems() {
		if !a.Status.IsClosed() {
			out = append(out, a)
		}
	}
	return out
}

// Overdue returns open items whose deadline day is before now's day.
// Items without a parseable deadline are never overdue.
func (t *ActionTracker) Overdue(now time.Time) []domain.ActionItem {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var out []domain.ActionItem
	for _, a := range t.Open() {
		d, err := time.ParseInLocation(domain.DateLayout, a.Deadline, now.Location())
		if err != nil {
			continue
		}
		if d.Before(today) {
			out = append(out, a)
		}
	}
	return out
}
