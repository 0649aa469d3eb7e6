package cli

import (
	"context"

	"github.com/jjimmyk/planningp/internal/cli/formatter"
	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/service"
	"github.com/spf13/cobra"
)

func newActionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "actions",
		Aliases: []string{"action"},
		Short:   "Track open actions across the period",
	}

	var (
		item    domain.ActionItem
		briefed bool
		status  string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an action item",
		RunE: func(cmd *cobra.Command, args []string) error {
			item.POCBriefed = domain.BriefedNo
			if briefed {
				item.POCBriefed = domain.BriefedYes
			}
			item.Status = domain.ActionItemStatus(status)
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				a, err := ws.ActionTracker().AddActionItem(ctx, item)
				if err != nil {
					return err
				}
				printf(cmd, "Added action item %s [%s] %s\n", a.TaskName, a.ID, formatter.ItemStatusPill(a.Status))
				return nil
			})
		},
	}
	add.Flags().StringVar(&item.TaskName, "task", "", "Task")
	add.Flags().StringVar(&item.PointOfContact, "poc", "", "Point of contact")
	add.Flags().BoolVar(&briefed, "briefed", false, "Point of contact has been briefed")
	add.Flags().StringVar(&item.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	add.Flags().StringVar(&item.Deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	add.Flags().StringVar(&status, "status", string(domain.ItemNotStarted), "Not Started, In Progress, Completed or Cancelled")
	_ = add.MarkFlagRequired("task")

	var open, overdue bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List action items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				t := ws.ActionTracker()
				items := t.ActionItems()
				switch {
				case overdue:
					items = t.Overdue(app.now())
				case open:
					items = t.Open()
				}
				writeOut(cmd, formatter.FormatActionItems(items, app.now()))
				return nil
			})
		},
	}
	list.Flags().BoolVar(&open, "open", false, "Hide completed and cancelled items")
	list.Flags().BoolVar(&overdue, "overdue", false, "Only open items past their deadline")

	cmd.AddCommand(
		add,
		list,
		&cobra.Command{
			Use:   "set ID FIELD VALUE",
			Short: "Set taskName, pointOfContact, pocBriefed, startDate, deadline or status",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.ActionTracker().UpdateField(ctx, args[0], args[1], args[2])
				})
			},
		},
		&cobra.Command{
			Use:     "rm ID",
			Aliases: []string{"delete"},
			Short:   "Remove an action item",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.ActionTracker().RemoveActionItem(ctx, args[0])
				})
			},
		},
	)

	return cmd
}
