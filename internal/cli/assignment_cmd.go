package cli

import (
	"context"

	"github.com/jjimmyk/planningp/internal/cli/formatter"
	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/service"
	"github.com/spf13/cobra"
)

func newAssignmentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assignment",
		Aliases: []string{"asg"},
		Short:   "Edit ICS-215 work assignments",
	}

	var a domain.WorkAssignment
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a work assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				created, err := ws.Ledger().AddWorkAssignment(ctx, a)
				if err != nil {
					return err
				}
				printf(cmd, "Added work assignment %s [%s]\n", created.Name, created.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&a.Name, "name", "", "Assignment name")
	add.Flags().StringVar(&a.DivisionGroupLocation, "division", "", "Division, group or location")
	add.Flags().StringVar(&a.OverheadPositions, "overhead", "", "Overhead positions")
	add.Flags().StringVar(&a.SpecialEquipmentSupplies, "equipment", "", "Special equipment and supplies")
	add.Flags().StringVar(&a.ReportingLocation, "report-to", "", "Reporting location")
	add.Flags().StringVar(&a.RequestedArrivalTime, "arrival", "", "Requested arrival time")
	_ = add.MarkFlagRequired("name")

	cmd.AddCommand(
		add,
		&cobra.Command{
			Use:   "list",
			Short: "List work assignments",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					list := ws.Ledger().WorkAssignments()
					if len(list) == 0 {
						printf(cmd, "No work assignments.\n")
						return nil
					}
					writeOut(cmd, formatter.FormatAssignmentList(list))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "show ID",
			Short: "Show an assignment with its resources and totals",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					l := ws.Ledger()
					totals, err := l.Totals(args[0])
					if err != nil {
						return err
					}
					a, _ := l.WorkAssignment(args[0])
					writeOut(cmd, formatter.FormatAssignment(a, totals))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set ID FIELD VALUE",
			Short: "Set name, divisionGroupLocation, overheadPositions, specialEquipmentSupplies, reportingLocation or requestedArrivalTime",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.Ledger().UpdateField(ctx, args[0], args[1], args[2])
				})
			},
		},
		&cobra.Command{
			Use:     "rm ID",
			Aliases: []string{"delete"},
			Short:   "Delete a work assignment",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.Ledger().DeleteWorkAssignment(ctx, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "shortfalls",
			Short: "List resources with less on hand than required",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					writeOut(cmd, formatter.FormatShortfalls(ws.Ledger().Shortfalls()))
					return nil
				})
			},
		},
	)

	return cmd
}

func newResourceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Edit the resource lines of a work assignment",
	}

	var assignment, name, required, had, needed string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a resource line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				r, err := ws.Ledger().AddResource(ctx, assignment, domain.Resource{
					Name:             name,
					QuantityRequired: domain.CoerceQuantity(required),
					QuantityHad:      domain.CoerceQuantity(had),
					QuantityNeeded:   domain.CoerceQuantity(needed),
				})
				if err != nil {
					return err
				}
				printf(cmd, "Added resource %s [%s] gap %d\n", r.Name, r.ID, r.Gap())
				return nil
			})
		},
	}
	add.Flags().StringVar(&assignment, "assignment", "", "Work assignment id")
	add.Flags().StringVar(&name, "name", "", "Resource kind, e.g. \"Type 3 Engine\"")
	add.Flags().StringVar(&required, "required", "0", "Quantity required")
	add.Flags().StringVar(&had, "have", "0", "Quantity on hand")
	add.Flags().StringVar(&needed, "need", "0", "Quantity still to order")
	_ = add.MarkFlagRequired("assignment")

	cmd.AddCommand(
		add,
		&cobra.Command{
			Use:   "set ASSIGNMENT ID FIELD VALUE",
			Short: "Set name, quantityRequired, quantityHad or quantityNeeded",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.Ledger().UpdateResource(ctx, args[0], args[1], args[2], args[3])
				})
			},
		},
		&cobra.Command{
			Use:     "rm ASSIGNMENT ID",
			Aliases: []string{"delete"},
			Short:   "Delete a resource line",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.Ledger().DeleteResource(ctx, args[0], args[1])
				})
			},
		},
	)

	return cmd
}
