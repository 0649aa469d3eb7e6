package cli

import (
	"context"

	"github.com/jjimmyk/planningp/internal/cli/formatter"
	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/service"
	"github.com/spf13/cobra"
)

func newHazardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hazard",
		Short: "Edit the ICS-215A hazard register",
	}

	var (
		name, area, mitigations string
		gar                     int
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a hazard (GAR scores outside 1-10 are clamped)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				h, err := ws.Hazards().AddHazard(ctx, name, area, mitigations, gar)
				if err != nil {
					return err
				}
				printf(cmd, "Added hazard %s [%s] GAR %d %s\n", h.Name, h.ID, h.GARScore, formatter.SeverityPill(h.Severity()))
				return nil
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "Hazard")
	add.Flags().StringVar(&area, "area", "", "Incident area")
	add.Flags().StringVar(&mitigations, "mitigations", "", "Mitigations")
	add.Flags().IntVar(&gar, "gar", domain.MinGARScore, "GAR risk score, 1-10")
	_ = add.MarkFlagRequired("name")

	var bySeverity bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List hazards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				r := ws.Hazards()
				hazards := r.Hazards()
				if bySeverity {
					hazards = r.BySeverity()
				}
				writeOut(cmd, formatter.FormatHazards(hazards))
				printf(cmd, "%s\n", formatter.FormatSeverityCounts(r.SeverityCounts()))
				return nil
			})
		},
	}
	list.Flags().BoolVar(&bySeverity, "by-severity", false, "Highest GAR score first")

	cmd.AddCommand(
		add,
		list,
		&cobra.Command{
			Use:   "set ID FIELD VALUE",
			Short: "Set name, incidentArea, mitigations or garScore",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.Hazards().UpdateHazard(ctx, args[0], args[1], args[2])
				})
			},
		},
		&cobra.Command{
			Use:     "rm ID",
			Aliases: []string{"delete"},
			Short:   "Delete a hazard",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.Hazards().DeleteHazard(ctx, args[0])
				})
			},
		},
	)

	return cmd
}
