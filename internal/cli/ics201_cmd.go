package cli

import (
	"context"

	"github.com/jjimmyk/planningp/internal/cli/formatter"
	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/service"
	"github.com/spf13/cobra"
)

func newICS201Cmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ics201",
		Short: "Edit the ICS-201 incident briefing",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the briefing header, organization and resource summary",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					f := ws.ICS201()
					writeOut(cmd, formatter.FormatICS201Header(f.Header()))
					printf(cmd, "\n%s\n", formatter.Header("Current organization"))
					writeOut(cmd, formatter.FormatRoster(f.Roster()))
					printf(cmd, "\n%s\n", formatter.Header("Resource summary"))
					writeOut(cmd, formatter.FormatResourceSummary(f.ResourceSummary()))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set FIELD VALUE",
			Short: "Set incidentName, incidentNumber, preparedBy, preparedAt, situationSummary or safetyBriefing",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.ICS201().UpdateHeader(ctx, args[0], args[1])
				})
			},
		},
		newRosterCmd(app),
		newSummaryCmd(app),
	)

	return cmd
}

func newRosterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Edit the current organization",
	}

	var position, name string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a position",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				e, err := ws.ICS201().AddRosterEntry(ctx, position, name)
				if err != nil {
					return err
				}
				printf(cmd, "Added %s [%s]\n", formatter.OrDash(e.Position), e.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&position, "position", "", "ICS position, e.g. \"Incident Commander\"")
	add.Flags().StringVar(&name, "name", "", "Person filling the position")

	cmd.AddCommand(
		add,
		&cobra.Command{
			Use:   "list",
			Short: "List the organization",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					writeOut(cmd, formatter.FormatRoster(ws.ICS201().Roster()))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set ID FIELD VALUE",
			Short: "Set position or name",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.ICS201().UpdateRosterEntry(ctx, args[0], args[1], args[2])
				})
			},
		},
		&cobra.Command{
			Use:     "rm ID",
			Aliases: []string{"delete"},
			Short:   "Remove a position (the last one stays)",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.ICS201().RemoveRosterEntry(ctx, args[0])
				})
			},
		},
	)

	return cmd
}

func newSummaryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Edit the ICS-201 resource summary",
	}

	var row domain.ResourceSummaryRow
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a resource summary row",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				r, err := ws.ICS201().AddSummaryRow(ctx, row)
				if err != nil {
					return err
				}
				printf(cmd, "Added %s [%s]\n", formatter.OrDash(r.Resource), r.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&row.Resource, "resource", "", "Resource")
	add.Flags().StringVar(&row.Identifier, "identifier", "", "Resource identifier")
	add.Flags().StringVar(&row.OrderedAt, "ordered", "", "Date/time ordered")
	add.Flags().StringVar(&row.ETA, "eta", "", "ETA")
	add.Flags().BoolVar(&row.Arrived, "arrived", false, "Resource is on scene")
	add.Flags().StringVar(&row.Notes, "notes", "", "Notes (location, assignment, status)")

	cmd.AddCommand(
		add,
		&cobra.Command{
			Use:   "list",
			Short: "List the resource summary",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					writeOut(cmd, formatter.FormatResourceSummary(ws.ICS201().ResourceSummary()))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set ID FIELD VALUE",
			Short: "Set resource, identifier, orderedAt, eta, arrived or notes",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.ICS201().UpdateSummaryRow(ctx, args[0], args[1], args[2])
				})
			},
		},
		&cobra.Command{
			Use:     "rm ID",
			Aliases: []string{"delete"},
			Short:   "Remove a row (the last one stays)",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.ICS201().RemoveSummaryRow(ctx, args[0])
				})
			},
		},
	)

	return cmd
}
