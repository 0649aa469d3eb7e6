package cli

import (
	"context"

	"github.com/jjimmyk/planningp/internal/cli/formatter"
	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/service"
	"github.com/spf13/cobra"
)

// agendaPhase returns the phase named by --phase, or the active phase.
func agendaPhase(cmd *cobra.Command, ws *service.Workspace) (domain.PhaseID, error) {
	v, _ := cmd.Flags().GetString("phase")
	if v == "" {
		return ws.ActivePhase(), nil
	}
	return resolvePhase(v)
}

func newAgendaCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Work through a phase's meeting agenda",
	}
	cmd.PersistentFlags().String("phase", "", "Phase number or id (default: active phase)")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the agenda checklist and notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				id, err := agendaPhase(cmd, ws)
				if err != nil {
					return err
				}
				a := ws.Agenda()
				printf(cmd, "%s\n", formatter.Header(formatter.PhaseTitle(id)))
				writeOut(cmd, formatter.FormatAgenda(a.Items(id), a.Notes(id)))
				return nil
			})
		},
	}

	check := &cobra.Command{
		Use:     "check ITEM",
		Aliases: []string{"toggle"},
		Short:   "Toggle an agenda item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				id, err := agendaPhase(cmd, ws)
				if err != nil {
					return err
				}
				checked, err := ws.Agenda().ToggleItem(ctx, id, args[0])
				if err != nil {
					return err
				}
				done, total := ws.Agenda().Progress(id)
				mark := "unchecked"
				if checked {
					mark = "checked"
				}
				printf(cmd, "%s %s  %s\n", args[0], mark, formatter.RenderProgress(done, total, 20))
				return nil
			})
		},
	}

	notes := &cobra.Command{
		Use:   "notes TEXT",
		Short: "Replace the agenda notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				id, err := agendaPhase(cmd, ws)
				if err != nil {
					return err
				}
				return ws.Agenda().SetNotes(ctx, id, args[0])
			})
		},
	}

	cmd.AddCommand(show, check, notes)
	return cmd
}
