package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jjimmyk/planningp/internal/cli/formatter"
	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/service"
	"github.com/spf13/cobra"
)

var errNotInteractive = errors.New("this command needs an interactive terminal")

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Move through the phases of the Planning P",
	}

	cmd.AddCommand(
		newPhaseListCmd(app),
		newPhaseSelectCmd(app),
		newPhaseShowCmd(app),
		newPhaseStepCmd(app),
	)

	return cmd
}

func newPhaseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the phases in cycle order",
		RunE: func(cmd *cobra.Command, args []string) error {
			var active domain.PhaseID
			if id, err := periodFromFlags(cmd, app); err == nil {
				if p, err := app.Periods.Get(cmd.Context(), id); err == nil {
					active = p.ActivePhase
				}
			}
			writeOut(cmd, formatter.FormatPhaseList(active))
			return nil
		},
	}
}

func newPhaseSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select PHASE",
		Short: "Make a phase active (id or number from 'phase list')",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePhase(args[0])
			if err != nil {
				return err
			}
			periodID, err := periodFromFlags(cmd, app)
			if err != nil {
				return err
			}
			if err := app.Periods.SetActivePhase(cmd.Context(), periodID, id); err != nil {
				return err
			}
			ws, err := app.Periods.Open(cmd.Context(), periodID)
			if err != nil {
				return err
			}
			printf(cmd, "Active phase: %s\n", formatter.PhaseTitle(id))
			for _, tag := range ws.VisibleSections() {
				printf(cmd, "  • %s\n", formatter.SectionTitle(tag))
			}
			return nil
		},
	}
}

func newPhaseShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [PHASE]",
		Short: "Show the sections of a phase (the active one by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				id := ws.ActivePhase()
				if len(args) == 1 {
					var err error
					if id, err = resolvePhase(args[0]); err != nil {
						return err
					}
				}
				printf(cmd, "%s\n\n", formatter.Bold(formatter.PhaseTitle(id)))
				writeOut(cmd, renderPhase(ws, id, app.now()))
				return nil
			})
		},
	}
}

func newPhaseStepCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "step",
		Short: "Step through the phases interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive {
				return errNotInteractive
			}
			periodID, err := periodFromFlags(cmd, app)
			if err != nil {
				return err
			}
			p, err := app.Periods.Get(cmd.Context(), periodID)
			if err != nil {
				return err
			}
			ws, err := app.Periods.Open(cmd.Context(), periodID)
			if err != nil {
				return err
			}

			model := newStepperModel(cmd.Context(), ws, p.Name, app.now)
			final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("phase stepper: %w", err)
			}
			m := final.(stepperModel)
			if !m.Chosen() {
				return nil
			}
			if err := app.Periods.SetActivePhase(cmd.Context(), periodID, m.Phase()); err != nil {
				return err
			}
			printf(cmd, "Active phase: %s\n", formatter.PhaseTitle(m.Phase()))
			return nil
		},
	}
}
