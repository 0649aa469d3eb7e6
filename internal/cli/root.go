package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jjimmyk/planningp/internal/service"
	"github.com/spf13/cobra"
)

// App holds what every command needs: the period service plus the process
// settings that shape interactive behaviour.
type App struct {
	Periods service.PeriodService
	// DefaultPeriod is used when --period is not given.
	DefaultPeriod string
	// IsInteractive allows the stepper and huh dialogs to take the terminal.
	IsInteractive bool
	// Now defaults to the wall clock. Tests pin it.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "planningp" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "planningp",
		Short: "ICS Planning P workspace for operational periods",
		Long: "planningp keeps the data of one operational period (objectives, work\n" +
			"assignments, hazards, the ICS-201 briefing, meetings and open actions)\n" +
			"and walks it through the phases of the Planning P.",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("period", "", "Operational period id, id prefix or name")

	root.AddCommand(
		newPeriodCmd(app),
		newPhaseCmd(app),
		newObjectiveCmd(app),
		newStrategyCmd(app),
		newTacticCmd(app),
		newTreeCmd(app),
		newAssignmentCmd(app),
		newResourceCmd(app),
		newHazardCmd(app),
		newICS201Cmd(app),
		newResponseCmd(app),
		newMeetingCmd(app),
		newActionsCmd(app),
		newAgendaCmd(app),
		newExportCmd(app),
	)

	return root
}

// withWorkspace resolves the period for cmd, opens its workspace and runs fn.
func withWorkspace(cmd *cobra.Command, app *App, fn func(ctx context.Context, ws *service.Workspace) error) error {
	ctx := cmd.Context()
	id, err := periodFromFlags(cmd, app)
	if err != nil {
		return err
	}
	ws, err := app.Periods.Open(ctx, id)
	if err != nil {
		return err
	}
	return fn(ctx, ws)
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func writeOut(cmd *cobra.Command, s string) {
	io.WriteString(cmd.OutOrStdout(), s)
}
