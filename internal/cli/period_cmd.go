package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jjimmyk/planningp/internal/cli/formatter"
	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/spf13/cobra"
)

const periodTimeLayout = "2006-01-02 15:04"

func newPeriodCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "period",
		Aliases: []string{"op"},
		Short:   "Manage operational periods",
	}

	cmd.AddCommand(
		newPeriodCreateCmd(app),
		newPeriodListCmd(app),
		newPeriodShowCmd(app),
		newPeriodRenameCmd(app),
		newPeriodDeleteCmd(app),
		newPeriodHistoryCmd(app),
		newPeriodRestoreCmd(app),
	)

	return cmd
}

func parsePeriodTime(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(periodTimeLayout, value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q (want YYYY-MM-DD HH:MM): %w", flag, value, err)
	}
	return &t, nil
}

func newPeriodCreateCmd(app *App) *cobra.Command {
	var name, incident, starts, ends string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an operational period with an empty workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.OperationalPeriod{Name: name, IncidentName: incident}
			var err error
			if p.StartsAt, err = parsePeriodTime("starts", starts); err != nil {
				return err
			}
			if p.EndsAt, err = parsePeriodTime("ends", ends); err != nil {
				return err
			}
			if err := app.Periods.Create(cmd.Context(), p); err != nil {
				return err
			}
			printf(cmd, "Created period %s [%s]\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Period name, e.g. \"OP 3\"")
	cmd.Flags().StringVar(&incident, "incident", "", "Incident name")
	cmd.Flags().StringVar(&starts, "starts", "", "Start (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&ends, "ends", "", "End (YYYY-MM-DD HH:MM)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPeriodListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List operational periods",
		RunE: func(cmd *cobra.Command, args []string) error {
			periods, err := app.Periods.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(periods) == 0 {
				printf(cmd, "No operational periods found.\n")
				return nil
			}
			// The current period is only marked when it resolves cleanly.
			current, _ := periodFromFlags(cmd, app)
			writeOut(cmd, formatter.FormatPeriodList(periods, current))
			return nil
		},
	}
}

// periodArg resolves an optional positional period, falling back to the
// flags when none is given.
func periodArg(cmd *cobra.Command, app *App, args []string) (string, error) {
	if len(args) > 0 {
		return resolvePeriodID(cmd.Context(), app, args[0])
	}
	return periodFromFlags(cmd, app)
}

func newPeriodShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [PERIOD]",
		Short: "Show period details",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := periodArg(cmd, app, args)
			if err != nil {
				return err
			}
			p, err := app.Periods.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			writeOut(cmd, formatter.FormatPeriod(p))
			return nil
		},
	}
}

func newPeriodRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename PERIOD NAME",
		Short: "Rename a period",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePeriodID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Periods.Rename(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			printf(cmd, "Renamed period to %s\n", args[1])
			return nil
		},
	}
}

func newPeriodDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete PERIOD",
		Short: "Delete a period and all of its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePeriodID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Periods.Delete(cmd.Context(), id); err != nil {
				return err
			}
			printf(cmd, "Deleted period %s\n", id)
			return nil
		},
	}
}

func newPeriodHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history [PERIOD]",
		Short: "List saved revisions of a period's data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := periodArg(cmd, app, args)
			if err != nil {
				return err
			}
			revs, err := app.Periods.History(cmd.Context(), id)
			if err != nil {
				return err
			}
			if len(revs) == 0 {
				printf(cmd, "No saved revisions yet.\n")
				return nil
			}
			writeOut(cmd, formatter.FormatHistory(revs))
			return nil
		},
	}
}

func newPeriodRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore REVISION",
		Short: "Save an earlier revision as the newest one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rev, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid revision %q: %w", args[0], err)
			}
			id, err := periodFromFlags(cmd, app)
			if err != nil {
				return err
			}
			if err := app.Periods.Restore(cmd.Context(), id, rev); err != nil {
				return err
			}
			printf(cmd, "Restored revision %d\n", rev)
			return nil
		},
	}
}
