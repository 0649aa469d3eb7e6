package cli

import (
	"context"

	"github.com/jjimmyk/planningp/internal/cli/formatter"
	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// queryFlags binds the search/filter/sort flags of an action table to q.
func queryFlags(q *domain.ActionQuery) *pflag.FlagSet {
	fs := pflag.NewFlagSet("query", pflag.ContinueOnError)
	fs.StringVar(&q.Search, "search", "", "Case-insensitive text to match in action text or time")
	fs.StringVar(&q.StatusFilter, "status", "", "Current, Planned, Completed or all")
	fs.StringVar(&q.SortBy, "sort", "", "Sort by action, status or time (stored order when unset)")
	fs.StringVar(&q.SortOrder, "order", domain.SortAsc, "asc or desc")
	return fs
}

// queryChanged reports whether any query flag was given on the command line.
func queryChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"search", "status", "sort", "order"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func newResponseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "response",
		Aliases: []string{"resp"},
		Short:   "Edit ICS-201 response objectives and their actions",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List response objectives with their actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				writeOut(cmd, formatter.FormatResponseObjectives(ws.ResponseTable().GlobalFilterObjectives(search)))
				return nil
			})
		},
	}
	list.Flags().StringVar(&search, "search", "", "Keep objectives whose text or actions match")

	var (
		q    domain.ActionQuery
		save bool
	)
	actions := &cobra.Command{
		Use:   "actions OBJECTIVE",
		Short: "Search, filter and sort one objective's actions",
		Long: "Without query flags the query saved for the active phase is reused.\n" +
			"With --save the given query is stored for the active phase.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				t := ws.ResponseTable()
				query := q
				if !queryChanged(cmd) {
					if saved, ok := t.SavedQuery(ws.ActivePhase(), args[0]); ok {
						query = saved
					}
				} else if save {
					if err := t.SaveQuery(ctx, ws.ActivePhase(), args[0], query); err != nil {
						return err
					}
				}
				list, err := t.FilterAndSort(args[0], query)
				if err != nil {
					return err
				}
				writeOut(cmd, formatter.FormatActions(list))
				return nil
			})
		},
	}
	actions.Flags().AddFlagSet(queryFlags(&q))
	actions.Flags().BoolVar(&save, "save", false, "Remember this query for the active phase")

	cmd.AddCommand(
		list,
		actions,
		&cobra.Command{
			Use:   "add",
			Short: "Add a response objective with one blank action",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					o, err := ws.ResponseTable().AddObjective(ctx)
					if err != nil {
						return err
					}
					printf(cmd, "Added response objective [%s]\n", o.ID)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set OBJECTIVE FIELD VALUE",
			Short: "Set objective or time",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.ResponseTable().UpdateObjective(ctx, args[0], args[1], args[2])
				})
			},
		},
		&cobra.Command{
			Use:     "rm OBJECTIVE",
			Aliases: []string{"delete"},
			Short:   "Remove a response objective (the last one stays)",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.ResponseTable().RemoveObjective(ctx, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "add-action OBJECTIVE",
			Short: "Append a blank action",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					a, err := ws.ResponseTable().AddAction(ctx, args[0])
					if err != nil {
						return err
					}
					printf(cmd, "Added action [%s]\n", a.ID)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set-action OBJECTIVE ACTION FIELD VALUE",
			Short: "Set action, status or time",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.ResponseTable().UpdateAction(ctx, args[0], args[1], args[2], args[3])
				})
			},
		},
		&cobra.Command{
			Use:   "rm-action OBJECTIVE ACTION",
			Short: "Remove an action (the last one stays)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.ResponseTable().RemoveAction(ctx, args[0], args[1])
				})
			},
		},
	)

	return cmd
}
