package cli

import (
	"context"

	"github.com/jjimmyk/planningp/internal/cli/formatter"
	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/service"
	"github.com/spf13/cobra"
)

func newObjectiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "objective",
		Aliases: []string{"obj"},
		Short:   "Edit work objectives",
	}

	var name, desc string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a work objective",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				o, err := ws.Hierarchy().AddObjective(ctx, name, desc)
				if err != nil {
					return err
				}
				printf(cmd, "Added objective %s [%s]\n", o.Name, o.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "Objective name")
	add.Flags().StringVar(&desc, "description", "", "Description")
	_ = add.MarkFlagRequired("name")

	cmd.AddCommand(
		add,
		&cobra.Command{
			Use:   "set ID FIELD VALUE",
			Short: "Set name or description",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.Hierarchy().UpdateObjective(ctx, args[0], args[1], args[2])
				})
			},
		},
		&cobra.Command{
			Use:     "rm ID",
			Aliases: []string{"delete"},
			Short:   "Delete an objective with its strategies and tactics",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.Hierarchy().DeleteObjective(ctx, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "toggle ID",
			Short: "Fold or unfold an objective in the tree",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.Hierarchy().ToggleExpanded(ctx, service.LevelObjective, args[0])
				})
			},
		},
	)

	return cmd
}

func newStrategyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Edit strategies under an objective",
	}

	var objective, name, desc string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a strategy to an objective",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				s, err := ws.Hierarchy().AddStrategy(ctx, objective, name, desc)
				if err != nil {
					return err
				}
				printf(cmd, "Added strategy %s [%s]\n", s.Name, s.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&objective, "objective", "", "Parent objective id")
	add.Flags().StringVar(&name, "name", "", "Strategy name")
	add.Flags().StringVar(&desc, "description", "", "Description")
	_ = add.MarkFlagRequired("objective")
	_ = add.MarkFlagRequired("name")

	cmd.AddCommand(
		add,
		&cobra.Command{
			Use:   "set OBJECTIVE ID FIELD VALUE",
			Short: "Set name or description",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.Hierarchy().UpdateStrategy(ctx, args[0], args[1], args[2], args[3])
				})
			},
		},
		&cobra.Command{
			Use:     "rm OBJECTIVE ID",
			Aliases: []string{"delete"},
			Short:   "Delete a strategy with its tactics",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.Hierarchy().DeleteStrategy(ctx, args[0], args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "toggle OBJECTIVE ID",
			Short: "Fold or unfold a strategy in the tree",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.Hierarchy().ToggleExpanded(ctx, service.LevelStrategy, args[0], args[1])
				})
			},
		},
	)

	return cmd
}

func newTacticCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tactic",
		Short: "Edit tactics under a strategy",
	}

	var objective, strategy, name, desc, assignedTo, priority string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a tactic to a strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				t, err := ws.Hierarchy().AddTactic(ctx, objective, strategy, name, desc, assignedTo, domain.Priority(priority))
				if err != nil {
					return err
				}
				printf(cmd, "Added tactic %s [%s]\n", t.Name, t.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&objective, "objective", "", "Objective id")
	add.Flags().StringVar(&strategy, "strategy", "", "Strategy id")
	add.Flags().StringVar(&name, "name", "", "Tactic name")
	add.Flags().StringVar(&desc, "description", "", "Description")
	add.Flags().StringVar(&assignedTo, "assigned-to", "", "Resource or unit the tactic is assigned to")
	add.Flags().StringVar(&priority, "priority", string(domain.PriorityMedium), "High, Medium or Low")
	_ = add.MarkFlagRequired("objective")
	_ = add.MarkFlagRequired("strategy")
	_ = add.MarkFlagRequired("name")

	cmd.AddCommand(
		add,
		&cobra.Command{
			Use:   "set OBJECTIVE STRATEGY ID FIELD VALUE",
			Short: "Set name, description, assignedTo or priority",
			Args:  cobra.ExactArgs(5),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.Hierarchy().UpdateTactic(ctx, args[0], args[1], args[2], args[3], args[4])
				})
			},
		},
		&cobra.Command{
			Use:     "rm OBJECTIVE STRATEGY ID",
			Aliases: []string{"delete"},
			Short:   "Delete a tactic",
			Args:    cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.Hierarchy().DeleteTactic(ctx, args[0], args[1], args[2])
				})
			},
		},
	)

	return cmd
}

func newTreeCmd(app *App) *cobra.Command {
	var folded, byPriority bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the objective → strategy → tactic breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				h := ws.Hierarchy()
				if byPriority {
					writeOut(cmd, formatter.FormatTacticsByPriority(h.TacticsByPriority()))
					return nil
				}
				writeOut(cmd, formatter.FormatHierarchy(h.Objectives(), folded))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&folded, "folded", false, "Hide children of folded objectives and strategies")
	cmd.Flags().BoolVar(&byPriority, "by-priority", false, "List tactics by priority instead")

	return cmd
}
