package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jjimmyk/planningp/internal/export"
	"github.com/jjimmyk/planningp/internal/service"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var form, format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export ICS form snapshots as YAML or JSON",
		Long: "Export the period's data as ICS form snapshots.\n" +
			"Forms: ics201, ics202, ics204, ics215, ics215a, or all.",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := export.NewEncoder(format)
			if err != nil {
				return err
			}
			id, err := periodFromFlags(cmd, app)
			if err != nil {
				return err
			}
			p, err := app.Periods.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				meta := export.Meta{IncidentName: p.IncidentName, PeriodName: p.Name, GeneratedAt: app.now()}
				bag := ws.Bag()

				var docs []export.Document
				if form == "all" {
					all, err := export.All(bag, meta)
					if err != nil {
						return err
					}
					docs = all
				} else {
					f, err := export.ParseForm(form)
					if err != nil {
						return err
					}
					d, err := export.Snapshot(f, bag, meta)
					if err != nil {
						return err
					}
					docs = []export.Document{d}
				}

				var w io.Writer = cmd.OutOrStdout()
				if out != "" {
					file, err := os.Create(out)
					if err != nil {
						return fmt.Errorf("export: %w", err)
					}
					defer file.Close()
					w = file
				}
				if err := enc.Encode(w, docs...); err != nil {
					return err
				}
				if out != "" {
					printf(cmd, "Wrote %d form(s) to %s\n", len(docs), out)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&form, "form", "all", "Form to export")
	cmd.Flags().StringVar(&format, "format", "yaml", "yaml or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to file instead of stdout")

	return cmd
}
