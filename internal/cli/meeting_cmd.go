package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jjimmyk/planningp/internal/cli/formatter"
	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/service"
	"github.com/spf13/cobra"
)

func newMeetingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "meeting",
		Aliases: []string{"mtg"},
		Short:   "Schedule and list meetings",
	}

	var upcoming bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List meetings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				b := ws.Meetings()
				meetings := b.Meetings()
				if upcoming {
					meetings = b.Upcoming(app.now())
				}
				writeOut(cmd, formatter.FormatMeetings(meetings, app.now()))
				return nil
			})
		},
	}
	list.Flags().BoolVar(&upcoming, "upcoming", false, "Only meetings that have not started, soonest first")

	cmd.AddCommand(
		newMeetingAddCmd(app),
		list,
		&cobra.Command{
			Use:     "rm ID",
			Aliases: []string{"delete", "cancel"},
			Short:   "Remove a meeting",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
					return ws.Meetings().RemoveMeeting(ctx, args[0])
				})
			},
		},
	)

	return cmd
}

func newMeetingAddCmd(app *App) *cobra.Command {
	var (
		in          = newMeetingInput(app.now())
		virtual     bool
		interactive bool
		repeat      string
		count       int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a meeting",
		Long: "Schedule a meeting from flags or, with --interactive, from a dialog.\n" +
			"With --repeat, a five-field cron schedule (e.g. \"0 7 * * *\") creates\n" +
			"--count occurrences starting after now; --date is ignored.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				if !app.IsInteractive {
					return errNotInteractive
				}
				if err := meetingForm(in).RunWithContext(cmd.Context()); err != nil {
					return fmt.Errorf("meeting dialog: %w", err)
				}
			} else {
				in.InPerson = !virtual
				if domain.IsBlank(in.Name) {
					return fmt.Errorf("--name is required (or use --interactive)")
				}
			}
			m := in.Meeting()

			return withWorkspace(cmd, app, func(ctx context.Context, ws *service.Workspace) error {
				if repeat != "" {
					created, err := ws.Meetings().AddRecurring(ctx, m, repeat, app.now(), count)
					if err != nil {
						return err
					}
					dates := make([]string, len(created))
					for i, c := range created {
						dates[i] = c.Date + " " + c.StartTime
					}
					printf(cmd, "Scheduled %d × %s: %s\n", len(created), m.Name, strings.Join(dates, ", "))
					return nil
				}
				created, err := ws.Meetings().AddMeeting(ctx, m)
				if err != nil {
					return err
				}
				printf(cmd, "Scheduled %s on %s at %s [%s]\n", created.Name, created.Date, created.StartTime, created.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Meeting name")
	cmd.Flags().StringVar(&in.Type, "type", in.Type, "Meeting type")
	cmd.Flags().StringVar(&in.Date, "date", in.Date, "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.Start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&in.End, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&in.Location, "location", "", "Location")
	cmd.Flags().BoolVar(&virtual, "virtual", false, "Held online")
	cmd.Flags().StringVar(&in.VirtualLink, "link", "", "Virtual meeting link")
	cmd.Flags().StringVar(&in.Attendees, "attendees", "", "Comma-separated attendees")
	cmd.Flags().StringVar(&in.Agenda, "agenda", "", "Agenda text")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the meeting in a dialog")
	cmd.Flags().StringVar(&repeat, "repeat", "", "Cron schedule for recurring meetings")
	cmd.Flags().IntVar(&count, "count", 1, "Occurrences to create with --repeat")

	return cmd
}
