package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/jjimmyk/planningp/internal/phase"
	"github.com/spf13/cobra"
)

// resolvePeriodID accepts a full id, a case-insensitive name or an id
// prefix, in that order of preference.
func resolvePeriodID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("period is required")
	}

	periods, err := app.Periods.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range periods {
		if p.ID == input {
			return p.ID, nil
		}
	}

	for _, p := range periods {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range periods {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", domain.NewNotFoundError("operational period", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("period prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// periodFromFlags picks the period for a workspace command: --period, then
// the configured default, then the only period when exactly one exists.
func periodFromFlags(cmd *cobra.Command, app *App) (string, error) {
	ctx := cmd.Context()
	input, _ := cmd.Flags().GetString("period")
	if input == "" {
		input = app.DefaultPeriod
	}
	if input != "" {
		return resolvePeriodID(ctx, app, input)
	}

	periods, err := app.Periods.List(ctx)
	if err != nil {
		return "", err
	}
	switch len(periods) {
	case 0:
		return "", fmt.Errorf("no operational periods yet; create one with 'planningp period create --name NAME'")
	case 1:
		return periods[0].ID, nil
	default:
		return "", fmt.Errorf("%d periods exist; choose one with --period or PLANNINGP_PERIOD", len(periods))
	}
}

// resolvePhase accepts a phase id or its 1-based position in the cycle.
func resolvePhase(input string) (domain.PhaseID, error) {
	ordered := phase.Ordered()
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(ordered) {
			return "", domain.NewValidationError("phase", fmt.Sprintf("number must be between 1 and %d", len(ordered)))
		}
		return ordered[n-1].ID, nil
	}
	id := domain.PhaseID(strings.ToLower(strings.TrimSpace(input)))
	if !phase.Known(id) {
		return "", domain.NewValidationError("phase", fmt.Sprintf("%q is not a Planning P phase (see 'planningp phase list')", input))
	}
	return id, nil
}
