package service

import (
	"sort"
	"strings"

	"github.com/jjimmyk/planningp/internal/domain"
)

var validSortKeys = map[string]bool{
	domain.SortByAction: true,
	domain.SortByStatus: true,
	domain.SortByTime:   true,
}

// FilterActions applies search, then the status filter, then the sort. It
// returns a new slice and leaves actions untouched.
func FilterActions(actions []domain.Action, q domain.ActionQuery) []domain.Action {
	out := make([]domain.Action, 0, len(actions))
	for _, a := range actions {
		if q.Search != "" && !actionMatches(a, q.Search) {
			continue
		}
		if q.StatusFilter != "" && q.StatusFilter != domain.StatusFilterAll && string(a.Status) != q.StatusFilter {
			continue
		}
		out = append(out, a)
	}

	key := sortKey(q.SortBy)
	if key == nil {
		return out
	}
	desc := q.SortOrder == domain.SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		a, b := key(out[i]), key(out[j])
		if desc {
			return a > b
		}
		return a < b
	})
	return out
}

func sortKey(by string) func(domain.Action) string {
	switch by {
	case domain.SortByAction:
		return func(a domain.Action) string { return strings.ToLower(a.Action) }
	case domain.SortByStatus:
		return func(a domain.Action) string { return strings.ToLower(string(a.Status)) }
	case domain.SortByTime:
		return func(a domain.Action) string { return strings.ToLower(a.Time) }
	}
	return nil
}

func actionMatches(a domain.Action, search string) bool {
	return domain.ContainsFold(a.Action, search) || domain.ContainsFold(a.Time, search)
}

func objectiveMatches(o domain.ResponseObjective, search string) bool {
	if domain.ContainsFold(o.Objective, search) {
		return true
	}
	for _, a := range o.Actions {
		if actionMatches(a, search) {
			return true
		}
	}
	return false
}
