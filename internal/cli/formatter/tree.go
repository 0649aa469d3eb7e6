package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jjimmyk/planningp/internal/domain"
)

// TreeItem is one line of a tree. Items are given in depth-first order.
type TreeItem struct {
	Title  string
	ID     string // shown dimmed after the title when set
	Level  int
	IsLast bool
	// Folded marks a node whose children are hidden.
	Folded bool
	Badge  string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree draws items with box connectors and right-aligns badges.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	widest := 0
	// lastAt[l] is whether the most recent item at level l closed its group.
	var lastAt []bool
	for idx, item := range items {
		for len(lastAt) <= item.Level {
			lastAt = append(lastAt, false)
		}
		lastAt[item.Level] = item.IsLast

		var prefix strings.Builder
		for l := 1; l < item.Level; l++ {
			if lastAt[l] {
				prefix.WriteString(treeBlank)
			} else {
				prefix.WriteString(treePipe)
			}
		}
		if item.Level > 0 {
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		title := item.Title
		if item.Level == 0 {
			title = StyleBold.Render(title)
		}
		if item.Folded {
			title = StyleDim.Render("▸ ") + title
		}
		if item.ID != "" {
			title += " " + StyleDim.Render("("+item.ID+")")
		}
		contents[idx] = prefix.String() + title
		if w := lipgloss.Width(contents[idx]); w > widest {
			widest = w
		}
	}

	var b strings.Builder
	for idx, item := range items {
		b.WriteString(contents[idx])
		if item.Badge != "" {
			pad := widest - lipgloss.Width(contents[idx])
			b.WriteString(strings.Repeat(" ", pad) + "  " + item.Badge)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HierarchyTree flattens objectives into tree items. With respectFolding,
// children of objectives and strategies that are not Expanded are hidden.
func HierarchyTree(objectives []domain.WorkObjective, respectFolding bool) []TreeItem {
	var items []TreeItem
	for oi, o := range objectives {
		showStrategies := !respectFolding || o.Expanded
		items = append(items, TreeItem{
			Title:  o.Name,
			ID:     o.ID,
			IsLast: oi == len(objectives)-1,
			Folded: !showStrategies && len(o.Strategies) > 0,
			Badge:  StyleBlue.Render(fmt.Sprintf("[ %d strategies ]", len(o.Strategies))),
		})
		if !showStrategies {
			continue
		}
		for si, s := range o.Strategies {
			showTactics := !respectFolding || s.Expanded
			items = append(items, TreeItem{
				Title:  s.Name,
				ID:     s.ID,
				Level:  1,
				IsLast: si == len(o.Strategies)-1,
				Folded: !showTactics && len(s.Tactics) > 0,
			})
			if !showTactics {
				continue
			}
			for ti, t := range s.Tactics {
				title := t.Name
				if t.AssignedTo != "" {
					title += StyleDim.Render(" → " + t.AssignedTo)
				}
				items = append(items, TreeItem{
					Title:  title,
					ID:     t.ID,
					Level:  2,
					IsLast: ti == len(s.Tactics)-1,
					Badge:  PriorityBadge(t.Priority),
				})
			}
		}
	}
	return items
}
