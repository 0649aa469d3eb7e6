package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// Table is an aligned text table. Widths are measured on visible text so
// styled cells line up. Footer, when set, is drawn below a second rule.
type Table struct {
	Headers []string
	Rows    [][]string
	Footer  []string
	// RightAlign lists column indexes whose cells are padded on the left.
	RightAlign map[int]bool
}

// RenderTable renders headers and rows with no footer.
func RenderTable(headers []string, rows [][]string) string {
	return Table{Headers: headers, Rows: rows}.Render()
}

func (t Table) Render() string {
	cols := len(t.Headers)
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}
	measure(t.Footer)

	var b strings.Builder
	styled := make([]string, cols)
	for i, h := range t.Headers {
		styled[i] = StyleHeader.Render(h)
	}
	t.writeRow(&b, styled, widths)
	t.writeRule(&b, widths)
	for _, row := range t.Rows {
		t.writeRow(&b, row, widths)
	}
	if len(t.Footer) > 0 {
		t.writeRule(&b, widths)
		bold := make([]string, len(t.Footer))
		for i, c := range t.Footer {
			bold[i] = StyleBold.Render(c)
		}
		t.writeRow(&b, bold, widths)
	}
	return b.String()
}

func (t Table) writeRow(b *strings.Builder, row []string, widths []int) {
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		pad := max(w-lipgloss.Width(cell), 0)
		last := i == len(widths)-1
		switch {
		case t.RightAlign[i]:
			b.WriteString(strings.Repeat(" ", pad) + cell)
		case last:
			b.WriteString(cell)
		default:
			b.WriteString(cell + strings.Repeat(" ", pad))
		}
		if !last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}

func (t Table) writeRule(b *strings.Builder, widths []int) {
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}
