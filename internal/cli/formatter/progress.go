package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders done out of total as a bar like [████░░░░] 2/5.
// The bar goes green once everything is done and yellow when started.
func RenderProgress(done, total, width int) string {
	if width < 2 {
		width = 2
	}
	done = max(min(done, total), 0)

	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleDim
	switch {
	case total > 0 && done == total:
		style = StyleGreen
	case done > 0:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), done, total)
}
