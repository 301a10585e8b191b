package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
	overBlock   = "▓"
)

// RenderLoadBar renders a day's load like [██████░░] 6h/8h. An over-capacity
// day fills the bar with overBlock in red.
func RenderLoadBar(used, capacity float64, width int, over bool) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if capacity > 0 {
		pct = used / capacity
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	filled := int(pct*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if used > 0 && filled == 0 {
		filled = 1
	}

	block := filledBlock
	if over {
		block = overBlock
	}
	bar := strings.Repeat(block, filled) + strings.Repeat(emptyBlock, width-filled)
	style := LoadColor(used, capacity, over)
	return fmt.Sprintf("[%s] %s/%s", style.Render(bar), FormatHours(used), FormatHours(capacity))
}
