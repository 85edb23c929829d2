package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/dropcore/engine/effects"
)

// formatLoc is the compact position shown in the status bar.
func formatLoc(x, y, z float64) string {
	return fmt.Sprintf("%g,%g,%g", x, y, z)
}

// renderStatusBar produces a full-width inverted status line showing the
// player's position, the held item, the rule count and the turn.
func (m Model) renderStatusBar() string {
	e := m.engine

	left := fmt.Sprintf(" %s @ %s", e.Player, e.WorldName)
	hand := ""
	if p, ok := e.World.Player(e.Player); ok {
		left = fmt.Sprintf(" %s @ %s %s", p.Name, formatLoc(p.Loc.X, p.Loc.Y, p.Loc.Z), p.Loc.World)
		if p.Hand.Kind != "" {
			hand = effects.Describe(p.Hand)
		}
	}

	right := fmt.Sprintf("Rules: %d | T:%d ", e.Rules().Len(), e.Turn)
	if m.cmds.Trace {
		right = "trace | " + right
	}

	// Show the held item if it fits.
	if hand != "" {
		candidate := fmt.Sprintf(" | Hand: %s", hand)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+lipgloss.Width(right)+2 < m.width {
			left += candidate
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
