package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleDrop = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	styleDropItem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleNothing = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	styleListingLabel = lipgloss.NewStyle().
				Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleWarning = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindText lineKind = iota
	kindDrop
	kindNothing
	kindListing
	kindWarning
	kindError
	kindTrace
)

// listingPrefixes start the summary lines of "look".
var listingPrefixes = []string{"Blocks: ", "Creatures: ", "Here: ", "Holding "}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "Dropped "), strings.HasPrefix(line, "Spilled "):
		return kindDrop
	case strings.HasPrefix(line, "Nothing "), strings.HasSuffix(line, " never appears."):
		return kindNothing
	case strings.HasPrefix(line, "Warning:"):
		return kindWarning
	case strings.HasPrefix(line, "I don't know"),
		strings.HasPrefix(line, "There is no"),
		strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "Unknown "),
		strings.Contains(line, " is not a "):
		return kindError
	}
	for _, p := range listingPrefixes {
		if strings.HasPrefix(line, p) {
			return kindListing
		}
	}
	return kindText
}

// styledDrop renders "Dropped 2 x Flint." with the item part bold.
func styledDrop(line string) string {
	verb, rest, ok := strings.Cut(line, " ")
	if !ok {
		return styleDrop.Render(line)
	}
	return styleDrop.Render(verb+" ") + styleDropItem.Render(rest)
}

// styledListing renders "Blocks: a, b." with the label bold.
func styledListing(line string) string {
	for _, p := range listingPrefixes {
		if strings.HasPrefix(line, p) {
			return styleListingLabel.Render(p) + styleText.Render(line[len(p):])
		}
	}
	return styleText.Render(line)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
