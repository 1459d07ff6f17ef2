package render

import "github.com/charmbracelet/lipgloss"

// Color palette, shared with the eww widget export.
var (
	ColorVerbatim = lipgloss.Color("#c3e88d")
	ColorLink     = lipgloss.Color("#ff5370")
	ColorMuted    = lipgloss.Color("#6B7280")
)

// Span styles.
var (
	headingStyle = lipgloss.NewStyle().Bold(true)

	verbatimStyle = lipgloss.NewStyle().Foreground(ColorVerbatim)

	underlineStyle = lipgloss.NewStyle().Underline(true)

	crossedStyle = lipgloss.NewStyle().Strikethrough(true)

	boldStyle = lipgloss.NewStyle().Bold(true)

	italicStyle = lipgloss.NewStyle().Italic(true)

	linkStyle = lipgloss.NewStyle().
			Underline(true).
			UnderlineSpaces(false).
			Foreground(ColorLink)

	extraStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)
