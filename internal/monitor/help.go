package monitor

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// newHelp builds the help renderer in the theme's colors.
func newHelp(th Theme) help.Model {
	h := help.New()
	h.ShortSeparator = " • "
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(th.Text).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(th.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(th.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(th.Text).Bold(true)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(th.Secondary)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(th.Border)
	return h
}

// renderHelpOverlay renders a centered box with every key binding.
func renderHelpOverlay(h help.Model, th Theme, width, height int) string {
	var lines []string
	lines = append(lines, th.Title.Render("Keyboard Shortcuts"))
	lines = append(lines, "")
	lines = append(lines, h.FullHelpView(keys.FullHelp()))
	lines = append(lines, "")
	lines = append(lines, th.Label.Render("Press ? or esc to close"))

	box := th.HelpBox.Render(strings.Join(lines, "\n"))

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(th.Backdrop),
	)
}
