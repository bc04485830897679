package monitor

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Dashboard color palette - synthwave
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent    = lipgloss.Color("#FF2E97")
	ColorAccentDim = lipgloss.Color("#BF40FF")

	ColorGraph = lipgloss.Color("#00FFFF")
)

// Thresholds for metric severity levels
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

// Theme is the renderer's palette and styles. It is built once at startup
// and passed by value; nothing mutates it afterwards.
type Theme struct {
	Accent    lipgloss.Color
	AccentDim lipgloss.Color
	Border    lipgloss.Color
	Healthy   lipgloss.Color
	Warning   lipgloss.Color
	Critical  lipgloss.Color
	Text      lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Graph     lipgloss.Color
	Surface   lipgloss.Color
	Backdrop  lipgloss.Color

	Header    lipgloss.Style
	Footer    lipgloss.Style
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Paused    lipgloss.Style
	Error     lipgloss.Style
	HelpBox   lipgloss.Style
	Overlay   lipgloss.Style

	// profile drives the bubbles progress bars, which color through termenv
	// rather than lipgloss.
	profile termenv.Profile
}

// NewTheme builds the dashboard theme for a color profile. termenv.Ascii
// renders without color.
func NewTheme(profile termenv.Profile) Theme {
	t := Theme{
		Accent:    ColorAccent,
		AccentDim: ColorAccentDim,
		Border:    ColorBorder,
		Healthy:   ColorHealthy,
		Warning:   ColorWarning,
		Critical:  ColorCritical,
		Text:      ColorTextPrimary,
		Secondary: ColorTextSecondary,
		Muted:     ColorTextMuted,
		Graph:     ColorGraph,
		Surface:   ColorSurfaceBg,
		Backdrop:  ColorDarkBg,
		profile:   profile,
	}

	t.Header = lipgloss.NewStyle().Foreground(t.Text).Background(t.Surface).Bold(true).Padding(0, 1)
	t.Footer = lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1)
	t.Title = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	t.Label = lipgloss.NewStyle().Foreground(t.Secondary)
	t.Value = lipgloss.NewStyle().Foreground(t.Text)
	t.Tab = lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1)
	t.TabActive = lipgloss.NewStyle().Foreground(t.Backdrop).Background(t.Accent).Bold(true).Padding(0, 1)
	t.Paused = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	t.Error = lipgloss.NewStyle().Foreground(t.Critical)
	t.HelpBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Background(t.Surface).
		Padding(1, 2)
	t.Overlay = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.AccentDim).
		Padding(0, 1)

	return t
}

// Profile returns the color profile the theme was built for.
func (t Theme) Profile() termenv.Profile {
	return t.profile
}

// MetricColor returns the severity color for a percentage:
// healthy below 70%, warning below 90%, critical above.
func (t Theme) MetricColor(percent float64) lipgloss.Color {
	switch {
	case percent >= CriticalThreshold:
		return t.Critical
	case percent >= WarningThreshold:
		return t.Warning
	default:
		return t.Healthy
	}
}

// MetricStyle returns a foreground style in the percentage's severity color.
func (t Theme) MetricStyle(percent float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.MetricColor(percent))
}

// ProgressBar renders a static usage bar colored by severity.
func (t Theme) ProgressBar(width int, percent float64) string {
	width = max(width, 1)
	percent = clampPercent(percent)
	bar := progress.New(
		progress.WithWidth(width),
		progress.WithoutPercentage(),
		progress.WithFillCharacters('▰', '▱'),
		progress.WithSolidFill(string(t.MetricColor(percent))),
		progress.WithColorProfile(t.profile),
	)
	bar.EmptyColor = string(t.Muted)
	return bar.ViewAs(percent / 100)
}

// SectionHeader renders the top border of a box with the title on the left
// and a value on the right.
// Format: ╭─ Title ────────────────────────── Value ╮
func (t Theme) SectionHeader(title, value string, width int) string {
	width = max(width, 10)

	leftWidth := 3 + lipgloss.Width(title) + 1
	rightWidth := 1 + lipgloss.Width(value) + 2
	fillWidth := max(width-leftWidth-rightWidth, 1)

	border := lipgloss.NewStyle().Foreground(t.Border)
	valueStyle := lipgloss.NewStyle().Foreground(t.Graph).Bold(true)

	return border.Render("╭─ ") +
		t.Title.Render(title) +
		border.Render(" "+strings.Repeat("─", fillWidth)+" ") +
		valueStyle.Render(value) +
		border.Render(" ╮")
}

// SectionFooter renders the bottom border of a box.
func (t Theme) SectionFooter(width int) string {
	width = max(width, 2)
	return lipgloss.NewStyle().Foreground(t.Border).Render("╰" + strings.Repeat("─", width-2) + "╯")
}

// SectionLine renders one content line padded between the box borders.
// Content wider than the box is truncated.
func (t Theme) SectionLine(content string, width int) string {
	width = max(width, 4)
	inner := width - 4

	if lipgloss.Width(content) > inner {
		content = lipgloss.NewStyle().MaxWidth(inner).Render(content)
	}
	padding := max(inner-lipgloss.Width(content), 0)

	border := lipgloss.NewStyle().Foreground(t.Border)
	return border.Render("│") + " " + content + strings.Repeat(" ", padding) + " " + border.Render("│")
}

// Section renders a complete box around lines.
func (t Theme) Section(title, value string, lines []string, width int) string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, t.SectionHeader(title, value, width))
	for _, l := range lines {
		out = append(out, t.SectionLine(l, width))
	}
	out = append(out, t.SectionFooter(width))
	return strings.Join(out, "\n")
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
