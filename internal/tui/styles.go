// Package tui implements terminal rendering for rask: the shared lipgloss
// palette used by the CLI commands and the full-screen dashboard.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorCyan    = lipgloss.Color("86")
	ColorGreen   = lipgloss.Color("78")
	ColorYellow  = lipgloss.Color("221")
	ColorRed     = lipgloss.Color("196")
	ColorMagenta = lipgloss.Color("213")
	ColorBlue    = lipgloss.Color("111")
	ColorGray    = lipgloss.Color("245")
	ColorDimGray = lipgloss.Color("239")
)

// Priority colors
var PriorityColors = map[string]lipgloss.Color{
	"critical": ColorRed,
	"high":     ColorMagenta,
	"medium":   ColorYellow,
	"low":      ColorGray,
}

// Status styles
var (
	StatusPending   = lipgloss.NewStyle().Foreground(ColorYellow)
	StatusCompleted = lipgloss.NewStyle().Foreground(ColorGreen)
	StatusBlocked   = lipgloss.NewStyle().Foreground(ColorRed)
	StatusReady     = lipgloss.NewStyle().Foreground(ColorCyan)
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	BoldStyle = lipgloss.NewStyle().Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	HelpTextStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)

// Status indicators
const (
	IndicatorCompleted = "✓"
	IndicatorPending   = "○"
	IndicatorReady     = "●"
	IndicatorBlocked   = "!"
	IndicatorActive    = "◉"
)

// Progress bar characters
const (
	ProgressFilled = "█"
	ProgressEmpty  = "░"
)

// RenderProgressBar renders a progress bar for the given ratio in [0,1].
func RenderProgressBar(ratio float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := ""
	for i := 0; i < filled; i++ {
		bar += ProgressFilled
	}
	for i := filled; i < width; i++ {
		bar += ProgressEmpty
	}
	return bar
}

// GetPriorityStyle returns the style for a priority name.
func GetPriorityStyle(priority string) lipgloss.Style {
	color, ok := PriorityColors[priority]
	if !ok {
		color = ColorGray
	}
	return lipgloss.NewStyle().Foreground(color)
}
