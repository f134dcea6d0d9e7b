package ui

import "github.com/charmbracelet/lipgloss"

// Color palette. Single accent color for a distinctive look.
const (
	ColorCyan     = "51"  // Primary accent, concept names
	ColorCyanDim  = "37"  // Dimmed accent, section labels
	ColorWhite    = "255" // Headers, important text
	ColorGray     = "245" // Secondary text, locations
	ColorDarkGray = "238" // Separators
	ColorRed      = "196" // Errors
	ColorYellow   = "220" // Warnings
)

// Styles holds all styles for terminal rendering.
type Styles struct {
	Header   lipgloss.Style
	Concept  lipgloss.Style
	Section  lipgloss.Style
	Location lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Dim      lipgloss.Style
	Label    lipgloss.Style
}

// DefaultStyles returns styled components for terminal output.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Concept:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorCyan)),
		Section:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCyanDim)),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCyan)),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
	}
}

// NoColorStyles returns unstyled components for plain mode.
func NoColorStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle(),
		Concept:  lipgloss.NewStyle(),
		Section:  lipgloss.NewStyle(),
		Location: lipgloss.NewStyle(),
		Success:  lipgloss.NewStyle(),
		Warning:  lipgloss.NewStyle(),
		Error:    lipgloss.NewStyle(),
		Dim:      lipgloss.NewStyle(),
		Label:    lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
