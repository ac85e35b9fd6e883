// Package styles provides centralized Lipgloss styling for the sift UI.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorBorder   = lipgloss.Color("240") // Gray - all borders
	ColorAccent   = lipgloss.Color("6")   // Cyan - titles, highlights
	ColorMuted    = lipgloss.Color("8")   // Dark gray - secondary text
	ColorSuccess  = lipgloss.Color("10")  // Green - success messages
	ColorError    = lipgloss.Color("9")   // Red - error messages
	ColorWarning  = lipgloss.Color("11")  // Yellow - warnings
	ColorInsert   = lipgloss.Color("10")  // Green - insert mode badge
	ColorVisual   = lipgloss.Color("13")  // Magenta - visual mode badge
	ColorPending  = lipgloss.Color("11")  // Yellow - operator pending badge
	ColorNullCell = lipgloss.Color("8")   // Dark gray - NULL cells

	ColorSelectedFg = lipgloss.Color("229") // Light yellow text
	ColorSelectedBg = lipgloss.Color("57")  // Purple background
)

// Pane styles
var (
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder)

	PaneFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorAccent)

	PaneTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)
)

// Table styles
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorSelectedFg).
				Background(ColorSelectedBg)

	TableCellStyle = lipgloss.NewStyle()

	TableNullStyle = lipgloss.NewStyle().
			Foreground(ColorNullCell)
)

// Editor styles
var (
	CursorStyle = lipgloss.NewStyle().Reverse(true)

	SelectionStyle = lipgloss.NewStyle().
			Foreground(ColorSelectedFg).
			Background(ColorSelectedBg)

	LineNumberStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusTargetStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	StatusToastStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	FooterHintStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// ModeBadge returns the style for an editor mode indicator.
func ModeBadge(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(color).
		Padding(0, 1).
		Bold(true)
}
