package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// CoilfallTheme contains the configurable visual styles for the menus
// and scoreboard screens. The board itself is drawn through the Screen
// buffer and uses the 16-color palette from the core package.
type CoilfallTheme struct {
	// Menu styles
	MenuTitle       lipgloss.Style
	MenuDescription lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuHint        lipgloss.Style

	// Footer styles
	HUDControls lipgloss.Style

	// Scoreboard styles
	BoardTitle    lipgloss.Style
	TableBorder   lipgloss.Color
	TableSelected lipgloss.Style
	TabNormal     lipgloss.Style
	TabActive     lipgloss.Style
	EmptyNotice   lipgloss.Style
	HelpBar       lipgloss.Style
}

// DefaultCoilfallTheme returns the default visual theme.
func DefaultCoilfallTheme() CoilfallTheme {
	return CoilfallTheme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuHint:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),

		HUDControls: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		BoardTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		TableBorder:   lipgloss.Color("240"),
		TableSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		TabNormal:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		TabActive:     lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true).Padding(0, 1),
		EmptyNotice:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
		HelpBar:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// NeonCoilfallTheme returns a high-saturation variant.
func NeonCoilfallTheme() CoilfallTheme {
	theme := DefaultCoilfallTheme()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("87")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("199")).Bold(true)
	theme.BoardTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("118")).Bold(true)
	theme.TableSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("118"))
	theme.TabActive = lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("199")).Bold(true).Padding(0, 1)
	return theme
}

// PastelCoilfallTheme returns a softer variant.
func PastelCoilfallTheme() CoilfallTheme {
	theme := DefaultCoilfallTheme()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("123")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	theme.BoardTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("183")).Bold(true)
	theme.TableSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("236")).Background(lipgloss.Color("183"))
	theme.TabActive = lipgloss.NewStyle().Foreground(lipgloss.Color("236")).Background(lipgloss.Color("157")).Bold(true).Padding(0, 1)
	return theme
}

// MonochromeCoilfallTheme returns a grayscale variant.
func MonochromeCoilfallTheme() CoilfallTheme {
	theme := DefaultCoilfallTheme()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuDescription = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	theme.MenuItemNormal = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.BoardTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.TableSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("250"))
	theme.TabActive = lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("250")).Bold(true).Padding(0, 1)
	return theme
}

// ThemeByName resolves a theme name from configuration.
// Unknown names fall back to the default theme.
func ThemeByName(name string) CoilfallTheme {
	switch name {
	case "neon":
		return NeonCoilfallTheme()
	case "pastel":
		return PastelCoilfallTheme()
	case "mono", "monochrome":
		return MonochromeCoilfallTheme()
	default:
		return DefaultCoilfallTheme()
	}
}

// Global theme variable (can be changed at runtime)
var coilfallTheme = DefaultCoilfallTheme()

// SetCoilfallTheme sets the global theme.
func SetCoilfallTheme(theme CoilfallTheme) {
	coilfallTheme = theme
}

// GetCoilfallTheme returns the current global theme.
func GetCoilfallTheme() CoilfallTheme {
	return coilfallTheme
}
