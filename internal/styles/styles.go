// Package styles holds the small set of lipgloss styles used by
// internal/app's renderer glue: panel borders, the active-pane
// highlight, selection/status colors, and dialog chrome. Grounded on
// the teacher's internal/styles package, cut down from a multi-theme
// engine (named palettes, gradient borders, tab rainbow themes — none
// of which has a home in Bark, where theme/color is an explicitly
// out-of-scope collaborator) to a single built-in palette.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette is Bark's one built-in color set. A future theme collaborator
// could swap these out field-by-field; nothing in Bark does that yet.
type Palette struct {
	Border        lipgloss.Color
	ActiveBorder  lipgloss.Color
	Selection     lipgloss.Color
	Directory     lipgloss.Color
	Symlink       lipgloss.Color
	Executable    lipgloss.Color
	StatusBar     lipgloss.Color
	StatusBarText lipgloss.Color
	Error         lipgloss.Color
	GitModified   lipgloss.Color
	GitStaged     lipgloss.Color
	GitUntracked  lipgloss.Color
}

// Default is Bark's built-in palette.
var Default = Palette{
	Border:        lipgloss.Color("240"),
	ActiveBorder:  lipgloss.Color("39"),
	Selection:     lipgloss.Color("220"),
	Directory:     lipgloss.Color("39"),
	Symlink:       lipgloss.Color("51"),
	Executable:    lipgloss.Color("34"),
	StatusBar:     lipgloss.Color("235"),
	StatusBarText: lipgloss.Color("252"),
	Error:         lipgloss.Color("196"),
	GitModified:   lipgloss.Color("214"),
	GitStaged:     lipgloss.Color("34"),
	GitUntracked:  lipgloss.Color("244"),
}

// Styles bundles the derived lipgloss.Style values the renderer uses,
// built once from a Palette so callers don't recompute them per frame.
type Styles struct {
	PanelBorder       lipgloss.Style
	ActivePanelBorder lipgloss.Style
	Directory         lipgloss.Style
	Symlink           lipgloss.Style
	Executable        lipgloss.Style
	Selected          lipgloss.Style
	StatusBar         lipgloss.Style
	ErrorText         lipgloss.Style
	DialogBorder      lipgloss.Style
	GitModified       lipgloss.Style
	GitStaged         lipgloss.Style
	GitUntracked      lipgloss.Style
}

// New builds a Styles from p.
func New(p Palette) Styles {
	return Styles{
		PanelBorder:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border),
		ActivePanelBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.ActiveBorder),
		Directory:         lipgloss.NewStyle().Foreground(p.Directory).Bold(true),
		Symlink:           lipgloss.NewStyle().Foreground(p.Symlink),
		Executable:        lipgloss.NewStyle().Foreground(p.Executable),
		Selected:          lipgloss.NewStyle().Foreground(p.Selection).Bold(true),
		StatusBar:         lipgloss.NewStyle().Background(p.StatusBar).Foreground(p.StatusBarText),
		ErrorText:         lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		DialogBorder:      lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(p.ActiveBorder).Padding(0, 1),
		GitModified:       lipgloss.NewStyle().Foreground(p.GitModified),
		GitStaged:         lipgloss.NewStyle().Foreground(p.GitStaged),
		GitUntracked:      lipgloss.NewStyle().Foreground(p.GitUntracked),
	}
}

// DefaultStyles is the Styles built from the package's Default Palette, the
// one internal/app uses unless overridden.
var DefaultStyles = New(Default)
