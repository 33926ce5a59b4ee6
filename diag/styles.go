// Package diag renders turniptext.Diagnostic values as span-annotated,
// lipgloss-styled terminal reports. It is split out from the root package
// so the core parser never has to import lipgloss.
package diag

import "github.com/charmbracelet/lipgloss"

// Styles holds every styled renderer diag needs, mirroring the way
// gomdlint's internal/ui/pretty groups severity/location/source-line
// styles under one struct that callers build once per invocation.
type Styles struct {
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Location lipgloss.Style
	Message  lipgloss.Style
	SourceLine lipgloss.Style
	Caret    lipgloss.Style
	Dim      lipgloss.Style
}

// NewStyles builds color styles if colorEnabled, or a set of no-op styles
// otherwise so Render's call sites never need to branch on color support.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return noColorStyles()
	}
	return colorStyles()
}

func colorStyles() *Styles {
	return &Styles{
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Location:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Message:    lipgloss.NewStyle(),
		SourceLine: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Caret:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func noColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:      plain,
		Warning:    plain,
		Location:   plain,
		Message:    plain,
		SourceLine: plain,
		Caret:      plain,
		Dim:        plain,
	}
}
