// Package report renders title packages as human-readable text.
package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

// Theme defines the colour palette for the report.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates a low risk or a satisfied encumbrance.
	Success lipgloss.Color

	// Warning indicates medium risk.
	Warning lipgloss.Color

	// Error indicates high risk.
	Error lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Warning:   lipgloss.Color("#F9E2AF"), // Yellow
		Error:     lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	// Title style for the report header.
	Title lipgloss.Style

	// Section style for section headers.
	Section lipgloss.Style

	// Muted style for secondary detail.
	Muted lipgloss.Style

	// Low, Medium and High colour risk levels and flag severities.
	Low    lipgloss.Style
	Medium lipgloss.Style
	High   lipgloss.Style

	// Badge frames the risk level.
	Badge lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Low: lipgloss.NewStyle().
			Foreground(theme.Success),

		Medium: lipgloss.NewStyle().
			Foreground(theme.Warning),

		High: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Error),

		Badge: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Muted).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// PlainStyles returns styles that render text unchanged, for pipes and files.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Title:   plain,
		Section: plain,
		Muted:   plain,
		Low:     plain,
		Medium:  plain,
		High:    plain,
		Badge:   plain,
	}
}

// Risk returns the style for a risk level.
func (s *Styles) Risk(level domain.RiskLevel) lipgloss.Style {
	switch level {
	case domain.RiskHigh:
		return s.High
	case domain.RiskMedium:
		return s.Medium
	default:
		return s.Low
	}
}

// Severity returns the style for a flag severity.
func (s *Styles) Severity(severity domain.Severity) lipgloss.Style {
	if severity == domain.SeverityHigh {
		return s.High
	}
	return s.Medium
}
