package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dm/meshify/internal/model"
)

// severity represents the alert level for a displayed value.
type severity int

const (
	severityNormal   severity = iota
	severityWarning           // yellow
	severityCritical          // red
)

// healthSeverity returns Warning below 80%, Critical below 50%.
// Used for cluster health, proxy coverage and scrape target health.
func healthSeverity(pct float64) severity {
	switch {
	case pct < 50:
		return severityCritical
	case pct < 80:
		return severityWarning
	default:
		return severityNormal
	}
}

// utilizationSeverity returns Warning above 75%, Critical at 90% or more.
func utilizationSeverity(pct float64) severity {
	switch {
	case pct >= 90:
		return severityCritical
	case pct > 75:
		return severityWarning
	default:
		return severityNormal
	}
}

// readinessSeverity compares ready components against the total.
func readinessSeverity(ready, total int) severity {
	switch {
	case total == 0:
		return severityNormal
	case ready == 0:
		return severityCritical
	case ready < total:
		return severityWarning
	default:
		return severityNormal
	}
}

// advisorySeverity maps an engine advisory severity onto display severity.
func advisorySeverity(s model.AdvisorySeverity) severity {
	switch s {
	case model.SeverityCritical:
		return severityCritical
	case model.SeverityWarning:
		return severityWarning
	default:
		return severityNormal
	}
}

// severityFg returns the foreground color for a severity, or fallback when normal.
func severityFg(s severity, fallback lipgloss.Color) lipgloss.Color {
	switch s {
	case severityWarning:
		return colorYellow
	case severityCritical:
		return colorRed
	default:
		return fallback
	}
}
