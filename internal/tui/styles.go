package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color constants, Meshify palette.
var (
	colorGreen  = lipgloss.Color("#10b981")
	colorYellow = lipgloss.Color("#f59e0b")
	colorRed    = lipgloss.Color("#ef4444")
	colorGray   = lipgloss.Color("#6b7280")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorCyan   = lipgloss.Color("#06b6d4")
	colorPurple = lipgloss.Color("#8b5cf6")
	colorIndigo = lipgloss.Color("#6366f1")
	colorOrange = lipgloss.Color("#f97316")
	colorWhite  = lipgloss.Color("#f8fafc")
	colorDark   = lipgloss.Color("#1e293b")
	colorAlt    = lipgloss.Color("#0f172a")
)

// Status styles used for connection and component state indicators.
var (
	StyleStatusGreen  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	StyleStatusYellow = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
)

// StyleHeader is the full-width dark header bar.
var StyleHeader = lipgloss.NewStyle().
	Background(colorDark).
	Foreground(colorWhite).
	Padding(0, 1)

// StyleOverviewCard is a card of the overview row.
var StyleOverviewCard = lipgloss.NewStyle().
	Background(colorAlt).
	Foreground(colorWhite).
	Padding(0, 1).
	Margin(0).
	Align(lipgloss.Center)

// Tab bar styles.
var (
	StyleTabActive   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Background(colorIndigo).Padding(0, 1)
	StyleTabInactive = lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
)

// Utility styles.
var (
	StyleError = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	StyleDim   = lipgloss.NewStyle().Foreground(colorGray)
)

// Named color styles for cell coloring.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(colorRed)
)

// statusColor classifies a status string into green, yellow, red or gray.
func statusColor(status string) lipgloss.Color {
	switch strings.ToLower(status) {
	case "connected", "active", "running", "healthy", "installed", "ready":
		return colorGreen
	case "demo", "pending", "degraded", "containercreating":
		return colorYellow
	case "disconnected", "inactive", "failed", "error", "crashloopbackoff", "not installed":
		return colorRed
	default:
		return colorGray
	}
}
