package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// maxErrLen caps the error text shown in the header.
const maxErrLen = 40

// renderHeader renders the top header bar with view title, data state and timing info.
//
// Layout:
//
//	left:   "Meshify · <view title>"
//	center: "● LIVE", "● DEMO DATA" or "● CONNECTING", followed by the last error
//	right:  "Last: HH:MM:SS  Poll: Ns"
func renderHeader(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	left := "Meshify"
	if v := app.activeView(); v.Title != "" {
		left += " · " + v.Title
	}

	var center string
	switch {
	case app.current == nil:
		center = StyleDim.Render("● CONNECTING to " + app.baseURL)
	case app.current.UsingFallback:
		center = StyleStatusYellow.Render("● DEMO DATA")
	default:
		center = StyleStatusGreen.Render("● LIVE")
	}
	if app.lastError != nil {
		center += "  " + StyleError.Render(truncateText(app.lastError.Error(), maxErrLen))
	}

	lastStr := "--:--:--"
	if !app.lastUpdated.IsZero() {
		lastStr = app.lastUpdated.Format("15:04:05")
	}
	right := StyleDim.Render(fmt.Sprintf("Last: %s  Poll: %s", lastStr, formatDuration(app.interval)))

	// StyleHeader has Padding(0, 1) so inner content width = total width - 2.
	innerWidth := width - 2
	spacing := innerWidth - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if spacing < 0 {
		spacing = 0
	}
	leftSpacing := spacing / 2
	rightSpacing := spacing - leftSpacing

	row := left +
		strings.Repeat(" ", leftSpacing) +
		center +
		strings.Repeat(" ", rightSpacing) +
		right

	return StyleHeader.Width(width).MaxWidth(width).Render(row)
}

// renderTabs renders one tab per view, highlighting the active one.
func renderTabs(app *App) string {
	tabs := make([]string, 0, len(app.views))
	for i, v := range app.views {
		style := StyleTabInactive
		if i == app.active {
			style = StyleTabActive
		}
		tabs = append(tabs, style.Render(v.Title))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// truncateText shortens s to n runes, appending "..." when cut.
func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// formatDuration formats a poll interval as a compact string, e.g. "10s" or "2m".
func formatDuration(d time.Duration) string {
	if d >= time.Minute {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}
