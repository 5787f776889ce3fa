package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dm/meshify/internal/model"
)

// maxAdvisories caps how many advisories fit under the view body.
const maxAdvisories = 5

// severityBadge returns a colored, fixed-width badge for the given severity.
func severityBadge(sev model.AdvisorySeverity) string {
	switch advisorySeverity(sev) {
	case severityCritical:
		return StyleRed.Bold(true).Render("[CRITICAL]")
	case severityWarning:
		return StyleYellow.Bold(true).Render("[WARN]    ")
	default:
		return StyleGreen.Bold(true).Render("[INFO]    ")
	}
}

// wrapText wraps text at maxWidth rune-columns, breaking at word boundaries.
// Returns the original string unchanged when it fits within maxWidth.
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 || utf8.RuneCountInString(text) <= maxWidth {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	var lines []string
	var current strings.Builder
	currentLen := 0
	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		switch {
		case currentLen == 0:
			current.WriteString(word)
			currentLen = wordLen
		case currentLen+1+wordLen <= maxWidth:
			current.WriteByte(' ')
			current.WriteString(word)
			currentLen += 1 + wordLen
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			currentLen = wordLen
		}
	}
	if currentLen > 0 {
		lines = append(lines, current.String())
	}
	return strings.Join(lines, "\n")
}

// buildAdvisoryLines returns the rendered lines for advs, most severe first
// as ordered by the engine, truncated to maxAdvisories.
func buildAdvisoryLines(advs []model.Advisory, width int) []string {
	if len(advs) == 0 {
		return nil
	}
	lines := []string{StyleDim.Bold(true).Underline(true).Render("Advisories")}
	shown := advs
	if len(shown) > maxAdvisories {
		shown = shown[:maxAdvisories]
	}
	for _, a := range shown {
		lines = append(lines, fmt.Sprintf("  %s %s", severityBadge(a.Severity), a.Title))
		if a.Detail != "" {
			for _, dline := range strings.Split(wrapText(a.Detail, width-6), "\n") {
				lines = append(lines, "    "+StyleDim.Render(dline))
			}
		}
	}
	if hidden := len(advs) - len(shown); hidden > 0 {
		lines = append(lines, StyleDim.Render(fmt.Sprintf("  ... %d more", hidden)))
	}
	return lines
}

// renderAdvisories renders the advisories panel for the current snapshot.
func renderAdvisories(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}
	return strings.Join(buildAdvisoryLines(app.advisories, width), "\n")
}
