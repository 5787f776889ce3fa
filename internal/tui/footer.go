package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"

	"github.com/dm/meshify/internal/format"
)

// renderFooter renders the per-source status line and the key help at full
// terminal width. When app.showHelp is true, shows all key bindings.
func renderFooter(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}
	h := help.New()
	h.Width = width
	h.ShowAll = app.showHelp
	text := h.View(keys)

	if src := renderSources(app); src != "" {
		return src + "\n" + text
	}
	return text
}

// renderSources lists every endpoint of the latest cycle with a colored
// marker and its request duration.
func renderSources(app *App) string {
	if app.current == nil {
		return ""
	}
	outcomes := app.current.Outcomes
	parts := make([]string, 0, len(outcomes))
	for _, label := range outcomes.Labels() {
		oc := outcomes[label]
		marker := StyleGreen.Render("●")
		if !oc.OK() {
			marker = StyleRed.Render("●")
		}
		parts = append(parts, fmt.Sprintf("%s %s %s", marker, label, StyleDim.Render(format.FormatLatency(oc.Duration))))
	}
	return StyleDim.Render(fmt.Sprintf("cycle %d  ", app.current.Seq)) + strings.Join(parts, "  ")
}
