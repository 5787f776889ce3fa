package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/meshify/internal/format"
	"github.com/dm/meshify/internal/model"
)

// card is one tile of the overview row.
type card struct {
	value string
	label string
	fg    lipgloss.Color
	bar   float64 // percent for a mini bar; negative for none
}

// renderBody renders the view-specific part below the tabs. Returns an empty
// string until the first snapshot arrives.
func renderBody(app *App) string {
	if app.current == nil {
		return StyleDim.Render("  waiting for the first poll cycle...")
	}

	switch s := app.current.Summary.(type) {
	case model.DashboardSummary:
		return lipgloss.JoinVertical(lipgloss.Left,
			renderCards(app.width, dashboardCards(s)),
			renderTrends(app),
			renderWorkloadChart(s.Workloads, app.width),
			renderClusters(s.Clusters),
		)
	case model.HeaderSummary:
		return renderCards(app.width, headerCards(s))
	case model.MonitoringSummary:
		return renderCards(app.width, monitoringCards(s))
	case model.LinkerdSummary:
		return renderCards(app.width, linkerdCards(s))
	case model.IstioSummary:
		return renderCards(app.width, istioCards(s))
	case model.CiliumSummary:
		return lipgloss.JoinVertical(lipgloss.Left,
			renderCards(app.width, ciliumCards(s)),
			renderWorkloadChart(s.Workloads, app.width),
		)
	default:
		return ""
	}
}

func dashboardCards(s model.DashboardSummary) []card {
	return []card{
		{value: strings.ToUpper(s.ConnectionStatus), label: "Connection", fg: statusColor(s.ConnectionStatus), bar: -1},
		{value: format.FormatNumber(int64(s.NumClusters)), label: "Clusters", fg: colorBlue, bar: -1},
		{value: format.FormatPercent(s.ClusterHealth), label: "Cluster Health", fg: severityFg(healthSeverity(s.ClusterHealth), colorGreen), bar: s.ClusterHealth},
		{value: format.FormatPercent(s.ResourceUtilization), label: "Utilisation", fg: severityFg(utilizationSeverity(s.ResourceUtilization), colorCyan), bar: s.ResourceUtilization},
		{value: format.FormatNumber(int64(s.ServiceCount)), label: "Services", fg: colorPurple, bar: -1},
		{value: format.FormatNumber(int64(s.NodeCount)), label: "Nodes", fg: colorIndigo, bar: -1},
		{value: format.FormatNumber(int64(s.AdapterCount)), label: "Adapters", fg: colorOrange, bar: -1},
	}
}

func headerCards(s model.HeaderSummary) []card {
	cards := []card{
		{value: format.FormatNumber(int64(s.NumClusters)), label: "Clusters", fg: colorBlue, bar: -1},
		{value: strings.ToUpper(s.ConnectionStatus), label: "Connection", fg: statusColor(s.ConnectionStatus), bar: -1},
	}
	if s.Message != "" {
		cards = append(cards, card{value: s.Message, label: "Message", fg: colorWhite, bar: -1})
	}
	return cards
}

func monitoringCards(s model.MonitoringSummary) []card {
	return []card{
		{value: activeText(s.PrometheusActive), label: "Prometheus", fg: activeColor(s.PrometheusActive), bar: -1},
		{value: activeText(s.GrafanaActive), label: "Grafana", fg: activeColor(s.GrafanaActive), bar: -1},
		{value: format.FormatNumber(int64(s.Stats.ActiveMetrics)), label: "Metrics", fg: colorBlue, bar: -1},
		{value: fmt.Sprintf("%d/%d/%d", s.Stats.ActiveAlerts, s.Stats.WarningAlerts, s.Stats.CriticalAlerts), label: "Alerts a/w/c", fg: alertColor(s.Stats), bar: -1},
		{value: format.FormatPercent(s.TargetHealth), label: fmt.Sprintf("Targets %d/%d", s.Stats.HealthyTargets, s.Stats.ScrapeTargets), fg: severityFg(healthSeverity(s.TargetHealth), colorGreen), bar: s.TargetHealth},
		{value: format.FormatNumber(int64(s.Stats.CustomDashboards)), label: "Dashboards", fg: colorPurple, bar: -1},
	}
}

func linkerdCards(s model.LinkerdSummary) []card {
	return []card{
		{value: installedText(s.Installed), label: "Linkerd", fg: activeColor(s.Installed), bar: -1},
		{value: orDash(s.Version), label: "Version", fg: colorBlue, bar: -1},
		{value: strings.ToUpper(orDash(s.ControlPlaneStatus)), label: "Control Plane", fg: activeColor(s.ControlPlaneHealthy), bar: -1},
		{value: format.FormatPercent(s.ProxyCoverage), label: fmt.Sprintf("Proxies %d/%d", s.ProxiesHealthy, s.ProxiesTotal), fg: severityFg(healthSeverity(s.ProxyCoverage), colorGreen), bar: s.ProxyCoverage},
		{value: format.FormatRatio(s.ComponentsReady, len(s.Components)), label: "Components", fg: severityFg(readinessSeverity(s.ComponentsReady, len(s.Components)), colorGreen), bar: -1},
		{value: format.FormatNumber(int64(s.InjectedServices)), label: "Injected", fg: colorPurple, bar: -1},
		{value: format.FormatRatio(s.TrafficSplits, s.ServiceProfiles), label: "Splits/Profiles", fg: colorIndigo, bar: -1},
	}
}

func istioCards(s model.IstioSummary) []card {
	return []card{
		{value: installedText(s.Installed), label: "Istio", fg: activeColor(s.Installed), bar: -1},
		{value: orDash(s.Version), label: "Version", fg: colorBlue, bar: -1},
		{value: format.FormatRatio(s.ComponentsReady, len(s.Components)), label: "Components", fg: severityFg(readinessSeverity(s.ComponentsReady, len(s.Components)), colorGreen), bar: -1},
		{value: format.FormatNumber(int64(s.Services)), label: "Services", fg: colorPurple, bar: -1},
		{value: format.FormatNumber(int64(s.VirtualServices)), label: "Virtual Svcs", fg: colorIndigo, bar: -1},
		{value: format.FormatNumber(int64(s.Gateways)), label: "Gateways", fg: colorCyan, bar: -1},
		{value: format.FormatNumber(int64(len(s.Adapters))), label: "Adapters", fg: colorOrange, bar: -1},
	}
}

func ciliumCards(s model.CiliumSummary) []card {
	version, status := "-", "NOT OFFERED"
	if s.Adapter != nil {
		version = orDash(s.Adapter.Version)
		status = strings.ToUpper(orDash(s.Adapter.Status))
	}
	return []card{
		{value: strings.ToUpper(s.Status), label: "Cilium", fg: statusColor(s.Status), bar: -1},
		{value: version, label: "Version", fg: colorBlue, bar: -1},
		{value: status, label: "Adapter", fg: colorOrange, bar: -1},
		{value: format.FormatNumber(int64(s.Workloads.Nodes)), label: "Nodes", fg: colorIndigo, bar: -1},
		{value: format.FormatNumber(int64(s.Workloads.DaemonSets)), label: "DaemonSets", fg: colorCyan, bar: -1},
		{value: format.FormatNumber(int64(s.Workloads.Pods)), label: "Pods", fg: colorPurple, bar: -1},
	}
}

// renderCards lays out cards in a single row on wide terminals and two per
// row below 80 columns.
func renderCards(width int, cards []card) string {
	if len(cards) == 0 {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	narrowMode := width < 80

	var cardWidth int
	if narrowMode {
		cardWidth = max((width-4)/2, 10)
	} else {
		cardWidth = max((width-2*len(cards))/len(cards), 8)
	}
	barWidth := max(cardWidth-4, 4)

	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		body := truncateText(c.value, cardWidth-2)
		if c.bar >= 0 {
			body += "\n" + renderMiniBar(c.bar, barWidth)
		}
		body += "\n" + StyleDim.Render(c.label)
		rendered = append(rendered, StyleOverviewCard.Foreground(c.fg).Bold(true).Width(cardWidth).Render(body))
	}

	if !narrowMode {
		return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}
	var rows []string
	for i := 0; i < len(rendered); i += 2 {
		end := min(i+2, len(rendered))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderClusters lists the clusters reported by the backend.
func renderClusters(clusters []model.ClusterInfo) string {
	if len(clusters) == 0 {
		return ""
	}
	parts := make([]string, 0, len(clusters))
	for _, c := range clusters {
		marker := StyleGreen.Render("●")
		if !c.Active {
			marker = StyleRed.Render("●")
		}
		parts = append(parts, marker+" "+c.Name)
	}
	return StyleDim.Render("Clusters  ") + strings.Join(parts, "  ")
}

// renderMiniBar renders a mini progress bar using Unicode block characters.
// Fills proportionally using "█" (U+2588) for filled and "░" (U+2591) for empty cells.
func renderMiniBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	percent = max(0, min(100, percent))
	filled := min(int(percent/100.0*float64(width)), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func activeText(active bool) string {
	if active {
		return "ACTIVE"
	}
	return "INACTIVE"
}

func installedText(installed bool) string {
	if installed {
		return "INSTALLED"
	}
	return "NOT INSTALLED"
}

func activeColor(ok bool) lipgloss.Color {
	if ok {
		return colorGreen
	}
	return colorRed
}

func alertColor(s model.MonitoringStats) lipgloss.Color {
	switch {
	case s.CriticalAlerts > 0:
		return colorRed
	case s.WarningAlerts > 0:
		return colorYellow
	default:
		return colorGreen
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
