package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/dm/meshify/internal/format"
	"github.com/dm/meshify/internal/model"
)

// trendLevels are the block characters of a trend line, lowest first.
var trendLevels = []rune("▁▂▃▄▅▆▇█")

// trendLine draws the newest width samples of series as block characters,
// right-aligned. Levels are relative to ceiling, or to the largest sample
// when ceiling <= 0. Samples taken while the backend served demo data are
// drawn dimmed.
func trendLine(points []model.SeriesPoint, series string, width int, ceiling float64, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	if len(points) > width {
		points = points[len(points)-width:]
	}

	top := ceiling
	if top <= 0 {
		for _, p := range points {
			top = math.Max(top, p.Value(series))
		}
	}

	live := lipgloss.NewStyle().Foreground(color)
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", width-len(points)))
	for _, p := range points {
		level := 0
		if top > 0 {
			level = int(math.Round(p.Value(series) / top * float64(len(trendLevels)-1)))
		}
		level = max(0, min(len(trendLevels)-1, level))
		block := string(trendLevels[level])
		if p.Demo {
			sb.WriteString(StyleDim.Render(block))
		} else {
			sb.WriteString(live.Render(block))
		}
	}
	return sb.String()
}

// renderTrendCard renders a single trend card with title, value, and trend line.
//
// Layout (3 rows inside a rounded border):
//
//	╭──────────────────╮
//	│ Title            │
//	│ 87.5%            │
//	│ ▁▂▃▅▇█▇▅▃▂       │
//	╰──────────────────╯
func renderTrendCard(title, value, trend string, cardWidth int, color lipgloss.Color) string {
	cardWidth = max(cardWidth, 8)

	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Padding(0, 1).
		Width(cardWidth - 4)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		StyleDim.Render(title),
		valueStyle.Render(value),
		trend,
	))
}

// renderTrends renders the dashboard time series held in app.history.
// Wide terminals (>= 80 cols): 1x4 row. Narrow terminals: 2x2 grid.
func renderTrends(app *App) string {
	if app.history.Len() == 0 {
		return ""
	}
	points := app.history.Points()
	last := points[len(points)-1]

	label := fmt.Sprintf("Trends (last %d of %d samples)", app.history.Len(), app.history.Cap())
	if last.Demo {
		label += "  demo"
	}

	build := func(cardWidth int) []string {
		// Inner width = card width minus border (2) and padding (2), and
		// lipgloss Width() includes padding.
		inner := max(cardWidth-6, 1)
		card := func(title, value, series string, ceiling float64, color lipgloss.Color) string {
			return renderTrendCard(title, value, trendLine(points, series, inner, ceiling, color), cardWidth, color)
		}
		return []string{
			card("Cluster Health", format.FormatPercent(last.ClusterHealth), model.SeriesClusterHealth, 100, colorGreen),
			card("Utilisation", format.FormatPercent(last.ResourceUtilization), model.SeriesResourceUtilization, 100, colorCyan),
			card("Services", format.FormatNumber(int64(last.ServiceCount)), model.SeriesServiceCount, 0, colorPurple),
			card("Nodes", format.FormatNumber(int64(last.NodeCount)), model.SeriesNodeCount, 0, colorIndigo),
		}
	}

	if app.width > 0 && app.width < 80 {
		// Each card renders at (cardWidth-2) chars; two per row fill the width.
		cardWidth := (app.width + 4) / 2
		if cardWidth < 8 {
			return ""
		}
		cards := build(cardWidth)
		return lipgloss.JoinVertical(lipgloss.Left,
			StyleDim.MaxWidth(app.width).Render(label),
			lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1]),
			lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3]),
		)
	}

	cardWidth := max((app.width+8)/4, 20)
	return lipgloss.JoinVertical(lipgloss.Left,
		StyleDim.Render(label),
		lipgloss.JoinHorizontal(lipgloss.Top, build(cardWidth)...),
	)
}

// workloadBars lists the workload kinds shown in the bar chart.
func workloadBars(w model.WorkloadCounts) []struct {
	name  string
	count int
	color lipgloss.Color
} {
	return []struct {
		name  string
		count int
		color lipgloss.Color
	}{
		{"Pods", w.Pods, colorGreen},
		{"Deploy", w.Deployments, colorBlue},
		{"Svc", w.Services, colorPurple},
		{"DS", w.DaemonSets, colorCyan},
		{"Nodes", w.Nodes, colorIndigo},
		{"RC", w.ReplicationControllers, colorOrange},
		{"PodTpl", w.PodTemplates, colorYellow},
	}
}

// renderWorkloadChart draws workload counts as a bar chart with a legend.
func renderWorkloadChart(w model.WorkloadCounts, width int) string {
	if w == (model.WorkloadCounts{}) {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	bars := workloadBars(w)

	const chartHeight = 6
	chartWidth := len(bars) * 3

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(2),
		barchart.WithBarWidth(1),
		barchart.WithNoAxis(),
	)
	for _, b := range bars {
		style := lipgloss.NewStyle().Foreground(b.color).Background(b.color)
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: b.name, Value: float64(b.count), Style: style},
			},
		})
	}
	bc.Draw()

	legend := make([]string, 0, len(bars))
	for _, b := range bars {
		legend = append(legend, lipgloss.NewStyle().Foreground(b.color).Render(fmt.Sprintf("%-7s%6s", b.name, format.FormatNumber(int64(b.count)))))
	}

	chart := lipgloss.JoinHorizontal(lipgloss.Top,
		bc.View(),
		"  ",
		lipgloss.JoinVertical(lipgloss.Left, legend...),
	)
	return lipgloss.JoinVertical(lipgloss.Left, StyleDim.Render("Workloads"), lipgloss.NewStyle().MaxWidth(width).Render(chart))
}
