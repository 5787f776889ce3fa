package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/meshify/internal/model"
)

var testColor = lipgloss.Color("#ffffff")

func healthPoints(values ...float64) []model.SeriesPoint {
	out := make([]model.SeriesPoint, len(values))
	for i, v := range values {
		out[i] = model.SeriesPoint{ClusterHealth: v}
	}
	return out
}

func plainTrend(points []model.SeriesPoint, width int, ceiling float64) []rune {
	return []rune(stripANSI(trendLine(points, model.SeriesClusterHealth, width, ceiling, testColor)))
}

func TestTrendLine_Empty(t *testing.T) {
	assert.Equal(t, strings.Repeat(" ", 10), string(plainTrend(nil, 10, 0)))
	assert.Empty(t, trendLine(healthPoints(1, 2), model.SeriesClusterHealth, 0, 0, testColor))
}

func TestTrendLine_AllZerosAtFloor(t *testing.T) {
	assert.Equal(t, "▁▁▁▁", string(plainTrend(healthPoints(0, 0, 0, 0), 4, 0)))
}

func TestTrendLine_AutoScale(t *testing.T) {
	got := plainTrend(healthPoints(0, 1, 2, 3, 4, 5, 6, 7), 8, 0)
	assert.Equal(t, "▁▂▃▄▅▆▇█", string(got))
}

func TestTrendLine_FixedCeiling(t *testing.T) {
	// 50% of a 100 ceiling stays mid-height even though it is the maximum.
	got := plainTrend(healthPoints(50, 50), 2, 100)
	assert.Equal(t, "▅▅", string(got))

	// values above the ceiling clamp to the top level
	assert.Equal(t, "██", string(plainTrend(healthPoints(100, 150), 2, 100)))
}

func TestTrendLine_KeepsNewestAndPads(t *testing.T) {
	got := plainTrend(healthPoints(100, 0, 0, 100), 3, 100)
	assert.Equal(t, "▁▁█", string(got))

	padded := plainTrend(healthPoints(100), 4, 100)
	require.Len(t, padded, 4)
	assert.Equal(t, "   █", string(padded))
}

func TestTrendLine_OtherSeries(t *testing.T) {
	points := []model.SeriesPoint{{NodeCount: 2}, {NodeCount: 4}}
	got := stripANSI(trendLine(points, model.SeriesNodeCount, 2, 0, testColor))
	assert.Equal(t, "▅█", got)
}

func TestTrendLine_DemoSamplesStillDrawn(t *testing.T) {
	points := []model.SeriesPoint{{ClusterHealth: 100, Demo: true}, {ClusterHealth: 100}}
	assert.Equal(t, "██", string(plainTrend(points, 2, 100)))
}
