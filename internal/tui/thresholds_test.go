package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dm/meshify/internal/model"
)

func TestHealthSeverity(t *testing.T) {
	assert.Equal(t, severityNormal, healthSeverity(100))
	assert.Equal(t, severityNormal, healthSeverity(80))
	assert.Equal(t, severityWarning, healthSeverity(79.9))
	assert.Equal(t, severityWarning, healthSeverity(50))
	assert.Equal(t, severityCritical, healthSeverity(49.9))
	assert.Equal(t, severityCritical, healthSeverity(0))
}

func TestUtilizationSeverity(t *testing.T) {
	assert.Equal(t, severityNormal, utilizationSeverity(20))
	assert.Equal(t, severityNormal, utilizationSeverity(75))
	assert.Equal(t, severityWarning, utilizationSeverity(75.1))
	assert.Equal(t, severityCritical, utilizationSeverity(90))
}

func TestReadinessSeverity(t *testing.T) {
	assert.Equal(t, severityNormal, readinessSeverity(0, 0))
	assert.Equal(t, severityNormal, readinessSeverity(3, 3))
	assert.Equal(t, severityWarning, readinessSeverity(2, 3))
	assert.Equal(t, severityCritical, readinessSeverity(0, 3))
}

func TestAdvisorySeverity(t *testing.T) {
	assert.Equal(t, severityCritical, advisorySeverity(model.SeverityCritical))
	assert.Equal(t, severityWarning, advisorySeverity(model.SeverityWarning))
	assert.Equal(t, severityNormal, advisorySeverity(model.SeverityNormal))
}

func TestSeverityFg(t *testing.T) {
	assert.Equal(t, colorRed, severityFg(severityCritical, colorBlue))
	assert.Equal(t, colorYellow, severityFg(severityWarning, colorBlue))
	assert.Equal(t, colorBlue, severityFg(severityNormal, colorBlue))
}
