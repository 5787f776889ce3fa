package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dm/meshify/internal/model"
)

// Resource utilisation bounds used by the dashboard formula.
const (
	minUtilization = 20.0
	maxUtilization = 90.0
)

// safeDivide returns a/b, or 0 when b is zero.
func safeDivide(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round1 rounds v to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// percent returns part/total as a percentage, 0 when total is zero.
func percent(part, total int) float64 {
	return round1(safeDivide(float64(part), float64(total)) * 100)
}

// CalcResourceUtilization estimates cluster utilisation from object counts:
// twice the sum of pods, services and deployments, clamped to [20, 90].
func CalcResourceUtilization(w model.WorkloadCounts) float64 {
	return clamp(2*float64(w.Pods+w.Services+w.Deployments), minUtilization, maxUtilization)
}

// CalcClusterHealth returns the share of active clusters as a percentage.
func CalcClusterHealth(clusters []model.ClusterInfo) float64 {
	active := 0
	for _, c := range clusters {
		if c.Active {
			active++
		}
	}
	return percent(active, len(clusters))
}

// componentReady reports whether a "ready/total" string such as "1/1"
// describes a fully ready workload. Without a ratio it falls back to status.
func componentReady(ready, status string) bool {
	if num, den, ok := strings.Cut(ready, "/"); ok {
		n, err1 := strconv.Atoi(strings.TrimSpace(num))
		d, err2 := strconv.Atoi(strings.TrimSpace(den))
		if err1 == nil && err2 == nil {
			return d > 0 && n == d
		}
	}
	return strings.EqualFold(status, "running")
}

// decode unmarshals the payload of label into T. ok is false when the source
// failed or is absent. A payload that does not decode is a derivation fault.
func decode[T any](outcomes model.Outcomes, label string) (v T, ok bool, err error) {
	payload, ok := outcomes.Payload(label)
	if !ok {
		return v, false, nil
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		return v, false, fmt.Errorf("decode %s payload: %w", label, err)
	}
	return v, true, nil
}
