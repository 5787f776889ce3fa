package model

import "time"

// DefaultHistoryCap matches the 24-point performance chart of the web dashboard.
const DefaultHistoryCap = 24

// Series names accepted by SeriesHistory.Values.
const (
	SeriesClusterHealth       = "clusterHealth"
	SeriesResourceUtilization = "resourceUtilization"
	SeriesServiceCount        = "serviceCount"
	SeriesNodeCount           = "nodeCount"
	SeriesAdapterCount        = "adapterCount"
)

// SeriesPoint is a single timestamped dashboard sample stored in the ring buffer.
type SeriesPoint struct {
	Timestamp           time.Time `json:"timestamp"`
	ClusterHealth       float64   `json:"cluster_health"`
	ResourceUtilization float64   `json:"resource_utilization"`
	ServiceCount        float64   `json:"service_count"`
	NodeCount           float64   `json:"node_count"`
	AdapterCount        float64   `json:"adapter_count"`
	Demo                bool      `json:"demo"`
}

// SeriesHistory is a fixed-size ring buffer of SeriesPoints.
// When the buffer is full, new pushes overwrite the oldest entry.
type SeriesHistory struct {
	buf  []SeriesPoint
	head int // index of the next write position
	size int // number of valid entries
}

// NewSeriesHistory creates a SeriesHistory with the given capacity.
// If capacity <= 0, DefaultHistoryCap is used.
func NewSeriesHistory(capacity int) *SeriesHistory {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	return &SeriesHistory{
		buf: make([]SeriesPoint, capacity),
	}
}

// Push appends a new point to the history, overwriting the oldest if full.
func (h *SeriesHistory) Push(p SeriesPoint) {
	h.buf[h.head] = p
	h.head = (h.head + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
}

// Len returns the number of valid entries in the history.
func (h *SeriesHistory) Len() int {
	return h.size
}

// Cap returns the buffer capacity.
func (h *SeriesHistory) Cap() int {
	return len(h.buf)
}

// Clear resets the history to empty.
func (h *SeriesHistory) Clear() {
	h.head = 0
	h.size = 0
}

// Points returns a copy of the stored points, oldest first.
func (h *SeriesHistory) Points() []SeriesPoint {
	out := make([]SeriesPoint, h.size)
	start := (h.head - h.size + len(h.buf)) % len(h.buf)
	for i := 0; i < h.size; i++ {
		out[i] = h.buf[(start+i)%len(h.buf)]
	}
	return out
}

// Value returns the named series of p. Unknown names yield zero.
func (p SeriesPoint) Value(series string) float64 {
	switch series {
	case SeriesClusterHealth:
		return p.ClusterHealth
	case SeriesResourceUtilization:
		return p.ResourceUtilization
	case SeriesServiceCount:
		return p.ServiceCount
	case SeriesNodeCount:
		return p.NodeCount
	case SeriesAdapterCount:
		return p.AdapterCount
	default:
		return 0
	}
}

// Values returns a slice of float64 for the named series in chronological
// order (oldest first). Unknown names yield zeros.
func (h *SeriesHistory) Values(series string) []float64 {
	points := h.Points()
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value(series)
	}
	return out
}
