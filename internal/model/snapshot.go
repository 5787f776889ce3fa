package model

import "time"

// Summary is the view-specific, presentation-ready value derived from one
// poll cycle. Concrete types live in this package (DashboardSummary etc).
type Summary interface {
	ViewName() string
}

// Snapshot holds the merged result of a single poll cycle.
// Consumers receive it by value and must not mutate Outcomes or Summary.
type Snapshot struct {
	SessionID     string    `json:"session_id"`
	View          string    `json:"view"`
	Seq           uint64    `json:"seq"`
	Outcomes      Outcomes  `json:"outcomes"`
	Summary       Summary   `json:"summary"`
	UsingFallback bool      `json:"using_fallback"`
	FetchedAt     time.Time `json:"fetched_at"`
}
