package model

// AdvisorySeverity indicates the urgency level of an advisory.
type AdvisorySeverity int

const (
	SeverityNormal AdvisorySeverity = iota
	SeverityWarning
	SeverityCritical
)

// Advisory is a single operator-facing note derived from a snapshot.
type Advisory struct {
	Severity AdvisorySeverity `json:"severity"`
	Title    string           `json:"title"`
	Detail   string           `json:"detail"`
}
