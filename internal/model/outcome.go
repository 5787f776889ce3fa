package model

import (
	"encoding/json"
	"sort"
	"time"
)

// Fetched is the raw result of one successful endpoint request.
type Fetched struct {
	Payload    json.RawMessage
	StatusCode int
}

// Outcome records how one endpoint fared in a poll cycle. Exactly one of
// Payload (success) or Err (failure) is meaningful; OK reports which.
type Outcome struct {
	Label      string          `json:"label"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Err        string          `json:"error,omitempty"`
	StatusCode int             `json:"status_code,omitempty"`
	Duration   time.Duration   `json:"duration"`
}

// Success builds a successful Outcome.
func Success(label string, f Fetched, d time.Duration) Outcome {
	return Outcome{Label: label, Payload: f.Payload, StatusCode: f.StatusCode, Duration: d}
}

// Failure builds a failed Outcome from err. The reason is never empty, so
// the outcome never reads as a success.
func Failure(label string, err error, d time.Duration) Outcome {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	if reason == "" {
		reason = "unknown error"
	}
	return Outcome{Label: label, Err: reason, Duration: d}
}

// OK reports whether the endpoint returned a usable payload.
func (o Outcome) OK() bool {
	return o.Err == ""
}

// Outcomes maps endpoint label to the outcome of the latest cycle.
type Outcomes map[string]Outcome

// Succeeded returns the number of successful outcomes.
func (o Outcomes) Succeeded() int {
	n := 0
	for _, oc := range o {
		if oc.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed outcomes.
func (o Outcomes) Failed() int {
	return len(o) - o.Succeeded()
}

// Payload returns the payload for label and whether it succeeded.
func (o Outcomes) Payload(label string) (json.RawMessage, bool) {
	oc, ok := o[label]
	if !ok || !oc.OK() {
		return nil, false
	}
	return oc.Payload, true
}

// Labels returns the outcome labels in sorted order.
func (o Outcomes) Labels() []string {
	labels := make([]string, 0, len(o))
	for l := range o {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
