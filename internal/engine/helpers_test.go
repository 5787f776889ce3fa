package engine

import (
	"encoding/json"
	"time"

	"github.com/dm/meshify/internal/model"
	"github.com/dm/meshify/internal/poller"
)

// ok builds a successful outcome with the given JSON body.
func ok(label, body string) model.Outcome {
	return model.Outcome{Label: label, Payload: json.RawMessage(body), StatusCode: 200}
}

// failed builds a failed outcome.
func failed(label string) model.Outcome {
	return model.Outcome{Label: label, Err: "dial tcp: connection refused"}
}

func input(seq uint64, outs ...model.Outcome) poller.Input {
	m := make(model.Outcomes, len(outs))
	for _, o := range outs {
		m[o.Label] = o
	}
	return poller.Input{Seq: seq, Outcomes: m, At: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}
