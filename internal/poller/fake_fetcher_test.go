package poller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dm/meshify/internal/model"
)

var errFakeFailure = errors.New("fake failure")

// fakeFetcher implements client.Fetcher for testing.
type fakeFetcher struct {
	FetchFn func(ctx context.Context, ep model.Endpoint) (model.Fetched, error)
}

func (f *fakeFetcher) Fetch(ctx context.Context, ep model.Endpoint) (model.Fetched, error) {
	if f.FetchFn != nil {
		return f.FetchFn(ctx, ep)
	}
	return okFetched(`{"ok":true}`), nil
}

func okFetched(body string) model.Fetched {
	return model.Fetched{Payload: json.RawMessage(body), StatusCode: http.StatusOK}
}

// testSummary is a minimal model.Summary carrying the cycle it came from.
type testSummary struct {
	Seq       uint64
	Succeeded int
}

func (testSummary) ViewName() string { return "test" }

func countingDeriver() Deriver {
	return DeriverFunc(func(in Input) (model.Summary, error) {
		return testSummary{Seq: in.Seq, Succeeded: in.Outcomes.Succeeded()}, nil
	})
}

func endpoints(labels ...string) []model.Endpoint {
	eps := make([]model.Endpoint, 0, len(labels))
	for _, l := range labels {
		eps = append(eps, model.Endpoint{Label: l, URL: "/api/" + l})
	}
	return eps
}
