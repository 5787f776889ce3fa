package poller

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dm/meshify/internal/client"
	"github.com/dm/meshify/internal/model"
)

// FetchAll requests every endpoint concurrently and waits for all of them
// to settle. A failing endpoint never aborts the others: each goroutine
// records its own Outcome and returns nil to the group.
func FetchAll(ctx context.Context, f client.Fetcher, endpoints []model.Endpoint, timeout time.Duration, limit int) model.Outcomes {
	results := make([]model.Outcome, len(endpoints))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, ep := range endpoints {
		g.Go(func() error {
			results[i] = fetchOne(ctx, f, ep, timeout)
			return nil
		})
	}
	_ = g.Wait()

	out := make(model.Outcomes, len(results))
	for _, oc := range results {
		out[oc.Label] = oc
	}
	return out
}

type fetchResult struct {
	fetched model.Fetched
	err     error
}

// fetchOne runs a single request bounded by timeout. The fetch runs in its
// own goroutine so a Fetcher that ignores ctx still cannot hold the cycle
// past the deadline; the buffered channel lets that goroutine exit later.
func fetchOne(ctx context.Context, f client.Fetcher, ep model.Endpoint, timeout time.Duration) model.Outcome {
	start := time.Now()
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch := make(chan fetchResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- fetchResult{err: fmt.Errorf("fetch %s: panic: %v", ep.Label, r)}
			}
		}()
		fetched, err := f.Fetch(reqCtx, ep)
		ch <- fetchResult{fetched: fetched, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return model.Failure(ep.Label, res.err, time.Since(start))
		}
		return model.Success(ep.Label, res.fetched, time.Since(start))
	case <-reqCtx.Done():
		return model.Failure(ep.Label, fmt.Errorf("fetch %s: timed out after %s: %w", ep.Label, timeout, reqCtx.Err()), time.Since(start))
	}
}
