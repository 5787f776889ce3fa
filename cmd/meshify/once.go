package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"gopkg.in/yaml.v3"

	"github.com/dm/meshify/internal/client"
	"github.com/dm/meshify/internal/engine"
	"github.com/dm/meshify/internal/model"
	"github.com/dm/meshify/internal/poller"
)

var errAllFallback = errors.New("no data source responded for any view")

// onceOptions configures a single-cycle run.
type onceOptions struct {
	Fetcher       client.Fetcher
	Timeout       time.Duration
	MaxConcurrent int
	Format        string
}

// runOnce polls every view once and writes the snapshots to w as a list in
// the requested format. Returns errAllFallback when every view fell back
// to demo data.
func runOnce(ctx context.Context, views []engine.View, opts onceOptions, w io.Writer) error {
	if opts.Format != "json" && opts.Format != "yaml" {
		return fmt.Errorf("unsupported format %q (must be json or yaml)", opts.Format)
	}

	snaps := make([]model.Snapshot, 0, len(views))
	for _, v := range views {
		snap, err := firstSnapshot(ctx, v, opts)
		if err != nil {
			return err
		}
		snaps = append(snaps, snap)
	}

	if err := writeSnapshots(w, snaps, opts.Format); err != nil {
		return err
	}

	for _, s := range snaps {
		if !s.UsingFallback {
			return nil
		}
	}
	return errAllFallback
}

// firstSnapshot runs a session for v until its first cycle is delivered.
func firstSnapshot(ctx context.Context, v engine.View, opts onceOptions) (model.Snapshot, error) {
	type result struct {
		snap model.Snapshot
		err  error
	}
	done := make(chan result, 1)
	report := func(r result) {
		select {
		case done <- r:
		default:
		}
	}

	// The interval only has to outlast one cycle.
	interval := time.Hour
	s, err := poller.Start(ctx, poller.Config{
		View:          v.Name,
		Endpoints:     v.Endpoints,
		Interval:      interval,
		Timeout:       opts.Timeout,
		MaxConcurrent: opts.MaxConcurrent,
		Fetcher:       opts.Fetcher,
		Deriver:       v.Deriver,
	},
		func(snap model.Snapshot) { report(result{snap: snap}) },
		func(err error) { report(result{err: err}) },
	)
	if err != nil {
		return model.Snapshot{}, err
	}
	defer s.Stop()

	select {
	case r := <-done:
		if r.err != nil {
			return model.Snapshot{}, fmt.Errorf("view %s: %w", v.Name, r.err)
		}
		logx.WithContext(ctx).Infof("view %s: %d/%d sources ok, fallback=%t",
			v.Name, r.snap.Outcomes.Succeeded(), len(r.snap.Outcomes), r.snap.UsingFallback)
		return r.snap, nil
	case <-ctx.Done():
		return model.Snapshot{}, ctx.Err()
	}
}

// writeSnapshots encodes snaps as indented JSON or as YAML. YAML output
// goes through the JSON form so both share field names and payloads stay
// documents rather than byte lists.
func writeSnapshots(w io.Writer, snaps []model.Snapshot, format string) error {
	data, err := json.MarshalIndent(snaps, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshots: %w", err)
	}
	if format == "json" {
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("encode snapshots: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode snapshots as yaml: %w", err)
	}
	return enc.Close()
}
