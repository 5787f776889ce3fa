package main

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/dm/meshify/internal/client"
	"github.com/dm/meshify/internal/engine"
	"github.com/dm/meshify/internal/httpserver"
	"github.com/dm/meshify/internal/poller"
)

// serveOptions configures the headless relay.
type serveOptions struct {
	Fetcher       client.Fetcher
	Interval      time.Duration
	Timeout       time.Duration
	MaxConcurrent int
	HistorySize   int
	Addr          string
}

// runServe polls every view continuously and relays the snapshots over
// HTTP until ctx is done.
func runServe(ctx context.Context, views []engine.View, opts serveOptions) error {
	store := httpserver.NewStore(views, opts.HistorySize)

	sessions := make([]*poller.Session, 0, len(views))
	defer func() {
		for _, s := range sessions {
			s.Stop()
		}
	}()
	for _, v := range views {
		onUpdate, onError := httpserver.Publisher(store, v.Name)
		s, err := poller.Start(ctx, poller.Config{
			View:          v.Name,
			Endpoints:     v.Endpoints,
			Interval:      opts.Interval,
			Timeout:       opts.Timeout,
			MaxConcurrent: opts.MaxConcurrent,
			Fetcher:       opts.Fetcher,
			Deriver:       v.Deriver,
		}, onUpdate, onError)
		if err != nil {
			return err
		}
		sessions = append(sessions, s)
	}

	srv := httpserver.NewServer(opts.Addr, store)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("start relay on %s: %w", opts.Addr, err)
	}
	logx.Infof("relaying %d views every %s", len(views), opts.Interval)

	<-ctx.Done()
	logx.Info("shutting down relay")
	return srv.Stop()
}
