package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/meshify/internal/client"
	"github.com/dm/meshify/internal/engine"
	"github.com/dm/meshify/internal/model"
	"github.com/dm/meshify/internal/poller"
)

// Session is the part of a poll session the TUI drives.
type Session interface {
	ID() string
	Stop()
	Refresh() error
}

// StartFunc starts a poll session for a view.
type StartFunc func(v engine.View, onUpdate func(model.Snapshot), onError func(error)) (Session, error)

// PollerOptions configures sessions started by PollerStarter.
type PollerOptions struct {
	Fetcher       client.Fetcher
	Interval      time.Duration
	Timeout       time.Duration
	MaxConcurrent int
}

// PollerStarter returns a StartFunc backed by the poller package.
func PollerStarter(ctx context.Context, opts PollerOptions) StartFunc {
	return func(v engine.View, onUpdate func(model.Snapshot), onError func(error)) (Session, error) {
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
			return nil, err
		}
		return s, nil
	}
}

// waitForMsg blocks on ch and hands the next message to Bubble Tea.
// It is re-issued after every message so exactly one read is pending.
func waitForMsg(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}
