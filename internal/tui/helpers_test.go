package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dm/meshify/internal/engine"
	"github.com/dm/meshify/internal/model"
)

// fakeSession implements Session for testing.
type fakeSession struct {
	id        string
	stopped   bool
	refreshes int
	RefreshFn func() error
}

func (s *fakeSession) ID() string { return s.id }
func (s *fakeSession) Stop()      { s.stopped = true }

func (s *fakeSession) Refresh() error {
	s.refreshes++
	if s.RefreshFn != nil {
		return s.RefreshFn()
	}
	return nil
}

// fakeStarter records every started session and keeps its callbacks.
type fakeStarter struct {
	views    []string
	sessions []*fakeSession
	updates  []func(model.Snapshot)
	errors   []func(error)
	StartErr error
}

func (f *fakeStarter) start(v engine.View, onUpdate func(model.Snapshot), onError func(error)) (Session, error) {
	if f.StartErr != nil {
		return nil, f.StartErr
	}
	s := &fakeSession{id: fmt.Sprintf("session-%d", len(f.sessions)+1)}
	f.views = append(f.views, v.Name)
	f.sessions = append(f.sessions, s)
	f.updates = append(f.updates, onUpdate)
	f.errors = append(f.errors, onError)
	return s, nil
}

// newTestApp returns an initialised App backed by a fakeStarter.
func newTestApp() (*App, *fakeStarter) {
	starter := &fakeStarter{}
	app := NewApp(Options{
		Views:    engine.Views(nil),
		Start:    starter.start,
		Interval: 10 * time.Second,
		BaseURL:  "http://localhost:8080",
	})
	app.Init()
	return app, starter
}

// dashboardSnapshot builds a live dashboard snapshot for seq.
func dashboardSnapshot(seq uint64) model.Snapshot {
	return model.Snapshot{
		SessionID: "session-1",
		View:      model.ViewDashboard,
		Seq:       seq,
		FetchedAt: time.Date(2026, 3, 4, 10, 11, 12, 0, time.UTC),
		Outcomes: model.Outcomes{
			"workloads": {Label: "workloads", Payload: []byte(`{}`), Duration: 12 * time.Millisecond},
			"cluster":   {Label: "cluster", Err: "connection refused", Duration: 3 * time.Millisecond},
		},
		Summary: model.DashboardSummary{
			Workloads:           model.WorkloadCounts{Pods: 10, Services: 5, Deployments: 7, Nodes: 3},
			NumClusters:         3,
			ConnectionStatus:    "connected",
			ClusterHealth:       66.7,
			ResourceUtilization: 44,
			ServiceCount:        5,
			NodeCount:           3,
			AdapterCount:        1,
			Adapters:            []model.AdapterInfo{{Key: "istio", Name: "Istio", Version: "1.20.0", Status: "running"}},
			Clusters:            []model.ClusterInfo{{Name: "prod", Active: true}, {Name: "dev"}},
		},
	}
}

// stripANSI removes ANSI escape sequences for plain-text content assertions.
// Handles all CSI sequences (not just SGR m-terminated ones).
func stripANSI(s string) string {
	var out strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			// CSI final bytes are in range 0x40–0x7E.
			if r >= 0x40 && r <= 0x7E && r != '[' {
				inEscape = false
			}
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}
