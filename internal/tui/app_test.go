package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/meshify/internal/engine"
	"github.com/dm/meshify/internal/model"
	"github.com/dm/meshify/internal/poller"
)

// deliver runs the session callback and feeds the resulting message to the app.
func deliver(t *testing.T, app *App, cb func()) tea.Cmd {
	t.Helper()
	cb()
	select {
	case msg := <-app.msgs:
		_, cmd := app.Update(msg)
		return cmd
	case <-time.After(time.Second):
		t.Fatal("callback did not produce a message")
		return nil
	}
}

func TestApp_InitStartsInitialView(t *testing.T) {
	starter := &fakeStarter{}
	app := NewApp(Options{
		Views:       engine.Views(nil),
		Start:       starter.start,
		InitialView: "linkerd",
	})
	cmd := app.Init()
	require.NotNil(t, cmd)

	assert.Equal(t, []string{model.ViewLinkerd}, starter.views)
	assert.Equal(t, model.ViewLinkerd, app.activeView().Name)
	assert.Equal(t, uint64(1), app.gen)
}

func TestApp_SnapshotUpdatesState(t *testing.T) {
	app, starter := newTestApp()
	snap := dashboardSnapshot(1)

	cmd := deliver(t, app, func() { starter.updates[0](snap) })
	require.NotNil(t, cmd, "must keep listening for session messages")

	require.NotNil(t, app.current)
	assert.Equal(t, uint64(1), app.current.Seq)
	assert.Equal(t, uint64(1), app.lastSeq)
	assert.Equal(t, snap.FetchedAt, app.lastUpdated)
	assert.Nil(t, app.lastError)
	assert.Equal(t, 1, app.history.Len())
	assert.Equal(t, 66.7, app.history.Points()[0].ClusterHealth)
	assert.Equal(t, snap.FetchedAt, app.history.Points()[0].Timestamp)
	assert.NotEmpty(t, app.advisories, "failed cluster source yields an advisory")
	assert.Len(t, app.table.display, 1)
}

func TestApp_DropsStaleSeq(t *testing.T) {
	app, starter := newTestApp()

	deliver(t, app, func() { starter.updates[0](dashboardSnapshot(2)) })
	deliver(t, app, func() { starter.updates[0](dashboardSnapshot(1)) })

	assert.Equal(t, uint64(2), app.current.Seq)
	assert.Equal(t, 1, app.history.Len(), "stale snapshot must not extend history")
}

func TestApp_DemoSnapshotMarksHistory(t *testing.T) {
	app, starter := newTestApp()
	snap := dashboardSnapshot(1)
	snap.UsingFallback = true
	app.width = 200

	deliver(t, app, func() { starter.updates[0](snap) })

	assert.True(t, app.history.Points()[0].Demo)
	assert.Contains(t, stripANSI(renderHeader(app)), "DEMO DATA")
}

func TestApp_TabSwitchesViewAndSession(t *testing.T) {
	app, starter := newTestApp()
	deliver(t, app, func() { starter.updates[0](dashboardSnapshot(5)) })

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Nil(t, cmd)

	require.Len(t, starter.sessions, 2)
	assert.True(t, starter.sessions[0].stopped)
	assert.False(t, starter.sessions[1].stopped)
	assert.Equal(t, model.ViewHeader, app.activeView().Name)
	assert.Nil(t, app.current, "per-view state resets on switch")
	assert.Equal(t, uint64(0), app.lastSeq)

	// a late result of the stopped session is ignored even with a higher seq
	deliver(t, app, func() { starter.updates[0](dashboardSnapshot(9)) })
	assert.Nil(t, app.current)

	// the new session starts again at seq 1
	header := model.Snapshot{Seq: 1, View: model.ViewHeader, Summary: model.HeaderSummary{NumClusters: 2, ConnectionStatus: "connected"}}
	deliver(t, app, func() { starter.updates[1](header) })
	require.NotNil(t, app.current)
	assert.Equal(t, model.ViewHeader, app.current.View)
}

func TestApp_ShiftTabWraps(t *testing.T) {
	app, starter := newTestApp()

	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})

	assert.Equal(t, model.ViewCilium, app.activeView().Name)
	assert.Equal(t, []string{model.ViewDashboard, model.ViewCilium}, starter.views)
}

func TestApp_DeriveErrorShownUntilNextSnapshot(t *testing.T) {
	app, starter := newTestApp()
	app.width = 200
	boom := errors.New("decode workloads payload: bad json")

	cmd := deliver(t, app, func() { starter.errors[0](boom) })
	require.NotNil(t, cmd)
	assert.Equal(t, boom, app.lastError)
	assert.Contains(t, stripANSI(renderHeader(app)), "decode workloads")

	deliver(t, app, func() { starter.updates[0](dashboardSnapshot(1)) })
	assert.Nil(t, app.lastError)
}

func TestApp_DeriveErrorFromOldSessionIgnored(t *testing.T) {
	app, starter := newTestApp()
	app.Update(tea.KeyMsg{Type: tea.KeyTab})

	deliver(t, app, func() { starter.errors[0](errors.New("old")) })
	assert.Nil(t, app.lastError)
}

func TestApp_DeriveErrorOfOlderCycleIgnored(t *testing.T) {
	app, starter := newTestApp()
	deliver(t, app, func() { starter.updates[0](dashboardSnapshot(2)) })

	late := &poller.CycleError{View: model.ViewDashboard, Seq: 1, Err: errors.New("late fault")}
	deliver(t, app, func() { starter.errors[0](late) })
	assert.Nil(t, app.lastError)

	newer := &poller.CycleError{View: model.ViewDashboard, Seq: 3, Err: errors.New("fresh fault")}
	deliver(t, app, func() { starter.errors[0](newer) })
	assert.Equal(t, error(newer), app.lastError)
}

func TestApp_RefreshKey(t *testing.T) {
	app, starter := newTestApp()

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, 1, starter.sessions[0].refreshes)

	starter.sessions[0].RefreshFn = func() error { return errors.New("poll session stopped") }
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.EqualError(t, app.lastError, "poll session stopped")
}

func TestApp_StartErrorShown(t *testing.T) {
	starter := &fakeStarter{StartErr: errors.New("invalid poller config")}
	app := NewApp(Options{Views: engine.Views(nil), Start: starter.start})
	app.Init()

	assert.Nil(t, app.session)
	assert.EqualError(t, app.lastError, "invalid poller config")
}

func TestApp_WindowSizeStored(t *testing.T) {
	app, _ := newTestApp()

	_, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, app.width)
	assert.Equal(t, 40, app.height)
	assert.Nil(t, cmd)
}

func TestApp_QuitKeyStopsSession(t *testing.T) {
	app, starter := newTestApp()

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, starter.sessions[0].stopped)

	// late callbacks after shutdown must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			starter.updates[0](dashboardSnapshot(uint64(i + 1)))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback blocked after shutdown")
	}

	app.Shutdown()
}

func TestApp_HelpToggle(t *testing.T) {
	app, _ := newTestApp()
	assert.False(t, app.showHelp)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.True(t, app.showHelp)
	full := stripANSI(renderFooter(app))
	assert.Contains(t, full, "shift+tab")
	assert.Contains(t, full, "sort column")

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.False(t, app.showHelp)
}

func TestApp_SearchModeCapturesKeys(t *testing.T) {
	app, starter := newTestApp()
	deliver(t, app, func() { starter.updates[0](dashboardSnapshot(1)) })

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.True(t, app.table.searching)

	// "q" types into the filter instead of quitting
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.False(t, starter.sessions[0].stopped)
	assert.Equal(t, "q", app.table.input.Value())
}

func TestApp_ViewRendersDashboard(t *testing.T) {
	app, starter := newTestApp()
	app.Update(tea.WindowSizeMsg{Width: 200, Height: 50})

	before := stripANSI(app.View())
	assert.Contains(t, before, "Meshify · Dashboard")
	assert.Contains(t, before, "CONNECTING")

	deliver(t, app, func() { starter.updates[0](dashboardSnapshot(3)) })
	out := stripANSI(app.View())

	assert.Contains(t, out, "LIVE")
	assert.Contains(t, out, "10:11:12")
	assert.Contains(t, out, "Cluster Health")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "Workloads")
	assert.Contains(t, out, "Mesh Adapters")
	assert.Contains(t, out, "Istio")
	assert.Contains(t, out, "cycle 3")
	assert.Contains(t, out, "Advisories")
	assert.Contains(t, out, "Source cluster unavailable")
}
