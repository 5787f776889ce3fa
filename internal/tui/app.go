package tui

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/meshify/internal/engine"
	"github.com/dm/meshify/internal/model"
	"github.com/dm/meshify/internal/poller"
)

// Options configures an App.
type Options struct {
	Views       []engine.View
	Start       StartFunc
	Interval    time.Duration
	BaseURL     string
	InitialView string
	HistorySize int
}

// App is the root Bubble Tea model for meshify. Exactly one view is visible
// and exactly one poll session runs for it; switching views stops the old
// session before starting the next.
type App struct {
	views    []engine.View
	active   int
	start    StartFunc
	interval time.Duration
	baseURL  string

	// Session state. gen increments on every session start; messages
	// tagged with an older gen belong to a stopped session.
	session Session
	gen     uint64
	msgs    chan tea.Msg
	done    chan struct{}
	quit    sync.Once

	// Latest in-order result of the active session.
	current     *model.Snapshot
	lastSeq     uint64
	lastError   error
	lastUpdated time.Time
	advisories  []model.Advisory
	history     *model.SeriesHistory
	table       tableModel

	// Layout
	width, height int

	// UI state
	showHelp bool
}

// NewApp creates an App. The first session starts in Init.
func NewApp(opts Options) *App {
	app := &App{
		views:    opts.Views,
		start:    opts.Start,
		interval: opts.Interval,
		baseURL:  opts.BaseURL,
		history:  model.NewSeriesHistory(opts.HistorySize),
		msgs:     make(chan tea.Msg, 16),
		done:     make(chan struct{}),
	}
	if v, err := engine.Lookup(opts.Views, opts.InitialView); err == nil {
		for i := range app.views {
			if app.views[i].Name == v.Name {
				app.active = i
			}
		}
	}
	return app
}

// Init implements tea.Model. Starts the session for the initial view.
func (app *App) Init() tea.Cmd {
	app.startSession()
	return waitForMsg(app.msgs)
}

// Update implements tea.Model, the single state-mutation entry point.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height

	case SnapshotMsg:
		app.applySnapshot(msg)
		return app, waitForMsg(app.msgs)

	case DeriveErrorMsg:
		if msg.gen == app.gen && (msg.Seq == 0 || msg.Seq > app.lastSeq) {
			app.lastError = msg.Err
		}
		return app, waitForMsg(app.msgs)

	case tea.KeyMsg:
		if app.table.searching {
			var cmd tea.Cmd
			app.table, cmd = app.table.Update(msg)
			return app, cmd
		}
		switch {
		case key.Matches(msg, keys.Quit):
			app.Shutdown()
			return app, tea.Quit
		case key.Matches(msg, keys.Refresh):
			if app.session != nil {
				if err := app.session.Refresh(); err != nil {
					app.lastError = err
				}
			}
		case key.Matches(msg, keys.Tab):
			app.switchView(app.active + 1)
		case key.Matches(msg, keys.ShiftTab):
			app.switchView(app.active - 1)
		case key.Matches(msg, keys.Help):
			app.showHelp = !app.showHelp
		default:
			var cmd tea.Cmd
			app.table, cmd = app.table.Update(msg)
			return app, cmd
		}
	}

	return app, nil
}

// applySnapshot accepts msg only if it belongs to the active session and is
// newer than the last applied result.
func (app *App) applySnapshot(msg SnapshotMsg) {
	if msg.gen != app.gen || msg.Snapshot.Seq <= app.lastSeq {
		return
	}
	snap := msg.Snapshot
	app.current = &snap
	app.lastSeq = snap.Seq
	app.lastError = nil
	app.lastUpdated = snap.FetchedAt
	app.advisories = engine.CalcAdvisories(snap)

	if d, ok := snap.Summary.(model.DashboardSummary); ok {
		p := d.Point()
		p.Timestamp = snap.FetchedAt
		p.Demo = snap.UsingFallback
		app.history.Push(p)
	}
	app.table.SetRows(tableRows(snap.Summary))
}

// activeView returns the visible view.
func (app *App) activeView() engine.View {
	if len(app.views) == 0 {
		return engine.View{}
	}
	return app.views[app.active]
}

// switchView stops the running session and starts one for view i,
// wrapping around at both ends.
func (app *App) switchView(i int) {
	n := len(app.views)
	if n == 0 {
		return
	}
	app.active = ((i % n) + n) % n
	app.startSession()
}

// startSession stops any running session, resets per-view state and
// starts polling the active view.
func (app *App) startSession() {
	if app.session != nil {
		app.session.Stop()
		app.session = nil
	}
	app.gen++
	app.current = nil
	app.lastSeq = 0
	app.lastError = nil
	app.advisories = nil

	v := app.activeView()
	app.table = newViewTable(v.Name)
	if app.start == nil || v.Name == "" {
		return
	}

	gen := app.gen
	s, err := app.start(v,
		func(snap model.Snapshot) { app.send(SnapshotMsg{Snapshot: snap, gen: gen}) },
		func(err error) { app.send(DeriveErrorMsg{Err: err, Seq: poller.CycleOf(err), gen: gen}) },
	)
	if err != nil {
		app.lastError = err
		return
	}
	app.session = s
}

// send forwards a session callback to the Bubble Tea loop. It gives up once
// the app has shut down so a late callback never blocks its session.
func (app *App) send(msg tea.Msg) {
	select {
	case app.msgs <- msg:
	case <-app.done:
	}
}

// Shutdown stops the active session. Safe to call more than once.
func (app *App) Shutdown() {
	app.quit.Do(func() {
		if app.session != nil {
			app.session.Stop()
		}
		close(app.done)
	})
}

// View implements tea.Model. Renders the full TUI.
func (app *App) View() string {
	parts := []string{renderHeader(app), renderTabs(app)}

	if body := renderBody(app); body != "" {
		parts = append(parts, body)
	}
	if !app.table.empty() && app.current != nil {
		parts = append(parts, app.table.render(app.width))
	}
	if adv := renderAdvisories(app); adv != "" {
		parts = append(parts, adv)
	}
	parts = append(parts, renderFooter(app))

	return strings.Join(parts, "\n")
}
