package httpserver

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/dm/meshify/internal/engine"
	"github.com/dm/meshify/internal/model"
	"github.com/dm/meshify/internal/poller"
)

// subscriberBuffer is the number of snapshots queued per stream client
// before further snapshots are dropped for that client.
const subscriberBuffer = 8

var (
	ErrUnknownView = errors.New("unknown view")
	ErrNoSnapshot  = errors.New("no snapshot yet")
)

// ViewStatus is the per-view entry of the /api/views listing.
type ViewStatus struct {
	Name          string     `json:"name"`
	Title         string     `json:"title"`
	SessionID     string     `json:"session_id,omitempty"`
	Seq           uint64     `json:"seq"`
	UsingFallback bool       `json:"using_fallback"`
	FetchedAt     *time.Time `json:"fetched_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
	Subscribers   int        `json:"subscribers"`
}

type viewState struct {
	title   string
	order   int
	latest  *model.Snapshot
	lastErr string
	history *model.SeriesHistory
	subs    map[int]chan model.Snapshot
	// retired holds sessions replaced by a newer one.
	retired map[string]struct{}
}

// Store keeps the latest in-order snapshot of every view and fans new ones
// out to stream subscribers. It applies the same rule as a poll session:
// a snapshot whose Seq is not newer than the last accepted one from the
// same session is dropped. Once a new session publishes, snapshots of the
// sessions it replaced are dropped too.
type Store struct {
	mu      sync.RWMutex
	views   map[string]*viewState
	nextSub int
}

// NewStore creates a store for views. historySize <= 0 selects
// model.DefaultHistoryCap.
func NewStore(views []engine.View, historySize int) *Store {
	s := &Store{views: make(map[string]*viewState, len(views))}
	for i, v := range views {
		s.views[v.Name] = &viewState{
			title:   v.Title,
			order:   i,
			history: model.NewSeriesHistory(historySize),
			subs:    make(map[int]chan model.Snapshot),
			retired: make(map[string]struct{}),
		}
	}
	return s
}

// Publish records snap as the latest snapshot of its view. Returns false
// when the view is unknown or the snapshot is stale.
func (s *Store) Publish(snap model.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	vs, ok := s.views[snap.View]
	if !ok {
		return false
	}
	if _, old := vs.retired[snap.SessionID]; old {
		return false
	}
	if vs.latest != nil && vs.latest.SessionID == snap.SessionID && snap.Seq <= vs.latest.Seq {
		return false
	}
	if vs.latest != nil && vs.latest.SessionID != snap.SessionID {
		vs.retired[vs.latest.SessionID] = struct{}{}
		vs.history.Clear()
	}

	vs.latest = &snap
	vs.lastErr = ""
	if d, ok := snap.Summary.(model.DashboardSummary); ok {
		p := d.Point()
		p.Timestamp = snap.FetchedAt
		p.Demo = snap.UsingFallback
		vs.history.Push(p)
	}

	for id, ch := range vs.subs {
		select {
		case ch <- snap:
		default:
			logx.Slowf("stream subscriber %d of view %s is behind, dropped seq %d", id, snap.View, snap.Seq)
		}
	}
	return true
}

// RecordError remembers the last derivation error of view. Failures of a
// cycle not newer than the latest snapshot of the same session, or of a
// retired session, are ignored.
func (s *Store) RecordError(view string, err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	vs, ok := s.views[view]
	if !ok {
		return
	}
	var ce *poller.CycleError
	if errors.As(err, &ce) {
		if _, old := vs.retired[ce.Session]; old {
			return
		}
		if vs.latest != nil && vs.latest.SessionID == ce.Session && ce.Seq <= vs.latest.Seq {
			return
		}
	}
	vs.lastErr = err.Error()
}

// Latest returns the newest snapshot of view.
func (s *Store) Latest(view string) (model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vs, ok := s.views[view]
	if !ok {
		return model.Snapshot{}, fmt.Errorf("%w %q", ErrUnknownView, view)
	}
	if vs.latest == nil {
		return model.Snapshot{}, fmt.Errorf("view %s: %w", view, ErrNoSnapshot)
	}
	return *vs.latest, nil
}

// History returns the dashboard series window of view, oldest first.
// Views without a time series return an empty slice.
func (s *Store) History(view string) ([]model.SeriesPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vs, ok := s.views[view]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownView, view)
	}
	return vs.history.Points(), nil
}

// Subscribe registers a stream client for view. The returned cancel func
// unregisters it and closes the channel; it is safe to call more than once.
func (s *Store) Subscribe(view string) (<-chan model.Snapshot, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vs, ok := s.views[view]
	if !ok {
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownView, view)
	}
	id := s.nextSub
	s.nextSub++
	ch := make(chan model.Snapshot, subscriberBuffer)
	if vs.latest != nil {
		ch <- *vs.latest
	}
	vs.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(vs.subs, id)
			close(ch)
		})
	}
	return ch, cancel, nil
}

// Views lists every view with its latest state, in display order.
func (s *Store) Views() []ViewStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ViewStatus, 0, len(s.views))
	for name, vs := range s.views {
		st := ViewStatus{
			Name:        name,
			Title:       vs.title,
			LastError:   vs.lastErr,
			Subscribers: len(vs.subs),
		}
		if vs.latest != nil {
			st.SessionID = vs.latest.SessionID
			st.Seq = vs.latest.Seq
			st.UsingFallback = vs.latest.UsingFallback
			fetched := vs.latest.FetchedAt
			st.FetchedAt = &fetched
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		return s.views[out[i].Name].order < s.views[out[j].Name].order
	})
	return out
}
