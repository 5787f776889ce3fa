// Package poller runs Poll Sessions: a periodic, concurrent fetch of a fixed
// set of endpoints whose settled outcomes are merged and derived into a
// view summary. Every cycle carries a sequence number so that a slow cycle
// can never overwrite the result of a newer one.
package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/dm/meshify/internal/model"
)

// ErrStopped is returned by Refresh on a stopped session.
var ErrStopped = errors.New("poll session stopped")

// Session is a running Poll Session. It is created by Start and lives until
// Stop is called or the parent context is cancelled.
type Session struct {
	id       string
	cfg      Config
	ctx      context.Context
	log      logx.Logger
	onUpdate func(model.Snapshot)
	onError  func(error)

	seq     atomic.Uint64
	stopped atomic.Bool
	stopCh  chan struct{}
	once    sync.Once

	// deliverMu serialises callbacks; mu guards the fields below.
	deliverMu     sync.Mutex
	mu            sync.Mutex
	lastDelivered uint64
	lastErr       error
}

// Start validates cfg, begins an immediate poll cycle and schedules one
// every cfg.Interval. onUpdate receives each in-order Snapshot; onError
// receives derivation failures (as *CycleError) of cycles newer than the
// last delivered snapshot. Both are invoked one at a time, never
// concurrently, from a goroutine owned by the session. They may call Stop.
func Start(ctx context.Context, cfg Config, onUpdate func(model.Snapshot), onError func(error)) (*Session, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if onUpdate == nil {
		onUpdate = func(model.Snapshot) {}
	}
	if onError == nil {
		onError = func(error) {}
	}

	s := &Session{
		id:       uuid.NewString(),
		cfg:      cfg,
		ctx:      ctx,
		onUpdate: onUpdate,
		onError:  onError,
		stopCh:   make(chan struct{}),
	}
	s.log = logx.WithContext(ctx).WithFields(
		logx.Field("session", s.id),
		logx.Field("view", cfg.View),
	)
	s.log.Infof("poll session started: %d endpoints every %s", len(cfg.Endpoints), cfg.Interval)

	go s.loop()
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// View returns the view this session polls for.
func (s *Session) View() string { return s.cfg.View }

// Stopped reports whether Stop has been called.
func (s *Session) Stopped() bool { return s.stopped.Load() }

// LastError returns the most recent derivation error, or nil once a later
// cycle has been delivered successfully.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// LastDelivered returns the sequence number of the newest delivered snapshot.
func (s *Session) LastDelivered() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastDelivered
}

// Stop cancels the timer and suppresses every later callback. In-flight
// requests run to completion under their own timeouts but their results
// are discarded. Stop does not wait for a callback that is already running
// on another goroutine. Stop is idempotent.
func (s *Session) Stop() {
	s.once.Do(func() {
		s.stopped.Store(true)
		close(s.stopCh)
		s.log.Info("poll session stopped")
	})
}

// Refresh starts an out-of-band cycle immediately. It does not reset the
// periodic timer.
func (s *Session) Refresh() error {
	if s.Stopped() {
		return ErrStopped
	}
	s.launch()
	return nil
}

func (s *Session) loop() {
	s.launch()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.launch()
		case <-s.stopCh:
			return
		case <-s.ctx.Done():
			s.Stop()
			return
		}
	}
}

// launch assigns the next sequence number and runs the cycle in the
// background. Cycles may overlap; delivery order is enforced by seq.
func (s *Session) launch() {
	if s.Stopped() {
		return
	}
	seq := s.seq.Add(1)
	go s.runCycle(seq)
}

func (s *Session) runCycle(seq uint64) {
	start := time.Now()
	outcomes := FetchAll(s.ctx, s.cfg.Fetcher, s.cfg.Endpoints, s.cfg.Timeout, s.cfg.MaxConcurrent)
	elapsed := time.Since(start)

	if elapsed > s.cfg.Interval {
		s.log.Slowf("poll cycle %d took %s, longer than interval %s", seq, elapsed, s.cfg.Interval)
	}
	for _, label := range outcomes.Labels() {
		if oc := outcomes[label]; !oc.OK() {
			s.log.Infof("cycle %d: source %s failed: %s", seq, label, oc.Err)
		}
	}

	at := time.Now()
	snap := model.Snapshot{
		SessionID:     s.id,
		View:          s.cfg.View,
		Seq:           seq,
		Outcomes:      outcomes,
		UsingFallback: outcomes.Succeeded() == 0,
		FetchedAt:     at,
	}
	if snap.UsingFallback {
		s.log.Infof("cycle %d: no source succeeded, using fallback data", seq)
	}

	summary, err := s.derive(Input{Seq: seq, Outcomes: outcomes, At: at})
	if err != nil {
		s.deliverError(seq, err)
		return
	}
	snap.Summary = summary
	s.deliver(snap)
}

// CycleError is a derivation failure of one poll cycle. Seq lets consumers
// discard errors of cycles older than the snapshot they already show.
type CycleError struct {
	Session string
	View    string
	Seq     uint64
	Err     error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("derive %s (cycle %d): %v", e.View, e.Seq, e.Err)
}

func (e *CycleError) Unwrap() error { return e.Err }

// CycleOf returns the cycle a derivation error belongs to, or 0 when err
// did not come from a session.
func CycleOf(err error) uint64 {
	var ce *CycleError
	if errors.As(err, &ce) {
		return ce.Seq
	}
	return 0
}

// derive calls the Deriver and converts a panic into an error so that one
// bad payload cannot take the session down.
func (s *Session) derive(in Input) (summary model.Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			summary = nil
			err = &CycleError{Session: s.id, View: s.cfg.View, Seq: in.Seq, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	summary, err = s.cfg.Deriver.Derive(in)
	if err != nil {
		return nil, &CycleError{Session: s.id, View: s.cfg.View, Seq: in.Seq, Err: err}
	}
	if summary == nil {
		return nil, &CycleError{Session: s.id, View: s.cfg.View, Seq: in.Seq, Err: errors.New("deriver returned no summary")}
	}
	return summary, nil
}

func (s *Session) deliver(snap model.Snapshot) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	if s.Stopped() {
		s.log.Debugf("cycle %d: session stopped, discarding result", snap.Seq)
		return
	}
	s.mu.Lock()
	if snap.Seq <= s.lastDelivered {
		last := s.lastDelivered
		s.mu.Unlock()
		s.log.Debugf("cycle %d: stale, %d already delivered", snap.Seq, last)
		return
	}
	s.lastDelivered = snap.Seq
	s.lastErr = nil
	s.mu.Unlock()

	if s.Stopped() {
		return
	}
	s.onUpdate(snap)
}

// deliverError reports a derivation failure. It does not advance
// lastDelivered, so the next cycle can still replace the last good snapshot.
// Failures of cycles older than the delivered snapshot are dropped.
func (s *Session) deliverError(seq uint64, err error) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	if s.Stopped() {
		return
	}
	s.mu.Lock()
	if seq <= s.lastDelivered {
		last := s.lastDelivered
		s.mu.Unlock()
		s.log.Debugf("cycle %d: stale failure, %d already delivered: %v", seq, last, err)
		return
	}
	s.lastErr = err
	s.mu.Unlock()

	s.log.Errorf("cycle %d: %v", seq, err)
	if s.Stopped() {
		return
	}
	s.onError(err)
}
