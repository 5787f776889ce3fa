package tui

import "github.com/dm/meshify/internal/model"

// SnapshotMsg delivers a poll result to the TUI. gen identifies the session
// that produced it so results of a session stopped by a view switch are
// discarded.
type SnapshotMsg struct {
	Snapshot model.Snapshot
	gen      uint64
}

// DeriveErrorMsg signals that a cycle's summary could not be built. Seq is
// the failed cycle, 0 when unknown.
type DeriveErrorMsg struct {
	Err error
	Seq uint64
	gen uint64
}
