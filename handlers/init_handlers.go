package handlers

import (
	"context"

	"app/consolidator"
	"app/store"
)

// SnapshotReader is the slice of the snapshot store the handlers need.
type SnapshotReader interface {
	Count(ctx context.Context) (int, error)
	ListRecent(ctx context.Context, limit, offset int) ([]store.Snapshot, error)
}

// Package-level collaborators, set once at startup. Mirrors the global
// database pool pattern used elsewhere in the app.
var (
	dataConsolidator *consolidator.Consolidator
	snapshotStore    SnapshotReader
)

// Init wires the handlers to their collaborators. snapshots may be nil;
// the snapshot endpoints then report the feature as unavailable.
func Init(c *consolidator.Consolidator, snapshots SnapshotReader) {
	dataConsolidator = c
	snapshotStore = snapshots
}
