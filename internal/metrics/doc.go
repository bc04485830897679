// Package metrics defines the snapshot data model the dashboard renders and the
// sources that produce it.
//
// A Source returns one complete Snapshot per call. Two implementations exist:
// HostSampler reads the local machine through gopsutil, and Simulator walks a
// fixed fixture with bounded random steps for demos and tests. Snapshots are
// replaced wholesale each tick; nothing in a Snapshot is updated in place by
// the dashboard except the derived fields recomputed by Normalize.
package metrics
