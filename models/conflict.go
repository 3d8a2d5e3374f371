// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ConflictRecord pairs a local mission item with the newer remote journey
// state that blocked it. Records are persisted next to the queue so a
// resolution decision can be made long after detection, including after a
// client restart.
type ConflictRecord struct {
	// LocalItem is the queued mutation that lost the timestamp comparison.
	LocalItem SyncItem `json:"localItem"`

	// Remote is the snapshot of the remote journey document at detection
	// time. The resolution UI shows it side by side with the local payload.
	Remote JourneyDocument `json:"remoteData"`

	// DetectedAt is when the detector flagged the divergence.
	DetectedAt time.Time `json:"timestamp"`
}

// ResolutionKind is the caller's decision for one conflicted item.
type ResolutionKind string

const (
	// ResolutionLocal retries the local mutation so it overwrites the
	// remote state.
	ResolutionLocal ResolutionKind = "local"

	// ResolutionRemote keeps the remote state and discards the local
	// mutation without a write.
	ResolutionRemote ResolutionKind = "remote"

	// ResolutionMerge replaces the local payload with caller-merged data
	// and retries.
	ResolutionMerge ResolutionKind = "merge"
)

// ConflictResolution is one caller-supplied decision applied to exactly one
// conflicted SyncItem.
type ConflictResolution struct {
	// ItemID names the conflicted item.
	ItemID string `json:"itemId"`

	// Resolution selects the strategy.
	Resolution ResolutionKind `json:"resolution"`

	// MergedData is required for ResolutionMerge and ignored otherwise.
	MergedData SyncPayload `json:"mergedData,omitempty"`
}
