package models

// SyncSummary is the result of one drain of the sync queue. It is the value
// returned by StartSync/ForceSyncNow and the value broadcast to completion
// listeners.
type SyncSummary struct {
	// Success is false when the drain was rejected (already in progress,
	// offline) or when the queue could not be loaded at all. A drain that
	// ran to completion reports true even if individual items failed.
	Success bool `json:"success"`

	// SyncedItems, ConflictItems and FailedItems count the per-item
	// outcomes of this drain. Items skipped by the eligibility filter are
	// not counted.
	SyncedItems   int `json:"syncedItems"`
	ConflictItems int `json:"conflictItems"`
	FailedItems   int `json:"failedItems"`

	// Errors holds human-readable descriptions of every failure seen
	// during the drain. It is observability output, not a machine
	// taxonomy.
	Errors []string `json:"errors"`
}

// NewSyncSummary returns an empty successful summary. Errors is initialized
// so an empty drain serializes as [] rather than null.
func NewSyncSummary() SyncSummary {
	return SyncSummary{Success: true, Errors: []string{}}
}

// QueueStatus reports per-status item counts for the whole queue.
type QueueStatus struct {
	Pending   int `json:"pending"`
	Synced    int `json:"synced"`
	Conflicts int `json:"conflicts"`
	Failed    int `json:"failed"`
}

// Total returns the number of items across all states.
func (q QueueStatus) Total() int {
	return q.Pending + q.Synced + q.Conflicts + q.Failed
}
