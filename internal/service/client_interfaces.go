package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-study-sync/internal/store"
	"github.com/MKhiriev/go-study-sync/models"
)

// ClientAuthService defines the client-side contract for account access and
// the locally persisted login session. Implementations talk to the remote
// server through the adapter and keep the restored session in the local
// session store so the client survives restarts without asking for
// credentials again.
type ClientAuthService interface {
	// Register creates a new account on the server for the given user and
	// signs the client in with the returned bearer token. The session is
	// persisted locally; a failed session write is logged, not fatal.
	// Returns the user with the server-assigned UserID, or an error if the
	// server call fails.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user against the server and persists the
	// resulting session locally; a failed session write is logged, not
	// fatal. Returns the server-side user record with UserID and stored
	// preferences, or an error if authentication fails.
	Login(ctx context.Context, user models.User) (models.User, error)

	// RestoreSession loads the session saved by a previous run and re-arms
	// the adapter with its bearer token. Returns
	// [store.ErrLocalSessionNotFound] (wrapped) when nobody has signed in on
	// this machine yet.
	RestoreSession(ctx context.Context) (store.Session, error)

	// Logout forgets the in-memory session, clears the adapter token and
	// removes the persisted session file. Queued items are left untouched;
	// they belong to the user and survive until the next login.
	Logout(ctx context.Context) error

	// CurrentUserID returns the signed-in user's ID or [ErrNotAuthenticated]
	// when no session is active.
	CurrentUserID() (int64, error)
}

// ClientQueueService is the enqueue API of the sync queue. Each method
// validates the payload, wraps it in a new pending sync item and writes it
// through to the local queue store. Enqueueing never talks to the network;
// the item waits for the next drain.
type ClientQueueService interface {
	// SyncMissionProgress queues a mission progress mutation. During the
	// drain it is merge-written to users/{userID}/journeys/{missionID} after
	// a conflict check against the remote document.
	SyncMissionProgress(ctx context.Context, userID int64, progress models.MissionProgress) (models.SyncItem, error)

	// SyncStudySession queues a finished study session for append to the
	// user's study_sessions collection.
	SyncStudySession(ctx context.Context, userID int64, session models.StudySessionData) (models.SyncItem, error)

	// SyncAnalyticsEvent queues a single analytics event for append to the
	// user's analytics_events collection.
	SyncAnalyticsEvent(ctx context.Context, userID int64, event models.AnalyticsEvent) (models.SyncItem, error)

	// SyncUserPreferences queues the preferences document for a merge-write
	// into the user record.
	SyncUserPreferences(ctx context.Context, userID int64, prefs models.Preferences) (models.SyncItem, error)

	// SyncSessionSnapshot queues a generic session snapshot, merge-written to
	// a session document keyed by the new item's own ID.
	SyncSessionSnapshot(ctx context.Context, userID int64, snapshot models.SessionSnapshot) (models.SyncItem, error)
}

// ClientSyncService drains the local queue against the remote document store
// and owns conflict bookkeeping. One drain runs at a time; callers that race
// a running drain get a rejected summary instead of a second drain.
type ClientSyncService interface {
	// StartSync drains every eligible queued item of the signed-in user in
	// insertion order and reports the per-item outcomes. Item failures are
	// folded into the summary; the summary itself reports Success=false only
	// when the drain could not run at all (already in progress, no session,
	// queue unreadable).
	StartSync(ctx context.Context) models.SyncSummary

	// ForceSyncNow is the user-triggered drain. It refuses to start while
	// the connectivity probe reports offline, returning a summary with zero
	// processed items and a single error string; otherwise it behaves
	// exactly like StartSync.
	ForceSyncNow(ctx context.Context) models.SyncSummary

	// GetQueueStatus reports per-status item counts for the signed-in user's
	// queue.
	GetQueueStatus(ctx context.Context) (models.QueueStatus, error)

	// Conflicts lists the conflict records currently awaiting a resolution
	// decision for the signed-in user.
	Conflicts(ctx context.Context) ([]models.ConflictRecord, error)

	// ResolveConflicts applies caller decisions to conflicted items: local
	// re-queues the item so its next attempt wins, remote accepts the server
	// state and marks the item synced without a write, merge replaces the
	// item's payload with caller-merged data and re-queues it. Returns an
	// error if a decision is invalid or refers to an item not in conflict.
	ResolveConflicts(ctx context.Context, resolutions ...models.ConflictResolution) error

	// OnSyncComplete registers fn to be called with the summary of every
	// completed drain. Listeners run synchronously at the end of the drain;
	// calling StartSync from inside fn is rejected as already in progress.
	OnSyncComplete(fn func(models.SyncSummary))
}

// ClientSyncJob defines the contract for a background worker that
// periodically drains the sync queue for the signed-in user.
type ClientSyncJob interface {
	// Start launches the background drain goroutine. It drains every
	// interval, defaulting to 5 minutes if interval is zero or negative. Any
	// previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

// ConnectivityProbe reports the last known server reachability. The
// connectivity watcher in the workers package implements it; ForceSyncNow
// consults it before starting a drain.
type ConnectivityProbe interface {
	Online() bool
}
