package store

import (
	"context"

	"github.com/MKhiriev/go-study-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// QueueRepository is the local persistent sync queue. The in-memory queue is
// the working set; every mutation is written through to the SQLite file
// synchronously within the call. A failed write-through is logged, not
// returned: the mutation stays live for the current run and only durability
// across restarts is lost.
//
// Items survive until [QueueRepository.Clear]; a drain never deletes them,
// it only rewrites their status fields via [QueueRepository.Persist].
type QueueRepository interface {
	Enqueue(ctx context.Context, item models.SyncItem) error
	LoadAll(ctx context.Context, userID int64) ([]models.SyncItem, error)
	Persist(ctx context.Context, items ...models.SyncItem) error
	Clear(ctx context.Context, userID int64) error

	SaveConflict(ctx context.Context, rec models.ConflictRecord) error
	LoadConflicts(ctx context.Context, userID int64) ([]models.ConflictRecord, error)
	DeleteConflict(ctx context.Context, itemID string) error
}

// SessionStore persists the restored login session between client runs.
type SessionStore interface {
	SaveSession(session Session) error
	LoadSession() (Session, error)
	ClearSession() error
}
