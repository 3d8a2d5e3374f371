package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/models"
)

// queueRepository keeps the sync queue in memory as the working set and
// writes every mutation through to SQLite within the same call. Reads are
// served from memory; the database exists so the queue survives restarts.
//
// Write-through failures are logged and swallowed: the in-memory queue still
// holds the mutation for the current run, only durability across restarts is
// lost. A later Persist heals rows that missed their INSERT, so the gap
// closes as soon as the database recovers.
//
// Timestamps are stored as RFC 3339 text in UTC. Nullable attempt columns
// round-trip through [sql.NullString].
type queueRepository struct {
	*DB
	logger *logger.Logger

	mu        sync.RWMutex
	items     []models.SyncItem       // insertion order, all users
	conflicts []models.ConflictRecord // one record per item id
}

// NewQueueRepository constructs a [QueueRepository] backed by the provided
// SQLite connection. The previously persisted queue is hydrated into memory
// immediately; rows that fail to decode are logged and skipped.
func NewQueueRepository(ctx context.Context, db *DB, logger *logger.Logger) QueueRepository {
	q := &queueRepository{
		DB:     db,
		logger: logger,
	}
	q.hydrate(ctx)

	return q
}

// Enqueue appends one item to the tail of the queue and writes it through.
// A storage failure does not abort the enqueue: the item stays in the
// working set for the current run and the failure is logged.
func (q *queueRepository) Enqueue(ctx context.Context, item models.SyncItem) error {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()

	if err := q.insertItem(ctx, item); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "queueRepository.Enqueue").
			Str("item_id", item.ID).
			Str("type", string(item.Type)).
			Msg("sync item held in memory only, write-through failed")
	}

	return nil
}

// LoadAll returns the user's whole queue in enqueue order, including synced,
// failed and conflicted items. Filtering out ineligible items is the
// caller's job; the store never drops entries on its own.
func (q *queueRepository) LoadAll(ctx context.Context, userID int64) ([]models.SyncItem, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	var items []models.SyncItem
	for _, item := range q.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}

	return items, nil
}

// Persist rewrites the mutable fields of the given items in the working set
// and writes the same update through to SQLite. Position and owner never
// change after enqueue. Returns [ErrSyncItemNotFound] when an item was never
// enqueued; write-through failures are logged and swallowed.
func (q *queueRepository) Persist(ctx context.Context, items ...models.SyncItem) error {
	if len(items) == 0 {
		return nil
	}

	q.mu.Lock()
	idxs := make([]int, len(items))
	for i, item := range items {
		idx := q.indexOfLocked(item.ID)
		if idx < 0 {
			q.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrSyncItemNotFound, item.ID)
		}
		idxs[i] = idx
	}
	for i, item := range items {
		item.UserID = q.items[idxs[i]].UserID
		q.items[idxs[i]] = item
	}
	q.mu.Unlock()

	if err := q.updateStored(ctx, items); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "queueRepository.Persist").
			Msg("queue state held in memory only, write-through failed")
	}

	return nil
}

// Clear removes every queued item of the user together with any recorded
// conflict snapshots.
func (q *queueRepository) Clear(ctx context.Context, userID int64) error {
	q.mu.Lock()
	kept := q.items[:0]
	for _, item := range q.items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	q.items = kept

	keptConflicts := q.conflicts[:0]
	for _, rec := range q.conflicts {
		if rec.LocalItem.UserID != userID {
			keptConflicts = append(keptConflicts, rec)
		}
	}
	q.conflicts = keptConflicts
	q.mu.Unlock()

	if err := q.clearStored(ctx, userID); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "queueRepository.Clear").
			Int64("user_id", userID).
			Msg("queue cleared in memory only, write-through failed")
	}

	return nil
}

// SaveConflict stores one detected conflict, overwriting a previous record
// for the same item.
func (q *queueRepository) SaveConflict(ctx context.Context, rec models.ConflictRecord) error {
	q.mu.Lock()
	replaced := false
	for i := range q.conflicts {
		if q.conflicts[i].LocalItem.ID == rec.LocalItem.ID {
			q.conflicts[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		q.conflicts = append(q.conflicts, rec)
	}
	q.mu.Unlock()

	if err := q.insertConflict(ctx, rec); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "queueRepository.SaveConflict").
			Str("item_id", rec.LocalItem.ID).
			Msg("conflict record held in memory only, write-through failed")
	}

	return nil
}

// LoadConflicts returns the user's unresolved conflict records ordered by
// detection time.
func (q *queueRepository) LoadConflicts(ctx context.Context, userID int64) ([]models.ConflictRecord, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	var records []models.ConflictRecord
	for _, rec := range q.conflicts {
		if rec.LocalItem.UserID == userID {
			records = append(records, rec)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DetectedAt.Before(records[j].DetectedAt)
	})

	return records, nil
}

// DeleteConflict removes the conflict record of one resolved item.
// Returns [ErrConflictNotFound] when no record exists for the id.
func (q *queueRepository) DeleteConflict(ctx context.Context, itemID string) error {
	q.mu.Lock()
	idx := -1
	for i := range q.conflicts {
		if q.conflicts[i].LocalItem.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrConflictNotFound, itemID)
	}
	q.conflicts = append(q.conflicts[:idx], q.conflicts[idx+1:]...)
	q.mu.Unlock()

	if _, err := q.DB.ExecContext(ctx, deleteConflictRecord, itemID); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "queueRepository.DeleteConflict").
			Str("item_id", itemID).
			Msg("conflict record removed in memory only, write-through failed")
	}

	return nil
}

// ── hydration ──

// hydrate loads the persisted queue and conflict records into the working
// set. A failed read starts the session with whatever could be loaded; the
// error is logged, not returned, matching the write-through policy.
func (q *queueRepository) hydrate(ctx context.Context) {
	rows, err := q.DB.QueryContext(ctx, getWholeQueue)
	if err != nil {
		q.logger.Err(err).
			Str("func", "queueRepository.hydrate").
			Msg("failed to load persisted queue, starting with an empty working set")
		return
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanQueueRow(rows)
		if err != nil {
			q.logger.Err(err).
				Str("func", "queueRepository.hydrate").
				Msg("skipping sync queue row that failed to decode")
			continue
		}
		q.items = append(q.items, item)
	}
	if err := rows.Err(); err != nil {
		q.logger.Err(err).
			Str("func", "queueRepository.hydrate").
			Msg("sync queue hydration stopped early")
	}

	q.hydrateConflicts(ctx)
}

func (q *queueRepository) hydrateConflicts(ctx context.Context) {
	rows, err := q.DB.QueryContext(ctx, getAllConflicts)
	if err != nil {
		q.logger.Err(err).
			Str("func", "queueRepository.hydrateConflicts").
			Msg("failed to load persisted conflict records")
		return
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanConflictRow(rows)
		if err != nil {
			q.logger.Err(err).
				Str("func", "queueRepository.hydrateConflicts").
				Msg("skipping conflict row that failed to decode")
			continue
		}
		q.conflicts = append(q.conflicts, rec)
	}
	if err := rows.Err(); err != nil {
		q.logger.Err(err).
			Str("func", "queueRepository.hydrateConflicts").
			Msg("conflict hydration stopped early")
	}
}

// ── write-through ──

func (q *queueRepository) insertItem(ctx context.Context, item models.SyncItem) error {
	dataJSON, err := json.Marshal(item.Data)
	if err != nil {
		return fmt.Errorf("encode payload for item %q: %w", item.ID, err)
	}

	_, err = q.DB.ExecContext(ctx, enqueueSyncItem,
		item.ID,
		item.UserID,
		string(item.Type),
		string(dataJSON),
		encodeQueueTime(item.Timestamp),
		string(item.Status),
		item.RetryCount,
		encodeQueueTimePtr(item.LastAttempt),
		encodeQueueTimePtr(item.NextAttempt),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// updateStored writes the updated items to SQLite. A single item skips the
// transaction; a batch runs inside one so a drain outcome is stored all or
// nothing. A row missed by an earlier failed INSERT is healed in place.
func (q *queueRepository) updateStored(ctx context.Context, items []models.SyncItem) error {
	if len(items) == 1 {
		return q.updateOne(ctx, items[0])
	}

	tx, err := q.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, updateSyncItem)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer stmt.Close()

	for _, item := range items {
		args, err := updateArgs(item)
		if err != nil {
			return err
		}

		res, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			if err := insertItemTx(ctx, tx, item); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (q *queueRepository) updateOne(ctx context.Context, item models.SyncItem) error {
	args, err := updateArgs(item)
	if err != nil {
		return err
	}

	res, err := q.DB.ExecContext(ctx, updateSyncItem, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return q.insertItem(ctx, item)
	}

	return nil
}

func insertItemTx(ctx context.Context, tx *sql.Tx, item models.SyncItem) error {
	dataJSON, err := json.Marshal(item.Data)
	if err != nil {
		return fmt.Errorf("encode payload for item %q: %w", item.ID, err)
	}

	_, err = tx.ExecContext(ctx, enqueueSyncItem,
		item.ID,
		item.UserID,
		string(item.Type),
		string(dataJSON),
		encodeQueueTime(item.Timestamp),
		string(item.Status),
		item.RetryCount,
		encodeQueueTimePtr(item.LastAttempt),
		encodeQueueTimePtr(item.NextAttempt),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (q *queueRepository) clearStored(ctx context.Context, userID int64) error {
	tx, err := q.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, clearQueueForUser, userID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if _, err := tx.ExecContext(ctx, clearConflictsForUser, userID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (q *queueRepository) insertConflict(ctx context.Context, rec models.ConflictRecord) error {
	localJSON, err := json.Marshal(rec.LocalItem)
	if err != nil {
		return fmt.Errorf("encode conflicted item %q: %w", rec.LocalItem.ID, err)
	}
	remoteJSON, err := json.Marshal(rec.Remote)
	if err != nil {
		return fmt.Errorf("encode remote snapshot for item %q: %w", rec.LocalItem.ID, err)
	}

	_, err = q.DB.ExecContext(ctx, saveConflictRecord,
		rec.LocalItem.ID,
		rec.LocalItem.UserID,
		string(localJSON),
		string(remoteJSON),
		encodeQueueTime(rec.DetectedAt),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// indexOfLocked returns the working-set index of the item or -1. Callers
// hold q.mu.
func (q *queueRepository) indexOfLocked(itemID string) int {
	for i := range q.items {
		if q.items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// ── row decoding ──

// scanQueueRow scans one sync_queue row, rebuilding the typed payload from
// the stored type tag and raw JSON.
func scanQueueRow(rows *sql.Rows) (models.SyncItem, error) {
	var (
		item        models.SyncItem
		itemType    string
		dataRaw     []byte
		timestamp   string
		status      string
		lastAttempt sql.NullString
		nextAttempt sql.NullString
	)

	if err := rows.Scan(
		&item.ID,
		&item.UserID,
		&itemType,
		&dataRaw,
		&timestamp,
		&status,
		&item.RetryCount,
		&lastAttempt,
		&nextAttempt,
	); err != nil {
		return models.SyncItem{}, err
	}

	item.Type = models.SyncItemType(itemType)
	item.Status = models.SyncStatus(status)

	payload, err := models.DecodePayload(item.Type, dataRaw)
	if err != nil {
		return models.SyncItem{}, err
	}
	item.Data = payload

	if item.Timestamp, err = decodeQueueTime(timestamp); err != nil {
		return models.SyncItem{}, fmt.Errorf("decode timestamp for item %q: %w", item.ID, err)
	}
	if item.LastAttempt, err = decodeQueueTimePtr(lastAttempt); err != nil {
		return models.SyncItem{}, fmt.Errorf("decode last_attempt for item %q: %w", item.ID, err)
	}
	if item.NextAttempt, err = decodeQueueTimePtr(nextAttempt); err != nil {
		return models.SyncItem{}, fmt.Errorf("decode next_attempt for item %q: %w", item.ID, err)
	}

	return item, nil
}

// scanConflictRow scans one sync_conflicts row, rebuilding both sides of the
// conflict from their stored JSON envelopes.
func scanConflictRow(rows *sql.Rows) (models.ConflictRecord, error) {
	var (
		itemID     string
		ownerID    int64
		localRaw   []byte
		remoteRaw  []byte
		detectedAt string
	)
	if err := rows.Scan(&itemID, &ownerID, &localRaw, &remoteRaw, &detectedAt); err != nil {
		return models.ConflictRecord{}, err
	}

	var rec models.ConflictRecord
	if err := json.Unmarshal(localRaw, &rec.LocalItem); err != nil {
		return models.ConflictRecord{}, fmt.Errorf("decode conflicted item %q: %w", itemID, err)
	}
	if err := json.Unmarshal(remoteRaw, &rec.Remote); err != nil {
		return models.ConflictRecord{}, fmt.Errorf("decode remote snapshot for item %q: %w", itemID, err)
	}

	var err error
	if rec.DetectedAt, err = decodeQueueTime(detectedAt); err != nil {
		return models.ConflictRecord{}, fmt.Errorf("decode detected_at for item %q: %w", itemID, err)
	}

	return rec, nil
}

// updateArgs assembles the updateSyncItem argument list for one item.
func updateArgs(item models.SyncItem) ([]any, error) {
	dataJSON, err := json.Marshal(item.Data)
	if err != nil {
		return nil, fmt.Errorf("encode payload for item %q: %w", item.ID, err)
	}

	return []any{
		string(dataJSON),
		encodeQueueTime(item.Timestamp),
		string(item.Status),
		item.RetryCount,
		encodeQueueTimePtr(item.LastAttempt),
		encodeQueueTimePtr(item.NextAttempt),
		item.ID,
	}, nil
}

func encodeQueueTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func encodeQueueTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return encodeQueueTime(*t)
}

func decodeQueueTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func decodeQueueTimePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := decodeQueueTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
