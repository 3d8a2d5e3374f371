package store

// Local queue schema. SQLite keeps every timestamp as RFC3339 text so the
// file stays readable with the sqlite3 shell during debugging.
const createQueueSchema = `
	CREATE TABLE IF NOT EXISTS sync_queue (
		id           TEXT PRIMARY KEY,
		user_id      INTEGER NOT NULL,
		type         TEXT    NOT NULL,
		data         TEXT    NOT NULL,
		timestamp    TEXT    NOT NULL,
		status       TEXT    NOT NULL,
		retry_count  INTEGER NOT NULL DEFAULT 0,
		last_attempt TEXT,
		next_attempt TEXT,
		position     INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sync_queue_user_position
		ON sync_queue (user_id, position);

	CREATE TABLE IF NOT EXISTS sync_conflicts (
		item_id     TEXT PRIMARY KEY,
		user_id     INTEGER NOT NULL,
		local_item  TEXT    NOT NULL,
		remote_data TEXT    NOT NULL,
		detected_at TEXT    NOT NULL
	);`

const (
	// position is assigned inside the INSERT so concurrent enqueues cannot
	// reuse a number: SQLite serializes writers on the file.
	enqueueSyncItem = `
	INSERT INTO sync_queue (id, user_id, type, data, timestamp, status, retry_count, last_attempt, next_attempt, position)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM sync_queue));`

	getWholeQueue = `
	SELECT id, user_id, type, data, timestamp, status, retry_count, last_attempt, next_attempt
	FROM sync_queue
	ORDER BY position ASC;`

	getAllConflicts = `
	SELECT item_id, user_id, local_item, remote_data, detected_at
	FROM sync_conflicts
	ORDER BY detected_at ASC;`

	updateSyncItem = `
	UPDATE sync_queue
	SET data = ?, timestamp = ?, status = ?, retry_count = ?, last_attempt = ?, next_attempt = ?
	WHERE id = ?;`

	clearQueueForUser = `DELETE FROM sync_queue WHERE user_id = ?;`

	clearConflictsForUser = `DELETE FROM sync_conflicts WHERE user_id = ?;`

	saveConflictRecord = `
	INSERT INTO sync_conflicts (item_id, user_id, local_item, remote_data, detected_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (item_id) DO UPDATE
	SET local_item = excluded.local_item, remote_data = excluded.remote_data, detected_at = excluded.detected_at;`

	deleteConflictRecord = `DELETE FROM sync_conflicts WHERE item_id = ?;`
)
