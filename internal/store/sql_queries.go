package store

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-study-sync/models"
)

const (
	createUser = `INSERT INTO users (login, name, password_hash, preferences)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, login, name, password_hash, preferences, created_at;`

	findUserByLogin = `SELECT user_id, login, name, password_hash, preferences, created_at
    FROM users
    WHERE login = $1;`
)

// psql builds PostgreSQL-flavoured statements with $1-style placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildSelectJourneyQuery builds the lookup for a single journey document.
// Argument order is (user_id, mission_id).
func buildSelectJourneyQuery(ctx context.Context, userID int64, missionID string) (string, []any, error) {
	query, args, err := psql.
		Select("user_id", "mission_id", "progress", "updated_at").
		From("journeys").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"mission_id": missionID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpsertJourneyQuery builds the journey merge-write. Fields absent from
// the incoming document keep their stored values; the server refreshes
// updated_at on every write, which is what a later conflict check compares
// against.
func buildUpsertJourneyQuery(ctx context.Context, doc models.JourneyDocument) (string, []any, error) {
	progress, err := json.Marshal(doc.Progress)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := psql.
		Insert("journeys").
		Columns("user_id", "mission_id", "progress").
		Values(doc.UserID, doc.MissionID, string(progress)).
		Suffix(`ON CONFLICT (user_id, mission_id)
			DO UPDATE SET progress = journeys.progress || EXCLUDED.progress, updated_at = now()
			RETURNING user_id, mission_id, progress, updated_at`).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildInsertStudySessionQuery builds the append-only study session insert.
func buildInsertStudySessionQuery(ctx context.Context, rec models.StudySessionRecord) (string, []any, error) {
	session, err := json.Marshal(rec.Session)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := psql.
		Insert("study_sessions").
		Columns("user_id", "session").
		Values(rec.UserID, string(session)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildInsertAnalyticsEventQuery builds the append-only analytics insert.
func buildInsertAnalyticsEventQuery(ctx context.Context, rec models.AnalyticsEventRecord) (string, []any, error) {
	event, err := json.Marshal(rec.Event)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := psql.
		Insert("analytics_events").
		Columns("user_id", "event").
		Values(rec.UserID, string(event)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpsertSessionQuery builds the session snapshot write, keyed by the
// queued item's own id.
func buildUpsertSessionQuery(ctx context.Context, doc models.SessionDocument) (string, []any, error) {
	snapshot, err := json.Marshal(doc.Snapshot)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := psql.
		Insert("user_sessions").
		Columns("user_id", "item_id", "snapshot").
		Values(doc.UserID, doc.ItemID, string(snapshot)).
		Suffix(`ON CONFLICT (user_id, item_id)
			DO UPDATE SET snapshot = user_sessions.snapshot || EXCLUDED.snapshot, updated_at = now()
			RETURNING user_id, item_id, snapshot, updated_at`).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildMergePreferencesQuery builds the preferences merge-write on the user
// record. The incoming document is shallow-merged over the stored one, so
// fields the client did not send keep their values; the full user row comes
// back.
func buildMergePreferencesQuery(ctx context.Context, userID int64, prefs models.Preferences) (string, []any, error) {
	merged, err := json.Marshal(prefs)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := psql.
		Update("users").
		Set("preferences", sq.Expr("preferences || ?::jsonb", string(merged))).
		Where(sq.Eq{"user_id": userID}).
		Suffix("RETURNING user_id, login, name, password_hash, preferences, created_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
