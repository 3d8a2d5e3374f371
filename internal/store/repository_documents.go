package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/models"
)

// documentRepository is the PostgreSQL-backed implementation of
// [DocumentRepository]. It executes all study-document operations against
// the "journeys", "study_sessions", "analytics_events" and "user_sessions"
// tables using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced
// with structured fields (user_id, mission_id, item_id).
type documentRepository struct {
	*DB
	logger *logger.Logger
}

// NewDocumentRepository constructs a [DocumentRepository] backed by the
// provided database connection and logger.
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	return &documentRepository{
		DB:     db,
		logger: logger,
	}
}

// GetJourney retrieves the journey document for one mission of one user.
//
// Returns [ErrDocumentNotFound] when the mission has never been written for
// this user; the sync client relies on that to distinguish "no remote yet"
// from a transport failure.
func (d *documentRepository) GetJourney(ctx context.Context, userID int64, missionID string) (models.JourneyDocument, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectJourneyQuery(ctx, userID, missionID)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.GetJourney").
			Int64("user_id", userID).
			Str("mission_id", missionID).
			Msg("failed to create query")
		return models.JourneyDocument{}, err
	}

	row := d.DB.QueryRowContext(ctx, query, args...)
	if rowErr := row.Err(); rowErr != nil {
		log.Err(rowErr).
			Str("func", "documentRepository.GetJourney").
			Int64("user_id", userID).
			Str("mission_id", missionID).
			Msg("failed to execute query for getting journey document")
		return models.JourneyDocument{}, fmt.Errorf("%w: %w", ErrExecutingQuery, rowErr)
	}

	doc, err := scanJourneyRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JourneyDocument{}, ErrDocumentNotFound
		}
		log.Err(err).
			Str("func", "documentRepository.GetJourney").
			Int64("user_id", userID).
			Str("mission_id", missionID).
			Msg("failed to scan journey row")
		return models.JourneyDocument{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return doc, nil
}

// UpsertJourney writes the journey document, overwriting any existing one
// for the same (user_id, mission_id). The server refreshes updated_at on
// every write; the returned document carries the server-assigned value.
func (d *documentRepository) UpsertJourney(ctx context.Context, doc models.JourneyDocument) (models.JourneyDocument, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertJourneyQuery(ctx, doc)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.UpsertJourney").
			Int64("user_id", doc.UserID).
			Str("mission_id", doc.MissionID).
			Msg("failed to create query")
		return models.JourneyDocument{}, err
	}

	row := d.DB.QueryRowContext(ctx, query, args...)
	if rowErr := row.Err(); rowErr != nil {
		log.Err(rowErr).
			Str("func", "documentRepository.UpsertJourney").
			Int64("user_id", doc.UserID).
			Str("mission_id", doc.MissionID).
			Msg("failed to execute upsert for journey document")
		return models.JourneyDocument{}, fmt.Errorf("%w: %w", ErrExecutingQuery, rowErr)
	}

	stored, err := scanJourneyRow(row)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.UpsertJourney").
			Int64("user_id", doc.UserID).
			Str("mission_id", doc.MissionID).
			Msg("failed to scan journey row")
		return models.JourneyDocument{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	log.Debug().
		Str("func", "documentRepository.UpsertJourney").
		Int64("user_id", stored.UserID).
		Str("mission_id", stored.MissionID).
		Time("updated_at", stored.UpdatedAt).
		Msg("journey document written")

	return stored, nil
}

// AppendStudySession appends one study session record to the user's
// append-only study_sessions collection.
func (d *documentRepository) AppendStudySession(ctx context.Context, rec models.StudySessionRecord) (models.StudySessionRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertStudySessionQuery(ctx, rec)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.AppendStudySession").
			Int64("user_id", rec.UserID).
			Msg("failed to create query")
		return models.StudySessionRecord{}, err
	}

	if err := d.DB.QueryRowContext(ctx, query, args...).Scan(&rec.ID, &rec.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "documentRepository.AppendStudySession").
			Int64("user_id", rec.UserID).
			Msg("failed to insert study session")
		return models.StudySessionRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return rec, nil
}

// AppendAnalyticsEvent appends one analytics event to the user's append-only
// analytics_events collection.
func (d *documentRepository) AppendAnalyticsEvent(ctx context.Context, rec models.AnalyticsEventRecord) (models.AnalyticsEventRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertAnalyticsEventQuery(ctx, rec)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.AppendAnalyticsEvent").
			Int64("user_id", rec.UserID).
			Msg("failed to create query")
		return models.AnalyticsEventRecord{}, err
	}

	if err := d.DB.QueryRowContext(ctx, query, args...).Scan(&rec.ID, &rec.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "documentRepository.AppendAnalyticsEvent").
			Int64("user_id", rec.UserID).
			Str("event_type", rec.Event.EventType).
			Msg("failed to insert analytics event")
		return models.AnalyticsEventRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return rec, nil
}

// UpsertSession writes a session snapshot keyed by the queued item's id,
// overwriting any previous snapshot stored under the same key.
func (d *documentRepository) UpsertSession(ctx context.Context, doc models.SessionDocument) (models.SessionDocument, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertSessionQuery(ctx, doc)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.UpsertSession").
			Int64("user_id", doc.UserID).
			Str("item_id", doc.ItemID).
			Msg("failed to create query")
		return models.SessionDocument{}, err
	}

	row := d.DB.QueryRowContext(ctx, query, args...)

	var stored models.SessionDocument
	var snapshotRaw []byte
	if err := row.Scan(&stored.UserID, &stored.ItemID, &snapshotRaw, &stored.UpdatedAt); err != nil {
		log.Err(err).
			Str("func", "documentRepository.UpsertSession").
			Int64("user_id", doc.UserID).
			Str("item_id", doc.ItemID).
			Msg("failed to scan session row")
		return models.SessionDocument{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if len(snapshotRaw) > 0 {
		if err := json.Unmarshal(snapshotRaw, &stored.Snapshot); err != nil {
			return models.SessionDocument{}, fmt.Errorf("decode snapshot column: %w", err)
		}
	}

	return stored, nil
}

// scanJourneyRow scans an all-columns journey row, decoding the progress
// JSONB payload into its typed form.
func scanJourneyRow(row *sql.Row) (models.JourneyDocument, error) {
	var doc models.JourneyDocument
	var progressRaw []byte

	if err := row.Scan(&doc.UserID, &doc.MissionID, &progressRaw, &doc.UpdatedAt); err != nil {
		return models.JourneyDocument{}, err
	}

	if len(progressRaw) > 0 {
		if err := json.Unmarshal(progressRaw, &doc.Progress); err != nil {
			return models.JourneyDocument{}, fmt.Errorf("decode progress column: %w", err)
		}
	}

	return doc, nil
}
