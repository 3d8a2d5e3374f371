package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/internal/store"
	"github.com/MKhiriev/go-study-sync/models"
)

// documentService is the concrete implementation of DocumentService. It
// validates identity fields and delegates persistence to the repositories;
// merge semantics and updated_at stamping live in the repository SQL.
// Preferences are part of the user record, so their merge goes through the
// UserRepository.
type documentService struct {
	documents store.DocumentRepository
	users     store.UserRepository
	logger    *logger.Logger
}

func NewDocumentService(documents store.DocumentRepository, users store.UserRepository, logger *logger.Logger) DocumentService {
	return &documentService{documents: documents, users: users, logger: logger}
}

// GetJourney returns the journey document for one mission. Propagates
// store.ErrDocumentNotFound when the mission has never been written, which
// the client treats as "no remote yet".
func (s *documentService) GetJourney(ctx context.Context, userID int64, missionID string) (models.JourneyDocument, error) {
	if userID <= 0 || missionID == "" {
		return models.JourneyDocument{}, ErrInvalidDataProvided
	}

	doc, err := s.documents.GetJourney(ctx, userID, missionID)
	if err != nil {
		return models.JourneyDocument{}, fmt.Errorf("get journey: %w", err)
	}

	return doc, nil
}

// UpsertJourney merge-writes the journey document and returns the stored
// state with the refreshed UpdatedAt.
func (s *documentService) UpsertJourney(ctx context.Context, doc models.JourneyDocument) (models.JourneyDocument, error) {
	if doc.UserID <= 0 || doc.MissionID == "" {
		return models.JourneyDocument{}, ErrInvalidDataProvided
	}

	stored, err := s.documents.UpsertJourney(ctx, doc)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Int64("userID", doc.UserID).
			Str("missionID", doc.MissionID).
			Msg("journey upsert failed")
		return models.JourneyDocument{}, fmt.Errorf("upsert journey: %w", err)
	}

	return stored, nil
}

// AppendStudySession appends one finished study session to the user's
// study_sessions collection.
func (s *documentService) AppendStudySession(ctx context.Context, rec models.StudySessionRecord) (models.StudySessionRecord, error) {
	if rec.UserID <= 0 {
		return models.StudySessionRecord{}, ErrInvalidDataProvided
	}

	stored, err := s.documents.AppendStudySession(ctx, rec)
	if err != nil {
		return models.StudySessionRecord{}, fmt.Errorf("append study session: %w", err)
	}

	return stored, nil
}

// AppendAnalyticsEvent appends one analytics event to the user's
// analytics_events collection.
func (s *documentService) AppendAnalyticsEvent(ctx context.Context, rec models.AnalyticsEventRecord) (models.AnalyticsEventRecord, error) {
	if rec.UserID <= 0 {
		return models.AnalyticsEventRecord{}, ErrInvalidDataProvided
	}

	stored, err := s.documents.AppendAnalyticsEvent(ctx, rec)
	if err != nil {
		return models.AnalyticsEventRecord{}, fmt.Errorf("append analytics event: %w", err)
	}

	return stored, nil
}

// MergePreferences merge-writes the preferences document into the user
// record and returns the updated user.
func (s *documentService) MergePreferences(ctx context.Context, userID int64, prefs models.Preferences) (models.User, error) {
	if userID <= 0 {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := s.users.MergePreferences(ctx, userID, prefs)
	if err != nil {
		return models.User{}, fmt.Errorf("merge preferences: %w", err)
	}

	return user, nil
}

// UpsertSession merge-writes a generic session snapshot keyed by the queued
// item's id.
func (s *documentService) UpsertSession(ctx context.Context, doc models.SessionDocument) (models.SessionDocument, error) {
	if doc.UserID <= 0 || doc.ItemID == "" {
		return models.SessionDocument{}, ErrInvalidDataProvided
	}

	stored, err := s.documents.UpsertSession(ctx, doc)
	if err != nil {
		return models.SessionDocument{}, fmt.Errorf("upsert session: %w", err)
	}

	return stored, nil
}
