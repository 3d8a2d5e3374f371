// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.DocumentRepository
// ─────────────────────────────────────────────

type mockDocumentStorage struct {
	getJourneyFn  func(ctx context.Context, userID int64, missionID string) (models.JourneyDocument, error)
	upsJourneyFn  func(ctx context.Context, doc models.JourneyDocument) (models.JourneyDocument, error)
	appSessionFn  func(ctx context.Context, rec models.StudySessionRecord) (models.StudySessionRecord, error)
	appEventFn    func(ctx context.Context, rec models.AnalyticsEventRecord) (models.AnalyticsEventRecord, error)
	upsSnapshotFn func(ctx context.Context, doc models.SessionDocument) (models.SessionDocument, error)
}

func (m *mockDocumentStorage) GetJourney(ctx context.Context, userID int64, missionID string) (models.JourneyDocument, error) {
	if m.getJourneyFn != nil {
		return m.getJourneyFn(ctx, userID, missionID)
	}
	return models.JourneyDocument{}, nil
}

func (m *mockDocumentStorage) UpsertJourney(ctx context.Context, doc models.JourneyDocument) (models.JourneyDocument, error) {
	if m.upsJourneyFn != nil {
		return m.upsJourneyFn(ctx, doc)
	}
	return doc, nil
}

func (m *mockDocumentStorage) AppendStudySession(ctx context.Context, rec models.StudySessionRecord) (models.StudySessionRecord, error) {
	if m.appSessionFn != nil {
		return m.appSessionFn(ctx, rec)
	}
	return rec, nil
}

func (m *mockDocumentStorage) AppendAnalyticsEvent(ctx context.Context, rec models.AnalyticsEventRecord) (models.AnalyticsEventRecord, error) {
	if m.appEventFn != nil {
		return m.appEventFn(ctx, rec)
	}
	return rec, nil
}

func (m *mockDocumentStorage) UpsertSession(ctx context.Context, doc models.SessionDocument) (models.SessionDocument, error) {
	if m.upsSnapshotFn != nil {
		return m.upsSnapshotFn(ctx, doc)
	}
	return doc, nil
}

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserStorage struct {
	createFn func(ctx context.Context, user models.User) (models.User, error)
	findFn   func(ctx context.Context, user models.User) (models.User, error)
	mergeFn  func(ctx context.Context, userID int64, prefs models.Preferences) (models.User, error)
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserStorage) FindUserByLogin(ctx context.Context, user models.User) (models.User, error) {
	if m.findFn != nil {
		return m.findFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserStorage) MergePreferences(ctx context.Context, userID int64, prefs models.Preferences) (models.User, error) {
	if m.mergeFn != nil {
		return m.mergeFn(ctx, userID, prefs)
	}
	return models.User{UserID: userID, Preferences: prefs}, nil
}

// ─────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────

func newRawDocumentService(documents *mockDocumentStorage, users *mockUserStorage) *documentService {
	return &documentService{
		documents: documents,
		users:     users,
		logger:    logger.Nop(),
	}
}

var errStorage = errors.New("storage error")

// ─────────────────────────────────────────────
// GetJourney
// ─────────────────────────────────────────────

func TestDocumentService_GetJourney_Success(t *testing.T) {
	expected := models.JourneyDocument{
		MissionID: "algebra-basics",
		UserID:    7,
		Progress:  models.MissionProgress{MissionID: "algebra-basics", Percent: 60},
		UpdatedAt: time.Date(2026, 4, 7, 10, 0, 0, 0, time.UTC),
	}
	storage := &mockDocumentStorage{
		getJourneyFn: func(_ context.Context, userID int64, missionID string) (models.JourneyDocument, error) {
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, "algebra-basics", missionID)
			return expected, nil
		},
	}
	svc := newRawDocumentService(storage, &mockUserStorage{})

	result, err := svc.GetJourney(context.Background(), 7, "algebra-basics")

	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestDocumentService_GetJourney_StorageError(t *testing.T) {
	storage := &mockDocumentStorage{
		getJourneyFn: func(_ context.Context, _ int64, _ string) (models.JourneyDocument, error) {
			return models.JourneyDocument{}, errStorage
		},
	}
	svc := newRawDocumentService(storage, &mockUserStorage{})

	_, err := svc.GetJourney(context.Background(), 7, "algebra-basics")

	require.ErrorIs(t, err, errStorage)
}

func TestDocumentService_GetJourney_InvalidIdentity(t *testing.T) {
	svc := newRawDocumentService(&mockDocumentStorage{}, &mockUserStorage{})

	_, err := svc.GetJourney(context.Background(), 0, "algebra-basics")
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.GetJourney(context.Background(), 7, "")
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─────────────────────────────────────────────
// UpsertJourney
// ─────────────────────────────────────────────

func TestDocumentService_UpsertJourney_Success(t *testing.T) {
	doc := models.JourneyDocument{
		MissionID: "algebra-basics",
		UserID:    7,
		Progress:  models.MissionProgress{MissionID: "algebra-basics", Percent: 75},
	}
	stamped := doc
	stamped.UpdatedAt = time.Date(2026, 4, 7, 11, 0, 0, 0, time.UTC)

	storage := &mockDocumentStorage{
		upsJourneyFn: func(_ context.Context, d models.JourneyDocument) (models.JourneyDocument, error) {
			assert.Equal(t, doc, d)
			return stamped, nil
		},
	}
	svc := newRawDocumentService(storage, &mockUserStorage{})

	result, err := svc.UpsertJourney(context.Background(), doc)

	require.NoError(t, err)
	// the stored state comes back, including the refreshed updated_at
	assert.Equal(t, stamped, result)
}

func TestDocumentService_UpsertJourney_StorageError(t *testing.T) {
	storage := &mockDocumentStorage{
		upsJourneyFn: func(_ context.Context, _ models.JourneyDocument) (models.JourneyDocument, error) {
			return models.JourneyDocument{}, errStorage
		},
	}
	svc := newRawDocumentService(storage, &mockUserStorage{})

	_, err := svc.UpsertJourney(context.Background(), models.JourneyDocument{UserID: 7, MissionID: "m"})

	require.ErrorIs(t, err, errStorage)
}

func TestDocumentService_UpsertJourney_InvalidIdentity(t *testing.T) {
	svc := newRawDocumentService(&mockDocumentStorage{}, &mockUserStorage{})

	_, err := svc.UpsertJourney(context.Background(), models.JourneyDocument{MissionID: "m"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.UpsertJourney(context.Background(), models.JourneyDocument{UserID: 7})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─────────────────────────────────────────────
// AppendStudySession
// ─────────────────────────────────────────────

func TestDocumentService_AppendStudySession_Success(t *testing.T) {
	rec := models.StudySessionRecord{
		ID:     1,
		UserID: 7,
		Session: models.StudySessionData{
			SessionID:         "sess-123",
			Subject:           "Math",
			TimeSpent:         30,
			QuestionsAnswered: 10,
			Accuracy:          0.8,
		},
	}
	stamped := rec
	stamped.CreatedAt = time.Date(2026, 4, 7, 11, 0, 0, 0, time.UTC)

	storage := &mockDocumentStorage{
		appSessionFn: func(_ context.Context, r models.StudySessionRecord) (models.StudySessionRecord, error) {
			assert.Equal(t, rec, r)
			return stamped, nil
		},
	}
	svc := newRawDocumentService(storage, &mockUserStorage{})

	result, err := svc.AppendStudySession(context.Background(), rec)

	require.NoError(t, err)
	assert.Equal(t, stamped, result)
}

func TestDocumentService_AppendStudySession_StorageError(t *testing.T) {
	storage := &mockDocumentStorage{
		appSessionFn: func(_ context.Context, _ models.StudySessionRecord) (models.StudySessionRecord, error) {
			return models.StudySessionRecord{}, errStorage
		},
	}
	svc := newRawDocumentService(storage, &mockUserStorage{})

	_, err := svc.AppendStudySession(context.Background(), models.StudySessionRecord{UserID: 7})

	require.ErrorIs(t, err, errStorage)
}

func TestDocumentService_AppendStudySession_InvalidIdentity(t *testing.T) {
	svc := newRawDocumentService(&mockDocumentStorage{}, &mockUserStorage{})

	_, err := svc.AppendStudySession(context.Background(), models.StudySessionRecord{})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─────────────────────────────────────────────
// AppendAnalyticsEvent
// ─────────────────────────────────────────────

func TestDocumentService_AppendAnalyticsEvent_Success(t *testing.T) {
	rec := models.AnalyticsEventRecord{
		ID:     2,
		UserID: 7,
		Event: models.AnalyticsEvent{
			EventType:  "mission_completed",
			EventData:  map[string]any{"mission_id": "algebra-basics"},
			OccurredAt: time.Date(2026, 4, 7, 10, 30, 0, 0, time.UTC),
		},
	}
	storage := &mockDocumentStorage{
		appEventFn: func(_ context.Context, r models.AnalyticsEventRecord) (models.AnalyticsEventRecord, error) {
			assert.Equal(t, rec, r)
			return r, nil
		},
	}
	svc := newRawDocumentService(storage, &mockUserStorage{})

	result, err := svc.AppendAnalyticsEvent(context.Background(), rec)

	require.NoError(t, err)
	assert.Equal(t, rec, result)
}

func TestDocumentService_AppendAnalyticsEvent_StorageError(t *testing.T) {
	storage := &mockDocumentStorage{
		appEventFn: func(_ context.Context, _ models.AnalyticsEventRecord) (models.AnalyticsEventRecord, error) {
			return models.AnalyticsEventRecord{}, errStorage
		},
	}
	svc := newRawDocumentService(storage, &mockUserStorage{})

	_, err := svc.AppendAnalyticsEvent(context.Background(), models.AnalyticsEventRecord{UserID: 7})

	require.ErrorIs(t, err, errStorage)
}

func TestDocumentService_AppendAnalyticsEvent_InvalidIdentity(t *testing.T) {
	svc := newRawDocumentService(&mockDocumentStorage{}, &mockUserStorage{})

	_, err := svc.AppendAnalyticsEvent(context.Background(), models.AnalyticsEventRecord{})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─────────────────────────────────────────────
// MergePreferences
// ─────────────────────────────────────────────

func TestDocumentService_MergePreferences_Success(t *testing.T) {
	prefs := models.Preferences{Theme: "dark", DailyGoalMinutes: 90, Subjects: []string{"math"}}
	merged := models.User{UserID: 7, Login: "alice", Preferences: prefs}

	users := &mockUserStorage{
		mergeFn: func(_ context.Context, userID int64, p models.Preferences) (models.User, error) {
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, prefs, p)
			return merged, nil
		},
	}
	svc := newRawDocumentService(&mockDocumentStorage{}, users)

	result, err := svc.MergePreferences(context.Background(), 7, prefs)

	require.NoError(t, err)
	assert.Equal(t, merged, result)
}

func TestDocumentService_MergePreferences_StorageError(t *testing.T) {
	users := &mockUserStorage{
		mergeFn: func(_ context.Context, _ int64, _ models.Preferences) (models.User, error) {
			return models.User{}, errStorage
		},
	}
	svc := newRawDocumentService(&mockDocumentStorage{}, users)

	_, err := svc.MergePreferences(context.Background(), 7, models.Preferences{})

	require.ErrorIs(t, err, errStorage)
}

func TestDocumentService_MergePreferences_InvalidIdentity(t *testing.T) {
	svc := newRawDocumentService(&mockDocumentStorage{}, &mockUserStorage{})

	_, err := svc.MergePreferences(context.Background(), 0, models.Preferences{Theme: "dark"})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─────────────────────────────────────────────
// UpsertSession
// ─────────────────────────────────────────────

func TestDocumentService_UpsertSession_Success(t *testing.T) {
	doc := models.SessionDocument{
		ItemID: "it-9",
		UserID: 7,
		Snapshot: models.SessionSnapshot{
			Screen: "mission-map",
			State:  map[string]any{"zoom": 2.0},
		},
	}
	storage := &mockDocumentStorage{
		upsSnapshotFn: func(_ context.Context, d models.SessionDocument) (models.SessionDocument, error) {
			assert.Equal(t, doc, d)
			return d, nil
		},
	}
	svc := newRawDocumentService(storage, &mockUserStorage{})

	result, err := svc.UpsertSession(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, doc, result)
}

func TestDocumentService_UpsertSession_StorageError(t *testing.T) {
	storage := &mockDocumentStorage{
		upsSnapshotFn: func(_ context.Context, _ models.SessionDocument) (models.SessionDocument, error) {
			return models.SessionDocument{}, errStorage
		},
	}
	svc := newRawDocumentService(storage, &mockUserStorage{})

	_, err := svc.UpsertSession(context.Background(), models.SessionDocument{ItemID: "it-9", UserID: 7})

	require.ErrorIs(t, err, errStorage)
}

func TestDocumentService_UpsertSession_InvalidIdentity(t *testing.T) {
	svc := newRawDocumentService(&mockDocumentStorage{}, &mockUserStorage{})

	_, err := svc.UpsertSession(context.Background(), models.SessionDocument{ItemID: "it-9"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.UpsertSession(context.Background(), models.SessionDocument{UserID: 7})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}
