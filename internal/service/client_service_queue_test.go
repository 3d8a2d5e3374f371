// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/internal/mock"
	"github.com/MKhiriev/go-study-sync/internal/validators"
	"github.com/MKhiriev/go-study-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// stubIDs — детерминированный генератор идентификаторов для тестов.
type stubIDs struct {
	seq int
}

func (s *stubIDs) Generate() string {
	s.seq++
	return fmt.Sprintf("id-%d", s.seq)
}

// newTestQueueSvc — хелпер для создания clientQueueService с моком очереди,
// реальным валидатором и фиксированными часами.
func newTestQueueSvc(t *testing.T, ctrl *gomock.Controller) (*clientQueueService, *mock.MockQueueRepository) {
	t.Helper()
	mockQueue := mock.NewMockQueueRepository(ctrl)

	svc := NewClientQueueService(
		mockQueue,
		validators.NewSyncItemValidator(),
		&stubIDs{},
		logger.Nop(),
	).(*clientQueueService)
	svc.now = func() time.Time { return syncTestTime }

	return svc, mockQueue
}

// ── enqueue: happy path ──────────────────────────────────────────────────────

func TestClientQueueService_SyncMissionProgress_Enqueues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockQueue := newTestQueueSvc(t, ctrl)
	ctx := context.Background()

	progress := models.MissionProgress{
		MissionID:  "algebra-basics",
		Percent:    60,
		TasksDone:  6,
		TasksTotal: 10,
		XPEarned:   150,
	}

	var enqueued models.SyncItem
	mockQueue.EXPECT().Enqueue(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, item models.SyncItem) error {
			enqueued = item
			return nil
		},
	)

	item, err := svc.SyncMissionProgress(ctx, 1, progress)

	require.NoError(t, err)
	assert.Equal(t, item, enqueued, "в очередь должен попасть ровно тот элемент, что вернулся вызывающему")
	assert.Equal(t, "id-1", item.ID)
	assert.Equal(t, models.SyncTypeMission, item.Type)
	assert.Equal(t, progress, item.Data)
	assert.Equal(t, int64(1), item.UserID)
	assert.Equal(t, models.StatusPending, item.Status)
	assert.Equal(t, syncTestTime, item.Timestamp)
	assert.Zero(t, item.RetryCount)
}

func TestClientQueueService_SyncStudySession_Enqueues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockQueue := newTestQueueSvc(t, ctrl)
	ctx := context.Background()

	session := models.StudySessionData{
		SessionID:         "s1",
		Subject:           "Math",
		TimeSpent:         30,
		QuestionsAnswered: 10,
		Accuracy:          0.8,
	}

	mockQueue.EXPECT().Enqueue(ctx, gomock.Any()).Return(nil)

	item, err := svc.SyncStudySession(ctx, 1, session)

	require.NoError(t, err)
	assert.Equal(t, models.SyncTypeProgress, item.Type)
	assert.Equal(t, session, item.Data)
}

func TestClientQueueService_AllTypes_TagMatchesPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockQueue := newTestQueueSvc(t, ctrl)
	ctx := context.Background()

	mockQueue.EXPECT().Enqueue(ctx, gomock.Any()).Return(nil).Times(5)

	tests := []struct {
		name     string
		enqueue  func() (models.SyncItem, error)
		wantType models.SyncItemType
	}{
		{
			name: "mission",
			enqueue: func() (models.SyncItem, error) {
				return svc.SyncMissionProgress(ctx, 1, models.MissionProgress{MissionID: "m-1", Percent: 10})
			},
			wantType: models.SyncTypeMission,
		},
		{
			name: "progress",
			enqueue: func() (models.SyncItem, error) {
				return svc.SyncStudySession(ctx, 1, models.StudySessionData{SessionID: "s-1", Accuracy: 0.5})
			},
			wantType: models.SyncTypeProgress,
		},
		{
			name: "analytics",
			enqueue: func() (models.SyncItem, error) {
				return svc.SyncAnalyticsEvent(ctx, 1, models.AnalyticsEvent{
					EventType:  "streak_broken",
					OccurredAt: syncTestTime,
				})
			},
			wantType: models.SyncTypeAnalytics,
		},
		{
			name: "preferences",
			enqueue: func() (models.SyncItem, error) {
				return svc.SyncUserPreferences(ctx, 1, models.Preferences{Theme: "dark"})
			},
			wantType: models.SyncTypePreferences,
		},
		{
			name: "session",
			enqueue: func() (models.SyncItem, error) {
				return svc.SyncSessionSnapshot(ctx, 1, models.SessionSnapshot{Screen: "mock-exam"})
			},
			wantType: models.SyncTypeSession,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := tt.enqueue()
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, item.Type)
			assert.Equal(t, tt.wantType, item.Data.Kind())
		})
	}
}

func TestClientQueueService_GeneratesFreshIDPerItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockQueue := newTestQueueSvc(t, ctrl)
	ctx := context.Background()

	mockQueue.EXPECT().Enqueue(ctx, gomock.Any()).Return(nil).Times(2)

	first, err := svc.SyncUserPreferences(ctx, 1, models.Preferences{Theme: "dark"})
	require.NoError(t, err)
	second, err := svc.SyncUserPreferences(ctx, 1, models.Preferences{Theme: "light"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

// ── enqueue: validation ──────────────────────────────────────────────────────

func TestClientQueueService_SyncMissionProgress_InvalidPercentRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestQueueSvc(t, ctrl)
	ctx := context.Background()

	// Percent вне [0, 100] — Enqueue не вызывается вовсе.
	item, err := svc.SyncMissionProgress(ctx, 1, models.MissionProgress{
		MissionID: "m-1",
		Percent:   150,
	})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.Zero(t, item)
}

func TestClientQueueService_SyncAnalyticsEvent_MissingEventTypeRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestQueueSvc(t, ctrl)
	ctx := context.Background()

	item, err := svc.SyncAnalyticsEvent(ctx, 1, models.AnalyticsEvent{
		OccurredAt: syncTestTime,
	})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.Zero(t, item)
}

func TestClientQueueService_SyncSessionSnapshot_EmptySnapshotRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestQueueSvc(t, ctrl)
	ctx := context.Background()

	item, err := svc.SyncSessionSnapshot(ctx, 1, models.SessionSnapshot{})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.Zero(t, item)
}

func TestClientQueueService_InvalidUserIDRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestQueueSvc(t, ctrl)
	ctx := context.Background()

	item, err := svc.SyncUserPreferences(ctx, 0, models.Preferences{Theme: "dark"})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.Zero(t, item)
}

// ── enqueue: storage errors ──────────────────────────────────────────────────

func TestClientQueueService_EnqueueErrorWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockQueue := newTestQueueSvc(t, ctrl)
	ctx := context.Background()

	mockQueue.EXPECT().Enqueue(ctx, gomock.Any()).Return(errors.New("queue closed"))

	item, err := svc.SyncStudySession(ctx, 1, models.StudySessionData{
		SessionID: "s1",
		Accuracy:  0.5,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "enqueue progress item")
	assert.Zero(t, item)
}
