package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/internal/store"
	"github.com/MKhiriev/go-study-sync/internal/validators"
	"github.com/MKhiriev/go-study-sync/models"
)

// idGenerator produces identifiers for newly enqueued items.
// utils.UUIDGenerator is the production implementation.
type idGenerator interface {
	Generate() string
}

type clientQueueService struct {
	queue     store.QueueRepository
	validator validators.Validator
	ids       idGenerator
	logger    *logger.Logger

	now func() time.Time
}

func NewClientQueueService(queue store.QueueRepository, validator validators.Validator, ids idGenerator, logger *logger.Logger) ClientQueueService {
	return &clientQueueService{
		queue:     queue,
		validator: validator,
		ids:       ids,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *clientQueueService) SyncMissionProgress(ctx context.Context, userID int64, progress models.MissionProgress) (models.SyncItem, error) {
	return s.enqueue(ctx, userID, progress)
}

func (s *clientQueueService) SyncStudySession(ctx context.Context, userID int64, session models.StudySessionData) (models.SyncItem, error) {
	return s.enqueue(ctx, userID, session)
}

func (s *clientQueueService) SyncAnalyticsEvent(ctx context.Context, userID int64, event models.AnalyticsEvent) (models.SyncItem, error) {
	return s.enqueue(ctx, userID, event)
}

func (s *clientQueueService) SyncUserPreferences(ctx context.Context, userID int64, prefs models.Preferences) (models.SyncItem, error) {
	return s.enqueue(ctx, userID, prefs)
}

func (s *clientQueueService) SyncSessionSnapshot(ctx context.Context, userID int64, snapshot models.SessionSnapshot) (models.SyncItem, error) {
	return s.enqueue(ctx, userID, snapshot)
}

// enqueue wraps the payload in a fresh pending item, validates it and writes
// it through to the local queue. Nothing here touches the network; the item
// waits for the next drain.
func (s *clientQueueService) enqueue(ctx context.Context, userID int64, payload models.SyncPayload) (models.SyncItem, error) {
	log := logger.FromContext(ctx)

	item := models.NewSyncItem(s.ids.Generate(), userID, payload, s.now())

	if err := s.validator.Validate(ctx, item); err != nil {
		log.Err(err).
			Str("func", "clientQueueService.enqueue").
			Str("type", string(item.Type)).
			Int64("user_id", userID).
			Msg("rejected sync item that failed validation")
		return models.SyncItem{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.queue.Enqueue(ctx, item); err != nil {
		return models.SyncItem{}, fmt.Errorf("enqueue %s item: %w", item.Type, err)
	}

	log.Debug().
		Str("func", "clientQueueService.enqueue").
		Str("item_id", item.ID).
		Str("type", string(item.Type)).
		Msg("sync item queued")

	return item, nil
}
