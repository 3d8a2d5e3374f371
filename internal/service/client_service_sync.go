package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-study-sync/internal/adapter"
	"github.com/MKhiriev/go-study-sync/internal/config"
	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/internal/store"
	"github.com/MKhiriev/go-study-sync/internal/validators"
	"github.com/MKhiriev/go-study-sync/models"
)

// defaultMaxRetries caps attempts per item when configuration does not say
// otherwise.
const defaultMaxRetries = 3

// errConflictDetected signals inside the drain that the mission syncer
// declared a conflict instead of writing.
var errConflictDetected = errors.New("conflict detected")

type clientSyncService struct {
	queue     store.QueueRepository
	adapter   adapter.ServerAdapter
	auth      ClientAuthService
	probe     ConnectivityProbe
	validator validators.Validator
	logger    *logger.Logger

	maxRetries int
	backoff    BackoffFactory
	now        func() time.Time

	mu        sync.Mutex
	isSyncing bool

	listenerMu sync.RWMutex
	listeners  []func(models.SyncSummary)
}

func NewClientSyncService(
	queue store.QueueRepository,
	serverAdapter adapter.ServerAdapter,
	auth ClientAuthService,
	probe ConnectivityProbe,
	validator validators.Validator,
	cfg config.ClientSync,
	logger *logger.Logger,
) ClientSyncService {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &clientSyncService{
		queue:      queue,
		adapter:    serverAdapter,
		auth:       auth,
		probe:      probe,
		validator:  validator,
		logger:     logger,
		maxRetries: maxRetries,
		backoff:    NewBackoffFactory(cfg),
		now:        time.Now,
	}
}

func (s *clientSyncService) StartSync(ctx context.Context) models.SyncSummary {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		log.Warn().
			Str("func", "clientSyncService.StartSync").
			Msg("drain rejected, sync already in progress")
		return rejectedSummary(ErrSyncInProgress)
	}
	s.isSyncing = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	summary := s.drain(ctx)

	// Listeners run before the in-progress guard is released, so a listener
	// that calls StartSync again is rejected instead of starting a recursive
	// drain.
	s.broadcast(summary)

	return summary
}

func (s *clientSyncService) ForceSyncNow(ctx context.Context) models.SyncSummary {
	if s.probe != nil && !s.probe.Online() {
		logger.FromContext(ctx).Warn().
			Str("func", "clientSyncService.ForceSyncNow").
			Msg("manual sync rejected while offline")
		return rejectedSummary(ErrOffline)
	}

	return s.StartSync(ctx)
}

// drain loads the signed-in user's queue, attempts every eligible item
// strictly in enqueue order and writes the settled states back in one batch.
// Per-item failures are folded into the summary; only a drain that could not
// run at all reports Success=false.
func (s *clientSyncService) drain(ctx context.Context) models.SyncSummary {
	log := logger.FromContext(ctx)
	summary := models.NewSyncSummary()

	userID, err := s.auth.CurrentUserID()
	if err != nil {
		summary.Success = false
		summary.Errors = append(summary.Errors, err.Error())
		return summary
	}

	items, err := s.queue.LoadAll(ctx, userID)
	if err != nil {
		log.Err(err).
			Str("func", "clientSyncService.drain").
			Int64("user_id", userID).
			Msg("failed to load sync queue")
		summary.Success = false
		summary.Errors = append(summary.Errors, fmt.Sprintf("load queue: %v", err))
		return summary
	}

	now := s.now()
	var processed []models.SyncItem
	for i := range items {
		item := items[i]
		if !s.eligible(item, now) {
			continue
		}

		s.syncOne(ctx, &item, &summary)
		processed = append(processed, item)
	}

	if len(processed) == 0 {
		return summary
	}

	if err := s.queue.Persist(ctx, processed...); err != nil {
		log.Err(err).
			Str("func", "clientSyncService.drain").
			Msg("failed to persist drained queue")
		summary.Errors = append(summary.Errors, fmt.Sprintf("persist queue: %v", err))
	}

	log.Info().
		Str("func", "clientSyncService.drain").
		Int("synced", summary.SyncedItems).
		Int("conflicts", summary.ConflictItems).
		Int("failed", summary.FailedItems).
		Msg("sync queue drained")

	return summary
}

// eligible reports whether the drain should attempt the item now: pending
// items always, failed items while they have retries left and their backoff
// delay has elapsed.
func (s *clientSyncService) eligible(item models.SyncItem, now time.Time) bool {
	switch item.Status {
	case models.StatusPending:
	case models.StatusFailed:
		if item.RetryCount >= s.maxRetries {
			return false
		}
	default:
		return false
	}

	if item.NextAttempt != nil && now.Before(*item.NextAttempt) {
		return false
	}

	return true
}

// syncOne attempts one item and settles its new state in place. Success and
// conflict bypass the retry counter; any other failure consumes one retry.
func (s *clientSyncService) syncOne(ctx context.Context, item *models.SyncItem, summary *models.SyncSummary) {
	log := logger.FromContext(ctx)

	err := s.dispatch(ctx, item)
	switch {
	case err == nil:
		item.Status = models.StatusSynced
		item.NextAttempt = nil
		summary.SyncedItems++

	case errors.Is(err, errConflictDetected):
		item.Status = models.StatusConflict
		item.NextAttempt = nil
		summary.ConflictItems++
		log.Info().
			Str("func", "clientSyncService.syncOne").
			Str("item_id", item.ID).
			Msg("conflict detected, awaiting resolution")

	default:
		attempt := s.now()
		item.Status = models.StatusFailed
		item.RetryCount++
		item.LastAttempt = &attempt
		item.NextAttempt = nil
		if item.RetryCount < s.maxRetries {
			item.NextAttempt = s.nextAttemptAfter(attempt, item.RetryCount)
		}
		summary.FailedItems++
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s %s: %v", item.Type, item.ID, err))
		log.Err(err).
			Str("func", "clientSyncService.syncOne").
			Str("item_id", item.ID).
			Str("type", string(item.Type)).
			Int("retry_count", item.RetryCount).
			Msg("sync attempt failed")
	}
}

// nextAttemptAfter computes when the item becomes eligible again by
// replaying a fresh backoff sequence retryCount steps, so the delay grows
// with every consumed retry. A nil factory keeps retries immediate.
func (s *clientSyncService) nextAttemptAfter(from time.Time, retryCount int) *time.Time {
	if s.backoff == nil {
		return nil
	}

	b := s.backoff()
	var delay time.Duration
	for i := 0; i < retryCount; i++ {
		next, stop := b.Next()
		if stop {
			break
		}
		delay = next
	}
	if delay <= 0 {
		return nil
	}

	at := from.Add(delay)
	return &at
}

// dispatch routes the item to its type syncer. The payload union is closed;
// RawPayload and a nil payload land in the default arm and count as a
// failure with no distinct error class.
func (s *clientSyncService) dispatch(ctx context.Context, item *models.SyncItem) error {
	switch payload := item.Data.(type) {
	case models.MissionProgress:
		return s.syncMission(ctx, item, payload)
	case models.StudySessionData:
		return s.syncStudySession(ctx, item, payload)
	case models.AnalyticsEvent:
		return s.syncAnalyticsEvent(ctx, item, payload)
	case models.Preferences:
		return s.syncPreferences(ctx, item, payload)
	case models.SessionSnapshot:
		return s.syncSessionSnapshot(ctx, item, payload)
	default:
		logger.FromContext(ctx).Warn().
			Str("func", "clientSyncService.dispatch").
			Str("item_id", item.ID).
			Str("type", string(item.Type)).
			Msg("unknown sync item type")
		return fmt.Errorf("%w: %q", ErrUnknownSyncItemType, item.Type)
	}
}

// syncMission is the only read-then-write syncer: the remote journey is
// fetched first, and a remote UpdatedAt strictly later than the item's
// Timestamp declares a conflict instead of writing. A missing remote
// document means nobody wrote yet, so the write proceeds.
func (s *clientSyncService) syncMission(ctx context.Context, item *models.SyncItem, progress models.MissionProgress) error {
	remote, err := s.adapter.GetJourney(ctx, item.UserID, progress.MissionID)
	switch {
	case err == nil:
		if remote.UpdatedAt.After(item.Timestamp) {
			s.recordConflict(ctx, *item, remote)
			return errConflictDetected
		}
	case errors.Is(err, adapter.ErrNotFound):
		// no remote yet
	default:
		return fmt.Errorf("read remote journey: %w", err)
	}

	doc := models.JourneyDocument{
		MissionID: progress.MissionID,
		UserID:    item.UserID,
		Progress:  progress,
	}
	if _, err := s.adapter.UpsertJourney(ctx, doc); err != nil {
		return fmt.Errorf("write remote journey: %w", err)
	}

	return nil
}

func (s *clientSyncService) syncStudySession(ctx context.Context, item *models.SyncItem, session models.StudySessionData) error {
	rec := models.StudySessionRecord{UserID: item.UserID, Session: session}
	if _, err := s.adapter.AppendStudySession(ctx, rec); err != nil {
		return fmt.Errorf("append study session: %w", err)
	}
	return nil
}

func (s *clientSyncService) syncAnalyticsEvent(ctx context.Context, item *models.SyncItem, event models.AnalyticsEvent) error {
	rec := models.AnalyticsEventRecord{UserID: item.UserID, Event: event}
	if _, err := s.adapter.AppendAnalyticsEvent(ctx, rec); err != nil {
		return fmt.Errorf("append analytics event: %w", err)
	}
	return nil
}

func (s *clientSyncService) syncPreferences(ctx context.Context, item *models.SyncItem, prefs models.Preferences) error {
	if _, err := s.adapter.MergePreferences(ctx, item.UserID, prefs); err != nil {
		return fmt.Errorf("merge preferences: %w", err)
	}
	return nil
}

func (s *clientSyncService) syncSessionSnapshot(ctx context.Context, item *models.SyncItem, snapshot models.SessionSnapshot) error {
	doc := models.SessionDocument{ItemID: item.ID, UserID: item.UserID, Snapshot: snapshot}
	if _, err := s.adapter.UpsertSession(ctx, doc); err != nil {
		return fmt.Errorf("write session snapshot: %w", err)
	}
	return nil
}

// recordConflict stores the remote snapshot next to the queue for the
// resolution screen. A failed save loses only the side-by-side view, so it
// is logged and not treated as a sync failure.
func (s *clientSyncService) recordConflict(ctx context.Context, item models.SyncItem, remote models.JourneyDocument) {
	rec := models.ConflictRecord{
		LocalItem:  item,
		Remote:     remote,
		DetectedAt: s.now(),
	}
	if err := s.queue.SaveConflict(ctx, rec); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "clientSyncService.recordConflict").
			Str("item_id", item.ID).
			Msg("failed to store conflict snapshot")
	}
}

func (s *clientSyncService) GetQueueStatus(ctx context.Context) (models.QueueStatus, error) {
	userID, err := s.auth.CurrentUserID()
	if err != nil {
		return models.QueueStatus{}, err
	}

	items, err := s.queue.LoadAll(ctx, userID)
	if err != nil {
		return models.QueueStatus{}, fmt.Errorf("load queue: %w", err)
	}

	var status models.QueueStatus
	for _, item := range items {
		switch item.Status {
		case models.StatusPending:
			status.Pending++
		case models.StatusSynced:
			status.Synced++
		case models.StatusConflict:
			status.Conflicts++
		case models.StatusFailed:
			status.Failed++
		}
	}

	return status, nil
}

func (s *clientSyncService) Conflicts(ctx context.Context) ([]models.ConflictRecord, error) {
	userID, err := s.auth.CurrentUserID()
	if err != nil {
		return nil, err
	}

	records, err := s.queue.LoadConflicts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load conflicts: %w", err)
	}

	return records, nil
}

// ResolveConflicts applies caller decisions to conflicted items. local
// re-queues the item with a refreshed timestamp so its next attempt wins the
// conflict comparison; remote accepts the server state and settles the item
// synced without a write; merge replaces the payload with caller-merged data
// and re-queues. A remote write that lands between detection and a local or
// merge resolution is overwritten by the retry.
func (s *clientSyncService) ResolveConflicts(ctx context.Context, resolutions ...models.ConflictResolution) error {
	log := logger.FromContext(ctx)

	if len(resolutions) == 0 {
		return ErrNoResolutionsProvided
	}

	userID, err := s.auth.CurrentUserID()
	if err != nil {
		return err
	}

	for i, res := range resolutions {
		if err := s.validator.Validate(ctx, res); err != nil {
			return fmt.Errorf("%w: resolution at index %d: %w", ErrInvalidDataProvided, i, err)
		}
	}

	items, err := s.queue.LoadAll(ctx, userID)
	if err != nil {
		return fmt.Errorf("load queue: %w", err)
	}

	byID := make(map[string]int, len(items))
	for i := range items {
		byID[items[i].ID] = i
	}

	updated := make([]models.SyncItem, 0, len(resolutions))
	for _, res := range resolutions {
		idx, ok := byID[res.ItemID]
		if !ok {
			return fmt.Errorf("%w: %s", store.ErrSyncItemNotFound, res.ItemID)
		}
		item := items[idx]
		if item.Status != models.StatusConflict {
			return fmt.Errorf("%w: %s", ErrItemNotInConflict, res.ItemID)
		}

		switch res.Resolution {
		case models.ResolutionLocal:
			item.Status = models.StatusPending
			item.Timestamp = s.now()
			item.NextAttempt = nil
		case models.ResolutionRemote:
			item.Status = models.StatusSynced
			item.NextAttempt = nil
		case models.ResolutionMerge:
			if res.MergedData.Kind() != item.Type {
				return fmt.Errorf("%w: merged data kind %q does not match item type %q",
					ErrInvalidDataProvided, res.MergedData.Kind(), item.Type)
			}
			item.Data = res.MergedData
			item.Status = models.StatusPending
			item.Timestamp = s.now()
			item.NextAttempt = nil
		}

		updated = append(updated, item)
		items[idx] = item
	}

	if err := s.queue.Persist(ctx, updated...); err != nil {
		return fmt.Errorf("persist resolved items: %w", err)
	}

	for _, res := range resolutions {
		if err := s.queue.DeleteConflict(ctx, res.ItemID); err != nil {
			log.Err(err).
				Str("func", "clientSyncService.ResolveConflicts").
				Str("item_id", res.ItemID).
				Msg("failed to drop resolved conflict record")
		}
	}

	return nil
}

func (s *clientSyncService) OnSyncComplete(fn func(models.SyncSummary)) {
	if fn == nil {
		return
	}

	s.listenerMu.Lock()
	s.listeners = append(s.listeners, fn)
	s.listenerMu.Unlock()
}

func (s *clientSyncService) broadcast(summary models.SyncSummary) {
	s.listenerMu.RLock()
	listeners := make([]func(models.SyncSummary), len(s.listeners))
	copy(listeners, s.listeners)
	s.listenerMu.RUnlock()

	for _, fn := range listeners {
		fn(summary)
	}
}

// rejectedSummary reports a drain that never ran.
func rejectedSummary(reason error) models.SyncSummary {
	summary := models.NewSyncSummary()
	summary.Success = false
	summary.Errors = append(summary.Errors, reason.Error())
	return summary
}
