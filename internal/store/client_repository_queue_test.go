package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-study-sync/internal/config"
	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/models"
)

func newTestQueueRepo(t *testing.T) *queueRepository {
	t.Helper()

	ctx := context.Background()
	l := logger.NewLogger("test")

	db, err := NewConnectSQLite(ctx, config.ClientDB{DSN: ":memory:"}, l)
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.InitQueueSchema(ctx); err != nil {
		t.Fatalf("failed to create queue schema: %v", err)
	}

	return NewQueueRepository(ctx, db, l).(*queueRepository)
}

func missionItem(id string, userID int64, missionID string, at time.Time) models.SyncItem {
	return models.NewSyncItem(id, userID, models.MissionProgress{
		MissionID:  missionID,
		Percent:    40,
		TasksDone:  4,
		TasksTotal: 10,
		XPEarned:   120,
	}, at)
}

func TestQueueRepository_EnqueueAndLoadAll_PreservesOrder(t *testing.T) {
	repo := newTestQueueRepo(t)
	ctx := context.Background()
	now := time.Now()

	first := missionItem("item-1", 1, "algebra-basics", now)
	second := models.NewSyncItem("item-2", 1, models.StudySessionData{
		SessionID: "s-1",
		Subject:   "Math",
		TimeSpent: 25,
		Accuracy:  0.8,
	}, now.Add(time.Second))
	third := models.NewSyncItem("item-3", 1, models.AnalyticsEvent{
		EventType:  "mock_test_finished",
		OccurredAt: now,
	}, now.Add(2*time.Second))

	for _, item := range []models.SyncItem{first, second, third} {
		if err := repo.Enqueue(ctx, item); err != nil {
			t.Fatalf("enqueue %s: %v", item.ID, err)
		}
	}

	items, err := repo.LoadAll(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	wantOrder := []string{"item-1", "item-2", "item-3"}
	for i, want := range wantOrder {
		if items[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, items[i].ID)
		}
	}

	progress, ok := items[0].Data.(models.MissionProgress)
	if !ok {
		t.Fatalf("expected MissionProgress payload, got %T", items[0].Data)
	}
	if progress.MissionID != "algebra-basics" || progress.Percent != 40 {
		t.Errorf("payload did not survive round trip: %+v", progress)
	}

	if !items[0].Timestamp.Equal(now) {
		t.Errorf("expected timestamp %v, got %v", now, items[0].Timestamp)
	}
	if items[0].Status != models.StatusPending {
		t.Errorf("expected pending status, got %s", items[0].Status)
	}
	if items[0].LastAttempt != nil || items[0].NextAttempt != nil {
		t.Error("expected nil attempt times on a fresh item")
	}
}

func TestQueueRepository_LoadAll_EmptyQueue(t *testing.T) {
	repo := newTestQueueRepo(t)

	items, err := repo.LoadAll(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty queue, got %d items", len(items))
	}
}

func TestQueueRepository_LoadAll_ScopedToUser(t *testing.T) {
	repo := newTestQueueRepo(t)
	ctx := context.Background()
	now := time.Now()

	if err := repo.Enqueue(ctx, missionItem("mine", 1, "m-1", now)); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := repo.Enqueue(ctx, missionItem("theirs", 2, "m-2", now)); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	items, err := repo.LoadAll(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "mine" {
		t.Fatalf("expected only user 1 items, got %+v", items)
	}
}

func TestQueueRepository_Persist_UpdatesStatusFields(t *testing.T) {
	repo := newTestQueueRepo(t)
	ctx := context.Background()
	now := time.Now()

	item := missionItem("item-1", 1, "algebra-basics", now)
	if err := repo.Enqueue(ctx, item); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	attempt := now.Add(time.Minute)
	next := now.Add(2 * time.Minute)
	item.Status = models.StatusFailed
	item.RetryCount = 2
	item.LastAttempt = &attempt
	item.NextAttempt = &next

	if err := repo.Persist(ctx, item); err != nil {
		t.Fatalf("persist: %v", err)
	}

	items, err := repo.LoadAll(ctx, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	got := items[0]
	if got.Status != models.StatusFailed {
		t.Errorf("expected failed status, got %s", got.Status)
	}
	if got.RetryCount != 2 {
		t.Errorf("expected retry count 2, got %d", got.RetryCount)
	}
	if got.LastAttempt == nil || !got.LastAttempt.Equal(attempt) {
		t.Errorf("expected last attempt %v, got %v", attempt, got.LastAttempt)
	}
	if got.NextAttempt == nil || !got.NextAttempt.Equal(next) {
		t.Errorf("expected next attempt %v, got %v", next, got.NextAttempt)
	}
}

func TestQueueRepository_Persist_Batch(t *testing.T) {
	repo := newTestQueueRepo(t)
	ctx := context.Background()
	now := time.Now()

	a := missionItem("item-a", 1, "m-a", now)
	b := missionItem("item-b", 1, "m-b", now)
	for _, item := range []models.SyncItem{a, b} {
		if err := repo.Enqueue(ctx, item); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	a.Status = models.StatusSynced
	b.Status = models.StatusConflict

	if err := repo.Persist(ctx, a, b); err != nil {
		t.Fatalf("persist batch: %v", err)
	}

	items, err := repo.LoadAll(ctx, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if items[0].Status != models.StatusSynced || items[1].Status != models.StatusConflict {
		t.Errorf("batch statuses not persisted: %s, %s", items[0].Status, items[1].Status)
	}
}

func TestQueueRepository_Persist_NoItems(t *testing.T) {
	repo := newTestQueueRepo(t)

	if err := repo.Persist(context.Background()); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestQueueRepository_Persist_UnknownItem(t *testing.T) {
	repo := newTestQueueRepo(t)

	item := missionItem("ghost", 1, "m-1", time.Now())

	err := repo.Persist(context.Background(), item)
	if !errors.Is(err, ErrSyncItemNotFound) {
		t.Fatalf("expected ErrSyncItemNotFound, got %v", err)
	}
}

func TestQueueRepository_Clear_RemovesQueueAndConflicts(t *testing.T) {
	repo := newTestQueueRepo(t)
	ctx := context.Background()
	now := time.Now()

	item := missionItem("item-1", 1, "algebra-basics", now)
	if err := repo.Enqueue(ctx, item); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	rec := models.ConflictRecord{
		LocalItem:  item,
		Remote:     models.JourneyDocument{UserID: 1, MissionID: "algebra-basics", UpdatedAt: now.Add(time.Hour)},
		DetectedAt: now,
	}
	if err := repo.SaveConflict(ctx, rec); err != nil {
		t.Fatalf("save conflict: %v", err)
	}

	if err := repo.Clear(ctx, 1); err != nil {
		t.Fatalf("clear: %v", err)
	}

	items, err := repo.LoadAll(ctx, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty queue after clear, got %d items", len(items))
	}

	conflicts, err := repo.LoadConflicts(ctx, 1)
	if err != nil {
		t.Fatalf("load conflicts: %v", err)
	}
	if len(conflicts) != 0 {
		t.Errorf("expected no conflicts after clear, got %d", len(conflicts))
	}
}

func TestQueueRepository_ConflictRoundTrip(t *testing.T) {
	repo := newTestQueueRepo(t)
	ctx := context.Background()
	now := time.Now()

	item := missionItem("item-1", 1, "algebra-basics", now)
	remote := models.JourneyDocument{
		UserID:    1,
		MissionID: "algebra-basics",
		Progress:  models.MissionProgress{MissionID: "algebra-basics", Percent: 70},
		UpdatedAt: now.Add(time.Hour),
	}

	rec := models.ConflictRecord{LocalItem: item, Remote: remote, DetectedAt: now}
	if err := repo.SaveConflict(ctx, rec); err != nil {
		t.Fatalf("save conflict: %v", err)
	}

	records, err := repo.LoadConflicts(ctx, 1)
	if err != nil {
		t.Fatalf("load conflicts: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(records))
	}

	got := records[0]
	if got.LocalItem.ID != "item-1" {
		t.Errorf("expected local item id item-1, got %s", got.LocalItem.ID)
	}
	if _, ok := got.LocalItem.Data.(models.MissionProgress); !ok {
		t.Errorf("expected typed local payload, got %T", got.LocalItem.Data)
	}
	if got.Remote.Progress.Percent != 70 {
		t.Errorf("expected remote percent 70, got %v", got.Remote.Progress.Percent)
	}
	if !got.DetectedAt.Equal(now) {
		t.Errorf("expected detected at %v, got %v", now, got.DetectedAt)
	}

	// saving again for the same item overwrites, not duplicates
	rec.DetectedAt = now.Add(time.Minute)
	if err := repo.SaveConflict(ctx, rec); err != nil {
		t.Fatalf("re-save conflict: %v", err)
	}
	records, err = repo.LoadConflicts(ctx, 1)
	if err != nil {
		t.Fatalf("load conflicts: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected overwrite, got %d records", len(records))
	}

	if err := repo.DeleteConflict(ctx, "item-1"); err != nil {
		t.Fatalf("delete conflict: %v", err)
	}
	err = repo.DeleteConflict(ctx, "item-1")
	if !errors.Is(err, ErrConflictNotFound) {
		t.Fatalf("expected ErrConflictNotFound on second delete, got %v", err)
	}
}

func TestQueueRepository_Enqueue_SurvivesStorageFailure(t *testing.T) {
	repo := newTestQueueRepo(t)
	ctx := context.Background()

	// A closed database makes every write-through fail.
	if err := repo.DB.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	item := missionItem("item-1", 1, "m-1", time.Now())
	if err := repo.Enqueue(ctx, item); err != nil {
		t.Fatalf("enqueue must not fail on a storage error, got %v", err)
	}

	items, err := repo.LoadAll(ctx, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 1 || items[0].ID != "item-1" {
		t.Fatalf("expected the item to stay in the working set, got %+v", items)
	}
}

func TestQueueRepository_WriteThroughSurvivesRestart(t *testing.T) {
	repo := newTestQueueRepo(t)
	ctx := context.Background()
	now := time.Now()

	a := missionItem("item-a", 1, "m-a", now)
	b := missionItem("item-b", 1, "m-b", now.Add(time.Second))
	for _, item := range []models.SyncItem{a, b} {
		if err := repo.Enqueue(ctx, item); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	a.Status = models.StatusSynced
	if err := repo.Persist(ctx, a); err != nil {
		t.Fatalf("persist: %v", err)
	}
	rec := models.ConflictRecord{
		LocalItem:  b,
		Remote:     models.JourneyDocument{UserID: 1, MissionID: "m-b", UpdatedAt: now.Add(time.Hour)},
		DetectedAt: now,
	}
	if err := repo.SaveConflict(ctx, rec); err != nil {
		t.Fatalf("save conflict: %v", err)
	}

	// A fresh instance over the same database stands in for a restart.
	restarted := NewQueueRepository(ctx, repo.DB, repo.logger).(*queueRepository)

	items, err := restarted.LoadAll(ctx, 1)
	if err != nil {
		t.Fatalf("load after restart: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 hydrated items, got %d", len(items))
	}
	if items[0].ID != "item-a" || items[1].ID != "item-b" {
		t.Errorf("hydration lost enqueue order: %s, %s", items[0].ID, items[1].ID)
	}
	if items[0].Status != models.StatusSynced {
		t.Errorf("persisted status lost across restart: %s", items[0].Status)
	}

	conflicts, err := restarted.LoadConflicts(ctx, 1)
	if err != nil {
		t.Fatalf("load conflicts after restart: %v", err)
	}
	if len(conflicts) != 1 || conflicts[0].LocalItem.ID != "item-b" {
		t.Fatalf("expected hydrated conflict for item-b, got %+v", conflicts)
	}
}

func TestQueueRepository_PersistHealsMissedWriteThrough(t *testing.T) {
	repo := newTestQueueRepo(t)
	ctx := context.Background()

	item := missionItem("item-1", 1, "m-1", time.Now())

	// Stand in for an enqueue whose write-through failed: memory only.
	repo.mu.Lock()
	repo.items = append(repo.items, item)
	repo.mu.Unlock()

	item.Status = models.StatusSynced
	if err := repo.Persist(ctx, item); err != nil {
		t.Fatalf("persist: %v", err)
	}

	restarted := NewQueueRepository(ctx, repo.DB, repo.logger).(*queueRepository)
	items, err := restarted.LoadAll(ctx, 1)
	if err != nil {
		t.Fatalf("load after restart: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected the healed row to hydrate, got %d items", len(items))
	}
	if items[0].Status != models.StatusSynced {
		t.Errorf("expected healed row to carry the updated status, got %s", items[0].Status)
	}
}

func TestQueueRepository_UnknownPayloadSurvives(t *testing.T) {
	repo := newTestQueueRepo(t)
	ctx := context.Background()
	now := time.Now()

	raw := models.RawPayload{
		Type: models.SyncItemType("flashcards"),
		Raw:  json.RawMessage(`{"deckId":"physics-1","cards":12}`),
	}
	item := models.NewSyncItem("item-x", 1, raw, now)

	if err := repo.Enqueue(ctx, item); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	items, err := repo.LoadAll(ctx, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	got, ok := items[0].Data.(models.RawPayload)
	if !ok {
		t.Fatalf("expected RawPayload for unknown tag, got %T", items[0].Data)
	}
	if string(got.Raw) != `{"deckId":"physics-1","cards":12}` {
		t.Errorf("raw payload bytes changed: %s", got.Raw)
	}
	if items[0].Type != models.SyncItemType("flashcards") {
		t.Errorf("type tag changed: %s", items[0].Type)
	}
}
