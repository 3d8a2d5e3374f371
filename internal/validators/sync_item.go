package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-study-sync/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate or internal validation methods
// to restrict validation to a subset of fields (field-level scoping).
const (
	// FieldItemID targets the unique identifier of a queued sync item.
	FieldItemID = "item_id"

	// FieldUserID targets the owner identifier of an item or request.
	FieldUserID = "user_id"

	// FieldItemType targets the sync item type tag.
	FieldItemType = "type"

	// FieldPayload targets the typed payload carried by a sync item,
	// including the tag/payload consistency check and the payload's own
	// domain rules.
	FieldPayload = "payload"

	// FieldTimestamp targets the logical creation time of a sync item.
	FieldTimestamp = "timestamp"

	// FieldRetryCount targets the failed-attempt counter of a sync item.
	FieldRetryCount = "retry_count"

	// FieldMissionID targets the mission identifier of a progress payload.
	FieldMissionID = "mission_id"

	// FieldPercent targets the completion percentage of a mission payload.
	FieldPercent = "percent"

	// FieldTaskCounts targets the done/total task counters of a mission payload.
	FieldTaskCounts = "task_counts"

	// FieldXPEarned targets the experience counter of a mission payload.
	FieldXPEarned = "xp_earned"

	// FieldSessionID targets the client-side study session identifier.
	FieldSessionID = "session_id"

	// FieldTimeSpent targets the session length in minutes.
	FieldTimeSpent = "time_spent"

	// FieldQuestionCount targets the attempted-questions counter.
	FieldQuestionCount = "questions_answered"

	// FieldAccuracy targets the correct-answer fraction of a study session.
	FieldAccuracy = "accuracy"

	// FieldEventType targets the analytics event name.
	FieldEventType = "event_type"

	// FieldOccurredAt targets the client-side analytics event time.
	FieldOccurredAt = "occurred_at"

	// FieldDailyGoal targets the daily study target of a preferences payload.
	FieldDailyGoal = "daily_goal"

	// FieldSnapshot targets the content of a session snapshot payload.
	FieldSnapshot = "snapshot"

	// FieldResolutionKind targets the strategy of a conflict resolution.
	FieldResolutionKind = "resolution"

	// FieldMergedData targets the caller-merged payload of a merge resolution.
	FieldMergedData = "merged_data"
)

// allowedItemTypes is the exhaustive set of SyncItemType values accepted by
// the validator. Any tag not present here is considered invalid at enqueue
// time; unknown tags can still appear on items deserialized from disk.
var allowedItemTypes = []models.SyncItemType{
	models.SyncTypeMission,
	models.SyncTypeProgress,
	models.SyncTypeAnalytics,
	models.SyncTypePreferences,
	models.SyncTypeSession,
}

// SyncItemValidator implements the Validator interface for all sync-related
// domain models: SyncItem, the payload variants (MissionProgress,
// StudySessionData, AnalyticsEvent, Preferences, SessionSnapshot) and
// ConflictResolution.
type SyncItemValidator struct {
}

func NewSyncItemValidator() Validator {
	return &SyncItemValidator{}
}

func (v *SyncItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SyncItem:
		return v.validateSyncItem(ctx, value, fields...)
	case *models.SyncItem:
		return v.validateSyncItem(ctx, *value, fields...)

	case models.MissionProgress:
		return v.validateMissionProgress(ctx, value, fields...)
	case *models.MissionProgress:
		return v.validateMissionProgress(ctx, *value, fields...)

	case models.StudySessionData:
		return v.validateStudySession(ctx, value, fields...)
	case *models.StudySessionData:
		return v.validateStudySession(ctx, *value, fields...)

	case models.AnalyticsEvent:
		return v.validateAnalyticsEvent(ctx, value, fields...)
	case *models.AnalyticsEvent:
		return v.validateAnalyticsEvent(ctx, *value, fields...)

	case models.Preferences:
		return v.validatePreferences(ctx, value, fields...)
	case *models.Preferences:
		return v.validatePreferences(ctx, *value, fields...)

	case models.SessionSnapshot:
		return v.validateSessionSnapshot(ctx, value, fields...)
	case *models.SessionSnapshot:
		return v.validateSessionSnapshot(ctx, *value, fields...)

	case models.ConflictResolution:
		return v.validateConflictResolution(ctx, value, fields...)
	case *models.ConflictResolution:
		return v.validateConflictResolution(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// isValidItemType reports whether t is one of the recognized SyncItemType
// values defined in allowedItemTypes.
func isValidItemType(t models.SyncItemType) bool {
	for _, allowed := range allowedItemTypes {
		if t == allowed {
			return true
		}
	}
	return false
}

// validateSyncItem validates a single SyncItem.
//
// Default validated fields (when none specified):
// ItemID, UserID, ItemType, Payload, Timestamp, RetryCount.
//
// When FieldPayload is validated, the payload kind is checked against the
// item's type tag and the payload itself is validated with its own rules.
// A RawPayload only has to match the tag; its content is opaque.
//
// Returns the first encountered validation error or nil.
func (v *SyncItemValidator) validateSyncItem(ctx context.Context, item models.SyncItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldItemID, FieldUserID, FieldItemType, FieldPayload, FieldTimestamp, FieldRetryCount}
	}

	for _, f := range fields {
		switch f {
		case FieldItemID:
			if item.ID == "" {
				return ErrInvalidItemID
			}
		case FieldUserID:
			if item.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldItemType:
			if !isValidItemType(item.Type) {
				return ErrInvalidItemType
			}
		case FieldPayload:
			if item.Data == nil {
				return ErrEmptyPayload
			}
			if item.Data.Kind() != item.Type {
				return ErrPayloadTypeMismatch
			}
			if _, raw := item.Data.(models.RawPayload); raw {
				continue
			}
			if err := v.Validate(ctx, item.Data); err != nil {
				return fmt.Errorf("payload validation error: %w", err)
			}
		case FieldTimestamp:
			if item.Timestamp.IsZero() {
				return ErrInvalidTimestamp
			}
		case FieldRetryCount:
			if item.RetryCount < 0 {
				return ErrInvalidRetryCount
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateMissionProgress validates a mission progress payload.
//
// Default validated fields: MissionID, Percent, TaskCounts, XPEarned.
func (v *SyncItemValidator) validateMissionProgress(ctx context.Context, progress models.MissionProgress, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldMissionID, FieldPercent, FieldTaskCounts, FieldXPEarned}
	}

	for _, f := range fields {
		switch f {
		case FieldMissionID:
			if progress.MissionID == "" {
				return ErrInvalidMissionID
			}
		case FieldPercent:
			if progress.Percent < 0 || progress.Percent > 100 {
				return ErrInvalidPercent
			}
		case FieldTaskCounts:
			if progress.TasksDone < 0 || progress.TasksTotal < 0 {
				return ErrInvalidTaskCounts
			}
			if progress.TasksTotal > 0 && progress.TasksDone > progress.TasksTotal {
				return ErrInvalidTaskCounts
			}
		case FieldXPEarned:
			if progress.XPEarned < 0 {
				return ErrInvalidXPEarned
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateStudySession validates a study session payload.
//
// Default validated fields: SessionID, TimeSpent, QuestionCount, Accuracy.
func (v *SyncItemValidator) validateStudySession(ctx context.Context, session models.StudySessionData, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSessionID, FieldTimeSpent, FieldQuestionCount, FieldAccuracy}
	}

	for _, f := range fields {
		switch f {
		case FieldSessionID:
			if session.SessionID == "" {
				return ErrInvalidSessionID
			}
		case FieldTimeSpent:
			if session.TimeSpent < 0 {
				return ErrInvalidTimeSpent
			}
		case FieldQuestionCount:
			if session.QuestionsAnswered < 0 {
				return ErrInvalidQuestionCount
			}
		case FieldAccuracy:
			if session.Accuracy < 0 || session.Accuracy > 1 {
				return ErrInvalidAccuracy
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateAnalyticsEvent validates an analytics event payload.
//
// Default validated fields: EventType, OccurredAt. EventData is deliberately
// unchecked: events are schemaless.
func (v *SyncItemValidator) validateAnalyticsEvent(ctx context.Context, event models.AnalyticsEvent, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEventType, FieldOccurredAt}
	}

	for _, f := range fields {
		switch f {
		case FieldEventType:
			if event.EventType == "" {
				return ErrInvalidEventType
			}
		case FieldOccurredAt:
			if event.OccurredAt.IsZero() {
				return ErrInvalidOccurredAt
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePreferences validates a preferences payload.
//
// Default validated fields: DailyGoal. All other preference fields accept
// any value, including empty.
func (v *SyncItemValidator) validatePreferences(ctx context.Context, prefs models.Preferences, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDailyGoal}
	}

	for _, f := range fields {
		switch f {
		case FieldDailyGoal:
			if prefs.DailyGoalMinutes < 0 {
				return ErrInvalidDailyGoal
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateSessionSnapshot validates a session snapshot payload.
//
// Default validated fields: Snapshot. A snapshot with no screen and no state
// carries nothing worth syncing and is rejected.
func (v *SyncItemValidator) validateSessionSnapshot(ctx context.Context, snapshot models.SessionSnapshot, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSnapshot}
	}

	for _, f := range fields {
		switch f {
		case FieldSnapshot:
			if snapshot.Screen == "" && len(snapshot.State) == 0 {
				return ErrEmptySnapshot
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateConflictResolution validates one conflict resolution decision.
//
// Default validated fields: ItemID, ResolutionKind, MergedData. MergedData is
// only required when the strategy is ResolutionMerge.
func (v *SyncItemValidator) validateConflictResolution(ctx context.Context, res models.ConflictResolution, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldItemID, FieldResolutionKind, FieldMergedData}
	}

	for _, f := range fields {
		switch f {
		case FieldItemID:
			if res.ItemID == "" {
				return ErrInvalidItemID
			}
		case FieldResolutionKind:
			switch res.Resolution {
			case models.ResolutionLocal, models.ResolutionRemote, models.ResolutionMerge:
			default:
				return ErrInvalidResolutionKind
			}
		case FieldMergedData:
			if res.Resolution == models.ResolutionMerge && res.MergedData == nil {
				return ErrMissingMergedData
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
