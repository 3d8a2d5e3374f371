package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID       = errors.New("invalid user ID")
	ErrInvalidItemID       = errors.New("invalid sync item id")
	ErrInvalidItemType     = errors.New("invalid sync item type")
	ErrEmptyPayload        = errors.New("payload is required")
	ErrPayloadTypeMismatch = errors.New("payload kind does not match item type")
	ErrInvalidTimestamp    = errors.New("invalid timestamp")
	ErrInvalidRetryCount   = errors.New("invalid retry count")

	ErrInvalidMissionID  = errors.New("invalid mission id")
	ErrInvalidPercent    = errors.New("percent must be within [0, 100]")
	ErrInvalidTaskCounts = errors.New("invalid task counters")
	ErrInvalidXPEarned   = errors.New("invalid xp earned")

	ErrInvalidSessionID     = errors.New("invalid session id")
	ErrInvalidTimeSpent     = errors.New("time spent must not be negative")
	ErrInvalidQuestionCount = errors.New("questions answered must not be negative")
	ErrInvalidAccuracy      = errors.New("accuracy must be within [0, 1]")

	ErrInvalidEventType  = errors.New("invalid event type")
	ErrInvalidOccurredAt = errors.New("invalid occurred at time")

	ErrInvalidDailyGoal = errors.New("daily goal must not be negative")

	ErrEmptySnapshot = errors.New("session snapshot is empty")

	ErrInvalidResolutionKind = errors.New("invalid resolution kind")
	ErrMissingMergedData     = errors.New("merged data is required for merge resolution")
)
