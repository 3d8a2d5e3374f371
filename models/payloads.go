// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// MissionProgress is the payload of a SyncTypeMission item: the student's
// progress on one gamified study goal ("mission"). It is merge-written into
// the per-mission journey document on the server.
type MissionProgress struct {
	// MissionID identifies the mission inside the user's journey collection.
	MissionID string `json:"missionId"`

	// Percent is overall completion in the range [0, 100].
	Percent float64 `json:"percent"`

	// TasksDone and TasksTotal track the mission's task counter.
	TasksDone  int `json:"tasksDone"`
	TasksTotal int `json:"tasksTotal"`

	// XPEarned is the experience awarded so far for this mission.
	XPEarned int `json:"xpEarned"`

	// CompletedAt is set once the mission is finished.
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (MissionProgress) Kind() SyncItemType { return SyncTypeMission }

// StudySessionData is the payload of a SyncTypeProgress item: the outcome of
// one finished study session, appended to the user's study_sessions
// collection.
type StudySessionData struct {
	// SessionID identifies the study session on the client.
	SessionID string `json:"sessionId"`

	// Subject is the studied subject ("Math", "Physics", ...).
	Subject string `json:"subject"`

	// TimeSpent is the session length in minutes.
	TimeSpent int `json:"timeSpent"`

	// QuestionsAnswered is the number of questions attempted.
	QuestionsAnswered int `json:"questionsAnswered"`

	// Accuracy is the fraction of correct answers in the range [0, 1].
	Accuracy float64 `json:"accuracy"`

	// StartedAt is when the session began, if the client recorded it.
	StartedAt *time.Time `json:"startedAt,omitempty"`
}

func (StudySessionData) Kind() SyncItemType { return SyncTypeProgress }

// AnalyticsEvent is the payload of a SyncTypeAnalytics item. Event data is
// deliberately schemaless: events are defined by product code faster than a
// sync layer should chase them.
type AnalyticsEvent struct {
	// EventType names the event ("mock_test_finished", "streak_broken", ...).
	EventType string `json:"eventType"`

	// EventData carries arbitrary event attributes.
	EventData map[string]any `json:"eventData,omitempty"`

	// OccurredAt is when the event happened on the client.
	OccurredAt time.Time `json:"occurredAt"`
}

func (AnalyticsEvent) Kind() SyncItemType { return SyncTypeAnalytics }

// Preferences is the payload of a SyncTypePreferences item, merge-written
// into the user document.
type Preferences struct {
	// Theme is the UI theme name.
	Theme string `json:"theme,omitempty"`

	// DailyGoalMinutes is the student's daily study target.
	DailyGoalMinutes int `json:"dailyGoalMinutes,omitempty"`

	// NotificationsEnabled toggles reminder notifications.
	NotificationsEnabled bool `json:"notificationsEnabled"`

	// ExamDate is the target exam date, when set.
	ExamDate *time.Time `json:"examDate,omitempty"`

	// Subjects lists the subjects the student is preparing for.
	Subjects []string `json:"subjects,omitempty"`
}

func (Preferences) Kind() SyncItemType { return SyncTypePreferences }

// SessionSnapshot is the payload of a SyncTypeSession item: a generic
// snapshot of client session state, merge-written to a session document
// keyed by the sync item's own ID.
type SessionSnapshot struct {
	// Screen is the client surface the snapshot was taken from.
	Screen string `json:"screen,omitempty"`

	// State carries arbitrary session state.
	State map[string]any `json:"state"`
}

func (SessionSnapshot) Kind() SyncItemType { return SyncTypeSession }

// RawPayload preserves the payload of an item whose type tag is not
// recognized by this build. It is produced only during deserialization and
// is never constructed by the enqueue API. Dispatching it counts as a
// failure with no distinct error class.
type RawPayload struct {
	// Type is the original, unrecognized tag.
	Type SyncItemType

	// Raw is the untouched payload JSON.
	Raw json.RawMessage
}

func (r RawPayload) Kind() SyncItemType { return r.Type }

// MarshalJSON writes the preserved payload bytes unchanged, so re-persisting
// an unrecognized item loses nothing.
func (r RawPayload) MarshalJSON() ([]byte, error) {
	if len(r.Raw) == 0 {
		return []byte("null"), nil
	}
	return r.Raw, nil
}

// UnmarshalJSON stores the payload bytes unchanged.
func (r *RawPayload) UnmarshalJSON(data []byte) error {
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}
