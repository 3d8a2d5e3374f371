// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSyncItem_TypeFollowsPayload(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name     string
		payload  SyncPayload
		wantType SyncItemType
	}{
		{"mission", MissionProgress{MissionID: "m1"}, SyncTypeMission},
		{"progress", StudySessionData{SessionID: "s1"}, SyncTypeProgress},
		{"analytics", AnalyticsEvent{EventType: "e"}, SyncTypeAnalytics},
		{"preferences", Preferences{Theme: "dark"}, SyncTypePreferences},
		{"session", SessionSnapshot{Screen: "menu"}, SyncTypeSession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NewSyncItem("id-1", 42, tt.payload, now)

			assert.Equal(t, tt.wantType, item.Type)
			assert.Equal(t, StatusPending, item.Status)
			assert.Equal(t, 0, item.RetryCount)
			assert.True(t, item.Timestamp.Equal(now))
		})
	}
}

func TestSyncItem_JSONRoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	attempt := created.Add(5 * time.Minute)

	item := NewSyncItem("b2f1", 7, StudySessionData{
		SessionID:         "s1",
		Subject:           "Math",
		TimeSpent:         30,
		QuestionsAnswered: 10,
		Accuracy:          0.8,
	}, created)
	item.Status = StatusFailed
	item.RetryCount = 2
	item.LastAttempt = &attempt

	raw, err := json.Marshal(item)
	require.NoError(t, err)

	// timestamps must serialize as ISO-8601 strings
	assert.Contains(t, string(raw), `"timestamp":"2026-03-14T09:26:53Z"`)

	var got SyncItem
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, item.Type, got.Type)
	assert.Equal(t, item.Status, got.Status)
	assert.Equal(t, item.RetryCount, got.RetryCount)
	assert.True(t, got.Timestamp.Equal(created))
	require.NotNil(t, got.LastAttempt)
	assert.True(t, got.LastAttempt.Equal(attempt))

	payload, ok := got.Data.(StudySessionData)
	require.True(t, ok, "payload must decode into its concrete variant")
	assert.Equal(t, "Math", payload.Subject)
	assert.InDelta(t, 0.8, payload.Accuracy, 1e-9)
}

func TestSyncItem_UnknownTagSurvivesAsRawPayload(t *testing.T) {
	raw := []byte(`{
		"id": "x1",
		"type": "flashcards",
		"data": {"deck": "biology", "cards": 12},
		"timestamp": "2026-03-14T09:26:53Z",
		"userId": 7,
		"status": "pending",
		"retryCount": 0
	}`)

	var got SyncItem
	require.NoError(t, json.Unmarshal(raw, &got))

	payload, ok := got.Data.(RawPayload)
	require.True(t, ok, "unrecognized tags must fall back to RawPayload")
	assert.Equal(t, SyncItemType("flashcards"), payload.Kind())
	assert.JSONEq(t, `{"deck":"biology","cards":12}`, string(payload.Raw))

	// re-encoding must preserve the original payload bytes
	again, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(again), `"deck":"biology"`)
}
