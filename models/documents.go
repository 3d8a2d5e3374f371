// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// JourneyDocument is the remote per-mission document stored under
// users/{userID}/journeys/{missionID}. Its UpdatedAt is the remote side of
// the conflict comparison: the server bumps it on every merge-write.
type JourneyDocument struct {
	// MissionID identifies the mission; part of the document path.
	MissionID string `json:"missionId"`

	// UserID is the owning account; part of the document path.
	UserID int64 `json:"userId"`

	// Progress is the current merged progress state.
	Progress MissionProgress `json:"progress"`

	// UpdatedAt is the server-side time of the last merge-write.
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionDocument is the remote generic-session document stored under
// users/{userID}/sessions/{itemID}. Documents are keyed by the sync item's
// own ID, so re-syncing the same item overwrites the same document.
type SessionDocument struct {
	ItemID    string          `json:"itemId"`
	UserID    int64           `json:"userId"`
	Snapshot  SessionSnapshot `json:"snapshot"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// StudySessionRecord is one appended row of users/{userID}/study_sessions.
type StudySessionRecord struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	Session   StudySessionData `json:"session"`
	CreatedAt time.Time        `json:"createdAt"`
}

// AnalyticsEventRecord is one appended row of
// users/{userID}/analytics_events.
type AnalyticsEventRecord struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"userId"`
	Event     AnalyticsEvent `json:"event"`
	CreatedAt time.Time      `json:"createdAt"`
}
