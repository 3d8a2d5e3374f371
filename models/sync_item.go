// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// SyncItemType identifies the mutation category of a queued item.
// The set of known values is closed; each value implies a distinct
// remote write shape and a distinct payload variant.
type SyncItemType string

const (
	// SyncTypeMission is mission (journey) progress, merge-written to the
	// per-mission journey document after a conflict check.
	SyncTypeMission SyncItemType = "mission"

	// SyncTypeProgress is study-session progress, appended to the user's
	// study_sessions collection.
	SyncTypeProgress SyncItemType = "progress"

	// SyncTypeAnalytics is a single analytics event, appended to the user's
	// analytics_events collection.
	SyncTypeAnalytics SyncItemType = "analytics"

	// SyncTypePreferences is the user preferences document, merge-written
	// into the user record.
	SyncTypePreferences SyncItemType = "preferences"

	// SyncTypeSession is a generic session snapshot, merge-written to a
	// session document keyed by the item's own ID.
	SyncTypeSession SyncItemType = "session"
)

// SyncStatus is the per-item state machine value.
//
// Transitions: pending → synced (success, terminal), pending → failed with
// RetryCount incremented on any error. Failed items re-enter the drain while
// RetryCount stays below the configured maximum, so failed turns terminal
// only once the cap is reached. A conflict detection short-circuits to
// conflict from any in-flight attempt, bypassing the retry counter.
type SyncStatus string

const (
	StatusPending  SyncStatus = "pending"
	StatusSynced   SyncStatus = "synced"
	StatusFailed   SyncStatus = "failed"
	StatusConflict SyncStatus = "conflict"
)

// SyncPayload is the closed union of payload variants carried by a SyncItem.
// Exactly one concrete type exists per SyncItemType, plus RawPayload for
// items deserialized with an unrecognized tag. Syncer dispatch narrows the
// variant with a single exhaustive type switch; no other narrowing exists.
type SyncPayload interface {
	// Kind reports the queue tag this payload serializes under.
	Kind() SyncItemType
}

// SyncItem describes one pending local mutation destined for the remote
// document store.
type SyncItem struct {
	// ID is an opaque unique identifier generated at enqueue time.
	ID string `json:"id"`

	// Type tags the mutation category. It always equals Data.Kind().
	Type SyncItemType `json:"type"`

	// Data is the typed payload for this mutation.
	Data SyncPayload `json:"data"`

	// Timestamp is the logical creation time of the mutation. It is the
	// local side of the conflict comparison, not a wall-clock guarantee.
	Timestamp time.Time `json:"timestamp"`

	// UserID is the owning account.
	UserID int64 `json:"userId"`

	// Status is the current state machine value.
	Status SyncStatus `json:"status"`

	// RetryCount is the number of failed attempts so far.
	RetryCount int `json:"retryCount"`

	// LastAttempt is set after each failed attempt.
	LastAttempt *time.Time `json:"lastAttempt,omitempty"`

	// NextAttempt is the earliest time the item becomes eligible again,
	// computed from the configured backoff strategy after a failure.
	// Nil means immediately eligible.
	NextAttempt *time.Time `json:"nextAttempt,omitempty"`
}

// NewSyncItem builds a pending item around the given payload. The item's
// Type is derived from the payload so the two can never disagree.
func NewSyncItem(id string, userID int64, payload SyncPayload, at time.Time) SyncItem {
	return SyncItem{
		ID:        id,
		Type:      payload.Kind(),
		Data:      payload,
		Timestamp: at,
		UserID:    userID,
		Status:    StatusPending,
	}
}

// syncItemEnvelope mirrors SyncItem with the payload left raw, so the tag
// can be inspected before the payload is decoded.
type syncItemEnvelope struct {
	ID          string          `json:"id"`
	Type        SyncItemType    `json:"type"`
	Data        json.RawMessage `json:"data"`
	Timestamp   time.Time       `json:"timestamp"`
	UserID      int64           `json:"userId"`
	Status      SyncStatus      `json:"status"`
	RetryCount  int             `json:"retryCount"`
	LastAttempt *time.Time      `json:"lastAttempt,omitempty"`
	NextAttempt *time.Time      `json:"nextAttempt,omitempty"`
}

// MarshalJSON serializes the item with its payload inlined under "data".
// Timestamps use RFC 3339 (the encoding/json default for [time.Time]).
func (i SyncItem) MarshalJSON() ([]byte, error) {
	var raw json.RawMessage
	if i.Data != nil {
		payload, err := json.Marshal(i.Data)
		if err != nil {
			return nil, fmt.Errorf("encode sync item payload: %w", err)
		}
		raw = payload
	}

	return json.Marshal(syncItemEnvelope{
		ID:          i.ID,
		Type:        i.Type,
		Data:        raw,
		Timestamp:   i.Timestamp,
		UserID:      i.UserID,
		Status:      i.Status,
		RetryCount:  i.RetryCount,
		LastAttempt: i.LastAttempt,
		NextAttempt: i.NextAttempt,
	})
}

// UnmarshalJSON decodes the envelope first, then selects the payload variant
// by the type tag. An unrecognized tag does not fail the decode: the payload
// is preserved as a RawPayload and the item is rejected later, at dispatch
// time, as an unknown-type failure.
func (i *SyncItem) UnmarshalJSON(data []byte) error {
	var env syncItemEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode sync item: %w", err)
	}

	payload, err := DecodePayload(env.Type, env.Data)
	if err != nil {
		return err
	}

	*i = SyncItem{
		ID:          env.ID,
		Type:        env.Type,
		Data:        payload,
		Timestamp:   env.Timestamp,
		UserID:      env.UserID,
		Status:      env.Status,
		RetryCount:  env.RetryCount,
		LastAttempt: env.LastAttempt,
		NextAttempt: env.NextAttempt,
	}

	return nil
}

// DecodePayload decodes raw payload bytes into the variant matching the tag.
// An unrecognized tag yields a RawPayload rather than an error, so queued
// items written by a newer client survive a round-trip through an older one.
func DecodePayload(t SyncItemType, raw json.RawMessage) (SyncPayload, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}

	decode := func(dst any) error {
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("decode %q payload: %w", t, err)
		}
		return nil
	}

	switch t {
	case SyncTypeMission:
		var p MissionProgress
		if err := decode(&p); err != nil {
			return nil, err
		}
		return p, nil
	case SyncTypeProgress:
		var p StudySessionData
		if err := decode(&p); err != nil {
			return nil, err
		}
		return p, nil
	case SyncTypeAnalytics:
		var p AnalyticsEvent
		if err := decode(&p); err != nil {
			return nil, err
		}
		return p, nil
	case SyncTypePreferences:
		var p Preferences
		if err := decode(&p); err != nil {
			return nil, err
		}
		return p, nil
	case SyncTypeSession:
		var p SessionSnapshot
		if err := decode(&p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return RawPayload{Type: t, Raw: append(json.RawMessage(nil), raw...)}, nil
	}
}
