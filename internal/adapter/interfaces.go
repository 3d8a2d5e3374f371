// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the study-sync server.
//
// The primary abstraction is [ServerAdapter], which decouples the sync
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNotFound] for a journey document that was never
// written, [ErrServerUnavailable] for an unreachable server).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-study-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the study-sync
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful Register or Login, or when a persisted session is
	// restored on startup.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register sends a registration request with the provided user
	// credentials. On success it stores the returned bearer token via
	// SetToken and returns the user with the server-assigned UserID.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user. On success it stores the returned bearer
	// token via SetToken and returns the server-side user record with UserID
	// and stored preferences.
	Login(ctx context.Context, user models.User) (models.User, error)

	// Ping probes server reachability without authentication. Returns
	// [ErrServerUnavailable] (wrapped) when the server cannot be reached;
	// the connectivity watcher polls it to drive online/offline edges.
	Ping(ctx context.Context) error

	// GetJourney fetches the remote journey document for one mission.
	// Returns [ErrNotFound] (wrapped) when the mission has never been
	// written for this user; the mission syncer treats that as "no remote
	// yet" and skips the conflict check.
	GetJourney(ctx context.Context, userID int64, missionID string) (models.JourneyDocument, error)

	// UpsertJourney merge-writes the journey document and returns the stored
	// document with the server-refreshed UpdatedAt.
	UpsertJourney(ctx context.Context, doc models.JourneyDocument) (models.JourneyDocument, error)

	// AppendStudySession appends one study session record to the user's
	// study_sessions collection and returns it with server-assigned fields.
	AppendStudySession(ctx context.Context, rec models.StudySessionRecord) (models.StudySessionRecord, error)

	// AppendAnalyticsEvent appends one analytics event to the user's
	// analytics_events collection and returns it with server-assigned fields.
	AppendAnalyticsEvent(ctx context.Context, rec models.AnalyticsEventRecord) (models.AnalyticsEventRecord, error)

	// MergePreferences merge-writes the preferences document into the user
	// record and returns the updated user.
	MergePreferences(ctx context.Context, userID int64, prefs models.Preferences) (models.User, error)

	// UpsertSession merge-writes a generic session snapshot keyed by the
	// queued item's id and returns the stored document.
	UpsertSession(ctx context.Context, doc models.SessionDocument) (models.SessionDocument, error)
}
