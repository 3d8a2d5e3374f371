// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// StudySync server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when a request passes JSON decoding
	// but fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing user record.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgLoginAlreadyExists is returned when a registration attempt is
	// rejected because the requested login is already in use.
	MsgLoginAlreadyExists = "login already exists"

	// MsgNoUserIDGiven is returned when a handler requires a user ID (e.g.
	// extracted from the JWT claim) but none is present in the request
	// context.
	MsgNoUserIDGiven = "no user ID was given"

	// MsgInvalidPathUserID is returned when the {userID} path segment of a
	// per-user document route is not a number.
	MsgInvalidPathUserID = "invalid user ID in path"

	// MsgJourneyNotFound is returned when a journey read targets a mission
	// document that has never been synced for the current user.
	MsgJourneyNotFound = "journey not found"

	// MsgMissingBodySignature is returned when a signed write arrives without
	// the body signature header while signature checking is enabled.
	MsgMissingBodySignature = "missing body signature"

	// MsgIntegrityCheckFailed is returned when the body signature header does
	// not match the HMAC of the received body.
	MsgIntegrityCheckFailed = "Integrity check failed"
)
