package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// Client-side sentinels.
	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")
	ErrNotAuthenticated = errors.New("no authenticated session")

	ErrSyncInProgress        = errors.New("sync already in progress")
	ErrOffline               = errors.New("device is offline")
	ErrUnknownSyncItemType   = errors.New("unknown sync item type")
	ErrNoResolutionsProvided = errors.New("no conflict resolutions provided")
	ErrItemNotInConflict     = errors.New("sync item is not in conflict state")
)
