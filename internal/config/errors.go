package config

import "errors"

var (
	// ErrInvalidAdapterConfigs signals the remote adapter section is unusable.
	ErrInvalidAdapterConfigs = errors.New("error invalid adapter configs")
	// ErrInvalidStorageConfigs signals the storage section is unusable.
	ErrInvalidStorageConfigs = errors.New("error invalid storage configs")
	// ErrInvalidAppConfigs signals the app section is unusable.
	ErrInvalidAppConfigs = errors.New("error invalid app configs")
	// ErrInvalidWorkerConfigs signals the background worker section is unusable.
	ErrInvalidWorkerConfigs = errors.New("error invalid worker configs")
)
