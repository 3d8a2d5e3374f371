package service

import (
	"github.com/MKhiriev/go-study-sync/internal/adapter"
	"github.com/MKhiriev/go-study-sync/internal/config"
	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/internal/store"
	"github.com/MKhiriev/go-study-sync/internal/utils"
	"github.com/MKhiriev/go-study-sync/internal/validators"
)

type ClientServices struct {
	AuthService  ClientAuthService
	QueueService ClientQueueService
	SyncService  ClientSyncService
	SyncJob      ClientSyncJob
}

func NewClientServices(localStore *store.ClientStorages, serverAdapter adapter.ServerAdapter, probe ConnectivityProbe, cfg config.ClientSync, logger *logger.Logger) *ClientServices {
	validator := validators.NewSyncItemValidator()
	authSvc := NewClientAuthService(localStore, serverAdapter, logger)
	queueSvc := NewClientQueueService(localStore.QueueRepository, validator, utils.NewUUIDGenerator(), logger)
	syncSvc := NewClientSyncService(localStore.QueueRepository, serverAdapter, authSvc, probe, validator, cfg, logger)

	return &ClientServices{
		AuthService:  authSvc,
		QueueService: queueSvc,
		SyncService:  syncSvc,
		SyncJob:      NewClientSyncJob(syncSvc),
	}
}
