package service

import (
	"context"

	"github.com/MKhiriev/go-study-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService handles account registration, credential verification and the
// JWT token lifecycle on the server.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// DocumentService exposes the per-user study documents the sync queue writes
// to. Merge-written documents refresh their server-side updated_at, which is
// the remote half of the client's conflict comparison.
type DocumentService interface {
	GetJourney(ctx context.Context, userID int64, missionID string) (models.JourneyDocument, error)
	UpsertJourney(ctx context.Context, doc models.JourneyDocument) (models.JourneyDocument, error)
	AppendStudySession(ctx context.Context, rec models.StudySessionRecord) (models.StudySessionRecord, error)
	AppendAnalyticsEvent(ctx context.Context, rec models.AnalyticsEventRecord) (models.AnalyticsEventRecord, error)
	MergePreferences(ctx context.Context, userID int64, prefs models.Preferences) (models.User, error)
	UpsertSession(ctx context.Context, doc models.SessionDocument) (models.SessionDocument, error)
}

// AppInfoService reports build-time metadata of the running binary.
type AppInfoService interface {
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
