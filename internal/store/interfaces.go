package store

import (
	"context"

	"github.com/MKhiriev/go-study-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository handles user account persistence on the server.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, user models.User) (models.User, error)
	MergePreferences(ctx context.Context, userID int64, prefs models.Preferences) (models.User, error)
}

// DocumentRepository handles the per-user study documents the sync queue
// writes to: journey progress, study sessions, analytics events and session
// snapshots.
type DocumentRepository interface {
	GetJourney(ctx context.Context, userID int64, missionID string) (models.JourneyDocument, error)
	UpsertJourney(ctx context.Context, doc models.JourneyDocument) (models.JourneyDocument, error)
	AppendStudySession(ctx context.Context, rec models.StudySessionRecord) (models.StudySessionRecord, error)
	AppendAnalyticsEvent(ctx context.Context, rec models.AnalyticsEventRecord) (models.AnalyticsEventRecord, error)
	UpsertSession(ctx context.Context, doc models.SessionDocument) (models.SessionDocument, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
