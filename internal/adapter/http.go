package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-study-sync/internal/config"
	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/internal/utils"
	"github.com/MKhiriev/go-study-sync/models"
)

type httpServerAdapter struct {
	client  *resty.Client
	hashKey string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying resty client with the
// resolved base URL and request timeout.
//
// When appCfg.HashKey is non-empty, every authenticated write carries an
// HMAC-SHA256 signature of its body in the HashSHA256 header, which the
// server's hashing middleware verifies.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, hashKey: appCfg.HashKey, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the user credentials to
// POST /api/auth/register. On success the bearer token is extracted from the
// Authorization response header, stored via SetToken, and the server-assigned
// UserID is read from the token's "sub" claim.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	var createdUser models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&createdUser).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w: %w", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return models.User{}, fmt.Errorf("register parse user id: %w", err)
	}

	h.SetToken(token)
	createdUser.UserID = userID
	return createdUser, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken. Returns the
// server-side user record with UserID and stored preferences.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	var foundUser models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&foundUser).
		Post("/api/auth/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w: %w", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("login parse bearer token: %w", err)
	}
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return models.User{}, fmt.Errorf("login parse user id: %w", err)
	}

	h.SetToken(token)
	foundUser.UserID = userID
	return foundUser, nil
}

// Ping implements [ServerAdapter]. It GETs /api/ping without authentication.
func (h *httpServerAdapter) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/api/ping")
	if err != nil {
		return fmt.Errorf("ping request: %w: %w", ErrServerUnavailable, err)
	}

	return mapHTTPError(resp)
}

// GetJourney implements [ServerAdapter]. It GETs the per-mission journey
// document from GET /api/users/{userID}/journeys/{missionID}.
func (h *httpServerAdapter) GetJourney(ctx context.Context, userID int64, missionID string) (models.JourneyDocument, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("userID", strconv.FormatInt(userID, 10)).
		SetPathParam("missionID", missionID).
		Get("/api/users/{userID}/journeys/{missionID}")
	if err != nil {
		return models.JourneyDocument{}, fmt.Errorf("get journey request: %w: %w", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.JourneyDocument{}, err
	}

	var doc models.JourneyDocument
	if err = json.Unmarshal(resp.Body(), &doc); err != nil {
		return models.JourneyDocument{}, fmt.Errorf("decode journey response: %w", err)
	}

	return doc, nil
}

// UpsertJourney implements [ServerAdapter]. It PUTs the progress payload to
// PUT /api/users/{userID}/journeys/{missionID} and returns the stored
// document with the server-refreshed UpdatedAt.
func (h *httpServerAdapter) UpsertJourney(ctx context.Context, doc models.JourneyDocument) (models.JourneyDocument, error) {
	req, err := h.signedBody(h.authedRequest(ctx), doc.Progress)
	if err != nil {
		return models.JourneyDocument{}, fmt.Errorf("encode journey request: %w", err)
	}

	resp, err := req.
		SetPathParam("userID", strconv.FormatInt(doc.UserID, 10)).
		SetPathParam("missionID", doc.MissionID).
		Put("/api/users/{userID}/journeys/{missionID}")
	if err != nil {
		return models.JourneyDocument{}, fmt.Errorf("upsert journey request: %w: %w", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.JourneyDocument{}, err
	}

	var stored models.JourneyDocument
	if err = json.Unmarshal(resp.Body(), &stored); err != nil {
		return models.JourneyDocument{}, fmt.Errorf("decode journey response: %w", err)
	}

	return stored, nil
}

// AppendStudySession implements [ServerAdapter]. It POSTs the session payload
// to POST /api/users/{userID}/study_sessions.
func (h *httpServerAdapter) AppendStudySession(ctx context.Context, rec models.StudySessionRecord) (models.StudySessionRecord, error) {
	req, err := h.signedBody(h.authedRequest(ctx), rec.Session)
	if err != nil {
		return models.StudySessionRecord{}, fmt.Errorf("encode study session request: %w", err)
	}

	resp, err := req.
		SetPathParam("userID", strconv.FormatInt(rec.UserID, 10)).
		Post("/api/users/{userID}/study_sessions")
	if err != nil {
		return models.StudySessionRecord{}, fmt.Errorf("append study session request: %w: %w", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StudySessionRecord{}, err
	}

	var stored models.StudySessionRecord
	if err = json.Unmarshal(resp.Body(), &stored); err != nil {
		return models.StudySessionRecord{}, fmt.Errorf("decode study session response: %w", err)
	}

	return stored, nil
}

// AppendAnalyticsEvent implements [ServerAdapter]. It POSTs the event payload
// to POST /api/users/{userID}/analytics_events.
func (h *httpServerAdapter) AppendAnalyticsEvent(ctx context.Context, rec models.AnalyticsEventRecord) (models.AnalyticsEventRecord, error) {
	req, err := h.signedBody(h.authedRequest(ctx), rec.Event)
	if err != nil {
		return models.AnalyticsEventRecord{}, fmt.Errorf("encode analytics event request: %w", err)
	}

	resp, err := req.
		SetPathParam("userID", strconv.FormatInt(rec.UserID, 10)).
		Post("/api/users/{userID}/analytics_events")
	if err != nil {
		return models.AnalyticsEventRecord{}, fmt.Errorf("append analytics event request: %w: %w", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AnalyticsEventRecord{}, err
	}

	var stored models.AnalyticsEventRecord
	if err = json.Unmarshal(resp.Body(), &stored); err != nil {
		return models.AnalyticsEventRecord{}, fmt.Errorf("decode analytics event response: %w", err)
	}

	return stored, nil
}

// MergePreferences implements [ServerAdapter]. It PATCHes the preferences
// document onto PATCH /api/users/{userID} and returns the updated user.
func (h *httpServerAdapter) MergePreferences(ctx context.Context, userID int64, prefs models.Preferences) (models.User, error) {
	req, err := h.signedBody(h.authedRequest(ctx), prefs)
	if err != nil {
		return models.User{}, fmt.Errorf("encode preferences request: %w", err)
	}

	resp, err := req.
		SetPathParam("userID", strconv.FormatInt(userID, 10)).
		Patch("/api/users/{userID}")
	if err != nil {
		return models.User{}, fmt.Errorf("merge preferences request: %w: %w", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var updated models.User
	if err = json.Unmarshal(resp.Body(), &updated); err != nil {
		return models.User{}, fmt.Errorf("decode preferences response: %w", err)
	}
	updated.UserID = userID

	return updated, nil
}

// UpsertSession implements [ServerAdapter]. It PUTs the session snapshot to
// PUT /api/users/{userID}/sessions/{itemID}.
func (h *httpServerAdapter) UpsertSession(ctx context.Context, doc models.SessionDocument) (models.SessionDocument, error) {
	req, err := h.signedBody(h.authedRequest(ctx), doc.Snapshot)
	if err != nil {
		return models.SessionDocument{}, fmt.Errorf("encode session request: %w", err)
	}

	resp, err := req.
		SetPathParam("userID", strconv.FormatInt(doc.UserID, 10)).
		SetPathParam("itemID", doc.ItemID).
		Put("/api/users/{userID}/sessions/{itemID}")
	if err != nil {
		return models.SessionDocument{}, fmt.Errorf("upsert session request: %w: %w", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SessionDocument{}, err
	}

	var stored models.SessionDocument
	if err = json.Unmarshal(resp.Body(), &stored); err != nil {
		return models.SessionDocument{}, fmt.Errorf("decode session response: %w", err)
	}

	return stored, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// signedBody marshals v as the request body and, when a hash key is
// configured, attaches the HMAC-SHA256 signature of the body in the
// HashSHA256 header.
func (h *httpServerAdapter) signedBody(req *resty.Request, v any) (*resty.Request, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	req.SetHeader("Content-Type", "application/json").SetBody(payload)
	if h.hashKey != "" {
		req.SetHeader("HashSHA256", utils.HashString(string(payload), h.hashKey))
	}

	return req, nil
}
