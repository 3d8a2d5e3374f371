package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-study-sync/internal/app"
	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/internal/store"
	"github.com/MKhiriev/go-study-sync/internal/utils"
	"github.com/MKhiriev/go-study-sync/models"
)

func (h *Handler) getJourney(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getJourney").Msg(app.MsgNoUserIDGiven)
		http.Error(w, app.MsgNoUserIDGiven, http.StatusBadRequest)
		return
	}
	missionID := chi.URLParam(r, "missionID")

	doc, err := h.services.DocumentService.GetJourney(ctx, userID, missionID)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			// never-synced mission, the client starts from a blank remote
			http.Error(w, app.MsgJourneyNotFound, http.StatusNotFound)
			return
		}
		log.Err(err).Str("func", "*Handler.getJourney").Msg("error getting journey")
		http.Error(w, "error getting journey", statusFromError(err))
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) upsertJourney(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.upsertJourney").Msg(app.MsgNoUserIDGiven)
		http.Error(w, app.MsgNoUserIDGiven, http.StatusBadRequest)
		return
	}

	var progress models.MissionProgress
	if err := json.NewDecoder(r.Body).Decode(&progress); err != nil {
		log.Err(err).Str("func", "*Handler.upsertJourney").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	stored, err := h.services.DocumentService.UpsertJourney(ctx, models.JourneyDocument{
		MissionID: chi.URLParam(r, "missionID"),
		UserID:    userID,
		Progress:  progress,
	})
	if err != nil {
		log.Err(err).Str("func", "*Handler.upsertJourney").Msg("error upserting journey")
		http.Error(w, "error upserting journey", statusFromError(err))
		return
	}

	utils.WriteJSON(w, stored, http.StatusOK)
}

func (h *Handler) appendStudySession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.appendStudySession").Msg(app.MsgNoUserIDGiven)
		http.Error(w, app.MsgNoUserIDGiven, http.StatusBadRequest)
		return
	}

	var session models.StudySessionData
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Err(err).Str("func", "*Handler.appendStudySession").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	stored, err := h.services.DocumentService.AppendStudySession(ctx, models.StudySessionRecord{
		UserID:  userID,
		Session: session,
	})
	if err != nil {
		log.Err(err).Str("func", "*Handler.appendStudySession").Msg("error appending study session")
		http.Error(w, "error appending study session", statusFromError(err))
		return
	}

	utils.WriteJSON(w, stored, http.StatusCreated)
}

func (h *Handler) appendAnalyticsEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.appendAnalyticsEvent").Msg(app.MsgNoUserIDGiven)
		http.Error(w, app.MsgNoUserIDGiven, http.StatusBadRequest)
		return
	}

	var event models.AnalyticsEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Err(err).Str("func", "*Handler.appendAnalyticsEvent").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	stored, err := h.services.DocumentService.AppendAnalyticsEvent(ctx, models.AnalyticsEventRecord{
		UserID: userID,
		Event:  event,
	})
	if err != nil {
		log.Err(err).Str("func", "*Handler.appendAnalyticsEvent").Msg("error appending analytics event")
		http.Error(w, "error appending analytics event", statusFromError(err))
		return
	}

	utils.WriteJSON(w, stored, http.StatusCreated)
}

func (h *Handler) mergePreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.mergePreferences").Msg(app.MsgNoUserIDGiven)
		http.Error(w, app.MsgNoUserIDGiven, http.StatusBadRequest)
		return
	}

	var prefs models.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		log.Err(err).Str("func", "*Handler.mergePreferences").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	updated, err := h.services.DocumentService.MergePreferences(ctx, userID, prefs)
	if err != nil {
		log.Err(err).Str("func", "*Handler.mergePreferences").Msg("error merging preferences")
		http.Error(w, "error merging preferences", statusFromError(err))
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) upsertSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.upsertSession").Msg(app.MsgNoUserIDGiven)
		http.Error(w, app.MsgNoUserIDGiven, http.StatusBadRequest)
		return
	}

	var snapshot models.SessionSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		log.Err(err).Str("func", "*Handler.upsertSession").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	stored, err := h.services.DocumentService.UpsertSession(ctx, models.SessionDocument{
		ItemID:   chi.URLParam(r, "itemID"),
		UserID:   userID,
		Snapshot: snapshot,
	})
	if err != nil {
		log.Err(err).Str("func", "*Handler.upsertSession").Msg("error upserting session snapshot")
		http.Error(w, "error upserting session snapshot", statusFromError(err))
		return
	}

	utils.WriteJSON(w, stored, http.StatusOK)
}
