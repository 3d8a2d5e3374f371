package http

import (
	"net/http"

	"github.com/MKhiriev/go-study-sync/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	buildInfo := h.services.AppInfoService.GetBuildInfo(r.Context())

	utils.WriteJSON(w, map[string]string{
		"version": buildInfo.BuildVersion(),
		"date":    buildInfo.BuildDate(),
		"commit":  buildInfo.BuildCommit(),
	}, http.StatusOK)
}
