package http

import (
	"bytes"
	"crypto/hmac"
	"io"
	"net/http"

	"github.com/MKhiriev/go-study-sync/internal/app"
	"github.com/MKhiriev/go-study-sync/internal/utils"
)

// hashHeader carries the client's HMAC-SHA256 signature of the request body,
// hex-encoded. The adapter attaches it to every authenticated write when a
// hash key is configured.
const hashHeader = "HashSHA256"

// checkBodySignature verifies the integrity signature of authenticated write
// requests.
//
// When no hash key is configured the middleware is a pass-through. Otherwise
// every request that carries a body must also carry the [hashHeader] whose
// value equals HMAC-SHA256(body, key) hex-encoded; requests with a missing or
// mismatching signature are rejected with HTTP 400. Bodyless requests (the
// journey read) pass through unsigned.
//
// The body is consumed for hashing and restored before the next handler runs.
func (h *Handler) checkBodySignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.hashKey == "" || r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Err(err).Str("func", "*Handler.checkBodySignature").Msg("failed to read request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		signature := r.Header.Get(hashHeader)
		if signature == "" {
			h.logger.Error().Str("func", "*Handler.checkBodySignature").Msg(app.MsgMissingBodySignature)
			http.Error(w, app.MsgMissingBodySignature, http.StatusBadRequest)
			return
		}

		hashedBody := utils.HashString(string(body), h.hashKey)
		if !hmac.Equal([]byte(hashedBody), []byte(signature)) {
			h.logger.Error().Str("func", "*Handler.checkBodySignature").
				Str("hash from request", signature).
				Str("hashed body", hashedBody).
				Msg("hashes are not equal")
			http.Error(w, app.MsgIntegrityCheckFailed, http.StatusBadRequest)
			return
		}

		h.logger.Debug().Str("func", "*Handler.checkBodySignature").Msg("hashes are equal")

		next.ServeHTTP(w, r)
	})
}
