package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"atelier/internal/upstream"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, code int, errorCode, message string) {
	respondWithJSON(w, code, map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// respondUpstreamError maps client errors onto responses: remote
// rejections keep their payload message and status, transport failures
// become a generic localized message. Nothing here ever reaches the
// cart or session stores.
func respondUpstreamError(w http.ResponseWriter, err error, locale string) {
	var remote *upstream.RemoteError
	if errors.As(err, &remote) {
		code := remote.StatusCode
		if code < 400 || code > 599 {
			code = http.StatusBadGateway
		}
		respondWithError(w, code, "upstream_rejected", remote.Message)
		return
	}
	respondWithError(w, http.StatusBadGateway, "upstream_unreachable", upstream.GenericMessage(locale))
}
