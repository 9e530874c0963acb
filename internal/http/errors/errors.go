// Package errors maps failures onto the API's JSON error responses. Client
// bodies stay generic; the real error goes to the log, tagged with the
// request id.
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// InternalError logs err and answers with a generic 500 body. Upstream
// failures are deliberately not distinguished for the caller: "not found",
// "rate limited" and "token expired" all look the same from outside.
func InternalError(w http.ResponseWriter, r *http.Request, err error, clientMessage string) {
	log.Error().
		Str("request_id", middleware.GetReqID(r.Context())).
		Err(err).
		Msg(clientMessage)
	writeError(w, http.StatusInternalServerError, clientMessage)
}

// BadRequestError answers a client mistake with a 400.
func BadRequestError(w http.ResponseWriter, r *http.Request, err error, clientMessage string) {
	log.Warn().
		Str("request_id", middleware.GetReqID(r.Context())).
		Err(err).
		Msg("bad request")
	writeError(w, http.StatusBadRequest, clientMessage)
}

// Unauthorized rejects a request that carries no valid session.
func Unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "Unauthorized")
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
