// internal/app/system/respond/respond.go

// Package respond writes the JSON envelope used by every API handler and
// maps domain faults onto HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/volunteerhub/internal/domain/faults"
	"go.uber.org/zap"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON writes data under a success envelope.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, Envelope{Success: true, Data: data})
}

// Message writes a success envelope with only a message.
func Message(w http.ResponseWriter, status int, msg string) {
	write(w, status, Envelope{Success: true, Message: msg})
}

// Fail writes a failure envelope with the given status and message.
func Fail(w http.ResponseWriter, status int, msg string) {
	write(w, status, Envelope{Success: false, Message: msg})
}

// Error maps err onto a status code and writes a failure envelope.
// Non-fault errors are logged and surfaced as an opaque 500.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		Fail(w, status, "internal server error")
		return
	}
	Fail(w, status, faults.Message(err, http.StatusText(status)))
}

// StatusFor returns the HTTP status for a fault kind.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, faults.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, faults.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, faults.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, faults.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, faults.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON parses a request body into dst, returning a validation fault
// on malformed input.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return faults.Validation("invalid request body")
	}
	return nil
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
