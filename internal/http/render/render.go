// Package render writes JSON responses and error payloads.
package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/preset"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Error(w http.ResponseWriter, status int, msg, detail string) {
	JSON(w, status, errorResponse{Error: msg, Detail: detail})
}

// Err maps a service error onto a status code and error payload.
func Err(w http.ResponseWriter, err error) {
	var rejected *ledger.RejectedError

	switch {
	case errors.As(err, &rejected):
		Error(w, http.StatusUnprocessableEntity, err.Error(), rejected.Detail)
	case errors.Is(err, importer.ErrConfiguration), errors.Is(err, preset.ErrInvalid):
		Error(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, ledger.ErrUnavailable):
		Error(w, http.StatusBadGateway, err.Error(), "")
	case errors.Is(err, preset.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, preset.ErrDuplicateName):
		Error(w, http.StatusConflict, err.Error(), "")
	default:
		slog.Error("request failed", "error", err)
		Error(w, http.StatusInternalServerError, "internal error", "")
	}
}
