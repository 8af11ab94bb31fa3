package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"crane-backend/internal/models"
	"crane-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeServiceError maps the known service errors onto status codes;
// anything unrecognized is a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve models.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error": ve.Message,
			"field": ve.Field,
		})
	case errors.Is(err, services.ErrOrderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrRateNotFound),
		errors.Is(err, services.ErrIncentiveInvalid),
		errors.Is(err, services.ErrNotCashOrder),
		errors.Is(err, services.ErrNothingOutstanding),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrSelfDelete),
		errors.Is(err, services.ErrSelfReset),
		errors.Is(err, services.ErrUnsupportedFile),
		errors.Is(err, services.ErrTOTPInvalid),
		errors.Is(err, services.ErrTOTPNotSetUp),
		errors.Is(err, services.ErrTOTPAlreadyActive),
		errors.Is(err, services.ErrNoColumns),
		errors.Is(err, services.ErrUnknownColumn),
		errors.Is(err, services.ErrBadDateRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrEmailTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, services.ErrWrongPassword):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, services.ErrPaymentsNotConfigured):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
