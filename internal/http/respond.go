package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shehabweb1/MediCamp-Server/internal/repository"
	"github.com/shehabweb1/MediCamp-Server/internal/service/camp"
	"github.com/shehabweb1/MediCamp-Server/internal/service/feedback"
	"github.com/shehabweb1/MediCamp-Server/internal/service/payment"
	"github.com/shehabweb1/MediCamp-Server/internal/service/registration"
	"github.com/shehabweb1/MediCamp-Server/internal/service/user"
)

// writeJSON writes JSON response with status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError sends an error message.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps a service failure onto the HTTP taxonomy: rejected
// input is 400 with detail, a missing entity is 404, and everything else is an
// upstream failure reported with an opaque message so store and processor
// internals never leak to clients.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, registration.ErrInvalidInput),
		errors.Is(err, payment.ErrInvalidInput),
		errors.Is(err, camp.ErrInvalidInput),
		errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, feedback.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusBadGateway, "upstream failure")
	}
}
