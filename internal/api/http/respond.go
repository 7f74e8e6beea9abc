package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/pricing"
	"fleetrent-backend/internal/security"
	"fleetrent-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status >= 500 {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		respondJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

var errBadRequest = errors.New("bad request")

func statusForError(err error) int {
	switch {
	case errors.Is(err, pricing.ErrInvalidInput), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrCouponNotFound),
		errors.Is(err, service.ErrVehicleNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrImageNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrCouponInactive),
		errors.Is(err, service.ErrCouponExpired),
		errors.Is(err, service.ErrCouponExhausted),
		errors.Is(err, service.ErrCouponMinOrder),
		errors.Is(err, service.ErrImageNotUploaded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrVehicleUnavailable),
		errors.Is(err, service.ErrOwnVehicle),
		errors.Is(err, service.ErrInvalidBookingState),
		errors.Is(err, service.ErrPaymentNotCompleted),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrNotBookingParty),
		errors.Is(err, service.ErrNotVehicleOwner),
		errors.Is(err, service.ErrAccountBlocked):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", errBadRequest)
	}
	return nil
}
