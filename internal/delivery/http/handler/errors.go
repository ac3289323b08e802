package handler

import (
	"errors"
	"net/http"

	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
)

// writeError maps usecase errors onto HTTP responses. Store failures get a generic
// retry message; the cause is already logged by the usecase.
func writeError(w http.ResponseWriter, err error, failure string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrInvalidDateRange),
		errors.Is(err, usecase.ErrInvalidTimeFormat),
		errors.Is(err, usecase.ErrInvalidBookingTime):
		response.Error(w, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, usecase.ErrServiceNotFound):
		response.NotFound(w, "Service not found")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrBookingNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, usecase.ErrAuditLogNotFound):
		response.NotFound(w, "Audit log not found")
	case errors.Is(err, usecase.ErrDoctorUnavailable):
		response.Conflict(w, "Doctor is not available for this booking")
	case errors.Is(err, usecase.ErrBookingNotAssignable):
		response.Conflict(w, "Booking cannot be assigned in its current state")
	default:
		response.Error(w, http.StatusInternalServerError, failure, "Service temporarily unavailable, please try again")
	}
}
