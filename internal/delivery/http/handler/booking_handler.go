package handler

import (
	"encoding/json"
	"net/http"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	assignmentUsecase usecase.BookingAssignmentUsecase
	validator         *validator.CustomValidator
}

func NewBookingHandler(assignmentUsecase usecase.BookingAssignmentUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		assignmentUsecase: assignmentUsecase,
		validator:         validator,
	}
}

func (h *BookingHandler) AssignDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	var req dto.AssignDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.assignmentUsecase.AssignDoctor(r.Context(), bookingID, &req)
	if err != nil {
		writeError(w, err, "Failed to assign doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor assigned successfully", booking)
}
