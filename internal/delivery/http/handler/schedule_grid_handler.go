package handler

import (
	"net/http"

	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
)

type ScheduleGridHandler struct {
	gridUsecase usecase.ScheduleGridUsecase
}

func NewScheduleGridHandler(gridUsecase usecase.ScheduleGridUsecase) *ScheduleGridHandler {
	return &ScheduleGridHandler{
		gridUsecase: gridUsecase,
	}
}

// GetGrid answers with the bare grid object, not the success envelope.
func (h *ScheduleGridHandler) GetGrid(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	startDate, endDate := query.Get("start"), query.Get("end")
	if startDate == "" || endDate == "" {
		response.Error(w, http.StatusBadRequest, "Missing start or end date", nil)
		return
	}

	grid, err := h.gridUsecase.GetGrid(r.Context(), startDate, endDate)
	if err != nil {
		writeError(w, err, "Failed to build schedule grid")
		return
	}

	response.JSON(w, http.StatusOK, grid)
}
