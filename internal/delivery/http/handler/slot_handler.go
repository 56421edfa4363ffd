package handler

import (
	"errors"
	"net/http"
	"strings"

	"hospital-scheduling/internal/usecase"
	"hospital-scheduling/pkg/response"

	"github.com/google/uuid"
)

type SlotHandler struct {
	slotGridUsecase usecase.SlotGridUsecase
}

func NewSlotHandler(slotGridUsecase usecase.SlotGridUsecase) *SlotHandler {
	return &SlotHandler{
		slotGridUsecase: slotGridUsecase,
	}
}

// GetSlotGrid serves GET /slots?doctor_id=&date=
func (h *SlotHandler) GetSlotGrid(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rawDoctorID := strings.TrimSpace(q.Get("doctor_id"))
	if rawDoctorID == "" {
		response.Error(w, http.StatusBadRequest, "doctor_id is required", nil)
		return
	}
	doctorID, err := uuid.Parse(rawDoctorID)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := strings.TrimSpace(q.Get("date"))
	if date == "" {
		response.Error(w, http.StatusBadRequest, "date is required", nil)
		return
	}

	grid, err := h.slotGridUsecase.GetSlotGrid(r.Context(), doctorID, date)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorRequired):
			response.Error(w, http.StatusBadRequest, "doctor_id is required", nil)
		case errors.Is(err, usecase.ErrInvalidDate):
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to load time slots, please try again")
		}
		return
	}

	response.Success(w, http.StatusOK, "Time slots retrieved successfully", grid)
}
