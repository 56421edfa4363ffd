package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/usecase"
	"hospital-scheduling/pkg/response"
	"hospital-scheduling/pkg/validator"

	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

func writeAvailabilityError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidDay):
		response.Error(w, http.StatusBadRequest, "Invalid day selected.", nil)
	case errors.Is(err, usecase.ErrInvalidStartTime):
		response.Error(w, http.StatusBadRequest, "Invalid start time.", nil)
	case errors.Is(err, usecase.ErrInvalidEndTime):
		response.Error(w, http.StatusBadRequest, "Invalid end time.", nil)
	case errors.Is(err, usecase.ErrEndNotAfterStart):
		response.Error(w, http.StatusBadRequest, "End time must be after start time.", nil)
	case errors.Is(err, usecase.ErrDuplicateDay):
		response.Conflict(w, "Availability for this day already exists.")
	case errors.Is(err, usecase.ErrAvailabilityNotFound):
		response.NotFound(w, "Availability not found")
	case errors.Is(err, usecase.ErrForbiddenRole):
		response.Forbidden(w, "")
	default:
		response.InternalServerError(w, fallback)
	}
}

func availabilityID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid availability ID", nil)
		return 0, false
	}
	return id, true
}

func (h *AvailabilityHandler) AddAvailability(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.AddAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.AddAvailability(r.Context(), actor, &req)
	if err != nil {
		writeAvailabilityError(w, err, "Failed to add availability, please try again")
		return
	}

	response.Success(w, http.StatusCreated, "Availability added successfully", availability)
}

func (h *AvailabilityHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := availabilityID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.UpdateAvailability(r.Context(), actor, id, &req)
	if err != nil {
		writeAvailabilityError(w, err, "Failed to update availability, please try again")
		return
	}

	response.Success(w, http.StatusOK, "Availability updated successfully", availability)
}

func (h *AvailabilityHandler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := availabilityID(w, r)
	if !ok {
		return
	}

	if err := h.availabilityUsecase.DeleteAvailability(r.Context(), actor, id); err != nil {
		writeAvailabilityError(w, err, "Failed to delete availability, please try again")
		return
	}

	response.Success(w, http.StatusOK, "Availability deleted successfully", nil)
}

func (h *AvailabilityHandler) GetMyAvailability(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	list, err := h.availabilityUsecase.GetMyAvailability(r.Context(), actor)
	if err != nil {
		writeAvailabilityError(w, err, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", list)
}

func (h *AvailabilityHandler) GetDoctorAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := uuidVar(w, r, "doctorId", "Invalid doctor ID")
	if !ok {
		return
	}

	list, err := h.availabilityUsecase.GetDoctorAvailability(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", list)
}
