package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/usecase"
	"hospital-scheduling/pkg/response"
	"hospital-scheduling/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// writeAppointmentError maps appointment failures shared by doctor and patient routes
func writeAppointmentError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrSlotAlreadyBooked):
		response.Conflict(w, "This time slot is already booked.")
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		response.Conflict(w, "Appointment status does not allow this action.")
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient profile not found")
	case errors.Is(err, usecase.ErrInvalidDate):
		response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
	case errors.Is(err, usecase.ErrInvalidTime):
		response.Error(w, http.StatusBadRequest, "Invalid time format", nil)
	case errors.Is(err, usecase.ErrDateInPast):
		response.Error(w, http.StatusBadRequest, "Appointment date cannot be in the past", nil)
	case errors.Is(err, usecase.ErrInvalidStatusFilter):
		response.Error(w, http.StatusBadRequest, "Invalid appointment status", nil)
	case errors.Is(err, usecase.ErrForbiddenRole):
		response.Forbidden(w, "")
	default:
		response.InternalServerError(w, fallback)
	}
}

func (h *AppointmentHandler) GetDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	query := dto.AppointmentListQuery{
		Date:   r.URL.Query().Get("date"),
		Status: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))),
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	list, err := h.appointmentUsecase.GetDoctorAppointments(r.Context(), actor, &query)
	if err != nil {
		writeAppointmentError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", list)
}

func (h *AppointmentHandler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := uuidVar(w, r, "id", "Invalid appointment ID")
	if !ok {
		return
	}

	appt, err := h.appointmentUsecase.ConfirmAppointment(r.Context(), actor, id)
	if err != nil {
		writeAppointmentError(w, err, "Failed to confirm appointment, please try again")
		return
	}

	response.Success(w, http.StatusOK, "Appointment confirmed successfully", appt)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := uuidVar(w, r, "id", "Invalid appointment ID")
	if !ok {
		return
	}

	appt, err := h.appointmentUsecase.CancelAppointment(r.Context(), actor, id)
	if err != nil {
		writeAppointmentError(w, err, "Failed to cancel appointment, please try again")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appt)
}

func (h *AppointmentHandler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := uuidVar(w, r, "id", "Invalid appointment ID")
	if !ok {
		return
	}

	var req dto.RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appt, err := h.appointmentUsecase.RescheduleAppointment(r.Context(), actor, id, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to reschedule appointment, please try again")
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled successfully", appt)
}
