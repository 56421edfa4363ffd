package handler

import (
	"encoding/json"
	"net/http"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/usecase"
	"hospital-scheduling/pkg/response"
	"hospital-scheduling/pkg/validator"
)

type PatientAppointmentHandler struct {
	patientAppointmentUsecase usecase.PatientAppointmentUsecase
	validator                 *validator.CustomValidator
}

func NewPatientAppointmentHandler(patientAppointmentUsecase usecase.PatientAppointmentUsecase, validator *validator.CustomValidator) *PatientAppointmentHandler {
	return &PatientAppointmentHandler{
		patientAppointmentUsecase: patientAppointmentUsecase,
		validator:                 validator,
	}
}

func (h *PatientAppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appt, err := h.patientAppointmentUsecase.BookAppointment(r.Context(), actor, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to book appointment, please try again")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appt)
}

func (h *PatientAppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	list, err := h.patientAppointmentUsecase.GetMyAppointments(r.Context(), actor)
	if err != nil {
		writeAppointmentError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", list)
}

func (h *PatientAppointmentHandler) CancelMyAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := uuidVar(w, r, "id", "Invalid appointment ID")
	if !ok {
		return
	}

	appt, err := h.patientAppointmentUsecase.CancelMyAppointment(r.Context(), actor, id)
	if err != nil {
		writeAppointmentError(w, err, "Failed to cancel appointment, please try again")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appt)
}
