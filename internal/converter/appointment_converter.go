package converter

import (
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// Doctor and patient summaries are included when the relations are loaded.
func AppointmentToResponse(appt *entity.Appointment) *dto.AppointmentResponse {
	if appt == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:        appt.ID,
		DoctorID:  appt.DoctorID,
		PatientID: appt.PatientID,
		Date:      appt.AppointmentDate.Format("2006-01-02"),
		Time:      appt.AppointmentTime,
		Status:    string(appt.Status.Normalize()),
		Notes:     appt.Notes,
		Fee:       appt.Fee,
		CreatedAt: appt.CreatedAt,
		UpdatedAt: appt.UpdatedAt,
	}

	if appt.Doctor != nil && appt.Doctor.UserID != uuid.Nil {
		response.Doctor = &dto.DoctorSummary{
			ID:             appt.Doctor.UserID,
			FullName:       appt.Doctor.User.FullName,
			Specialization: appt.Doctor.Specialization,
		}
	}

	if appt.Patient != nil && appt.Patient.UserID != uuid.Nil {
		response.Patient = &dto.PatientSummary{
			ID:                  appt.Patient.UserID,
			FullName:            appt.Patient.User.FullName,
			MedicalRecordNumber: appt.Patient.MedicalRecordNumber,
			PhoneNumber:         appt.Patient.PhoneNumber,
		}
	}

	return response
}

func AppointmentsToResponses(appts []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appts))
	for i := range appts {
		responses[i] = *AppointmentToResponse(&appts[i])
	}
	return responses
}
