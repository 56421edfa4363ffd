package converter

import (
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Includes DoctorProfile and PatientProfile if they are loaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.RoleID.String(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.DoctorProfile != nil {
		response.DoctorProfile = &dto.DoctorProfileResponse{
			LicenseNumber:   user.DoctorProfile.LicenseNumber,
			Specialization:  user.DoctorProfile.Specialization,
			Department:      user.DoctorProfile.Department,
			ConsultationFee: user.DoctorProfile.ConsultationFee,
			Biography:       user.DoctorProfile.Biography,
		}
	}

	if user.PatientProfile != nil {
		response.PatientProfile = &dto.PatientProfileResponse{
			UserID:              user.PatientProfile.UserID,
			MedicalRecordNumber: user.PatientProfile.MedicalRecordNumber,
			PhoneNumber:         user.PatientProfile.PhoneNumber,
			DateOfBirth:         user.PatientProfile.DateOfBirth.Format("2006-01-02"),
			Gender:              user.PatientProfile.Gender,
			Address:             user.PatientProfile.Address,
		}
	}

	return response
}
