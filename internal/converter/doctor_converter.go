package converter

import (
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:              profile.UserID,
		FullName:        profile.User.FullName,
		Specialization:  profile.Specialization,
		Department:      profile.Department,
		ConsultationFee: profile.ConsultationFee,
		Availabilities:  AvailabilitiesToResponses(profile.Availabilities),
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to slice of DoctorResponse DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorProfileToResponse(&profiles[i])
	}
	return responses
}
