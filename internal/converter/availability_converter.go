package converter

import (
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
)

// AvailabilityToResponse converts an AvailabilityWindow entity to AvailabilityResponse DTO
func AvailabilityToResponse(window *entity.AvailabilityWindow) *dto.AvailabilityResponse {
	if window == nil {
		return nil
	}

	return &dto.AvailabilityResponse{
		ID:        window.ID,
		DoctorID:  window.DoctorID,
		Day:       string(window.DayOfWeek),
		StartTime: window.StartTime,
		EndTime:   window.EndTime,
		IsActive:  window.Active(),
		CreatedAt: window.CreatedAt,
		UpdatedAt: window.UpdatedAt,
	}
}

func AvailabilitiesToResponses(windows []entity.AvailabilityWindow) []dto.AvailabilityResponse {
	responses := make([]dto.AvailabilityResponse, len(windows))
	for i := range windows {
		responses[i] = *AvailabilityToResponse(&windows[i])
	}
	return responses
}
