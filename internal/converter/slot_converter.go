package converter

import (
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
)

func SlotsToResponses(slots []entity.TimeSlot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i, s := range slots {
		responses[i] = dto.SlotResponse{
			TimeLabel: s.Time,
			State:     string(s.State),
			Occupant:  s.Occupant,
		}
	}
	return responses
}
