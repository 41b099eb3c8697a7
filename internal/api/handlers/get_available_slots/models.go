package get_available_slots

import (
	"github.com/m04kA/SMP-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMP-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse один временной слот в ответе
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// GetAvailableSlotsResponse ответ со слотами на дату
type GetAvailableSlotsResponse struct {
	ServiceID        int64          `json:"serviceId"`
	Date             string         `json:"date"` // "2025-10-15"
	ServiceAvailable bool           `json:"serviceAvailable"`
	Slots            []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *getAvailableSlots.Response) *GetAvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
		}
	}

	return &GetAvailableSlotsResponse{
		ServiceID:        resp.ServiceID,
		Date:             resp.Date.Format(domain.DateFormat),
		ServiceAvailable: resp.ServiceAvailable,
		Slots:            slots,
	}
}
