package update_booking_status

import (
	"time"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	updateBookingStatus "github.com/m04kA/SMP-BookingService/internal/usecase/update_booking_status"
	"github.com/m04kA/SMP-BookingService/pkg/ptr"
)

// UpdateStatusRequest HTTP запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// BookingStatusResponse HTTP ответ с обновлённым бронированием
type BookingStatusResponse struct {
	ID              int64   `json:"id"`
	BookingNumber   string  `json:"bookingNumber"`
	ClientID        int64   `json:"clientId"`
	ProviderID      int64   `json:"providerId"`
	ServiceID       int64   `json:"serviceId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus"`
	ServiceName     string  `json:"serviceName"`
	TotalAmount     float64 `json:"totalAmount"`
	PlatformFee     float64 `json:"platformFee"`
	Currency        string  `json:"currency"`
	Notes           *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CompletedAt        *string `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *updateBookingStatus.Response) *BookingStatusResponse {
	out := &BookingStatusResponse{
		ID:                 resp.ID,
		BookingNumber:      resp.BookingNumber,
		ClientID:           resp.ClientID,
		ProviderID:         resp.ProviderID,
		ServiceID:          resp.ServiceID,
		BookingDate:        resp.BookingDate.Format(domain.DateFormat),
		StartTime:          resp.StartTime.String(),
		DurationMinutes:    resp.DurationMinutes,
		Status:             resp.Status,
		PaymentStatus:      resp.PaymentStatus,
		ServiceName:        resp.ServiceName,
		TotalAmount:        resp.TotalAmount,
		PlatformFee:        resp.PlatformFee,
		Currency:           resp.Currency,
		Notes:              resp.Notes,
		CancellationReason: resp.CancellationReason,
		CreatedAt:          resp.CreatedAt,
		UpdatedAt:          resp.UpdatedAt,
	}

	if resp.CancelledAt != nil {
		out.CancelledAt = ptr.Ptr(resp.CancelledAt.Format(time.RFC3339))
	}
	if resp.CompletedAt != nil {
		out.CompletedAt = ptr.Ptr(resp.CompletedAt.Format(time.RFC3339))
	}

	return out
}
