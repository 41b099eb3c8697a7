package cancel_booking

import (
	"time"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	updateBookingStatus "github.com/m04kA/SMP-BookingService/internal/usecase/update_booking_status"
	"github.com/m04kA/SMP-BookingService/pkg/ptr"
)

// CancelBookingResponse HTTP ответ с отменённым бронированием
type CancelBookingResponse struct {
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

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *updateBookingStatus.Response) *CancelBookingResponse {
	out := &CancelBookingResponse{
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
		CancellationReason: resp.CancellationReason,
		CreatedAt:          resp.CreatedAt,
		UpdatedAt:          resp.UpdatedAt,
	}

	if resp.CancelledAt != nil {
		out.CancelledAt = ptr.Ptr(resp.CancelledAt.Format(time.RFC3339))
	}

	return out
}
