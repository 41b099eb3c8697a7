package create_booking

import (
	"time"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	createBooking "github.com/m04kA/SMP-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMP-BookingService/pkg/types"
)

// CreateBookingRequest HTTP запрос на создание бронирования
type CreateBookingRequest struct {
	ServiceID int64   `json:"serviceId"`
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "10:00"
	Notes     *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:  clientID,
		ServiceID: r.ServiceID,
		Date:      date,
		StartTime: startTime,
		Notes:     r.Notes,
	}, nil
}

// CreateBookingResponse HTTP ответ с созданным бронированием
type CreateBookingResponse struct {
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

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:              resp.ID,
		BookingNumber:   resp.BookingNumber,
		ClientID:        resp.ClientID,
		ProviderID:      resp.ProviderID,
		ServiceID:       resp.ServiceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		ServiceName:     resp.ServiceName,
		TotalAmount:     resp.TotalAmount,
		PlatformFee:     resp.PlatformFee,
		Currency:        resp.Currency,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}
