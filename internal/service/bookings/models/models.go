package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	"github.com/m04kA/SMP-BookingService/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	Actor    domain.Actor
	ClientID int64
	Status   *string
}

// GetProviderBookingsRequest запрос на получение бронирований провайдера
type GetProviderBookingsRequest struct {
	Actor           domain.Actor
	ProviderID      int64
	ServiceID       *int64     // Фильтр по услуге (опционально)
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *string    // Фильтр по статусу (опционально)
	IncludeInactive bool       // Включить терминальные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetProviderBookingsRequest) ToDomainFilter() (domain.ProviderBookingsFilter, error) {
	filter := domain.ProviderBookingsFilter{
		ProviderID:      r.ProviderID,
		ServiceID:       r.ServiceID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	BookingNumber   string `json:"bookingNumber"`
	ClientID        int64  `json:"clientId"`
	ProviderID      int64  `json:"providerId"`
	ServiceID       int64  `json:"serviceId"`
	BookingDate     string `json:"bookingDate"` // "2025-10-15"
	StartTime       string `json:"startTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"paymentStatus"`

	// Денормализованные данные
	ServiceName string  `json:"serviceName"`
	TotalAmount float64 `json:"totalAmount"`
	PlatformFee float64 `json:"platformFee"`
	Currency    string  `json:"currency"`
	Notes       *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601
	CompletedAt        *string `json:"completedAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		BookingNumber:      b.BookingNumber,
		ClientID:           b.ClientID,
		ProviderID:         b.ProviderID,
		ServiceID:          b.ServiceID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		ServiceName:        b.ServiceName,
		TotalAmount:        b.TotalAmount,
		PlatformFee:        b.PlatformFee,
		Currency:           b.Currency,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		resp.CancelledAt = ptr.Ptr(b.CancelledAt.Format(time.RFC3339))
	}
	if b.CompletedAt != nil {
		resp.CompletedAt = ptr.Ptr(b.CompletedAt.Format(time.RFC3339))
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusAccepted,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusRejected,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
