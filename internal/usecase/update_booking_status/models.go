package update_booking_status

import (
	"time"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	"github.com/m04kA/SMP-BookingService/pkg/types"
)

// Request модель запроса на переход статуса бронирования
type Request struct {
	BookingID int64                // ID бронирования
	Actor     domain.Actor         // Вызывающий (ID и роль из auth-слоя)
	Status    domain.BookingStatus // Целевой статус
	Reason    *string              // Причина (обязательна для отмены)
	Notes     *string              // Новые заметки (опционально, перезаписывают прежние)
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID              int64            // ID бронирования
	BookingNumber   string           // Человекочитаемый номер
	ClientID        int64            // ID клиента
	ProviderID      int64            // ID провайдера
	ServiceID       int64            // ID услуги
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Новый статус
	PaymentStatus   string           // Статус оплаты после перехода

	ServiceName string  // Название услуги
	TotalAmount float64 // Полная стоимость
	PlatformFee float64 // Комиссия платформы
	Currency    string  // Валюта
	Notes       *string // Заметки

	CancellationReason *string    // Причина отмены
	CancelledAt        *time.Time // Время отмены
	CompletedAt        *time.Time // Время завершения

	CreatedAt time.Time
	UpdatedAt time.Time
}

// toResponse конвертирует domain модель в response
func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:                 b.ID,
		BookingNumber:      b.BookingNumber,
		ClientID:           b.ClientID,
		ProviderID:         b.ProviderID,
		ServiceID:          b.ServiceID,
		BookingDate:        b.BookingDate,
		StartTime:          b.StartTime,
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		ServiceName:        b.ServiceName,
		TotalAmount:        b.TotalAmount,
		PlatformFee:        b.PlatformFee,
		Currency:           b.Currency,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CompletedAt:        b.CompletedAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
