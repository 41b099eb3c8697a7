package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceUnavailable возвращается, когда услуга неактивна
	// или не принимает бронирования
	ErrServiceUnavailable = errors.New("create_booking: service is not available for booking")

	// ErrSelfBooking возвращается при попытке провайдера забронировать
	// собственную услугу
	ErrSelfBooking = errors.New("create_booking: provider cannot book own service")

	// ErrSlotNotAvailable возвращается, когда слот занят - живым локом
	// конкурентной попытки либо уже записанным бронированием
	// Для вызывающего эти случаи неразличимы
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
