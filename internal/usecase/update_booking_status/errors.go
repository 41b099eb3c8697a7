package update_booking_status

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrInvalidTransition возвращается при нарушении графа статусов
	// Сообщение содержит пару (текущий, запрошенный) статус
	ErrInvalidTransition = errors.New("update_booking_status: invalid status transition")

	// ErrForbidden возвращается, когда роль вызывающего не допущена
	// к запрошенному переходу
	ErrForbidden = errors.New("update_booking_status: transition not permitted for this role")

	// ErrNotInvolved возвращается, когда вызывающий не является стороной
	// бронирования и не администратор
	ErrNotInvolved = errors.New("update_booking_status: caller is not a party to this booking")

	// ErrConflict возвращается, когда статус изменился конкурентно
	// во время применения перехода
	ErrConflict = errors.New("update_booking_status: booking was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
