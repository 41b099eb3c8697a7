package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMP-BookingService/internal/api/handlers"
	"github.com/m04kA/SMP-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMP-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceUnavailable = "услуга не принимает бронирования"
	msgSelfBooking        = "нельзя забронировать собственную услугу"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgInvalidDate        = "некорректная дата бронирования"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.UserID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: client_id=%d, service_id=%d, date=%s, time=%s",
				actor.UserID, req.ServiceID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: client_id=%d, service_id=%d", actor.UserID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceUnavailable):
			h.logger.Warn("POST /bookings - Service unavailable: client_id=%d, service_id=%d", actor.UserID, req.ServiceID)
			handlers.RespondError(w, http.StatusConflict, msgServiceUnavailable)

		case errors.Is(err, createBooking.ErrSelfBooking):
			h.logger.Warn("POST /bookings - Self booking attempt: client_id=%d, service_id=%d", actor.UserID, req.ServiceID)
			handlers.RespondBadRequest(w, msgSelfBooking)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: client_id=%d, service_id=%d, date=%s",
				actor.UserID, req.ServiceID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: client_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%d, service_id=%d, error=%v",
				actor.UserID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, number=%s, client_id=%d, service_id=%d",
		result.ID, result.BookingNumber, actor.UserID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
