package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMP-BookingService/internal/api/handlers"
	"github.com/m04kA/SMP-BookingService/internal/api/middleware"
	"github.com/m04kA/SMP-BookingService/internal/domain"
	updateBookingStatus "github.com/m04kA/SMP-BookingService/internal/usecase/update_booking_status"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgInvalidTransition  = "недопустимый переход статуса"
	msgForbidden          = "доступ запрещен"
	msgConflict           = "бронирование было изменено параллельным запросом, повторите попытку"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase UpdateBookingStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updateBookingStatus.Request{
		BookingID: bookingID,
		Actor:     actor,
		Status:    domain.BookingStatus(req.Status),
		Reason:    req.Reason,
		Notes:     req.Notes,
	})
	if err != nil {
		respondUseCaseError(w, h.logger, "PATCH /bookings/{id}/status", bookingID, actor.UserID, err)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status updated: booking_id=%d, user_id=%d, status=%s",
		bookingID, actor.UserID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// respondUseCaseError маппит ошибки use case на HTTP статусы.
// Используется также хендлером отмены бронирования
func respondUseCaseError(w http.ResponseWriter, logger Logger, op string, bookingID, userID int64, err error) {
	switch {
	case errors.Is(err, updateBookingStatus.ErrBookingNotFound):
		logger.Warn("%s - Booking not found: booking_id=%d", op, bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, updateBookingStatus.ErrInvalidTransition):
		logger.Warn("%s - Invalid transition: booking_id=%d, user_id=%d, error=%v", op, bookingID, userID, err)
		handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

	case errors.Is(err, updateBookingStatus.ErrForbidden):
		logger.Warn("%s - Role not allowed: booking_id=%d, user_id=%d", op, bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, updateBookingStatus.ErrNotInvolved):
		logger.Warn("%s - User not involved: booking_id=%d, user_id=%d", op, bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, updateBookingStatus.ErrConflict):
		logger.Warn("%s - Concurrent modification: booking_id=%d", op, bookingID)
		handlers.RespondError(w, http.StatusConflict, msgConflict)

	case errors.Is(err, updateBookingStatus.ErrInvalidInput):
		logger.Warn("%s - Invalid input: booking_id=%d, error=%v", op, bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		logger.Error("%s - Failed to update status: booking_id=%d, error=%v", op, bookingID, err)
		handlers.RespondInternalError(w)
	}
}
