package update_booking_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMP-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMP-BookingService/internal/integrations/notifyservice"
)

// UseCase use case перехода статуса бронирования
// Граф переходов и допуски ролей - данные в domain, проверяются на каждый
// запрос. Переход и его побочные эффекты (возврат, выплата, счётчики)
// применяются в одной транзакции; конкурентные переходы по одному
// бронированию сериализуются блокировкой строки и compare-and-swap
type UseCase struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	ledgerRepo  LedgerRepository
	txManager   TransactionManager
	notifier    Notifier
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	ledgerRepo LedgerRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		ledgerRepo:  ledgerRepo,
		txManager:   txManager,
		notifier:    notifier,
		logger:      logger,
	}
}

// Execute выполняет use case перехода статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%d, actor=%d (%s), target=%s",
		req.BookingID, req.Actor.UserID, req.Actor.Role, req.Status)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	var updated *domain.Booking

	// 2. Переход и побочные эффекты - атомарно
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBookingStatus: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.2. Проверяем переход: причастность, граф, затем роль
		if err := domain.ValidateTransition(req.Actor, booking, req.Status); err != nil {
			return mapTransitionError(err)
		}

		// 2.3. Применяем переход с его побочными эффектами
		if err := uc.applyTransition(txCtx, booking, req); err != nil {
			return err
		}

		// 2.4. Заметки обновляются в той же транзакции, что и статус
		if req.Notes != nil {
			if err := uc.bookingRepo.UpdateNotes(txCtx, booking.ID, *req.Notes); err != nil {
				uc.logger.Error("UpdateBookingStatus: failed to update notes for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: notes write: %v", ErrInternal, err)
			}
		}

		updated = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 3. Перечитываем итоговое состояние (временные метки проставила БД)
	final, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to re-read booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to re-read booking: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateBookingStatus: booking id=%d transitioned %s -> %s by user=%d",
		final.ID, updated.Status, final.Status, req.Actor.UserID)

	// 4. Уведомляем контрагента о смене статуса (best effort, ровно одно событие)
	uc.notifyCounterparty(ctx, final, req.Actor)

	return toResponse(final), nil
}

// applyTransition выполняет запись перехода и его побочные эффекты
// Вызывается внутри транзакции; booking.Status на входе - статус ДО перехода
func (uc *UseCase) applyTransition(ctx context.Context, booking *domain.Booking, req *Request) error {
	from := booking.Status

	switch req.Status {
	case domain.StatusCancelled:
		// Отмена: фиксируем причину и время, платёж возвращается
		reason := ""
		if req.Reason != nil {
			reason = *req.Reason
		}
		if err := uc.bookingRepo.Cancel(ctx, booking.ID, from, reason); err != nil {
			return uc.mapWriteError(err, booking.ID)
		}

	case domain.StatusCompleted:
		// Завершение: платёж проведён, провайдер получает сумму за вычетом
		// комиссии, счётчик завершённых бронирований услуги растёт
		if err := uc.bookingRepo.Complete(ctx, booking.ID, from); err != nil {
			return uc.mapWriteError(err, booking.ID)
		}

		earnings := booking.TotalAmount - booking.PlatformFee
		if err := uc.ledgerRepo.CreditProvider(ctx, booking.ProviderID, earnings, booking.Currency); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to credit provider id=%d: %v", booking.ProviderID, err)
			return fmt.Errorf("%w: failed to credit provider: %v", ErrInternal, err)
		}

		if err := uc.catalogRepo.IncrementCompletedBookings(ctx, booking.ServiceID); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to increment service counter id=%d: %v", booking.ServiceID, err)
			return fmt.Errorf("%w: failed to increment completed counter: %v", ErrInternal, err)
		}

	default:
		if err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, from, req.Status); err != nil {
			return uc.mapWriteError(err, booking.ID)
		}
	}

	return nil
}

// notifyCounterparty отправляет уведомление стороне, не инициировавшей переход
func (uc *UseCase) notifyCounterparty(ctx context.Context, booking *domain.Booking, actor domain.Actor) {
	// Клиент действует - уведомляем провайдера; в остальных случаях
	// (провайдер или администратор) - клиента
	recipient := booking.ClientID
	if actor.UserID == booking.ClientID {
		recipient = booking.ProviderID
	}

	uc.notifier.SendBestEffort(ctx, notifyservice.Notification{
		RecipientID: recipient,
		Type:        notifyservice.TypeStatusChanged,
		Title:       "Статус бронирования изменён",
		Message: fmt.Sprintf("Бронирование %s переведено в статус %q",
			booking.BookingNumber, booking.Status),
	})
}

// mapWriteError конвертирует ошибки записи в ошибки usecase
func (uc *UseCase) mapWriteError(err error, bookingID int64) error {
	if errors.Is(err, bookingRepo.ErrStatusConflict) {
		uc.logger.Warn("UpdateBookingStatus: concurrent modification of booking id=%d", bookingID)
		return ErrConflict
	}
	uc.logger.Error("UpdateBookingStatus: write failed for booking id=%d: %v", bookingID, err)
	return fmt.Errorf("%w: status write: %v", ErrInternal, err)
}

// mapTransitionError конвертирует ошибки стейт-машины в ошибки usecase
// Текст исходной ошибки сохраняется: для invalid transition он содержит
// пару (текущий, запрошенный) статус
func mapTransitionError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotInvolved):
		return ErrNotInvolved
	case errors.Is(err, domain.ErrTransitionForbidden):
		return fmt.Errorf("%w: %v", ErrForbidden, err)
	case errors.Is(err, domain.ErrInvalidTransition):
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if !isKnownStatus(req.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters",
			ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// isKnownStatus проверяет, что статус существует в модели
func isKnownStatus(s domain.BookingStatus) bool {
	switch s {
	case domain.StatusPending, domain.StatusAccepted, domain.StatusInProgress,
		domain.StatusCompleted, domain.StatusCancelled, domain.StatusRejected,
		domain.StatusNoShow:
		return true
	}
	return false
}
