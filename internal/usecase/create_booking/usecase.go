package create_booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	"github.com/m04kA/SMP-BookingService/internal/infra/slotlock"
	bookingRepo "github.com/m04kA/SMP-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMP-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMP-BookingService/internal/integrations/notifyservice"
)

// UseCase use case создания бронирования
// Гонку конкурентных попыток на один слот закрывает лок-менеджер:
// acquire до записи, confirm после. Авторитетная проверка конфликта -
// всегда таблица бронирований, лок лишь сужает окно гонки
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	lockManager  SlotLockManager
	notifier     Notifier
	feeRate      float64
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	lockManager SlotLockManager,
	notifier Notifier,
	feeRate float64,
	logger Logger,
) *UseCase {
	if feeRate <= 0 || feeRate >= 1 {
		feeRate = domain.DefaultPlatformFeeRate
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		lockManager:  lockManager,
		notifier:     notifier,
		feeRate:      feeRate,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Каждый шаг fail-closed: любая ошибка до confirm снимает лок
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу и проверяем, что она принимает бронирования
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsBookable() {
		uc.logger.Warn("CreateBooking: service id=%d is not bookable (status=%s, available=%t)",
			service.ID, service.Status, service.IsAvailable)
		return nil, ErrServiceUnavailable
	}

	// 3. Провайдер не может бронировать собственную услугу
	if service.ProviderID == req.ClientID {
		uc.logger.Warn("CreateBooking: client id=%d is the provider of service id=%d",
			req.ClientID, req.ServiceID)
		return nil, ErrSelfBooking
	}

	// 4. Захватываем лок на ключ слота
	// Отказ означает живой лок конкурентной попытки ЛИБО уже записанное
	// бронирование - для клиента оба случая выглядят одинаково: слот занят
	key := domain.SlotKey{
		ServiceID: req.ServiceID,
		Date:      req.Date,
		StartTime: req.StartTime,
	}

	lock, err := uc.lockManager.Acquire(ctx, key)
	if err != nil {
		if errors.Is(err, slotlock.ErrSlotTaken) {
			uc.logger.Warn("CreateBooking: slot taken: service=%d, date=%s, time=%s",
				req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateBooking: lock acquire failed: %v", err)
		return nil, fmt.Errorf("%w: lock acquire: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: lock acquired token=%s", lock.Token)

	// 5. Считаем стоимость и записываем бронирование в статусе pending
	// Длительность копируется из услуги: последующие правки услуги
	// не меняют уже созданные бронирования
	totalAmount := service.BasePrice
	platformFee := roundMoney(totalAmount * uc.feeRate)

	booking := &domain.Booking{
		BookingNumber:   newBookingNumber(),
		ClientID:        req.ClientID,
		ProviderID:      service.ProviderID,
		ServiceID:       service.ID,
		BookingDate:     req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: service.DurationMinutes,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		ServiceName:     service.Name,
		TotalAmount:     totalAmount,
		PlatformFee:     platformFee,
		Currency:        service.Currency,
		Notes:           req.Notes,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.lockManager.Release(ctx, key)

		// Уникальный индекс - последняя страховка под лок-менеджером
		if errors.Is(err, bookingRepo.ErrSlotOccupied) {
			uc.logger.Warn("CreateBooking: unique index rejected insert: service=%d, date=%s, time=%s",
				req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)
			return nil, ErrSlotNotAvailable
		}

		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	// 6. Подтверждаем лок идентификатором записанного бронирования
	// Отказ означает проигранную гонку - откатываем запись и сообщаем конфликт
	if err := uc.lockManager.Confirm(ctx, key, created.ID); err != nil {
		uc.logger.Warn("CreateBooking: lock confirm failed for booking id=%d: %v", created.ID, err)

		if delErr := uc.bookingRepo.Delete(ctx, created.ID); delErr != nil {
			uc.logger.Error("CreateBooking: rollback delete failed for booking id=%d: %v", created.ID, delErr)
		}

		return nil, ErrSlotNotAvailable
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d number=%s",
		created.ID, created.BookingNumber)

	// 7. Уведомляем провайдера о новом бронировании (best effort)
	uc.notifier.SendBestEffort(ctx, notifyservice.Notification{
		RecipientID: created.ProviderID,
		Type:        notifyservice.TypeNewBooking,
		Title:       "Новое бронирование",
		Message: fmt.Sprintf("Услуга %q забронирована на %s %s",
			created.ServiceName, created.BookingDate.Format(domain.DateFormat), created.StartTime),
	})

	return toResponse(created), nil
}

// newBookingNumber генерирует человекочитаемый номер бронирования
func newBookingNumber() string {
	return "SMP-" + strings.ToUpper(uuid.NewString()[:8])
}

// roundMoney округляет сумму до копеек
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// toResponse конвертирует domain модель в response
func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		BookingNumber:   b.BookingNumber,
		ClientID:        b.ClientID,
		ProviderID:      b.ProviderID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		ServiceName:     b.ServiceName,
		TotalAmount:     b.TotalAmount,
		PlatformFee:     b.PlatformFee,
		Currency:        b.Currency,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
