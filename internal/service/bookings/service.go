package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	storage "github.com/m04kA/SMP-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMP-BookingService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	repo   BookingRepository
	logger Logger
}

func NewService(repo BookingRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetByID возвращает бронирование по ID с проверкой прав доступа.
// Клиент и провайдер видят только свои бронирования, админ — любые.
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrBookingNotFound, id)
		}
		s.logger.Error("service.bookings: failed to get booking %d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	rel := domain.ResolveRelationship(actor, booking)
	if rel == domain.RelationNone {
		s.logger.Warn("service.bookings: user %d (%s) denied access to booking %d", actor.UserID, actor.Role, id)
		return nil, fmt.Errorf("%w: booking %d", ErrAccessDenied, id)
	}

	return models.FromDomainBooking(booking), nil
}

// GetClientBookings возвращает бронирования клиента.
// Доступно самому клиенту и админу.
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: client id must be positive", ErrInvalidInput)
	}

	if req.Actor.Role != domain.RoleAdmin && req.Actor.UserID != req.ClientID {
		s.logger.Warn("service.bookings: user %d (%s) denied access to client %d bookings", req.Actor.UserID, req.Actor.Role, req.ClientID)
		return nil, fmt.Errorf("%w: client %d bookings", ErrAccessDenied, req.ClientID)
	}

	var status *domain.BookingStatus
	if req.Status != nil {
		st, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		status = &st
	}

	bookings, err := s.repo.GetByClientID(ctx, req.ClientID, status)
	if err != nil {
		s.logger.Error("service.bookings: failed to get bookings for client %d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetProviderBookings возвращает бронирования провайдера с фильтрацией.
// Доступно самому провайдеру и админу.
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest) (*models.BookingListResponse, error) {
	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: provider id must be positive", ErrInvalidInput)
	}

	if req.Actor.Role != domain.RoleAdmin && req.Actor.UserID != req.ProviderID {
		s.logger.Warn("service.bookings: user %d (%s) denied access to provider %d bookings", req.Actor.UserID, req.Actor.Role, req.ProviderID)
		return nil, fmt.Errorf("%w: provider %d bookings", ErrAccessDenied, req.ProviderID)
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.repo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("service.bookings: failed to get bookings for provider %d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}
