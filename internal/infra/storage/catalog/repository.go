package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	"github.com/m04kA/SMP-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SMP-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий каталога: услуги, недельные окна доступности,
// блокировки дат. Записи каталога создаёт внешний сервис,
// здесь они читаются калькулятором доступности и оркестратором
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"name",
		"duration_minutes",
		"base_price",
		"currency",
		"is_available",
		"status",
		"completed_bookings",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.ProviderID,
		&service.Name,
		&service.DurationMinutes,
		&service.BasePrice,
		&service.Currency,
		&service.IsAvailable,
		&service.Status,
		&service.CompletedBookings,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

// GetActiveWindowsForWeekday получает активные недельные окна услуги
// на указанный день недели, отсортированные по времени начала
func (r *Repository) GetActiveWindowsForWeekday(ctx context.Context, serviceID int64, weekday time.Weekday) ([]*domain.WeeklyAvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"weekday",
		"start_time",
		"end_time",
		"is_active",
	).
		From("service_availability_windows").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveWindowsForWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveWindowsForWeekday - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.WeeklyAvailabilityWindow, 0)
	for rows.Next() {
		var window domain.WeeklyAvailabilityWindow
		var weekdayInt int

		err := rows.Scan(
			&window.ID,
			&window.ServiceID,
			&weekdayInt,
			&window.StartTime,
			&window.EndTime,
			&window.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveWindowsForWeekday - scan row: %v", ErrScanRow, err)
		}

		window.Weekday = time.Weekday(weekdayInt)
		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveWindowsForWeekday - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// HasDateOverride проверяет наличие блокировки даты для услуги
// Блокировка перекрывает все недельные окна на эту дату
func (r *Repository) HasDateOverride(ctx context.Context, serviceID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("service_date_overrides").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"override_date": date}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasDateOverride - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasDateOverride - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// IncrementCompletedBookings увеличивает счётчик завершённых бронирований услуги
// Вызывается в транзакции перехода в completed
func (r *Repository) IncrementCompletedBookings(ctx context.Context, serviceID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("completed_bookings", squirrel.Expr("completed_bookings + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": serviceID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementCompletedBookings - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementCompletedBookings - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementCompletedBookings - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}
