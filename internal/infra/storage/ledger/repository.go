package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMP-BookingService/pkg/dbmetrics"
)

var (
	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("ledger.repository: failed to execute query")
)

// DBExecutor интерфейс исполнителя запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий леджера заработка провайдеров
// Одна строка на провайдера, кредитуется при завершении бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория леджера
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreditProvider увеличивает заработок провайдера на amount
// Вызывается в транзакции перехода бронирования в completed,
// amount = сумма бронирования минус комиссия платформы
func (r *Repository) CreditProvider(ctx context.Context, providerID int64, amount float64, currency string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Upsert: первая выплата провайдеру создаёт строку леджера
	// squirrel не выражает ON CONFLICT DO UPDATE с EXCLUDED, поэтому сырой запрос
	query := `
		INSERT INTO provider_earnings (provider_id, currency, total_earned, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (provider_id, currency)
		DO UPDATE SET total_earned = provider_earnings.total_earned + EXCLUDED.total_earned,
		              updated_at = NOW()`

	if _, err := executor.ExecContext(ctx, query, providerID, currency, amount); err != nil {
		return fmt.Errorf("%w: CreditProvider - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
