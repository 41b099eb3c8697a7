package slotlock

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/m04kA/SMP-BookingService/internal/domain"
)

// Значение ключа в Redis:
//   "unbound:<token>"   - лок захвачен, бронирование ещё не записано
//   "booking:<id>"      - лок подтвержден записанным бронированием
const (
	unboundPrefix = "unbound:"
	boundPrefix   = "booking:"
)

// confirmScript атомарно привязывает лок к бронированию и продлевает TTL
// KEYS[1] - ключ слота, ARGV[1] - "booking:<id>", ARGV[2] - TTL в секундах
// Возвращает 1 при успехе, 0 если лок отсутствует, -1 если привязан к другому
var confirmScript = redis.NewScript(`
local v = redis.call("GET", KEYS[1])
if not v then
  return 0
end
if string.sub(v, 1, 8) == "booking:" and v ~= ARGV[1] then
  return -1
end
redis.call("SET", KEYS[1], ARGV[1], "EX", ARGV[2])
return 1
`)

// deleteIfValueScript удаляет ключ, только если его значение совпадает
// KEYS[1] - ключ слота, ARGV[1] - ожидаемое значение
var deleteIfValueScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisManager распределённая реализация менеджера слот-локов
// Лизинг через SET NX + TTL, подтверждение через compare-and-set скрипт
// Drop-in замена MemoryManager для multi-instance деплоя:
// тот же контракт Acquire / Confirm / Release / Start / Stop
type RedisManager struct {
	client  *redis.Client
	checker BookingChecker
	ttl     time.Duration
	rec     Recorder
	log     Logger
}

// NewRedisManager создает менеджер локов поверх Redis
func NewRedisManager(
	client *redis.Client,
	checker BookingChecker,
	ttl time.Duration,
	rec Recorder,
	log Logger,
) *RedisManager {
	if rec == nil {
		rec = noopRecorder{}
	}
	return &RedisManager{
		client:  client,
		checker: checker,
		ttl:     ttl,
		rec:     rec,
		log:     log,
	}
}

// Acquire пытается захватить лизинг на ключ слота
func (m *RedisManager) Acquire(ctx context.Context, key domain.SlotKey) (*domain.SlotLock, error) {
	token := uuid.NewString()
	value := unboundPrefix + token

	ok, err := m.client.SetNX(ctx, key.String(), value, m.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: redis setnx: %v", ErrInternal, err)
	}
	if !ok {
		m.rec.IncSlotLock(resultConflict)
		return nil, ErrSlotTaken
	}

	// Авторитетная проверка по таблице бронирований
	taken, err := m.checker.ExistsActiveAtSlot(ctx, key)
	if err != nil {
		_ = deleteIfValueScript.Run(ctx, m.client, []string{key.String()}, value).Err()
		return nil, fmt.Errorf("%w: booking existence check: %v", ErrInternal, err)
	}
	if taken {
		_ = deleteIfValueScript.Run(ctx, m.client, []string{key.String()}, value).Err()
		m.rec.IncSlotLock(resultConflict)
		return nil, ErrSlotTaken
	}

	m.rec.IncSlotLock(resultAcquired)
	return &domain.SlotLock{
		Token:     token,
		Key:       key,
		ExpiresAt: time.Now().Add(m.ttl),
	}, nil
}

// Confirm привязывает лок к бронированию и продлевает лизинг
func (m *RedisManager) Confirm(ctx context.Context, key domain.SlotKey, bookingID int64) error {
	value := boundPrefix + strconv.FormatInt(bookingID, 10)
	ttlSeconds := int(m.ttl.Seconds())

	res, err := confirmScript.Run(ctx, m.client, []string{key.String()}, value, ttlSeconds).Int()
	if err != nil {
		return fmt.Errorf("%w: redis confirm: %v", ErrInternal, err)
	}

	switch res {
	case 1:
		return nil
	case 0:
		return ErrLockNotFound
	default:
		return ErrLockBoundToOther
	}
}

// Release немедленно снимает лок; отсутствие ключа - no-op
func (m *RedisManager) Release(ctx context.Context, key domain.SlotKey) {
	deleted, err := m.client.Del(ctx, key.String()).Result()
	if err != nil {
		m.log.Error("slotlock: redis release %s: %v", key.String(), err)
		return
	}
	if deleted > 0 {
		m.rec.IncSlotLock(resultReleased)
	}
}

// Start для Redis не запускает ничего: истекшие лизинги убирает сам Redis по TTL
func (m *RedisManager) Start() {}

// Stop завершает работу менеджера
func (m *RedisManager) Stop() {}
