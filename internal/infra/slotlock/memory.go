package slotlock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMP-BookingService/internal/domain"
)

// MemoryManager in-process реализация менеджера слот-локов
// Mutex map с ограниченным временем жизни лока - референсный дизайн
// для одного инстанса сервиса. Для multi-instance деплоя заменяется
// на RedisManager с тем же контрактом
//
// Экземпляр создается явно и владеет своим sweep-циклом:
// Start запускает фоновую уборку истекших локов, Stop останавливает её
type MemoryManager struct {
	mu    sync.Mutex
	locks map[string]*domain.SlotLock

	checker       BookingChecker
	ttl           time.Duration
	sweepInterval time.Duration
	rec           Recorder
	log           Logger

	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewMemoryManager создает менеджер локов с заданным TTL и интервалом уборки
// rec может быть nil, если метрики выключены
func NewMemoryManager(
	checker BookingChecker,
	ttl time.Duration,
	sweepInterval time.Duration,
	rec Recorder,
	log Logger,
) *MemoryManager {
	if rec == nil {
		rec = noopRecorder{}
	}
	return &MemoryManager{
		locks:         make(map[string]*domain.SlotLock),
		checker:       checker,
		ttl:           ttl,
		sweepInterval: sweepInterval,
		rec:           rec,
		log:           log,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// Acquire пытается захватить лок на ключ слота
// Возвращает ErrSlotTaken, если ключ занят живым локом или
// закоммиченным активным бронированием. Истекший лок замещается
func (m *MemoryManager) Acquire(ctx context.Context, key domain.SlotKey) (*domain.SlotLock, error) {
	now := time.Now()

	m.mu.Lock()
	if existing, ok := m.locks[key.String()]; ok && !existing.IsExpired(now) {
		m.mu.Unlock()
		m.rec.IncSlotLock(resultConflict)
		return nil, ErrSlotTaken
	}

	// Резервируем ключ до авторитетной проверки, чтобы конкурентный
	// Acquire на тот же ключ отказал сразу после нашего захвата
	lock := &domain.SlotLock{
		Token:     uuid.NewString(),
		Key:       key,
		ExpiresAt: now.Add(m.ttl),
	}
	m.locks[key.String()] = lock
	m.mu.Unlock()

	// Авторитетная проверка: лок рекомендательный и после падения
	// процесса может отсутствовать, а бронирование - существовать
	taken, err := m.checker.ExistsActiveAtSlot(ctx, key)
	if err != nil {
		m.removeIfToken(key, lock.Token)
		return nil, fmt.Errorf("%w: booking existence check: %v", ErrInternal, err)
	}
	if taken {
		m.removeIfToken(key, lock.Token)
		m.rec.IncSlotLock(resultConflict)
		return nil, ErrSlotTaken
	}

	m.rec.IncSlotLock(resultAcquired)
	return lock, nil
}

// Confirm привязывает лок к ID только что записанного бронирования
// и продлевает его TTL. Возвращает ErrLockNotFound, если лок отсутствует
// или истек, и ErrLockBoundToOther при проигранной гонке
func (m *MemoryManager) Confirm(ctx context.Context, key domain.SlotKey, bookingID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[key.String()]
	if !ok || lock.IsExpired(time.Now()) {
		return ErrLockNotFound
	}

	if lock.BookingID != nil && *lock.BookingID != bookingID {
		return ErrLockBoundToOther
	}

	lock.BookingID = &bookingID
	lock.ExpiresAt = time.Now().Add(m.ttl)
	return nil
}

// Release немедленно снимает лок с ключа
// Повторный Release и Release несуществующего ключа - no-op
func (m *MemoryManager) Release(ctx context.Context, key domain.SlotKey) {
	m.mu.Lock()
	_, existed := m.locks[key.String()]
	delete(m.locks, key.String())
	m.mu.Unlock()

	if existed {
		m.rec.IncSlotLock(resultReleased)
	}
}

// Start запускает фоновую уборку истекших локов
func (m *MemoryManager) Start() {
	m.mu.Lock()
	m.started = true
	m.mu.Unlock()

	go func() {
		defer close(m.doneCh)

		ticker := time.NewTicker(m.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.sweep()
			case <-m.stopCh:
				return
			}
		}
	}()
}

// Stop останавливает уборку и дожидается завершения цикла
// Stop без предшествующего Start возвращается сразу
func (m *MemoryManager) Stop() {
	m.mu.Lock()
	started := m.started
	m.mu.Unlock()

	close(m.stopCh)
	if started {
		<-m.doneCh
	}
}

// sweep удаляет все истекшие локи
// Идемпотентна и безопасна для повторного запуска
func (m *MemoryManager) sweep() {
	now := time.Now()
	swept := 0

	m.mu.Lock()
	for k, lock := range m.locks {
		if lock.IsExpired(now) {
			delete(m.locks, k)
			swept++
		}
	}
	m.mu.Unlock()

	if swept > 0 {
		m.log.Info("slotlock: swept %d expired locks", swept)
		for i := 0; i < swept; i++ {
			m.rec.IncSlotLock(resultSwept)
		}
	}
}

// removeIfToken снимает лок, только если он всё ещё наш
// Защищает от удаления чужого лока после истечения нашего TTL
func (m *MemoryManager) removeIfToken(key domain.SlotKey, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if lock, ok := m.locks[key.String()]; ok && lock.Token == token {
		delete(m.locks, key.String())
	}
}
