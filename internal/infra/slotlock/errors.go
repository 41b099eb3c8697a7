package slotlock

import "errors"

var (
	// ErrSlotTaken возвращается, когда ключ занят живым локом
	// или закоммиченным активным бронированием
	// Вызывающий не различает эти два случая - оба означают конфликт
	ErrSlotTaken = errors.New("slotlock: slot is taken")

	// ErrLockNotFound возвращается из Confirm, когда лок отсутствует
	// или истек (проигранная гонка либо слишком долгая запись)
	ErrLockNotFound = errors.New("slotlock: lock not found")

	// ErrLockBoundToOther возвращается из Confirm, когда лок уже
	// привязан к другому бронированию
	ErrLockBoundToOther = errors.New("slotlock: lock is bound to another booking")

	// ErrInternal возвращается при ошибках backend (БД, Redis)
	ErrInternal = errors.New("slotlock: internal error")
)
