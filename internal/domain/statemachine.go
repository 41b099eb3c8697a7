package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition возвращается при нарушении графа статусов
	// Текст ошибки всегда содержит пару (текущий, запрошенный) статус
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTransitionForbidden возвращается, когда роль вызывающего
	// не допущена к запрошенному переходу
	ErrTransitionForbidden = errors.New("transition not permitted for this role")

	// ErrNotInvolved возвращается, когда вызывающий не является
	// ни одной из сторон бронирования и не администратор
	ErrNotInvolved = errors.New("caller is not a party to this booking")
)

// statusTransitions граф допустимых переходов: текущий статус -> множество следующих
// Терминальные статусы отсутствуют в таблице - из них переходов нет
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

// transitionRoles роли, допущенные к установке каждого целевого статуса
var transitionRoles = map[BookingStatus][]Relationship{
	StatusAccepted:   {RelationProvider, RelationAdmin},
	StatusRejected:   {RelationProvider, RelationAdmin},
	StatusInProgress: {RelationProvider, RelationAdmin},
	StatusCompleted:  {RelationProvider, RelationAdmin},
	StatusCancelled:  {RelationClient, RelationProvider, RelationAdmin},
}

// CanTransition проверяет переход по таблице без учета ролей
func CanTransition(current, next BookingStatus) bool {
	for _, allowed := range statusTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransition проверяет переход бронирования в статус next
// от имени actor. Порядок проверок фиксирован:
//  1. вызывающий должен быть стороной бронирования или администратором
//  2. переход должен существовать в графе
//  3. роль должна быть допущена к целевому статусу
//
// Для причастного вызывающего нарушение графа выигрывает у нарушения роли:
// клиент, запросивший accepted -> accepted, получает invalid transition
// с парой статусов, а не отказ по роли
func ValidateTransition(actor Actor, b *Booking, next BookingStatus) error {
	rel := ResolveRelationship(actor, b)
	if rel == RelationNone {
		return ErrNotInvolved
	}

	if !CanTransition(b.Status, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, next)
	}

	for _, r := range transitionRoles[next] {
		if r == rel {
			return nil
		}
	}

	return fmt.Errorf("%w: role may not set status %s", ErrTransitionForbidden, next)
}
