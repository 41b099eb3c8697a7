package get_available_slots

import (
	"sort"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	"github.com/m04kA/SMP-BookingService/pkg/types"
)

// generateWindowSlots генерирует слоты одного окна доступности
// с фиксированным шагом step от начала окна к концу
// Хвостовой слот короче шага отбрасывается
func generateWindowSlots(window *domain.WeeklyAvailabilityWindow, step int) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)
	current := window.StartTime

	for current.IsBefore(window.EndTime) {
		slotEnd, err := current.AddMinutes(step)
		if err != nil {
			// Слот вышел за пределы суток - дальше генерировать нечего
			break
		}
		if slotEnd.IsAfter(window.EndTime) {
			break
		}

		slots = append(slots, current)

		current = slotEnd
	}

	return slots, nil
}

// generateDaySlots генерирует объединённую сетку слотов всех окон дня
// Окна могут пересекаться - пересечение трактуется как объединение
// доступного времени, дубликаты схлопываются
func generateDaySlots(windows []*domain.WeeklyAvailabilityWindow, step int) ([]types.TimeString, error) {
	seen := make(map[types.TimeString]struct{})
	slots := make([]types.TimeString, 0)

	for _, window := range windows {
		windowSlots, err := generateWindowSlots(window, step)
		if err != nil {
			return nil, err
		}
		for _, slot := range windowSlots {
			if _, ok := seen[slot]; ok {
				continue
			}
			seen[slot] = struct{}{}
			slots = append(slots, slot)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].IsBefore(slots[j])
	})

	return slots, nil
}

// markAvailability размечает слоты занятостью по активным бронированиям
// Слот [s, s+step) недоступен, если строго пересекается с интервалом
// [b.StartTime, b.StartTime+b.DurationMinutes) любого активного бронирования
func markAvailability(slots []types.TimeString, step int, bookings []*domain.Booking) []domain.Slot {
	result := make([]domain.Slot, len(slots))

	for i, slotStart := range slots {
		result[i] = domain.Slot{
			StartTime:       slotStart,
			DurationMinutes: step,
			Available:       !overlapsAnyBooking(slotStart, step, bookings),
		}
	}

	return result
}

// overlapsAnyBooking проверяет пересечение слота с активными бронированиями
// Интервалы [s1, s1+d1) и [s2, s2+d2) пересекаются,
// только если s1 < s2+d2 и s2 < s1+d1 - границы не считаются пересечением
func overlapsAnyBooking(slotStart types.TimeString, slotDuration int, bookings []*domain.Booking) bool {
	slotEnd, err := slotStart.AddMinutes(slotDuration)
	if err != nil {
		return false
	}

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			// Бронирование пересекает полночь - таких слотов сетка не порождает
			continue
		}

		if booking.StartTime.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart) {
			return true
		}
	}

	return false
}
