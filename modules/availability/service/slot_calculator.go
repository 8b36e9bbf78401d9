package service

import (
	"time"

	"sparkle-booking/core/logger"
	"sparkle-booking/modules/availability/entity"
	calendarEntity "sparkle-booking/modules/calendar/entity"
)

// CalculateOpenSlots returns the template windows on day that no busy interval overlaps,
// in template order. day carries the business location; only its date is used.
// Malformed busy intervals (end <= start) are skipped.
func CalculateOpenSlots(day time.Time, tmpl entity.Template, busy []calendarEntity.BusyInterval) []entity.Slot {
	valid := make([]calendarEntity.BusyInterval, 0, len(busy))
	for _, b := range busy {
		if !b.Valid() {
			logger.Warn("SlotCalculator:MalformedBusyInterval", "start", b.Start, "end", b.End)
			continue
		}
		valid = append(valid, b)
	}

	slots := make([]entity.Slot, 0, len(tmpl))
	for _, w := range tmpl {
		start, end := w.Bounds(day)
		if overlapsAny(start, end, valid) {
			continue
		}
		slots = append(slots, entity.Slot{Window: w, Start: start, End: end})
	}
	return slots
}

func overlapsAny(start, end time.Time, busy []calendarEntity.BusyInterval) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
