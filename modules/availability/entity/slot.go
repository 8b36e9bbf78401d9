package entity

import "time"

// Slot is an open window on a specific date. Slots are computed, never stored.
type Slot struct {
	Window
	Start time.Time
	End   time.Time
}
