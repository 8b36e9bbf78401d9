package entity

import "time"

// BusyInterval is a block of time the calendar reports as occupied.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the interval covers a positive span.
func (b BusyInterval) Valid() bool {
	return b.End.After(b.Start)
}

// Overlaps uses half-open semantics: touching endpoints do not overlap.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}

// EventInput describes the calendar event created for a confirmed order.
type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
	OrderID     string
}
