package entity

import (
	"fmt"
	"strings"
	"time"
)

// Window is one fixed daily service window, stored as minutes after midnight.
type Window struct {
	StartMinute int
	EndMinute   int
}

// Template is the ordered set of daily windows offered every day.
type Template []Window

var DefaultWindows = []string{"07:00-10:00", "10:00-13:00", "13:00-16:00", "16:00-19:00"}

// ParseWindow parses "HH:MM-HH:MM".
func ParseWindow(s string) (Window, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return Window{}, fmt.Errorf("window %q: expected HH:MM-HH:MM", s)
	}
	start, err := parseClock(parts[0])
	if err != nil {
		return Window{}, fmt.Errorf("window %q: %w", s, err)
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return Window{}, fmt.Errorf("window %q: %w", s, err)
	}
	if start >= end {
		return Window{}, fmt.Errorf("window %q: start must be before end", s)
	}
	return Window{StartMinute: start, EndMinute: end}, nil
}

// ParseTemplate parses and validates a list of windows: sorted ascending, non-overlapping.
func ParseTemplate(specs []string) (Template, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("business hours: no windows configured")
	}
	tmpl := make(Template, 0, len(specs))
	for i, s := range specs {
		w, err := ParseWindow(s)
		if err != nil {
			return nil, err
		}
		if i > 0 && w.StartMinute < tmpl[i-1].EndMinute {
			return nil, fmt.Errorf("window %q overlaps or precedes %q", s, specs[i-1])
		}
		tmpl = append(tmpl, w)
	}
	return tmpl, nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// StartClock returns the window start as "HH:MM".
func (w Window) StartClock() string { return clock24(w.StartMinute) }

// EndClock returns the window end as "HH:MM".
func (w Window) EndClock() string { return clock24(w.EndMinute) }

// Label renders the window as "7:00 AM - 10:00 AM".
func (w Window) Label() string {
	return Clock12(w.StartMinute) + " - " + Clock12(w.EndMinute)
}

// Bounds returns the absolute start and end of the window on the given day.
func (w Window) Bounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	loc := day.Location()
	start := time.Date(y, m, d, w.StartMinute/60, w.StartMinute%60, 0, 0, loc)
	end := time.Date(y, m, d, w.EndMinute/60, w.EndMinute%60, 0, 0, loc)
	return start, end
}

// Find returns the window starting at "HH:MM".
func (t Template) Find(startClock string) (Window, bool) {
	for _, w := range t {
		if w.StartClock() == startClock {
			return w, true
		}
	}
	return Window{}, false
}

func clock24(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Clock12 formats minutes after midnight as "1:00 PM".
func Clock12(minutes int) string {
	h := (minutes / 60) % 24
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, minutes%60, period)
}
