package entity

import "testing"

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		wantErr bool
		wantLen int
	}{
		{name: "default windows", in: DefaultWindows, wantLen: 4},
		{name: "adjacent windows", in: []string{"08:00-09:00", "09:00-10:00"}, wantLen: 2},
		{name: "empty", in: nil, wantErr: true},
		{name: "start after end", in: []string{"10:00-07:00"}, wantErr: true},
		{name: "zero length", in: []string{"10:00-10:00"}, wantErr: true},
		{name: "overlapping", in: []string{"07:00-10:00", "09:00-12:00"}, wantErr: true},
		{name: "unsorted", in: []string{"13:00-16:00", "07:00-10:00"}, wantErr: true},
		{name: "bad clock", in: []string{"7am-10am"}, wantErr: true},
		{name: "missing dash", in: []string{"07:00"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTemplate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestWindowFormatting(t *testing.T) {
	w, err := ParseWindow("10:00-13:00")
	if err != nil {
		t.Fatalf("ParseWindow: %v", err)
	}
	if w.StartClock() != "10:00" || w.EndClock() != "13:00" {
		t.Errorf("clocks = %s %s", w.StartClock(), w.EndClock())
	}
	if w.Label() != "10:00 AM - 1:00 PM" {
		t.Errorf("label = %q", w.Label())
	}
	if Clock12(0) != "12:00 AM" || Clock12(12*60+5) != "12:05 PM" {
		t.Errorf("Clock12 midnight/noon formatting wrong")
	}
}

func TestTemplateFind(t *testing.T) {
	tmpl, err := ParseTemplate(DefaultWindows)
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	if w, ok := tmpl.Find("16:00"); !ok || w.EndClock() != "19:00" {
		t.Errorf("Find(16:00) = %v, %v", w, ok)
	}
	if _, ok := tmpl.Find("08:00"); ok {
		t.Errorf("Find(08:00) should not match")
	}
}
