package portfolio

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestDateOf(t *testing.T) {
	tests := []struct {
		instant  time.Time
		expected Date
	}{
		{time.Date(2024, 2, 16, 10, 0, 0, 0, time.UTC), NewDate(2024, 2, 16)},
		// late evening in UTC+8 is still the same UTC calendar day once converted
		{time.Date(2024, 2, 16, 23, 30, 0, 0, time.FixedZone("CST", 8*3600)), NewDate(2024, 2, 16)},
		{time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), NewDate(2024, 12, 31)},
	}
	for _, tt := range tests {
		if got := DateOf(tt.instant); got != tt.expected {
			t.Errorf("DateOf(%v) = %v, want %v", tt.instant, got, tt.expected)
		}
	}
}

func TestEndOfDay(t *testing.T) {
	d := NewDate(2024, 2, 16)
	got := d.EndOfDay()
	want := time.Date(2024, 2, 16, 23, 59, 59, 999000000, time.UTC)
	if !got.Equal(want) {
		t.Errorf("EndOfDay() = %v, want %v", got, want)
	}

	// a transaction stamped anywhere in the day is not after its boundary
	late := time.Date(2024, 2, 16, 23, 59, 0, 0, time.UTC)
	if late.After(got) {
		t.Errorf("instant %v is after its own day boundary %v", late, got)
	}
	next := time.Date(2024, 2, 17, 0, 0, 0, 0, time.UTC)
	if !next.After(got) {
		t.Errorf("instant %v should be after previous day boundary %v", next, got)
	}
}

func TestDateAdd(t *testing.T) {
	tests := []struct {
		start    Date
		days     int
		expected Date
	}{
		{NewDate(2024, 2, 28), 1, NewDate(2024, 2, 29)}, // leap year
		{NewDate(2024, 12, 31), 1, NewDate(2025, 1, 1)},
		{NewDate(2024, 3, 1), -1, NewDate(2024, 2, 29)},
		{NewDate(2024, 1, 1), 31, NewDate(2024, 2, 1)},
	}
	for _, tt := range tests {
		if got := tt.start.Add(tt.days); got != tt.expected {
			t.Errorf("%v.Add(%d) = %v, want %v", tt.start, tt.days, got, tt.expected)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
		{"", Date{}, true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		if (err != nil) != tt.err {
			t.Errorf("ParseDate(%q) error = %v, want error %v", tt.input, err, tt.err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, 2, 16)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal(%v) error = %v", d, err)
	}
	if string(b) != `"2024-02-16"` {
		t.Errorf("Marshal(%v) = %s, want %q", d, b, `"2024-02-16"`)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal(%s) error = %v", b, err)
	}
	if back != d {
		t.Errorf("Unmarshal(%s) = %v, want %v", b, back, d)
	}
}
