package timezone_test

import (
	"tourism/shared/timezone"
	"testing"
	"time"
)

func TestTimezoneInit(t *testing.T) {
	// Test Now() function
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	// Test GetLocation()
	loc := timezone.GetLocation()
	if loc == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestTimezoneWithStandardLocation(t *testing.T) {
	utcTime := time.Now().UTC()
	appTime := timezone.ToAppTime(utcTime)

	if appTime.Location() == nil {
		t.Error("Expected converted time to have a location")
	}
}

func TestTimezoneFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	formatted := timezone.Format(testTime, "2006-01-02 15:04:05 MST")

	if formatted == "" {
		t.Error("Format() returned empty string")
	}

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	if err != nil {
		t.Errorf("Parse() failed: %v", err)
	}

	if parsed == (time.Time{}) {
		t.Error("Parse() returned a zero time")
	}
}

func TestNightsBetween(t *testing.T) {
	loc := timezone.GetLocation()

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		expected int
	}{
		{
			name:     "single night",
			checkIn:  time.Date(2024, 3, 1, 14, 0, 0, 0, loc),
			checkOut: time.Date(2024, 3, 2, 11, 0, 0, 0, loc),
			expected: 1,
		},
		{
			name:     "three nights across month end",
			checkIn:  time.Date(2024, 2, 28, 0, 0, 0, 0, loc),
			checkOut: time.Date(2024, 3, 2, 0, 0, 0, 0, loc),
			expected: 3,
		},
		{
			name:     "same day",
			checkIn:  time.Date(2024, 3, 1, 8, 0, 0, 0, loc),
			checkOut: time.Date(2024, 3, 1, 20, 0, 0, 0, loc),
			expected: 0,
		},
		{
			name:     "inverted range",
			checkIn:  time.Date(2024, 3, 5, 0, 0, 0, 0, loc),
			checkOut: time.Date(2024, 3, 1, 0, 0, 0, 0, loc),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timezone.NightsBetween(tt.checkIn, tt.checkOut); got != tt.expected {
				t.Errorf("expected %d nights, got %d", tt.expected, got)
			}
		})
	}
}

func TestDayBoundaries(t *testing.T) {
	loc := timezone.GetLocation()
	moment := time.Date(2024, 6, 15, 13, 45, 0, 0, loc)

	start := timezone.StartOfDay(moment)
	if start.Hour() != 0 || start.Minute() != 0 || start.Day() != 15 {
		t.Errorf("unexpected start of day %v", start)
	}

	end := timezone.EndOfDay(moment)
	if end.Day() != 15 || end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("unexpected end of day %v", end)
	}

	parsed, err := timezone.ParseDate("2024-06-15")
	if err != nil {
		t.Fatalf("ParseDate() failed: %v", err)
	}

	if !parsed.Equal(start) {
		t.Errorf("expected parsed date %v to equal start of day %v", parsed, start)
	}
}
