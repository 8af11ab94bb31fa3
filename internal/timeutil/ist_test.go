package timeutil

import (
	"testing"
	"time"
)

func TestStartAndEndOfDay(t *testing.T) {
	// 2025-03-10 20:30 UTC is already 2025-03-11 02:00 in IST.
	utc := time.Date(2025, 3, 10, 20, 30, 0, 0, time.UTC)

	start := StartOfDay(utc)
	if start.Year() != 2025 || start.Month() != time.March || start.Day() != 11 {
		t.Errorf("StartOfDay = %v, want the IST day 2025-03-11", start)
	}
	if start.Hour() != 0 || start.Minute() != 0 {
		t.Errorf("StartOfDay = %v, want midnight", start)
	}

	end := EndOfDay(utc)
	if end.Day() != 11 || end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("EndOfDay = %v", end)
	}
	if !start.Before(end) {
		t.Error("day start must precede day end")
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2025, time.March)

	if start.Location() != time.UTC || end.Location() != time.UTC {
		t.Error("month range bounds must be UTC")
	}
	// IST midnight on March 1 is 18:30 UTC the previous evening.
	wantStart := time.Date(2025, 2, 28, 18, 30, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	wantEnd := time.Date(2025, 3, 31, 18, 30, 0, 0, time.UTC)
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}

	// December rolls over the year boundary.
	_, decEnd := MonthRange(2025, time.December)
	if decEnd.Year() != 2025 || decEnd.Month() != time.December || decEnd.Day() != 31 {
		t.Errorf("december end = %v, want Dec 31 18:30 UTC", decEnd)
	}
}

func TestToIST(t *testing.T) {
	utc := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ist := ToIST(utc)
	if ist.Hour() != 5 || ist.Minute() != 30 {
		t.Errorf("ToIST(midnight UTC) = %v, want 05:30", ist)
	}
	if !ist.Equal(utc) {
		t.Error("conversion must not shift the instant")
	}
}
