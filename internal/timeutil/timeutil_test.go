package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

func TestLoadZoneFallsBackToReference(t *testing.T) {
	if loc := LoadZone(""); loc.String() != ReferenceZone {
		t.Fatalf("expected %s for empty name, got %s", ReferenceZone, loc)
	}
	if loc := LoadZone("Not/AZone"); loc.String() != ReferenceZone {
		t.Fatalf("expected %s for invalid name, got %s", ReferenceZone, loc)
	}
	if loc := LoadZone("UTC"); loc.String() != "UTC" {
		t.Fatalf("expected UTC, got %s", loc)
	}
}

func TestStartOfDayUsesTargetZone(t *testing.T) {
	berlin := LoadZone(ReferenceZone)
	// 23:30 UTC on March 8 is already March 9 in Berlin.
	got := StartOfDay(time.Date(2025, 3, 8, 23, 30, 0, 0, time.UTC), berlin)
	if FormatDate(got) != "2025-03-09" || got.Hour() != 0 {
		t.Fatalf("unexpected start of day %s", got)
	}
}

func TestAddDaysKeepsMidnightAcrossDST(t *testing.T) {
	berlin := LoadZone(ReferenceZone)
	// DST starts on 2025-03-30 in Europe/Berlin.
	monday := time.Date(2025, 3, 24, 0, 0, 0, 0, berlin)
	next := AddDays(monday, 7)
	if FormatDate(next) != "2025-03-31" || next.Hour() != 0 {
		t.Fatalf("expected midnight 2025-03-31, got %s", next)
	}
}

func TestSameDate(t *testing.T) {
	berlin := LoadZone(ReferenceZone)
	a := time.Date(2025, 3, 8, 23, 30, 0, 0, time.UTC)
	b := time.Date(2025, 3, 9, 10, 0, 0, 0, berlin)
	if !SameDate(a, b, berlin) {
		t.Fatalf("expected same Berlin date")
	}
	if SameDate(a, b, time.UTC) {
		t.Fatalf("expected different UTC dates")
	}
}

func TestISOWeekday(t *testing.T) {
	cases := map[string]int{
		"2025-03-03": 1, // Monday
		"2025-03-08": 6, // Saturday
		"2025-03-09": 7, // Sunday
	}
	for date, want := range cases {
		d, _ := ParseDate(date)
		if got := ISOWeekday(d); got != want {
			t.Fatalf("%s: expected %d, got %d", date, want, got)
		}
	}
}
