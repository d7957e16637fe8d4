package models

import (
	"testing"
	"time"
)

func TestParseClock_Valid(t *testing.T) {
	tests := []struct {
		in     string
		hour   int
		minute int
	}{
		{"00:00", 0, 0},
		{"09:05", 9, 5},
		{"23:59", 23, 59},
	}
	for _, tc := range tests {
		h, m, err := ParseClock(tc.in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.in, err)
		}
		if h != tc.hour || m != tc.minute {
			t.Fatalf("%s: got %d:%d, want %d:%d", tc.in, h, m, tc.hour, tc.minute)
		}
	}
}

func TestParseClock_Invalid(t *testing.T) {
	for _, in := range []string{"", "9:05", "09-05", "24:00", "12:60", "ab:cd", "09:055"} {
		if _, _, err := ParseClock(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestDueAt_CombinesDateAndClock(t *testing.T) {
	a := &Activity{
		Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Time: "14:30",
	}

	got, err := a.DueAt(time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestDueAt_KeepsCivilDateInWesternZone(t *testing.T) {
	// The DATE column scans back as midnight UTC. In a zone west of UTC
	// that instant is still the previous evening, but the due instant must
	// stay on the stored calendar day.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("loading location: %v", err)
	}

	a := &Activity{
		Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Time: "09:00",
	}

	got, err := a.DueAt(loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2024, 1, 2, 9, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	if got.Day() != 2 {
		t.Fatalf("due instant landed on day %d, want 2", got.Day())
	}
}

func TestDueAt_MalformedClock(t *testing.T) {
	a := &Activity{Date: time.Now(), Time: "noon"}

	if _, err := a.DueAt(time.UTC); err == nil {
		t.Fatal("expected error")
	}
}

func TestRepeatFrequency_Valid(t *testing.T) {
	for _, f := range []RepeatFrequency{RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly} {
		if !f.Valid() {
			t.Fatalf("%s: expected valid", f)
		}
	}
	if RepeatFrequency("yearly").Valid() {
		t.Fatal("yearly: expected invalid")
	}
}
