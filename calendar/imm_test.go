package calendar_test

import (
	"testing"
	"time"

	"github.com/meenmo/cdscore/calendar"
)

func TestNextIMM(t *testing.T) {
	t.Parallel()
	d := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	got := calendar.NextIMM(d)
	want := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("NextIMM(%s) = %s, want %s", d.Format("2006-01-02"), got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestPreviousIMM_OnIMMDate(t *testing.T) {
	t.Parallel()
	d := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	got := calendar.PreviousIMM(d)
	if !got.Equal(d) {
		t.Fatalf("PreviousIMM(%s) = %s, want itself", d.Format("2006-01-02"), got.Format("2006-01-02"))
	}
}

func TestPreviousIMM_RollsAcrossYearBoundary(t *testing.T) {
	t.Parallel()
	d := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	got := calendar.PreviousIMM(d)
	want := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("PreviousIMM(%s) = %s, want %s", d.Format("2006-01-02"), got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}
