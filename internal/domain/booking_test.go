package domain_test

import (
	"testing"
	"time"

	"github.com/chakronwork/SmartStay/internal/domain"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTotalPrice_MultiNight(t *testing.T) {
	cases := []struct {
		in, out string
		nightly float64
		want    float64
	}{
		{"2025-01-10", "2025-01-11", 2500, 2500},
		{"2025-01-10", "2025-01-13", 2500, 7500},
		{"2025-01-31", "2025-02-02", 1200, 2400},
		{"2025-12-30", "2026-01-02", 999, 2997},
	}
	for _, c := range cases {
		got := domain.TotalPrice(date(c.in), date(c.out), c.nightly)
		if got != c.want {
			t.Fatalf("%s..%s @%v: got %v want %v", c.in, c.out, c.nightly, got, c.want)
		}
	}
}

func TestTotalPrice_SameDayFallsBackToOneNight(t *testing.T) {
	got := domain.TotalPrice(date("2025-03-05"), date("2025-03-05"), 2500)
	if got != 2500 {
		t.Fatalf("same-day stay: got %v want 2500", got)
	}
}

func TestTotalPrice_InvertedDatesFallBackToOneNight(t *testing.T) {
	got := domain.TotalPrice(date("2025-03-07"), date("2025-03-05"), 1800)
	if got != 1800 {
		t.Fatalf("inverted dates: got %v want 1800", got)
	}
}

func TestNights_PartialDayRoundsUp(t *testing.T) {
	in := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	out := time.Date(2025, 6, 3, 11, 0, 0, 0, time.UTC)
	if n := domain.Nights(in, out); n != 2 {
		t.Fatalf("got %d nights, want 2", n)
	}
}
