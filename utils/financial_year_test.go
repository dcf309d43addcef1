package utils

import (
	"testing"
	"time"
)

func TestCurrentFinancialYear(t *testing.T) {
	cases := []struct {
		now      time.Time
		expected string
	}{
		{time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2025, time.March, 31, 23, 0, 0, 0, time.UTC), "2024-25"},
		{time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2099, time.December, 1, 0, 0, 0, 0, time.UTC), "2099-00"},
	}
	for _, tc := range cases {
		if got := CurrentFinancialYear(tc.now); got != tc.expected {
			t.Fatalf("CurrentFinancialYear(%v) expected %s, got %s", tc.now, tc.expected, got)
		}
	}
}

func TestFinancialYearBounds(t *testing.T) {
	start, end, err := FinancialYearBounds("2025-26")
	if err != nil {
		t.Fatalf("FinancialYearBounds error: %v", err)
	}
	if start != time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected start %v", start)
	}
	if end != time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC) {
		t.Fatalf("unexpected end %v", end)
	}
}

func TestFinancialYearBoundsRejectsBadInput(t *testing.T) {
	for _, fy := range []string{"2025", "25-26", "2025-27", "2025-2026", "abcd-ef"} {
		if _, _, err := FinancialYearBounds(fy); err == nil {
			t.Fatalf("FinancialYearBounds(%q) expected error", fy)
		}
	}
}

func TestResolveFinancialYearDefaultsToCurrent(t *testing.T) {
	now := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	fy, start, _, err := ResolveFinancialYear("", now)
	if err != nil {
		t.Fatalf("ResolveFinancialYear error: %v", err)
	}
	if fy != "2025-26" {
		t.Fatalf("expected default 2025-26, got %s", fy)
	}
	if start.Year() != 2025 || start.Month() != time.April {
		t.Fatalf("unexpected start %v", start)
	}
}
