package handlers

import (
	"testing"
	"time"

	"panchayat/models"
)

func TestDatesForBulkGenerateStartsTomorrow(t *testing.T) {
	now := time.Date(2025, 6, 14, 15, 30, 0, 0, time.UTC)
	dates := DatesForBulkGenerate(now, 5, nil)

	if len(dates) != 5 {
		t.Fatalf("expected 5 dates, got %d", len(dates))
	}
	if got := dates[0].Format("2006-01-02"); got != "2025-06-15" {
		t.Fatalf("expected first date 2025-06-15, got %s", got)
	}
	if got := dates[4].Format("2006-01-02"); got != "2025-06-19" {
		t.Fatalf("expected last date 2025-06-19, got %s", got)
	}
}

func TestDatesForBulkGenerateCapsAtThirtyDays(t *testing.T) {
	now := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	dates := DatesForBulkGenerate(now, 90, nil)

	if len(dates) != 30 {
		t.Fatalf("expected cap of 30 dates, got %d", len(dates))
	}
	if got := dates[29].Format("2006-01-02"); got != "2025-07-14" {
		t.Fatalf("expected last date 2025-07-14, got %s", got)
	}
}

func TestDatesForBulkGenerateSkipsExisting(t *testing.T) {
	now := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	existing := map[string]bool{
		"2025-06-16": true,
		"2025-06-18": true,
	}
	dates := DatesForBulkGenerate(now, 5, existing)

	if len(dates) != 3 {
		t.Fatalf("expected 3 dates after skipping, got %d", len(dates))
	}
	for _, d := range dates {
		if existing[d.Format("2006-01-02")] {
			t.Fatalf("existing date %s was not skipped", d.Format("2006-01-02"))
		}
	}
}

func TestDatesForBulkGenerateCrossesMonthBoundary(t *testing.T) {
	now := time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC)
	dates := DatesForBulkGenerate(now, 3, nil)

	want := []string{"2025-06-30", "2025-07-01", "2025-07-02"}
	for i, w := range want {
		if got := dates[i].Format("2006-01-02"); got != w {
			t.Fatalf("date %d: expected %s, got %s", i, w, got)
		}
	}
}

func TestValidateAvailabilityRequest(t *testing.T) {
	tests := []struct {
		name string
		req  models.ServiceAvailabilityRequest
		ok   bool
	}{
		{
			name: "valid",
			req:  models.ServiceAvailabilityRequest{ServiceType: "WATER_TANKER", Date: "2025-06-20", Capacity: 4, Booked: 2},
			ok:   true,
		},
		{
			name: "booked exceeds capacity",
			req:  models.ServiceAvailabilityRequest{ServiceType: "WATER_TANKER", Date: "2025-06-20", Capacity: 4, Booked: 5},
			ok:   false,
		},
		{
			name: "booked equals capacity",
			req:  models.ServiceAvailabilityRequest{ServiceType: "DUSTBIN_VAN", Date: "2025-06-20", Capacity: 2, Booked: 2},
			ok:   true,
		},
		{
			name: "negative booked",
			req:  models.ServiceAvailabilityRequest{ServiceType: "WATER_TANKER", Date: "2025-06-20", Capacity: 4, Booked: -1},
			ok:   false,
		},
		{
			name: "unknown service type",
			req:  models.ServiceAvailabilityRequest{ServiceType: "AMBULANCE", Date: "2025-06-20", Capacity: 1},
			ok:   false,
		},
		{
			name: "bad date",
			req:  models.ServiceAvailabilityRequest{ServiceType: "WATER_TANKER", Date: "20-06-2025", Capacity: 4},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, msg, ok := validateAvailabilityRequest(&tt.req)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got ok=%v (%s)", tt.ok, ok, msg)
			}
		})
	}
}
