package models

import "time"

// Service types bookable through the municipal service panel.
const (
	ServiceTypeWaterTanker = "WATER_TANKER"
	ServiceTypeDustbinVan  = "DUSTBIN_VAN"
)

// ValidServiceType reports whether t is a known bookable service type.
func ValidServiceType(t string) bool {
	return t == ServiceTypeWaterTanker || t == ServiceTypeDustbinVan
}

// ServiceAvailability is one date-keyed capacity record for a service type.
// Invariant: Booked <= Capacity, enforced on create and update.
type ServiceAvailability struct {
	ID          int       `json:"id" example:"1"`
	ServiceType string    `json:"service_type" example:"WATER_TANKER"`
	Date        time.Time `json:"date" example:"2025-06-20T00:00:00Z"`
	Available   bool      `json:"available" example:"true"`
	Capacity    int       `json:"capacity" example:"4"`
	Booked      int       `json:"booked" example:"1"`
	Maintenance bool      `json:"maintenance" example:"false"`
	Notes       string    `json:"notes,omitempty" example:""`
	CreatedAt   time.Time `json:"created_at" example:"2025-06-01T10:30:00Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2025-06-01T10:30:00Z"`
}

// ServiceAvailabilityRequest is the create/update body. Dates travel as ISO
// strings and are parsed server-side.
type ServiceAvailabilityRequest struct {
	ServiceType string `json:"service_type" binding:"required" example:"WATER_TANKER"`
	Date        string `json:"date" binding:"required" example:"2025-06-20"`
	Available   bool   `json:"available" example:"true"`
	Capacity    int    `json:"capacity" binding:"required,gte=0" example:"4"`
	Booked      int    `json:"booked" example:"0"`
	Maintenance bool   `json:"maintenance" example:"false"`
	Notes       string `json:"notes" example:""`
}

// BulkGenerateRequest seeds up to 30 future-dated records in one call.
type BulkGenerateRequest struct {
	Days int `json:"days" binding:"required,gt=0" example:"30"`
}

// ServiceFee is the per-service booking fee, upserted as a pair.
type ServiceFee struct {
	ID          int     `json:"id" example:"1"`
	ServiceType string  `json:"service_type" example:"WATER_TANKER"`
	Amount      float64 `json:"amount" example:"350"`
}

// ServiceFeesRequest is the PUT body for /api/admin/service-fees.
type ServiceFeesRequest struct {
	Fees []ServiceFee `json:"fees" binding:"required"`
}
