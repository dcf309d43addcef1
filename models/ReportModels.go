package models

import "time"

// Report payloads returned inside ReportResponse.Data. Each report is fetched
// independently; a failure in one never affects the others.

// ApplicationsReport summarizes certificate/service applications in a
// financial-year window, paginated.
type ApplicationsReport struct {
	FinancialYear string              `json:"financial_year" example:"2025-26"`
	TotalCount    int                 `json:"total_count" example:"412"`
	Page          int                 `json:"page" example:"1"`
	PageSize      int                 `json:"page_size" example:"20"`
	TotalPages    int                 `json:"total_pages" example:"21"`
	ByStatus      map[string]int      `json:"by_status"`
	ByType        map[string]int      `json:"by_type"`
	Applications  []ApplicationRecord `json:"applications"`
}

// ApplicationRecord is one row of the applications report.
type ApplicationRecord struct {
	ApplicationID string    `json:"application_id" example:"APP-2025-000123"`
	ApplicantName string    `json:"applicant_name" example:"Sunita Das"`
	ServiceType   string    `json:"service_type" example:"DOMICILE_CERTIFICATE"`
	Status        string    `json:"status" example:"UNDER_ENQUIRY"`
	SubmittedAt   time.Time `json:"submitted_at" example:"2025-05-12T09:00:00Z"`
}

// BudgetReport shows allocation against utilization per budget head.
type BudgetReport struct {
	FinancialYear    string       `json:"financial_year" example:"2025-26"`
	TotalAllocation  float64      `json:"total_allocation" example:"12500000"`
	TotalUtilization float64      `json:"total_utilization" example:"8234000"`
	Heads            []BudgetHead `json:"heads"`
}

// BudgetHead is one budget line (scheme or head of account).
type BudgetHead struct {
	Head        string  `json:"head" example:"15th Finance Commission - Tied"`
	Allocation  float64 `json:"allocation" example:"4500000"`
	Utilization float64 `json:"utilization" example:"3120000"`
}

// ExpenditureReport groups expenditure by category inside the date range.
type ExpenditureReport struct {
	FinancialYear string                `json:"financial_year" example:"2025-26"`
	Total         float64               `json:"total" example:"8234000"`
	Categories    []ExpenditureCategory `json:"categories"`
}

// ExpenditureCategory is one category-wise expenditure total.
type ExpenditureCategory struct {
	Category string  `json:"category" example:"Drinking Water"`
	Amount   float64 `json:"amount" example:"1420000"`
	Count    int     `json:"count" example:"12"`
}

// EarnestMoneyReport covers EMD (earnest money deposit) held against tenders.
// This report does not support date filtering; DateFiltered is always false
// so clients can surface the limitation instead of silently ignoring the
// selected financial year.
type EarnestMoneyReport struct {
	DateFiltered  bool                 `json:"dateFiltered" example:"false"`
	TotalHeld     float64              `json:"total_held" example:"560000"`
	TotalRefunded float64              `json:"total_refunded" example:"310000"`
	TotalForfeit  float64              `json:"total_forfeited" example:"20000"`
	Deposits      []EarnestMoneyRecord `json:"deposits"`
}

// EarnestMoneyRecord is one EMD entry.
type EarnestMoneyRecord struct {
	TenderID   string    `json:"tender_id" example:"TND-2025-014"`
	VendorName string    `json:"vendor_name" example:"M/s Sarkar Constructions"`
	Amount     float64   `json:"amount" example:"25000"`
	Status     string    `json:"status" example:"HELD"`
	DepositOn  time.Time `json:"deposited_on" example:"2025-04-20T00:00:00Z"`
}

// TechnicalComplianceReport tracks technical-sanction compliance of works.
// Like the earnest money report it carries no date filter.
type TechnicalComplianceReport struct {
	DateFiltered   bool                      `json:"dateFiltered" example:"false"`
	TotalWorks     int                       `json:"total_works" example:"48"`
	CompliantWorks int                       `json:"compliant_works" example:"41"`
	PendingWorks   int                       `json:"pending_works" example:"7"`
	Items          []TechnicalComplianceItem `json:"items"`
}

// TechnicalComplianceItem is one work's compliance row.
type TechnicalComplianceItem struct {
	WorkID         string `json:"work_id" example:"WRK-2025-031"`
	WorkName       string `json:"work_name" example:"Concrete road, Ward 4"`
	SanctionStatus string `json:"sanction_status" example:"TECHNICALLY_SANCTIONED"`
	Remarks        string `json:"remarks,omitempty" example:""`
}

// VendorParticipationReport summarizes tender participation by vendors.
type VendorParticipationReport struct {
	FinancialYear   string             `json:"financial_year" example:"2025-26"`
	TotalTenders    int                `json:"total_tenders" example:"22"`
	TotalVendors    int                `json:"total_vendors" example:"35"`
	AvgBidsPerWork  float64            `json:"avg_bids_per_work" example:"3.2"`
	TopParticipants []VendorBidSummary `json:"top_participants"`
}

// VendorBidSummary is one vendor's participation row.
type VendorBidSummary struct {
	VendorName string `json:"vendor_name" example:"M/s Sarkar Constructions"`
	BidCount   int    `json:"bid_count" example:"9"`
	WonCount   int    `json:"won_count" example:"3"`
}

// PerformanceReport counts works by delivery status in the date range.
type PerformanceReport struct {
	FinancialYear string  `json:"financial_year" example:"2025-26"`
	Completed     int     `json:"completed" example:"18"`
	Ongoing       int     `json:"ongoing" example:"24"`
	Delayed       int     `json:"delayed" example:"6"`
	OnTimeRate    float64 `json:"on_time_rate" example:"0.75"`
}
