package models

import "time"

// ScheduleRate is one standardized unit price from the schedule of rates,
// the basis for every work-estimate line item.
type ScheduleRate struct {
	ID          int     `json:"id" example:"1"`
	Code        string  `json:"code" example:"SOR-EW-001"`
	Description string  `json:"description" example:"Earthwork in excavation in ordinary soil"`
	Unit        string  `json:"unit" example:"cum"`
	Rate        float64 `json:"rate" example:"185.50"`
	Category    string  `json:"category" example:"Earthwork"`
}

// WorkItem is one line of a work estimate. Amount is always quantity * rate,
// recomputed on every mutation.
type WorkItem struct {
	ID          string  `json:"id" example:"wi-1"`
	Description string  `json:"description" example:"Earthwork in excavation in ordinary soil"`
	Unit        string  `json:"unit" example:"cum"`
	Quantity    float64 `json:"quantity" example:"120"`
	Rate        float64 `json:"rate" example:"185.50"`
	Amount      float64 `json:"amount" example:"22260"`
	Category    string  `json:"category" example:"Earthwork"`
}

// AdditionalCharges holds the percentage levies applied to the estimate
// subtotal. Every percentage is applied to the same base subtotal, never
// compounded.
type AdditionalCharges struct {
	SGST        float64 `json:"sgst" example:"9"`
	CGST        float64 `json:"cgst" example:"9"`
	LabourCess  float64 `json:"labourCess" example:"1"`
	Contingency float64 `json:"contingency" example:"3"`
}

// CostBreakdown is derived from (subtotal, AdditionalCharges) and never stored.
type CostBreakdown struct {
	Subtotal          float64 `json:"subtotal" example:"100000"`
	SGSTAmount        float64 `json:"sgstAmount" example:"9000"`
	CGSTAmount        float64 `json:"cgstAmount" example:"9000"`
	LabourCessAmount  float64 `json:"labourCessAmount" example:"1000"`
	ContingencyAmount float64 `json:"contingencyAmount" example:"3000"`
	TotalAmount       float64 `json:"totalAmount" example:"122000"`
}

// EstimateType describes one kind of works estimate and which dimension
// fields the DPR form requires for it.
type EstimateType struct {
	Code             string `json:"code" example:"POND_EXCAVATION"`
	Name             string `json:"name" example:"Pond Excavation"`
	RequiresLength   bool   `json:"requiresLength" example:"true"`
	RequiresWidth    bool   `json:"requiresWidth" example:"true"`
	RequiresDepth    bool   `json:"requiresDepth" example:"true"`
	RequiresCapacity bool   `json:"requiresCapacity" example:"false"`
}

// DPRData is the aggregate root of one Detailed Project Report draft:
// project metadata, the accumulated work items, dimension fields and the
// percentage charges.
type DPRData struct {
	EstimateID    string            `json:"estimate_id" example:"EST-482910375"`
	ProjectName   string            `json:"project_name" example:"Rampur pond re-excavation"`
	Location      string            `json:"location" example:"Mouza Rampur, JL 42"`
	EstimateType  string            `json:"estimate_type" example:"POND_EXCAVATION"`
	FinancialYear string            `json:"financial_year" example:"2025-26"`
	Length        float64           `json:"length,omitempty" example:"40"`
	Width         float64           `json:"width,omitempty" example:"25"`
	Depth         float64           `json:"depth,omitempty" example:"2.5"`
	Capacity      float64           `json:"capacity,omitempty" example:"0"`
	WorkItems     []WorkItem        `json:"work_items"`
	Charges       AdditionalCharges `json:"additional_charges"`
	EstimatedCost float64           `json:"estimated_cost" example:"22260"`
	CreatedBy     string            `json:"created_by" example:"Anil Mondal"`
	CreatedAt     time.Time         `json:"created_at" example:"2025-06-01T10:30:00Z"`
	UpdatedAt     time.Time         `json:"updated_at" example:"2025-06-01T10:30:00Z"`
}

// TemplateItem is one reusable line of an estimate template.
type TemplateItem struct {
	Description string  `json:"description" example:"Earthwork in excavation in ordinary soil"`
	Unit        string  `json:"unit" example:"cum"`
	Rate        float64 `json:"rate" example:"185.50"`
	DefaultQty  float64 `json:"defaultQty" example:"100"`
	Category    string  `json:"category" example:"Earthwork"`
}

// EstimateTemplateRequest is the POST body for saving a template.
type EstimateTemplateRequest struct {
	Name         string         `json:"name" binding:"required" example:"Standard pond excavation"`
	EstimateType string         `json:"estimateType" binding:"required" example:"POND_EXCAVATION"`
	Items        []TemplateItem `json:"items" binding:"required"`
}

// EstimateTemplateList wraps the template listing response.
type EstimateTemplateList struct {
	Items []EstimateTemplateResponse `json:"items"`
}

// EstimateTemplateResponse is one persisted template with its items.
type EstimateTemplateResponse struct {
	ID           uint           `json:"id" example:"1"`
	Name         string         `json:"name" example:"Standard pond excavation"`
	EstimateType string         `json:"estimateType" example:"POND_EXCAVATION"`
	Items        []TemplateItem `json:"items"`
	CreatedBy    string         `json:"created_by" example:"Anil Mondal"`
	CreatedAt    time.Time      `json:"created_at" example:"2025-06-01T10:30:00Z"`
}

// AddWorkItemRequest adds one schedule rate with a quantity to a draft.
type AddWorkItemRequest struct {
	ScheduleRateID int     `json:"schedule_rate_id" binding:"required" example:"1"`
	Quantity       float64 `json:"quantity" binding:"required,gt=0" example:"120"`
}

// UpdateQuantityRequest changes the quantity of an existing work item.
type UpdateQuantityRequest struct {
	Quantity float64 `json:"quantity" binding:"required,gt=0" example:"90"`
}
