package models

import (
	"time"
)

// GORM-compatible models with proper tags

// EstimateTemplateGorm represents the estimate_templates table with GORM tags
type EstimateTemplateGorm struct {
	ID           uint                       `gorm:"primaryKey;column:id" json:"id"`
	Name         string                     `gorm:"column:name;not null" json:"name"`
	EstimateType string                     `gorm:"column:estimate_type;not null;index" json:"estimateType"`
	CreatedBy    string                     `gorm:"column:created_by" json:"created_by"`
	CreatedAt    time.Time                  `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt    time.Time                  `gorm:"column:updated_at;not null" json:"updated_at"`
	Items        []EstimateTemplateItemGorm `gorm:"foreignKey:TemplateID" json:"items"`
}

// TableName specifies the table name for EstimateTemplateGorm
func (EstimateTemplateGorm) TableName() string {
	return "estimate_templates"
}

// EstimateTemplateItemGorm represents the estimate_template_items table with GORM tags
type EstimateTemplateItemGorm struct {
	ID          uint    `gorm:"primaryKey;column:id" json:"id"`
	TemplateID  uint    `gorm:"column:template_id;not null;index" json:"template_id"`
	Description string  `gorm:"column:description;not null" json:"description"`
	Unit        string  `gorm:"column:unit;not null" json:"unit"`
	Rate        float64 `gorm:"column:rate;type:numeric(14,2);not null" json:"rate"`
	DefaultQty  float64 `gorm:"column:default_qty;type:numeric(14,3);not null" json:"defaultQty"`
	Category    string  `gorm:"column:category" json:"category"`
}

// TableName specifies the table name for EstimateTemplateItemGorm
func (EstimateTemplateItemGorm) TableName() string {
	return "estimate_template_items"
}

// ToResponse flattens a stored template into the API response shape.
func (t EstimateTemplateGorm) ToResponse() EstimateTemplateResponse {
	items := make([]TemplateItem, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, TemplateItem{
			Description: it.Description,
			Unit:        it.Unit,
			Rate:        it.Rate,
			DefaultQty:  it.DefaultQty,
			Category:    it.Category,
		})
	}
	return EstimateTemplateResponse{
		ID:           t.ID,
		Name:         t.Name,
		EstimateType: t.EstimateType,
		Items:        items,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
	}
}
