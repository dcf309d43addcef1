package handlers

import (
	"fmt"
	"time"

	"panchayat/models"
)

// EstimateBuilder accumulates work items for one DPR draft and keeps the
// running subtotal. It is not safe for concurrent use; the draft manager
// serializes access per estimate.
type EstimateBuilder struct {
	DPR    models.DPRData
	nextID int
}

// NewEstimateBuilder starts an empty draft for the given estimate type.
func NewEstimateBuilder(estimateID, projectName, location, estimateType, financialYear, createdBy string) *EstimateBuilder {
	now := time.Now()
	return &EstimateBuilder{
		DPR: models.DPRData{
			EstimateID:    estimateID,
			ProjectName:   projectName,
			Location:      location,
			EstimateType:  estimateType,
			FinancialYear: financialYear,
			WorkItems:     []models.WorkItem{},
			CreatedBy:     createdBy,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}

// AddWorkItem appends a new line for the schedule rate and increments the
// running subtotal by the line amount.
func (b *EstimateBuilder) AddWorkItem(rate models.ScheduleRate, quantity float64) models.WorkItem {
	b.nextID++
	item := models.WorkItem{
		ID:          fmt.Sprintf("wi-%d", b.nextID),
		Description: rate.Description,
		Unit:        rate.Unit,
		Quantity:    quantity,
		Rate:        rate.Rate,
		Amount:      quantity * rate.Rate,
		Category:    rate.Category,
	}
	b.DPR.WorkItems = append(b.DPR.WorkItems, item)
	b.DPR.EstimatedCost += item.Amount
	b.DPR.UpdatedAt = time.Now()
	return item
}

// UpdateQuantity recomputes one item's amount and then recomputes the
// subtotal by summing every item. The full recompute is deliberate: an
// incremental adjustment rounds differently in floating point.
func (b *EstimateBuilder) UpdateQuantity(itemID string, quantity float64) error {
	found := false
	for i := range b.DPR.WorkItems {
		if b.DPR.WorkItems[i].ID == itemID {
			b.DPR.WorkItems[i].Quantity = quantity
			b.DPR.WorkItems[i].Amount = quantity * b.DPR.WorkItems[i].Rate
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("work item %s not found", itemID)
	}

	total := 0.0
	for i := range b.DPR.WorkItems {
		total += b.DPR.WorkItems[i].Amount
	}
	b.DPR.EstimatedCost = total
	b.DPR.UpdatedAt = time.Now()
	return nil
}

// RemoveWorkItem drops the item and decrements the subtotal by its amount.
func (b *EstimateBuilder) RemoveWorkItem(itemID string) error {
	for i := range b.DPR.WorkItems {
		if b.DPR.WorkItems[i].ID == itemID {
			b.DPR.EstimatedCost -= b.DPR.WorkItems[i].Amount
			b.DPR.WorkItems = append(b.DPR.WorkItems[:i], b.DPR.WorkItems[i+1:]...)
			b.DPR.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("work item %s not found", itemID)
}

// ApplyTemplate bulk-adds the template's items at their default quantities.
func (b *EstimateBuilder) ApplyTemplate(items []models.TemplateItem) {
	for _, it := range items {
		b.nextID++
		item := models.WorkItem{
			ID:          fmt.Sprintf("wi-%d", b.nextID),
			Description: it.Description,
			Unit:        it.Unit,
			Quantity:    it.DefaultQty,
			Rate:        it.Rate,
			Amount:      it.DefaultQty * it.Rate,
			Category:    it.Category,
		}
		b.DPR.WorkItems = append(b.DPR.WorkItems, item)
		b.DPR.EstimatedCost += item.Amount
	}
	b.DPR.UpdatedAt = time.Now()
}

// TemplateItems serializes the current work items as reusable template lines.
func (b *EstimateBuilder) TemplateItems() []models.TemplateItem {
	items := make([]models.TemplateItem, 0, len(b.DPR.WorkItems))
	for _, wi := range b.DPR.WorkItems {
		items = append(items, models.TemplateItem{
			Description: wi.Description,
			Unit:        wi.Unit,
			Rate:        wi.Rate,
			DefaultQty:  wi.Quantity,
			Category:    wi.Category,
		})
	}
	return items
}

// CalculateTotalWithCharges derives the cost breakdown from the subtotal and
// the percentage charges. Every charge applies to the same base subtotal;
// nothing compounds and nothing is rounded here, display formatting belongs
// to the presentation layer.
func CalculateTotalWithCharges(subtotal float64, charges models.AdditionalCharges) models.CostBreakdown {
	breakdown := models.CostBreakdown{
		Subtotal:          subtotal,
		SGSTAmount:        subtotal * charges.SGST / 100,
		CGSTAmount:        subtotal * charges.CGST / 100,
		LabourCessAmount:  subtotal * charges.LabourCess / 100,
		ContingencyAmount: subtotal * charges.Contingency / 100,
	}
	breakdown.TotalAmount = breakdown.Subtotal +
		breakdown.SGSTAmount +
		breakdown.CGSTAmount +
		breakdown.LabourCessAmount +
		breakdown.ContingencyAmount
	return breakdown
}
