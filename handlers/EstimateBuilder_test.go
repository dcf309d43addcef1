package handlers

import (
	"math"
	"testing"

	"panchayat/models"
)

func newTestBuilder() *EstimateBuilder {
	return NewEstimateBuilder("EST-1", "Test work", "Rampur", "POND_EXCAVATION", "2025-26", "tester")
}

func sumAmounts(b *EstimateBuilder) float64 {
	total := 0.0
	for _, wi := range b.DPR.WorkItems {
		total += wi.Amount
	}
	return total
}

func TestSubtotalMatchesItemSumAcrossMutations(t *testing.T) {
	b := newTestBuilder()

	earthwork := models.ScheduleRate{ID: 1, Description: "Earthwork", Unit: "cum", Rate: 185.5, Category: "Earthwork"}
	brickwork := models.ScheduleRate{ID: 2, Description: "Brickwork", Unit: "cum", Rate: 5240.75, Category: "Masonry"}
	concrete := models.ScheduleRate{ID: 3, Description: "PCC 1:2:4", Unit: "cum", Rate: 6830.25, Category: "Concrete"}

	first := b.AddWorkItem(earthwork, 120)
	b.AddWorkItem(brickwork, 14.5)
	third := b.AddWorkItem(concrete, 8.25)

	if b.DPR.EstimatedCost != sumAmounts(b) {
		t.Fatalf("subtotal %v != item sum %v after adds", b.DPR.EstimatedCost, sumAmounts(b))
	}

	if err := b.UpdateQuantity(first.ID, 97.5); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if b.DPR.EstimatedCost != sumAmounts(b) {
		t.Fatalf("subtotal %v != item sum %v after update", b.DPR.EstimatedCost, sumAmounts(b))
	}

	if err := b.RemoveWorkItem(third.ID); err != nil {
		t.Fatalf("RemoveWorkItem: %v", err)
	}
	if math.Abs(b.DPR.EstimatedCost-sumAmounts(b)) > 1e-9 {
		t.Fatalf("subtotal %v != item sum %v after remove", b.DPR.EstimatedCost, sumAmounts(b))
	}

	if len(b.DPR.WorkItems) != 2 {
		t.Fatalf("expected 2 items, got %d", len(b.DPR.WorkItems))
	}
}

func TestUpdateQuantityRecomputesAmount(t *testing.T) {
	b := newTestBuilder()
	item := b.AddWorkItem(models.ScheduleRate{ID: 1, Description: "Earthwork", Unit: "cum", Rate: 200}, 10)

	if err := b.UpdateQuantity(item.ID, 25); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if got := b.DPR.WorkItems[0].Amount; got != 5000 {
		t.Fatalf("expected amount 5000, got %v", got)
	}
	if b.DPR.EstimatedCost != 5000 {
		t.Fatalf("expected subtotal 5000, got %v", b.DPR.EstimatedCost)
	}
}

func TestUpdateAndRemoveUnknownItem(t *testing.T) {
	b := newTestBuilder()
	if err := b.UpdateQuantity("wi-99", 5); err == nil {
		t.Fatal("expected error updating unknown item")
	}
	if err := b.RemoveWorkItem("wi-99"); err == nil {
		t.Fatal("expected error removing unknown item")
	}
}

func TestCalculateTotalWithChargesKnownValues(t *testing.T) {
	charges := models.AdditionalCharges{SGST: 9, CGST: 9, LabourCess: 1, Contingency: 3}
	bd := CalculateTotalWithCharges(100000, charges)

	if bd.SGSTAmount != 9000 {
		t.Fatalf("sgst expected 9000, got %v", bd.SGSTAmount)
	}
	if bd.CGSTAmount != 9000 {
		t.Fatalf("cgst expected 9000, got %v", bd.CGSTAmount)
	}
	if bd.LabourCessAmount != 1000 {
		t.Fatalf("labour cess expected 1000, got %v", bd.LabourCessAmount)
	}
	if bd.ContingencyAmount != 3000 {
		t.Fatalf("contingency expected 3000, got %v", bd.ContingencyAmount)
	}
	if bd.TotalAmount != 122000 {
		t.Fatalf("total expected 122000, got %v", bd.TotalAmount)
	}
}

func TestCalculateTotalWithChargesIsLinear(t *testing.T) {
	charges := models.AdditionalCharges{SGST: 9, CGST: 9, LabourCess: 1, Contingency: 3}
	base := CalculateTotalWithCharges(41250, charges)
	doubled := CalculateTotalWithCharges(82500, charges)

	pairs := [][2]float64{
		{base.Subtotal, doubled.Subtotal},
		{base.SGSTAmount, doubled.SGSTAmount},
		{base.CGSTAmount, doubled.CGSTAmount},
		{base.LabourCessAmount, doubled.LabourCessAmount},
		{base.ContingencyAmount, doubled.ContingencyAmount},
		{base.TotalAmount, doubled.TotalAmount},
	}
	for _, p := range pairs {
		if math.Abs(p[1]-2*p[0]) > 1e-9 {
			t.Fatalf("doubling subtotal did not double field: %v vs %v", p[0], p[1])
		}
	}
}

func TestApplyTemplateRoundTrip(t *testing.T) {
	b := newTestBuilder()
	b.ApplyTemplate([]models.TemplateItem{
		{Description: "Item A", Unit: "cum", Rate: 50, DefaultQty: 2},
		{Description: "Item B", Unit: "sqm", Rate: 30, DefaultQty: 1},
	})

	if b.DPR.EstimatedCost != 130 {
		t.Fatalf("expected estimated cost 130, got %v", b.DPR.EstimatedCost)
	}
	if len(b.DPR.WorkItems) != 2 {
		t.Fatalf("expected 2 work items, got %d", len(b.DPR.WorkItems))
	}
	if b.DPR.WorkItems[0].Amount != 100 {
		t.Fatalf("expected first amount 100, got %v", b.DPR.WorkItems[0].Amount)
	}
	if b.DPR.WorkItems[1].Amount != 30 {
		t.Fatalf("expected second amount 30, got %v", b.DPR.WorkItems[1].Amount)
	}
}

func TestTemplateItemsSerializeCurrentQuantities(t *testing.T) {
	b := newTestBuilder()
	b.AddWorkItem(models.ScheduleRate{ID: 1, Description: "Earthwork", Unit: "cum", Rate: 185.5, Category: "Earthwork"}, 40)

	items := b.TemplateItems()
	if len(items) != 1 {
		t.Fatalf("expected 1 template item, got %d", len(items))
	}
	if items[0].DefaultQty != 40 || items[0].Rate != 185.5 {
		t.Fatalf("unexpected template item %+v", items[0])
	}
}
