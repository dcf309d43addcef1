package handlers

import (
	"testing"

	"panchayat/models"
)

func TestAnnualPlanFileName(t *testing.T) {
	tests := []struct {
		planYear  string
		blockName string
		want      string
	}{
		{"2025-26", "Krishnanagar I", "District_Annual_Plan_2025-26_Krishnanagar_I_SingleSheet.xlsx"},
		{"2025-26", "Krishnanagar II", "District_Annual_Plan_2025-26_Krishnanagar_II_SingleSheet.xlsx"},
		{"2024-25", "Nabadwip", "District_Annual_Plan_2024-25_Nabadwip_SingleSheet.xlsx"},
	}
	for _, tt := range tests {
		if got := AnnualPlanFileName(tt.planYear, tt.blockName); got != tt.want {
			t.Errorf("AnnualPlanFileName(%q, %q) = %q, want %q", tt.planYear, tt.blockName, got, tt.want)
		}
	}
}

func TestBuildAnnualPlanWorkbookLayout(t *testing.T) {
	plan := models.DistrictAnnualPlanData("Krishnanagar I")
	if plan == nil {
		t.Fatal("seed data for Krishnanagar I missing")
	}

	f, err := BuildAnnualPlanWorkbook(plan)
	if err != nil {
		t.Fatalf("BuildAnnualPlanWorkbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Annual Plan" {
		t.Fatalf("expected single sheet 'Annual Plan', got %v", sheets)
	}

	widths := []struct {
		col  string
		want float64
	}{
		{"A", 30}, {"B", 20}, {"C", 15}, {"H", 15}, {"I", 20},
	}
	for _, w := range widths {
		got, err := f.GetColWidth("Annual Plan", w.col)
		if err != nil {
			t.Fatalf("GetColWidth(%s): %v", w.col, err)
		}
		if got != w.want {
			t.Errorf("column %s width = %v, want %v", w.col, got, w.want)
		}
	}

	title, err := f.GetCellValue("Annual Plan", "A1")
	if err != nil {
		t.Fatalf("GetCellValue(A1): %v", err)
	}
	if title != "District Annual Plan 2025-26" {
		t.Errorf("title = %q", title)
	}

	header, _ := f.GetCellValue("Annual Plan", "A4")
	if header != "Scheme Name" {
		t.Errorf("A4 header = %q, want Scheme Name", header)
	}
	header, _ = f.GetCellValue("Annual Plan", "I4")
	if header != "Remarks" {
		t.Errorf("I4 header = %q, want Remarks", header)
	}

	// Row 5 is the first GP section header, row 6 its first scheme.
	gp, _ := f.GetCellValue("Annual Plan", "A5")
	if gp != "Rampur GP" {
		t.Errorf("A5 = %q, want Rampur GP", gp)
	}
	scheme, _ := f.GetCellValue("Annual Plan", "A6")
	if scheme != "Rural road upgradation, Ward 4" {
		t.Errorf("A6 = %q", scheme)
	}
}

func TestBuildAnnualPlanWorkbookTotals(t *testing.T) {
	plan := &models.BlockAnnualPlan{
		BlockName: "Test Block",
		PlanYear:  "2025-26",
		GramPanchayats: []models.GramPanchayatPlan{
			{
				Name: "GP One",
				Schemes: []models.PlanScheme{
					{SchemeName: "S1", Sector: "Roads", EstimatedCost: 1000, CentralShare: 600, StateShare: 300, OwnFund: 100, Beneficiaries: 10, TargetQuarter: "Q1"},
					{SchemeName: "S2", Sector: "Water", EstimatedCost: 2000, CentralShare: 1200, StateShare: 600, OwnFund: 200, Beneficiaries: 20, TargetQuarter: "Q2"},
				},
			},
		},
	}

	f, err := BuildAnnualPlanWorkbook(plan)
	if err != nil {
		t.Fatalf("BuildAnnualPlanWorkbook: %v", err)
	}
	defer f.Close()

	// Rows: 5 GP header, 6 and 7 schemes, 8 totals.
	label, _ := f.GetCellValue("Annual Plan", "A8")
	if label != "Block Total" {
		t.Fatalf("A8 = %q, want Block Total", label)
	}
	total, _ := f.GetCellValue("Annual Plan", "C8")
	if total != "3000" {
		t.Errorf("C8 total = %q, want 3000", total)
	}
	beneficiaries, _ := f.GetCellValue("Annual Plan", "G8")
	if beneficiaries != "30" {
		t.Errorf("G8 total = %q, want 30", beneficiaries)
	}
}
