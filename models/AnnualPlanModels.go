package models

// District annual plan dataset used by the single-sheet spreadsheet export.
// The plan data is a static seed per block until the district MIS feed goes
// live; the export shape (columns, widths, row order) is what downstream
// consumers depend on.

// PlanScheme is one scheme line of the annual plan.
type PlanScheme struct {
	SchemeName    string  `json:"scheme_name" example:"Rural road upgradation, Ward 4"`
	Sector        string  `json:"sector" example:"Roads & Bridges"`
	EstimatedCost float64 `json:"estimated_cost" example:"1250000"`
	CentralShare  float64 `json:"central_share" example:"750000"`
	StateShare    float64 `json:"state_share" example:"375000"`
	OwnFund       float64 `json:"own_fund" example:"125000"`
	Beneficiaries int     `json:"beneficiaries" example:"1400"`
	TargetQuarter string  `json:"target_quarter" example:"Q3"`
	Remarks       string  `json:"remarks" example:"Carried over from 2024-25"`
}

// GramPanchayatPlan groups a Gram Panchayat's schemes.
type GramPanchayatPlan struct {
	Name    string       `json:"name" example:"Rampur GP"`
	Schemes []PlanScheme `json:"schemes"`
}

// BlockAnnualPlan is one block's slice of the district annual plan.
type BlockAnnualPlan struct {
	BlockName       string              `json:"block_name" example:"Krishnanagar I"`
	PlanYear        string              `json:"plan_year" example:"2025-26"`
	GramPanchayats  []GramPanchayatPlan `json:"gram_panchayats"`
}

// DistrictAnnualPlanData returns the seeded annual plan for a block, or nil
// when the block is unknown.
func DistrictAnnualPlanData(blockName string) *BlockAnnualPlan {
	for i := range districtAnnualPlans {
		if districtAnnualPlans[i].BlockName == blockName {
			return &districtAnnualPlans[i]
		}
	}
	return nil
}

// DistrictAnnualPlanBlocks lists the block names present in the seed.
func DistrictAnnualPlanBlocks() []string {
	names := make([]string, 0, len(districtAnnualPlans))
	for i := range districtAnnualPlans {
		names = append(names, districtAnnualPlans[i].BlockName)
	}
	return names
}

var districtAnnualPlans = []BlockAnnualPlan{
	{
		BlockName: "Krishnanagar I",
		PlanYear:  "2025-26",
		GramPanchayats: []GramPanchayatPlan{
			{
				Name: "Rampur GP",
				Schemes: []PlanScheme{
					{SchemeName: "Rural road upgradation, Ward 4", Sector: "Roads & Bridges", EstimatedCost: 1250000, CentralShare: 750000, StateShare: 375000, OwnFund: 125000, Beneficiaries: 1400, TargetQuarter: "Q3", Remarks: "Carried over from 2024-25"},
					{SchemeName: "Pond re-excavation, Mouza Rampur", Sector: "Water Conservation", EstimatedCost: 480000, CentralShare: 288000, StateShare: 144000, OwnFund: 48000, Beneficiaries: 600, TargetQuarter: "Q2", Remarks: ""},
					{SchemeName: "Solar street lights, main market", Sector: "Energy", EstimatedCost: 320000, CentralShare: 192000, StateShare: 96000, OwnFund: 32000, Beneficiaries: 2100, TargetQuarter: "Q1", Remarks: ""},
				},
			},
			{
				Name: "Bhaluka GP",
				Schemes: []PlanScheme{
					{SchemeName: "Drinking water pipeline extension", Sector: "Drinking Water", EstimatedCost: 2100000, CentralShare: 1260000, StateShare: 630000, OwnFund: 210000, Beneficiaries: 3200, TargetQuarter: "Q4", Remarks: "Pending DPR approval"},
					{SchemeName: "Anganwadi centre repair", Sector: "Social Infrastructure", EstimatedCost: 260000, CentralShare: 156000, StateShare: 78000, OwnFund: 26000, Beneficiaries: 90, TargetQuarter: "Q2", Remarks: ""},
				},
			},
		},
	},
	{
		BlockName: "Krishnanagar II",
		PlanYear:  "2025-26",
		GramPanchayats: []GramPanchayatPlan{
			{
				Name: "Dhubulia GP",
				Schemes: []PlanScheme{
					{SchemeName: "Concrete drain, Ward 2", Sector: "Sanitation", EstimatedCost: 680000, CentralShare: 408000, StateShare: 204000, OwnFund: 68000, Beneficiaries: 850, TargetQuarter: "Q3", Remarks: ""},
					{SchemeName: "Community hall boundary wall", Sector: "Social Infrastructure", EstimatedCost: 410000, CentralShare: 246000, StateShare: 123000, OwnFund: 41000, Beneficiaries: 500, TargetQuarter: "Q4", Remarks: ""},
				},
			},
		},
	},
}
