package handlers

import (
	"strings"
	"testing"

	"panchayat/models"
)

func sampleKrishakBandhuForm() *models.KrishakBandhuEnquiry {
	return &models.KrishakBandhuEnquiry{
		ApplicationID: "APP-2025-000310",
		MemoNumber:    "GP/KB/2025/092",
		EnquiryDate:   "2025-06-14",
		FarmerName:    "Haripada Mandal",
		GuardianName:  "Late Gopal Mandal",
		Village:       "Rampur",
		Mouza:         "Rampur",
		KhatianNumber: "1042",
		PlotNumber:    "388",
		LandAreaAcre:  1.35,
		Cultivation:   "Paddy, two crops",
		Findings: []models.EnquiryFinding{
			{Question: "Land in applicant's possession", Observation: "Yes, self-cultivated"},
		},
		Personnel: []models.EnquiryPersonnel{
			{Name: "Bimal Ghosh", Designation: "Ward Member"},
		},
		Recommendation:     "RECOMMENDED",
		OfficerName:        "Anil Mondal",
		OfficerDesignation: "Panchayat Secretary",
	}
}

func TestRenderKrishakBandhuReportContainsAllSections(t *testing.T) {
	report := RenderKrishakBandhuReport(sampleKrishakBandhuForm())

	for _, want := range []string{
		"KRISHAK BANDHU FIELD ENQUIRY REPORT",
		"Memo No    : GP/KB/2025/092",
		"Application ID : APP-2025-000310",
		"FARMER DETAILS",
		"Haripada Mandal",
		"LAND DETAILS",
		"Khatian No    : 1042",
		"Area (acre)   : 1.35",
		"FINDINGS OF ENQUIRY",
		"1. Land in applicant's possession: Yes, self-cultivated",
		"PERSONS PRESENT DURING ENQUIRY",
		"1. Bimal Ghosh, Ward Member",
		"RECOMMENDATION : RECOMMENDED",
		"(Anil Mondal)",
		"Panchayat Secretary",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}

func TestRenderKrishakBandhuReportIsDeterministic(t *testing.T) {
	form := sampleKrishakBandhuForm()
	if RenderKrishakBandhuReport(form) != RenderKrishakBandhuReport(form) {
		t.Fatal("same form rendered different reports")
	}
}

func TestRenderDomicileReportOptionalFields(t *testing.T) {
	form := completeDomicileForm()
	report := RenderDomicileReport(form)
	if strings.Contains(report, "Previous Addr") {
		t.Fatal("empty previous address should be omitted")
	}

	form.PreviousAddress = "Vill Palpara, PO Palpara"
	report = RenderDomicileReport(form)
	if !strings.Contains(report, "Previous Addr  : Vill Palpara, PO Palpara") {
		t.Fatal("previous address not rendered when set")
	}
}

func TestRenderEnquiryFormDispatch(t *testing.T) {
	if _, err := renderEnquiryForm("krishak-bandhu", sampleKrishakBandhuForm()); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if _, err := renderEnquiryForm("ration-card", nil); err == nil {
		t.Fatal("expected error for unknown form type")
	}
}
