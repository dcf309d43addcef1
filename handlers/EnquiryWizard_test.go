package handlers

import (
	"testing"

	"panchayat/models"
)

func filledDomicileHeader() *models.DomicileEnquiry {
	return &models.DomicileEnquiry{
		ApplicationID: "APP-2025-000123",
		MemoNumber:    "GP/DOM/2025/118",
		EnquiryDate:   "2025-06-14",
		PoliceStation: "Krishnanagar",
	}
}

func TestGoToNextStepValidatesOnlyCurrentStep(t *testing.T) {
	def, ok := WizardDefinitionFor("domicile")
	if !ok {
		t.Fatal("domicile wizard definition missing")
	}
	w := NewWizardState(def)

	// Header filled, every later step still empty. Forward navigation must
	// still work because only the current step's fields gate the move.
	w.Form = filledDomicileHeader()

	errs, ok := w.GoToNextStep()
	if !ok {
		t.Fatalf("expected advance from step 0 with valid header, got errors %v", errs)
	}
	if w.CurrentStep != 1 {
		t.Fatalf("expected step 1, got %d", w.CurrentStep)
	}
}

func TestGoToNextStepBlockedByCurrentStepErrors(t *testing.T) {
	def, _ := WizardDefinitionFor("domicile")
	w := NewWizardState(def)

	form := filledDomicileHeader()
	form.MemoNumber = ""
	w.Form = form

	errs, ok := w.GoToNextStep()
	if ok {
		t.Fatal("expected advance to be blocked with empty memo number")
	}
	if w.CurrentStep != 0 {
		t.Fatalf("step changed on failed validation, got %d", w.CurrentStep)
	}
	if _, found := errs["memo_number"]; !found {
		t.Fatalf("expected memo_number error, got %v", errs)
	}
	if len(errs) != 1 {
		t.Fatalf("expected only the current step's error, got %v", errs)
	}
}

func TestGoToPreviousStepNeverValidates(t *testing.T) {
	def, _ := WizardDefinitionFor("domicile")
	w := NewWizardState(def)
	w.Form = filledDomicileHeader()

	if _, ok := w.GoToNextStep(); !ok {
		t.Fatal("expected advance from step 0")
	}

	// Blank out the header again; going back must still succeed.
	w.Form = &models.DomicileEnquiry{}
	if !w.GoToPreviousStep() {
		t.Fatal("expected previous step to succeed")
	}
	if w.CurrentStep != 0 {
		t.Fatalf("expected step 0, got %d", w.CurrentStep)
	}
	if w.GoToPreviousStep() {
		t.Fatal("expected previous step to fail at step 0")
	}
}

func TestCanSubmitOnlyOnFinalStep(t *testing.T) {
	for formType, def := range wizardDefinitions {
		w := NewWizardState(def)
		for step := 0; step < def.TotalSteps()-1; step++ {
			w.CurrentStep = step
			if w.CanSubmit() {
				t.Fatalf("%s: submit reachable from step %d of %d", formType, step, def.TotalSteps())
			}
		}
		w.CurrentStep = def.TotalSteps() - 1
		if !w.CanSubmit() {
			t.Fatalf("%s: submit not reachable from final step", formType)
		}
	}
}

func TestGoToNextStepStopsAtFinalStep(t *testing.T) {
	def, _ := WizardDefinitionFor("birth")
	w := NewWizardState(def)
	w.CurrentStep = def.TotalSteps() - 1

	if _, ok := w.GoToNextStep(); ok {
		t.Fatal("expected advance past final step to fail")
	}
	if w.CurrentStep != def.TotalSteps()-1 {
		t.Fatalf("step moved past final, got %d", w.CurrentStep)
	}
}

func TestValidateAllCatchesLaterStepFields(t *testing.T) {
	def, _ := WizardDefinitionFor("krishak-bandhu")
	w := NewWizardState(def)
	w.Form = &models.KrishakBandhuEnquiry{
		ApplicationID: "APP-2025-000310",
		MemoNumber:    "GP/KB/2025/092",
		EnquiryDate:   "2025-06-14",
	}

	errs := w.ValidateAll()
	if len(errs) == 0 {
		t.Fatal("expected full validation to report missing later-step fields")
	}
	if _, found := errs["farmer_name"]; !found {
		t.Fatalf("expected farmer_name error, got %v", errs)
	}
}

func TestRecommendationValueIsConstrained(t *testing.T) {
	def, _ := WizardDefinitionFor("domicile")
	w := NewWizardState(def)
	form := completeDomicileForm()
	form.Recommendation = "MAYBE"
	w.Form = form

	errs := w.ValidateStep(4)
	if _, found := errs["recommendation"]; !found {
		t.Fatalf("expected recommendation error, got %v", errs)
	}
}

func completeDomicileForm() *models.DomicileEnquiry {
	return &models.DomicileEnquiry{
		ApplicationID:     "APP-2025-000123",
		MemoNumber:        "GP/DOM/2025/118",
		EnquiryDate:       "2025-06-14",
		PoliceStation:     "Krishnanagar",
		ApplicantName:     "Sunita Das",
		GuardianName:      "Paritosh Das",
		Village:           "Rampur",
		PostOffice:        "Rampur",
		District:          "Nadia",
		ResidingSinceYear: 2004,
		Findings: []models.EnquiryFinding{
			{Question: "Period of continuous residence", Observation: "Residing at Rampur since 2004"},
		},
		DocumentsVerified: []models.VerifiedDocument{
			{DocumentType: "Aadhaar Card", DocumentNumber: "XXXX-XXXX-1234"},
		},
		Recommendation:     "RECOMMENDED",
		OfficerName:        "Anil Mondal",
		OfficerDesignation: "Panchayat Secretary",
	}
}

func TestCompleteWizardWalkthrough(t *testing.T) {
	def, _ := WizardDefinitionFor("domicile")
	w := NewWizardState(def)
	w.Form = completeDomicileForm()

	for step := 0; step < def.TotalSteps()-1; step++ {
		if errs, ok := w.GoToNextStep(); !ok {
			t.Fatalf("advance from step %d failed: %v", step, errs)
		}
	}
	if !w.CanSubmit() {
		t.Fatal("expected submit to be reachable after walking all steps")
	}
	if errs := w.ValidateAll(); len(errs) != 0 {
		t.Fatalf("expected clean full validation, got %v", errs)
	}
}
