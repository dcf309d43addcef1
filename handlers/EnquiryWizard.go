package handlers

import (
	"fmt"
	"reflect"
	"strings"

	"panchayat/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report errors under the json field name so clients can map them back
	// onto inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// WizardDefinition describes one enquiry form type: its ordered steps and
// which struct fields gate each step. The state machine is the same for all
// forms; only this table differs.
type WizardDefinition struct {
	FormType  string
	StepNames []string
	// StepFields maps a step index to the Go field names validated before
	// leaving that step. Fields of later steps never block an earlier one.
	StepFields map[int][]string
	NewForm    func() interface{}
}

// TotalSteps returns the number of wizard steps for this form type.
func (d *WizardDefinition) TotalSteps() int {
	return len(d.StepNames)
}

// WizardState is one in-progress enquiry draft walking through its steps.
// Transitions are strictly one step at a time via Next/Previous; submission
// is only reachable from the last step.
type WizardState struct {
	Definition  *WizardDefinition
	CurrentStep int
	Form        interface{}
}

// NewWizardState starts a draft at step 0 with an empty form.
func NewWizardState(def *WizardDefinition) *WizardState {
	return &WizardState{Definition: def, Form: def.NewForm()}
}

// fieldErrorsFrom converts validator errors into json-name keyed messages.
func fieldErrorsFrom(err error) models.FieldErrors {
	errs := models.FieldErrors{}
	if err == nil {
		return errs
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_form"] = err.Error()
		return errs
	}
	for _, fe := range validationErrors {
		errs[fe.Field()] = fmt.Sprintf("failed validation on '%s'", fe.Tag())
	}
	return errs
}

// ValidateStep validates only the fields gating the given step.
func (w *WizardState) ValidateStep(step int) models.FieldErrors {
	fields := w.Definition.StepFields[step]
	if len(fields) == 0 {
		return models.FieldErrors{}
	}
	return fieldErrorsFrom(validate.StructPartial(w.Form, fields...))
}

// GoToNextStep validates the current step's required fields and advances
// exactly one step when they pass. On failure the step does not change and
// the field errors are returned.
func (w *WizardState) GoToNextStep() (models.FieldErrors, bool) {
	if w.CurrentStep >= w.Definition.TotalSteps()-1 {
		return models.FieldErrors{"_form": "already at the final step"}, false
	}
	errs := w.ValidateStep(w.CurrentStep)
	if len(errs) > 0 {
		return errs, false
	}
	w.CurrentStep++
	return nil, true
}

// GoToPreviousStep moves back one step without validating anything.
func (w *WizardState) GoToPreviousStep() bool {
	if w.CurrentStep == 0 {
		return false
	}
	w.CurrentStep--
	return true
}

// CanSubmit reports whether the draft sits on its final step. Submission
// attempts from any earlier step are rejected, which is what neuters
// accidental mid-wizard submits.
func (w *WizardState) CanSubmit() bool {
	return w.CurrentStep == w.Definition.TotalSteps()-1
}

// ValidateAll re-validates the entire form before the submit persists.
func (w *WizardState) ValidateAll() models.FieldErrors {
	return fieldErrorsFrom(validate.Struct(w.Form))
}

// wizardDefinitions maps a form-type slug to its wizard table.
var wizardDefinitions = map[string]*WizardDefinition{
	"domicile": {
		FormType:  "domicile",
		StepNames: []string{"Header", "Applicant", "Findings", "Documents", "Final"},
		StepFields: map[int][]string{
			0: {"ApplicationID", "MemoNumber", "EnquiryDate", "PoliceStation"},
			1: {"ApplicantName", "GuardianName", "Village", "PostOffice", "District", "ResidingSinceYear"},
			2: {"Findings"},
			3: {"DocumentsVerified"},
			4: {"Recommendation", "OfficerName", "OfficerDesignation"},
		},
		NewForm: func() interface{} { return &models.DomicileEnquiry{} },
	},
	"birth": {
		FormType:  "birth",
		StepNames: []string{"Header", "Child", "Parents", "Final"},
		StepFields: map[int][]string{
			0: {"ApplicationID", "MemoNumber", "EnquiryDate", "RegistrationUnit"},
			1: {"ChildName", "DateOfBirth", "PlaceOfBirth", "Gender"},
			2: {"FatherName", "MotherName", "ParentAddress", "Documents"},
			3: {"Recommendation", "OfficerName", "OfficerDesignation"},
		},
		NewForm: func() interface{} { return &models.BirthEnquiry{} },
	},
	"death": {
		FormType:  "death",
		StepNames: []string{"Header", "Deceased", "Informant", "Final"},
		StepFields: map[int][]string{
			0: {"ApplicationID", "MemoNumber", "EnquiryDate", "RegistrationUnit"},
			1: {"DeceasedName", "DateOfDeath", "PlaceOfDeath"},
			2: {"InformantName", "InformantRelation", "InformantAddress", "Documents"},
			3: {"Recommendation", "OfficerName", "OfficerDesignation"},
		},
		NewForm: func() interface{} { return &models.DeathEnquiry{} },
	},
	"krishak-bandhu": {
		FormType:  "krishak-bandhu",
		StepNames: []string{"Header", "Farmer", "Land", "Findings", "Final"},
		StepFields: map[int][]string{
			0: {"ApplicationID", "MemoNumber", "EnquiryDate"},
			1: {"FarmerName", "GuardianName", "Village", "Mouza"},
			2: {"KhatianNumber", "PlotNumber", "LandAreaAcre", "Cultivation"},
			3: {"Findings", "Personnel"},
			4: {"Recommendation", "OfficerName", "OfficerDesignation"},
		},
		NewForm: func() interface{} { return &models.KrishakBandhuEnquiry{} },
	},
}

// WizardDefinitionFor returns the wizard table for a form-type slug.
func WizardDefinitionFor(formType string) (*WizardDefinition, bool) {
	def, ok := wizardDefinitions[formType]
	return def, ok
}
