package handlers

import (
	"fmt"
	"strings"

	"panchayat/models"
)

// Plain-text rendering of submitted enquiry forms. The output is the document
// that gets stored and printed, so the layout is fixed: same input, same
// bytes, every time.

const reportRule = "------------------------------------------------------------"

func writeHeaderBlock(b *strings.Builder, title, memoNumber, enquiryDate string) {
	b.WriteString(reportRule + "\n")
	b.WriteString(centerLine(title) + "\n")
	b.WriteString(reportRule + "\n")
	fmt.Fprintf(b, "Memo No    : %s\n", memoNumber)
	fmt.Fprintf(b, "Date       : %s\n", enquiryDate)
	b.WriteString("\n")
}

func centerLine(s string) string {
	const width = 60
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func writeFindings(b *strings.Builder, findings []models.EnquiryFinding) {
	b.WriteString("FINDINGS OF ENQUIRY\n")
	for i, f := range findings {
		fmt.Fprintf(b, "  %d. %s: %s\n", i+1, f.Question, f.Observation)
	}
	b.WriteString("\n")
}

func writeDocuments(b *strings.Builder, docs []models.VerifiedDocument) {
	b.WriteString("DOCUMENTS VERIFIED\n")
	for i, d := range docs {
		line := fmt.Sprintf("  %d. %s (%s)", i+1, d.DocumentType, d.DocumentNumber)
		if d.Remarks != "" {
			line += " - " + d.Remarks
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func writeSignatureBlock(b *strings.Builder, recommendation, officerName, officerDesignation string) {
	fmt.Fprintf(b, "RECOMMENDATION : %s\n\n", recommendation)
	b.WriteString("\n\n")
	fmt.Fprintf(b, "(%s)\n", officerName)
	b.WriteString(officerDesignation + "\n")
	b.WriteString(reportRule + "\n")
}

// RenderKrishakBandhuReport formats a Krishak Bandhu field enquiry as the
// plain-text report submitted to the enquiry-reports API.
func RenderKrishakBandhuReport(f *models.KrishakBandhuEnquiry) string {
	var b strings.Builder
	writeHeaderBlock(&b, "KRISHAK BANDHU FIELD ENQUIRY REPORT", f.MemoNumber, f.EnquiryDate)

	fmt.Fprintf(&b, "Application ID : %s\n\n", f.ApplicationID)

	b.WriteString("FARMER DETAILS\n")
	fmt.Fprintf(&b, "  Name          : %s\n", f.FarmerName)
	fmt.Fprintf(&b, "  Guardian      : %s\n", f.GuardianName)
	fmt.Fprintf(&b, "  Village       : %s\n", f.Village)
	fmt.Fprintf(&b, "  Mouza         : %s\n\n", f.Mouza)

	b.WriteString("LAND DETAILS\n")
	fmt.Fprintf(&b, "  Khatian No    : %s\n", f.KhatianNumber)
	fmt.Fprintf(&b, "  Plot No       : %s\n", f.PlotNumber)
	fmt.Fprintf(&b, "  Area (acre)   : %.2f\n", f.LandAreaAcre)
	fmt.Fprintf(&b, "  Cultivation   : %s\n\n", f.Cultivation)

	writeFindings(&b, f.Findings)

	b.WriteString("PERSONS PRESENT DURING ENQUIRY\n")
	for i, p := range f.Personnel {
		fmt.Fprintf(&b, "  %d. %s, %s\n", i+1, p.Name, p.Designation)
	}
	b.WriteString("\n")

	writeSignatureBlock(&b, f.Recommendation, f.OfficerName, f.OfficerDesignation)
	return b.String()
}

// RenderDomicileReport formats a domicile enquiry as plain text.
func RenderDomicileReport(f *models.DomicileEnquiry) string {
	var b strings.Builder
	writeHeaderBlock(&b, "DOMICILE CERTIFICATE ENQUIRY REPORT", f.MemoNumber, f.EnquiryDate)

	fmt.Fprintf(&b, "Application ID : %s\n", f.ApplicationID)
	fmt.Fprintf(&b, "Police Station : %s\n\n", f.PoliceStation)

	b.WriteString("APPLICANT DETAILS\n")
	fmt.Fprintf(&b, "  Name           : %s\n", f.ApplicantName)
	fmt.Fprintf(&b, "  Guardian       : %s\n", f.GuardianName)
	fmt.Fprintf(&b, "  Village        : %s\n", f.Village)
	fmt.Fprintf(&b, "  Post Office    : %s\n", f.PostOffice)
	fmt.Fprintf(&b, "  District       : %s\n", f.District)
	fmt.Fprintf(&b, "  Residing Since : %d\n", f.ResidingSinceYear)
	if f.PreviousAddress != "" {
		fmt.Fprintf(&b, "  Previous Addr  : %s\n", f.PreviousAddress)
	}
	if f.ApplicantOccupation != "" {
		fmt.Fprintf(&b, "  Occupation     : %s\n", f.ApplicantOccupation)
	}
	b.WriteString("\n")

	writeFindings(&b, f.Findings)
	writeDocuments(&b, f.DocumentsVerified)

	if f.FinalRemarks != "" {
		fmt.Fprintf(&b, "REMARKS : %s\n\n", f.FinalRemarks)
	}
	writeSignatureBlock(&b, f.Recommendation, f.OfficerName, f.OfficerDesignation)
	return b.String()
}

// RenderBirthReport formats a delayed birth registration enquiry as plain text.
func RenderBirthReport(f *models.BirthEnquiry) string {
	var b strings.Builder
	writeHeaderBlock(&b, "DELAYED BIRTH REGISTRATION ENQUIRY REPORT", f.MemoNumber, f.EnquiryDate)

	fmt.Fprintf(&b, "Application ID    : %s\n", f.ApplicationID)
	fmt.Fprintf(&b, "Registration Unit : %s\n\n", f.RegistrationUnit)

	b.WriteString("CHILD DETAILS\n")
	fmt.Fprintf(&b, "  Name           : %s\n", f.ChildName)
	fmt.Fprintf(&b, "  Date of Birth  : %s\n", f.DateOfBirth)
	fmt.Fprintf(&b, "  Place of Birth : %s\n", f.PlaceOfBirth)
	fmt.Fprintf(&b, "  Gender         : %s\n\n", f.Gender)

	b.WriteString("PARENT DETAILS\n")
	fmt.Fprintf(&b, "  Father  : %s\n", f.FatherName)
	fmt.Fprintf(&b, "  Mother  : %s\n", f.MotherName)
	fmt.Fprintf(&b, "  Address : %s\n\n", f.ParentAddress)

	writeDocuments(&b, f.Documents)
	writeSignatureBlock(&b, f.Recommendation, f.OfficerName, f.OfficerDesignation)
	return b.String()
}

// RenderDeathReport formats a delayed death registration enquiry as plain text.
func RenderDeathReport(f *models.DeathEnquiry) string {
	var b strings.Builder
	writeHeaderBlock(&b, "DELAYED DEATH REGISTRATION ENQUIRY REPORT", f.MemoNumber, f.EnquiryDate)

	fmt.Fprintf(&b, "Application ID    : %s\n", f.ApplicationID)
	fmt.Fprintf(&b, "Registration Unit : %s\n\n", f.RegistrationUnit)

	b.WriteString("DECEASED DETAILS\n")
	fmt.Fprintf(&b, "  Name           : %s\n", f.DeceasedName)
	fmt.Fprintf(&b, "  Date of Death  : %s\n", f.DateOfDeath)
	fmt.Fprintf(&b, "  Place of Death : %s\n", f.PlaceOfDeath)
	if f.CauseOfDeath != "" {
		fmt.Fprintf(&b, "  Cause of Death : %s\n", f.CauseOfDeath)
	}
	b.WriteString("\n")

	b.WriteString("INFORMANT DETAILS\n")
	fmt.Fprintf(&b, "  Name     : %s\n", f.InformantName)
	fmt.Fprintf(&b, "  Relation : %s\n", f.InformantRelation)
	fmt.Fprintf(&b, "  Address  : %s\n\n", f.InformantAddress)

	writeDocuments(&b, f.Documents)
	writeSignatureBlock(&b, f.Recommendation, f.OfficerName, f.OfficerDesignation)
	return b.String()
}

// renderEnquiryForm dispatches to the renderer for the draft's form type.
func renderEnquiryForm(formType string, form interface{}) (string, error) {
	switch formType {
	case "domicile":
		return RenderDomicileReport(form.(*models.DomicileEnquiry)), nil
	case "birth":
		return RenderBirthReport(form.(*models.BirthEnquiry)), nil
	case "death":
		return RenderDeathReport(form.(*models.DeathEnquiry)), nil
	case "krishak-bandhu":
		return RenderKrishakBandhuReport(form.(*models.KrishakBandhuEnquiry)), nil
	}
	return "", fmt.Errorf("unknown form type %s", formType)
}
