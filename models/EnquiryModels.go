package models

import "time"

// Enquiry/verification form schemas. Validation is driven by the validate
// tags (go-playground/validator); the wizard in handlers validates only the
// fields that belong to the current step, so a half-filled later step never
// blocks forward navigation of an earlier one.

// VerifiedDocument is one entry of the documents-verified sub-list.
type VerifiedDocument struct {
	DocumentType   string `json:"document_type" validate:"required" example:"Aadhaar Card"`
	DocumentNumber string `json:"document_number" validate:"required" example:"XXXX-XXXX-1234"`
	Remarks        string `json:"remarks" example:"Original verified"`
}

// EnquiryFinding is one observation recorded during field enquiry.
type EnquiryFinding struct {
	Question    string `json:"question" validate:"required" example:"Period of continuous residence"`
	Observation string `json:"observation" validate:"required" example:"Residing at Rampur since 2004"`
}

// EnquiryPersonnel is one person present during the enquiry visit.
type EnquiryPersonnel struct {
	Name        string `json:"name" validate:"required" example:"Bimal Ghosh"`
	Designation string `json:"designation" validate:"required" example:"Ward Member"`
}

// DomicileEnquiry is the 5-step domicile certificate enquiry report.
// Steps: Header, Applicant, Findings, Documents, Final.
type DomicileEnquiry struct {
	// Header
	ApplicationID string `json:"application_id" validate:"required" example:"APP-2025-000123"`
	MemoNumber    string `json:"memo_number" validate:"required" example:"GP/DOM/2025/118"`
	EnquiryDate   string `json:"enquiry_date" validate:"required" example:"2025-06-14"`
	PoliceStation string `json:"police_station" validate:"required" example:"Krishnanagar"`

	// Applicant
	ApplicantName       string `json:"applicant_name" validate:"required" example:"Sunita Das"`
	GuardianName        string `json:"guardian_name" validate:"required" example:"Paritosh Das"`
	Village             string `json:"village" validate:"required" example:"Rampur"`
	PostOffice          string `json:"post_office" validate:"required" example:"Rampur"`
	District            string `json:"district" validate:"required" example:"Nadia"`
	ResidingSinceYear   int    `json:"residing_since_year" validate:"required,gte=1900" example:"2004"`
	PreviousAddress     string `json:"previous_address" example:""`
	ApplicantOccupation string `json:"applicant_occupation" example:"Weaver"`

	// Findings
	Findings []EnquiryFinding `json:"findings" validate:"required,min=1,dive"`

	// Documents
	DocumentsVerified []VerifiedDocument `json:"documents_verified" validate:"required,min=1,dive"`

	// Final
	Recommendation     string `json:"recommendation" validate:"required,oneof=RECOMMENDED NOT_RECOMMENDED" example:"RECOMMENDED"`
	OfficerName        string `json:"officer_name" validate:"required" example:"Anil Mondal"`
	OfficerDesignation string `json:"officer_designation" validate:"required" example:"Panchayat Secretary"`
	FinalRemarks       string `json:"final_remarks" example:""`
}

// BirthEnquiry is the delayed birth registration enquiry report.
// Steps: Header, Child, Parents, Final.
type BirthEnquiry struct {
	// Header
	ApplicationID    string `json:"application_id" validate:"required" example:"APP-2025-000201"`
	MemoNumber       string `json:"memo_number" validate:"required" example:"GP/BRT/2025/044"`
	EnquiryDate      string `json:"enquiry_date" validate:"required" example:"2025-06-14"`
	RegistrationUnit string `json:"registration_unit" validate:"required" example:"Rampur Gram Panchayat"`

	// Child
	ChildName    string `json:"child_name" validate:"required" example:"Riya Das"`
	DateOfBirth  string `json:"date_of_birth" validate:"required" example:"2019-02-11"`
	PlaceOfBirth string `json:"place_of_birth" validate:"required" example:"At home, Rampur"`
	Gender       string `json:"gender" validate:"required,oneof=MALE FEMALE OTHER" example:"FEMALE"`

	// Parents
	FatherName    string             `json:"father_name" validate:"required" example:"Paritosh Das"`
	MotherName    string             `json:"mother_name" validate:"required" example:"Sunita Das"`
	ParentAddress string             `json:"parent_address" validate:"required" example:"Vill Rampur, PO Rampur"`
	Documents     []VerifiedDocument `json:"documents_verified" validate:"required,min=1,dive"`

	// Final
	Recommendation     string `json:"recommendation" validate:"required,oneof=RECOMMENDED NOT_RECOMMENDED" example:"RECOMMENDED"`
	OfficerName        string `json:"officer_name" validate:"required" example:"Anil Mondal"`
	OfficerDesignation string `json:"officer_designation" validate:"required" example:"Panchayat Secretary"`
}

// DeathEnquiry is the delayed death registration enquiry report.
// Steps: Header, Deceased, Informant, Final.
type DeathEnquiry struct {
	// Header
	ApplicationID    string `json:"application_id" validate:"required" example:"APP-2025-000202"`
	MemoNumber       string `json:"memo_number" validate:"required" example:"GP/DTH/2025/017"`
	EnquiryDate      string `json:"enquiry_date" validate:"required" example:"2025-06-14"`
	RegistrationUnit string `json:"registration_unit" validate:"required" example:"Rampur Gram Panchayat"`

	// Deceased
	DeceasedName string `json:"deceased_name" validate:"required" example:"Nirmal Biswas"`
	DateOfDeath  string `json:"date_of_death" validate:"required" example:"2021-08-30"`
	PlaceOfDeath string `json:"place_of_death" validate:"required" example:"At home, Rampur"`
	CauseOfDeath string `json:"cause_of_death" example:"Old age"`

	// Informant
	InformantName     string             `json:"informant_name" validate:"required" example:"Kajal Biswas"`
	InformantRelation string             `json:"informant_relation" validate:"required" example:"Son"`
	InformantAddress  string             `json:"informant_address" validate:"required" example:"Vill Rampur, PO Rampur"`
	Documents         []VerifiedDocument `json:"documents_verified" validate:"required,min=1,dive"`

	// Final
	Recommendation     string `json:"recommendation" validate:"required,oneof=RECOMMENDED NOT_RECOMMENDED" example:"RECOMMENDED"`
	OfficerName        string `json:"officer_name" validate:"required" example:"Anil Mondal"`
	OfficerDesignation string `json:"officer_designation" validate:"required" example:"Panchayat Secretary"`
}

// KrishakBandhuEnquiry is the Krishak Bandhu scheme field-enquiry report.
// Steps: Header, Farmer, Land, Findings, Final. Its submission is rendered to
// a plain-text report document before it reaches the enquiry-reports API.
type KrishakBandhuEnquiry struct {
	// Header
	ApplicationID string `json:"application_id" validate:"required" example:"APP-2025-000310"`
	MemoNumber    string `json:"memo_number" validate:"required" example:"GP/KB/2025/092"`
	EnquiryDate   string `json:"enquiry_date" validate:"required" example:"2025-06-14"`

	// Farmer
	FarmerName   string `json:"farmer_name" validate:"required" example:"Haripada Mandal"`
	GuardianName string `json:"guardian_name" validate:"required" example:"Late Gopal Mandal"`
	Village      string `json:"village" validate:"required" example:"Rampur"`
	Mouza        string `json:"mouza" validate:"required" example:"Rampur"`

	// Land
	KhatianNumber string  `json:"khatian_number" validate:"required" example:"1042"`
	PlotNumber    string  `json:"plot_number" validate:"required" example:"388"`
	LandAreaAcre  float64 `json:"land_area_acre" validate:"required,gt=0" example:"1.35"`
	Cultivation   string  `json:"cultivation" validate:"required" example:"Paddy, two crops"`

	// Findings
	Findings  []EnquiryFinding   `json:"findings" validate:"required,min=1,dive"`
	Personnel []EnquiryPersonnel `json:"personnel" validate:"required,min=1,dive"`

	// Final
	Recommendation     string `json:"recommendation" validate:"required,oneof=RECOMMENDED NOT_RECOMMENDED" example:"RECOMMENDED"`
	OfficerName        string `json:"officer_name" validate:"required" example:"Anil Mondal"`
	OfficerDesignation string `json:"officer_designation" validate:"required" example:"Panchayat Secretary"`
}

// EnquiryReport is a persisted enquiry submission: the pre-formatted plain
// text report plus routing fields, as posted to /api/enquiry-reports.
type EnquiryReport struct {
	ID                    int       `json:"id" example:"1"`
	ApplicationID         string    `json:"application_id" example:"APP-2025-000123"`
	UserID                string    `json:"user_id,omitempty" example:"14"`
	FormType              string    `json:"form_type" example:"domicile"`
	Report                string    `json:"report"`
	AcknowledgementNumber string    `json:"acknowledgement_number" example:"ACK-8f2e1c3a"`
	CreatedAt             time.Time `json:"created_at" example:"2025-06-14T11:02:00Z"`
}

// FieldErrors maps a field's JSON name to its validation message.
type FieldErrors map[string]string
