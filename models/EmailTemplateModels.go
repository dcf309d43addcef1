package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// EmailTemplate represents the email_templates table
type EmailTemplate struct {
	ID           int             `json:"id" example:"1"`
	Name         string          `json:"name" example:"Enquiry Acknowledgement"`
	Subject      string          `json:"subject" example:"Your enquiry report has been recorded"`
	Body         string          `json:"body" example:"Dear {{applicant_name}}, ..."`
	TemplateType string          `json:"template_type" example:"enquiry_ack"`
	IsDefault    bool            `json:"is_default" example:"true"`
	IsActive     bool            `json:"is_active" example:"true"`
	Variables    json.RawMessage `json:"variables"`
	CreatedBy    *int            `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt    time.Time       `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

// EmailData carries the variable values substituted into a template body.
type EmailData struct {
	ApplicantName         string `json:"applicant_name"`
	ApplicationID         string `json:"application_id"`
	AcknowledgementNumber string `json:"acknowledgement_number"`
	FormType              string `json:"form_type"`
	OfficerName           string `json:"officer_name"`
	PanchayatName         string `json:"panchayat_name"`
	SupportEmail          string `json:"support_email"`
	Email                 string `json:"email"`
}

// GetDefaultTemplate retrieves the default template for a given type
func GetDefaultTemplate(db *sql.DB, templateType string) (*EmailTemplate, error) {
	var template EmailTemplate
	query := `
		SELECT id, name, subject, body, template_type, is_default, is_active,
		       variables, created_by, created_at, updated_at
		FROM email_templates
		WHERE template_type = $1 AND is_default = true AND is_active = true
		ORDER BY created_at DESC
		LIMIT 1`

	err := db.QueryRow(query, templateType).Scan(
		&template.ID, &template.Name, &template.Subject, &template.Body,
		&template.TemplateType, &template.IsDefault, &template.IsActive,
		&template.Variables, &template.CreatedBy, &template.CreatedAt,
		&template.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &template, nil
}
