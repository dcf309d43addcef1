package services

import (
	"database/sql"
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"panchayat/models"

	"golang.org/x/net/html"
)

// convertHTMLToText converts HTML content to plain text for email sending
func convertHTMLToText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		// If parsing fails, return the original content
		return htmlContent
	}

	var text strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3", "h4", "h5", "h6":
				text.WriteString("\n")
			case "li":
				text.WriteString("- ")
			case "table", "tr":
				text.WriteString("\n")
			case "td", "th":
				text.WriteString(" | ")
			}
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}

	extractText(doc)

	result := text.String()
	result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	result = strings.TrimSpace(result)

	return result
}

// EmailService handles email operations with template support
type EmailService struct {
	db *sql.DB
}

// NewEmailService creates a new email service instance
func NewEmailService(db *sql.DB) *EmailService {
	return &EmailService{db: db}
}

// SendTemplatedEmail sends an email using the default template for the given
// type with variable substitution.
func (es *EmailService) SendTemplatedEmail(templateType string, emailData models.EmailData) error {
	emailTemplate, err := models.GetDefaultTemplate(es.db, templateType)
	if err != nil {
		return fmt.Errorf("failed to get default template for type '%s': %v", templateType, err)
	}

	subject, err := es.processTemplate(emailTemplate.Subject, emailData)
	if err != nil {
		return fmt.Errorf("failed to process subject template: %v", err)
	}

	body, err := es.processTemplate(emailTemplate.Body, emailData)
	if err != nil {
		return fmt.Errorf("failed to process body template: %v", err)
	}

	plainTextBody := convertHTMLToText(body)

	return es.sendEmail(emailData.Email, subject, plainTextBody)
}

// processTemplate processes a template string with variable substitution
func (es *EmailService) processTemplate(templateStr string, data models.EmailData) (string, error) {
	variables := map[string]string{
		"applicant_name":         data.ApplicantName,
		"application_id":         data.ApplicationID,
		"acknowledgement_number": data.AcknowledgementNumber,
		"form_type":              data.FormType,
		"officer_name":           data.OfficerName,
		"panchayat_name":         data.PanchayatName,
		"support_email":          data.SupportEmail,
		"email":                  data.Email,
	}

	result := templateStr
	for key, value := range variables {
		placeholder := fmt.Sprintf("{{%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return result, nil
}

// sendEmail sends an email using SMTP. Credentials come from the environment
// so the portal deployment controls the sending account.
func (es *EmailService) sendEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}

	auth := smtp.PlainAuth("", user, password, host)

	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}

	msg := []byte(strings.Join(headers, "\r\n") + "\r\n")

	return smtp.SendMail(host+":"+port, auth, from, []string{to}, msg)
}

// SendEnquiryAcknowledgement mails the acknowledgement reference to the
// applicant after an enquiry report is recorded.
func (es *EmailService) SendEnquiryAcknowledgement(toEmail, applicantName, applicationID, ackNumber, formType string) error {
	emailData := models.EmailData{
		ApplicantName:         applicantName,
		ApplicationID:         applicationID,
		AcknowledgementNumber: ackNumber,
		FormType:              formType,
		PanchayatName:         os.Getenv("PANCHAYAT_NAME"),
		SupportEmail:          os.Getenv("SUPPORT_EMAIL"),
		Email:                 toEmail,
	}

	return es.SendTemplatedEmail("enquiry_ack", emailData)
}
