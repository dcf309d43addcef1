package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"panchayat/models"
	"panchayat/repository"
	"panchayat/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// wizardDraft is one stored enquiry draft plus its owner.
type wizardDraft struct {
	State     *WizardState
	CreatedBy int
	CreatedAt time.Time
}

// wizardDraftManager keeps in-progress enquiry drafts in memory, keyed by
// draft ID. Drafts live until submitted or discarded.
type wizardDraftManager struct {
	mu     sync.RWMutex
	drafts map[string]*wizardDraft
}

var enquiryDrafts = &wizardDraftManager{drafts: map[string]*wizardDraft{}}

func (m *wizardDraftManager) put(id string, d *wizardDraft) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[id] = d
}

func (m *wizardDraftManager) get(id string) (*wizardDraft, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.drafts[id]
	return d, ok
}

func (m *wizardDraftManager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
}

func wizardStateJSON(draftID string, d *wizardDraft) gin.H {
	w := d.State
	return gin.H{
		"draftId":     draftID,
		"formType":    w.Definition.FormType,
		"currentStep": w.CurrentStep,
		"totalSteps":  w.Definition.TotalSteps(),
		"stepName":    w.Definition.StepNames[w.CurrentStep],
		"stepNames":   w.Definition.StepNames,
		"canSubmit":   w.CanSubmit(),
		"form":        w.Form,
	}
}

// CreateEnquiryDraft godoc
// @Summary      Start an enquiry form draft
// @Description  Creates a step-0 draft of the given enquiry form type
// @Tags         enquiry
// @Param        form_type  path  string  true  "Form type"  Enums(domicile, birth, death, krishak-bandhu)
// @Success      201  {object}  object
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/enquiry/{form_type}/drafts [post]
func CreateEnquiryDraft(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}
		session, _, err := GetSessionDetails(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		formType := c.Param("form_type")
		def, ok := WizardDefinitionFor(formType)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown enquiry form type", "details": formType})
			return
		}

		draftID := uuid.New().String()
		draft := &wizardDraft{
			State:     NewWizardState(def),
			CreatedBy: session.UserID,
			CreatedAt: time.Now(),
		}
		enquiryDrafts.put(draftID, draft)

		c.JSON(http.StatusCreated, wizardStateJSON(draftID, draft))
	}
}

// GetEnquiryDraft godoc
// @Summary      Get an enquiry draft
// @Tags         enquiry
// @Param        id  path  string  true  "Draft ID"
// @Success      200  {object}  object
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/enquiry/drafts/{id} [get]
func GetEnquiryDraft() gin.HandlerFunc {
	return func(c *gin.Context) {
		draftID := c.Param("id")
		draft, ok := enquiryDrafts.get(draftID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
			return
		}
		c.JSON(http.StatusOK, wizardStateJSON(draftID, draft))
	}
}

// UpdateEnquiryDraft godoc
// @Summary      Save field values onto an enquiry draft
// @Description  Merges the JSON body into the draft form without validating.
//               Validation happens on step navigation and on submit.
// @Tags         enquiry
// @Param        id  path  string  true  "Draft ID"
// @Success      200  {object}  object
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/enquiry/drafts/{id} [put]
func UpdateEnquiryDraft() gin.HandlerFunc {
	return func(c *gin.Context) {
		draftID := c.Param("id")
		draft, ok := enquiryDrafts.get(draftID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
			return
		}

		// Decoding onto the existing form leaves absent fields untouched,
		// so a step can be saved without resending earlier steps.
		if err := c.ShouldBindJSON(draft.State.Form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form payload", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, wizardStateJSON(draftID, draft))
	}
}

// EnquiryDraftNextStep godoc
// @Summary      Advance an enquiry draft to the next step
// @Description  Validates only the current step's required fields before moving
// @Tags         enquiry
// @Param        id  path  string  true  "Draft ID"
// @Success      200  {object}  object
// @Failure      400  {object}  object
// @Router       /api/enquiry/drafts/{id}/next [put]
func EnquiryDraftNextStep() gin.HandlerFunc {
	return func(c *gin.Context) {
		draftID := c.Param("id")
		draft, ok := enquiryDrafts.get(draftID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
			return
		}

		if errs, moved := draft.State.GoToNextStep(); !moved {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":       "Current step is incomplete",
				"fieldErrors": errs,
				"currentStep": draft.State.CurrentStep,
			})
			return
		}
		c.JSON(http.StatusOK, wizardStateJSON(draftID, draft))
	}
}

// EnquiryDraftPreviousStep godoc
// @Summary      Move an enquiry draft back one step
// @Tags         enquiry
// @Param        id  path  string  true  "Draft ID"
// @Success      200  {object}  object
// @Router       /api/enquiry/drafts/{id}/previous [put]
func EnquiryDraftPreviousStep() gin.HandlerFunc {
	return func(c *gin.Context) {
		draftID := c.Param("id")
		draft, ok := enquiryDrafts.get(draftID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
			return
		}

		if !draft.State.GoToPreviousStep() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Already at the first step"})
			return
		}
		c.JSON(http.StatusOK, wizardStateJSON(draftID, draft))
	}
}

// applicationIDOf pulls the application ID off whichever form type the draft
// holds.
func applicationIDOf(form interface{}) string {
	switch f := form.(type) {
	case *models.DomicileEnquiry:
		return f.ApplicationID
	case *models.BirthEnquiry:
		return f.ApplicationID
	case *models.DeathEnquiry:
		return f.ApplicationID
	case *models.KrishakBandhuEnquiry:
		return f.ApplicationID
	}
	return ""
}

func applicantNameOf(form interface{}) string {
	switch f := form.(type) {
	case *models.DomicileEnquiry:
		return f.ApplicantName
	case *models.BirthEnquiry:
		return f.FatherName
	case *models.DeathEnquiry:
		return f.InformantName
	case *models.KrishakBandhuEnquiry:
		return f.FarmerName
	}
	return ""
}

type submitEnquiryRequest struct {
	ApplicantEmail string `json:"applicantEmail"`
}

// SubmitEnquiryDraft godoc
// @Summary      Submit a completed enquiry draft
// @Description  Only allowed from the final wizard step. Re-validates the whole
//               form, renders the plain-text report, stores it and issues an
//               acknowledgement number.
// @Tags         enquiry
// @Param        id  path  string  true  "Draft ID"
// @Success      201  {object}  object
// @Failure      400  {object}  object
// @Failure      409  {object}  models.ErrorResponse
// @Router       /api/enquiry/drafts/{id}/submit [post]
func SubmitEnquiryDraft(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}
		session, userName, err := GetSessionDetails(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		draftID := c.Param("id")
		draft, ok := enquiryDrafts.get(draftID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
			return
		}

		if !draft.State.CanSubmit() {
			c.JSON(http.StatusConflict, gin.H{
				"error":       "Draft is not on its final step",
				"currentStep": draft.State.CurrentStep,
				"totalSteps":  draft.State.Definition.TotalSteps(),
			})
			return
		}

		if errs := draft.State.ValidateAll(); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Form is incomplete", "fieldErrors": errs})
			return
		}

		var req submitEnquiryRequest
		_ = c.ShouldBindJSON(&req)

		formType := draft.State.Definition.FormType
		reportText, err := renderEnquiryForm(formType, draft.State.Form)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report", "details": err.Error()})
			return
		}

		applicationID := applicationIDOf(draft.State.Form)
		ackNumber := repository.GenerateAcknowledgementNumber()

		var reportID int
		insertQuery := `
			INSERT INTO enquiry_reports (application_id, user_id, form_type, report, acknowledgement_number, created_at)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
		err = db.QueryRow(insertQuery,
			applicationID, session.UserID, formType, reportText, ackNumber, time.Now(),
		).Scan(&reportID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save enquiry report", "details": err.Error()})
			return
		}

		applicantName := applicantNameOf(draft.State.Form)
		enquiryDrafts.remove(draftID)

		c.JSON(http.StatusCreated, gin.H{
			"id":                    reportID,
			"applicationId":         applicationID,
			"formType":              formType,
			"acknowledgementNumber": ackNumber,
			"report":                reportText,
		})

		if req.ApplicantEmail != "" {
			go func(email, name string) {
				emailService := services.NewEmailService(db)
				if err := emailService.SendEnquiryAcknowledgement(email, name, applicationID, ackNumber, formType); err != nil {
					log.Printf("Failed to send acknowledgement email for %s: %v", applicationID, err)
				}
			}(req.ApplicantEmail, applicantName)
		}

		activityLog := models.ActivityLog{
			CreatedAt:     time.Now(),
			UserName:      userName,
			HostName:      session.HostName,
			EventContext:  "Enquiry Report",
			IPAddress:     session.IPAddress,
			Description:   "Submitted " + formType + " enquiry report " + ackNumber,
			EventName:     "submit",
			ApplicationID: applicationID,
		}
		if err := SaveActivityLog(db, activityLog); err != nil {
			log.Printf("Failed to save activity log: %v", err)
		}
	}
}

// PostEnquiryReport godoc
// @Summary      Record a pre-formatted enquiry report
// @Description  Accepts a multipart form with the plain-text report and its
//               application ID, stores it and returns an acknowledgement number
// @Tags         enquiry
// @Accept       mpfd
// @Param        report         formData  string  true   "Plain text report"
// @Param        applicationId  formData  string  true   "Application ID"
// @Param        userId         formData  string  false  "Submitting user ID"
// @Success      201  {object}  object
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/enquiry-reports [post]
func PostEnquiryReport(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}
		session, userName, err := GetSessionDetails(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		report := strings.TrimSpace(c.PostForm("report"))
		applicationID := strings.TrimSpace(c.PostForm("applicationId"))
		userID := strings.TrimSpace(c.PostForm("userId"))

		if report == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "report is required"})
			return
		}
		if applicationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "applicationId is required"})
			return
		}
		if userID == "" {
			userID = "0"
		}

		formType := strings.TrimSpace(c.PostForm("formType"))
		if formType == "" {
			formType = "krishak-bandhu"
		}

		ackNumber := repository.GenerateAcknowledgementNumber()

		var reportID int
		insertQuery := `
			INSERT INTO enquiry_reports (application_id, user_id, form_type, report, acknowledgement_number, created_at)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
		err = db.QueryRow(insertQuery,
			applicationID, userID, formType, report, ackNumber, time.Now(),
		).Scan(&reportID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save enquiry report", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":                    reportID,
			"applicationId":         applicationID,
			"acknowledgementNumber": ackNumber,
		})

		activityLog := models.ActivityLog{
			CreatedAt:     time.Now(),
			UserName:      userName,
			HostName:      session.HostName,
			EventContext:  "Enquiry Report",
			IPAddress:     session.IPAddress,
			Description:   "Recorded enquiry report " + ackNumber,
			EventName:     "create",
			ApplicationID: applicationID,
		}
		if err := SaveActivityLog(db, activityLog); err != nil {
			log.Printf("Failed to save activity log: %v", err)
		}
	}
}

// GetEnquiryReports godoc
// @Summary      List recorded enquiry reports
// @Tags         enquiry
// @Param        application_id  query  string  false  "Filter by application ID"
// @Success      200  {object}  object
// @Router       /api/enquiry-reports [get]
func GetEnquiryReports(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		applicationID := strings.TrimSpace(c.Query("application_id"))

		query := `
			SELECT id, application_id, user_id, form_type, report, acknowledgement_number, created_at
			FROM enquiry_reports`
		args := []interface{}{}
		if applicationID != "" {
			query += " WHERE application_id = $1"
			args = append(args, applicationID)
		}
		query += " ORDER BY created_at DESC"

		rows, err := db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query enquiry reports", "details": err.Error()})
			return
		}
		defer rows.Close()

		reports := []models.EnquiryReport{}
		for rows.Next() {
			var r models.EnquiryReport
			var userID sql.NullString
			if err := rows.Scan(&r.ID, &r.ApplicationID, &userID, &r.FormType, &r.Report, &r.AcknowledgementNumber, &r.CreatedAt); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan enquiry report", "details": err.Error()})
				return
			}
			r.UserID = getStringOrEmpty(userID)
			reports = append(reports, r)
		}

		c.JSON(http.StatusOK, gin.H{"reports": reports, "count": len(reports)})
	}
}
