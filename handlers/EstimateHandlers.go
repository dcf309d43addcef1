package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"panchayat/models"
	"panchayat/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// estimateDraftManager holds the in-progress estimate builders keyed by
// estimate ID. Drafts live in memory until the estimate is saved; one office
// session works on a draft at a time but the map itself is shared.
type estimateDraftManager struct {
	mu     sync.RWMutex
	drafts map[string]*EstimateBuilder
}

var draftManager = &estimateDraftManager{drafts: make(map[string]*EstimateBuilder)}

func (m *estimateDraftManager) get(id string) (*EstimateBuilder, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.drafts[id]
	return b, ok
}

func (m *estimateDraftManager) put(id string, b *EstimateBuilder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[id] = b
}

func (m *estimateDraftManager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
}

type createEstimateRequest struct {
	ProjectName   string  `json:"project_name" binding:"required"`
	Location      string  `json:"location" binding:"required"`
	EstimateType  string  `json:"estimate_type" binding:"required"`
	FinancialYear string  `json:"financial_year" binding:"required"`
	Length        float64 `json:"length"`
	Width         float64 `json:"width"`
	Depth         float64 `json:"depth"`
	Capacity      float64 `json:"capacity"`
}

// fetchEstimateType loads the estimate-type descriptor that says which
// dimension fields this kind of work requires.
func fetchEstimateType(db *sql.DB, code string) (*models.EstimateType, error) {
	var et models.EstimateType
	err := db.QueryRow(`
		SELECT code, name, requires_length, requires_width, requires_depth, requires_capacity
		FROM estimate_types WHERE code = $1`, code).
		Scan(&et.Code, &et.Name, &et.RequiresLength, &et.RequiresWidth, &et.RequiresDepth, &et.RequiresCapacity)
	if err != nil {
		return nil, err
	}
	return &et, nil
}

// CreateEstimate starts a new work-estimate draft.
// @Summary Create estimate draft
// @Description Starts a work estimate/DPR draft for the given estimate type. Requires Authorization header.
// @Tags Estimates
// @Accept json
// @Produce json
// @Success 201 {object} models.DPRData
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/development-works/estimates [post]
func CreateEstimate(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session-id header is required"})
			return
		}

		_, userName, err := GetSessionDetails(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session", "details": err.Error()})
			return
		}

		var req createEstimateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON input", "details": err.Error()})
			return
		}

		estimateType, err := fetchEstimateType(db, req.EstimateType)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown estimate type"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch estimate type", "details": err.Error()})
			return
		}

		// Dimension requirements depend on the estimate type descriptor.
		if estimateType.RequiresLength && req.Length <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "length is required for this estimate type"})
			return
		}
		if estimateType.RequiresWidth && req.Width <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "width is required for this estimate type"})
			return
		}
		if estimateType.RequiresDepth && req.Depth <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "depth is required for this estimate type"})
			return
		}
		if estimateType.RequiresCapacity && req.Capacity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "capacity is required for this estimate type"})
			return
		}

		estimateID := repository.GenerateEstimateID()
		builder := NewEstimateBuilder(estimateID, req.ProjectName, req.Location, req.EstimateType, req.FinancialYear, userName)
		builder.DPR.Length = req.Length
		builder.DPR.Width = req.Width
		builder.DPR.Depth = req.Depth
		builder.DPR.Capacity = req.Capacity

		draftManager.put(estimateID, builder)

		c.JSON(http.StatusCreated, builder.DPR)
	}
}

// AddEstimateWorkItem applies a schedule rate with a quantity to a draft.
// @Summary Add work item
// @Description Adds a schedule rate line to the draft. Quantity must be positive.
// @Tags Estimates
// @Accept json
// @Produce json
// @Param id path string true "Estimate ID"
// @Param body body models.AddWorkItemRequest true "Work item data"
// @Success 200 {object} models.DPRData
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/development-works/estimates/{id}/items [post]
func AddEstimateWorkItem(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		estimateID := c.Param("id")
		builder, ok := draftManager.get(estimateID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Estimate draft not found"})
			return
		}

		var req models.AddWorkItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a positive number", "details": err.Error()})
			return
		}

		var rate models.ScheduleRate
		err := db.QueryRow(`
			SELECT id, code, description, unit, rate, category
			FROM schedule_rates WHERE id = $1`, req.ScheduleRateID).
			Scan(&rate.ID, &rate.Code, &rate.Description, &rate.Unit, &rate.Rate, &rate.Category)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "Schedule rate not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule rate", "details": err.Error()})
			return
		}

		builder.AddWorkItem(rate, req.Quantity)
		c.JSON(http.StatusOK, builder.DPR)
	}
}

// UpdateEstimateWorkItem changes a work item quantity and recomputes the subtotal.
// @Summary Update work item quantity
// @Tags Estimates
// @Accept json
// @Produce json
// @Param id path string true "Estimate ID"
// @Param item_id path string true "Work item ID"
// @Param body body models.UpdateQuantityRequest true "New quantity"
// @Success 200 {object} models.DPRData
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/development-works/estimates/{id}/items/{item_id} [put]
func UpdateEstimateWorkItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		builder, ok := draftManager.get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Estimate draft not found"})
			return
		}

		var req models.UpdateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a positive number", "details": err.Error()})
			return
		}

		if err := builder.UpdateQuantity(c.Param("item_id"), req.Quantity); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, builder.DPR)
	}
}

// DeleteEstimateWorkItem removes a work item from a draft.
// @Summary Remove work item
// @Tags Estimates
// @Produce json
// @Param id path string true "Estimate ID"
// @Param item_id path string true "Work item ID"
// @Success 200 {object} models.DPRData
// @Failure 404 {object} models.ErrorResponse
// @Router /api/development-works/estimates/{id}/items/{item_id} [delete]
func DeleteEstimateWorkItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		builder, ok := draftManager.get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Estimate draft not found"})
			return
		}

		if err := builder.RemoveWorkItem(c.Param("item_id")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, builder.DPR)
	}
}

type chargesRequest struct {
	SGST        *float64 `json:"sgst"`
	CGST        *float64 `json:"cgst"`
	LabourCess  *float64 `json:"labourCess"`
	Contingency *float64 `json:"contingency"`
}

// GetEstimateBreakdown returns the draft with its derived cost breakdown.
// Charge percentages can be overridden per call via query-less JSON body on
// PUT /charges; the GET uses whatever the draft holds.
// @Summary Get cost breakdown
// @Tags Estimates
// @Produce json
// @Param id path string true "Estimate ID"
// @Success 200 {object} object
// @Failure 404 {object} models.ErrorResponse
// @Router /api/development-works/estimates/{id}/breakdown [get]
func GetEstimateBreakdown() gin.HandlerFunc {
	return func(c *gin.Context) {
		builder, ok := draftManager.get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Estimate draft not found"})
			return
		}

		breakdown := CalculateTotalWithCharges(builder.DPR.EstimatedCost, builder.DPR.Charges)
		c.JSON(http.StatusOK, gin.H{
			"estimate":  builder.DPR,
			"breakdown": breakdown,
		})
	}
}

// UpdateEstimateCharges sets the percentage charges on a draft.
// @Summary Update additional charges
// @Tags Estimates
// @Accept json
// @Produce json
// @Param id path string true "Estimate ID"
// @Success 200 {object} models.CostBreakdown
// @Failure 404 {object} models.ErrorResponse
// @Router /api/development-works/estimates/{id}/charges [put]
func UpdateEstimateCharges() gin.HandlerFunc {
	return func(c *gin.Context) {
		builder, ok := draftManager.get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Estimate draft not found"})
			return
		}

		var req chargesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON input", "details": err.Error()})
			return
		}

		if req.SGST != nil {
			builder.DPR.Charges.SGST = *req.SGST
		}
		if req.CGST != nil {
			builder.DPR.Charges.CGST = *req.CGST
		}
		if req.LabourCess != nil {
			builder.DPR.Charges.LabourCess = *req.LabourCess
		}
		if req.Contingency != nil {
			builder.DPR.Charges.Contingency = *req.Contingency
		}

		c.JSON(http.StatusOK, CalculateTotalWithCharges(builder.DPR.EstimatedCost, builder.DPR.Charges))
	}
}

type applyTemplateRequest struct {
	TemplateID uint `json:"template_id" binding:"required"`
}

// ApplyEstimateTemplate bulk-adds a stored template's items to a draft.
// @Summary Apply estimate template
// @Tags Estimates
// @Accept json
// @Produce json
// @Param id path string true "Estimate ID"
// @Success 200 {object} models.DPRData
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/development-works/estimates/{id}/apply-template [post]
func ApplyEstimateTemplate(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		builder, ok := draftManager.get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Estimate draft not found"})
			return
		}

		var req applyTemplateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "template_id is required", "details": err.Error()})
			return
		}

		var tpl models.EstimateTemplateGorm
		if err := gdb.Preload("Items").First(&tpl, req.TemplateID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch template", "details": err.Error()})
			return
		}

		builder.ApplyTemplate(tpl.ToResponse().Items)
		c.JSON(http.StatusOK, builder.DPR)
	}
}

type saveTemplateRequest struct {
	Name string `json:"name" binding:"required"`
}

// SaveEstimateAsTemplate persists the draft's current work items under a
// name and the draft's estimate type. A missing name is a 400, not a silent
// no-op.
// @Summary Save draft as template
// @Tags Estimates
// @Accept json
// @Produce json
// @Param id path string true "Estimate ID"
// @Success 201 {object} models.EstimateTemplateResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/development-works/estimates/{id}/save-as-template [post]
func SaveEstimateAsTemplate(db *sql.DB, gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session-id header is required"})
			return
		}

		session, userName, err := GetSessionDetails(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session", "details": err.Error()})
			return
		}

		builder, ok := draftManager.get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Estimate draft not found"})
			return
		}

		var req saveTemplateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Template name is required", "details": err.Error()})
			return
		}

		items := builder.TemplateItems()
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot save an empty estimate as a template"})
			return
		}

		tpl := models.EstimateTemplateGorm{
			Name:         req.Name,
			EstimateType: builder.DPR.EstimateType,
			CreatedBy:    userName,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		for _, it := range items {
			tpl.Items = append(tpl.Items, models.EstimateTemplateItemGorm{
				Description: it.Description,
				Unit:        it.Unit,
				Rate:        it.Rate,
				DefaultQty:  it.DefaultQty,
				Category:    it.Category,
			})
		}

		if err := gdb.Create(&tpl).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save template", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, tpl.ToResponse())

		logEntry := models.ActivityLog{
			EventContext: "Estimate",
			EventName:    "Create",
			Description:  "Saved estimate template " + req.Name,
			UserName:     userName,
			HostName:     session.HostName,
			IPAddress:    session.IPAddress,
			CreatedAt:    time.Now(),
		}
		if logErr := SaveActivityLog(db, logEntry); logErr != nil {
			log.Printf("Failed to log activity: %v", logErr)
		}
	}
}

// GetEstimateTemplates lists templates, optionally filtered by estimate type.
// @Summary List estimate templates
// @Tags Estimates
// @Produce json
// @Param estimateType query string false "Estimate type code"
// @Success 200 {object} models.EstimateTemplateList
// @Failure 500 {object} models.ErrorResponse
// @Router /api/development-works/estimate-templates [get]
func GetEstimateTemplates(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := gdb.Preload("Items").Order("created_at DESC")
		if et := c.Query("estimateType"); et != "" {
			query = query.Where("estimate_type = ?", et)
		}

		var templates []models.EstimateTemplateGorm
		if err := query.Find(&templates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch templates", "details": err.Error()})
			return
		}

		items := make([]models.EstimateTemplateResponse, 0, len(templates))
		for _, t := range templates {
			items = append(items, t.ToResponse())
		}

		c.JSON(http.StatusOK, models.EstimateTemplateList{Items: items})
	}
}

// CreateEstimateTemplate stores a template posted directly by a client.
// @Summary Create estimate template
// @Tags Estimates
// @Accept json
// @Produce json
// @Param body body models.EstimateTemplateRequest true "Template data"
// @Success 201 {object} models.EstimateTemplateResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/development-works/estimate-templates [post]
func CreateEstimateTemplate(db *sql.DB, gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session-id header is required"})
			return
		}

		_, userName, err := GetSessionDetails(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session", "details": err.Error()})
			return
		}

		var req models.EstimateTemplateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON input", "details": err.Error()})
			return
		}
		if len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A template needs at least one item"})
			return
		}

		tpl := models.EstimateTemplateGorm{
			Name:         req.Name,
			EstimateType: req.EstimateType,
			CreatedBy:    userName,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		for _, it := range req.Items {
			tpl.Items = append(tpl.Items, models.EstimateTemplateItemGorm{
				Description: it.Description,
				Unit:        it.Unit,
				Rate:        it.Rate,
				DefaultQty:  it.DefaultQty,
				Category:    it.Category,
			})
		}

		if err := gdb.Create(&tpl).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, tpl.ToResponse())
	}
}

// GetScheduleRates lists the schedule of rates, optionally by category.
// @Summary List schedule rates
// @Tags Estimates
// @Produce json
// @Param category query string false "Category"
// @Success 200 {array} models.ScheduleRate
// @Failure 500 {object} models.ErrorResponse
// @Router /api/development-works/schedule-rates [get]
func GetScheduleRates(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := `SELECT id, code, description, unit, rate, category FROM schedule_rates`
		args := []interface{}{}
		if cat := c.Query("category"); cat != "" {
			query += ` WHERE category = $1`
			args = append(args, cat)
		}
		query += ` ORDER BY code`

		rows, err := db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule rates", "details": err.Error()})
			return
		}
		defer rows.Close()

		var rates []models.ScheduleRate
		for rows.Next() {
			var r models.ScheduleRate
			if err := rows.Scan(&r.ID, &r.Code, &r.Description, &r.Unit, &r.Rate, &r.Category); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan schedule rate", "details": err.Error()})
				return
			}
			rates = append(rates, r)
		}

		c.JSON(http.StatusOK, rates)
	}
}

// SaveEstimate persists a finished draft and releases it from memory.
// @Summary Save estimate
// @Tags Estimates
// @Produce json
// @Param id path string true "Estimate ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/development-works/estimates/{id}/save [post]
func SaveEstimate(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session-id header is required"})
			return
		}

		session, userName, err := GetSessionDetails(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session", "details": err.Error()})
			return
		}

		estimateID := c.Param("id")
		builder, ok := draftManager.get(estimateID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Estimate draft not found"})
			return
		}

		itemsJSON, err := json.Marshal(builder.DPR.WorkItems)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize work items", "details": err.Error()})
			return
		}

		breakdown := CalculateTotalWithCharges(builder.DPR.EstimatedCost, builder.DPR.Charges)

		query := `
			INSERT INTO estimates (estimate_id, project_name, location, estimate_type, financial_year,
				length, width, depth, capacity, work_items, sgst, cgst, labour_cess, contingency,
				estimated_cost, total_amount, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		`
		_, err = db.Exec(query,
			builder.DPR.EstimateID, builder.DPR.ProjectName, builder.DPR.Location,
			builder.DPR.EstimateType, builder.DPR.FinancialYear,
			builder.DPR.Length, builder.DPR.Width, builder.DPR.Depth, builder.DPR.Capacity,
			itemsJSON,
			builder.DPR.Charges.SGST, builder.DPR.Charges.CGST,
			builder.DPR.Charges.LabourCess, builder.DPR.Charges.Contingency,
			builder.DPR.EstimatedCost, breakdown.TotalAmount,
			userName, builder.DPR.CreatedAt, time.Now(),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save estimate", "details": err.Error()})
			return
		}

		draftManager.remove(estimateID)

		c.JSON(http.StatusOK, gin.H{"message": "Estimate saved successfully"})

		logEntry := models.ActivityLog{
			EventContext: "Estimate",
			EventName:    "Create",
			Description:  "Saved estimate " + estimateID + " for " + builder.DPR.ProjectName,
			UserName:     userName,
			HostName:     session.HostName,
			IPAddress:    session.IPAddress,
			CreatedAt:    time.Now(),
		}
		if logErr := SaveActivityLog(db, logEntry); logErr != nil {
			log.Printf("Failed to log activity: %v", logErr)
		}
	}
}
