package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"panchayat/models"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// DatesForBulkGenerate fans a bulk-generate request out into the concrete
// dates to insert: tomorrow onwards, capped at 30 days, skipping dates that
// already have a record. Existing keys use the YYYY-MM-DD form.
func DatesForBulkGenerate(now time.Time, days int, existing map[string]bool) []time.Time {
	if days > 30 {
		days = 30
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	dates := []time.Time{}
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		if existing[d.Format(dateLayout)] {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

// GetServiceAvailability godoc
// @Summary      List availability records
// @Tags         availability
// @Param        service_type  query  string  false  "WATER_TANKER or DUSTBIN_VAN"
// @Param        from          query  string  false  "Start date YYYY-MM-DD"
// @Param        to            query  string  false  "End date YYYY-MM-DD"
// @Success      200  {object}  object
// @Router       /api/admin/availability [get]
func GetServiceAvailability(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := `
			SELECT id, service_type, date, available, capacity, booked, maintenance, notes, created_at, updated_at
			FROM service_availability WHERE 1=1`
		args := []interface{}{}
		argIndex := 1

		if serviceType := c.Query("service_type"); serviceType != "" {
			if !models.ValidServiceType(serviceType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service type", "details": serviceType})
				return
			}
			query += fmt.Sprintf(" AND service_type = $%d", argIndex)
			args = append(args, serviceType)
			argIndex++
		}
		if from := c.Query("from"); from != "" {
			if _, err := time.Parse(dateLayout, from); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date", "details": err.Error()})
				return
			}
			query += fmt.Sprintf(" AND date >= $%d", argIndex)
			args = append(args, from)
			argIndex++
		}
		if to := c.Query("to"); to != "" {
			if _, err := time.Parse(dateLayout, to); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date", "details": err.Error()})
				return
			}
			query += fmt.Sprintf(" AND date <= $%d", argIndex)
			args = append(args, to)
			argIndex++
		}
		query += " ORDER BY date, service_type"

		rows, err := db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query availability", "details": err.Error()})
			return
		}
		defer rows.Close()

		records := []models.ServiceAvailability{}
		for rows.Next() {
			var rec models.ServiceAvailability
			var notes sql.NullString
			if err := rows.Scan(&rec.ID, &rec.ServiceType, &rec.Date, &rec.Available, &rec.Capacity,
				&rec.Booked, &rec.Maintenance, &notes, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan availability", "details": err.Error()})
				return
			}
			rec.Notes = getStringOrEmpty(notes)
			records = append(records, rec)
		}

		c.JSON(http.StatusOK, gin.H{"availability": records, "count": len(records)})
	}
}

func validateAvailabilityRequest(req *models.ServiceAvailabilityRequest) (time.Time, string, bool) {
	if !models.ValidServiceType(req.ServiceType) {
		return time.Time{}, "Invalid service type", false
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return time.Time{}, "Invalid date, expected YYYY-MM-DD", false
	}
	if req.Booked > req.Capacity {
		return time.Time{}, "booked cannot exceed capacity", false
	}
	if req.Booked < 0 {
		return time.Time{}, "booked cannot be negative", false
	}
	return date, "", true
}

// CreateServiceAvailability godoc
// @Summary      Create an availability record
// @Tags         availability
// @Param        request  body  models.ServiceAvailabilityRequest  true  "Availability"
// @Success      201  {object}  models.ServiceAvailability
// @Failure      400  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /api/admin/availability [post]
func CreateServiceAvailability(db *sql.DB) gin.HandlerFunc {
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

		var req models.ServiceAvailabilityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}
		date, msg, ok := validateAvailabilityRequest(&req)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		var exists bool
		err = db.QueryRow(`SELECT EXISTS(SELECT 1 FROM service_availability WHERE service_type = $1 AND date = $2)`,
			req.ServiceType, date).Scan(&exists)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing record", "details": err.Error()})
			return
		}
		if exists {
			c.JSON(http.StatusConflict, gin.H{"error": "A record already exists for that service and date"})
			return
		}

		now := time.Now()
		var rec models.ServiceAvailability
		insertQuery := `
			INSERT INTO service_availability (service_type, date, available, capacity, booked, maintenance, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING id`
		err = db.QueryRow(insertQuery,
			req.ServiceType, date, req.Available, req.Capacity, req.Booked, req.Maintenance, req.Notes, now,
		).Scan(&rec.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create availability", "details": err.Error()})
			return
		}

		rec.ServiceType = req.ServiceType
		rec.Date = date
		rec.Available = req.Available
		rec.Capacity = req.Capacity
		rec.Booked = req.Booked
		rec.Maintenance = req.Maintenance
		rec.Notes = req.Notes
		rec.CreatedAt = now
		rec.UpdatedAt = now

		c.JSON(http.StatusCreated, rec)

		activityLog := models.ActivityLog{
			CreatedAt:    time.Now(),
			UserName:     userName,
			HostName:     session.HostName,
			EventContext: "Service Availability",
			IPAddress:    session.IPAddress,
			Description:  fmt.Sprintf("Created %s availability for %s", req.ServiceType, req.Date),
			EventName:    "create",
		}
		if err := SaveActivityLog(db, activityLog); err != nil {
			log.Printf("Failed to save activity log: %v", err)
		}
	}
}

// UpdateServiceAvailability godoc
// @Summary      Update an availability record
// @Tags         availability
// @Param        id       path  int                                 true  "Record ID"
// @Param        request  body  models.ServiceAvailabilityRequest  true  "Availability"
// @Success      200  {object}  models.ServiceAvailability
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/admin/availability/{id} [put]
func UpdateServiceAvailability(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
			return
		}

		var req models.ServiceAvailabilityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}
		date, msg, ok := validateAvailabilityRequest(&req)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		now := time.Now()
		result, err := db.Exec(`
			UPDATE service_availability
			SET service_type = $1, date = $2, available = $3, capacity = $4, booked = $5,
				maintenance = $6, notes = $7, updated_at = $8
			WHERE id = $9`,
			req.ServiceType, date, req.Available, req.Capacity, req.Booked, req.Maintenance, req.Notes, now, id,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update availability", "details": err.Error()})
			return
		}
		if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Availability record not found"})
			return
		}

		c.JSON(http.StatusOK, models.ServiceAvailability{
			ID:          id,
			ServiceType: req.ServiceType,
			Date:        date,
			Available:   req.Available,
			Capacity:    req.Capacity,
			Booked:      req.Booked,
			Maintenance: req.Maintenance,
			Notes:       req.Notes,
			UpdatedAt:   now,
		})
	}
}

// DeleteServiceAvailability godoc
// @Summary      Delete an availability record
// @Tags         availability
// @Param        id  path  int  true  "Record ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/admin/availability/{id} [delete]
func DeleteServiceAvailability(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
			return
		}

		result, err := db.Exec(`DELETE FROM service_availability WHERE id = $1`, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete availability", "details": err.Error()})
			return
		}
		if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Availability record not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Availability record deleted"})
	}
}

// BulkGenerateAvailability godoc
// @Summary      Bulk generate future availability records
// @Description  Creates default records for the next N days (max 30), skipping
//               dates that already have a record for the service type
// @Tags         availability
// @Param        service_type  query  string                      true  "WATER_TANKER or DUSTBIN_VAN"
// @Param        request       body   models.BulkGenerateRequest  true  "Days"
// @Success      201  {object}  object
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/admin/availability/bulk [post]
func BulkGenerateAvailability(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		serviceType := c.Query("service_type")
		if !models.ValidServiceType(serviceType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service type", "details": serviceType})
			return
		}

		var req models.BulkGenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}

		created, skipped, err := bulkGenerateForService(db, serviceType, req.Days, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate availability", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"serviceType": serviceType,
			"created":     created,
			"skipped":     skipped,
		})
	}
}

// bulkGenerateForService inserts default availability rows for the next days.
// Shared by the admin endpoint and the nightly top-up job.
func bulkGenerateForService(db *sql.DB, serviceType string, days int, now time.Time) (int, int, error) {
	horizon := now.AddDate(0, 0, 31)
	rows, err := db.Query(
		`SELECT date FROM service_availability WHERE service_type = $1 AND date > $2 AND date <= $3`,
		serviceType, now, horizon,
	)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()

	existing := map[string]bool{}
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return 0, 0, err
		}
		existing[d.Format(dateLayout)] = true
	}

	dates := DatesForBulkGenerate(now, days, existing)
	created := 0
	for _, d := range dates {
		_, err := db.Exec(`
			INSERT INTO service_availability (service_type, date, available, capacity, booked, maintenance, notes, created_at, updated_at)
			VALUES ($1, $2, true, $3, 0, false, '', $4, $4)`,
			serviceType, d, defaultCapacityFor(serviceType), now,
		)
		if err != nil {
			return created, len(existing), err
		}
		created++
	}
	return created, len(existing), nil
}

func defaultCapacityFor(serviceType string) int {
	if serviceType == models.ServiceTypeWaterTanker {
		return 4
	}
	return 2
}

// GetServiceFees godoc
// @Summary      Get service booking fees
// @Tags         availability
// @Success      200  {object}  object
// @Router       /api/admin/service-fees [get]
func GetServiceFees(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := db.Query(`SELECT id, service_type, amount FROM service_fees ORDER BY service_type`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query service fees", "details": err.Error()})
			return
		}
		defer rows.Close()

		fees := []models.ServiceFee{}
		for rows.Next() {
			var f models.ServiceFee
			if err := rows.Scan(&f.ID, &f.ServiceType, &f.Amount); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan service fee", "details": err.Error()})
				return
			}
			fees = append(fees, f)
		}

		c.JSON(http.StatusOK, gin.H{"fees": fees})
	}
}

// UpdateServiceFees godoc
// @Summary      Upsert service booking fees
// @Description  Fees for both service types travel together and are upserted
//               as a pair
// @Tags         availability
// @Param        request  body  models.ServiceFeesRequest  true  "Fees"
// @Success      200  {object}  object
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/admin/service-fees [put]
func UpdateServiceFees(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ServiceFeesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}

		seen := map[string]bool{}
		for _, fee := range req.Fees {
			if !models.ValidServiceType(fee.ServiceType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service type", "details": fee.ServiceType})
				return
			}
			if fee.Amount < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Fee amount cannot be negative"})
				return
			}
			seen[fee.ServiceType] = true
		}
		if !seen[models.ServiceTypeWaterTanker] || !seen[models.ServiceTypeDustbinVan] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Fees for both service types are required"})
			return
		}

		tx, err := db.Begin()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction", "details": err.Error()})
			return
		}

		for _, fee := range req.Fees {
			_, err := tx.Exec(`
				INSERT INTO service_fees (service_type, amount)
				VALUES ($1, $2)
				ON CONFLICT (service_type) DO UPDATE SET amount = EXCLUDED.amount`,
				fee.ServiceType, fee.Amount,
			)
			if err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert fee", "details": err.Error()})
				return
			}
		}

		if err := tx.Commit(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit fees", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Service fees updated", "fees": req.Fees})
	}
}

// TopUpAvailabilityWindows keeps a rolling 30-day window of availability
// records for every service type. Run by the nightly cron job.
func TopUpAvailabilityWindows(db *sql.DB) {
	for _, serviceType := range []string{models.ServiceTypeWaterTanker, models.ServiceTypeDustbinVan} {
		created, _, err := bulkGenerateForService(db, serviceType, 30, time.Now())
		if err != nil {
			log.Printf("Availability top-up failed for %s: %v", serviceType, err)
			continue
		}
		if created > 0 {
			log.Printf("Availability top-up created %d records for %s", created, serviceType)
		}
	}
}
