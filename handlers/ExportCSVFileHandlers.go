package handlers

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"panchayat/models"

	"github.com/gin-gonic/gin"
)

// ExportAvailabilityCSV godoc
// @Summary      Export availability records as CSV
// @Tags         availability
// @Produce      text/csv
// @Param        service_type  query  string  false  "WATER_TANKER or DUSTBIN_VAN"
// @Success      200  {file}  file  "CSV file"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/admin/availability/export [get]
func ExportAvailabilityCSV(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := `
			SELECT service_type, date, available, capacity, booked, maintenance, notes
			FROM service_availability`
		args := []interface{}{}

		if serviceType := c.Query("service_type"); serviceType != "" {
			if !models.ValidServiceType(serviceType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service type", "details": serviceType})
				return
			}
			query += " WHERE service_type = $1"
			args = append(args, serviceType)
		}
		query += " ORDER BY date, service_type"

		rows, err := db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching availability data"})
			return
		}
		defer rows.Close()

		fileName := fmt.Sprintf("availability_export_%s.csv", time.Now().Format("2006-01-02"))
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment;filename="+fileName)

		writer := csv.NewWriter(c.Writer)
		defer writer.Flush()

		header := []string{"ServiceType", "Date", "Available", "Capacity", "Booked", "Maintenance", "Notes"}
		if err := writer.Write(header); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing CSV header"})
			return
		}

		for rows.Next() {
			var (
				serviceType string
				date        time.Time
				available   bool
				capacity    int
				booked      int
				maintenance bool
				notes       sql.NullString
			)
			if err := rows.Scan(&serviceType, &date, &available, &capacity, &booked, &maintenance, &notes); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error scanning availability row"})
				return
			}

			record := []string{
				serviceType,
				date.Format("2006-01-02"),
				strconv.FormatBool(available),
				strconv.Itoa(capacity),
				strconv.Itoa(booked),
				strconv.FormatBool(maintenance),
				getStringOrEmpty(notes),
			}
			if err := writer.Write(record); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing CSV row"})
				return
			}
		}
	}
}
