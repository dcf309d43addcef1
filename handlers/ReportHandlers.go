package handlers

import (
	"database/sql"
	"math"
	"net/http"
	"strconv"
	"time"

	"panchayat/models"
	"panchayat/utils"

	"github.com/gin-gonic/gin"
)

// Reporting endpoints. Each report wraps its payload in the same envelope and
// fails independently of the others, so one broken query never blanks the
// whole dashboard.

func reportError(c *gin.Context, status int, msg string) {
	c.JSON(status, models.ReportResponse{Success: false, Error: msg})
}

func reportOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, models.ReportResponse{Success: true, Data: data})
}

// resolveReportYear reads ?financial_year= and resolves the date window,
// defaulting to the current financial year.
func resolveReportYear(c *gin.Context) (string, time.Time, time.Time, bool) {
	fy, start, end, err := utils.ResolveFinancialYear(c.Query("financial_year"), time.Now())
	if err != nil {
		reportError(c, http.StatusBadRequest, err.Error())
		return "", time.Time{}, time.Time{}, false
	}
	return fy, start, end, true
}

// GetApplicationsReport godoc
// @Summary      Applications report
// @Description  Applications received in the financial year, with status and
//               type rollups, paginated
// @Tags         reports
// @Param        financial_year  query  string  false  "Financial year YYYY-YY"
// @Param        page            query  int     false  "Page"
// @Param        limit           query  int     false  "Page size"
// @Success      200  {object}  models.ReportResponse
// @Router       /api/reports/applications [get]
func GetApplicationsReport(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fy, start, end, ok := resolveReportYear(c)
		if !ok {
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 20
		}
		offset := (page - 1) * limit

		report := models.ApplicationsReport{
			FinancialYear: fy,
			Page:          page,
			PageSize:      limit,
			ByStatus:      map[string]int{},
			ByType:        map[string]int{},
			Applications:  []models.ApplicationRecord{},
		}

		err := db.QueryRow(
			`SELECT COUNT(*) FROM applications WHERE submitted_at BETWEEN $1 AND $2`,
			start, end,
		).Scan(&report.TotalCount)
		if err != nil {
			reportError(c, http.StatusInternalServerError, "Failed to count applications")
			return
		}
		report.TotalPages = int(math.Ceil(float64(report.TotalCount) / float64(limit)))

		statusRows, err := db.Query(
			`SELECT status, COUNT(*) FROM applications WHERE submitted_at BETWEEN $1 AND $2 GROUP BY status`,
			start, end,
		)
		if err != nil {
			reportError(c, http.StatusInternalServerError, "Failed to aggregate application statuses")
			return
		}
		defer statusRows.Close()
		for statusRows.Next() {
			var status string
			var count int
			if err := statusRows.Scan(&status, &count); err != nil {
				reportError(c, http.StatusInternalServerError, "Failed to scan status rollup")
				return
			}
			report.ByStatus[status] = count
		}

		typeRows, err := db.Query(
			`SELECT service_type, COUNT(*) FROM applications WHERE submitted_at BETWEEN $1 AND $2 GROUP BY service_type`,
			start, end,
		)
		if err != nil {
			reportError(c, http.StatusInternalServerError, "Failed to aggregate application types")
			return
		}
		defer typeRows.Close()
		for typeRows.Next() {
			var serviceType string
			var count int
			if err := typeRows.Scan(&serviceType, &count); err != nil {
				reportError(c, http.StatusInternalServerError, "Failed to scan type rollup")
				return
			}
			report.ByType[serviceType] = count
		}

		rows, err := db.Query(`
			SELECT application_id, applicant_name, service_type, status, submitted_at
			FROM applications
			WHERE submitted_at BETWEEN $1 AND $2
			ORDER BY submitted_at DESC
			LIMIT $3 OFFSET $4`,
			start, end, limit, offset,
		)
		if err != nil {
			reportError(c, http.StatusInternalServerError, "Failed to query applications")
			return
		}
		defer rows.Close()
		for rows.Next() {
			var rec models.ApplicationRecord
			if err := rows.Scan(&rec.ApplicationID, &rec.ApplicantName, &rec.ServiceType, &rec.Status, &rec.SubmittedAt); err != nil {
				reportError(c, http.StatusInternalServerError, "Failed to scan application")
				return
			}
			report.Applications = append(report.Applications, rec)
		}

		reportOK(c, report)
	}
}

// GetBudgetReport godoc
// @Summary      Budget report
// @Description  Allocation against utilization per budget head for the
//               financial year
// @Tags         reports
// @Param        financial_year  query  string  false  "Financial year YYYY-YY"
// @Success      200  {object}  models.ReportResponse
// @Router       /api/reports/budget [get]
func GetBudgetReport(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fy, _, _, ok := resolveReportYear(c)
		if !ok {
			return
		}

		report := models.BudgetReport{FinancialYear: fy, Heads: []models.BudgetHead{}}

		rows, err := db.Query(`
			SELECT head, allocation, utilization
			FROM budget_heads
			WHERE financial_year = $1
			ORDER BY head`,
			fy,
		)
		if err != nil {
			reportError(c, http.StatusInternalServerError, "Failed to query budget heads")
			return
		}
		defer rows.Close()

		for rows.Next() {
			var head models.BudgetHead
			if err := rows.Scan(&head.Head, &head.Allocation, &head.Utilization); err != nil {
				reportError(c, http.StatusInternalServerError, "Failed to scan budget head")
				return
			}
			report.TotalAllocation += head.Allocation
			report.TotalUtilization += head.Utilization
			report.Heads = append(report.Heads, head)
		}

		reportOK(c, report)
	}
}

// GetExpenditureReport godoc
// @Summary      Expenditure report
// @Description  Category-wise expenditure totals inside the financial year
// @Tags         reports
// @Param        financial_year  query  string  false  "Financial year YYYY-YY"
// @Success      200  {object}  models.ReportResponse
// @Router       /api/reports/expenditure [get]
func GetExpenditureReport(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fy, start, end, ok := resolveReportYear(c)
		if !ok {
			return
		}

		report := models.ExpenditureReport{FinancialYear: fy, Categories: []models.ExpenditureCategory{}}

		rows, err := db.Query(`
			SELECT category, COALESCE(SUM(amount), 0), COUNT(*)
			FROM expenditures
			WHERE spent_at BETWEEN $1 AND $2
			GROUP BY category
			ORDER BY SUM(amount) DESC`,
			start, end,
		)
		if err != nil {
			reportError(c, http.StatusInternalServerError, "Failed to query expenditures")
			return
		}
		defer rows.Close()

		for rows.Next() {
			var cat models.ExpenditureCategory
			if err := rows.Scan(&cat.Category, &cat.Amount, &cat.Count); err != nil {
				reportError(c, http.StatusInternalServerError, "Failed to scan expenditure category")
				return
			}
			report.Total += cat.Amount
			report.Categories = append(report.Categories, cat)
		}

		reportOK(c, report)
	}
}

// GetEarnestMoneyReport godoc
// @Summary      Earnest money report
// @Description  EMD held, refunded and forfeited across tenders. This report
//               carries no date filter; dateFiltered is always false so the
//               client can say so instead of pretending the year selector
//               applied
// @Tags         reports
// @Success      200  {object}  models.ReportResponse
// @Router       /api/reports/earnest-money [get]
func GetEarnestMoneyReport(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := models.EarnestMoneyReport{
			DateFiltered: false,
			Deposits:     []models.EarnestMoneyRecord{},
		}

		rows, err := db.Query(`
			SELECT tender_id, vendor_name, amount, status, deposited_on
			FROM earnest_money_deposits
			ORDER BY deposited_on DESC`,
		)
		if err != nil {
			reportError(c, http.StatusInternalServerError, "Failed to query earnest money deposits")
			return
		}
		defer rows.Close()

		for rows.Next() {
			var rec models.EarnestMoneyRecord
			if err := rows.Scan(&rec.TenderID, &rec.VendorName, &rec.Amount, &rec.Status, &rec.DepositOn); err != nil {
				reportError(c, http.StatusInternalServerError, "Failed to scan earnest money deposit")
				return
			}
			switch rec.Status {
			case "HELD":
				report.TotalHeld += rec.Amount
			case "REFUNDED":
				report.TotalRefunded += rec.Amount
			case "FORFEITED":
				report.TotalForfeit += rec.Amount
			}
			report.Deposits = append(report.Deposits, rec)
		}

		reportOK(c, report)
	}
}

// GetTechnicalComplianceReport godoc
// @Summary      Technical compliance report
// @Description  Technical-sanction compliance of works. No date filter;
//               dateFiltered is always false
// @Tags         reports
// @Success      200  {object}  models.ReportResponse
// @Router       /api/reports/technical-compliance [get]
func GetTechnicalComplianceReport(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := models.TechnicalComplianceReport{
			DateFiltered: false,
			Items:        []models.TechnicalComplianceItem{},
		}

		rows, err := db.Query(`
			SELECT work_id, work_name, sanction_status, COALESCE(remarks, '')
			FROM works
			ORDER BY work_id`,
		)
		if err != nil {
			reportError(c, http.StatusInternalServerError, "Failed to query works")
			return
		}
		defer rows.Close()

		for rows.Next() {
			var item models.TechnicalComplianceItem
			if err := rows.Scan(&item.WorkID, &item.WorkName, &item.SanctionStatus, &item.Remarks); err != nil {
				reportError(c, http.StatusInternalServerError, "Failed to scan work")
				return
			}
			report.TotalWorks++
			if item.SanctionStatus == "TECHNICALLY_SANCTIONED" {
				report.CompliantWorks++
			} else {
				report.PendingWorks++
			}
			report.Items = append(report.Items, item)
		}

		reportOK(c, report)
	}
}

// GetVendorParticipationReport godoc
// @Summary      Vendor participation report
// @Description  Tender participation summary for the financial year
// @Tags         reports
// @Param        financial_year  query  string  false  "Financial year YYYY-YY"
// @Success      200  {object}  models.ReportResponse
// @Router       /api/reports/vendor-participation [get]
func GetVendorParticipationReport(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fy, start, end, ok := resolveReportYear(c)
		if !ok {
			return
		}

		report := models.VendorParticipationReport{
			FinancialYear:   fy,
			TopParticipants: []models.VendorBidSummary{},
		}

		err := db.QueryRow(
			`SELECT COUNT(*) FROM tenders WHERE published_at BETWEEN $1 AND $2`,
			start, end,
		).Scan(&report.TotalTenders)
		if err != nil {
			reportError(c, http.StatusInternalServerError, "Failed to count tenders")
			return
		}

		var totalBids int
		err = db.QueryRow(`
			SELECT COUNT(DISTINCT b.vendor_name), COUNT(*)
			FROM bids b
			JOIN tenders t ON b.tender_id = t.tender_id
			WHERE t.published_at BETWEEN $1 AND $2`,
			start, end,
		).Scan(&report.TotalVendors, &totalBids)
		if err != nil {
			reportError(c, http.StatusInternalServerError, "Failed to count bids")
			return
		}
		if report.TotalTenders > 0 {
			report.AvgBidsPerWork = float64(totalBids) / float64(report.TotalTenders)
		}

		rows, err := db.Query(`
			SELECT b.vendor_name, COUNT(*),
				   COUNT(*) FILTER (WHERE b.awarded)
			FROM bids b
			JOIN tenders t ON b.tender_id = t.tender_id
			WHERE t.published_at BETWEEN $1 AND $2
			GROUP BY b.vendor_name
			ORDER BY COUNT(*) DESC
			LIMIT 10`,
			start, end,
		)
		if err != nil {
			reportError(c, http.StatusInternalServerError, "Failed to query vendor participation")
			return
		}
		defer rows.Close()

		for rows.Next() {
			var v models.VendorBidSummary
			if err := rows.Scan(&v.VendorName, &v.BidCount, &v.WonCount); err != nil {
				reportError(c, http.StatusInternalServerError, "Failed to scan vendor summary")
				return
			}
			report.TopParticipants = append(report.TopParticipants, v)
		}

		reportOK(c, report)
	}
}

// GetPerformanceReport godoc
// @Summary      Performance report
// @Description  Works by delivery status inside the financial year
// @Tags         reports
// @Param        financial_year  query  string  false  "Financial year YYYY-YY"
// @Success      200  {object}  models.ReportResponse
// @Router       /api/reports/performance [get]
func GetPerformanceReport(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fy, start, end, ok := resolveReportYear(c)
		if !ok {
			return
		}

		report := models.PerformanceReport{FinancialYear: fy}

		rows, err := db.Query(`
			SELECT delivery_status, COUNT(*)
			FROM works
			WHERE started_at BETWEEN $1 AND $2
			GROUP BY delivery_status`,
			start, end,
		)
		if err != nil {
			reportError(c, http.StatusInternalServerError, "Failed to query work performance")
			return
		}
		defer rows.Close()

		for rows.Next() {
			var status string
			var count int
			if err := rows.Scan(&status, &count); err != nil {
				reportError(c, http.StatusInternalServerError, "Failed to scan performance row")
				return
			}
			switch status {
			case "COMPLETED":
				report.Completed = count
			case "ONGOING":
				report.Ongoing = count
			case "DELAYED":
				report.Delayed = count
			}
		}

		finished := report.Completed + report.Delayed
		if finished > 0 {
			report.OnTimeRate = float64(report.Completed) / float64(finished)
		}

		reportOK(c, report)
	}
}
