package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// inrPrinter formats amounts with Indian digit grouping (12,34,567.89).
var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders an amount as "Rs. 1,23,456.78".
func FormatINR(amount float64) string {
	return inrPrinter.Sprintf("Rs. %.2f", amount)
}

// GenerateDPRPdf godoc
// @Summary      Generate the DPR summary PDF for a draft estimate
// @Tags         estimates
// @Param        id  path  string  true  "Estimate ID"
// @Success      200  "PDF file"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/development-works/estimates/{id}/pdf [get]
func GenerateDPRPdf() gin.HandlerFunc {
	return func(c *gin.Context) {
		builder, ok := draftManager.get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Estimate draft not found"})
			return
		}

		dpr := builder.DPR
		breakdown := CalculateTotalWithCharges(dpr.EstimatedCost, dpr.Charges)

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetMargins(10, 10, 10)

		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(190, 10, "DETAILED PROJECT REPORT")
		pdf.Ln(12)

		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(50, 6, "Estimate ID:")
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(140, 6, dpr.EstimateID)
		pdf.Ln(6)

		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(50, 6, "Project:")
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(140, 6, dpr.ProjectName)
		pdf.Ln(6)

		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(50, 6, "Location:")
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(140, 6, dpr.Location)
		pdf.Ln(6)

		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(50, 6, "Financial Year:")
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(140, 6, dpr.FinancialYear)
		pdf.Ln(6)

		if dpr.Length > 0 || dpr.Width > 0 || dpr.Depth > 0 || dpr.Capacity > 0 {
			pdf.SetFont("Arial", "B", 11)
			pdf.Cell(50, 6, "Dimensions:")
			pdf.SetFont("Arial", "", 11)
			dims := ""
			if dpr.Length > 0 {
				dims += fmt.Sprintf("L %.2f m  ", dpr.Length)
			}
			if dpr.Width > 0 {
				dims += fmt.Sprintf("W %.2f m  ", dpr.Width)
			}
			if dpr.Depth > 0 {
				dims += fmt.Sprintf("D %.2f m  ", dpr.Depth)
			}
			if dpr.Capacity > 0 {
				dims += fmt.Sprintf("Capacity %.2f", dpr.Capacity)
			}
			pdf.Cell(140, 6, dims)
			pdf.Ln(6)
		}
		pdf.Ln(4)

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(75, 8, "Description", "1", 0, "L", true, 0, "")
		pdf.CellFormat(20, 8, "Unit", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 8, "Qty", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 8, "Rate", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 8, "Amount", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 9)
		for _, item := range dpr.WorkItems {
			desc := item.Description
			if len(desc) > 45 {
				desc = desc[:42] + "..."
			}
			pdf.CellFormat(75, 7, desc, "1", 0, "L", false, 0, "")
			pdf.CellFormat(20, 7, item.Unit, "1", 0, "C", false, 0, "")
			pdf.CellFormat(25, 7, fmt.Sprintf("%.2f", item.Quantity), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", item.Rate), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 7, inrPrinter.Sprintf("%.2f", item.Amount), "1", 1, "R", false, 0, "")
		}

		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 10)
		summary := []struct {
			label  string
			amount float64
		}{
			{"Subtotal", breakdown.Subtotal},
			{fmt.Sprintf("SGST @ %.1f%%", dpr.Charges.SGST), breakdown.SGSTAmount},
			{fmt.Sprintf("CGST @ %.1f%%", dpr.Charges.CGST), breakdown.CGSTAmount},
			{fmt.Sprintf("Labour Cess @ %.1f%%", dpr.Charges.LabourCess), breakdown.LabourCessAmount},
			{fmt.Sprintf("Contingency @ %.1f%%", dpr.Charges.Contingency), breakdown.ContingencyAmount},
			{"Total Estimated Cost", breakdown.TotalAmount},
		}
		for _, line := range summary {
			pdf.Cell(150, 7, line.label)
			pdf.CellFormat(40, 7, FormatINR(line.amount), "1", 1, "R", false, 0, "")
		}

		pdf.Ln(10)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(190, 6, "Prepared by: "+dpr.CreatedBy)

		pdf.SetY(-20)
		pdf.SetFont("Arial", "I", 8)
		pdf.Cell(190, 6, "Generated on: "+time.Now().Format("2006-01-02 15:04:05"))

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=DPR_%s.pdf", dpr.EstimateID))
		if err := pdf.Output(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}
	}
}
