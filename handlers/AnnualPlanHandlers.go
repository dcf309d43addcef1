package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"panchayat/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const annualPlanSheet = "Annual Plan"

// AnnualPlanFileName builds the download filename for a block's export.
// Spaces in the block name become underscores.
func AnnualPlanFileName(planYear, blockName string) string {
	return fmt.Sprintf("District_Annual_Plan_%s_%s_SingleSheet.xlsx",
		planYear, strings.ReplaceAll(blockName, " ", "_"))
}

// BuildAnnualPlanWorkbook renders one block's annual plan onto a single
// sheet. Downstream offices re-import this file, so the column layout and
// widths stay fixed.
func BuildAnnualPlanWorkbook(plan *models.BlockAnnualPlan) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(annualPlanSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(annualPlanSheet, "A", "A", 30); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(annualPlanSheet, "B", "B", 20); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(annualPlanSheet, "C", "H", 15); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(annualPlanSheet, "I", "I", 20); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}
	gpStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Italic: true},
	})
	if err != nil {
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "top", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}

	f.SetCellValue(annualPlanSheet, "A1", fmt.Sprintf("District Annual Plan %s", plan.PlanYear))
	f.MergeCell(annualPlanSheet, "A1", "I1")
	f.SetCellStyle(annualPlanSheet, "A1", "I1", titleStyle)

	f.SetCellValue(annualPlanSheet, "A2", fmt.Sprintf("Block: %s", plan.BlockName))
	f.MergeCell(annualPlanSheet, "A2", "I2")

	headers := []string{
		"Scheme Name", "Sector", "Estimated Cost", "Central Share",
		"State Share", "Own Fund", "Beneficiaries", "Target Quarter", "Remarks",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 4)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(annualPlanSheet, cell, h)
	}
	f.SetCellStyle(annualPlanSheet, "A4", "I4", headerStyle)

	row := 5
	var totalCost, totalCentral, totalState, totalOwn float64
	var totalBeneficiaries int

	for _, gp := range plan.GramPanchayats {
		gpCell := fmt.Sprintf("A%d", row)
		f.SetCellValue(annualPlanSheet, gpCell, gp.Name)
		f.MergeCell(annualPlanSheet, gpCell, fmt.Sprintf("I%d", row))
		f.SetCellStyle(annualPlanSheet, gpCell, fmt.Sprintf("I%d", row), gpStyle)
		row++

		for _, scheme := range gp.Schemes {
			f.SetCellValue(annualPlanSheet, fmt.Sprintf("A%d", row), scheme.SchemeName)
			f.SetCellValue(annualPlanSheet, fmt.Sprintf("B%d", row), scheme.Sector)
			f.SetCellValue(annualPlanSheet, fmt.Sprintf("C%d", row), scheme.EstimatedCost)
			f.SetCellValue(annualPlanSheet, fmt.Sprintf("D%d", row), scheme.CentralShare)
			f.SetCellValue(annualPlanSheet, fmt.Sprintf("E%d", row), scheme.StateShare)
			f.SetCellValue(annualPlanSheet, fmt.Sprintf("F%d", row), scheme.OwnFund)
			f.SetCellValue(annualPlanSheet, fmt.Sprintf("G%d", row), scheme.Beneficiaries)
			f.SetCellValue(annualPlanSheet, fmt.Sprintf("H%d", row), scheme.TargetQuarter)
			f.SetCellValue(annualPlanSheet, fmt.Sprintf("I%d", row), scheme.Remarks)

			totalCost += scheme.EstimatedCost
			totalCentral += scheme.CentralShare
			totalState += scheme.StateShare
			totalOwn += scheme.OwnFund
			totalBeneficiaries += scheme.Beneficiaries
			row++
		}
	}

	f.SetCellValue(annualPlanSheet, fmt.Sprintf("A%d", row), "Block Total")
	f.SetCellValue(annualPlanSheet, fmt.Sprintf("C%d", row), totalCost)
	f.SetCellValue(annualPlanSheet, fmt.Sprintf("D%d", row), totalCentral)
	f.SetCellValue(annualPlanSheet, fmt.Sprintf("E%d", row), totalState)
	f.SetCellValue(annualPlanSheet, fmt.Sprintf("F%d", row), totalOwn)
	f.SetCellValue(annualPlanSheet, fmt.Sprintf("G%d", row), totalBeneficiaries)
	f.SetCellStyle(annualPlanSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("I%d", row), totalStyle)

	return f, nil
}

// GetAnnualPlanBlocks godoc
// @Summary      List blocks with annual plan data
// @Tags         annual-plan
// @Success      200  {object}  object
// @Router       /api/annual-plan/blocks [get]
func GetAnnualPlanBlocks() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"blocks": models.DistrictAnnualPlanBlocks()})
	}
}

// ExportAnnualPlan godoc
// @Summary      Export a block's annual plan as a spreadsheet
// @Description  Streams a single-sheet xlsx of the block's annual plan
// @Tags         annual-plan
// @Param        block  query  string  true  "Block name"
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/annual-plan/export [get]
func ExportAnnualPlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		blockName := c.Query("block")
		if blockName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "block query parameter is required"})
			return
		}

		plan := models.DistrictAnnualPlanData(blockName)
		if plan == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No annual plan data for block", "details": blockName})
			return
		}

		f, err := BuildAnnualPlanWorkbook(plan)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build spreadsheet", "details": err.Error()})
			return
		}

		fileName := AnnualPlanFileName(plan.PlanYear, plan.BlockName)
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write spreadsheet", "details": err.Error()})
			return
		}
	}
}
