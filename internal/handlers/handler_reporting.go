package handlers

import (
	"fmt"
	"net/http"

	portssvc "github.com/crafterp/accounting/internal/core/ports/services"
	"github.com/crafterp/accounting/internal/dto"
	"github.com/crafterp/accounting/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportingHandler handles HTTP requests for derived reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	exportService    portssvc.ExportService
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, exportService portssvc.ExportService) {
	h := &reportingHandler{reportingService: reportingService, exportService: exportService}

	reports := rg.Group("/reports")
	{
		reports.GET("/general-ledger", h.generalLedger)
		reports.GET("/accounts/:account_id/balance", h.accountBalance)
		reports.GET("/trial-balance/:period_id", h.trialBalance)
		reports.GET("/profit-and-loss/:period_id", h.profitAndLoss)
		reports.GET("/balance-sheet", h.balanceSheet)
	}
}

// generalLedger godoc
// @Summary General ledger for one account
// @Description Chronological posted lines with a running balance starting at zero
// @Tags reports
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param accountID query string true "Account ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.GeneralLedgerResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /organizations/{organization_id}/reports/general-ledger [get]
func (h *reportingHandler) generalLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	accountID := c.Query("accountID")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountID query parameter required"})
		return
	}
	from, ok := parseDateParam(c, "from")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from query parameter required as YYYY-MM-DD"})
		return
	}
	to, ok := parseDateParam(c, "to")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to query parameter required as YYYY-MM-DD"})
		return
	}

	rows, err := h.reportingService.GeneralLedger(c.Request.Context(), organizationID, accountID, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "build general ledger")
		return
	}

	c.JSON(http.StatusOK, dto.GeneralLedgerResponse{
		AccountID: accountID,
		From:      from,
		To:        to,
		Rows:      rows,
	})
}

// accountBalance godoc
// @Summary Derived balance for one account
// @Description With from/to returns the net movement in the range; with asOf returns the cumulative balance through that date
// @Tags reports
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param account_id path string true "Account ID"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Param asOf query string false "Cumulative through date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /organizations/{organization_id}/reports/accounts/{account_id}/balance [get]
func (h *reportingHandler) accountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	accountID := c.Param("account_id")

	if asOf, ok := parseDateParam(c, "asOf"); ok {
		balance, err := h.reportingService.AccountBalanceAsOf(c.Request.Context(), organizationID, accountID, asOf)
		if err != nil {
			respondServiceError(c, logger, err, "compute account balance")
			return
		}
		c.JSON(http.StatusOK, dto.AccountBalanceResponse{AccountID: accountID, Balance: balance, AsOf: &asOf})
		return
	}

	from, fromOK := parseDateParam(c, "from")
	to, toOK := parseDateParam(c, "to")
	if !fromOK || !toOK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "either asOf or both from and to are required as YYYY-MM-DD"})
		return
	}

	balance, err := h.reportingService.AccountBalance(c.Request.Context(), organizationID, accountID, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "compute account balance")
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{AccountID: accountID, Balance: balance, From: &from, To: &to})
}

// trialBalance godoc
// @Summary Trial balance for one period
// @Description Per-account balances from the period snapshot; format=xlsx downloads a workbook
// @Tags reports
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param period_id path string true "Period ID"
// @Param format query string false "Set to xlsx for a workbook download"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Router /organizations/{organization_id}/reports/trial-balance/{period_id} [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	periodID := c.Param("period_id")

	if c.Query("format") == "xlsx" {
		workbook, err := h.exportService.TrialBalanceWorkbook(c.Request.Context(), organizationID, periodID)
		if err != nil {
			respondServiceError(c, logger, err, "export trial balance")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=trial-balance-%s.xlsx", periodID))
		c.Data(http.StatusOK, xlsxContentType, workbook)
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), organizationID, periodID)
	if err != nil {
		respondServiceError(c, logger, err, "build trial balance")
		return
	}

	c.JSON(http.StatusOK, dto.TrialBalanceResponse{PeriodID: periodID, Rows: rows})
}

// profitAndLoss godoc
// @Summary Profit and loss statement for one period
// @Description Revenue and expense activity grouped into report sections; format=xlsx downloads a workbook
// @Tags reports
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param period_id path string true "Period ID"
// @Param format query string false "Set to xlsx for a workbook download"
// @Success 200 {object} domain.PAndLReport
// @Failure 404 {object} map[string]string "Period not found"
// @Router /organizations/{organization_id}/reports/profit-and-loss/{period_id} [get]
func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	periodID := c.Param("period_id")

	if c.Query("format") == "xlsx" {
		workbook, err := h.exportService.ProfitAndLossWorkbook(c.Request.Context(), organizationID, periodID)
		if err != nil {
			respondServiceError(c, logger, err, "export profit and loss")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=profit-and-loss-%s.xlsx", periodID))
		c.Data(http.StatusOK, xlsxContentType, workbook)
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), organizationID, periodID)
	if err != nil {
		respondServiceError(c, logger, err, "build profit and loss")
		return
	}

	c.JSON(http.StatusOK, report)
}

// balanceSheet godoc
// @Summary Balance sheet as of a date
// @Tags reports
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param asOf query string true "Statement date (YYYY-MM-DD)"
// @Success 200 {object} domain.BalanceSheetReport
// @Router /organizations/{organization_id}/reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	asOf, ok := parseDateParam(c, "asOf")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asOf query parameter required as YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), organizationID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "build balance sheet")
		return
	}

	c.JSON(http.StatusOK, report)
}
