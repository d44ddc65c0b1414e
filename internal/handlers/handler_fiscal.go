package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/crafterp/accounting/internal/core/domain"
	portssvc "github.com/crafterp/accounting/internal/core/ports/services"
	"github.com/crafterp/accounting/internal/dto"
	"github.com/crafterp/accounting/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fiscalHandler handles HTTP requests for fiscal years and periods.
type fiscalHandler struct {
	fiscalService portssvc.FiscalService
	periodService portssvc.PeriodService
}

// registerFiscalRoutes registers fiscal calendar and period gate routes on an
// organization-scoped group.
func registerFiscalRoutes(rg *gin.RouterGroup, fiscalService portssvc.FiscalService, periodService portssvc.PeriodService) {
	h := &fiscalHandler{fiscalService: fiscalService, periodService: periodService}

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.POST("/current", h.provisionCurrentYear)
		years.POST("/:fiscal_year_id/periods", h.generatePeriods)
		years.GET("/:fiscal_year_id/periods", h.listPeriods)
		years.POST("/:fiscal_year_id/close", h.closeFiscalYear)
	}

	periods := rg.Group("/periods")
	{
		periods.GET("/open", h.listOpenPeriods)
		periods.GET("/resolve", h.resolvePeriod)
		periods.GET("/:period_id", h.getPeriod)
		periods.POST("/:period_id/close", h.closePeriod)
		periods.POST("/:period_id/reopen", h.reopenPeriod)
		periods.POST("/:period_id/lock", h.lockPeriod)
	}
}

// createFiscalYear godoc
// @Summary Create a fiscal year
// @Tags fiscal
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param year body dto.CreateFiscalYearRequest true "Fiscal year range"
// @Success 201 {object} dto.FiscalYearResponse
// @Failure 409 {object} map[string]string "Duplicate or overlapping year"
// @Router /organizations/{organization_id}/fiscal-years [post]
func (h *fiscalHandler) createFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createFiscalYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, err := h.fiscalService.CreateFiscalYear(c.Request.Context(), organizationID, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "create fiscal year")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(year))
}

// listFiscalYears godoc
// @Summary List fiscal years
// @Tags fiscal
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Success 200 {array} dto.FiscalYearResponse
// @Router /organizations/{organization_id}/fiscal-years [get]
func (h *fiscalHandler) listFiscalYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	years, err := h.fiscalService.ListFiscalYears(c.Request.Context(), organizationID)
	if err != nil {
		respondServiceError(c, logger, err, "list fiscal years")
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalYearResponses(years))
}

// provisionCurrentYear godoc
// @Summary Provision the current fiscal year with monthly periods
// @Tags fiscal
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Success 201 {object} dto.FiscalYearResponse
// @Failure 409 {object} map[string]string "Year already exists"
// @Router /organizations/{organization_id}/fiscal-years/current [post]
func (h *fiscalHandler) provisionCurrentYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, periods, err := h.fiscalService.CreateCurrentFiscalYearWithPeriods(c.Request.Context(), organizationID, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "provision fiscal year")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"fiscalYear": dto.ToFiscalYearResponse(year),
		"periods":    dto.ToPeriodResponses(periods),
	})
}

// generatePeriods godoc
// @Summary Generate monthly periods for a fiscal year
// @Tags fiscal
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param fiscal_year_id path string true "Fiscal year ID"
// @Success 201 {object} dto.ListPeriodsResponse
// @Failure 409 {object} map[string]string "Periods already generated"
// @Router /organizations/{organization_id}/fiscal-years/{fiscal_year_id}/periods [post]
func (h *fiscalHandler) generatePeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	fiscalYearID := c.Param("fiscal_year_id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periods, err := h.fiscalService.GenerateMonthlyPeriods(c.Request.Context(), organizationID, fiscalYearID, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "generate periods")
		return
	}

	c.JSON(http.StatusCreated, dto.ListPeriodsResponse{Periods: dto.ToPeriodResponses(periods)})
}

// listPeriods godoc
// @Summary List a fiscal year's periods
// @Tags fiscal
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param fiscal_year_id path string true "Fiscal year ID"
// @Success 200 {object} dto.ListPeriodsResponse
// @Router /organizations/{organization_id}/fiscal-years/{fiscal_year_id}/periods [get]
func (h *fiscalHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	fiscalYearID := c.Param("fiscal_year_id")

	periods, err := h.fiscalService.ListPeriods(c.Request.Context(), organizationID, fiscalYearID)
	if err != nil {
		respondServiceError(c, logger, err, "list periods")
		return
	}

	c.JSON(http.StatusOK, dto.ListPeriodsResponse{Periods: dto.ToPeriodResponses(periods)})
}

// closeFiscalYear godoc
// @Summary Close a fiscal year
// @Description Closes a fiscal year once every period is closed or locked
// @Tags fiscal
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param fiscal_year_id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 409 {object} map[string]string "Open periods remain"
// @Router /organizations/{organization_id}/fiscal-years/{fiscal_year_id}/close [post]
func (h *fiscalHandler) closeFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	fiscalYearID := c.Param("fiscal_year_id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, err := h.fiscalService.CloseFiscalYear(c.Request.Context(), organizationID, fiscalYearID, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "close fiscal year")
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// listOpenPeriods godoc
// @Summary List open periods
// @Tags periods
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Success 200 {object} dto.ListPeriodsResponse
// @Router /organizations/{organization_id}/periods/open [get]
func (h *fiscalHandler) listOpenPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	periods, err := h.periodService.ListOpenPeriods(c.Request.Context(), organizationID)
	if err != nil {
		respondServiceError(c, logger, err, "list open periods")
		return
	}

	c.JSON(http.StatusOK, dto.ListPeriodsResponse{Periods: dto.ToPeriodResponses(periods)})
}

// resolvePeriod godoc
// @Summary Resolve the period owning a date
// @Description Returns the period covering the date, provisioning a fiscal year when none exists
// @Tags periods
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "No period covers the date"
// @Router /organizations/{organization_id}/periods/resolve [get]
func (h *fiscalHandler) resolvePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	date, ok := parseDateParam(c, "date")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter required as YYYY-MM-DD"})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.ResolvePeriodForDate(c.Request.Context(), organizationID, date, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "resolve period")
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// getPeriod godoc
// @Summary Get a period
// @Tags periods
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param period_id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Router /organizations/{organization_id}/periods/{period_id} [get]
func (h *fiscalHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	periodID := c.Param("period_id")

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), organizationID, periodID)
	if err != nil {
		respondServiceError(c, logger, err, "get period")
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// closePeriod godoc
// @Summary Close a period
// @Tags periods
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param period_id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Period is not open"
// @Router /organizations/{organization_id}/periods/{period_id}/close [post]
func (h *fiscalHandler) closePeriod(c *gin.Context) {
	h.transitionPeriod(c, h.periodService.ClosePeriod, "close period")
}

// reopenPeriod godoc
// @Summary Reopen a closed period
// @Tags periods
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param period_id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Period is locked or not closed"
// @Router /organizations/{organization_id}/periods/{period_id}/reopen [post]
func (h *fiscalHandler) reopenPeriod(c *gin.Context) {
	h.transitionPeriod(c, h.periodService.ReopenPeriod, "reopen period")
}

// lockPeriod godoc
// @Summary Lock a closed period
// @Description Locks a closed period permanently; a locked period never reopens
// @Tags periods
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param period_id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Period is not closed"
// @Router /organizations/{organization_id}/periods/{period_id}/lock [post]
func (h *fiscalHandler) lockPeriod(c *gin.Context) {
	h.transitionPeriod(c, h.periodService.LockPeriod, "lock period")
}

func (h *fiscalHandler) transitionPeriod(c *gin.Context, transition func(ctx context.Context, organizationID, periodID, actorID string) (*domain.Period, error), context string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	periodID := c.Param("period_id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := transition(c.Request.Context(), organizationID, periodID, actorID)
	if err != nil {
		respondServiceError(c, logger, err, context)
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}
