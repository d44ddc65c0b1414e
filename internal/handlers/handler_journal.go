package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/crafterp/accounting/internal/core/ports/services"
	"github.com/crafterp/accounting/internal/dto"
	"github.com/crafterp/accounting/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalService
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalService) {
	h := &journalHandler{journalService: journalService}

	journals := rg.Group("/journal-entries")
	{
		journals.POST("", h.createJournalEntry)
		journals.GET("", h.listJournalEntries)
		journals.GET("/:entry_id", h.getJournalEntry)
		journals.GET("/:entry_id/lines", h.getJournalLines)
		journals.POST("/:entry_id/post", h.postJournalEntry)
		journals.POST("/:entry_id/reverse", h.reverseJournalEntry)
	}
}

// createJournalEntry godoc
// @Summary Create a journal entry
// @Description Creates a balanced journal entry in DRAFT status
// @Tags journals
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry body dto.CreateJournalEntryRequest true "Journal entry with lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Unbalanced entry or invalid lines"
// @Failure 409 {object} map[string]string "Period is not open"
// @Router /organizations/{organization_id}/journal-entries [post]
func (h *journalHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), organizationID, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "create journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first with cursor pagination
// @Tags journals
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Router /organizations/{organization_id}/journal-entries [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listJournalEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.journalService.ListJournalEntries(c.Request.Context(), organizationID, params)
	if err != nil {
		respondServiceError(c, logger, err, "list journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getJournalEntry godoc
// @Summary Get a journal entry with its lines
// @Tags journals
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry_id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /organizations/{organization_id}/journal-entries/{entry_id} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), organizationID, entryID)
	if err != nil {
		respondServiceError(c, logger, err, "get journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// getJournalLines godoc
// @Summary Get the lines of a journal entry
// @Tags journals
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry_id path string true "Journal entry ID"
// @Success 200 {array} dto.JournalLineResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /organizations/{organization_id}/journal-entries/{entry_id}/lines [get]
func (h *journalHandler) getJournalLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	lines, err := h.journalService.GetJournalLines(c.Request.Context(), organizationID, entryID)
	if err != nil {
		respondServiceError(c, logger, err, "get journal lines")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalLineResponses(lines))
}

// postJournalEntry godoc
// @Summary Post a draft journal entry
// @Description Transitions a DRAFT entry to POSTED; the entry becomes immutable
// @Tags journals
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry_id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Entry is not draft or period closed"
// @Router /organizations/{organization_id}/journal-entries/{entry_id}/post [post]
func (h *journalHandler) postJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.PostJournalEntry(c.Request.Context(), organizationID, entryID, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "post journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseJournalEntry godoc
// @Summary Reverse a posted journal entry
// @Description Creates and posts a mirror entry, marking the original REVERSED
// @Tags journals
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry_id path string true "Journal entry ID"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Entry is not posted"
// @Router /organizations/{organization_id}/journal-entries/{entry_id}/reverse [post]
func (h *journalHandler) reverseJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.journalService.ReverseJournalEntry(c.Request.Context(), organizationID, entryID, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "reverse journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}
