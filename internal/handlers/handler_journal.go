package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/SscSPs/settlement_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", middleware.RequireScope(middleware.ScopePost), h.createJournal)
		journals.GET("/:journalID", middleware.RequireScope(middleware.ScopeRead), h.getJournal)
		journals.POST("/:journalID/reverse", middleware.RequireScope(middleware.ScopeReverse), h.reverseJournal)
	}
}

// createJournal godoc
// @Summary Post a manual journal entry
// @Description Validates, balances and posts a manual entry
// @Tags journals
// @Accept json
// @Produce json
// @Param journal body dto.CreateJournalRequest true "Entry and lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced entry"
// @Failure 422 {object} map[string]string "Fiscal period closed"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	draft, err := req.ToDraft()
	if err != nil {
		respondError(c, err, "Invalid journal entry")
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), draft, actor)
	if err != nil {
		respondError(c, err, "Failed to create journal entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal entry created", slog.String("journal_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getJournal godoc
// @Summary Get a journal entry and its lines
// @Tags journals
// @Produce json
// @Param journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Security BearerAuth
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	entry, err := h.journalService.GetEntry(c.Request.Context(), c.Param("journalID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseJournal godoc
// @Summary Reverse a journal entry
// @Description Posts the mirror image of an entry dated today and links both entries
// @Tags journals
// @Produce json
// @Param journalID path string true "Journal ID"
// @Success 201 {object} dto.JournalEntryResponse "The reversal entry"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Already reversed, or invoice has posted payments"
// @Failure 422 {object} map[string]string "No open fiscal period today"
// @Security BearerAuth
// @Router /journals/{journalID}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	journalID := c.Param("journalID")

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), journalID, actor)
	if err != nil {
		respondError(c, err, "Failed to reverse journal entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal entry reversed",
		slog.String("journal_id", journalID), slog.String("reversal_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}
