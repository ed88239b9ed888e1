package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/middleware"
	"github.com/SscSPs/school_ledger/internal/utils/pagination"
)

// journalHandler handles posting, listing and reversing journals.
type journalHandler struct {
	ledger portssvc.LedgerSvcFacade
}

func newJournalHandler(ledger portssvc.LedgerSvcFacade) *journalHandler {
	return &journalHandler{ledger: ledger}
}

// registerJournalRoutes registers routes related to journals.
func registerJournalRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade) {
	h := newJournalHandler(ledger)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.postJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.DELETE("/:journalID", h.deleteJournal)
	}
}

// postJournal godoc
// @Summary Post a journal
// @Description Validates and posts a balanced journal. Debits and credits must agree within 0.01.
// @Description A journal tagged to a student, supplier or staff member must touch that kind's control account.
// @Tags journals
// @Accept json
// @Produce json
// @Param journal body dto.PostJournalRequest true "Journal details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse "Unbalanced, empty or otherwise invalid journal"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Tagged entity not found"
// @Failure 409 {object} ErrorResponse "Journal tagged to more than one entity"
// @Failure 500 {object} ErrorResponse "Failed to post journal"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostJournalRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	journal, err := h.ledger.PostJournal(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "post journal")
		return
	}

	logger.Info("Journal posted", slog.String("journal_id", journal.JournalID), slog.String("reference", journal.Reference))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journals
// @Description Lists posted journals in posting order, optionally filtered
// @Tags journals
// @Produce json
// @Param subsidiaryKind query string false "STUDENT, SUPPLIER or STAFF"
// @Param subsidiaryID query string false "Entity id"
// @Param accountID query string false "Only journals touching this account"
// @Param module query string false "Module tag"
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param limit query int false "Page size (0 for all)"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListJournalsParams
	if !bindQuery(c, logger, &params) {
		return
	}

	journals := h.ledger.ListJournals(c.Request.Context(), params)
	page, next, err := pagination.Page(journals, func(j domain.Journal) string { return j.JournalID }, params.NextToken, params.Limit)
	if err != nil {
		logger.Warn("Invalid journal page token", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ListJournalsResponse{Journals: dto.ToJournalResponses(page), NextToken: next})
}

// getJournal godoc
// @Summary Get a journal by ID
// @Tags journals
// @Produce json
// @Param journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} ErrorResponse "Journal not found"
// @Security BearerAuth
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	journal, err := h.ledger.GetJournal(c.Request.Context(), c.Param("journalID"))
	if err != nil {
		respondError(c, logger, err, "retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// deleteJournal godoc
// @Summary Delete and reverse a journal
// @Description Removes a journal and reverses its effect on every account and sub-ledger balance
// @Tags journals
// @Param journalID path string true "Journal ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Journal not found"
// @Failure 500 {object} ErrorResponse "Failed to delete journal"
// @Security BearerAuth
// @Router /journals/{journalID} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	if err := h.ledger.DeleteJournal(c.Request.Context(), journalID, actor); err != nil {
		respondError(c, logger, err, "delete journal")
		return
	}

	logger.Info("Journal deleted", slog.String("journal_id", journalID))
	c.Status(http.StatusNoContent)
}
