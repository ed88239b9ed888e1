package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
)

type ledgerHandler struct {
	ledger portssvc.LedgerSvcFacade
}

// registerLedgerRoutes registers the ledger-wide dashboard routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledger: ledger}

	l := rg.Group("/ledger")
	{
		l.GET("/summary", h.getSummary)
		l.GET("/integrity", h.getIntegrity)
		l.GET("/posting-accounts", h.getPostingAccounts)
	}
}

// getSummary godoc
// @Summary Ledger summary
// @Description Category totals, system debit and credit, net income and sub-ledger totals
// @Tags ledger
// @Produce json
// @Success 200 {object} domain.Summary
// @Security BearerAuth
// @Router /ledger/summary [get]
func (h *ledgerHandler) getSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.Summarize(c.Request.Context()))
}

// getIntegrity godoc
// @Summary Integrity check
// @Description Refolds the journal and compares it with the cached balances. Responds 409 when drift or imbalance is found.
// @Tags ledger
// @Produce json
// @Success 200 {object} domain.IntegrityReport
// @Failure 409 {object} domain.IntegrityReport
// @Security BearerAuth
// @Router /ledger/integrity [get]
func (h *ledgerHandler) getIntegrity(c *gin.Context) {
	report := h.ledger.VerifyIntegrity(c.Request.Context())
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusConflict
	}
	c.JSON(status, report)
}

// getPostingAccounts godoc
// @Summary Posting account roles
// @Tags ledger
// @Produce json
// @Success 200 {object} domain.PostingAccounts
// @Security BearerAuth
// @Router /ledger/posting-accounts [get]
func (h *ledgerHandler) getPostingAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.PostingAccounts())
}
