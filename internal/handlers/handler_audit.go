package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/middleware"
)

type auditHandler struct {
	ledger portssvc.LedgerSvcFacade
}

func registerAuditRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade) {
	h := &auditHandler{ledger: ledger}

	audit := rg.Group("/audit-logs")
	{
		audit.GET("", h.listAuditLog)
		audit.POST("", h.recordAudit)
	}
}

// listAuditLog godoc
// @Summary List the activity trail
// @Description Returns audit records newest first
// @Tags audit
// @Produce json
// @Param limit query int false "Maximum records" default(100)
// @Success 200 {object} dto.ListAuditLogResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *auditHandler) listAuditLog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAuditLogParams
	if !bindQuery(c, logger, &params) {
		return
	}

	records := h.ledger.ListAuditLog(c.Request.Context())
	total := len(records)
	if len(records) > params.Limit {
		records = records[:params.Limit]
	}
	c.JSON(http.StatusOK, dto.ListAuditLogResponse{Records: records, Total: total})
}

// recordAudit godoc
// @Summary Append an activity record
// @Tags audit
// @Accept json
// @Param record body dto.RecordAuditRequest true "Record"
// @Success 201 "Created"
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit-logs [post]
func (h *auditHandler) recordAudit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordAuditRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	if err := h.ledger.RecordAudit(c.Request.Context(), actor, req.Action, req.Module); err != nil {
		respondError(c, logger, err, "record audit")
		return
	}
	c.Status(http.StatusCreated)
}
