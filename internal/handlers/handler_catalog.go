package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/middleware"
)

// feeTemplateHandler handles fee packages and batch billing.
type feeTemplateHandler struct {
	ledger portssvc.LedgerSvcFacade
	ops    portssvc.OperationsSvcFacade
}

func registerFeeTemplateRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, ops portssvc.OperationsSvcFacade) {
	h := &feeTemplateHandler{ledger: ledger, ops: ops}

	templates := rg.Group("/fee-templates")
	{
		templates.POST("", h.createTemplate)
		templates.GET("", h.listTemplates)
		templates.GET("/:templateID", h.getTemplate)
		templates.POST("/:templateID/apply", h.applyTemplate)
	}
}

// createTemplate godoc
// @Summary Create a fee template
// @Tags billing
// @Accept json
// @Produce json
// @Param template body dto.CreateFeeTemplateRequest true "Template"
// @Success 201 {object} domain.FeeTemplate
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /fee-templates [post]
func (h *feeTemplateHandler) createTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFeeTemplateRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	template, err := h.ledger.RegisterFeeTemplate(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "create fee template")
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (h *feeTemplateHandler) listTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ListFeeTemplatesResponse{Templates: h.ledger.ListFeeTemplates(c.Request.Context())})
}

func (h *feeTemplateHandler) getTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	template, err := h.ledger.GetFeeTemplate(c.Request.Context(), c.Param("templateID"))
	if err != nil {
		respondError(c, logger, err, "retrieve fee template")
		return
	}
	c.JSON(http.StatusOK, template)
}

// applyTemplate godoc
// @Summary Bill a fee template to students
// @Description Posts one charge per student for the template total. Unknown students fail the batch before anything is posted.
// @Tags billing
// @Accept json
// @Produce json
// @Param templateID path string true "Template ID"
// @Param students body dto.ApplyFeeTemplateRequest true "Students to bill"
// @Success 201 {object} dto.ApplyFeeTemplateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Template or student not found"
// @Security BearerAuth
// @Router /fee-templates/{templateID}/apply [post]
func (h *feeTemplateHandler) applyTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	templateID := c.Param("templateID")
	var req dto.ApplyFeeTemplateRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	journals, err := h.ops.ApplyFeeTemplate(c.Request.Context(), templateID, req, actor)
	if err != nil {
		respondError(c, logger, err, "apply fee template")
		return
	}

	logger.Info("Fee template applied", slog.String("template_id", templateID), slog.Int("students", len(journals)))
	c.JSON(http.StatusCreated, dto.ApplyFeeTemplateResponse{
		TemplateID: templateID,
		Journals:   dto.ToJournalResponses(journals),
	})
}

// budgetHandler handles budget lines and their variance report.
type budgetHandler struct {
	ledger    portssvc.LedgerSvcFacade
	reporting portssvc.ReportingService
}

func registerBudgetRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, reporting portssvc.ReportingService) {
	h := &budgetHandler{ledger: ledger, reporting: reporting}

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/variance", h.getVariance)
	}
}

// createBudget godoc
// @Summary Set a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param budget body dto.CreateBudgetRequest true "Budget"
// @Success 201 {object} domain.Budget
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBudgetRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	budget, err := h.ledger.RegisterBudget(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "create budget")
		return
	}
	c.JSON(http.StatusCreated, budget)
}

func (h *budgetHandler) listBudgets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"budgets": h.ledger.ListBudgets(c.Request.Context())})
}

// getVariance godoc
// @Summary Budget variance
// @Description Compares every budget with its account's current balance
// @Tags budgets
// @Produce json
// @Success 200 {array} domain.BudgetVariance
// @Security BearerAuth
// @Router /budgets/variance [get]
func (h *budgetHandler) getVariance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	variance, err := h.reporting.BudgetVariance(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "compute budget variance")
		return
	}
	c.JSON(http.StatusOK, variance)
}

// assetHandler handles the fixed-asset register and depreciation.
type assetHandler struct {
	ledger portssvc.LedgerSvcFacade
	ops    portssvc.OperationsSvcFacade
}

func registerAssetRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, ops portssvc.OperationsSvcFacade) {
	h := &assetHandler{ledger: ledger, ops: ops}

	assets := rg.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.GET("", h.listAssets)
		assets.GET("/:assetID", h.getAsset)
		assets.POST("/depreciation", h.postDepreciation)
	}
}

// createAsset godoc
// @Summary Register a fixed asset
// @Tags assets
// @Accept json
// @Produce json
// @Param asset body dto.CreateAssetRequest true "Asset"
// @Success 201 {object} domain.FixedAsset
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets [post]
func (h *assetHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAssetRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	asset, err := h.ledger.RegisterAsset(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "register asset")
		return
	}
	c.JSON(http.StatusCreated, asset)
}

// listAssets godoc
// @Summary List fixed assets with book values
// @Tags assets
// @Produce json
// @Success 200 {object} dto.ListAssetsResponse
// @Security BearerAuth
// @Router /assets [get]
func (h *assetHandler) listAssets(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ListAssetsResponse{Assets: h.ledger.ListAssets(c.Request.Context())})
}

func (h *assetHandler) getAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	asset, err := h.ledger.GetAsset(c.Request.Context(), c.Param("assetID"))
	if err != nil {
		respondError(c, logger, err, "retrieve asset")
		return
	}
	c.JSON(http.StatusOK, asset)
}

// postDepreciation godoc
// @Summary Post depreciation
// @Description Posts Dr depreciation expense / Cr the fixed-asset account. With assetID the charge defaults to the asset's depreciation amount and may not exceed its book value.
// @Tags assets
// @Accept json
// @Produce json
// @Param depreciation body dto.DepreciationRequest true "Depreciation"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets/depreciation [post]
func (h *assetHandler) postDepreciation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DepreciationRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	journal, err := h.ops.PostDepreciation(c.Request.Context(), req, actor)
	respondPosted(c, logger, journal, err, "post depreciation")
}
