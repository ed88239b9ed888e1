package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/middleware"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	ledger portssvc.LedgerSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(ledger portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{
		ledger: ledger,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade) {
	h := newAccountHandler(ledger)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/balance", h.getAccountBalance)
	}
}

// createAccount godoc
// @Summary Register a new account
// @Description Adds an account to the chart of accounts. The account id is generated when omitted.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Account id already exists"
// @Failure 500 {object} ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create account", slog.String("account_name", req.Name), slog.String("account_type", string(req.AccountType)))

	account, err := h.ledger.RegisterAccount(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account, account.OpeningBalance))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves an account together with its current balance
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	account, err := h.ledger.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "retrieve account")
		return
	}
	balance, err := h.ledger.BalanceOf(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account, balance))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists every account in registration order with its current balance
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts := h.ledger.ListAccounts(c.Request.Context())
	response := dto.ListAccountsResponse{Accounts: make([]dto.AccountResponse, 0, len(accounts))}
	for i := range accounts {
		balance, err := h.ledger.BalanceOf(c.Request.Context(), accounts[i].AccountID)
		if err != nil {
			respondError(c, logger, err, "list accounts")
			return
		}
		response.Accounts = append(response.Accounts, dto.ToAccountResponse(&accounts[i], balance))
	}

	c.JSON(http.StatusOK, response)
}

// getAccountBalance godoc
// @Summary Get account balance
// @Description Opening balance plus every posted line, signed by the account's normal side
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	balance, err := h.ledger.BalanceOf(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "retrieve account balance")
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{AccountID: accountID, Balance: balance})
}
