package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/middleware"
)

// subsidiaryHandler carries what the student, supplier and staff handlers share.
type subsidiaryHandler struct {
	ledger portssvc.LedgerSvcFacade
	ops    portssvc.OperationsSvcFacade
	kind   domain.SubsidiaryKind
}

// respondEntity writes an entity with its derived balance.
func (h *subsidiaryHandler) respondEntity(c *gin.Context, logger *slog.Logger, status int, id string, entity any) {
	balance, err := h.ledger.SubsidiaryBalance(c.Request.Context(), domain.SubsidiaryRef{Kind: h.kind, ID: id})
	if err != nil {
		respondError(c, logger, err, "retrieve balance")
		return
	}
	c.JSON(status, dto.SubsidiaryEntityResponse{Entity: entity, Balance: balance})
}

// getStatement returns the entity's balance and every journal tagged to it.
func (h *subsidiaryHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ref := domain.SubsidiaryRef{Kind: h.kind, ID: c.Param("id")}

	balance, err := h.ledger.SubsidiaryBalance(c.Request.Context(), ref)
	if err != nil {
		respondError(c, logger, err, "retrieve statement")
		return
	}
	journals := h.ledger.ListJournals(c.Request.Context(), dto.ListJournalsParams{
		SubsidiaryKind: ref.Kind,
		SubsidiaryID:   ref.ID,
	})

	c.JSON(http.StatusOK, dto.SubsidiaryLedgerResponse{
		Ref:      ref,
		Balance:  balance,
		Journals: dto.ToJournalResponses(journals),
	})
}

// respondPosted writes the journal produced by a school operation.
func respondPosted(c *gin.Context, logger *slog.Logger, journal *domain.Journal, err error, action string) {
	if err != nil {
		respondError(c, logger, err, action)
		return
	}
	logger.Info("Operation posted", slog.String("action", action), slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// withBalances pairs entities with the balances reported for their kind.
func withBalances[T any](balances []domain.SubsidiaryBalance, entities []T, idOf func(T) string) dto.ListSubsidiaryEntitiesResponse {
	byID := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		byID[b.Ref.ID] = b.Balance
	}
	response := dto.ListSubsidiaryEntitiesResponse{
		Entities: make([]dto.SubsidiaryEntityResponse, 0, len(entities)),
		Total:    decimal.Zero,
	}
	for _, e := range entities {
		balance := byID[idOf(e)]
		response.Entities = append(response.Entities, dto.SubsidiaryEntityResponse{Entity: e, Balance: balance})
		response.Total = response.Total.Add(balance)
	}
	return response
}

// --- Students ---

type studentHandler struct {
	subsidiaryHandler
}

// registerStudentRoutes registers enrolment, billing and cashiering routes.
func registerStudentRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, ops portssvc.OperationsSvcFacade) {
	h := &studentHandler{subsidiaryHandler{ledger: ledger, ops: ops, kind: domain.SubsidiaryStudent}}

	students := rg.Group("/students")
	{
		students.POST("", h.createStudent)
		students.GET("", h.listStudents)
		students.GET("/:id", h.getStudent)
		students.GET("/:id/ledger", h.getStatement)
		students.POST("/:id/charges", h.assessFee)
		students.POST("/:id/payments", h.receivePayment)
	}
}

// createStudent godoc
// @Summary Enrol a student
// @Tags students
// @Accept json
// @Produce json
// @Param student body dto.CreateStudentRequest true "Student details"
// @Success 201 {object} dto.SubsidiaryEntityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Student id already exists"
// @Security BearerAuth
// @Router /students [post]
func (h *studentHandler) createStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateStudentRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	student, err := h.ledger.RegisterStudent(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "register student")
		return
	}
	h.respondEntity(c, logger, http.StatusCreated, student.StudentID, student)
}

// listStudents godoc
// @Summary List students with their receivable balances
// @Tags students
// @Produce json
// @Success 200 {object} dto.ListSubsidiaryEntitiesResponse
// @Security BearerAuth
// @Router /students [get]
func (h *studentHandler) listStudents(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, withBalances(
		h.ledger.ListSubsidiaryBalances(ctx, h.kind),
		h.ledger.ListStudents(ctx),
		func(s domain.Student) string { return s.StudentID },
	))
}

// getStudent godoc
// @Summary Get a student
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.SubsidiaryEntityResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /students/{id} [get]
func (h *studentHandler) getStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	student, err := h.ledger.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "retrieve student")
		return
	}
	h.respondEntity(c, logger, http.StatusOK, student.StudentID, student)
}

// assessFee godoc
// @Summary Charge a fee to a student
// @Description Posts Dr Receivable / Cr Tuition Revenue tagged to the student
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param charge body dto.AssessFeeRequest true "Charge"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /students/{id}/charges [post]
func (h *studentHandler) assessFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AssessFeeRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	journal, err := h.ops.AssessFee(c.Request.Context(), c.Param("id"), req, actor)
	respondPosted(c, logger, journal, err, "assess fee")
}

// receivePayment godoc
// @Summary Record a student payment
// @Description Posts Dr Cash / Cr Receivable tagged to the student
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payment body dto.StudentPaymentRequest true "Payment"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /students/{id}/payments [post]
func (h *studentHandler) receivePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StudentPaymentRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	journal, err := h.ops.PostStudentPayment(c.Request.Context(), c.Param("id"), req, actor)
	respondPosted(c, logger, journal, err, "record student payment")
}

// --- Suppliers ---

type supplierHandler struct {
	subsidiaryHandler
}

func registerSupplierRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, ops portssvc.OperationsSvcFacade) {
	h := &supplierHandler{subsidiaryHandler{ledger: ledger, ops: ops, kind: domain.SubsidiarySupplier}}

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("", h.listSuppliers)
		suppliers.GET("/:id", h.getSupplier)
		suppliers.GET("/:id/ledger", h.getStatement)
		suppliers.POST("/:id/invoices", h.recordInvoice)
		suppliers.POST("/:id/payments", h.paySupplier)
	}
}

// createSupplier godoc
// @Summary Register a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param supplier body dto.CreateSupplierRequest true "Supplier details"
// @Success 201 {object} dto.SubsidiaryEntityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /suppliers [post]
func (h *supplierHandler) createSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSupplierRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	supplier, err := h.ledger.RegisterSupplier(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "register supplier")
		return
	}
	h.respondEntity(c, logger, http.StatusCreated, supplier.SupplierID, supplier)
}

func (h *supplierHandler) listSuppliers(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, withBalances(
		h.ledger.ListSubsidiaryBalances(ctx, h.kind),
		h.ledger.ListSuppliers(ctx),
		func(s domain.Supplier) string { return s.SupplierID },
	))
}

func (h *supplierHandler) getSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	supplier, err := h.ledger.GetSupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "retrieve supplier")
		return
	}
	h.respondEntity(c, logger, http.StatusOK, supplier.SupplierID, supplier)
}

// recordInvoice godoc
// @Summary Record a supplier invoice
// @Description Posts Dr expense / Cr Payable tagged to the supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param id path string true "Supplier ID"
// @Param invoice body dto.PurchaseInvoiceRequest true "Invoice"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /suppliers/{id}/invoices [post]
func (h *supplierHandler) recordInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PurchaseInvoiceRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	journal, err := h.ops.PostPurchaseInvoice(c.Request.Context(), c.Param("id"), req, actor)
	respondPosted(c, logger, journal, err, "record purchase invoice")
}

// paySupplier godoc
// @Summary Pay a supplier
// @Description Posts Dr Payable / Cr Cash tagged to the supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param id path string true "Supplier ID"
// @Param payment body dto.SupplierPaymentRequest true "Payment"
// @Success 201 {object} dto.JournalResponse
// @Security BearerAuth
// @Router /suppliers/{id}/payments [post]
func (h *supplierHandler) paySupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SupplierPaymentRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	journal, err := h.ops.PostSupplierPayment(c.Request.Context(), c.Param("id"), req, actor)
	respondPosted(c, logger, journal, err, "record supplier payment")
}

// --- Staff ---

type staffHandler struct {
	subsidiaryHandler
}

func registerStaffRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, ops portssvc.OperationsSvcFacade) {
	h := &staffHandler{subsidiaryHandler{ledger: ledger, ops: ops, kind: domain.SubsidiaryStaff}}

	staff := rg.Group("/staff")
	{
		staff.POST("", h.createStaff)
		staff.GET("", h.listStaff)
		staff.GET("/:id", h.getStaff)
		staff.GET("/:id/ledger", h.getStatement)
		staff.POST("/:id/payroll", h.postPayroll)
		staff.POST("/:id/loans", h.grantLoan)
	}
}

// createStaff godoc
// @Summary Register a staff member
// @Tags staff
// @Accept json
// @Produce json
// @Param staff body dto.CreateStaffRequest true "Staff details"
// @Success 201 {object} dto.SubsidiaryEntityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /staff [post]
func (h *staffHandler) createStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateStaffRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	member, err := h.ledger.RegisterStaff(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "register staff")
		return
	}
	h.respondEntity(c, logger, http.StatusCreated, member.StaffID, member)
}

func (h *staffHandler) listStaff(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, withBalances(
		h.ledger.ListSubsidiaryBalances(ctx, h.kind),
		h.ledger.ListStaff(ctx),
		func(s domain.Staff) string { return s.StaffID },
	))
}

func (h *staffHandler) getStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	member, err := h.ledger.GetStaff(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "retrieve staff")
		return
	}
	h.respondEntity(c, logger, http.StatusOK, member.StaffID, member)
}

// postPayroll godoc
// @Summary Post a staff member's payroll
// @Description Gross pay debits salaries. Net pay credits cash, loan amortisation credits staff loans and withholdings credit the withholdings payable account.
// @Tags staff
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param payroll body dto.PayrollRequest true "Payroll"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse "Deductions exceed gross pay"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /staff/{id}/payroll [post]
func (h *staffHandler) postPayroll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PayrollRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	journal, err := h.ops.PostPayroll(c.Request.Context(), c.Param("id"), req, actor)
	respondPosted(c, logger, journal, err, "post payroll")
}

// grantLoan godoc
// @Summary Grant a staff loan
// @Tags staff
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param loan body dto.StaffLoanRequest true "Loan"
// @Success 201 {object} dto.JournalResponse
// @Security BearerAuth
// @Router /staff/{id}/loans [post]
func (h *staffHandler) grantLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StaffLoanRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	journal, err := h.ops.GrantStaffLoan(c.Request.Context(), c.Param("id"), req, actor)
	respondPosted(c, logger, journal, err, "grant staff loan")
}
