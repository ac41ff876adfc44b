package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/mzigohq/accounting_backend/internal/core/ports/services"
	"github.com/mzigohq/accounting_backend/internal/dto"
)

type bankHandler struct {
	bankService portssvc.BankSvcFacade
}

// registerBankRoutes registers routes for bank accounts, statement
// transactions and reconciliation.
func registerBankRoutes(rg *gin.RouterGroup, bankService portssvc.BankSvcFacade) {
	h := &bankHandler{bankService: bankService}

	accounts := rg.Group("/bank-accounts")
	{
		accounts.POST("", h.createBankAccount)
		accounts.GET("", h.listBankAccounts)
		accounts.GET("/:id", h.getBankAccount)
		accounts.PUT("/:id", h.updateBankAccount)
		accounts.POST("/:id/transactions", h.createTransaction)
		accounts.GET("/:id/transactions", h.listTransactions)
		accounts.GET("/:id/reconciliation-summary", h.reconciliationSummary)
	}

	txns := rg.Group("/bank-transactions")
	{
		txns.GET("/:id/matches", h.findMatches)
		txns.POST("/:id/reconcile", h.reconcile)
		txns.POST("/:id/unreconcile", h.unreconcile)
	}
}

// createBankAccount godoc
// @Summary Register a bank account
// @Description Links a physical bank account to an active asset account in the chart
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateBankAccountRequest true "Bank account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Duplicate account number"
// @Router /bank-accounts [post]
func (h *bankHandler) createBankAccount(c *gin.Context) {
	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	acc, err := h.bankService.CreateBankAccount(c.Request.Context(), req, actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(acc, acc.OpeningBalance))
}

// listBankAccounts godoc
// @Summary List bank accounts with derived balances
// @Tags bank
// @Produce  json
// @Success 200 {array} dto.BankAccountResponse
// @Router /bank-accounts [get]
func (h *bankHandler) listBankAccounts(c *gin.Context) {
	accounts, err := h.bankService.ListBankAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.BankAccountResponse, 0, len(accounts))
	for i := range accounts {
		balance, err := h.bankService.CurrentBalance(c.Request.Context(), accounts[i].BankAccountID)
		if err != nil {
			respondError(c, err)
			return
		}
		out = append(out, dto.ToBankAccountResponse(&accounts[i], balance))
	}
	c.JSON(http.StatusOK, out)
}

// getBankAccount godoc
// @Summary Get a bank account with its derived balance
// @Tags bank
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 404 {object} map[string]string "Not found"
// @Router /bank-accounts/{id} [get]
func (h *bankHandler) getBankAccount(c *gin.Context) {
	acc, err := h.bankService.GetBankAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	balance, err := h.bankService.CurrentBalance(c.Request.Context(), acc.BankAccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(acc, balance))
}

// updateBankAccount godoc
// @Summary Update a bank account's details
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Param   account body dto.UpdateBankAccountRequest true "Fields to update"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 404 {object} map[string]string "Not found"
// @Router /bank-accounts/{id} [put]
func (h *bankHandler) updateBankAccount(c *gin.Context) {
	var req dto.UpdateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	acc, err := h.bankService.UpdateBankAccount(c.Request.Context(), c.Param("id"), req, actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	balance, err := h.bankService.CurrentBalance(c.Request.Context(), acc.BankAccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(acc, balance))
}

// createTransaction godoc
// @Summary Record a statement line
// @Description Exactly one of debitAmount and creditAmount must be positive
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Param   transaction body dto.CreateBankTransactionRequest true "Statement line"
// @Success 201 {object} dto.BankTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /bank-accounts/{id}/transactions [post]
func (h *bankHandler) createTransaction(c *gin.Context) {
	var req dto.CreateBankTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.bankService.CreateTransaction(c.Request.Context(), c.Param("id"), req, actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List statement lines for a bank account
// @Tags bank
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Param   onlyUnreconciled query bool false "Return only unreconciled lines"
// @Success 200 {array} dto.BankTransactionResponse
// @Router /bank-accounts/{id}/transactions [get]
func (h *bankHandler) listTransactions(c *gin.Context) {
	var params dto.ListBankTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	txns, err := h.bankService.ListTransactions(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankTransactionResponses(txns))
}

// findMatches godoc
// @Summary Propose journal lines matching a statement line
// @Description Returns posted, unreconciled journal lines on the linked chart account, exact matches first
// @Tags bank
// @Produce  json
// @Param   id path string true "Bank transaction ID"
// @Param   strategy query string false "Matching strategy (amount-only or amount-date-window)"
// @Success 200 {array} dto.MatchResultResponse
// @Failure 409 {object} map[string]string "Transaction already reconciled"
// @Router /bank-transactions/{id}/matches [get]
func (h *bankHandler) findMatches(c *gin.Context) {
	var params dto.FindMatchesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	results, err := h.bankService.FindMatches(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMatchResultResponses(results))
}

// reconcile godoc
// @Summary Confirm a match between a statement line and a journal entry
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   id path string true "Bank transaction ID"
// @Param   match body dto.ReconcileRequest true "Journal entry to link"
// @Success 200 {object} dto.BankTransactionResponse
// @Failure 409 {object} map[string]string "Already reconciled or entry not posted"
// @Router /bank-transactions/{id}/reconcile [post]
func (h *bankHandler) reconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.bankService.Reconcile(c.Request.Context(), c.Param("id"), req, actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankTransactionResponse(txn))
}

// unreconcile godoc
// @Summary Clear a previously confirmed match
// @Tags bank
// @Produce  json
// @Param   id path string true "Bank transaction ID"
// @Success 200 {object} dto.BankTransactionResponse
// @Failure 409 {object} map[string]string "Transaction not reconciled"
// @Router /bank-transactions/{id}/unreconcile [post]
func (h *bankHandler) unreconcile(c *gin.Context) {
	txn, err := h.bankService.Unreconcile(c.Request.Context(), c.Param("id"), actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankTransactionResponse(txn))
}

// reconciliationSummary godoc
// @Summary Reconciliation summary for a bank account
// @Description Reports matched/unmatched counts and bank-versus-book balance difference
// @Tags bank
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Success 200 {object} dto.ReconciliationSummaryResponse
// @Failure 404 {object} map[string]string "Not found"
// @Router /bank-accounts/{id}/reconciliation-summary [get]
func (h *bankHandler) reconciliationSummary(c *gin.Context) {
	summary, err := h.bankService.ReconciliationSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationSummaryResponse(summary))
}
