package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/cashflow_app/internal/apperrors"
	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portssvc "github.com/SscSPs/cashflow_app/internal/core/ports/services"
	"github.com/SscSPs/cashflow_app/internal/dto"
	"github.com/SscSPs/cashflow_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers routes related to transactions. Writes
// go through writeGuard (the rate limiter) when one is given.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, writeGuard ...gin.HandlerFunc) {
	h := newTransactionHandler(ts)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
	}

	writes := transactions.Group("", writeGuard...)
	{
		writes.POST("", h.createTransaction)
		writes.PUT("/:id", h.updateTransaction)
		writes.DELETE("/:id", h.deleteTransaction)
	}
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationFailedError("id must be a positive integer")
	}
	return id, nil
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records an income or outcome transaction for the caller
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.WriteResult
// @Failure 400 {object} dto.WriteResult "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} dto.WriteResult "Failed to create transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := userFromContext(c, logger)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.WriteFailure("Invalid request format: "+err.Error()))
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondWriteError(c, logger, err, "Failed to create transaction")
		return
	}

	resp := dto.ToTransactionResponse(*txn)
	c.JSON(http.StatusCreated, dto.WriteResult{Success: true, Transaction: &resp})
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Changes the given fields of one of the caller's transactions
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.WriteResult
// @Failure 400 {object} dto.WriteResult "Validation error"
// @Failure 404 {object} dto.WriteResult "Transaction not found"
// @Failure 500 {object} dto.WriteResult "Failed to update transaction"
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := userFromContext(c, logger)
	if !ok {
		return
	}
	id, err := parseID(c)
	if err != nil {
		respondWriteError(c, logger, err, "Invalid transaction id")
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.WriteFailure("Invalid request format: "+err.Error()))
		return
	}

	logger = logger.With(slog.Int64("transaction_id", id))
	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, id, req)
	if err != nil {
		respondWriteError(c, logger, err, "Failed to update transaction")
		return
	}

	logger.Info("Transaction updated")
	resp := dto.ToTransactionResponse(*txn)
	c.JSON(http.StatusOK, dto.WriteResult{Success: true, Transaction: &resp})
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Soft deletes one of the caller's transactions
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.WriteResult
// @Failure 404 {object} dto.WriteResult "Transaction not found"
// @Failure 500 {object} dto.WriteResult "Failed to delete transaction"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := userFromContext(c, logger)
	if !ok {
		return
	}
	id, err := parseID(c)
	if err != nil {
		respondWriteError(c, logger, err, "Invalid transaction id")
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, id); err != nil {
		respondWriteError(c, logger.With(slog.Int64("transaction_id", id)), err, "Failed to delete transaction")
		return
	}
	c.JSON(http.StatusOK, dto.WriteResult{Success: true})
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := userFromContext(c, logger)
	if !ok {
		return
	}
	id, err := parseID(c)
	if err != nil {
		respondError(c, logger, err, "Invalid transaction id")
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the caller's transactions in a date range, grouped by day. Defaults to the current month.
// @Tags transactions
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param categoryType query string false "income or outcome"
// @Param categoryId query int false "Category ID"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := userFromContext(c, logger)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	r, err := dto.ParseDateRange(params.StartDate, params.EndDate)
	if err != nil {
		respondError(c, logger, err, "Invalid date range")
		return
	}
	q := domain.TransactionQuery{
		Range:        r,
		CategoryType: domain.CategoryType(params.CategoryType),
		CategoryID:   params.CategoryID,
	}

	listing, err := h.transactionService.ListTransactions(c.Request.Context(), userID, q)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(listing))
}
