package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Vikas-Jha19/expense-tracker/models"
	"github.com/gin-gonic/gin"
)

// validateTransaction проверяет обязательные поля одинаково для create и update.
func validateTransaction(req *models.CreateTransaction) error {
	if req.Type != "income" && req.Type != "expense" {
		return errors.New("type must be 'income' or 'expense'")
	}
	if req.Category == "" {
		return errors.New("category is required")
	}
	if req.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	if req.Date == "" {
		return errors.New("date is required")
	}
	return nil
}

// CreateTransaction godoc
// @Summary Add a new transaction
// @Tags transactions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.CreateTransaction true "Transaction fields"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transactions [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req models.CreateTransaction
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateTransaction(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction := models.Transaction{
		UserID:      currentUserID(c),
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	}
	if err := h.storage.CreateTransaction(&transaction); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// GetTransactions godoc
// @Summary List transactions with pagination and filters
// @Tags transactions
// @Security ApiKeyAuth
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param type query string false "Filter by type (income or expense)"
// @Param min_amount query number false "Minimum amount"
// @Param max_amount query number false "Maximum amount"
// @Param sort query string false "Sort by id (asc or desc)"
// @Success 200 {array} models.Transaction
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page parameter"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
		return
	}

	typeFilter := c.Query("type")
	if typeFilter != "" && typeFilter != "income" && typeFilter != "expense" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type filter: must be 'income' or 'expense'"})
		return
	}
	sort := c.Query("sort")
	if sort != "" && sort != "asc" && sort != "desc" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort parameter: must be 'asc' or 'desc'"})
		return
	}

	var minAmount, maxAmount float64
	if v := c.Query("min_amount"); v != "" {
		if minAmount, err = strconv.ParseFloat(v, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_amount parameter"})
			return
		}
	}
	if v := c.Query("max_amount"); v != "" {
		if maxAmount, err = strconv.ParseFloat(v, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_amount parameter"})
			return
		}
	}

	transactions, total, err := h.storage.GetTransactions(currentUserID(c), typeFilter, minAmount, maxAmount, sort, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(total))
	c.JSON(http.StatusOK, transactions)
}

// GetTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transactions/{id} [get]
func (h *Handler) GetTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	transaction, err := h.storage.GetTransaction(id, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	// Чужая транзакция неотличима от несуществующей
	if transaction == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction godoc
// @Summary Update a transaction by ID
// @Tags transactions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param input body models.CreateTransaction true "Transaction fields"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transactions/{id} [put]
func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	var req models.CreateTransaction
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateTransaction(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction := models.Transaction{
		ID:          id,
		UserID:      currentUserID(c),
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	}
	updated, err := h.storage.UpdateTransaction(&transaction)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "transaction updated"})
}

// DeleteTransaction godoc
// @Summary Delete a transaction by ID
// @Tags transactions
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transactions/{id} [delete]
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	deleted, err := h.storage.DeleteTransaction(id, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "transaction deleted"})
}

// GetSummary godoc
// @Summary Get income, expense and balance totals
// @Tags reports
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.Summary
// @Failure 500 {object} models.ErrorResponse
// @Router /summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.storage.GetSummary(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetMonthlyReport godoc
// @Summary Get spending totals grouped by category
// @Tags reports
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.CategoryTotal
// @Failure 500 {object} models.ErrorResponse
// @Router /reports/monthly [get]
func (h *Handler) GetMonthlyReport(c *gin.Context) {
	report, err := h.storage.GetCategoryReport(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
