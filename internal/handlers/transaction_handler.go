package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "brokerledger/internal/errors"
	"brokerledger/internal/models"
	"brokerledger/internal/pagination"
	"brokerledger/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
type CreateTransactionRequest struct {
	AccountID     uint                 `json:"account_id" binding:"required"`
	AssetID       *uint                `json:"asset_id,omitempty"`
	OperationType models.OperationType `json:"operation_type" binding:"required,operation_type"`
	Quantity      *decimal.Decimal     `json:"quantity,omitempty"`
	Amount        *decimal.Decimal     `json:"amount" binding:"required"`
	Currency      models.Currency      `json:"currency,omitempty" binding:"omitempty,settlement_currency"`
	OccurredAt    *time.Time           `json:"occurred_at,omitempty"`
	Description   string               `json:"description,omitempty"`
}

// UpdateTransactionRequest represents the request payload for updating a transaction.
// Setting clear_asset removes the asset reference.
type UpdateTransactionRequest struct {
	OperationType *models.OperationType `json:"operation_type,omitempty" binding:"omitempty,operation_type"`
	AssetID       *uint                 `json:"asset_id,omitempty"`
	ClearAsset    bool                  `json:"clear_asset,omitempty"`
	Quantity      *decimal.Decimal      `json:"quantity,omitempty"`
	Amount        *decimal.Decimal      `json:"amount,omitempty"`
	Currency      *models.Currency      `json:"currency,omitempty" binding:"omitempty,settlement_currency"`
	OccurredAt    *time.Time            `json:"occurred_at,omitempty"`
	Description   *string               `json:"description,omitempty"`
}

// CreateTransaction handles creating a new transaction.
// @Summary     Create transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input or dangling reference"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in := services.TransactionInput{
		AccountID:     req.AccountID,
		AssetID:       req.AssetID,
		OperationType: req.OperationType,
		Quantity:      req.Quantity,
		Amount:        *req.Amount,
		Currency:      req.Currency,
		Description:   req.Description,
	}
	if req.OccurredAt != nil {
		in.OccurredAt = *req.OccurredAt
	}

	transaction, err := h.transactionService.CreateTransaction(in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions handles listing transactions with optional filters,
// newest first.
// @Summary     List transactions
// @Tags        transactions
// @Produce     json
// @Param       account_id     query int    false "Filter by account"
// @Param       asset_id       query int    false "Filter by asset"
// @Param       operation_type query string false "Filter by operation type"
// @Param       from           query string false "Occurrence lower bound (RFC 3339 or YYYY-MM-DD)"
// @Param       to             query string false "Occurrence upper bound (RFC 3339 or YYYY-MM-DD)"
// @Param       min_amount     query number false "Minimum amount"
// @Param       max_amount     query number false "Maximum amount"
// @Param       page           query int    false "Page number (default 1)"
// @Param       page_size      query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := buildTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.ListTransactions(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAccountTransactions handles listing the transactions of one account.
// @Summary     List account transactions
// @Tags        accounts
// @Produce     json
// @Param       id        path  int false "Account ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /accounts/{id}/transactions [get]
func (h *TransactionHandler) GetAccountTransactions(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TransactionFilter{AccountID: &id}
	result, err := h.transactionService.ListTransactions(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// buildTransactionFilter parses transaction list filters from query parameters.
func buildTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter
	var err error

	if filter.AccountID, err = parseQueryUint(c, "account_id"); err != nil {
		return filter, err
	}
	if filter.AssetID, err = parseQueryUint(c, "asset_id"); err != nil {
		return filter, err
	}
	if raw := c.Query("operation_type"); raw != "" {
		op := models.OperationType(raw)
		if !op.Valid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid operation_type")
		}
		filter.OperationType = &op
	}
	if filter.From, err = parseQueryTime(c, "from"); err != nil {
		return filter, err
	}
	if filter.To, err = parseQueryTime(c, "to"); err != nil {
		return filter, err
	}
	if raw := c.Query("min_amount"); raw != "" {
		d, derr := decimal.NewFromString(raw)
		if derr != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid min_amount")
		}
		filter.MinAmount = &d
	}
	if raw := c.Query("max_amount"); raw != "" {
		d, derr := decimal.NewFromString(raw)
		if derr != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid max_amount")
		}
		filter.MaxAmount = &d
	}
	return filter, nil
}

// GetTransaction handles retrieving a specific transaction.
// @Summary     Get transaction by ID
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles updating a transaction.
// @Summary     Update transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path int                      true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(id, services.TransactionUpdate{
		OperationType: req.OperationType,
		AssetID:       req.AssetID,
		ClearAsset:    req.ClearAsset,
		Quantity:      req.Quantity,
		Amount:        req.Amount,
		Currency:      req.Currency,
		OccurredAt:    req.OccurredAt,
		Description:   req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction.
// @Summary     Delete transaction
// @Tags        transactions
// @Param       id path int true "Transaction ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
