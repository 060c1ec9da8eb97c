package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "brokerledger/internal/errors"
	"brokerledger/internal/models"
	"brokerledger/internal/pagination"
	"brokerledger/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents the request payload for creating an account.
type CreateAccountRequest struct {
	Number     string             `json:"number" binding:"required,min=1,max=50"`
	Type       models.AccountType `json:"type" binding:"required,account_type"`
	OpenDate   *time.Time         `json:"open_date,omitempty"`
	InvestorID uint               `json:"investor_id" binding:"required"`
	BrokerID   uint               `json:"broker_id" binding:"required"`
}

// UpdateAccountRequest represents the request payload for updating an account.
type UpdateAccountRequest struct {
	Number *string               `json:"number,omitempty"`
	Type   *models.AccountType   `json:"type,omitempty" binding:"omitempty,account_type"`
	Status *models.AccountStatus `json:"status,omitempty" binding:"omitempty,account_status"`
}

// CreateAccount handles creating a new account.
// @Summary     Create account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       request body CreateAccountRequest true "Account details"
// @Success     201 {object} models.Account "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input or missing reference"
// @Failure     409 {object} ErrorResponse "Duplicate account number"
// @Router      /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var openDate time.Time
	if req.OpenDate != nil {
		openDate = *req.OpenDate
	}

	account, err := h.accountService.CreateAccount(req.Number, req.Type, openDate, req.InvestorID, req.BrokerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// ListAccounts handles listing accounts with optional filters.
// @Summary     List accounts
// @Tags        accounts
// @Produce     json
// @Param       investor_id query int    false "Filter by investor"
// @Param       broker_id   query int    false "Filter by broker"
// @Param       status      query string false "Filter by status (active, closed, blocked)"
// @Param       opened_from query string false "Open date lower bound (RFC 3339 or YYYY-MM-DD)"
// @Param       opened_to   query string false "Open date upper bound (RFC 3339 or YYYY-MM-DD)"
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Account] "Paginated accounts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := buildAccountFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.accountService.ListAccounts(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// buildAccountFilter parses account list filters from query parameters.
func buildAccountFilter(c *gin.Context) (services.AccountFilter, error) {
	var filter services.AccountFilter
	var err error

	if filter.InvestorID, err = parseQueryUint(c, "investor_id"); err != nil {
		return filter, err
	}
	if filter.BrokerID, err = parseQueryUint(c, "broker_id"); err != nil {
		return filter, err
	}
	if raw := c.Query("status"); raw != "" {
		status := models.AccountStatus(raw)
		if !status.Valid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid status")
		}
		filter.Status = &status
	}
	if filter.OpenedFrom, err = parseQueryTime(c, "opened_from"); err != nil {
		return filter, err
	}
	if filter.OpenedTo, err = parseQueryTime(c, "opened_to"); err != nil {
		return filter, err
	}
	return filter, nil
}

// GetAccount handles retrieving a specific account.
// @Summary     Get account by ID
// @Tags        accounts
// @Produce     json
// @Param       id path int true "Account ID"
// @Success     200 {object} models.Account "Account"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// UpdateAccount handles updating an account.
// @Summary     Update account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       id      path int                  true "Account ID"
// @Param       request body UpdateAccountRequest true "Fields to update"
// @Success     200 {object} models.Account "Updated account"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Duplicate account number"
// @Router      /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.UpdateAccount(id, services.AccountUpdate{
		Number: req.Number,
		Type:   req.Type,
		Status: req.Status,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// DeleteAccount handles deleting an account and its dependent holdings.
// @Summary     Delete account
// @Description Deletes the account together with its holdings and transactions
// @Tags        accounts
// @Param       id path int true "Account ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeleteAccount(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
