package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "brokerledger/internal/errors"
	"brokerledger/internal/pagination"
	"brokerledger/internal/services"
)

// HoldingHandler handles account-asset holding requests.
type HoldingHandler struct {
	holdingService services.HoldingServicer
}

// NewHoldingHandler creates a new HoldingHandler.
func NewHoldingHandler(holdingService services.HoldingServicer) *HoldingHandler {
	return &HoldingHandler{holdingService: holdingService}
}

// CreateHoldingRequest represents the request payload for creating a holding.
type CreateHoldingRequest struct {
	AccountID uint             `json:"account_id" binding:"required"`
	AssetID   uint             `json:"asset_id" binding:"required"`
	Quantity  *decimal.Decimal `json:"quantity,omitempty"`
}

// UpdateHoldingRequest represents the request payload for updating a holding's quantity.
type UpdateHoldingRequest struct {
	Quantity *decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateHolding handles creating a new holding row.
// @Summary     Create holding
// @Tags        holdings
// @Accept      json
// @Produce     json
// @Param       request body CreateHoldingRequest true "Holding details"
// @Success     201 {object} models.AccountAsset "Holding created"
// @Failure     400 {object} ErrorResponse "Invalid input or missing reference"
// @Failure     409 {object} ErrorResponse "Holding already exists for this account and asset"
// @Router      /holdings [post]
func (h *HoldingHandler) CreateHolding(c *gin.Context) {
	var req CreateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	quantity := decimal.Zero
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	holding, err := h.holdingService.CreateHolding(req.AccountID, req.AssetID, quantity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"holding": holding})
}

// ListAccountHoldings handles listing the holdings of one account.
// @Summary     List account holdings
// @Tags        accounts
// @Produce     json
// @Param       id        path  int false "Account ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.AccountAsset] "Paginated holdings"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /accounts/{id}/holdings [get]
func (h *HoldingHandler) ListAccountHoldings(c *gin.Context) {
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

	result, err := h.holdingService.ListAccountHoldings(id, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetHolding handles retrieving a specific holding.
// @Summary     Get holding by ID
// @Tags        holdings
// @Produce     json
// @Param       id path int true "Holding ID"
// @Success     200 {object} models.AccountAsset "Holding"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /holdings/{id} [get]
func (h *HoldingHandler) GetHolding(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	holding, err := h.holdingService.GetHoldingByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holding": holding})
}

// UpdateHolding handles updating a holding's quantity.
// @Summary     Update holding quantity
// @Tags        holdings
// @Accept      json
// @Produce     json
// @Param       id      path int                  true "Holding ID"
// @Param       request body UpdateHoldingRequest true "New quantity"
// @Success     200 {object} models.AccountAsset "Updated holding"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /holdings/{id} [put]
func (h *HoldingHandler) UpdateHolding(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.holdingService.UpdateHoldingQuantity(id, *req.Quantity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holding": holding})
}

// DeleteHolding handles deleting a holding row.
// @Summary     Delete holding
// @Tags        holdings
// @Param       id path int true "Holding ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /holdings/{id} [delete]
func (h *HoldingHandler) DeleteHolding(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.holdingService.DeleteHolding(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
