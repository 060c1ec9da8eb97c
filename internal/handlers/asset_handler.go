package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "brokerledger/internal/errors"
	"brokerledger/internal/models"
	"brokerledger/internal/pagination"
	"brokerledger/internal/services"
)

// AssetHandler handles asset-related requests.
type AssetHandler struct {
	assetService services.AssetServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// CreateAssetRequest represents the request payload for creating an asset.
type CreateAssetRequest struct {
	Name      string           `json:"name" binding:"required,min=1,max=200"`
	Ticker    string           `json:"ticker" binding:"required"`
	Type      models.AssetType `json:"type" binding:"required,asset_type"`
	Currency  models.Currency  `json:"currency,omitempty" binding:"omitempty,nominal_currency"`
	UnitPrice *decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdateAssetRequest represents the request payload for updating an asset.
type UpdateAssetRequest struct {
	Name      *string           `json:"name,omitempty"`
	Ticker    *string           `json:"ticker,omitempty"`
	Type      *models.AssetType `json:"type,omitempty" binding:"omitempty,asset_type"`
	Currency  *models.Currency  `json:"currency,omitempty" binding:"omitempty,nominal_currency"`
	UnitPrice *decimal.Decimal  `json:"unit_price,omitempty"`
}

// CreateAsset handles creating a new asset.
// @Summary     Create asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       request body CreateAssetRequest true "Asset details"
// @Success     201 {object} models.Asset "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate ticker"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.CreateAsset(req.Name, req.Ticker, req.Type, req.Currency, *req.UnitPrice)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// ListAssets handles listing assets.
// @Summary     List assets
// @Tags        assets
// @Produce     json
// @Param       search    query string false "Search by name or ticker"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Asset] "Paginated assets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.assetService.ListAssets(c.Query("search"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAsset handles retrieving a specific asset.
// @Summary     Get asset by ID
// @Tags        assets
// @Produce     json
// @Param       id path int true "Asset ID"
// @Success     200 {object} models.Asset "Asset"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.GetAssetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// UpdateAsset handles updating an asset.
// @Summary     Update asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       id      path int                true "Asset ID"
// @Param       request body UpdateAssetRequest true "Fields to update"
// @Success     200 {object} models.Asset "Updated asset"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Duplicate ticker"
// @Router      /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.UpdateAsset(id, services.AssetUpdate{
		Name:      req.Name,
		Ticker:    req.Ticker,
		Type:      req.Type,
		Currency:  req.Currency,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// DeleteAsset handles deleting an asset and its dependent holdings.
// @Summary     Delete asset
// @Description Deletes the asset, cascading to holdings and clearing transaction references
// @Tags        assets
// @Param       id path int true "Asset ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetService.DeleteAsset(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
