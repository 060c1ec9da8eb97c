package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "brokerledger/internal/errors"
	"brokerledger/internal/pagination"
	"brokerledger/internal/services"
)

// BrokerHandler handles broker-related requests.
type BrokerHandler struct {
	brokerService services.BrokerServicer
}

// NewBrokerHandler creates a new BrokerHandler.
func NewBrokerHandler(brokerService services.BrokerServicer) *BrokerHandler {
	return &BrokerHandler{brokerService: brokerService}
}

// CreateBrokerRequest represents the request payload for creating a broker.
type CreateBrokerRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=200"`
	LicenseNumber  string `json:"license_number" binding:"required"`
	ContactDetails string `json:"contact_details,omitempty"`
}

// UpdateBrokerRequest represents the request payload for updating a broker.
type UpdateBrokerRequest struct {
	Name           *string `json:"name,omitempty"`
	LicenseNumber  *string `json:"license_number,omitempty"`
	ContactDetails *string `json:"contact_details,omitempty"`
}

// CreateBroker handles creating a new broker.
// @Summary     Create broker
// @Tags        brokers
// @Accept      json
// @Produce     json
// @Param       request body CreateBrokerRequest true "Broker details"
// @Success     201 {object} models.Broker "Broker created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate license number"
// @Router      /brokers [post]
func (h *BrokerHandler) CreateBroker(c *gin.Context) {
	var req CreateBrokerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	broker, err := h.brokerService.CreateBroker(req.Name, req.LicenseNumber, req.ContactDetails)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"broker": broker})
}

// ListBrokers handles listing brokers.
// @Summary     List brokers
// @Tags        brokers
// @Produce     json
// @Param       search    query string false "Search by name or license number"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Broker] "Paginated brokers"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /brokers [get]
func (h *BrokerHandler) ListBrokers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.brokerService.ListBrokers(c.Query("search"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBroker handles retrieving a specific broker.
// @Summary     Get broker by ID
// @Tags        brokers
// @Produce     json
// @Param       id path int true "Broker ID"
// @Success     200 {object} models.Broker "Broker"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /brokers/{id} [get]
func (h *BrokerHandler) GetBroker(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	broker, err := h.brokerService.GetBrokerByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"broker": broker})
}

// UpdateBroker handles updating a broker.
// @Summary     Update broker
// @Tags        brokers
// @Accept      json
// @Produce     json
// @Param       id      path int                 true "Broker ID"
// @Param       request body UpdateBrokerRequest true "Fields to update"
// @Success     200 {object} models.Broker "Updated broker"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Duplicate license number"
// @Router      /brokers/{id} [put]
func (h *BrokerHandler) UpdateBroker(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBrokerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	broker, err := h.brokerService.UpdateBroker(id, services.BrokerUpdate{
		Name:           req.Name,
		LicenseNumber:  req.LicenseNumber,
		ContactDetails: req.ContactDetails,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"broker": broker})
}

// DeleteBroker handles deleting a broker.
// @Summary     Delete broker
// @Tags        brokers
// @Param       id path int true "Broker ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /brokers/{id} [delete]
func (h *BrokerHandler) DeleteBroker(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.brokerService.DeleteBroker(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
