package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "brokerledger/internal/errors"
	"brokerledger/internal/pagination"
	"brokerledger/internal/services"
)

// InvestorHandler handles investor-related requests.
type InvestorHandler struct {
	investorService services.InvestorServicer
}

// NewInvestorHandler creates a new InvestorHandler.
func NewInvestorHandler(investorService services.InvestorServicer) *InvestorHandler {
	return &InvestorHandler{investorService: investorService}
}

// CreateInvestorRequest represents the request payload for creating an investor.
type CreateInvestorRequest struct {
	FullName  string    `json:"full_name" binding:"required,min=1,max=200"`
	BirthDate time.Time `json:"birth_date" binding:"required"`
	Phone     string    `json:"phone" binding:"required"`
	Email     string    `json:"email" binding:"required"`
}

// UpdateInvestorRequest represents the request payload for updating an investor.
type UpdateInvestorRequest struct {
	FullName  *string    `json:"full_name,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	Email     *string    `json:"email,omitempty"`
}

// CreateInvestor handles creating a new investor.
// @Summary     Create investor
// @Tags        investors
// @Accept      json
// @Produce     json
// @Param       request body CreateInvestorRequest true "Investor details"
// @Success     201 {object} models.Investor "Investor created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate phone or email"
// @Router      /investors [post]
func (h *InvestorHandler) CreateInvestor(c *gin.Context) {
	var req CreateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investor, err := h.investorService.CreateInvestor(req.FullName, req.BirthDate, req.Phone, req.Email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"investor": investor})
}

// ListInvestors handles listing investors.
// @Summary     List investors
// @Tags        investors
// @Produce     json
// @Param       search    query string false "Search by name, phone, or email"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Investor] "Paginated investors"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /investors [get]
func (h *InvestorHandler) ListInvestors(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.investorService.ListInvestors(c.Query("search"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetInvestor handles retrieving a specific investor.
// @Summary     Get investor by ID
// @Tags        investors
// @Produce     json
// @Param       id path int true "Investor ID"
// @Success     200 {object} models.Investor "Investor"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /investors/{id} [get]
func (h *InvestorHandler) GetInvestor(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investor, err := h.investorService.GetInvestorByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investor": investor})
}

// UpdateInvestor handles updating an investor.
// @Summary     Update investor
// @Tags        investors
// @Accept      json
// @Produce     json
// @Param       id      path int                   true "Investor ID"
// @Param       request body UpdateInvestorRequest true "Fields to update"
// @Success     200 {object} models.Investor "Updated investor"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Duplicate phone or email"
// @Router      /investors/{id} [put]
func (h *InvestorHandler) UpdateInvestor(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investor, err := h.investorService.UpdateInvestor(id, services.InvestorUpdate{
		FullName:  req.FullName,
		BirthDate: req.BirthDate,
		Phone:     req.Phone,
		Email:     req.Email,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investor": investor})
}

// DeleteInvestor handles deleting an investor.
// @Summary     Delete investor
// @Tags        investors
// @Param       id path int true "Investor ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /investors/{id} [delete]
func (h *InvestorHandler) DeleteInvestor(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investorService.DeleteInvestor(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// LinkBroker handles attaching a broker to an investor.
// @Summary     Link broker to investor
// @Tags        investors
// @Param       id       path int true "Investor ID"
// @Param       brokerID path int true "Broker ID"
// @Success     204 "Linked"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /investors/{id}/brokers/{brokerID} [post]
func (h *InvestorHandler) LinkBroker(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	brokerID, err := parsePathID(c, "brokerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investorService.LinkBroker(id, brokerID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UnlinkBroker handles detaching a broker from an investor.
// @Summary     Unlink broker from investor
// @Tags        investors
// @Param       id       path int true "Investor ID"
// @Param       brokerID path int true "Broker ID"
// @Success     204 "Unlinked"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /investors/{id}/brokers/{brokerID} [delete]
func (h *InvestorHandler) UnlinkBroker(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	brokerID, err := parsePathID(c, "brokerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investorService.UnlinkBroker(id, brokerID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListBrokers handles listing the brokers linked to an investor.
// @Summary     List investor's brokers
// @Tags        investors
// @Produce     json
// @Param       id path int true "Investor ID"
// @Success     200 {object} map[string][]models.Broker "Linked brokers"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /investors/{id}/brokers [get]
func (h *InvestorHandler) ListBrokers(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	brokers, err := h.investorService.GetInvestorBrokers(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"brokers": brokers})
}
