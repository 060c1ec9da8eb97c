package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "brokerledger/internal/errors"
	"brokerledger/internal/models"
	"brokerledger/internal/pagination"
)

// holdingService handles account-asset holding logic.
type holdingService struct {
	db *gorm.DB
}

// NewHoldingService creates a new HoldingServicer.
func NewHoldingService(db *gorm.DB) HoldingServicer {
	return &holdingService{db: db}
}

// CreateHolding creates a holding row for an existing account and asset.
// A second row for the same (account, asset) pair is rejected.
func (s *holdingService) CreateHolding(accountID, assetID uint, quantity decimal.Decimal) (*models.AccountAsset, error) {
	if err := s.db.First(&models.Account{}, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.MissingReference("account_id")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.First(&models.Asset{}, assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.MissingReference("asset_id")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	holding := &models.AccountAsset{
		AccountID: accountID,
		AssetID:   assetID,
		Quantity:  quantity,
	}

	if err := s.db.Create(holding).Error; err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if isUniqueConstraintError(err) {
			return nil, apperrors.DuplicateValue("(account_id, asset_id)")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return holding, nil
}

// GetHoldingByID returns a holding with its asset preloaded.
func (s *holdingService) GetHoldingByID(id uint) (*models.AccountAsset, error) {
	var holding models.AccountAsset
	if err := s.db.Preload("Asset").First(&holding, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHoldingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &holding, nil
}

// ListAccountHoldings returns a paginated list of holdings for an account.
func (s *holdingService) ListAccountHoldings(accountID uint, page pagination.PageRequest) (*pagination.PageResponse[models.AccountAsset], error) {
	if err := s.db.First(&models.Account{}, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	page.Defaults()

	base := s.db.Model(&models.AccountAsset{}).Where("account_id = ?", accountID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var holdings []models.AccountAsset
	if err := base.Preload("Asset").Scopes(pagination.Paginate(page)).Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(holdings, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateHoldingQuantity sets a holding's quantity and revalidates the record.
func (s *holdingService) UpdateHoldingQuantity(id uint, quantity decimal.Decimal) (*models.AccountAsset, error) {
	var holding models.AccountAsset
	if err := s.db.First(&holding, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHoldingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	holding.Quantity = quantity

	if err := s.db.Save(&holding).Error; err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &holding, nil
}

// DeleteHolding removes a holding row.
func (s *holdingService) DeleteHolding(id uint) error {
	var holding models.AccountAsset
	if err := s.db.First(&holding, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrHoldingNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&holding).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
