package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "brokerledger/internal/errors"
	"brokerledger/internal/models"
	"brokerledger/internal/pagination"
)

// assetService handles asset-related business logic.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// CreateAsset creates a new asset record. An empty currency defaults to RUB.
func (s *assetService) CreateAsset(name, ticker string, assetType models.AssetType, currency models.Currency, unitPrice decimal.Decimal) (*models.Asset, error) {
	asset := &models.Asset{
		Name:      name,
		Ticker:    ticker,
		Type:      assetType,
		Currency:  currency,
		UnitPrice: unitPrice,
	}

	if err := s.db.Create(asset).Error; err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if isUniqueConstraintError(err) {
			return nil, apperrors.DuplicateValue("ticker")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return asset, nil
}

// GetAssetByID returns an asset by ID.
func (s *assetService) GetAssetByID(id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// ListAssets returns a paginated list of assets ordered by ticker,
// optionally filtered by a search term matching name or ticker.
func (s *assetService) ListAssets(search string, page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error) {
	page.Defaults()

	base := s.db.Model(&models.Asset{})
	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where("name LIKE ? OR ticker LIKE ?", pattern, pattern)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.Asset
	if err := base.Order("ticker ASC").Scopes(pagination.Paginate(page)).Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(assets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateAsset applies the given field updates and revalidates the record.
func (s *assetService) UpdateAsset(id uint, upd AssetUpdate) (*models.Asset, error) {
	asset, err := s.GetAssetByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		asset.Name = *upd.Name
	}
	if upd.Ticker != nil {
		asset.Ticker = *upd.Ticker
	}
	if upd.Type != nil {
		asset.Type = *upd.Type
	}
	if upd.Currency != nil {
		asset.Currency = *upd.Currency
	}
	if upd.UnitPrice != nil {
		asset.UnitPrice = *upd.UnitPrice
	}

	if err := s.db.Save(asset).Error; err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if isUniqueConstraintError(err) {
			return nil, apperrors.DuplicateValue("ticker")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return asset, nil
}

// DeleteAsset removes an asset, cascading to its holdings and clearing
// asset references on transactions, in a single transaction.
func (s *assetService) DeleteAsset(id uint) error {
	asset, err := s.GetAssetByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_id = ?", asset.ID).Delete(&models.AccountAsset{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		// UpdateColumn skips model hooks: historical buy/sell rows keep their
		// display name and are not re-validated against the asset-required rule.
		if err := tx.Model(&models.Transaction{}).Where("asset_id = ?", asset.ID).UpdateColumn("asset_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(asset).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
