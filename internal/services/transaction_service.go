package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "brokerledger/internal/errors"
	"brokerledger/internal/models"
	"brokerledger/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction creates a ledger transaction for an existing account,
// derives the display name from the operation and the referenced records,
// and persists everything in one unit of work.
func (s *transactionService) CreateTransaction(in TransactionInput) (*models.Transaction, error) {
	var account models.Account
	if err := s.db.First(&account, in.AccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.MissingReference("account_id")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var asset *models.Asset
	if in.AssetID != nil {
		asset = &models.Asset{}
		if err := s.db.First(asset, *in.AssetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.MissingReference("asset_id")
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	quantity := decimal.NewFromInt(1)
	if in.Quantity != nil {
		quantity = *in.Quantity
	}

	transaction := &models.Transaction{
		OccurredAt:    in.OccurredAt,
		OperationType: in.OperationType,
		Quantity:      quantity,
		Amount:        in.Amount,
		Currency:      in.Currency,
		Description:   in.Description,
		AccountID:     in.AccountID,
		AssetID:       in.AssetID,
		DisplayName:   models.ComputeDisplayName(in.OperationType, asset, &account),
	}

	if err := s.db.Create(transaction).Error; err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetTransactionByID returns a transaction with its account and asset preloaded.
func (s *transactionService) GetTransactionByID(id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Account").Preload("Asset").First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// ListTransactions returns a paginated, filtered list of transactions
// ordered by occurrence time descending.
func (s *transactionService) ListTransactions(filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{})
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Order("occurred_at DESC").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// applyTransactionFilters adds WHERE clauses for each set filter field.
func applyTransactionFilters(base *gorm.DB, filter TransactionFilter) *gorm.DB {
	if filter.AccountID != nil {
		base = base.Where("account_id = ?", *filter.AccountID)
	}
	if filter.AssetID != nil {
		base = base.Where("asset_id = ?", *filter.AssetID)
	}
	if filter.OperationType != nil {
		base = base.Where("operation_type = ?", *filter.OperationType)
	}
	if filter.From != nil {
		base = base.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		base = base.Where("occurred_at <= ?", *filter.To)
	}
	if filter.MinAmount != nil {
		base = base.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		base = base.Where("amount <= ?", *filter.MaxAmount)
	}
	return base
}

// UpdateTransaction applies the given field updates, recomputes the display
// name from the current operation and references, and revalidates the record.
func (s *transactionService) UpdateTransaction(id uint, upd TransactionUpdate) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if upd.OperationType != nil {
		transaction.OperationType = *upd.OperationType
	}
	if upd.AssetID != nil {
		transaction.AssetID = upd.AssetID
	} else if upd.ClearAsset {
		transaction.AssetID = nil
	}
	if upd.Quantity != nil {
		transaction.Quantity = *upd.Quantity
	}
	if upd.Amount != nil {
		transaction.Amount = *upd.Amount
	}
	if upd.Currency != nil {
		transaction.Currency = *upd.Currency
	}
	if upd.OccurredAt != nil {
		transaction.OccurredAt = *upd.OccurredAt
	}
	if upd.Description != nil {
		transaction.Description = *upd.Description
	}

	var account models.Account
	if err := s.db.First(&account, transaction.AccountID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var asset *models.Asset
	if transaction.AssetID != nil {
		asset = &models.Asset{}
		if err := s.db.First(asset, *transaction.AssetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.MissingReference("asset_id")
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	// The label depends on the operation type and the referenced records;
	// recomputing from current state keeps it from going stale and is a
	// no-op when nothing it depends on changed.
	transaction.DisplayName = models.ComputeDisplayName(transaction.OperationType, asset, &account)

	if err := s.db.Save(&transaction).Error; err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &transaction, nil
}

// DeleteTransaction removes a transaction.
func (s *transactionService) DeleteTransaction(id uint) error {
	var transaction models.Transaction
	if err := s.db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTransactionNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
