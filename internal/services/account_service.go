package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "brokerledger/internal/errors"
	"brokerledger/internal/models"
	"brokerledger/internal/pagination"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates a new account for an existing investor and broker.
// An open date of zero defaults to today.
func (s *accountService) CreateAccount(number string, accountType models.AccountType, openDate time.Time, investorID, brokerID uint) (*models.Account, error) {
	if err := s.db.First(&models.Investor{}, investorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.MissingReference("investor_id")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.First(&models.Broker{}, brokerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.MissingReference("broker_id")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	account := &models.Account{
		Number:     number,
		Type:       accountType,
		OpenDate:   openDate,
		Status:     models.AccountStatusActive,
		InvestorID: investorID,
		BrokerID:   brokerID,
	}

	if err := s.db.Create(account).Error; err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if isUniqueConstraintError(err) {
			return nil, apperrors.DuplicateValue("number")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return account, nil
}

// GetAccountByID returns an account by ID.
func (s *accountService) GetAccountByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// ListAccounts returns a paginated list of accounts matching the filter,
// ordered by open date descending.
func (s *accountService) ListAccounts(filter AccountFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	page.Defaults()

	base := s.db.Model(&models.Account{})
	if filter.InvestorID != nil {
		base = base.Where("investor_id = ?", *filter.InvestorID)
	}
	if filter.BrokerID != nil {
		base = base.Where("broker_id = ?", *filter.BrokerID)
	}
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.OpenedFrom != nil {
		base = base.Where("open_date >= ?", *filter.OpenedFrom)
	}
	if filter.OpenedTo != nil {
		base = base.Where("open_date <= ?", *filter.OpenedTo)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.Account
	if err := base.Order("open_date DESC").Scopes(pagination.Paginate(page)).Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateAccount applies the given field updates and revalidates the record.
func (s *accountService) UpdateAccount(id uint, upd AccountUpdate) (*models.Account, error) {
	account, err := s.GetAccountByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Number != nil {
		account.Number = *upd.Number
	}
	if upd.Type != nil {
		account.Type = *upd.Type
	}
	if upd.Status != nil {
		account.Status = *upd.Status
	}

	if err := s.db.Save(account).Error; err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if isUniqueConstraintError(err) {
			return nil, apperrors.DuplicateValue("number")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return account, nil
}

// DeleteAccount removes an account together with its holdings and
// transactions in a single transaction.
func (s *accountService) DeleteAccount(id uint) error {
	account, err := s.GetAccountByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", account.ID).Delete(&models.AccountAsset{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("account_id = ?", account.ID).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
