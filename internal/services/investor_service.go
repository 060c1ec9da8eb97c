package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "brokerledger/internal/errors"
	"brokerledger/internal/models"
	"brokerledger/internal/pagination"
)

// investorService handles investor-related business logic.
type investorService struct {
	db *gorm.DB
}

// NewInvestorService creates a new InvestorServicer.
func NewInvestorService(db *gorm.DB) InvestorServicer {
	return &investorService{db: db}
}

// CreateInvestor creates a new investor record.
func (s *investorService) CreateInvestor(fullName string, birthDate time.Time, phone, email string) (*models.Investor, error) {
	investor := &models.Investor{
		FullName:  fullName,
		BirthDate: birthDate,
		Phone:     phone,
		Email:     email,
	}

	if err := s.db.Create(investor).Error; err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if isUniqueConstraintError(err) {
			return nil, apperrors.DuplicateValue(duplicateField(err, "phone", "email"))
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return investor, nil
}

// GetInvestorByID returns an investor by ID.
func (s *investorService) GetInvestorByID(id uint) (*models.Investor, error) {
	var investor models.Investor
	if err := s.db.First(&investor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestorNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investor, nil
}

// ListInvestors returns a paginated list of investors ordered by full name,
// optionally filtered by a search term matching name, phone, or email.
func (s *investorService) ListInvestors(search string, page pagination.PageRequest) (*pagination.PageResponse[models.Investor], error) {
	page.Defaults()

	base := s.db.Model(&models.Investor{})
	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where("full_name LIKE ? OR phone LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investors []models.Investor
	if err := base.Order("full_name ASC").Scopes(pagination.Paginate(page)).Find(&investors).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(investors, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateInvestor applies the given field updates and revalidates the record.
func (s *investorService) UpdateInvestor(id uint, upd InvestorUpdate) (*models.Investor, error) {
	investor, err := s.GetInvestorByID(id)
	if err != nil {
		return nil, err
	}

	if upd.FullName != nil {
		investor.FullName = *upd.FullName
	}
	if upd.BirthDate != nil {
		investor.BirthDate = *upd.BirthDate
	}
	if upd.Phone != nil {
		investor.Phone = *upd.Phone
	}
	if upd.Email != nil {
		investor.Email = *upd.Email
	}

	if err := s.db.Save(investor).Error; err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if isUniqueConstraintError(err) {
			return nil, apperrors.DuplicateValue(duplicateField(err, "phone", "email"))
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return investor, nil
}

// DeleteInvestor removes an investor and its broker links.
func (s *investorService) DeleteInvestor(id uint) error {
	investor, err := s.GetInvestorByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(investor).Association("Brokers").Clear(); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(investor).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// LinkBroker attaches a broker to an investor.
func (s *investorService) LinkBroker(investorID, brokerID uint) error {
	investor, err := s.GetInvestorByID(investorID)
	if err != nil {
		return err
	}

	var broker models.Broker
	if err := s.db.First(&broker, brokerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBrokerNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(investor).Association("Brokers").Append(&broker); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UnlinkBroker detaches a broker from an investor.
func (s *investorService) UnlinkBroker(investorID, brokerID uint) error {
	investor, err := s.GetInvestorByID(investorID)
	if err != nil {
		return err
	}

	var broker models.Broker
	if err := s.db.First(&broker, brokerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBrokerNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(investor).Association("Brokers").Delete(&broker); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetInvestorBrokers returns the brokers linked to an investor.
func (s *investorService) GetInvestorBrokers(investorID uint) ([]models.Broker, error) {
	investor, err := s.GetInvestorByID(investorID)
	if err != nil {
		return nil, err
	}

	var brokers []models.Broker
	if err := s.db.Model(investor).Association("Brokers").Find(&brokers); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return brokers, nil
}
