package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "brokerledger/internal/errors"
	"brokerledger/internal/models"
	"brokerledger/internal/pagination"
)

// brokerService handles broker-related business logic.
type brokerService struct {
	db *gorm.DB
}

// NewBrokerService creates a new BrokerServicer.
func NewBrokerService(db *gorm.DB) BrokerServicer {
	return &brokerService{db: db}
}

// CreateBroker creates a new broker record.
func (s *brokerService) CreateBroker(name, licenseNumber, contactDetails string) (*models.Broker, error) {
	broker := &models.Broker{
		Name:           name,
		LicenseNumber:  licenseNumber,
		ContactDetails: contactDetails,
	}

	if err := s.db.Create(broker).Error; err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if isUniqueConstraintError(err) {
			return nil, apperrors.DuplicateValue("license_number")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return broker, nil
}

// GetBrokerByID returns a broker by ID.
func (s *brokerService) GetBrokerByID(id uint) (*models.Broker, error) {
	var broker models.Broker
	if err := s.db.First(&broker, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBrokerNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &broker, nil
}

// ListBrokers returns a paginated list of brokers ordered by name,
// optionally filtered by a search term matching name or license number.
func (s *brokerService) ListBrokers(search string, page pagination.PageRequest) (*pagination.PageResponse[models.Broker], error) {
	page.Defaults()

	base := s.db.Model(&models.Broker{})
	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where("name LIKE ? OR license_number LIKE ?", pattern, pattern)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var brokers []models.Broker
	if err := base.Order("name ASC").Scopes(pagination.Paginate(page)).Find(&brokers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(brokers, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateBroker applies the given field updates and revalidates the record.
func (s *brokerService) UpdateBroker(id uint, upd BrokerUpdate) (*models.Broker, error) {
	broker, err := s.GetBrokerByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		broker.Name = *upd.Name
	}
	if upd.LicenseNumber != nil {
		broker.LicenseNumber = *upd.LicenseNumber
	}
	if upd.ContactDetails != nil {
		broker.ContactDetails = *upd.ContactDetails
	}

	if err := s.db.Save(broker).Error; err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if isUniqueConstraintError(err) {
			return nil, apperrors.DuplicateValue("license_number")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return broker, nil
}

// DeleteBroker removes a broker and its investor links.
func (s *brokerService) DeleteBroker(id uint) error {
	broker, err := s.GetBrokerByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(broker).Association("Investors").Clear(); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(broker).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
