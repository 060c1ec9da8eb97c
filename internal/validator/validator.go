// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"brokerledger/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("account_type", validateAccountType)
		_ = v.RegisterValidation("account_status", validateAccountStatus)
		_ = v.RegisterValidation("asset_type", validateAssetType)
		_ = v.RegisterValidation("operation_type", validateOperationType)
		_ = v.RegisterValidation("nominal_currency", validateNominalCurrency)
		_ = v.RegisterValidation("settlement_currency", validateSettlementCurrency)
	}
}

func validateAccountType(fl validator.FieldLevel) bool {
	return models.AccountType(fl.Field().String()).Valid()
}

func validateAccountStatus(fl validator.FieldLevel) bool {
	return models.AccountStatus(fl.Field().String()).Valid()
}

func validateAssetType(fl validator.FieldLevel) bool {
	return models.AssetType(fl.Field().String()).Valid()
}

func validateOperationType(fl validator.FieldLevel) bool {
	return models.OperationType(fl.Field().String()).Valid()
}

func validateNominalCurrency(fl validator.FieldLevel) bool {
	return models.ValidNominalCurrency(models.Currency(fl.Field().String()))
}

func validateSettlementCurrency(fl validator.FieldLevel) bool {
	return models.ValidSettlementCurrency(models.Currency(fl.Field().String()))
}
