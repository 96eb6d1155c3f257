package validator

import (
	"github.com/go-playground/validator/v10"

	"go-store-ledger/internal/model"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Register custom validation for assignable category codes
	validate.RegisterValidation("category_code", func(fl validator.FieldLevel) bool {
		if code, ok := fl.Field().Interface().(string); ok {
			return model.IsAssignableCategory(code)
		}
		return false
	})

	// Register custom validation for ledger transaction types
	validate.RegisterValidation("tx_type", func(fl validator.FieldLevel) bool {
		switch model.TransactionType(fl.Field().String()) {
		case model.TxInbound, model.TxSale, model.TxDisposal, model.TxAdjust, model.TxRegister:
			return true
		}
		return false
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
