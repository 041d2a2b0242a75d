package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// IsValidAmount reports whether a raw bid amount parses to a
// positive, finite decimal.
func IsValidAmount(raw string) bool {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return false
	}
	return amount.IsPositive()
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
