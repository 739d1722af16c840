package accountdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/go-petr/pet-ledger/internal/ledger"
	"github.com/go-petr/pet-ledger/pkg/moneypkg"
)

// ValidAccountType validates whether the account type is asset or liability.
var ValidAccountType validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		_, err := ledger.ParseAccountType(s)
		return err == nil
	}
	return false
}

// ValidMoney validates whether the string is a monetary amount with at most two decimal places.
var ValidMoney validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		_, err := moneypkg.Parse(s)
		return err == nil
	}
	return false
}

// RegisterValidators registers the "accounttype" and "money" binding tags.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("accounttype", ValidAccountType); err != nil {
		return err
	}

	return v.RegisterValidation("money", ValidMoney)
}
