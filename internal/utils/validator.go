// internal/utils/validator.go
package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("account", validateAccount)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateAccount(fl validator.FieldLevel) bool {
	account := fl.Field().String()

	// Account should be alphanumeric and underscores, 3-50 characters
	if len(account) < 3 || len(account) > 50 {
		return false
	}

	matched, _ := regexp.MatchString("^[a-zA-Z0-9_]+$", account)
	return matched
}
