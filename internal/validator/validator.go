// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"mywallet/internal/normalize"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("ledger_type", validateLedgerType)
		_ = v.RegisterValidation("ledger_date", validateLedgerDate)
		_ = v.RegisterValidation("date_axis", validateDateAxis)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

// validateLedgerType accepts the two row types shared by categories and
// transactions.
func validateLedgerType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "expense", "revenue":
		return true
	}
	return false
}

// validateLedgerDate accepts YYYY-MM-DD and the legacy DD/MM/YYYY form.
func validateLedgerDate(fl validator.FieldLevel) bool {
	_, err := normalize.ParseDate(fl.Field().String())
	return err == nil
}

func validateDateAxis(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "settlement", "purchase":
		return true
	}
	return false
}
