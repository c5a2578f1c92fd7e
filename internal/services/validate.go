package services

import "github.com/go-playground/validator/v10"

// newValidator builds the validator shared by the services, with the
// catalog's ISBN rule registered. The rule accepts exactly 10 or 13
// decimal digits; checksum validity is deliberately not verified.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("isbn_code", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) != 10 && len(code) != 13 {
			return false
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	return v
}
