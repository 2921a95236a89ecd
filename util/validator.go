package util

import (
	"github.com/go-playground/validator/v10"

	"campus-chat/enum"
)

// NewValidator returns a validator with the application tags registered.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("faculty", func(fl validator.FieldLevel) bool {
		return enum.IsFaculty(fl.Field().String())
	})
	return validate
}
