package entry

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

/*
RegisterWithValidator register with the validator the custom validations of the entry model

	@param v *validator.Validate - the validator to register against
	@return whether successful
*/
func RegisterWithValidator(v *validator.Validate) error {
	return v.RegisterValidation("category", validateCategory)
}

func validateCategory(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return Category(fl.Field().String()).Valid()
}

// NewValidator returns a validator with the entry validations registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	if err := RegisterWithValidator(v); err != nil {
		panic(err)
	}
	return v
}

var validate = NewValidator()
