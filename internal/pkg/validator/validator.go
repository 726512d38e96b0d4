package validator

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks a request struct's `validate` tags and returns a
// field→rule map suitable for an error envelope's details, or nil if the
// struct is valid.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	details := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		details[fe.Field()] = fe.Tag()
	}
	return details
}
