// internal/utils/validator.go
package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("format", validateFormat)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// AddCartItemRequest is the body of POST /v1/cart/items and of buy-now.
// The id is not validated here: unknown ids, zero included, fail the
// catalog lookup and answer not found.
type AddCartItemRequest struct {
	ID     int    `json:"id"`
	Format string `json:"formato" validate:"required,format"`
}

// UpdateQuantityRequest allows zero, which removes the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantidade" validate:"required"`
}

func validateFormat(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "vinil", "cd":
		return true
	default:
		return false
	}
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "format":
		return "Format must be one of: vinil, cd"
	default:
		return e.Field() + " is invalid"
	}
}

// HasTag reports whether any field failed the given validation tag.
func HasTag(errs []ValidationError, field, tag string) bool {
	for _, e := range errs {
		if e.Field == field && e.Tag == tag {
			return true
		}
	}
	return false
}
