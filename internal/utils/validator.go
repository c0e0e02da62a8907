// internal/utils/validator.go
package utils

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/sellerops/margin-backend/internal/calculator"
)

var validate *validator.Validate

var (
	catalogMu sync.RWMutex
	catalog   map[string]struct{}
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("category_id", validateCategoryID)
	validate.RegisterValidation("decimal_text", validateDecimalText)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// RegisterCategories sets the catalog checked by the category_id tag. Until
// it is called every non-empty id is accepted.
func RegisterCategories(categories []calculator.Category) {
	ids := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		ids[c.ID] = struct{}{}
	}
	catalogMu.Lock()
	catalog = ids
	catalogMu.Unlock()
}

func validateCategoryID(fl validator.FieldLevel) bool {
	id := strings.TrimSpace(fl.Field().String())
	if id == "" {
		return false
	}

	catalogMu.RLock()
	defer catalogMu.RUnlock()
	if catalog == nil {
		return true
	}
	_, ok := catalog[id]
	return ok
}

// decimal_text accepts numbers written with either decimal separator.
func validateDecimalText(fl validator.FieldLevel) bool {
	_, ok := calculator.ParseDecimal(fl.Field().String())
	return ok
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   toSnake(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	field := toSnake(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "gt":
		return field + " must be greater than " + e.Param()
	case "oneof":
		return field + " must be one of " + e.Param()
	case "category_id":
		return "Unknown category"
	case "decimal_text":
		return field + " must be a number"
	default:
		return field + " is invalid"
	}
}

func toSnake(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			if prevLower {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
			prevLower = false
		} else {
			prevLower = true
		}
		b.WriteRune(r)
	}
	return b.String()
}
