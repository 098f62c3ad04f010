package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Wire formats for booking slots. Date keys are unpadded day_month_year
// strings ("1_4_2025"); slot times are 24-hour "H:MM" ("9:30", "14:00").
// They are validated as shapes only and otherwise treated as opaque keys.
var (
	dateKeyRegexp  = regexp.MustCompile(`^([1-9]|[12][0-9]|3[01])_([1-9]|1[0-2])_[0-9]{4}$`)
	slotTimeRegexp = regexp.MustCompile(`^([0-9]|1[0-9]|2[0-3]):[0-5][0-9]$`)
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
		return dateKeyRegexp.MatchString(fl.Field().String())
	})
	v.RegisterValidation("slottime", func(fl validator.FieldLevel) bool {
		return slotTimeRegexp.MatchString(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "len":
				errors[field] = field + " must be exactly " + e.Param() + " characters"
			case "numeric":
				errors[field] = field + " must be numeric"
			case "datekey":
				errors[field] = field + " must be a day_month_year date key, e.g. 1_4_2025"
			case "slottime":
				errors[field] = field + " must be a 24-hour H:MM time, e.g. 9:30"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
