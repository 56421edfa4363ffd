package validator

import (
	"reflect"
	"strings"

	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/scheduling"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report fields by their JSON name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// weekday: one of the canonical day names, Monday..Sunday
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseWeekday(fl.Field().String())
		return ok
	})
	// timeofday: anything the time-of-day parser accepts
	_ = v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		_, err := scheduling.ParseTime(fl.Field().String())
		return err == nil
	})

	return &CustomValidator{
		validator: v,
	}
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
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "weekday":
				errors[field] = "Invalid day selected."
			case "timeofday":
				errors[field] = field + " must be a time of day such as 09:30 or 2:30 PM"
			case "datetime":
				errors[field] = field + " must be a date in the format YYYY-MM-DD"
			case "oneof":
				errors[field] = field + " must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
