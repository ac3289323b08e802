package validator

import (
	"clinic-scheduler/pkg/clinictime"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	// Shift times are HH:MM or HH:MM:SS, dates are YYYY-MM-DD.
	mustRegister(v, "timeofday", func(fl validator.FieldLevel) bool {
		_, err := clinictime.ParseTimeOfDay(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "civildate", func(fl validator.FieldLevel) bool {
		_, err := clinictime.ParseCivilDate(fl.Field().String())
		return err == nil
	})

	return &CustomValidator{
		validator: v,
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
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
			case "uuid":
				errors[field] = field + " must be a valid UUID"
			case "min":
				errors[field] = field + " must be at least " + e.Param()
			case "max":
				errors[field] = field + " must be at most " + e.Param()
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "timeofday":
				errors[field] = field + " must be a time of day (HH:MM or HH:MM:SS)"
			case "civildate":
				errors[field] = field + " must be a date (YYYY-MM-DD)"
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
