package validator

import (
	"reflect"
	"strings"

	"mindcare-backend/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// report fields by their json names so errors match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, ok := entity.NormalizeDate(fl.Field().String())
		return ok
	})
	v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		_, _, err := entity.ParseClock(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("appttype", func(fl validator.FieldLevel) bool {
		return entity.IsAppointmentType(fl.Field().String())
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
				errors[field] = field + " must be at least " + e.Param()
			case "max":
				errors[field] = field + " must be at most " + e.Param()
			case "oneof":
				errors[field] = field + " must be one of " + e.Param()
			case "date":
				errors[field] = field + " must be a date in YYYY-MM-DD format"
			case "clocktime":
				errors[field] = field + " must be a time like 14:00 or 2:00 PM"
			case "appttype":
				errors[field] = field + " must be a known appointment type"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
