package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"deskbooker/pkg/logger"
	"deskbooker/pkg/model"

	"github.com/go-playground/validator/v10"
)

// Letters, combining marks, spaces, apostrophes, hyphens and dots.
var personNameRegex = regexp.MustCompile(`^[\p{L}\p{M}][\p{L}\p{M} '.\-]*$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details is the shape AppError.Details expects: field name to message.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

type DeskBookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewDeskBookingValidator(log *logger.Logger) *DeskBookingValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("person_name", validatePersonName); err != nil {
		log.Fatal("Failed to register 'person_name' validator",
			"error", err,
		)
	}

	log.Debug("Desk booking validator initialized")

	return &DeskBookingValidator{
		validate: v,
		logger:   log,
	}
}

func validatePersonName(fl validator.FieldLevel) bool {
	return personNameRegex.MatchString(fl.Field().String())
}

func (v *DeskBookingValidator) Validate(input *model.DeskBookingInput) error {
	if input == nil {
		return ValidationErrors{{Field: "body", Message: "body is required"}}
	}

	if err := v.validate.Struct(input); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return nil
}

func (v *DeskBookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "datetime":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		case "person_name":
			message = fmt.Sprintf("%s may only contain letters, spaces, apostrophes, hyphens and dots", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
