package validator

import (
	"fmt"
	"strings"

	"tourbook/pkg/logger"
	"tourbook/pkg/model"

	"github.com/go-playground/validator/v10"
)

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
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// ValidateRequest checks the creation payload. A supplied status only
// has to be one of the three legal values; no rule prevents a customer
// from requesting CONFIRMED directly.
func (bv *BookingValidator) ValidateRequest(req *model.BookingRequest) error {
	return bv.collect(bv.validate.Struct(req))
}

func (bv *BookingValidator) Validate(booking *model.Booking) error {
	return bv.collect(bv.validate.Struct(booking))
}

func (bv *BookingValidator) ValidateStatus(status string) error {
	return bv.collect(bv.validate.Var(status, "required,oneof=PENDING CONFIRMED CANCELLED"))
}

func (bv *BookingValidator) collect(err error) error {
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var out ValidationErrors
	for _, fe := range fieldErrors {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
		})
	}
	return out
}
