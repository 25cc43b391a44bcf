package common

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
	"github.com/andrescamacho/redcycle-go/pkg/utils"
)

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New()
	// finite rejects NaN and ±Inf
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		return utils.IsFinite(fl.Field().Float())
	})
	return v
}

// ValidateRequest checks a request's `validate` struct tags and reports the
// first failing field as a *shared.ValidationError.
func ValidateRequest(request Request) error {
	err := requestValidator.Struct(request)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return shared.NewValidationError(fe.Namespace(), fmt.Sprintf("failed '%s' validation (value: '%v')", fe.Tag(), fe.Value()))
	}
	return err
}
