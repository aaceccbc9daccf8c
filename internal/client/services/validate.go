package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/affiliatepro/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the struct tags of v and reports failures as
// common.ErrValidation with the offending field names.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %w", common.ErrValidation, err)
}

// validateVar checks a single value against a tag expression.
func validateVar(name string, v any, tag string) error {
	if err := validate.Var(v, tag); err != nil {
		return fmt.Errorf("%w: %s(%s)", common.ErrValidation, name, tag)
	}
	return nil
}
