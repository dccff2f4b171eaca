package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"habitLoopAPI/internal/apperr"
)

var validate = validator.New()

// checkRequest runs struct validation before any query is issued. Malformed
// input never reaches the database.
func checkRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		first := vErrs[0]
		return apperr.Validation(fmt.Sprintf("field %s failed rule %s", first.Field(), first.Tag()))
	}
	return apperr.Validation("invalid request: %v", err)
}
