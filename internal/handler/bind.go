package handler

import (
	"github.com/labstack/echo/v4"

	apperrors "github.com/evanWh1te/cville-kitchen-website-sub000/internal/errors"
)

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// bindAndValidate decodes the request body into req and runs the struct rules.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Field: "body", Message: "Invalid request body"})
	}
	return c.Validate(req)
}
