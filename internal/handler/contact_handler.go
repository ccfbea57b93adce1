package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/evanWh1te/cville-kitchen-website-sub000/internal/errors"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/metrics"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/service"
)

// ContactHandler accepts contact form submissions.
type ContactHandler struct {
	svc     service.ContactService
	metrics *metrics.Metrics
}

// NewContactHandler creates a contact handler.
func NewContactHandler(svc service.ContactService, m *metrics.Metrics) *ContactHandler {
	return &ContactHandler{svc: svc, metrics: m}
}

// ContactResponse acknowledges a submission.
type ContactResponse struct {
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId"`
}

// Submit godoc
// @Summary Send a contact form message
// @Description Rate limited per client address.
// @Tags contact
// @Accept json
// @Produce json
// @Param request body service.ContactInput true "Message"
// @Success 200 {object} ContactResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req service.ContactInput
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Field: "body", Message: "Invalid request body"})
	}

	receipt, err := h.svc.Submit(c.Request().Context(), req)
	if h.metrics != nil {
		metrics.Observe(h.metrics.ContactTotal, err, func(err error) bool {
			return errors.Is(err, apperrors.ErrValidation)
		})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ContactResponse{
		Message:      "Thank you for your message. We will get back to you soon.",
		SubmissionID: receipt.SubmissionID,
	})
}
