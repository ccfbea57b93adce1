package service

import (
	"context"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/validation"
)

// ContactInput is a contact form submission.
type ContactInput struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,oneof=general volunteer resource partnership feedback other"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// ContactReceipt acknowledges an accepted submission.
type ContactReceipt struct {
	SubmissionID string    `json:"submissionId"`
	ReceivedAt   time.Time `json:"receivedAt"`
}

// ContactService accepts contact form submissions. Nothing is stored or mailed.
type ContactService interface {
	Submit(ctx context.Context, in ContactInput) (*ContactReceipt, error)
}

type contactService struct {
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

// NewContactService creates a contact service that logs to logger.
func NewContactService(logger *slog.Logger) ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return &contactService{validate: validation.New(), logger: logger, now: time.Now}
}

// Submit trims and validates the submission, escapes it for HTML, and logs it.
// Length rules apply to the trimmed text as typed, before escaping.
func (s *contactService) Submit(ctx context.Context, in ContactInput) (*ContactReceipt, error) {
	in = ContactInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if err := validation.Struct(s.validate, &in); err != nil {
		return nil, err
	}

	clean := ContactInput{
		Name:    html.EscapeString(in.Name),
		Email:   html.EscapeString(in.Email),
		Subject: in.Subject,
		Message: html.EscapeString(in.Message),
	}

	receipt := &ContactReceipt{SubmissionID: uuid.NewString(), ReceivedAt: s.now().UTC()}
	s.logger.InfoContext(ctx, "contact submission received",
		slog.String("submission_id", receipt.SubmissionID),
		slog.String("name", clean.Name),
		slog.String("email", clean.Email),
		slog.String("subject", clean.Subject),
		slog.String("message", clean.Message),
	)
	return receipt, nil
}
