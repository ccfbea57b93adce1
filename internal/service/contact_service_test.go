package service

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/evanWh1te/cville-kitchen-website-sub000/internal/errors"
)

func TestContactService_Submit(t *testing.T) {
	var buf bytes.Buffer
	svc := NewContactService(slog.New(slog.NewTextHandler(&buf, nil)))

	receipt, err := svc.Submit(context.Background(), ContactInput{
		Name:    "  Jo <b>Smith</b> ",
		Email:   " jo@example.org ",
		Subject: "volunteer",
		Message: "I would like to help on Saturdays & Sundays.",
	})
	require.NoError(t, err)
	_, err = uuid.Parse(receipt.SubmissionID)
	assert.NoError(t, err)
	assert.False(t, receipt.ReceivedAt.IsZero())

	logged := buf.String()
	assert.Contains(t, logged, receipt.SubmissionID)
	assert.Contains(t, logged, "Jo &lt;b&gt;Smith&lt;/b&gt;")
	assert.Contains(t, logged, "Saturdays &amp; Sundays")
	assert.NotContains(t, logged, "<b>")
}

func TestContactService_Submit_Validation(t *testing.T) {
	valid := ContactInput{Name: "Jo", Email: "jo@example.org", Subject: "general", Message: "Hello there, friends"}

	tests := []struct {
		name   string
		mutate func(*ContactInput)
		field  string
	}{
		{name: "short name", mutate: func(in *ContactInput) { in.Name = "J" }, field: "name"},
		{name: "name only spaces", mutate: func(in *ContactInput) { in.Name = "   J   " }, field: "name"},
		{name: "long name", mutate: func(in *ContactInput) { in.Name = strings.Repeat("a", 101) }, field: "name"},
		{name: "bad email", mutate: func(in *ContactInput) { in.Email = "not-an-email" }, field: "email"},
		{name: "unknown subject", mutate: func(in *ContactInput) { in.Subject = "sales" }, field: "subject"},
		{name: "short message", mutate: func(in *ContactInput) { in.Message = "hi" }, field: "message"},
		{name: "long message", mutate: func(in *ContactInput) { in.Message = strings.Repeat("m", 2001) }, field: "message"},
	}

	svc := NewContactService(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			_, err := svc.Submit(context.Background(), in)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, []string{tt.field}, fieldsOf(t, err))
		})
	}

	_, err := svc.Submit(context.Background(), valid)
	assert.NoError(t, err)
}

func TestContactService_NameLengthMessage(t *testing.T) {
	svc := NewContactService(nil)
	_, err := svc.Submit(context.Background(), ContactInput{Name: "J", Email: "jo@example.org", Subject: "other", Message: "Hello there, friends"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name must be at least 2 characters")
}
