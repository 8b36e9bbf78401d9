package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"sparkle-booking/core/logger"

	"github.com/resend/resend-go/v2"
)

type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

type EmailSender interface {
	Send(ctx context.Context, email Email) (string, error)
}

// ResendEmailSender delivers through the Resend API.
type ResendEmailSender struct {
	client     *resend.Client
	configured bool
}

// NewResendEmailSender builds a sender; an empty baseURL keeps the SDK default endpoint.
func NewResendEmailSender(baseURL, apiKey string, timeout time.Duration) (*ResendEmailSender, error) {
	client := resend.NewCustomClient(&http.Client{Timeout: timeout}, apiKey)
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("email api url %q: %w", baseURL, err)
		}
		client.BaseURL = u
	}
	return &ResendEmailSender{client: client, configured: apiKey != ""}, nil
}

func (s *ResendEmailSender) Send(ctx context.Context, email Email) (string, error) {
	if !s.configured {
		return "", fmt.Errorf("email api key not configured")
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
	})
	if err != nil {
		logger.Error("EmailSender:Send:Error", "subject", email.Subject, "error", err)
		return "", fmt.Errorf("send email: %w", err)
	}
	return sent.Id, nil
}
