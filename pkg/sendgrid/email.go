// Package sendgrid delivers transactional email through the SendGrid v3 API.
package sendgrid

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	sg "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService interface {
	Send(ctx context.Context, req *models.EmailNotificationRequest) error
}

// RejectedError is returned when SendGrid answers with a non-2xx status.
type RejectedError struct {
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("sendgrid rejected the message, status code: %d", e.StatusCode)
}

// Temporary reports whether the same message may succeed on a later attempt.
func (e *RejectedError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

type Option func(*Client)

// WithBaseURL sends requests to url instead of the public mail/send endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.api.Request.BaseURL = url
	}
}

type Client struct {
	api  *sg.Client
	from *mail.Email
}

func NewEmailService(apiKey, fromEmail, fromName string, opts ...Option) *Client {
	c := &Client{
		api:  sg.NewSendClient(apiKey),
		from: mail.NewEmail(fromName, fromEmail),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Send(ctx context.Context, req *models.EmailNotificationRequest) error {

	resp, err := c.api.SendWithContext(ctx, c.message(req))
	if err != nil {
		return fmt.Errorf("failed to reach sendgrid: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RejectedError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	return nil
}

func (c *Client) message(req *models.EmailNotificationRequest) *mail.SGMailV3 {

	p := mail.NewPersonalization()
	p.Subject = req.Subject
	p.AddTos(mail.NewEmail("", req.To))
	for _, addr := range req.CC {
		p.AddCCs(mail.NewEmail("", addr))
	}
	for _, addr := range req.BCC {
		p.AddBCCs(mail.NewEmail("", addr))
	}

	msg := mail.NewV3Mail().SetFrom(c.from).AddPersonalizations(p)

	// text/plain must precede text/html
	msg.AddContent(mail.NewContent("text/plain", req.Content))
	if req.HTMLContent != "" {
		msg.AddContent(mail.NewContent("text/html", req.HTMLContent))
	}

	return msg
}
