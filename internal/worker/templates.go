package worker

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"text/template"

	"github.com/aaravmahajanofficial/bookstore-api/internal/events"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

var ErrUnknownEvent = errors.New("no template for event type")

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {

	tmpl, err := template.New("emails").Option("missingkey=error").ParseFS(templateFiles, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render builds the email for an event. Events without a template return
// ErrUnknownEvent.
func (r *Renderer) Render(event events.Event) (*models.EmailNotificationRequest, error) {

	var (
		name    string
		subject string
		to      string
		data    any
	)

	switch event.Type {
	case events.OrderPlaced:
		var p events.OrderPlacedPayload
		if err := event.Decode(&p); err != nil {
			return nil, err
		}
		name, subject, to, data = "order_placed.txt.tmpl", "Your order has been placed", p.Email, p

	case events.UserRegistered:
		var p events.UserRegisteredPayload
		if err := event.Decode(&p); err != nil {
			return nil, err
		}
		name, subject, to, data = "user_registered.txt.tmpl", "Verify your email address", p.Email, p

	case events.PasswordResetRequested:
		var p events.PasswordResetPayload
		if err := event.Decode(&p); err != nil {
			return nil, err
		}
		name, subject, to, data = "password_reset.txt.tmpl", "Reset your password", p.Email, p

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}

	return &models.EmailNotificationRequest{
		To:      to,
		Subject: subject,
		Content: buf.String(),
		Metadata: map[string]string{
			"event_id":   event.ID.String(),
			"event_type": string(event.Type),
		},
	}, nil
}
