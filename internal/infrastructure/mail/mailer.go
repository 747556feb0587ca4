package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/raatap-waitlist/internal/config"
)

// Message is a single outbound email with plain-text and HTML bodies.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends emails.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer picks the delivery backend from cfg.MailDriver.
func NewMailer(awsCfg aws.Config, cfg *config.Config) (Mailer, error) {
	switch cfg.MailDriver {
	case "smtp", "":
		return NewSMTPMailer(cfg), nil
	case "ses":
		return NewSESMailer(awsCfg, cfg), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.MailDriver)
	}
}
