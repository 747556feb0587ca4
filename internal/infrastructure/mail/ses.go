package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/raatap-waitlist/internal/config"
	"github.com/raatap-waitlist/internal/infrastructure/awscfg"
)

type sesMailer struct {
	client *ses.Client
	from   string
}

func NewSESMailer(awsCfg aws.Config, cfg *config.Config) Mailer {
	clientOpts := []func(*ses.Options){}
	if ep := awscfg.Endpoint(cfg); ep != nil {
		clientOpts = append(clientOpts, func(o *ses.Options) {
			o.BaseEndpoint = ep
		})
	}
	return &sesMailer{client: ses.NewFromConfig(awsCfg, clientOpts...), from: cfg.MailFrom}
}

func (m *sesMailer) Send(ctx context.Context, msg Message) error {
	body := &types.Body{Text: utf8(msg.Text)}
	if msg.HTML != "" {
		body.Html = utf8(msg.HTML)
	}
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(m.from),
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message: &types.Message{
			Subject: utf8(msg.Subject),
			Body:    body,
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}

func utf8(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String("UTF-8")}
}
