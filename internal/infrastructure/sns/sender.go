package sns

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/raatap-waitlist/internal/config"
	"github.com/raatap-waitlist/internal/infrastructure/awscfg"
)

// SMSSender sends SMS messages via AWS SNS.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type sender struct {
	client *sns.Client
}

func NewSender(awsCfg aws.Config, cfg *config.Config) SMSSender {
	clientOpts := []func(*sns.Options){}
	if ep := awscfg.Endpoint(cfg); ep != nil {
		clientOpts = append(clientOpts, func(o *sns.Options) {
			o.BaseEndpoint = ep
		})
	}
	return &sender{client: sns.NewFromConfig(awsCfg, clientOpts...)}
}

func (s *sender) SendSMS(ctx context.Context, to, message string) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("Transactional"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}
