package dynamo

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/raatap-waitlist/internal/config"
	"github.com/raatap-waitlist/internal/infrastructure/awscfg"
)

// NewClient creates a DynamoDB client. When cfg.AWSEndpointURL is set (LocalStack),
// it overrides the endpoint so all traffic goes to the local instance.
func NewClient(awsCfg aws.Config, cfg *config.Config) *dynamodb.Client {
	clientOpts := []func(*dynamodb.Options){}
	if ep := awscfg.Endpoint(cfg); ep != nil {
		clientOpts = append(clientOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = ep
		})
	}
	return dynamodb.NewFromConfig(awsCfg, clientOpts...)
}
