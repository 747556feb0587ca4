package mail

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/raatap-waitlist/internal/config"
)

func awsConfigForTest() aws.Config { return aws.Config{Region: "ap-south-1"} }

func cfgWithDriver(driver string) *config.Config {
	return &config.Config{MailDriver: driver, MailFrom: "Raatap <team@raatap.com>"}
}
