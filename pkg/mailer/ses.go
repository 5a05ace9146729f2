package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charsetUTF8 = "UTF-8"

type sesMailer struct {
	client *ses.Client
	sender string
}

// NewSESMailer builds the SES-backed Mailer. Credentials and region come from
// the default AWS config chain; sender is the verified "from" address.
func NewSESMailer(ctx context.Context, region, sender string) (Mailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &sesMailer{
		client: ses.NewFromConfig(cfg),
		sender: sender,
	}, nil
}

func (m *sesMailer) Send(ctx context.Context, to string, msg Message) error {
	input := &ses.SendEmailInput{
		Source: aws.String(m.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String(charsetUTF8),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(msg.HTMLBody),
					Charset: aws.String(charsetUTF8),
				},
				Text: &types.Content{
					Data:    aws.String(msg.TextBody),
					Charset: aws.String(charsetUTF8),
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send to %s failed: %w", to, err)
	}

	return nil
}
