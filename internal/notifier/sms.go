package notifier

import (
	"context"
	"fmt"

	brevo "github.com/getbrevo/brevo-go/lib"
)

// SMSConfig holds the Brevo transactional SMS settings.
type SMSConfig struct {
	APIKey string `yaml:"api_key"`
	Sender string `yaml:"sender"` // alphanumeric sender id, max 11 chars
}

// BrevoSMSSender delivers alert texts through the Brevo transactional
// SMS API, one API call per recipient.
type BrevoSMSSender struct {
	client *brevo.APIClient
	sender string
}

func NewBrevoSMSSender(cfg SMSConfig) *BrevoSMSSender {
	apiCfg := brevo.NewConfiguration()
	apiCfg.AddDefaultHeader("api-key", cfg.APIKey)
	sender := cfg.Sender
	if sender == "" {
		sender = "sitewatch"
	}
	return &BrevoSMSSender{
		client: brevo.NewAPIClient(apiCfg),
		sender: sender,
	}
}

func (s *BrevoSMSSender) Send(ctx context.Context, to, message string) error {
	sms := brevo.SendTransacSms{
		Sender:    s.sender,
		Recipient: to,
		Content:   message,
		Type_:     "transactional",
	}
	_, _, err := s.client.TransactionalSMSApi.SendTransacSms(ctx, sms)
	if err != nil {
		return fmt.Errorf("send sms via brevo: %w", err)
	}
	return nil
}
