package email

import (
	"context"
	"fmt"

	"leadtrack-crm/internal/config"
)

// NewSender picks the transport named by EMAIL_PROVIDER.
func NewSender(ctx context.Context, cfg *config.Config) (Sender, error) {
	switch cfg.EmailProvider {
	case "", "resend":
		return NewResendSender(cfg.ResendAPIKey), nil
	case "ses":
		return NewSESSender(ctx, cfg.AWSRegion)
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
}
