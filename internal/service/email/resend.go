package email

import (
	"context"

	"github.com/resend/resend-go/v3"
)

type resendSender struct {
	client *resend.Client
}

func NewResendSender(apiKey string) Sender {
	return &resendSender{client: resend.NewClient(apiKey)}
}

func (r *resendSender) Provider() string { return "resend" }

func (r *resendSender) Send(ctx context.Context, from string, msg Message) (string, error) {
	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}

	resp, err := r.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", err
	}
	return resp.Id, nil
}
