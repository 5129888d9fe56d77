package email_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/mocks"
	"leadtrack-crm/internal/service/email"
)

func TestService_Send_UsesIdentity(t *testing.T) {
	sender := new(mocks.EmailSender)
	svc := email.NewService(sender, email.Identity{Address: "crm@acme.io", Name: "Acme CRM"}, "", zaptest.NewLogger(t))

	msg := email.Message{To: "ada@acme.io", Subject: "Hi", Text: "Hello"}
	sender.On("Send", mock.Anything, "Acme CRM <crm@acme.io>", msg).Return("msg-1", nil).Once()

	id, err := svc.Send(context.Background(), msg)

	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	sender.AssertExpectations(t)
}

func TestService_Send_NoSenderAddress(t *testing.T) {
	sender := new(mocks.EmailSender)
	svc := email.NewService(sender, email.Identity{Name: "Acme CRM"}, "", nil)

	_, err := svc.Send(context.Background(), email.Message{To: "ada@acme.io"})

	assert.ErrorIs(t, err, domain.ErrSenderNotConfigured)
	assert.ErrorIs(t, err, domain.ErrExternalService)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Send_ProviderFailure(t *testing.T) {
	sender := new(mocks.EmailSender)
	svc := email.NewService(sender, email.Identity{Address: "crm@acme.io"}, "", nil)

	sender.On("Send", mock.Anything, "crm@acme.io", mock.Anything).Return("", errors.New("rate limited")).Once()

	_, err := svc.Send(context.Background(), email.Message{To: "ada@acme.io"})

	assert.ErrorIs(t, err, domain.ErrExternalService)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestService_SetIdentity(t *testing.T) {
	sender := new(mocks.EmailSender)
	svc := email.NewService(sender, email.Identity{}, "", nil)

	svc.SetIdentity(email.Identity{Address: "sales@acme.io", Name: "Sales"})
	sender.On("Send", mock.Anything, "Sales <sales@acme.io>", mock.Anything).Return("m", nil).Once()

	_, err := svc.Send(context.Background(), email.Message{To: "x@acme.io"})

	require.NoError(t, err)
	assert.Equal(t, "sales@acme.io", svc.Identity().Address)
}

func TestService_SendFollowUpReminder(t *testing.T) {
	sender := new(mocks.EmailSender)
	svc := email.NewService(sender, email.Identity{Address: "crm@acme.io"}, "https://crm.acme.io", nil)

	leadID := int64(42)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	user := &domain.User{ID: 7, Email: "sam@acme.io", FirstName: "Sam", LastName: "Lee"}
	n := &domain.Notification{
		LeadID:       &leadID,
		Title:        "Follow-up with Ada",
		Message:      "You have a scheduled follow-up with Ada from Acme.",
		ScheduledFor: &at,
	}

	sender.On("Send", mock.Anything, "crm@acme.io", mock.MatchedBy(func(m email.Message) bool {
		return m.To == "sam@acme.io" &&
			m.Subject == "Reminder: Follow-up with Ada" &&
			strings.Contains(m.Text, "Hi Sam Lee") &&
			strings.Contains(m.Text, "https://crm.acme.io/leads/42") &&
			strings.Contains(m.HTML, "<h2>Follow-up with Ada</h2>")
	})).Return("m-2", nil).Once()

	err := svc.SendFollowUpReminder(context.Background(), user, n)

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("ses-123")}, nil
}

func TestSESSender_Send(t *testing.T) {
	api := &fakeSES{}
	sender := email.NewSESSenderWithClient(api)

	id, err := sender.Send(context.Background(), "CRM <crm@acme.io>", email.Message{
		To: "ada@acme.io", Subject: "Hi", Text: "plain",
	})

	require.NoError(t, err)
	assert.Equal(t, "ses-123", id)
	assert.Equal(t, "ses", sender.Provider())
	assert.Equal(t, []string{"ada@acme.io"}, api.input.Destination.ToAddresses)
	assert.Equal(t, "CRM <crm@acme.io>", aws.ToString(api.input.Source))
	assert.Equal(t, "plain", aws.ToString(api.input.Message.Body.Text.Data))
	assert.Nil(t, api.input.Message.Body.Html)
}

func TestSESSender_Error(t *testing.T) {
	sender := email.NewSESSenderWithClient(&fakeSES{err: errors.New("throttled")})

	_, err := sender.Send(context.Background(), "crm@acme.io", email.Message{To: "ada@acme.io"})

	assert.EqualError(t, err, "throttled")
}
