package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/service/email"
)

type EmailSender struct {
	mock.Mock
}

func (m *EmailSender) Send(ctx context.Context, from string, msg email.Message) (string, error) {
	args := m.Called(ctx, from, msg)
	return args.String(0), args.Error(1)
}

func (m *EmailSender) Provider() string {
	return "mock"
}

type EmailService struct {
	mock.Mock
}

func (m *EmailService) Identity() email.Identity {
	args := m.Called()
	return args.Get(0).(email.Identity)
}

func (m *EmailService) SetIdentity(identity email.Identity) {
	m.Called(identity)
}

func (m *EmailService) Send(ctx context.Context, msg email.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func (m *EmailService) SendFollowUpReminder(ctx context.Context, to *domain.User, n *domain.Notification) error {
	args := m.Called(ctx, to, n)
	return args.Error(0)
}
