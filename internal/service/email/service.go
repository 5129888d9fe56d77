package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"sync"
	"text/template"
	"time"

	"go.uber.org/zap"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/pkg/logger"
	"leadtrack-crm/internal/pkg/metrics"
)

//go:embed templates/*
var templateFS embed.FS

var (
	textTemplates = template.Must(template.ParseFS(templateFS, "templates/*.txt"))
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html"))
)

// Identity is the sender every outbound message is sent as.
type Identity struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

func (i Identity) From() string {
	if i.Name == "" {
		return i.Address
	}
	return fmt.Sprintf("%s <%s>", i.Name, i.Address)
}

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a single message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, from string, msg Message) (string, error)
	Provider() string
}

type Service interface {
	Identity() Identity
	SetIdentity(identity Identity)
	Send(ctx context.Context, msg Message) (string, error)
	SendFollowUpReminder(ctx context.Context, to *domain.User, n *domain.Notification) error
}

type service struct {
	sender     Sender
	appBaseURL string
	log        *zap.Logger

	mu       sync.RWMutex
	identity Identity
}

func NewService(sender Sender, identity Identity, appBaseURL string, log *zap.Logger) Service {
	return &service{
		sender:     sender,
		identity:   identity,
		appBaseURL: appBaseURL,
		log:        logger.OrNop(log).Named("email"),
	}
}

func (s *service) Identity() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *service) SetIdentity(identity Identity) {
	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()
	s.log.Info("sender identity updated", zap.String("address", identity.Address))
}

// Send delivers msg as the current identity. Every failure, including a
// missing sender address, matches domain.ErrExternalService.
func (s *service) Send(ctx context.Context, msg Message) (string, error) {
	identity := s.Identity()
	provider := s.sender.Provider()

	if identity.Address == "" {
		metrics.EmailsSent.WithLabelValues(provider, "not_configured").Inc()
		return "", domain.ExternalError("email", domain.ErrSenderNotConfigured)
	}

	id, err := s.sender.Send(ctx, identity.From(), msg)
	if err != nil {
		metrics.EmailsSent.WithLabelValues(provider, "failed").Inc()
		return "", domain.ExternalError(provider, err)
	}

	metrics.EmailsSent.WithLabelValues(provider, "sent").Inc()
	s.log.Debug("email sent", zap.String("provider", provider), zap.String("message_id", id))
	return id, nil
}

type reminderData struct {
	Name         string
	Title        string
	Message      string
	ScheduledFor string
	Link         string
}

func (s *service) SendFollowUpReminder(ctx context.Context, to *domain.User, n *domain.Notification) error {
	data := reminderData{
		Name:    to.FullName(),
		Title:   n.Title,
		Message: n.Message,
		Link:    s.appBaseURL + "/notifications",
	}
	if n.ScheduledFor != nil {
		data.ScheduledFor = n.ScheduledFor.UTC().Format(time.RFC1123)
	}
	if n.LeadID != nil {
		data.Link = fmt.Sprintf("%s/leads/%d", s.appBaseURL, *n.LeadID)
	}

	msg, err := renderReminder(to.Email, data)
	if err != nil {
		return err
	}

	_, err = s.Send(ctx, msg)
	return err
}

func renderReminder(to string, data reminderData) (Message, error) {
	var text, html bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&text, "follow_up_reminder.txt", data); err != nil {
		return Message{}, fmt.Errorf("render reminder text: %w", err)
	}
	if err := htmlTemplates.ExecuteTemplate(&html, "follow_up_reminder.html", data); err != nil {
		return Message{}, fmt.Errorf("render reminder html: %w", err)
	}

	return Message{
		To:      to,
		Subject: "Reminder: " + data.Title,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
