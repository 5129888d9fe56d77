package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"leadtrack-crm/internal/config"
	"leadtrack-crm/internal/policy"
	"leadtrack-crm/internal/repository"
	"leadtrack-crm/internal/service/auth"
	"leadtrack-crm/internal/service/dashboard"
	"leadtrack-crm/internal/service/email"
	"leadtrack-crm/internal/service/export"
	"leadtrack-crm/internal/service/lead"
	"leadtrack-crm/internal/service/notification"
	"leadtrack-crm/internal/service/settings"
	"leadtrack-crm/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Lead         lead.Service
	Notification notification.Service
	Email        email.Service
	Settings     settings.Service
	Export       export.Service
	Dashboard    dashboard.Service
}

// NewServices wires every service. store may be nil, in which case lead
// export reports object storage as unavailable.
func NewServices(
	ctx context.Context,
	repos *repository.Repositories,
	redis *redis.Client,
	store export.ObjectStore,
	sender email.Sender,
	cfg *config.Config,
	log *zap.Logger,
) *Services {
	p := policy.New()
	fallback := email.Identity{Address: cfg.FromEmail, Name: cfg.FromName}

	emailService := email.NewService(sender, fallback, cfg.AppBaseURL, log)
	settingsService := settings.NewService(repos.Settings, emailService, fallback, p, log)

	identity, err := settingsService.LoadIdentity(ctx)
	if err != nil {
		log.Warn("sender identity not loaded from settings, using environment", zap.Error(err))
	} else {
		emailService.SetIdentity(identity)
	}

	notificationService := notification.NewService(
		repos.Notification,
		repos.Lead,
		emailService,
		p,
		redis,
		log,
		notification.Options{Window: cfg.FollowUpWindow, ReminderLeadTime: cfg.ReminderLeadTime},
	)

	leadService := lead.NewService(lead.Deps{
		Leads:      repos.Lead,
		Notes:      repos.Note,
		Activities: repos.Activity,
		EmailLogs:  repos.EmailLog,
		Users:      repos.User,
		FollowUps:  notificationService,
		Email:      emailService,
		Policy:     p,
		Redis:      redis,
		Log:        log,
		Now:        time.Now,
	})

	return &Services{
		Auth:         auth.NewService(repos.User, repos.Session, cfg, log),
		User:         user.NewService(repos.User, repos.Session, p, log),
		Lead:         leadService,
		Notification: notificationService,
		Email:        emailService,
		Settings:     settingsService,
		Export:       export.NewService(repos.Lead, store, cfg.MinIOBucket, cfg.ExportURLTTL, log),
		Dashboard:    dashboard.NewService(repos.Lead, redis, cfg.FollowUpWindow, log),
	}
}
