package notification

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/pkg/logger"
	"leadtrack-crm/internal/pkg/metrics"
	"leadtrack-crm/internal/policy"
	"leadtrack-crm/internal/repository"
	"leadtrack-crm/internal/service/email"
)

const (
	DefaultWindow           = 24 * time.Hour
	DefaultReminderLeadTime = time.Hour

	unreadCacheTTL = time.Minute
)

type Service interface {
	CheckFollowUps(ctx context.Context, actor *domain.User) (int, error)
	ScheduleFollowUp(ctx context.Context, lead *domain.Lead) (*domain.Notification, error)
	List(ctx context.Context, actor *domain.User, status domain.NotificationStatusFilter, params domain.PaginationParams) (domain.Page[domain.Notification], error)
	UnreadCount(ctx context.Context, actor *domain.User) (int64, error)
	MarkAsRead(ctx context.Context, actor *domain.User, id int64) (*domain.Notification, error)
	Dismiss(ctx context.Context, actor *domain.User, id int64) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, actor *domain.User) (int64, error)
}

// Options tunes the reconciliation window. Zero values use the defaults.
type Options struct {
	Window           time.Duration
	ReminderLeadTime time.Duration
	Now              func() time.Time
}

type service struct {
	notifRepo repository.NotificationRepository
	leadRepo  repository.LeadRepository
	emailSvc  email.Service
	policy    policy.Policy
	redis     *redis.Client
	log       *zap.Logger

	window       time.Duration
	reminderLead time.Duration
	now          func() time.Time
}

func NewService(
	notifRepo repository.NotificationRepository,
	leadRepo repository.LeadRepository,
	emailSvc email.Service,
	p policy.Policy,
	redis *redis.Client,
	log *zap.Logger,
	opts Options,
) Service {
	s := &service{
		notifRepo:    notifRepo,
		leadRepo:     leadRepo,
		emailSvc:     emailSvc,
		policy:       p,
		redis:        redis,
		log:          logger.OrNop(log).Named("notification"),
		window:       opts.Window,
		reminderLead: opts.ReminderLeadTime,
		now:          opts.Now,
	}
	if s.window <= 0 {
		s.window = DefaultWindow
	}
	if s.reminderLead <= 0 {
		s.reminderLead = DefaultReminderLeadTime
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// CheckFollowUps creates a follow_up notification for every lead the actor
// owns whose next follow-up is due within the window, skipping ones that
// already have a live notification. Reminder emails go out after the
// notifications are committed; a failed reminder never fails the check.
func (s *service) CheckFollowUps(ctx context.Context, actor *domain.User) (int, error) {
	metrics.FollowUpChecks.Inc()

	now := s.now().UTC()
	leads, err := s.leadRepo.ListDueFollowUps(ctx, actor.ID, now, now.Add(s.window))
	if err != nil {
		return 0, fmt.Errorf("list due follow-ups: %w", err)
	}
	if len(leads) == 0 {
		return 0, nil
	}

	candidates := make([]*domain.Notification, 0, len(leads))
	for i := range leads {
		candidates = append(candidates, followUpNotification(actor.ID, &leads[i]))
	}

	created, err := s.notifRepo.CreateIdempotent(ctx, candidates)
	if err != nil {
		return 0, fmt.Errorf("create follow-up notifications: %w", err)
	}
	if len(created) == 0 {
		return 0, nil
	}

	metrics.NotificationsCreated.WithLabelValues(string(domain.NotifFollowUp), "check").Add(float64(len(created)))
	s.invalidateUnread(ctx, actor.ID)

	reminderCutoff := now.Add(s.reminderLead)
	for _, n := range created {
		if n.ScheduledFor == nil || n.ScheduledFor.After(reminderCutoff) {
			continue
		}
		s.sendReminder(ctx, actor, n)
	}

	s.log.Info("follow-up check finished",
		zap.Int64("user_id", actor.ID),
		zap.Int("due", len(leads)),
		zap.Int("created", len(created)),
	)
	return len(created), nil
}

func (s *service) sendReminder(ctx context.Context, actor *domain.User, n *domain.Notification) {
	if err := s.emailSvc.SendFollowUpReminder(ctx, actor, n); err != nil {
		metrics.ReminderEmails.WithLabelValues("failed").Inc()
		s.log.Warn("follow-up reminder not sent",
			zap.Int64("notification_id", n.ID),
			zap.Int64("user_id", actor.ID),
			zap.Error(err),
		)
		return
	}
	metrics.ReminderEmails.WithLabelValues("sent").Inc()
}

// ScheduleFollowUp records a follow_up notification for the lead's owner at
// the lead's next follow-up time. It returns nil without error when the lead
// has no owner or follow-up, or when an identical live notification exists.
func (s *service) ScheduleFollowUp(ctx context.Context, lead *domain.Lead) (*domain.Notification, error) {
	if lead.AssignedTo == nil || lead.NextFollowUp == nil {
		return nil, nil
	}

	created, err := s.notifRepo.CreateIdempotent(ctx, []*domain.Notification{followUpNotification(*lead.AssignedTo, lead)})
	if err != nil {
		return nil, fmt.Errorf("schedule follow-up: %w", err)
	}
	if len(created) == 0 {
		return nil, nil
	}

	metrics.NotificationsCreated.WithLabelValues(string(domain.NotifFollowUp), "lead_update").Inc()
	s.invalidateUnread(ctx, *lead.AssignedTo)
	return created[0], nil
}

func (s *service) List(ctx context.Context, actor *domain.User, status domain.NotificationStatusFilter, params domain.PaginationParams) (domain.Page[domain.Notification], error) {
	if status == "" {
		status = domain.NotificationStatusFilter(domain.NotifUnread)
	}
	if !status.IsValid() {
		return domain.Page[domain.Notification]{}, domain.NewValidationError("status", "must be one of: unread read dismissed all")
	}

	params.Normalize()
	items, total, err := s.notifRepo.ListByUser(ctx, actor.ID, status, params)
	if err != nil {
		return domain.Page[domain.Notification]{}, err
	}
	return domain.NewPage(items, params, total), nil
}

func (s *service) UnreadCount(ctx context.Context, actor *domain.User) (int64, error) {
	key := unreadKey(actor.ID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			if n, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return n, nil
			}
		}
	}

	count, err := s.notifRepo.CountUnread(ctx, actor.ID)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		_ = s.redis.Set(ctx, key, count, unreadCacheTTL).Err()
	}
	return count, nil
}

func (s *service) MarkAsRead(ctx context.Context, actor *domain.User, id int64) (*domain.Notification, error) {
	return s.transition(ctx, actor, id, domain.NotifRead)
}

func (s *service) Dismiss(ctx context.Context, actor *domain.User, id int64) (*domain.Notification, error) {
	return s.transition(ctx, actor, id, domain.NotifDismissed)
}

func (s *service) MarkAllAsRead(ctx context.Context, actor *domain.User) (int64, error) {
	n, err := s.notifRepo.MarkAllAsRead(ctx, actor.ID)
	if err != nil {
		return 0, err
	}
	s.invalidateUnread(ctx, actor.ID)
	return n, nil
}

func (s *service) transition(ctx context.Context, actor *domain.User, id int64, next domain.NotificationStatus) (*domain.Notification, error) {
	n, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.NotFoundf("notification %d", id)
	}
	if err := policy.AuthorizeNotification(s.policy, actor, n); err != nil {
		return nil, err
	}

	if !n.Status.CanTransition(next) {
		return nil, fmt.Errorf("notification %d is %s: %w", id, n.Status, domain.ErrInvalidTransition)
	}
	if n.Status == next {
		return n, nil
	}

	if err := s.notifRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	n.Status = next
	s.invalidateUnread(ctx, n.UserID)
	return n, nil
}

func (s *service) invalidateUnread(ctx context.Context, userID int64) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, unreadKey(userID)).Err()
	}
}

func unreadKey(userID int64) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

func followUpNotification(userID int64, lead *domain.Lead) *domain.Notification {
	leadID := lead.ID
	scheduledFor := *lead.NextFollowUp
	return &domain.Notification{
		UserID:       userID,
		LeadID:       &leadID,
		Type:         domain.NotifFollowUp,
		Title:        fmt.Sprintf("Follow-up with %s", lead.Name),
		Message:      fmt.Sprintf("You have a scheduled follow-up with %s from %s.", lead.Name, lead.CompanyName),
		Status:       domain.NotifUnread,
		ScheduledFor: &scheduledFor,
	}
}
