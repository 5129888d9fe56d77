package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/mocks"
	"leadtrack-crm/internal/policy"
	"leadtrack-crm/internal/service/notification"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func teamMember(id int64) *domain.User {
	return &domain.User{ID: id, Email: "sam@acme.io", FirstName: "Sam", Role: domain.RoleTeamMember, IsActive: true}
}

func admin() *domain.User {
	return &domain.User{ID: 1, Email: "root@acme.io", FirstName: "Root", Role: domain.RoleAdmin, IsActive: true}
}

func dueLead(id, owner int64, in time.Duration) domain.Lead {
	at := fixedNow.Add(in)
	return domain.Lead{ID: id, Name: "Ada", CompanyName: "Acme", AssignedTo: &owner, NextFollowUp: &at}
}

// memNotifications mimics the partial unique index: a live notification with
// the same lead, type and scheduled time blocks a new insert.
type memNotifications struct {
	mocks.NotificationRepository
	rows   []*domain.Notification
	nextID int64
}

func (m *memNotifications) CreateIdempotent(ctx context.Context, notifs []*domain.Notification) ([]*domain.Notification, error) {
	var created []*domain.Notification
	for _, n := range notifs {
		if m.live(n) {
			continue
		}
		m.nextID++
		n.ID = m.nextID
		n.CreatedAt = fixedNow
		m.rows = append(m.rows, n)
		created = append(created, n)
	}
	return created, nil
}

func (m *memNotifications) live(n *domain.Notification) bool {
	for _, r := range m.rows {
		if r.Status != domain.NotifDismissed && *r.LeadID == *n.LeadID && r.Type == n.Type && r.ScheduledFor.Equal(*n.ScheduledFor) {
			return true
		}
	}
	return false
}

type fixture struct {
	notifs *memNotifications
	leads  *mocks.LeadRepository
	email  *mocks.EmailService
	svc    notification.Service
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		notifs: &memNotifications{},
		leads:  new(mocks.LeadRepository),
		email:  new(mocks.EmailService),
	}
	f.svc = notification.NewService(f.notifs, f.leads, f.email, policy.New(), nil, zaptest.NewLogger(t),
		notification.Options{Now: func() time.Time { return fixedNow }})
	return f
}

func (f *fixture) expectDue(userID int64, leads ...domain.Lead) {
	f.leads.On("ListDueFollowUps", mock.Anything, userID, fixedNow, fixedNow.Add(24*time.Hour)).Return(leads, nil)
}

func TestCheckFollowUps_DueSoonSendsReminder(t *testing.T) {
	f := newFixture(t)
	actor := teamMember(7)
	f.expectDue(7, dueLead(1, 7, 30*time.Minute))
	f.email.On("SendFollowUpReminder", mock.Anything, actor, mock.MatchedBy(func(n *domain.Notification) bool {
		return *n.LeadID == 1 && n.Title == "Follow-up with Ada"
	})).Return(nil).Once()

	count, err := f.svc.CheckFollowUps(context.Background(), actor)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, f.notifs.rows, 1)
	n := f.notifs.rows[0]
	assert.Equal(t, domain.NotifFollowUp, n.Type)
	assert.Equal(t, domain.NotifUnread, n.Status)
	assert.Equal(t, int64(7), n.UserID)
	assert.Equal(t, "You have a scheduled follow-up with Ada from Acme.", n.Message)
	assert.True(t, n.ScheduledFor.Equal(fixedNow.Add(30*time.Minute)))
	f.email.AssertExpectations(t)
}

func TestCheckFollowUps_LaterTodayNoReminder(t *testing.T) {
	f := newFixture(t)
	actor := teamMember(7)
	f.expectDue(7, dueLead(1, 7, 10*time.Hour))

	count, err := f.svc.CheckFollowUps(context.Background(), actor)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	f.email.AssertNotCalled(t, "SendFollowUpReminder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckFollowUps_ReminderBoundaryIsInclusive(t *testing.T) {
	f := newFixture(t)
	actor := teamMember(7)
	f.expectDue(7, dueLead(1, 7, time.Hour))
	f.email.On("SendFollowUpReminder", mock.Anything, actor, mock.Anything).Return(nil).Once()

	_, err := f.svc.CheckFollowUps(context.Background(), actor)

	require.NoError(t, err)
	f.email.AssertExpectations(t)
}

func TestCheckFollowUps_Idempotent(t *testing.T) {
	f := newFixture(t)
	actor := teamMember(7)
	f.expectDue(7, dueLead(1, 7, 10*time.Hour), dueLead(2, 7, 20*time.Hour))

	first, err := f.svc.CheckFollowUps(context.Background(), actor)
	require.NoError(t, err)
	second, err := f.svc.CheckFollowUps(context.Background(), actor)
	require.NoError(t, err)

	assert.Equal(t, 2, first)
	assert.Equal(t, 0, second)
	assert.Len(t, f.notifs.rows, 2)
}

func TestCheckFollowUps_DismissedDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	actor := teamMember(7)
	f.expectDue(7, dueLead(1, 7, 10*time.Hour))

	_, err := f.svc.CheckFollowUps(context.Background(), actor)
	require.NoError(t, err)
	f.notifs.rows[0].Status = domain.NotifDismissed

	count, err := f.svc.CheckFollowUps(context.Background(), actor)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCheckFollowUps_NothingDue(t *testing.T) {
	f := newFixture(t)
	f.expectDue(7)

	count, err := f.svc.CheckFollowUps(context.Background(), teamMember(7))

	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, f.notifs.rows)
}

func TestCheckFollowUps_ReminderFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	actor := teamMember(7)
	f.expectDue(7, dueLead(1, 7, 15*time.Minute), dueLead(2, 7, 45*time.Minute))
	f.email.On("SendFollowUpReminder", mock.Anything, actor, mock.Anything).
		Return(domain.ExternalError("email", domain.ErrSenderNotConfigured)).Twice()

	count, err := f.svc.CheckFollowUps(context.Background(), actor)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	f.email.AssertExpectations(t)
}

func TestCheckFollowUps_RepositoryError(t *testing.T) {
	leads := new(mocks.LeadRepository)
	svc := notification.NewService(&memNotifications{}, leads, nil, policy.New(), nil, nil,
		notification.Options{Now: func() time.Time { return fixedNow }})
	leads.On("ListDueFollowUps", mock.Anything, int64(7), mock.Anything, mock.Anything).
		Return([]domain.Lead(nil), errors.New("db down"))

	_, err := svc.CheckFollowUps(context.Background(), teamMember(7))

	assert.ErrorContains(t, err, "db down")
}

func TestScheduleFollowUp(t *testing.T) {
	f := newFixture(t)

	t.Run("creates for owner", func(t *testing.T) {
		lead := dueLead(3, 7, 48*time.Hour)
		n, err := f.svc.ScheduleFollowUp(context.Background(), &lead)
		require.NoError(t, err)
		require.NotNil(t, n)
		assert.Equal(t, int64(7), n.UserID)
		assert.True(t, n.ScheduledFor.Equal(*lead.NextFollowUp))
	})

	t.Run("duplicate returns nil", func(t *testing.T) {
		lead := dueLead(3, 7, 48*time.Hour)
		n, err := f.svc.ScheduleFollowUp(context.Background(), &lead)
		require.NoError(t, err)
		assert.Nil(t, n)
	})

	t.Run("no owner", func(t *testing.T) {
		lead := dueLead(4, 7, time.Hour)
		lead.AssignedTo = nil
		n, err := f.svc.ScheduleFollowUp(context.Background(), &lead)
		require.NoError(t, err)
		assert.Nil(t, n)
	})
}

func newTransitionService(t *testing.T, repo *mocks.NotificationRepository) notification.Service {
	return notification.NewService(repo, new(mocks.LeadRepository), nil, policy.New(), nil, zaptest.NewLogger(t), notification.Options{})
}

func TestTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("dismissed cannot be read", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := newTransitionService(t, repo)
		repo.On("GetByID", ctx, int64(5)).Return(&domain.Notification{ID: 5, UserID: 7, Status: domain.NotifDismissed}, nil)

		_, err := svc.MarkAsRead(ctx, teamMember(7), 5)

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("dismissed cannot be dismissed again", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := newTransitionService(t, repo)
		repo.On("GetByID", ctx, int64(5)).Return(&domain.Notification{ID: 5, UserID: 7, Status: domain.NotifDismissed}, nil)

		_, err := svc.Dismiss(ctx, teamMember(7), 5)

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("read to dismissed", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := newTransitionService(t, repo)
		repo.On("GetByID", ctx, int64(5)).Return(&domain.Notification{ID: 5, UserID: 7, Status: domain.NotifRead}, nil)
		repo.On("UpdateStatus", ctx, int64(5), domain.NotifDismissed).Return(nil).Once()

		n, err := svc.Dismiss(ctx, teamMember(7), 5)

		require.NoError(t, err)
		assert.Equal(t, domain.NotifDismissed, n.Status)
		repo.AssertExpectations(t)
	})

	t.Run("read again is a no-op", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := newTransitionService(t, repo)
		repo.On("GetByID", ctx, int64(5)).Return(&domain.Notification{ID: 5, UserID: 7, Status: domain.NotifRead}, nil)

		n, err := svc.MarkAsRead(ctx, teamMember(7), 5)

		require.NoError(t, err)
		assert.Equal(t, domain.NotifRead, n.Status)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("other user's notification is forbidden", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := newTransitionService(t, repo)
		repo.On("GetByID", ctx, int64(5)).Return(&domain.Notification{ID: 5, UserID: 8, Status: domain.NotifUnread}, nil)

		_, err := svc.MarkAsRead(ctx, teamMember(7), 5)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin may act on any notification", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := newTransitionService(t, repo)
		repo.On("GetByID", ctx, int64(5)).Return(&domain.Notification{ID: 5, UserID: 8, Status: domain.NotifUnread}, nil)
		repo.On("UpdateStatus", ctx, int64(5), domain.NotifRead).Return(nil).Once()

		n, err := svc.MarkAsRead(ctx, admin(), 5)

		require.NoError(t, err)
		assert.Equal(t, domain.NotifRead, n.Status)
	})

	t.Run("missing is not found before policy", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := newTransitionService(t, repo)
		repo.On("GetByID", ctx, int64(5)).Return(nil, nil)

		_, err := svc.MarkAsRead(ctx, teamMember(7), 5)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestList_DefaultsToUnread(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := newTransitionService(t, repo)
	params := domain.PaginationParams{Page: 1, PerPage: 20}
	repo.On("ListByUser", mock.Anything, int64(7), domain.NotificationStatusFilter("unread"), params).
		Return([]domain.Notification{{ID: 1}}, int64(1), nil)

	page, err := svc.List(context.Background(), teamMember(7), "", domain.PaginationParams{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Len(t, page.Items, 1)
}

func TestList_RejectsUnknownStatus(t *testing.T) {
	svc := newTransitionService(t, new(mocks.NotificationRepository))

	_, err := svc.List(context.Background(), teamMember(7), "archived", domain.PaginationParams{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUnreadCount_Cached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := new(mocks.NotificationRepository)
	svc := notification.NewService(repo, new(mocks.LeadRepository), nil, policy.New(), rdb, nil, notification.Options{})
	ctx := context.Background()

	repo.On("CountUnread", ctx, int64(7)).Return(int64(3), nil).Once()

	first, err := svc.UnreadCount(ctx, teamMember(7))
	require.NoError(t, err)
	second, err := svc.UnreadCount(ctx, teamMember(7))
	require.NoError(t, err)

	assert.Equal(t, int64(3), first)
	assert.Equal(t, int64(3), second)
	assert.True(t, mr.Exists("notifications:unread:7"))
	repo.AssertNumberOfCalls(t, "CountUnread", 1)

	repo.On("MarkAllAsRead", ctx, int64(7)).Return(int64(3), nil).Once()
	_, err = svc.MarkAllAsRead(ctx, teamMember(7))
	require.NoError(t, err)
	assert.False(t, mr.Exists("notifications:unread:7"))
}
