package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/repository"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.User, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Create(ctx context.Context, session *repository.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionRepository) GetActiveByTokenHash(ctx context.Context, tokenHash string) (*repository.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Session), args.Error(1)
}

func (m *SessionRepository) Revoke(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SessionRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type LeadRepository struct {
	mock.Mock
}

func (m *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *LeadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *LeadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *LeadRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *LeadRepository) List(ctx context.Context, filter domain.LeadFilter, params domain.PaginationParams) ([]domain.Lead, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.Lead), args.Get(1).(int64), args.Error(2)
}

func (m *LeadRepository) ListAll(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Lead), args.Error(1)
}

func (m *LeadRepository) ListDueFollowUps(ctx context.Context, userID int64, after, until time.Time) ([]domain.Lead, error) {
	args := m.Called(ctx, userID, after, until)
	return args.Get(0).([]domain.Lead), args.Error(1)
}

func (m *LeadRepository) CountByStatus(ctx context.Context, filter domain.LeadFilter) (map[domain.LeadStatus]int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.LeadStatus]int64), args.Error(1)
}

func (m *LeadRepository) CountFollowUps(ctx context.Context, filter domain.LeadFilter, now, until time.Time) (domain.FollowUpCounts, error) {
	args := m.Called(ctx, filter, now, until)
	return args.Get(0).(domain.FollowUpCounts), args.Error(1)
}

type NoteRepository struct {
	mock.Mock
}

func (m *NoteRepository) Create(ctx context.Context, note *domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *NoteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}

func (m *NoteRepository) Update(ctx context.Context, note *domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *NoteRepository) ListByLead(ctx context.Context, leadID int64) ([]domain.Note, error) {
	args := m.Called(ctx, leadID)
	return args.Get(0).([]domain.Note), args.Error(1)
}

type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *ActivityRepository) ListByLead(ctx context.Context, leadID int64, params domain.PaginationParams) ([]domain.Activity, int64, error) {
	args := m.Called(ctx, leadID, params)
	return args.Get(0).([]domain.Activity), args.Get(1).(int64), args.Error(2)
}

type EmailLogRepository struct {
	mock.Mock
}

func (m *EmailLogRepository) Record(ctx context.Context, log *domain.EmailLog, activity *domain.Activity) error {
	args := m.Called(ctx, log, activity)
	return args.Error(0)
}

func (m *EmailLogRepository) ListByLead(ctx context.Context, leadID int64) ([]domain.EmailLog, error) {
	args := m.Called(ctx, leadID)
	return args.Get(0).([]domain.EmailLog), args.Error(1)
}

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) CreateIdempotent(ctx context.Context, notifs []*domain.Notification) ([]*domain.Notification, error) {
	args := m.Called(ctx, notifs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Notification), args.Error(1)
}

func (m *NotificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationRepository) ListByUser(ctx context.Context, userID int64, status domain.NotificationStatusFilter, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, userID, status, params)
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *NotificationRepository) UpdateStatus(ctx context.Context, id int64, status domain.NotificationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *NotificationRepository) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type SettingsRepository struct {
	mock.Mock
}

func (m *SettingsRepository) List(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Setting), args.Error(1)
}

func (m *SettingsRepository) GetByKey(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func (m *SettingsRepository) Upsert(ctx context.Context, values map[string]string) ([]domain.Setting, error) {
	args := m.Called(ctx, values)
	return args.Get(0).([]domain.Setting), args.Error(1)
}

func (m *SettingsRepository) InsertDefaults(ctx context.Context, defaults []domain.DefaultSetting) (int, error) {
	args := m.Called(ctx, defaults)
	return args.Int(0), args.Error(1)
}
