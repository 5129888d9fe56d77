package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/service/auth"
	"leadtrack-crm/internal/service/dashboard"
	"leadtrack-crm/internal/service/email"
)

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error) {
	args := m.Called(ctx, input)
	var user *domain.User
	if v := args.Get(0); v != nil {
		user = v.(*domain.User)
	}
	var tokens *domain.TokenPair
	if v := args.Get(1); v != nil {
		tokens = v.(*domain.TokenPair)
	}
	return user, tokens, args.Error(2)
}

func (m *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *AuthService) ValidateAccessToken(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) CheckFollowUps(ctx context.Context, actor *domain.User) (int, error) {
	args := m.Called(ctx, actor)
	return args.Int(0), args.Error(1)
}

func (m *NotificationService) ScheduleFollowUp(ctx context.Context, lead *domain.Lead) (*domain.Notification, error) {
	args := m.Called(ctx, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) List(ctx context.Context, actor *domain.User, status domain.NotificationStatusFilter, params domain.PaginationParams) (domain.Page[domain.Notification], error) {
	args := m.Called(ctx, actor, status, params)
	return args.Get(0).(domain.Page[domain.Notification]), args.Error(1)
}

func (m *NotificationService) UnreadCount(ctx context.Context, actor *domain.User) (int64, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, actor *domain.User, id int64) (*domain.Notification, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) Dismiss(ctx context.Context, actor *domain.User, id int64) (*domain.Notification, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, actor *domain.User) (int64, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(int64), args.Error(1)
}

type LeadService struct {
	mock.Mock
}

func (m *LeadService) Create(ctx context.Context, actor *domain.User, input domain.CreateLeadInput) (*domain.Lead, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *LeadService) GetByID(ctx context.Context, actor *domain.User, id int64) (*domain.Lead, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *LeadService) List(ctx context.Context, actor *domain.User, filter domain.LeadFilter, params domain.PaginationParams) (domain.Page[domain.Lead], error) {
	args := m.Called(ctx, actor, filter, params)
	return args.Get(0).(domain.Page[domain.Lead]), args.Error(1)
}

func (m *LeadService) Update(ctx context.Context, actor *domain.User, id int64, input domain.UpdateLeadInput) (*domain.Lead, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *LeadService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *LeadService) AddNote(ctx context.Context, actor *domain.User, leadID int64, input domain.CreateNoteInput) (*domain.Note, error) {
	args := m.Called(ctx, actor, leadID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}

func (m *LeadService) ListNotes(ctx context.Context, actor *domain.User, leadID int64) ([]domain.Note, error) {
	args := m.Called(ctx, actor, leadID)
	return args.Get(0).([]domain.Note), args.Error(1)
}

func (m *LeadService) UpdateNote(ctx context.Context, actor *domain.User, leadID, noteID int64, input domain.UpdateNoteInput) (*domain.Note, error) {
	args := m.Called(ctx, actor, leadID, noteID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}

func (m *LeadService) ListActivities(ctx context.Context, actor *domain.User, leadID int64, params domain.PaginationParams) (domain.Page[domain.Activity], error) {
	args := m.Called(ctx, actor, leadID, params)
	return args.Get(0).(domain.Page[domain.Activity]), args.Error(1)
}

func (m *LeadService) LogEmail(ctx context.Context, actor *domain.User, leadID int64, input domain.LogEmailInput) (*domain.EmailLog, error) {
	args := m.Called(ctx, actor, leadID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailLog), args.Error(1)
}

func (m *LeadService) ListEmails(ctx context.Context, actor *domain.User, leadID int64) ([]domain.EmailLog, error) {
	args := m.Called(ctx, actor, leadID)
	return args.Get(0).([]domain.EmailLog), args.Error(1)
}

func (m *LeadService) SendEmail(ctx context.Context, actor *domain.User, leadID int64, input domain.SendEmailInput) (*domain.SendEmailResult, error) {
	args := m.Called(ctx, actor, leadID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SendEmailResult), args.Error(1)
}

type SettingsService struct {
	mock.Mock
}

func (m *SettingsService) List(ctx context.Context, actor *domain.User) ([]domain.Setting, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]domain.Setting), args.Error(1)
}

func (m *SettingsService) Get(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func (m *SettingsService) Update(ctx context.Context, actor *domain.User, values map[string]string) ([]domain.Setting, error) {
	args := m.Called(ctx, actor, values)
	return args.Get(0).([]domain.Setting), args.Error(1)
}

func (m *SettingsService) Initialize(ctx context.Context, actor *domain.User) ([]domain.Setting, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]domain.Setting), args.Error(1)
}

func (m *SettingsService) LoadIdentity(ctx context.Context) (email.Identity, error) {
	args := m.Called(ctx)
	return args.Get(0).(email.Identity), args.Error(1)
}

type UserService struct {
	mock.Mock
}

func (m *UserService) Register(ctx context.Context, actor *domain.User, input domain.CreateUserInput) (*domain.User, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserService) CreateAdmin(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserService) List(ctx context.Context, actor *domain.User, params domain.PaginationParams) (domain.Page[domain.User], error) {
	args := m.Called(ctx, actor, params)
	return args.Get(0).(domain.Page[domain.User]), args.Error(1)
}

func (m *UserService) Update(ctx context.Context, actor *domain.User, id int64, input domain.UpdateUserInput) (*domain.User, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type ExportService struct {
	mock.Mock
}

func (m *ExportService) ExportLeads(ctx context.Context, actor *domain.User, filter domain.LeadFilter) (*domain.LeadExport, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeadExport), args.Error(1)
}

type DashboardService struct {
	mock.Mock
}

func (m *DashboardService) GetStats(ctx context.Context, actor *domain.User) (*dashboard.Stats, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Stats), args.Error(1)
}
