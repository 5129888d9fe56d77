package settings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/mocks"
	"leadtrack-crm/internal/policy"
	"leadtrack-crm/internal/service/email"
	"leadtrack-crm/internal/service/settings"
)

var (
	admin    = &domain.User{ID: 1, Role: domain.RoleAdmin, IsActive: true}
	member   = &domain.User{ID: 7, Role: domain.RoleTeamMember, IsActive: true}
	fallback = email.Identity{Address: "noreply@acme.io", Name: "Acme"}
)

func setting(key, value string) *domain.Setting {
	return &domain.Setting{Key: key, Value: &value}
}

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Pushes New Identity", func(t *testing.T) {
		repo := new(mocks.SettingsRepository)
		sink := new(mocks.EmailService)
		svc := settings.NewService(repo, sink, fallback, policy.New(), zaptest.NewLogger(t))

		values := map[string]string{domain.SettingGlobalEmail: " sales@acme.io "}
		repo.On("Upsert", ctx, map[string]string{domain.SettingGlobalEmail: "sales@acme.io"}).
			Return([]domain.Setting{*setting(domain.SettingGlobalEmail, "sales@acme.io")}, nil).Once()
		repo.On("GetByKey", ctx, domain.SettingGlobalEmail).Return(setting(domain.SettingGlobalEmail, "sales@acme.io"), nil).Once()
		repo.On("GetByKey", ctx, domain.SettingGlobalEmailName).Return(nil, nil).Once()
		sink.On("SetIdentity", email.Identity{Address: "sales@acme.io", Name: "Acme"}).Once()

		out, err := svc.Update(ctx, admin, values)

		require.NoError(t, err)
		assert.Len(t, out, 1)
		repo.AssertExpectations(t)
		sink.AssertExpectations(t)
	})

	t.Run("Unrelated Key Leaves Identity", func(t *testing.T) {
		repo := new(mocks.SettingsRepository)
		sink := new(mocks.EmailService)
		svc := settings.NewService(repo, sink, fallback, policy.New(), nil)

		repo.On("Upsert", ctx, mock.Anything).Return([]domain.Setting{}, nil).Once()

		_, err := svc.Update(ctx, admin, map[string]string{"theme": "dark"})

		require.NoError(t, err)
		sink.AssertNotCalled(t, "SetIdentity", mock.Anything)
	})

	t.Run("Invalid Address", func(t *testing.T) {
		repo := new(mocks.SettingsRepository)
		svc := settings.NewService(repo, nil, fallback, policy.New(), nil)

		_, err := svc.Update(ctx, admin, map[string]string{domain.SettingGlobalEmail: "not-an-email"})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "global_email", verr.Fields[0].Field)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Team Member Forbidden", func(t *testing.T) {
		svc := settings.NewService(new(mocks.SettingsRepository), nil, fallback, policy.New(), nil)

		_, err := svc.Update(ctx, member, map[string]string{"theme": "dark"})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Empty Payload", func(t *testing.T) {
		svc := settings.NewService(new(mocks.SettingsRepository), nil, fallback, policy.New(), nil)

		_, err := svc.Update(ctx, admin, map[string]string{})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestSettingsService_Get(t *testing.T) {
	repo := new(mocks.SettingsRepository)
	svc := settings.NewService(repo, nil, fallback, policy.New(), nil)
	ctx := context.Background()

	repo.On("GetByKey", ctx, "missing").Return(nil, nil).Once()
	repo.On("GetByKey", ctx, "theme").Return(setting("theme", "dark"), nil).Once()

	_, err := svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s, err := svc.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", s.StringValue())
}

func TestSettingsService_Initialize(t *testing.T) {
	repo := new(mocks.SettingsRepository)
	sink := new(mocks.EmailService)
	svc := settings.NewService(repo, sink, fallback, policy.New(), nil)
	ctx := context.Background()

	repo.On("InsertDefaults", ctx, domain.DefaultSettings()).Return(2, nil).Once()
	repo.On("GetByKey", ctx, domain.SettingGlobalEmail).Return(setting(domain.SettingGlobalEmail, ""), nil).Once()
	repo.On("GetByKey", ctx, domain.SettingGlobalEmailName).Return(setting(domain.SettingGlobalEmailName, "CRM System"), nil).Once()
	sink.On("SetIdentity", email.Identity{Address: "noreply@acme.io", Name: "CRM System"}).Once()
	repo.On("List", ctx).Return([]domain.Setting{
		*setting(domain.SettingGlobalEmail, ""),
		*setting(domain.SettingGlobalEmailName, "CRM System"),
	}, nil).Once()

	out, err := svc.Initialize(ctx, admin)

	require.NoError(t, err)
	assert.Len(t, out, 2)
	repo.AssertExpectations(t)
	sink.AssertExpectations(t)

	_, err = svc.Initialize(ctx, member)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSettingsService_LoadIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("Falls Back Per Field", func(t *testing.T) {
		repo := new(mocks.SettingsRepository)
		svc := settings.NewService(repo, nil, fallback, policy.New(), nil)
		repo.On("GetByKey", ctx, domain.SettingGlobalEmail).Return(nil, nil).Once()
		repo.On("GetByKey", ctx, domain.SettingGlobalEmailName).Return(setting(domain.SettingGlobalEmailName, "Sales"), nil).Once()

		identity, err := svc.LoadIdentity(ctx)

		require.NoError(t, err)
		assert.Equal(t, email.Identity{Address: "noreply@acme.io", Name: "Sales"}, identity)
	})

	t.Run("Repo Error", func(t *testing.T) {
		repo := new(mocks.SettingsRepository)
		svc := settings.NewService(repo, nil, fallback, policy.New(), nil)
		repo.On("GetByKey", ctx, domain.SettingGlobalEmail).Return(nil, errors.New("db error")).Once()

		identity, err := svc.LoadIdentity(ctx)

		assert.EqualError(t, err, "db error")
		assert.Equal(t, fallback, identity)
	})
}

func TestSettingsService_List(t *testing.T) {
	svc := settings.NewService(new(mocks.SettingsRepository), nil, fallback, policy.New(), nil)

	_, err := svc.List(context.Background(), member)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}
