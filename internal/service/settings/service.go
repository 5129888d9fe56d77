package settings

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/pkg/logger"
	"leadtrack-crm/internal/pkg/validator"
	"leadtrack-crm/internal/policy"
	"leadtrack-crm/internal/repository"
	"leadtrack-crm/internal/service/email"
)

type Service interface {
	List(ctx context.Context, actor *domain.User) ([]domain.Setting, error)
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Update(ctx context.Context, actor *domain.User, values map[string]string) ([]domain.Setting, error)
	Initialize(ctx context.Context, actor *domain.User) ([]domain.Setting, error)
	LoadIdentity(ctx context.Context) (email.Identity, error)
}

// IdentitySink receives the sender identity whenever the global_email
// settings change.
type IdentitySink interface {
	SetIdentity(identity email.Identity)
}

type service struct {
	repo     repository.SettingsRepository
	sink     IdentitySink
	fallback email.Identity
	policy   policy.Policy
	log      *zap.Logger
}

// NewService wires the settings store. fallback is the identity used for any
// global_email key that is missing or blank, normally FROM_EMAIL/FROM_NAME.
func NewService(repo repository.SettingsRepository, sink IdentitySink, fallback email.Identity, p policy.Policy, log *zap.Logger) Service {
	return &service{
		repo:     repo,
		sink:     sink,
		fallback: fallback,
		policy:   p,
		log:      logger.OrNop(log).Named("settings"),
	}
}

func (s *service) List(ctx context.Context, actor *domain.User) ([]domain.Setting, error) {
	if !s.policy.CanManageSettings(actor) {
		return nil, domain.ErrForbidden
	}
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = []domain.Setting{}
	}
	return settings, nil
}

func (s *service) Get(ctx context.Context, key string) (*domain.Setting, error) {
	setting, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, domain.NotFoundf("setting %q", key)
	}
	return setting, nil
}

type globalEmailInput struct {
	Address string `json:"global_email" validate:"omitempty,email"`
	Name    string `json:"global_email_name" validate:"max=100"`
}

func (s *service) Update(ctx context.Context, actor *domain.User, values map[string]string) ([]domain.Setting, error) {
	if !s.policy.CanManageSettings(actor) {
		return nil, domain.ErrForbidden
	}
	if len(values) == 0 {
		return nil, domain.NewValidationError("settings", "at least one key is required")
	}
	for key := range values {
		if strings.TrimSpace(key) == "" || len(key) > 100 {
			return nil, domain.NewValidationError("key", "must be between 1 and 100 characters")
		}
	}

	address, hasAddress := values[domain.SettingGlobalEmail]
	name, hasName := values[domain.SettingGlobalEmailName]
	if hasAddress {
		address = strings.TrimSpace(address)
		values[domain.SettingGlobalEmail] = address
	}
	if err := validator.Struct(globalEmailInput{Address: address, Name: name}); err != nil {
		return nil, err
	}

	settings, err := s.repo.Upsert(ctx, values)
	if err != nil {
		return nil, err
	}

	if hasAddress || hasName {
		s.pushIdentity(ctx)
	}
	return settings, nil
}

func (s *service) Initialize(ctx context.Context, actor *domain.User) ([]domain.Setting, error) {
	if !s.policy.CanManageSettings(actor) {
		return nil, domain.ErrForbidden
	}

	inserted, err := s.repo.InsertDefaults(ctx, domain.DefaultSettings())
	if err != nil {
		return nil, err
	}
	s.log.Info("default settings initialized", zap.Int("inserted", inserted))

	if inserted > 0 {
		s.pushIdentity(ctx)
	}
	return s.repo.List(ctx)
}

// LoadIdentity resolves the sender identity from the settings table, falling
// back per field to the configured defaults.
func (s *service) LoadIdentity(ctx context.Context) (email.Identity, error) {
	identity := s.fallback

	address, err := s.repo.GetByKey(ctx, domain.SettingGlobalEmail)
	if err != nil {
		return identity, err
	}
	if v := address.StringValue(); v != "" {
		identity.Address = v
	}

	name, err := s.repo.GetByKey(ctx, domain.SettingGlobalEmailName)
	if err != nil {
		return identity, err
	}
	if v := name.StringValue(); v != "" {
		identity.Name = v
	}

	return identity, nil
}

func (s *service) pushIdentity(ctx context.Context) {
	if s.sink == nil {
		return
	}
	identity, err := s.LoadIdentity(ctx)
	if err != nil {
		s.log.Error("sender identity not reloaded", zap.Error(err))
		return
	}
	s.sink.SetIdentity(identity)
}
