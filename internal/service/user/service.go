package user

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/pkg/logger"
	"leadtrack-crm/internal/pkg/validator"
	"leadtrack-crm/internal/policy"
	"leadtrack-crm/internal/repository"
)

type Service interface {
	Register(ctx context.Context, actor *domain.User, input domain.CreateUserInput) (*domain.User, error)
	CreateAdmin(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)
	List(ctx context.Context, actor *domain.User, params domain.PaginationParams) (domain.Page[domain.User], error)
	Update(ctx context.Context, actor *domain.User, id int64, input domain.UpdateUserInput) (*domain.User, error)
}

type service struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	policy      policy.Policy
	log         *zap.Logger
}

func NewService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, p policy.Policy, log *zap.Logger) Service {
	return &service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		policy:      p,
		log:         logger.OrNop(log).Named("user"),
	}
}

func (s *service) Register(ctx context.Context, actor *domain.User, input domain.CreateUserInput) (*domain.User, error) {
	if !s.policy.CanManageUsers(actor) {
		return nil, domain.ErrForbidden
	}
	return s.create(ctx, input)
}

// CreateAdmin bootstraps the first administrator. It bypasses the policy and
// is only reachable from the migrate command.
func (s *service) CreateAdmin(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	input.Role = domain.RoleAdmin
	return s.create(ctx, input)
}

func (s *service) create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		CalendlyLink: input.CalendlyLink,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

func (s *service) List(ctx context.Context, actor *domain.User, params domain.PaginationParams) (domain.Page[domain.User], error) {
	if !s.policy.CanManageUsers(actor) {
		return domain.Page[domain.User]{}, domain.ErrForbidden
	}

	params.Normalize()
	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}
	return domain.NewPage(users, params, total), nil
}

func (s *service) Update(ctx context.Context, actor *domain.User, id int64, input domain.UpdateUserInput) (*domain.User, error) {
	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.NotFoundf("user %d", id)
	}
	if !s.policy.CanEditUser(actor, id) {
		return nil, domain.ErrForbidden
	}
	if (input.Role != nil || input.IsActive != nil) && !s.policy.CanManageUsers(actor) {
		return nil, domain.ErrForbidden
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}
	if input.IsActive != nil && !*input.IsActive && actor.ID == id {
		return nil, domain.NewValidationError("is_active", "cannot deactivate your own account")
	}

	if input.FirstName != nil {
		target.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		target.LastName = *input.LastName
	}
	if input.CalendlyLink != nil {
		target.CalendlyLink = input.CalendlyLink
	}
	if input.Role != nil {
		target.Role = *input.Role
	}
	deactivated := false
	if input.IsActive != nil {
		deactivated = target.IsActive && !*input.IsActive
		target.IsActive = *input.IsActive
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		target.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	if deactivated {
		if err := s.sessionRepo.RevokeAllForUser(ctx, id); err != nil {
			s.log.Warn("sessions not revoked", zap.Int64("user_id", id), zap.Error(err))
		}
	}
	return target, nil
}
