package domain

import (
	"time"
)

type User struct {
	ID           int64      `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	Role         UserRole   `json:"role" db:"role"`
	CalendlyLink *string    `json:"calendly_link" db:"calendly_link"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	LastLogin    *time.Time `json:"last_login" db:"last_login"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type CreateUserInput struct {
	Email        string   `json:"email" validate:"required,email"`
	Password     string   `json:"password" validate:"required,min=8"`
	FirstName    string   `json:"first_name" validate:"required,max=50"`
	LastName     string   `json:"last_name" validate:"required,max=50"`
	Role         UserRole `json:"role" validate:"required,oneof=admin team_member"`
	CalendlyLink *string  `json:"calendly_link" validate:"omitempty,url,max=255"`
}

type UpdateUserInput struct {
	FirstName    *string   `json:"first_name" validate:"omitempty,min=1,max=50"`
	LastName     *string   `json:"last_name" validate:"omitempty,min=1,max=50"`
	Password     *string   `json:"password" validate:"omitempty,min=8"`
	CalendlyLink *string   `json:"calendly_link" validate:"omitempty,url,max=255"`
	Role         *UserRole `json:"role" validate:"omitempty,oneof=admin team_member"`
	IsActive     *bool     `json:"is_active"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleTeamMember UserRole = "team_member"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTeamMember:
		return true
	default:
		return false
	}
}
