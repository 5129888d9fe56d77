// Package policy decides whether a user may see or change a lead-scoped or
// notification-scoped resource. Every service that loads such a resource
// asks the same Policy, so admin-versus-owner rules cannot drift between
// endpoints.
package policy

import (
	"leadtrack-crm/internal/domain"
)

type Policy interface {
	CanAccessLead(actor *domain.User, lead *domain.Lead) bool
	CanAccessNotification(actor *domain.User, notif *domain.Notification) bool
	CanReassignLead(actor *domain.User) bool
	CanDeleteLead(actor *domain.User) bool
	CanManageUsers(actor *domain.User) bool
	CanEditUser(actor *domain.User, targetID int64) bool
	CanManageSettings(actor *domain.User) bool
}

type rolePolicy struct{}

// New returns the role based policy: admins may do anything, team members
// only what they own.
func New() Policy {
	return rolePolicy{}
}

func (rolePolicy) CanAccessLead(actor *domain.User, lead *domain.Lead) bool {
	if actor == nil || lead == nil {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	return lead.IsOwnedBy(actor.ID)
}

func (rolePolicy) CanAccessNotification(actor *domain.User, notif *domain.Notification) bool {
	if actor == nil || notif == nil {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	return notif.UserID == actor.ID
}

func (rolePolicy) CanReassignLead(actor *domain.User) bool {
	return isAdmin(actor)
}

func (rolePolicy) CanDeleteLead(actor *domain.User) bool {
	return isAdmin(actor)
}

func (rolePolicy) CanManageUsers(actor *domain.User) bool {
	return isAdmin(actor)
}

func (rolePolicy) CanEditUser(actor *domain.User, targetID int64) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.ID == targetID
}

func (rolePolicy) CanManageSettings(actor *domain.User) bool {
	return isAdmin(actor)
}

func isAdmin(actor *domain.User) bool {
	return actor != nil && actor.IsAdmin()
}

// AuthorizeLead returns domain.ErrForbidden when actor may not touch lead.
// Callers resolve the lead first so a missing id surfaces as not found.
func AuthorizeLead(p Policy, actor *domain.User, lead *domain.Lead) error {
	if !p.CanAccessLead(actor, lead) {
		return domain.ErrForbidden
	}
	return nil
}

func AuthorizeNotification(p Policy, actor *domain.User, notif *domain.Notification) error {
	if !p.CanAccessNotification(actor, notif) {
		return domain.ErrForbidden
	}
	return nil
}

// ScopeLeadFilter narrows a lead listing to what actor may see. Team members
// are pinned to their own leads whatever assigned_to they asked for.
func ScopeLeadFilter(actor *domain.User, filter domain.LeadFilter) domain.LeadFilter {
	if actor == nil || actor.IsAdmin() {
		return filter
	}
	id := actor.ID
	filter.AssignedTo = &id
	return filter
}
