package domain

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// RegisterUser records principal with a fixed role.
func (r *Registry) RegisterUser(ctx context.Context, principal string, role Role) (err error) {
	ctx, end := r.begin(ctx, "RegisterUser", attribute.String("registry.role", role.String()))
	defer end(&err)

	if strings.TrimSpace(principal) == "" {
		return errPrincipalRequired()
	}
	if !role.Valid() {
		return errRoleInvalid()
	}
	if _, exists := r.state.users[principal]; exists {
		return errUserAlreadyRegistered()
	}
	return r.commit(ctx, EventUserRegistered, userRegistered{Principal: principal, Role: role})
}

// EnsureAdmin registers principal as an admin unless it is already
// registered. It reports whether a registration happened and the role the
// principal ends up with.
func (r *Registry) EnsureAdmin(ctx context.Context, principal string) (created bool, role Role, err error) {
	ctx, end := r.begin(ctx, "EnsureAdmin")
	defer end(&err)

	if strings.TrimSpace(principal) == "" {
		return false, 0, errPrincipalRequired()
	}
	if u, exists := r.state.users[principal]; exists {
		return false, u.Role, nil
	}
	if err := r.commit(ctx, EventUserRegistered, userRegistered{Principal: principal, Role: RoleAdmin}); err != nil {
		return false, 0, err
	}
	return true, RoleAdmin, nil
}

// GetUser returns the user registered for principal.
func (r *Registry) GetUser(ctx context.Context, principal string) (u User, err error) {
	_, end := r.begin(ctx, "GetUser")
	defer end(&err)

	u, ok := r.state.users[principal]
	if !ok {
		return User{}, errUserNotRegistered()
	}
	return u, nil
}

// IsRegistered reports whether principal has a user record.
func (r *Registry) IsRegistered(ctx context.Context, principal string) bool {
	_, end := r.begin(ctx, "IsRegistered")
	defer end(nil)

	_, ok := r.state.users[principal]
	return ok
}
