// Package identity describes the authenticated caller shared by every bounded context.
package identity

import (
	"context"
	"strings"
)

// Role is the coarse permission level attached to a user account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
)

// ParseRole accepts USER or OWNER in any case.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleUser:
		return RoleUser, true
	case RoleOwner:
		return RoleOwner, true
	default:
		return "", false
	}
}

// Principal is the caller resolved from an access token.
type Principal struct {
	ID   int64
	Role Role
}

// IsOwner reports whether the principal holds the shop-owner role.
func (p Principal) IsOwner() bool { return p.Role == RoleOwner }

// Owned is implemented by resources that belong to exactly one user.
type Owned interface {
	OwnerID() int64
}

// IsOwnerOf is the single ownership predicate used by shops, menus, orders and reviews.
func IsOwnerOf(resource Owned, actorID int64) bool {
	if resource == nil || actorID <= 0 {
		return false
	}
	return resource.OwnerID() == actorID
}

type principalKey struct{}

// WithPrincipal stores the caller in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the caller stored by WithPrincipal.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
