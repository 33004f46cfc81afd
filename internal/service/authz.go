package service

import (
	"fmt"

	"github.com/RespawnSociety/MesinKasir/internal/model"

	"github.com/google/uuid"
)

// Principal is the authenticated caller, passed explicitly into every
// operation instead of being looked up from ambient state.
type Principal struct {
	UserID  uint
	Email   string
	Role    model.Role
	TokenID uuid.UUID
}

// RequireRole fails with ErrUnauthenticated when p is nil and with
// ErrForbidden when p's role is not in allowed.
func RequireRole(p *Principal, allowed ...model.Role) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if !p.Role.Valid() {
		return fmt.Errorf("%w: unknown role", ErrForbidden)
	}
	for _, r := range allowed {
		if r == p.Role {
			return nil
		}
	}
	return fmt.Errorf("%w: requires role %s", ErrForbidden, rolesLabel(allowed))
}

// RequireAdmin is RequireRole(p, admin).
func RequireAdmin(p *Principal) error {
	return RequireRole(p, model.RoleAdmin)
}

// RequireStaff admits both roles that operate the POS screen.
func RequireStaff(p *Principal) error {
	return RequireRole(p, model.RoleAdmin, model.RoleKasir)
}

func rolesLabel(roles []model.Role) string {
	label := ""
	for i, r := range roles {
		if i > 0 {
			label += "|"
		}
		label += string(r)
	}
	return label
}
