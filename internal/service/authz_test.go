package service

import (
	"testing"

	"github.com/RespawnSociety/MesinKasir/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireRole(t *testing.T) {
	admin := &Principal{UserID: 1, Role: model.RoleAdmin}
	kasir := &Principal{UserID: 2, Role: model.RoleKasir}
	rogue := &Principal{UserID: 3, Role: model.Role("owner")}

	require.ErrorIs(t, RequireAdmin(nil), ErrUnauthenticated)
	require.NoError(t, RequireAdmin(admin))
	require.ErrorIs(t, RequireAdmin(kasir), ErrForbidden)
	require.NoError(t, RequireStaff(kasir))
	require.NoError(t, RequireStaff(admin))
	require.ErrorIs(t, RequireStaff(rogue), ErrForbidden)

	err := RequireRole(kasir, model.RoleAdmin)
	assert.Contains(t, err.Error(), "admin")
}
