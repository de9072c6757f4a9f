package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	for _, r := range All {
		assert.True(t, r.IsValid(), string(r))
	}
	assert.False(t, Role("SuperAdmin").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		allowed []Role
		want    bool
	}{
		{"role in list", Gestor, Staff(), true},
		{"role not in list", UsuarioGeneral, Staff(), false},
		{"empty list denies everyone", AdminGeneral, []Role{}, false},
		{"nil list denies everyone", AdminGeneral, nil, false},
		{"admin depto is admin", AdminDepto, Admins(), true},
		{"gestor is not admin", Gestor, Admins(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.allowed))
		})
	}
}

func TestStaffExcludesGeneralUser(t *testing.T) {
	assert.NotContains(t, Staff(), UsuarioGeneral)
	assert.Len(t, Staff(), 3)
	assert.Len(t, Admins(), 2)
}
