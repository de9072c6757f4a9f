package gate

import (
	"testing"
	"time"

	"github.com/Josue-Alexander/gestionitp/internal/console/session"
	"github.com/Josue-Alexander/gestionitp/pkg/roles"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func storeWithRole(t *testing.T, role roles.Role) *session.Store {
	t.Helper()

	claims := jwt.MapClaims{
		"userId": float64(1),
		"email":  "persona@itp.edu.mx",
		"role":   string(role),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("clave"))
	assert.NoError(t, err)

	storage := session.NewMemoryStorage()
	assert.NoError(t, storage.Save(token))

	store := session.NewStore(storage)
	store.Initialize()
	return store
}

func emptyStore() *session.Store {
	store := session.NewStore(session.NewMemoryStorage())
	store.Initialize()
	return store
}

func TestLoadingRendersPlaceholder(t *testing.T) {
	// Sin Initialize la sesión sigue restaurándose: nada de redirigir aún.
	store := session.NewStore(session.NewMemoryStorage())

	assert.Equal(t, Placeholder, Evaluate(store, roles.All))
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	assert.Equal(t, RedirectLogin, Evaluate(emptyStore(), roles.All))
}

func TestEmptyAllowlistNeverRenders(t *testing.T) {
	for _, role := range roles.All {
		store := storeWithRole(t, role)
		assert.Equal(t, RedirectDashboard, Evaluate(store, nil), string(role))
	}
}

func TestGeneralUserRedirectedFromStaffRoute(t *testing.T) {
	store := storeWithRole(t, roles.UsuarioGeneral)

	decision := Evaluate(store, []roles.Role{roles.AdminGeneral, roles.AdminDepto, roles.Gestor})
	assert.Equal(t, RedirectDashboard, decision)
}

func TestAllowedRoleRenders(t *testing.T) {
	store := storeWithRole(t, roles.Gestor)

	assert.Equal(t, Render, Evaluate(store, roles.Staff()))
}

func TestRouteTable(t *testing.T) {
	gestor := storeWithRole(t, roles.Gestor)
	general := storeWithRole(t, roles.UsuarioGeneral)

	assert.Equal(t, Render, EvaluatePath(gestor, "/activos"))
	assert.Equal(t, RedirectDashboard, EvaluatePath(general, "/activos"))
	assert.Equal(t, Render, EvaluatePath(general, DashboardPath))
	assert.Equal(t, Render, EvaluatePath(general, "/mis-asignaciones"))
	assert.Equal(t, RedirectDashboard, EvaluatePath(gestor, "/usuarios"))
	assert.Equal(t, RedirectDashboard, EvaluatePath(gestor, "/bitacora"))

	// Ruta fuera de la tabla: lista vacía, nunca renderiza.
	assert.Equal(t, RedirectDashboard, EvaluatePath(gestor, "/no-existe"))
}
