package session

import (
	"testing"
	"time"

	"github.com/Josue-Alexander/gestionitp/pkg/roles"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"userId": float64(4),
		"email":  "gestor@itp.edu.mx",
		"nombre": "Luis Pérez",
		"role":   string(roles.Gestor),
		"exp":    exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("cualquier-clave"))
	assert.NoError(t, err)
	return token
}

func TestInitializeWithoutToken(t *testing.T) {
	store := NewStore(NewMemoryStorage())

	assert.True(t, store.Loading())
	store.Initialize()

	assert.False(t, store.Loading())
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.Credential())
}

func TestInitializeRestoresValidToken(t *testing.T) {
	storage := NewMemoryStorage()
	assert.NoError(t, storage.Save(signedToken(t, time.Now().Add(time.Hour))))

	store := NewStore(storage)
	store.Initialize()

	assert.True(t, store.IsAuthenticated())
	credential := store.Credential()
	assert.Equal(t, 4, credential.UserID)
	assert.Equal(t, "gestor@itp.edu.mx", credential.Email)
	assert.Equal(t, roles.Gestor, credential.Role)
}

func TestInitializeDiscardsExpiredToken(t *testing.T) {
	storage := NewMemoryStorage()
	assert.NoError(t, storage.Save(signedToken(t, time.Now().Add(-time.Minute))))

	store := NewStore(storage)
	store.Initialize()

	assert.False(t, store.IsAuthenticated())

	// El token caducado también se elimina del almacenamiento.
	_, err := storage.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestInitializeDiscardsMalformedToken(t *testing.T) {
	storage := NewMemoryStorage()
	assert.NoError(t, storage.Save("esto-no-es-un-jwt"))

	store := NewStore(storage)
	store.Initialize()

	assert.False(t, store.IsAuthenticated())
	_, err := storage.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestInitializeRunsOnce(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage)
	store.Initialize()

	// Un token guardado después del arranque no revive la sesión: la
	// restauración corre una sola vez.
	assert.NoError(t, storage.Save(signedToken(t, time.Now().Add(time.Hour))))
	store.Initialize()

	assert.False(t, store.IsAuthenticated())
}

func TestLoginPersistsAndDecodes(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage)
	store.Initialize()

	token := signedToken(t, time.Now().Add(time.Hour))
	assert.NoError(t, store.Login(token))

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, token, store.Token())

	saved, err := storage.Load()
	assert.NoError(t, err)
	assert.Equal(t, token, saved)
}

func TestLogoutThenReload(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage)
	store.Initialize()
	assert.NoError(t, store.Login(signedToken(t, time.Now().Add(time.Hour))))

	store.Logout()
	assert.False(t, store.IsAuthenticated())

	// Simula recargar la aplicación: un Store nuevo sobre el mismo
	// almacenamiento arranca sin sesión.
	reloaded := NewStore(storage)
	reloaded.Initialize()
	assert.False(t, reloaded.IsAuthenticated())
}
