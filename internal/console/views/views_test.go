package views

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Josue-Alexander/gestionitp/internal/assets"
	"github.com/Josue-Alexander/gestionitp/internal/categories"
	"github.com/Josue-Alexander/gestionitp/internal/console/client"
	"github.com/Josue-Alexander/gestionitp/internal/console/session"
	"github.com/Josue-Alexander/gestionitp/pkg/models"
	"github.com/Josue-Alexander/gestionitp/pkg/roles"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

type recordNotifier struct {
	messages []string
}

func (n *recordNotifier) Notify(message string) {
	n.messages = append(n.messages, message)
}

type recordConfirmer struct {
	confirmed bool
	input     string
	prompts   []string
}

func (c *recordConfirmer) Confirm(prompt string) Confirmation {
	c.prompts = append(c.prompts, prompt)
	return Confirmation{Confirmed: c.confirmed, Input: c.input}
}

func loggedInStore(t *testing.T) *session.Store {
	t.Helper()

	claims := jwt.MapClaims{
		"userId": float64(2),
		"email":  "gestor@itp.edu.mx",
		"role":   string(roles.Gestor),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("clave"))
	assert.NoError(t, err)

	store := session.NewStore(session.NewMemoryStorage())
	store.Initialize()
	assert.NoError(t, store.Login(token))
	return store
}

// fakeAPI monta un router gin con respuestas fijas por ruta, como las que
// devolvería el servicio real.
func fakeAPI(t *testing.T, configure func(r *gin.Engine)) (*client.Client, *session.Store, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	configure(router)
	server := httptest.NewServer(router)

	store := loggedInStore(t)
	return client.New(server.URL, store), store, server.Close
}

func TestAssetsViewLoadFanOut(t *testing.T) {
	api, _, close := fakeAPI(t, func(r *gin.Engine) {
		r.GET("/api/activos", func(c *gin.Context) {
			c.JSON(http.StatusOK, []models.Asset{{ID: 1, Nombre: "Proyector Epson", Estado: models.EstadoBueno}})
		})
		r.GET("/api/categorias", func(c *gin.Context) {
			c.JSON(http.StatusOK, []models.Category{{ID: 1, Nombre: "Electrónica"}})
		})
		r.GET("/api/departamentos", func(c *gin.Context) {
			c.JSON(http.StatusOK, []models.Department{{ID: 1, Nombre: "Sistemas"}})
		})
		r.GET("/api/ubicaciones", func(c *gin.Context) {
			c.JSON(http.StatusOK, []models.Location{{ID: 1, NombreArea: "Laboratorio 2"}})
		})
	})
	defer close()

	view := NewAssetsView(api, &recordNotifier{}, &recordConfirmer{})
	assert.NoError(t, view.Load(context.Background()))

	assert.Len(t, view.Assets, 1)
	assert.Len(t, view.Categories, 1)
	assert.Len(t, view.Departments, 1)
	assert.Len(t, view.Locations, 1)
	assert.Empty(t, view.Err)
}

func TestAssetsViewLoadFailsAsAWhole(t *testing.T) {
	api, _, close := fakeAPI(t, func(r *gin.Engine) {
		r.GET("/api/activos", func(c *gin.Context) {
			c.JSON(http.StatusOK, []models.Asset{{ID: 1, Nombre: "Proyector Epson"}})
		})
		r.GET("/api/categorias", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "falló la consulta"})
		})
		r.GET("/api/departamentos", func(c *gin.Context) {
			c.JSON(http.StatusOK, []models.Department{})
		})
		r.GET("/api/ubicaciones", func(c *gin.Context) {
			c.JSON(http.StatusOK, []models.Location{})
		})
	})
	defer close()

	view := NewAssetsView(api, &recordNotifier{}, &recordConfirmer{})
	err := view.Load(context.Background())

	assert.Error(t, err)
	assert.Equal(t, "falló la consulta", view.Err)
	assert.Empty(t, view.Assets)
}

func TestSessionExpiredTriggersLogout(t *testing.T) {
	api, store, close := fakeAPI(t, func(r *gin.Engine) {
		r.GET("/api/mantenimientos", func(c *gin.Context) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido o expirado"})
		})
	})
	defer close()

	view := NewMaintenanceView(api, &recordNotifier{})
	err := view.Load(context.Background())

	assert.ErrorIs(t, err, client.ErrSessionExpired)
	assert.False(t, store.IsAuthenticated())
}

func TestCreateAssetFailureNotifiesAndKeepsState(t *testing.T) {
	notifier := &recordNotifier{}

	api, _, close := fakeAPI(t, func(r *gin.Engine) {
		r.POST("/api/activos", func(c *gin.Context) {
			c.JSON(http.StatusConflict, gin.H{"error": "Número de inventario duplicado (code: 23505)"})
		})
	})
	defer close()

	view := NewAssetsView(api, notifier, &recordConfirmer{})
	view.Assets = []models.Asset{{ID: 9, Nombre: "Escáner"}}

	_, err := view.Create(context.Background(), assets.AssetRequest{Nombre: "Otro", Estado: models.EstadoBueno, CategoriaID: 1})

	assert.Error(t, err)
	assert.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "duplicado")
	// El estado local no se toca cuando la mutación falla.
	assert.Len(t, view.Assets, 1)
	assert.Equal(t, 9, view.Assets[0].ID)
}

func TestFinalizeAssignmentPatchesInPlace(t *testing.T) {
	listCalls := 0

	api, _, close := fakeAPI(t, func(r *gin.Engine) {
		r.GET("/api/asignaciones", func(c *gin.Context) {
			listCalls++
			c.JSON(http.StatusOK, []models.Assignment{
				{ID: 5, Estado: models.AsignacionActiva},
				{ID: 6, Estado: models.AsignacionActiva},
			})
		})
		r.GET("/api/activos", func(c *gin.Context) { c.JSON(http.StatusOK, []models.Asset{}) })
		r.GET("/api/usuarios", func(c *gin.Context) { c.JSON(http.StatusOK, []models.User{}) })
		r.GET("/api/ubicaciones", func(c *gin.Context) { c.JSON(http.StatusOK, []models.Location{}) })
		r.PUT("/api/asignaciones/5/finalizar", func(c *gin.Context) {
			c.JSON(http.StatusOK, models.Assignment{ID: 5, Estado: models.AsignacionFinalizada})
		})
	})
	defer close()

	view := NewAssignmentsView(api, &recordNotifier{}, &recordConfirmer{confirmed: true})
	assert.NoError(t, view.Load(context.Background()))
	assert.NoError(t, view.Finalize(context.Background(), 5))

	assert.Equal(t, models.AsignacionFinalizada, view.Assignments[0].Estado)
	assert.Equal(t, models.AsignacionActiva, view.Assignments[1].Estado)
	// Parche optimista: no hubo recarga del listado tras finalizar.
	assert.Equal(t, 1, listCalls)
}

func TestFinalizeCancelledDoesNothing(t *testing.T) {
	called := false

	api, _, close := fakeAPI(t, func(r *gin.Engine) {
		r.PUT("/api/asignaciones/5/finalizar", func(c *gin.Context) {
			called = true
			c.JSON(http.StatusOK, models.Assignment{ID: 5, Estado: models.AsignacionFinalizada})
		})
	})
	defer close()

	view := NewAssignmentsView(api, &recordNotifier{}, &recordConfirmer{confirmed: false})
	view.Assignments = []models.Assignment{{ID: 5, Estado: models.AsignacionActiva}}

	assert.NoError(t, view.Finalize(context.Background(), 5))
	assert.False(t, called)
	assert.Equal(t, models.AsignacionActiva, view.Assignments[0].Estado)
}

func TestRejectCategoryRequestSendsJustification(t *testing.T) {
	var received categories.ReviewInput

	api, _, close := fakeAPI(t, func(r *gin.Engine) {
		r.PUT("/api/solicitudes-categoria/3/revisar", func(c *gin.Context) {
			assert.NoError(t, c.ShouldBindJSON(&received))
			c.JSON(http.StatusOK, models.CategoryRequest{ID: 3, Estado: models.SolicitudRechazada})
		})
		r.GET("/api/categorias", func(c *gin.Context) { c.JSON(http.StatusOK, []models.Category{}) })
		r.GET("/api/solicitudes-categoria", func(c *gin.Context) { c.JSON(http.StatusOK, []models.CategoryRequest{}) })
	})
	defer close()

	confirm := &recordConfirmer{confirmed: true, input: "Ya existe una categoría equivalente"}
	view := NewCategoriesView(api, &recordNotifier{}, confirm)

	assert.NoError(t, view.Reject(context.Background(), 3))
	assert.Equal(t, models.DecisionRechazar, received.Decision)
	assert.NotNil(t, received.JustificacionRechazo)
	assert.Equal(t, "Ya existe una categoría equivalente", *received.JustificacionRechazo)
}
