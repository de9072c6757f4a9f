package console

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/Josue-Alexander/gestionitp/internal/assets"
	"github.com/Josue-Alexander/gestionitp/internal/assignments"
	"github.com/Josue-Alexander/gestionitp/internal/categories"
	"github.com/Josue-Alexander/gestionitp/internal/console/client"
	"github.com/Josue-Alexander/gestionitp/internal/console/gate"
	"github.com/Josue-Alexander/gestionitp/internal/console/session"
	"github.com/Josue-Alexander/gestionitp/internal/console/views"
	"github.com/Josue-Alexander/gestionitp/internal/departments"
	"github.com/Josue-Alexander/gestionitp/internal/locations"
	"github.com/Josue-Alexander/gestionitp/internal/users"
	"github.com/Josue-Alexander/gestionitp/pkg/auditlog"
	"github.com/Josue-Alexander/gestionitp/pkg/models"
	"github.com/Josue-Alexander/gestionitp/pkg/roles"
	"github.com/Josue-Alexander/gestionitp/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "clave-de-pruebas")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// Fakes en memoria detrás de los handlers reales. El recorrido completo pasa
// por el motor gin, el middleware JWT y los DTO de cada módulo.

type noopRecorder struct{}

func (noopRecorder) PersistEvent(models.AuditEvent, map[string]interface{}) error { return nil }

type memUsers struct {
	rows []models.User
}

func (m *memUsers) GetUserByEmail(email string) (*models.User, error) {
	for i := range m.rows {
		if m.rows[i].Email == email {
			u := m.rows[i]
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUsers) PersistUser(req models.CreateUserRequest, hashedPassword []byte) (*models.User, error) {
	u := models.User{
		ID:             len(m.rows) + 1,
		Nombre:         req.Nombre,
		Email:          req.Email,
		PasswordHash:   string(hashedPassword),
		Rol:            req.Rol,
		DepartamentoID: req.DepartamentoID,
	}
	m.rows = append(m.rows, u)
	return &u, nil
}

func (m *memUsers) GetUser(id int) (*models.User, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			u := m.rows[i]
			return &u, nil
		}
	}
	return nil, users.ErrUserNotFound
}

func (m *memUsers) GetUsers() ([]models.User, error) {
	out := append([]models.User(nil), m.rows...)
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (m *memUsers) UpdateUser(id int, changes *models.UserChanges) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			if changes.Nombre != nil {
				m.rows[i].Nombre = *changes.Nombre
			}
			if changes.Rol != nil {
				m.rows[i].Rol = *changes.Rol
			}
			return nil
		}
	}
	return users.ErrUserNotFound
}

func (m *memUsers) DeleteUser(id int) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return users.ErrUserNotFound
}

type memAssets struct {
	rows   []models.Asset
	nextID int
}

func (m *memAssets) ListAssets(includeRetired bool) ([]models.Asset, error) {
	out := make([]models.Asset, 0, len(m.rows))
	for _, a := range m.rows {
		if !includeRetired && a.Estado == models.EstadoDeBaja {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memAssets) GetAsset(id int) (*models.Asset, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			a := m.rows[i]
			return &a, nil
		}
	}
	return nil, assets.ErrAssetNotFound
}

func (m *memAssets) GetAssetByQR(qrID string) (*models.Asset, error) {
	for i := range m.rows {
		if m.rows[i].QRID == qrID {
			a := m.rows[i]
			return &a, nil
		}
	}
	return nil, assets.ErrAssetNotFound
}

func (m *memAssets) PersistAsset(req assets.AssetRequest, qrID string) (*models.Asset, error) {
	m.nextID++
	a := models.Asset{
		ID:            m.nextID,
		Nombre:        req.Nombre,
		NumInventario: req.NumInventario,
		Estado:        req.Estado,
		QRID:          qrID,
		CategoriaID:   req.CategoriaID,
		FechaRegistro: time.Now(),
	}
	m.rows = append(m.rows, a)
	return &a, nil
}

func (m *memAssets) UpdateAsset(id int, req assets.AssetRequest) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Nombre = req.Nombre
			m.rows[i].Estado = req.Estado
			return nil
		}
	}
	return assets.ErrAssetNotFound
}

func (m *memAssets) UpdateAssetStatus(id int, estado string) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Estado = estado
			return nil
		}
	}
	return assets.ErrAssetNotFound
}

type memCategories struct {
	rows []models.Category
}

func (m *memCategories) ListCategories() ([]models.Category, error) {
	return append([]models.Category(nil), m.rows...), nil
}

func (m *memCategories) PersistCategory(input categories.CategoryInput) (*models.Category, error) {
	c := models.Category{ID: len(m.rows) + 1, Nombre: input.Nombre, Descripcion: input.Descripcion}
	m.rows = append(m.rows, c)
	return &c, nil
}

func (m *memCategories) UpdateCategory(id int, input categories.CategoryInput) error { return nil }
func (m *memCategories) DeleteCategory(id int) error                                 { return nil }
func (m *memCategories) HasRelatedAssets(id int) (bool, error)                       { return false, nil }
func (m *memCategories) ListRequests() ([]models.CategoryRequest, error)             { return nil, nil }

func (m *memCategories) PersistRequest(input categories.RequestInput, solicitanteID int) (*models.CategoryRequest, error) {
	return &models.CategoryRequest{ID: 1, NombreSugerido: input.NombreSugerido, Estado: models.SolicitudPendiente}, nil
}

func (m *memCategories) ReviewRequest(id int, input categories.ReviewInput) (*models.CategoryRequest, error) {
	return nil, categories.ErrRequestNotFound
}

type memDepartments struct {
	rows []models.Department
}

func (m *memDepartments) ListDepartments() ([]models.Department, error) {
	return append([]models.Department(nil), m.rows...), nil
}

func (m *memDepartments) PersistDepartment(input departments.DepartmentInput) (*models.Department, error) {
	d := models.Department{ID: len(m.rows) + 1, Nombre: input.Nombre}
	m.rows = append(m.rows, d)
	return &d, nil
}

func (m *memDepartments) UpdateDepartment(id int, input departments.DepartmentInput) error {
	return nil
}
func (m *memDepartments) DeleteDepartment(id int) error { return nil }

type memLocations struct {
	rows []models.Location
}

func (m *memLocations) ListLocations(departamentoID *int) ([]models.Location, error) {
	out := make([]models.Location, 0, len(m.rows))
	for _, l := range m.rows {
		if departamentoID != nil && (l.DepartamentoID == nil || *l.DepartamentoID != *departamentoID) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (m *memLocations) PersistLocation(input locations.LocationInput) (*models.Location, error) {
	l := models.Location{ID: len(m.rows) + 1, NombreArea: input.NombreArea, DepartamentoID: input.DepartamentoID}
	m.rows = append(m.rows, l)
	return &l, nil
}

func (m *memLocations) UpdateLocation(id int, input locations.LocationInput) error { return nil }
func (m *memLocations) DeleteLocation(id int) error                                { return nil }

type memAssignments struct {
	rows []models.Assignment
}

func (m *memAssignments) Create(req assignments.AssignmentRequest) (*models.Assignment, error) {
	for _, a := range m.rows {
		if a.Activo.ID == req.AssetID && a.Estado == models.AsignacionActiva {
			return nil, assignments.ErrAssetAlreadyAssigned
		}
	}
	a := models.Assignment{
		ID:              len(m.rows) + 1,
		FechaAsignacion: time.Now(),
		Estado:          models.AsignacionActiva,
		Activo:          models.AssetRef{ID: req.AssetID},
		Usuario:         models.UserRef{ID: req.UserID},
		Movimientos:     []models.Movement{},
	}
	m.rows = append(m.rows, a)
	return &a, nil
}

func (m *memAssignments) Finalize(id int) (*models.Assignment, error) {
	for i := range m.rows {
		if m.rows[i].ID == id && m.rows[i].Estado == models.AsignacionActiva {
			m.rows[i].Estado = models.AsignacionFinalizada
			now := time.Now()
			m.rows[i].FechaFinReal = &now
			a := m.rows[i]
			return &a, nil
		}
	}
	return nil, assignments.ErrAssignmentNotFound
}

func (m *memAssignments) List() ([]models.Assignment, error) {
	return append([]models.Assignment(nil), m.rows...), nil
}

func (m *memAssignments) ListForUser(userID int) ([]models.Assignment, error) {
	out := make([]models.Assignment, 0, len(m.rows))
	for _, a := range m.rows {
		if a.Usuario.ID == userID && a.Estado == models.AsignacionActiva {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAssignments) RegisterMovement(id int, req assignments.MovementRequest) error {
	for i := range m.rows {
		if m.rows[i].ID == id && m.rows[i].Estado == models.AsignacionActiva {
			return nil
		}
	}
	return assignments.ErrAssignmentNotFound
}

func (m *memAssignments) History(id int) ([]models.Movement, error) {
	return []models.Movement{}, nil
}

type fixtures struct {
	users       *memUsers
	assets      *memAssets
	assignments *memAssignments
}

// startService levanta el servicio completo sobre fakes en memoria y siembra
// un administrador y un gestor con contraseñas conocidas.
func startService(t *testing.T) (*httptest.Server, *fixtures) {
	t.Helper()

	audit := auditlog.NewAuditLog(noopRecorder{})

	f := &fixtures{
		users:       &memUsers{},
		assets:      &memAssets{},
		assignments: &memAssignments{},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("secreto1"), bcrypt.MinCost)
	assert.NoError(t, err)
	f.users.rows = []models.User{
		{ID: 1, Nombre: "Admin ITP", Email: "admin@itp.edu.mx", PasswordHash: string(hash), Rol: roles.AdminGeneral},
		{ID: 2, Nombre: "Gestor ITP", Email: "gestor@itp.edu.mx", PasswordHash: string(hash), Rol: roles.Gestor},
	}

	f.assets.rows = []models.Asset{
		{ID: 1, Nombre: "Proyector Epson", Estado: models.EstadoBueno, QRID: "qr-1", CategoriaID: 1},
	}
	f.assets.nextID = 1

	f.assignments.rows = []models.Assignment{
		{ID: 1, Estado: models.AsignacionActiva, Activo: models.AssetRef{ID: 1}, Usuario: models.UserRef{ID: 2}, Movimientos: []models.Movement{}},
	}

	router := gin.New()
	security.NewLoginHandler(f.users, audit).RegisterRoutes(router)

	api := router.Group("/api")
	api.Use(security.JWTMiddleware())
	assets.NewHandler(f.assets, audit).RegisterRoutes(api)
	assignments.NewHandler(f.assignments, audit).RegisterRoutes(api)
	categories.NewCategoryHandler(&memCategories{rows: []models.Category{{ID: 1, Nombre: "Equipo de cómputo"}}}, audit).RegisterRoutes(api)
	departments.NewDepartmentHandler(&memDepartments{rows: []models.Department{{ID: 1, Nombre: "Sistemas"}}}, audit).RegisterRoutes(api)
	locations.NewLocationHandler(&memLocations{rows: []models.Location{{ID: 1, NombreArea: "Laboratorio A"}}}, audit).RegisterRoutes(api)
	users.NewHandler(f.users, audit).RegisterRoutes(api)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, f
}

func newConsole(t *testing.T, baseURL string) (*session.Store, *client.Client) {
	t.Helper()
	store := session.NewStore(session.NewMemoryStorage())
	store.Initialize()
	return store, client.New(baseURL, store)
}

type silentNotifier struct{}

func (silentNotifier) Notify(string) {}

type yesConfirmer struct{}

func (yesConfirmer) Confirm(string) views.Confirmation { return views.Confirmation{Confirmed: true} }

func TestLoginFlow(t *testing.T) {
	server, _ := startService(t)
	store, api := newConsole(t, server.URL)

	t.Run("wrong password keeps the session closed", func(t *testing.T) {
		err := api.Login(context.Background(), "gestor@itp.edu.mx", "incorrecta")
		var apiErr *client.APIError
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 401, apiErr.Status)
		assert.False(t, store.IsAuthenticated())
	})

	t.Run("valid credentials open the session", func(t *testing.T) {
		assert.NoError(t, api.Login(context.Background(), "gestor@itp.edu.mx", "secreto1"))
		assert.True(t, store.IsAuthenticated())

		cred := store.Credential()
		assert.NotNil(t, cred)
		assert.Equal(t, 2, cred.UserID)
		assert.Equal(t, roles.Gestor, cred.Role)
		assert.Equal(t, "Gestor ITP", cred.Nombre)
	})
}

func TestRouteGateAgainstIssuedToken(t *testing.T) {
	server, _ := startService(t)
	store, api := newConsole(t, server.URL)

	assert.NoError(t, api.Login(context.Background(), "gestor@itp.edu.mx", "secreto1"))

	assert.Equal(t, gate.Render, gate.EvaluatePath(store, "/activos"))
	assert.Equal(t, gate.Render, gate.EvaluatePath(store, "/asignaciones"))
	assert.Equal(t, gate.RedirectDashboard, gate.EvaluatePath(store, "/usuarios"))
	assert.Equal(t, gate.RedirectDashboard, gate.EvaluatePath(store, "/bitacora"))

	// El servicio aplica la misma política que la puerta de rutas.
	_, err := api.CreateUser(context.Background(), models.CreateUserRequest{
		Nombre:   "Intruso",
		Email:    "intruso@itp.edu.mx",
		Password: "secreto1",
		Rol:      roles.Gestor,
	})
	assert.ErrorIs(t, err, client.ErrSessionExpired)
	assert.False(t, store.IsAuthenticated())
}

func TestCreateAssetRoundTrip(t *testing.T) {
	server, _ := startService(t)
	store, api := newConsole(t, server.URL)
	assert.NoError(t, api.Login(context.Background(), "admin@itp.edu.mx", "secreto1"))

	view := views.NewAssetsView(api, silentNotifier{}, yesConfirmer{})
	assert.NoError(t, view.Load(context.Background()))
	assert.Len(t, view.Assets, 1)

	created, err := view.Create(context.Background(), assets.AssetRequest{
		Nombre:      "Impresora HP",
		Estado:      models.EstadoBueno,
		CategoriaID: 1,
	})
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.NotEmpty(t, created.QRID)

	assert.Len(t, view.Assets, 2)

	fetched, err := api.GetAsset(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Impresora HP", fetched.Nombre)

	byQR, err := api.GetAssetByQR(context.Background(), created.QRID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, byQR.ID)

	assert.True(t, store.IsAuthenticated())
}

func TestFinalizeAssignmentRoundTrip(t *testing.T) {
	server, _ := startService(t)
	_, api := newConsole(t, server.URL)
	assert.NoError(t, api.Login(context.Background(), "gestor@itp.edu.mx", "secreto1"))

	view := views.NewAssignmentsView(api, silentNotifier{}, yesConfirmer{})
	assert.NoError(t, view.Load(context.Background()))
	assert.Len(t, view.Assignments, 1)
	assert.Equal(t, models.AsignacionActiva, view.Assignments[0].Estado)

	assert.NoError(t, view.Finalize(context.Background(), 1))
	assert.Equal(t, models.AsignacionFinalizada, view.Assignments[0].Estado)

	// Finalizada la asignación, el activo vuelve a ser asignable.
	assert.NoError(t, view.Create(context.Background(), assignments.AssignmentRequest{
		AssetID:          1,
		UserID:           2,
		UbicacionInicial: 1,
	}))
}

func TestRetireAssetFlow(t *testing.T) {
	server, f := startService(t)
	_, api := newConsole(t, server.URL)
	assert.NoError(t, api.Login(context.Background(), "admin@itp.edu.mx", "secreto1"))

	assert.NoError(t, api.RetireAsset(context.Background(), 1))
	assert.Equal(t, models.EstadoDeBaja, f.assets.rows[0].Estado)

	// La lista por omisión oculta los dados de baja.
	visible, err := api.ListAssets(context.Background(), false)
	assert.NoError(t, err)
	assert.Empty(t, visible)

	all, err := api.ListAssets(context.Background(), true)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}
