package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Josue-Alexander/gestionitp/internal/assets"
	"github.com/Josue-Alexander/gestionitp/internal/assignments"
	"github.com/Josue-Alexander/gestionitp/internal/categories"
	"github.com/Josue-Alexander/gestionitp/internal/departments"
	"github.com/Josue-Alexander/gestionitp/internal/locations"
	"github.com/Josue-Alexander/gestionitp/internal/maintenance"
	"github.com/Josue-Alexander/gestionitp/pkg/models"
)

// Login autentica contra el servicio y, si las credenciales son válidas,
// guarda el token en la sesión. Un 401 aquí son credenciales incorrectas,
// no una sesión caducada, así que no pasa por do().
func (c *Client) Login(ctx context.Context, email, password string) error {
	payload, err := json.Marshal(map[string]string{"email": email, "contraseña": password})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	var body struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}

	return c.session.Login(body.AccessToken)
}

func (c *Client) ListAssets(ctx context.Context, includeRetired bool) ([]models.Asset, error) {
	path := "/api/activos"
	if includeRetired {
		path += "?includeRetired=true"
	}
	var out []models.Asset
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) GetAsset(ctx context.Context, id int) (*models.Asset, error) {
	var out models.Asset
	err := c.do(ctx, http.MethodGet, idPath("/api/activos", id), nil, &out)
	return &out, err
}

func (c *Client) GetAssetByQR(ctx context.Context, qrID string) (*models.Asset, error) {
	var out models.Asset
	err := c.do(ctx, http.MethodGet, "/api/activos/qr/"+qrID, nil, &out)
	return &out, err
}

func (c *Client) CreateAsset(ctx context.Context, req assets.AssetRequest) (*models.Asset, error) {
	var out models.Asset
	err := c.do(ctx, http.MethodPost, "/api/activos", req, &out)
	return &out, err
}

func (c *Client) UpdateAsset(ctx context.Context, id int, req assets.AssetRequest) (*models.Asset, error) {
	var out models.Asset
	err := c.do(ctx, http.MethodPut, idPath("/api/activos", id), req, &out)
	return &out, err
}

func (c *Client) RetireAsset(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPut, idPath("/api/activos", id)+"/baja", nil, nil)
}

func (c *Client) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	var out []models.Assignment
	err := c.do(ctx, http.MethodGet, "/api/asignaciones", nil, &out)
	return out, err
}

func (c *Client) ListMyAssignments(ctx context.Context) ([]models.Assignment, error) {
	var out []models.Assignment
	err := c.do(ctx, http.MethodGet, "/api/me/asignaciones", nil, &out)
	return out, err
}

func (c *Client) CreateAssignment(ctx context.Context, req assignments.AssignmentRequest) (*models.Assignment, error) {
	var out models.Assignment
	err := c.do(ctx, http.MethodPost, "/api/asignaciones", req, &out)
	return &out, err
}

func (c *Client) FinalizeAssignment(ctx context.Context, id int) (*models.Assignment, error) {
	var out models.Assignment
	err := c.do(ctx, http.MethodPut, idPath("/api/asignaciones", id)+"/finalizar", nil, &out)
	return &out, err
}

func (c *Client) ListMovements(ctx context.Context, assignmentID int) ([]models.Movement, error) {
	var out []models.Movement
	err := c.do(ctx, http.MethodGet, idPath("/api/asignaciones", assignmentID)+"/movimientos", nil, &out)
	return out, err
}

func (c *Client) RegisterMovement(ctx context.Context, assignmentID int, req assignments.MovementRequest) (*models.Movement, error) {
	var out models.Movement
	err := c.do(ctx, http.MethodPost, idPath("/api/asignaciones", assignmentID)+"/movimientos", req, &out)
	return &out, err
}

func (c *Client) ListMaintenance(ctx context.Context) ([]models.Maintenance, error) {
	var out []models.Maintenance
	err := c.do(ctx, http.MethodGet, "/api/mantenimientos", nil, &out)
	return out, err
}

func (c *Client) ListAssetMaintenance(ctx context.Context, assetID int) ([]models.Maintenance, error) {
	var out []models.Maintenance
	err := c.do(ctx, http.MethodGet, idPath("/api/activos", assetID)+"/mantenimientos", nil, &out)
	return out, err
}

func (c *Client) OpenMaintenance(ctx context.Context, assetID int, req maintenance.MaintenanceRequest) (*models.Maintenance, error) {
	var out models.Maintenance
	err := c.do(ctx, http.MethodPost, idPath("/api/activos", assetID)+"/mantenimientos", req, &out)
	return &out, err
}

func (c *Client) FinalizeMaintenance(ctx context.Context, id int, req maintenance.FinalizeRequest) (*models.Maintenance, error) {
	var out models.Maintenance
	err := c.do(ctx, http.MethodPut, idPath("/api/mantenimientos", id)+"/finalizar", req, &out)
	return &out, err
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := c.do(ctx, http.MethodGet, "/api/categorias", nil, &out)
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, req categories.CategoryInput) (*models.Category, error) {
	var out models.Category
	err := c.do(ctx, http.MethodPost, "/api/categorias", req, &out)
	return &out, err
}

func (c *Client) UpdateCategory(ctx context.Context, id int, req categories.CategoryInput) (*models.Category, error) {
	var out models.Category
	err := c.do(ctx, http.MethodPut, idPath("/api/categorias", id), req, &out)
	return &out, err
}

func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/categorias", id), nil, nil)
}

func (c *Client) ListCategoryRequests(ctx context.Context) ([]models.CategoryRequest, error) {
	var out []models.CategoryRequest
	err := c.do(ctx, http.MethodGet, "/api/solicitudes-categoria", nil, &out)
	return out, err
}

func (c *Client) CreateCategoryRequest(ctx context.Context, req categories.RequestInput) (*models.CategoryRequest, error) {
	var out models.CategoryRequest
	err := c.do(ctx, http.MethodPost, "/api/solicitudes-categoria", req, &out)
	return &out, err
}

func (c *Client) ReviewCategoryRequest(ctx context.Context, id int, req categories.ReviewInput) (*models.CategoryRequest, error) {
	var out models.CategoryRequest
	err := c.do(ctx, http.MethodPut, idPath("/api/solicitudes-categoria", id)+"/revisar", req, &out)
	return &out, err
}

func (c *Client) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var out []models.Department
	err := c.do(ctx, http.MethodGet, "/api/departamentos", nil, &out)
	return out, err
}

func (c *Client) CreateDepartment(ctx context.Context, req departments.DepartmentInput) (*models.Department, error) {
	var out models.Department
	err := c.do(ctx, http.MethodPost, "/api/departamentos", req, &out)
	return &out, err
}

func (c *Client) UpdateDepartment(ctx context.Context, id int, req departments.DepartmentInput) (*models.Department, error) {
	var out models.Department
	err := c.do(ctx, http.MethodPut, idPath("/api/departamentos", id), req, &out)
	return &out, err
}

func (c *Client) DeleteDepartment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/departamentos", id), nil, nil)
}

func (c *Client) ListLocations(ctx context.Context, departamentoID *int) ([]models.Location, error) {
	var out []models.Location
	err := c.do(ctx, http.MethodGet, withDepartment("/api/ubicaciones", departamentoID), nil, &out)
	return out, err
}

func (c *Client) CreateLocation(ctx context.Context, req locations.LocationInput) (*models.Location, error) {
	var out models.Location
	err := c.do(ctx, http.MethodPost, "/api/ubicaciones", req, &out)
	return &out, err
}

func (c *Client) UpdateLocation(ctx context.Context, id int, req locations.LocationInput) (*models.Location, error) {
	var out models.Location
	err := c.do(ctx, http.MethodPut, idPath("/api/ubicaciones", id), req, &out)
	return &out, err
}

func (c *Client) DeleteLocation(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/ubicaciones", id), nil, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := c.do(ctx, http.MethodGet, "/api/usuarios", nil, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	var out models.User
	err := c.do(ctx, http.MethodPost, "/api/usuarios", req, &out)
	return &out, err
}

func (c *Client) UpdateUser(ctx context.Context, id int, req models.UpdateUserRequest) (*models.User, error) {
	var out models.User
	err := c.do(ctx, http.MethodPut, idPath("/api/usuarios", id), req, &out)
	return &out, err
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/usuarios", id), nil, nil)
}

func (c *Client) ListAuditEvents(ctx context.Context, limit int) ([]models.AuditEvent, error) {
	path := "/api/bitacora"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []models.AuditEvent
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) InventoryValue(ctx context.Context, departamentoID *int) (*models.InventoryValue, error) {
	var out models.InventoryValue
	err := c.do(ctx, http.MethodGet, withDepartment("/api/reportes/valor-inventario", departamentoID), nil, &out)
	return &out, err
}

func (c *Client) StatusSummary(ctx context.Context, departamentoID *int) ([]models.StatusSummaryRow, error) {
	var out []models.StatusSummaryRow
	err := c.do(ctx, http.MethodGet, withDepartment("/api/reportes/resumen-por-estado", departamentoID), nil, &out)
	return out, err
}

func (c *Client) CategoryCosts(ctx context.Context, departamentoID *int) ([]models.CategoryCostRow, error) {
	var out []models.CategoryCostRow
	err := c.do(ctx, http.MethodGet, withDepartment("/api/reportes/costos-por-categoria", departamentoID), nil, &out)
	return out, err
}

func (c *Client) OperationalRisk(ctx context.Context, departamentoID *int) ([]models.RiskAssetRow, error) {
	var out []models.RiskAssetRow
	err := c.do(ctx, http.MethodGet, withDepartment("/api/reportes/riesgo-operativo", departamentoID), nil, &out)
	return out, err
}
