package categories

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Josue-Alexander/gestionitp/pkg/auditlog"
	custom_error "github.com/Josue-Alexander/gestionitp/pkg/errors"
	"github.com/Josue-Alexander/gestionitp/pkg/models"
	"github.com/Josue-Alexander/gestionitp/pkg/roles"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) ListCategories() ([]models.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) PersistCategory(input CategoryInput) (*models.Category, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(id int, input CategoryInput) error {
	args := m.Called(id, input)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCategoryRepository) HasRelatedAssets(id int) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) ListRequests() ([]models.CategoryRequest, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryRequest), args.Error(1)
}

func (m *MockCategoryRepository) PersistRequest(input RequestInput, solicitanteID int) (*models.CategoryRequest, error) {
	args := m.Called(input, solicitanteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CategoryRequest), args.Error(1)
}

func (m *MockCategoryRepository) ReviewRequest(id int, input ReviewInput) (*models.CategoryRequest, error) {
	args := m.Called(id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CategoryRequest), args.Error(1)
}

type noopRecorder struct{}

func (noopRecorder) PersistEvent(models.AuditEvent, map[string]interface{}) error { return nil }

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", 1)
	c.Set("role", roles.AdminGeneral)
	return c, w
}

func TestCreateCategory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockCategoryRepository)
	handler := NewCategoryHandler(mockRepo, auditlog.NewAuditLog(noopRecorder{}))

	tests := []struct {
		name           string
		payload        CategoryInput
		setupMock      func()
		expectedStatus int
	}{
		{
			name:    "successful creation",
			payload: CategoryInput{Nombre: "Equipo de cómputo"},
			setupMock: func() {
				mockRepo.On("PersistCategory", mock.Anything).
					Return(&models.Category{ID: 3, Nombre: "Equipo de cómputo"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:    "duplicate name",
			payload: CategoryInput{Nombre: "Equipo de cómputo"},
			setupMock: func() {
				mockRepo.On("PersistCategory", mock.Anything).
					Return(nil, custom_error.WrapDBError("La categoría ya existe", "23505"))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			body, _ := json.Marshal(tt.payload)
			c.Request = httptest.NewRequest("POST", "/api/categorias", bytes.NewBuffer(body))

			handler.CreateCategory(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestDeleteCategory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockCategoryRepository)
	handler := NewCategoryHandler(mockRepo, auditlog.NewAuditLog(noopRecorder{}))

	tests := []struct {
		name           string
		setupMock      func()
		expectedStatus int
	}{
		{
			name: "successful delete",
			setupMock: func() {
				mockRepo.On("DeleteCategory", 3).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "category in use",
			setupMock: func() {
				mockRepo.On("DeleteCategory", 3).Return(ErrCategoryInUse)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "not found",
			setupMock: func() {
				mockRepo.On("DeleteCategory", 3).Return(ErrCategoryNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			c.Request = httptest.NewRequest("DELETE", "/api/categorias/3", nil)
			c.Params = []gin.Param{{Key: "id", Value: "3"}}

			handler.DeleteCategory(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestReviewRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockCategoryRepository)
	handler := NewCategoryHandler(mockRepo, auditlog.NewAuditLog(noopRecorder{}))

	tests := []struct {
		name           string
		payload        ReviewInput
		setupMock      func()
		expectedStatus int
	}{
		{
			name:    "approval",
			payload: ReviewInput{Decision: models.DecisionAprobar},
			setupMock: func() {
				mockRepo.On("ReviewRequest", 7, ReviewInput{Decision: models.DecisionAprobar}).
					Return(&models.CategoryRequest{ID: 7, NombreSugerido: "Mobiliario", Estado: models.SolicitudAprobada}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid decision",
			payload:        ReviewInput{Decision: "Posponer"},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "already resolved",
			payload: ReviewInput{Decision: models.DecisionRechazar},
			setupMock: func() {
				mockRepo.On("ReviewRequest", 7, mock.Anything).Return(nil, ErrRequestResolved)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:    "approved name collides with existing category",
			payload: ReviewInput{Decision: models.DecisionAprobar},
			setupMock: func() {
				mockRepo.On("ReviewRequest", 7, mock.Anything).
					Return(nil, custom_error.WrapDBError("La categoría ya existe", "23505"))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			body, _ := json.Marshal(tt.payload)
			c.Request = httptest.NewRequest("PUT", "/api/solicitudes-categoria/7/revisar", bytes.NewBuffer(body))
			c.Params = []gin.Param{{Key: "id", Value: "7"}}

			handler.ReviewRequest(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}
