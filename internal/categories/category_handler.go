package categories

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Josue-Alexander/gestionitp/pkg/auditlog"
	custom_error "github.com/Josue-Alexander/gestionitp/pkg/errors"
	"github.com/Josue-Alexander/gestionitp/pkg/models"
	"github.com/Josue-Alexander/gestionitp/pkg/roles"
	"github.com/Josue-Alexander/gestionitp/pkg/security"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	repo  CategoryRepository
	audit *auditlog.Auditlog
}

func NewCategoryHandler(repo CategoryRepository, audit *auditlog.Auditlog) *CategoryHandler {
	return &CategoryHandler{repo: repo, audit: audit}
}

func (h *CategoryHandler) RegisterRoutes(api *gin.RouterGroup) {
	staff := security.Authorize(roles.Staff()...)
	admin := security.Authorize(roles.AdminGeneral)

	api.GET("/categorias", staff, h.ListCategories)
	api.POST("/categorias", admin, h.CreateCategory)
	api.PUT("/categorias/:id", admin, h.UpdateCategory)
	api.DELETE("/categorias/:id", admin, h.DeleteCategory)

	api.GET("/solicitudes-categoria", security.Authorize(roles.Admins()...), h.ListRequests)
	api.POST("/solicitudes-categoria", staff, h.CreateRequest)
	api.PUT("/solicitudes-categoria/:id/revisar", admin, h.ReviewRequest)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.repo.ListCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	category, err := h.repo.PersistCategory(input)
	if err != nil {
		var uniqueErr *custom_error.UniqueViolationError
		if errors.As(err, &uniqueErr) {
			c.JSON(http.StatusConflict, gin.H{"error": uniqueErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go h.audit.Log(currentUser(c), models.EventoCreacion, map[string]interface{}{"nombre": category.Nombre}, category)

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	if err := h.repo.UpdateCategory(id, input); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrCategoryNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	category := &models.Category{ID: id, Nombre: input.Nombre, Descripcion: input.Descripcion}
	go h.audit.Log(currentUser(c), models.EventoActualizacion, map[string]interface{}{"nombre": input.Nombre}, category)

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	if err := h.repo.DeleteCategory(id); err != nil {
		switch {
		case errors.Is(err, ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": ErrCategoryNotFound.Error()})
		case errors.Is(err, ErrCategoryInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "No se puede eliminar: la categoría tiene activos relacionados"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	go h.audit.Log(currentUser(c), models.EventoEliminacion, map[string]interface{}{"id_categoria": id}, &models.Category{ID: id})

	c.JSON(http.StatusOK, gin.H{"message": "Categoría eliminada"})
}

func (h *CategoryHandler) ListRequests(c *gin.Context) {
	requests, err := h.repo.ListRequests()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *CategoryHandler) CreateRequest(c *gin.Context) {
	var input RequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	userID := currentUser(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sesión inválida"})
		return
	}

	request, err := h.repo.PersistRequest(input, *userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go h.audit.Log(userID, models.EventoCreacion, map[string]interface{}{"nombre_sugerido": request.NombreSugerido}, request)

	c.JSON(http.StatusCreated, request)
}

func (h *CategoryHandler) ReviewRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}
	if input.Decision != models.DecisionAprobar && input.Decision != models.DecisionRechazar {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Decisión inválida, debe ser Aprobar o Rechazar"})
		return
	}

	request, err := h.repo.ReviewRequest(id, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": ErrRequestNotFound.Error()})
		case errors.Is(err, ErrRequestResolved):
			c.JSON(http.StatusConflict, gin.H{"error": ErrRequestResolved.Error()})
		default:
			var uniqueErr *custom_error.UniqueViolationError
			if errors.As(err, &uniqueErr) {
				c.JSON(http.StatusConflict, gin.H{"error": uniqueErr.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	go h.audit.Log(currentUser(c), models.EventoRevision, map[string]interface{}{
		"decision":        input.Decision,
		"nombre_sugerido": request.NombreSugerido,
	}, request)

	c.JSON(http.StatusOK, request)
}

func currentUser(c *gin.Context) *int {
	userID, err := security.CurrentUserID(c)
	if err != nil {
		return nil
	}
	return &userID
}
