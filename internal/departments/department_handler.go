package departments

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

type DepartmentHandler struct {
	repo  DepartmentRepository
	audit *auditlog.Auditlog
}

func NewDepartmentHandler(repo DepartmentRepository, audit *auditlog.Auditlog) *DepartmentHandler {
	return &DepartmentHandler{repo: repo, audit: audit}
}

func (h *DepartmentHandler) RegisterRoutes(api *gin.RouterGroup) {
	admin := security.Authorize(roles.AdminGeneral)

	api.GET("/departamentos", security.Authorize(roles.Staff()...), h.ListDepartments)
	api.POST("/departamentos", admin, h.CreateDepartment)
	api.PUT("/departamentos/:id", admin, h.UpdateDepartment)
	api.DELETE("/departamentos/:id", admin, h.DeleteDepartment)
}

func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	departments, err := h.repo.ListDepartments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, departments)
}

func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var input DepartmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	department, err := h.repo.PersistDepartment(input)
	if err != nil {
		var uniqueErr *custom_error.UniqueViolationError
		if errors.As(err, &uniqueErr) {
			c.JSON(http.StatusConflict, gin.H{"error": uniqueErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go h.audit.Log(currentUser(c), models.EventoCreacion, map[string]interface{}{"nombre": department.Nombre}, department)

	c.JSON(http.StatusCreated, department)
}

func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	var input DepartmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	if err := h.repo.UpdateDepartment(id, input); err != nil {
		if errors.Is(err, ErrDepartmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrDepartmentNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	department := &models.Department{ID: id, Nombre: input.Nombre}
	go h.audit.Log(currentUser(c), models.EventoActualizacion, map[string]interface{}{"nombre": input.Nombre}, department)

	c.JSON(http.StatusOK, department)
}

func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	if err := h.repo.DeleteDepartment(id); err != nil {
		switch {
		case errors.Is(err, ErrDepartmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": ErrDepartmentNotFound.Error()})
		case errors.Is(err, ErrDepartmentInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "No se puede eliminar: el departamento tiene registros relacionados"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	go h.audit.Log(currentUser(c), models.EventoEliminacion, map[string]interface{}{"id_departamento": id}, &models.Department{ID: id})

	c.JSON(http.StatusOK, gin.H{"message": "Departamento eliminado"})
}

func currentUser(c *gin.Context) *int {
	userID, err := security.CurrentUserID(c)
	if err != nil {
		return nil
	}
	return &userID
}
