package locations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Josue-Alexander/gestionitp/pkg/auditlog"
	"github.com/Josue-Alexander/gestionitp/pkg/models"
	"github.com/Josue-Alexander/gestionitp/pkg/roles"
	"github.com/Josue-Alexander/gestionitp/pkg/security"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	repo  LocationRepository
	audit *auditlog.Auditlog
}

func NewLocationHandler(repo LocationRepository, audit *auditlog.Auditlog) *LocationHandler {
	return &LocationHandler{repo: repo, audit: audit}
}

func (h *LocationHandler) RegisterRoutes(api *gin.RouterGroup) {
	admins := security.Authorize(roles.Admins()...)

	api.GET("/ubicaciones", security.Authorize(roles.Staff()...), h.ListLocations)
	api.POST("/ubicaciones", admins, h.CreateLocation)
	api.PUT("/ubicaciones/:id", admins, h.UpdateLocation)
	api.DELETE("/ubicaciones/:id", admins, h.DeleteLocation)
}

func (h *LocationHandler) ListLocations(c *gin.Context) {
	var departamentoID *int
	if raw := c.Query("departamento"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Filtro de departamento inválido"})
			return
		}
		departamentoID = &id
	}

	locations, err := h.repo.ListLocations(departamentoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, locations)
}

func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var input LocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	location, err := h.repo.PersistLocation(input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go h.audit.Log(currentUser(c), models.EventoCreacion, map[string]interface{}{"nombre_area": location.NombreArea}, location)

	c.JSON(http.StatusCreated, location)
}

func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	var input LocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	if err := h.repo.UpdateLocation(id, input); err != nil {
		if errors.Is(err, ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrLocationNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	location := &models.Location{
		ID:             id,
		NombreArea:     input.NombreArea,
		Descripcion:    input.Descripcion,
		DepartamentoID: input.DepartamentoID,
	}
	go h.audit.Log(currentUser(c), models.EventoActualizacion, map[string]interface{}{"nombre_area": input.NombreArea}, location)

	c.JSON(http.StatusOK, location)
}

func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	if err := h.repo.DeleteLocation(id); err != nil {
		switch {
		case errors.Is(err, ErrLocationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": ErrLocationNotFound.Error()})
		case errors.Is(err, ErrLocationInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "No se puede eliminar: la ubicación tiene movimientos registrados"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	go h.audit.Log(currentUser(c), models.EventoEliminacion, map[string]interface{}{"id_ubicacion": id}, &models.Location{ID: id})

	c.JSON(http.StatusOK, gin.H{"message": "Ubicación eliminada"})
}

func currentUser(c *gin.Context) *int {
	userID, err := security.CurrentUserID(c)
	if err != nil {
		return nil
	}
	return &userID
}
